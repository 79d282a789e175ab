package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/photonwalk/internal/sampling"
)

// SampleSteps draws n step lengths with mean free path lambda.
func SampleSteps(s *sampling.Sampler, lambda float64, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := s.SampleStep(lambda)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ExpFit compares a sample against an exponential distribution with mean Lambda.
type ExpFit struct {
	Lambda float64
	Mean   float64
	CV     float64 // coefficient of variation, 1 for an exponential
	RelErr float64 // |Mean-Lambda| / Lambda
}

// CheckExponential reports how closely samples match Exp(1/lambda).
func CheckExponential(samples []float64, lambda float64) (ExpFit, error) {
	if len(samples) < 2 {
		return ExpFit{}, fmt.Errorf("need at least 2 samples, got %d", len(samples))
	}
	if lambda <= 0 {
		return ExpFit{}, fmt.Errorf("lambda must be positive, got %g", lambda)
	}
	mean, sd := stat.MeanStdDev(samples, nil)
	rel := (mean - lambda) / lambda
	if rel < 0 {
		rel = -rel
	}
	return ExpFit{Lambda: lambda, Mean: mean, CV: sd / mean, RelErr: rel}, nil
}
