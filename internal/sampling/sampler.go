package sampling

import (
	"errors"
	"fmt"
	"math"
)

// MaxResamples bounds the retries when the source returns exactly zero
// where a logarithm is required.
const MaxResamples = 64

var (
	// ErrDegenerateSource indicates the source kept returning zero.
	ErrDegenerateSource = errors.New("sampling: source returned zero on every draw")

	// ErrNonPositive indicates a mean free path was requested for a
	// non-positive opacity or density.
	ErrNonPositive = errors.New("sampling: opacity and density must be positive")
)

// MeanFreePath returns 1/(κρ), the expected distance between interactions.
func MeanFreePath(kappa, rho float64) (float64, error) {
	if kappa <= 0 || rho <= 0 {
		return 0, fmt.Errorf("%w: kappa=%g rho=%g", ErrNonPositive, kappa, rho)
	}
	return 1.0 / (kappa * rho), nil
}

// Sampler draws step lengths and directions from a single Source. Draws
// happen in call order, so a seeded source gives a reproducible walk.
type Sampler struct {
	src Source
}

func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// SampleStep draws an exponentially distributed length with mean lambda via
// inverse-CDF sampling, −λ·ln(u) with u in (0, 1).
func (s *Sampler) SampleStep(lambda float64) (float64, error) {
	for i := 0; i < MaxResamples; i++ {
		u := s.src.Float64()
		if u > 0 {
			return -lambda * math.Log(u), nil
		}
	}
	return 0, ErrDegenerateSource
}

// SampleDirection draws a uniform angle in [0, 2π).
func (s *Sampler) SampleDirection() float64 {
	return 2 * math.Pi * s.src.Float64()
}
