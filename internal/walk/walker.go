package walk

import (
	"fmt"
	"math"

	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/stellar"
)

// Scale converts a sampled step in meters to step-space units.
const Scale = 42000

// Advance moves a photon by one sampled step. The local density is taken at
// the photon's current radius, the step length is drawn before the direction,
// and the returned state carries the recomputed radial distance.
func Advance(state PhotonState, props stellar.Properties, kappa float64, sampler *sampling.Sampler) (PhotonState, error) {
	rSI := state.R * props.StepsToMeters
	rho := props.Profile().At(rSI)

	lambda, err := sampling.MeanFreePath(kappa, rho)
	if err != nil {
		return state, err
	}
	stepSI, err := sampler.SampleStep(lambda)
	if err != nil {
		return state, fmt.Errorf("step length: %w", err)
	}
	step := stepSI * Scale
	theta := sampler.SampleDirection()

	next := PhotonState{
		X: state.X + step*math.Cos(theta),
		Y: state.Y + step*math.Sin(theta),
	}
	next.R = next.Radius()
	return next, nil
}
