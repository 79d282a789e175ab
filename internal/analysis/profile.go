package analysis

import (
	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/stellar"
	"github.com/san-kum/photonwalk/internal/walk"
)

// ProfilePoint is the local state of the star at one radius.
type ProfilePoint struct {
	RSteps  float64
	Density float64 // kg/m³
	MFP     float64 // m
	Step    float64 // mean step in step space
}

// RadialProfile samples density and mean free path at n+1 evenly spaced
// radii from the center to the surface.
func RadialProfile(props stellar.Properties, kappa float64, n int) ([]ProfilePoint, error) {
	if n < 1 {
		n = 1
	}
	radius := props.RadiusSteps()
	points := make([]ProfilePoint, 0, n+1)
	for i := 0; i <= n; i++ {
		r := radius * float64(i) / float64(n)
		rho := props.DensityAtSteps(r)
		mfp, err := sampling.MeanFreePath(kappa, rho)
		if err != nil {
			return nil, err
		}
		points = append(points, ProfilePoint{RSteps: r, Density: rho, MFP: mfp, Step: mfp * walk.Scale})
	}
	return points, nil
}
