package stellar

import "fmt"

// StepsPerSolarRadius is the number of step-space units spanning one solar radius.
const StepsPerSolarRadius = 200

// Properties holds the derived, immutable description of a star.
type Properties struct {
	MassSolar      float64
	RadiusSolar    float64
	MassKg         float64
	RadiusMeters   float64
	CentralDensity float64 // kg/m³
	StepsToMeters  float64 // meters per step-space unit
	DensityFloor   float64 // kg/m³
}

// NewProperties derives SI quantities from solar-unit inputs using the
// default density floor.
func NewProperties(massSolar, radiusSolar float64) (Properties, error) {
	return NewPropertiesWithFloor(massSolar, radiusSolar, DefaultDensityFloor)
}

// NewPropertiesWithFloor is NewProperties with an explicit density floor.
func NewPropertiesWithFloor(massSolar, radiusSolar, floor float64) (Properties, error) {
	if !positive(massSolar) {
		return Properties{}, &ConfigError{Field: "mass", Value: massSolar}
	}
	if !positive(radiusSolar) {
		return Properties{}, &ConfigError{Field: "radius", Value: radiusSolar}
	}
	if !positive(floor) {
		return Properties{}, &ConfigError{Field: "density floor", Value: floor}
	}

	massKg := MassToSI(massSolar)
	radiusM := RadiusToSI(radiusSolar)
	rhoI, err := CentralDensity(massKg, radiusM)
	if err != nil {
		return Properties{}, fmt.Errorf("central density: %w", err)
	}

	return Properties{
		MassSolar:      massSolar,
		RadiusSolar:    radiusSolar,
		MassKg:         massKg,
		RadiusMeters:   radiusM,
		CentralDensity: rhoI,
		StepsToMeters:  radiusM / (radiusSolar * StepsPerSolarRadius),
		DensityFloor:   floor,
	}, nil
}

// RadiusSteps is the stellar radius expressed in step space.
func (p Properties) RadiusSteps() float64 {
	return StepsPerSolarRadius * p.RadiusSolar
}

// Profile returns the star's linear density profile.
func (p Properties) Profile() Profile {
	return Profile{Central: p.CentralDensity, Radius: p.RadiusMeters, Floor: p.DensityFloor}
}

// DensityAtSteps returns the local density at a radial distance given in step space.
func (p Properties) DensityAtSteps(rSteps float64) float64 {
	return p.Profile().At(rSteps * p.StepsToMeters)
}
