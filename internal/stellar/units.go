package stellar

const (
	// SolarMass is the mass of the Sun in kilograms.
	SolarMass = 1.989e30
	// SolarRadius is the radius of the Sun in meters.
	SolarRadius = 6.95e8
)

// MassToSI converts a mass in solar masses to kilograms.
func MassToSI(massSolar float64) float64 {
	return SolarMass * massSolar
}

// RadiusToSI converts a radius in solar radii to meters.
func RadiusToSI(radiusSolar float64) float64 {
	return SolarRadius * radiusSolar
}
