package stellar

import "math"

// DefaultDensityFloor keeps the mean free path finite at and beyond the
// surface, where the linear profile would otherwise reach zero.
const DefaultDensityFloor = 1e-12 // kg/m³

// positive reports whether v is a finite number above zero. NaN fails.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// CentralDensity returns 3M/(πR³) in kg/m³.
func CentralDensity(massKg, radiusMeters float64) (float64, error) {
	if !positive(massKg) {
		return 0, &ConfigError{Field: "mass", Value: massKg}
	}
	if !positive(radiusMeters) {
		return 0, &ConfigError{Field: "radius", Value: radiusMeters}
	}
	return 3 * massKg / (math.Pi * radiusMeters * radiusMeters * radiusMeters), nil
}

// LocalDensity evaluates the linear profile ρ_i·(1 − r/R) with the default floor.
func LocalDensity(rhoI, r, radius float64) float64 {
	return Profile{Central: rhoI, Radius: radius, Floor: DefaultDensityFloor}.At(r)
}

// Profile is a linear radial density profile.
type Profile struct {
	Central float64 // kg/m³ at r = 0
	Radius  float64 // m
	Floor   float64 // kg/m³
}

// At returns the density at radial distance r (meters). The result is
// non-increasing in r and never drops below the floor.
func (p Profile) At(r float64) float64 {
	return math.Max(p.Central*(1-r/p.Radius), p.Floor)
}
