package walk

import "math"

// PhotonState is a photon's position in step space and its cached radial
// distance from the stellar center.
type PhotonState struct {
	X, Y float64
	R    float64
}

// Radius recomputes the radial distance from the position.
func (p PhotonState) Radius() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Population is the ordered set of photons in a run. Index order is stable
// for the lifetime of a run.
type Population []PhotonState

// NewPopulation places n photons at the origin.
func NewPopulation(n int) Population {
	return make(Population, n)
}

func (p Population) Clone() Population {
	c := make(Population, len(p))
	copy(c, p)
	return c
}

// Furthest returns the largest radial distance in the population.
func (p Population) Furthest() float64 {
	furthest := 0.0
	for _, s := range p {
		if s.R > furthest {
			furthest = s.R
		}
	}
	return furthest
}

// Escaped counts photons beyond radius.
func (p Population) Escaped(radius float64) int {
	n := 0
	for _, s := range p {
		if s.R > radius {
			n++
		}
	}
	return n
}

// IsValid reports whether every coordinate is finite.
func (p Population) IsValid() bool {
	for _, s := range p {
		for _, v := range [3]float64{s.X, s.Y, s.R} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
