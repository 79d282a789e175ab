package metrics

import "github.com/san-kum/photonwalk/internal/walk"

// MeanRadius averages the population's mean radial distance over all ticks.
type MeanRadius struct {
	name    string
	samples int
	total   float64
}

func NewMeanRadius() *MeanRadius {
	return &MeanRadius{name: "mean_radius"}
}

func (m *MeanRadius) Name() string { return m.name }

func (m *MeanRadius) Observe(tick int, pop walk.Population) {
	if len(pop) == 0 {
		return
	}
	sum := 0.0
	for _, p := range pop {
		sum += p.R
	}
	m.total += sum / float64(len(pop))
	m.samples++
}

func (m *MeanRadius) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanRadius) Reset() {
	m.total = 0
	m.samples = 0
}

// Furthest tracks the largest radial distance reached by any photon.
type Furthest struct {
	max float64
}

func NewFurthest() *Furthest { return &Furthest{} }

func (f *Furthest) Name() string { return "furthest" }

func (f *Furthest) Observe(tick int, pop walk.Population) {
	if r := pop.Furthest(); r > f.max {
		f.max = r
	}
}

func (f *Furthest) Value() float64 { return f.max }
func (f *Furthest) Reset()         { f.max = 0 }
