package metrics

import "github.com/san-kum/photonwalk/internal/walk"

// EscapedFraction is the share of photons beyond the stellar radius at the
// most recent tick.
type EscapedFraction struct {
	radius  float64
	escaped int
	total   int
}

func NewEscapedFraction(radiusSteps float64) *EscapedFraction {
	return &EscapedFraction{radius: radiusSteps}
}

func (e *EscapedFraction) Name() string { return "escaped_fraction" }

func (e *EscapedFraction) Observe(tick int, pop walk.Population) {
	e.escaped = pop.Escaped(e.radius)
	e.total = len(pop)
}

func (e *EscapedFraction) Value() float64 {
	if e.total == 0 {
		return 0
	}
	return float64(e.escaped) / float64(e.total)
}

func (e *EscapedFraction) Reset() {
	e.escaped = 0
	e.total = 0
}

// FirstEscape records the tick at which any photon first left the star,
// or -1 if none has.
type FirstEscape struct {
	radius float64
	tick   int
}

func NewFirstEscape(radiusSteps float64) *FirstEscape {
	return &FirstEscape{radius: radiusSteps, tick: -1}
}

func (f *FirstEscape) Name() string { return "first_escape_tick" }

func (f *FirstEscape) Observe(tick int, pop walk.Population) {
	if f.tick < 0 && pop.Escaped(f.radius) > 0 {
		f.tick = tick
	}
}

func (f *FirstEscape) Value() float64 { return float64(f.tick) }
func (f *FirstEscape) Reset()         { f.tick = -1 }
