package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/photonwalk/internal/metrics"
	"github.com/san-kum/photonwalk/internal/sim"
)

// Registry maps metric names to constructors.
type Registry struct {
	metrics map[string]func(radiusSteps float64) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(float64) sim.Metric),
	}

	r.metrics["mean_radius"] = func(float64) sim.Metric { return metrics.NewMeanRadius() }
	r.metrics["furthest"] = func(float64) sim.Metric { return metrics.NewFurthest() }
	r.metrics["escaped_fraction"] = func(rs float64) sim.Metric { return metrics.NewEscapedFraction(rs) }
	r.metrics["first_escape_tick"] = func(rs float64) sim.Metric { return metrics.NewFirstEscape(rs) }

	return r
}

func (r *Registry) GetMetric(name string, radiusSteps float64) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(radiusSteps), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(radiusSteps float64) []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		m, _ := r.GetMetric(name, radiusSteps)
		out = append(out, m)
	}
	return out
}
