package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/photonwalk/internal/sim"
	"github.com/san-kum/photonwalk/internal/walk"
)

// Collector owns the registered photonwalk metric vectors. Loops report into
// it through the per-run observers returned by ForRun, so concurrent runs
// never share gauge series.
type Collector struct {
	radius float64

	ticks    prometheus.Counter
	escaped  *prometheus.GaugeVec
	furthest *prometheus.GaugeVec
	runs     *prometheus.CounterVec
	runTicks prometheus.Histogram
	duration prometheus.Histogram
}

// NewCollector registers the photonwalk metrics on reg.
func NewCollector(reg prometheus.Registerer, radiusSteps float64) (*Collector, error) {
	c := &Collector{
		radius: radiusSteps,
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "photonwalk_ticks_total",
			Help: "Total number of simulation ticks.",
		}),
		escaped: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "photonwalk_photons_escaped",
				Help: "Photons currently beyond the stellar radius.",
			},
			[]string{"run"},
		),
		furthest: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "photonwalk_furthest_radius_steps",
				Help: "Radial distance of the furthest photon in step space.",
			},
			[]string{"run"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "photonwalk_runs_total",
				Help: "Completed runs by termination reason.",
			},
			[]string{"reason"},
		),
		runTicks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "photonwalk_run_ticks",
			Help:    "Ticks taken per run.",
			Buckets: prometheus.ExponentialBuckets(8, 4, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "photonwalk_run_duration_seconds",
			Help:    "Wall-clock duration of a run.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, col := range []prometheus.Collector{c.ticks, c.escaped, c.furthest, c.runs, c.runTicks, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ForRun returns the observer for one loop. run labels its gauge series.
func (c *Collector) ForRun(run string) *RunObserver {
	return &RunObserver{
		c:        c,
		escaped:  c.escaped.WithLabelValues(run),
		furthest: c.furthest.WithLabelValues(run),
	}
}

// RunObserver is a sim.Observer and sim.TerminationObserver bound to a
// single run's series.
type RunObserver struct {
	c        *Collector
	escaped  prometheus.Gauge
	furthest prometheus.Gauge
}

func (o *RunObserver) OnTick(tick int, pop walk.Population) {
	o.c.ticks.Inc()
	o.escaped.Set(float64(pop.Escaped(o.c.radius)))
	o.furthest.Set(pop.Furthest())
}

func (o *RunObserver) OnTerminate(res *sim.Result) {
	o.c.runs.WithLabelValues(res.Reason.String()).Inc()
	o.c.runTicks.Observe(float64(res.Ticks))
	o.c.duration.Observe(res.Elapsed.Seconds())
}
