package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/photonwalk/internal/config"
	"github.com/san-kum/photonwalk/internal/logging"
	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/scene"
	"github.com/san-kum/photonwalk/internal/sim"
	"github.com/san-kum/photonwalk/internal/stellar"
	"github.com/san-kum/photonwalk/internal/storage"
)

// SourceFunc creates the physics random source for a seed.
type SourceFunc func(seed int64) sampling.Source

func seededSource(seed int64) sampling.Source { return sampling.NewSeededSource(seed) }

type Experiment struct {
	cfg         config.Config
	props       stellar.Properties
	adjustments []config.Adjustment
	registry    *Registry
	newSource   SourceFunc

	loop     *sim.Loop
	recorder *storage.Recorder
}

// New validates a copy of cfg, clamping out-of-range parameters, and derives
// the star's properties.
func New(cfg *config.Config) (*Experiment, error) {
	c := *cfg
	adj, err := c.Validate()
	if err != nil {
		return nil, err
	}

	props, err := stellar.NewPropertiesWithFloor(c.Params.Mass, c.Params.Radius, c.DensityFloor)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:         c,
		props:       props,
		adjustments: adj,
		registry:    NewRegistry(),
		newSource:   seededSource,
	}, nil
}

// SetSource replaces the physics source, mainly for deterministic tests.
func (e *Experiment) SetSource(fn SourceFunc) { e.newSource = fn }

func (e *Experiment) Config() config.Config            { return e.cfg }
func (e *Experiment) Properties() stellar.Properties   { return e.props }
func (e *Experiment) Adjustments() []config.Adjustment { return e.adjustments }
func (e *Experiment) Frames() []storage.Frame          { return e.recorder.Frames() }
func (e *Experiment) Loop() *sim.Loop                  { return e.loop }
func (e *Experiment) Registry() *Registry              { return e.registry }

// Build creates the loop for the configured seed, with the default metrics,
// a frame recorder and the tick budget attached. Callers may add further
// observers before running it.
func (e *Experiment) Build() (*sim.Loop, error) {
	loop, err := e.newLoop(e.cfg.Seed)
	if err != nil {
		return nil, err
	}
	e.recorder = storage.NewRecorder(e.cfg.RecordStride)
	loop.AddObserver(e.recorder)
	e.loop = loop
	return loop, nil
}

func (e *Experiment) newLoop(seed int64) (*sim.Loop, error) {
	sampler := sampling.NewSampler(e.newSource(seed))
	loop, err := sim.New(e.props, e.cfg.Params.Opacity, sampler, e.cfg.Params.Photons)
	if err != nil {
		return nil, err
	}
	for _, m := range e.registry.DefaultMetrics(e.props.RadiusSteps()) {
		loop.AddMetric(m)
	}
	if e.cfg.MaxTicks > 0 {
		loop.AddCancelSignal(TickBudget(loop, e.cfg.MaxTicks))
	}
	return loop, nil
}

// Run builds the loop if needed and runs it to termination.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.loop == nil {
		if _, err := e.Build(); err != nil {
			return nil, err
		}
	}

	logging.FromContext(ctx).V(logging.DEBUG).Info("walk configured",
		"seed", e.cfg.Seed,
		"mass", e.cfg.Params.Mass,
		"radius", e.cfg.Params.Radius,
		"adjustments", len(e.adjustments),
		"maxTicks", e.cfg.MaxTicks)

	res, err := e.loop.Run(ctx)
	if err != nil {
		return res, fmt.Errorf("walk failed at tick %d: %w", e.loop.Tick(), err)
	}
	return res, nil
}

// Scene returns the decoration for this run, drawn from a stream independent
// of the physics source.
func (e *Experiment) Scene() *scene.Scene {
	return SceneFor(e.props.RadiusSteps(), e.cfg.Params, e.cfg.Seed)
}

// SceneFor rebuilds the scene of a stored run.
func SceneFor(radiusSteps float64, p config.Parameters, seed int64) *scene.Scene {
	return scene.New(radiusSteps, p.Photons, p.BackgroundStars, sampling.Stream("scene", seed))
}

// Factory returns an ensemble factory. Ensemble members carry the default
// metrics and tick budget but record no frames.
func (e *Experiment) Factory() sim.Factory {
	return e.newLoop
}

// Metadata describes a finished run for storage.
func (e *Experiment) Metadata(name string, res *sim.Result) storage.RunMetadata {
	return storage.NewMetadata(name, &e.cfg, e.props.RadiusSteps(), res)
}

// TickBudget cancels the loop once it has completed maxTicks ticks.
func TickBudget(loop *sim.Loop, maxTicks int) sim.CancelSignal {
	return sim.CancelFunc(func() bool { return loop.Tick() >= maxTicks })
}
