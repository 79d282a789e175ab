package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/photonwalk/internal/logging"
	"github.com/san-kum/photonwalk/internal/sampling"
	"github.com/san-kum/photonwalk/internal/stellar"
	"github.com/san-kum/photonwalk/internal/walk"
)

// ErrTerminated is returned by Step once the loop has terminated.
var ErrTerminated = errors.New("sim: loop already terminated")

// Loop advances a population of photons in lockstep until the furthest one
// leaves the star or the run is cancelled. It is not safe for concurrent use.
type Loop struct {
	props   stellar.Properties
	kappa   float64
	sampler *sampling.Sampler

	pop     walk.Population
	next    walk.Population
	tick    int
	state   State
	result  *Result
	started time.Time

	observers []Observer
	metrics   []Metric
	signals   []CancelSignal
}

func New(props stellar.Properties, kappa float64, sampler *sampling.Sampler, photons int) (*Loop, error) {
	if photons <= 0 {
		return nil, fmt.Errorf("photon count must be positive, got %d", photons)
	}
	if !(kappa > 0) || math.IsInf(kappa, 0) {
		return nil, fmt.Errorf("opacity must be positive, got %f", kappa)
	}
	if sampler == nil {
		return nil, fmt.Errorf("sampler is required")
	}
	return &Loop{
		props:   props,
		kappa:   kappa,
		sampler: sampler,
		pop:     walk.NewPopulation(photons),
		next:    walk.NewPopulation(photons),
		state:   Running,
	}, nil
}

func (l *Loop) AddObserver(o Observer)         { l.observers = append(l.observers, o) }
func (l *Loop) AddMetric(m Metric)             { l.metrics = append(l.metrics, m) }
func (l *Loop) AddCancelSignal(s CancelSignal) { l.signals = append(l.signals, s) }

func (l *Loop) State() State                   { return l.state }
func (l *Loop) Tick() int                      { return l.tick }
func (l *Loop) Properties() stellar.Properties { return l.props }

// Population returns a copy of the current photon states.
func (l *Loop) Population() walk.Population { return l.pop.Clone() }

// Result is nil until the loop terminates.
func (l *Loop) Result() *Result { return l.result }

// Step runs one tick. It reports whether the loop is still running.
// Cancellation is checked before any photon moves, so a cancelled tick
// leaves the population untouched.
func (l *Loop) Step(ctx context.Context) (bool, error) {
	if l.state == Terminated {
		return false, ErrTerminated
	}
	if l.started.IsZero() {
		l.started = time.Now()
		for _, m := range l.metrics {
			m.Reset()
		}
	}

	if l.cancelled(ctx) {
		l.terminate(ctx, ReasonCancelled, nil)
		return false, nil
	}

	for i := range l.pop {
		s, err := walk.Advance(l.pop[i], l.props, l.kappa, l.sampler)
		if err != nil {
			stepErr := &StepError{Tick: l.tick + 1, Photon: i, Wrapped: err}
			l.terminate(ctx, ReasonFailed, stepErr)
			return false, stepErr
		}
		l.next[i] = s
	}
	l.pop, l.next = l.next, l.pop
	l.tick++

	for _, m := range l.metrics {
		m.Observe(l.tick, l.pop)
	}
	for _, o := range l.observers {
		o.OnTick(l.tick, l.pop.Clone())
	}

	furthest := l.pop.Furthest()
	logging.FromContext(ctx).V(logging.TRACE).Info("tick", "tick", l.tick, "furthest", furthest)

	if furthest > l.props.RadiusSteps() {
		l.terminate(ctx, ReasonEscaped, nil)
		return false, nil
	}
	return true, nil
}

// Run steps the loop until it terminates.
func (l *Loop) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)
	logger.V(logging.DEBUG).Info("starting photon walk",
		"photons", len(l.pop),
		"radiusSteps", l.props.RadiusSteps(),
		"centralDensity", l.props.CentralDensity,
		"opacity", l.kappa)

	for {
		running, err := l.Step(ctx)
		if err != nil {
			return l.result, err
		}
		if !running {
			return l.result, nil
		}
	}
}

func (l *Loop) cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}
	for _, s := range l.signals {
		if s.Cancelled() {
			return true
		}
	}
	return false
}

func (l *Loop) terminate(ctx context.Context, reason Reason, err error) {
	l.state = Terminated
	l.result = &Result{
		Reason:     reason,
		Ticks:      l.tick,
		Furthest:   l.pop.Furthest(),
		Escaped:    l.pop.Escaped(l.props.RadiusSteps()),
		Population: l.pop.Clone(),
		Metrics:    make(map[string]float64, len(l.metrics)),
		Elapsed:    time.Since(l.started),
		Err:        err,
	}
	for _, m := range l.metrics {
		l.result.Metrics[m.Name()] = m.Value()
	}

	logging.FromContext(ctx).V(logging.DEBUG).Info("photon walk terminated",
		"reason", reason.String(),
		"ticks", l.tick,
		"furthest", l.result.Furthest,
		"escaped", l.result.Escaped)

	for _, o := range l.observers {
		if t, ok := o.(TerminationObserver); ok {
			t.OnTerminate(l.result)
		}
	}
}
