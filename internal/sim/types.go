package sim

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/san-kum/photonwalk/internal/walk"
)

// State is the lifecycle state of a Loop.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Terminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Reason records why a Loop terminated.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonEscaped: the furthest photon passed the stellar radius.
	ReasonEscaped
	// ReasonCancelled: an external signal or context stopped the run.
	ReasonCancelled
	// ReasonFailed: a photon could not be advanced.
	ReasonFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonEscaped:
		return "escaped"
	case ReasonCancelled:
		return "cancelled"
	case ReasonFailed:
		return "failed"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Observer receives the full population after every tick. The population
// is a copy owned by the observer. OnTick must return once it has taken the
// frame; drawing belongs elsewhere.
type Observer interface {
	OnTick(tick int, pop walk.Population)
}

// TerminationObserver is notified once when the loop terminates.
type TerminationObserver interface {
	OnTerminate(res *Result)
}

type Metric interface {
	Name() string
	Observe(tick int, pop walk.Population)
	Value() float64
	Reset()
}

// CancelSignal is polled once per tick before any photon moves.
type CancelSignal interface {
	Cancelled() bool
}

// CancelFunc adapts a function to CancelSignal.
type CancelFunc func() bool

func (f CancelFunc) Cancelled() bool { return f() }

// Flag is a CancelSignal that may be raised from another goroutine, such as
// a renderer whose surface was closed.
type Flag struct {
	raised atomic.Bool
}

func (f *Flag) Raise()          { f.raised.Store(true) }
func (f *Flag) Cancelled() bool { return f.raised.Load() }

type Result struct {
	Reason     Reason
	Ticks      int
	Furthest   float64
	Escaped    int
	Population walk.Population
	Metrics    map[string]float64
	// Elapsed is the wall-clock time from the first Step to termination.
	Elapsed time.Duration
	Err     error
}

// StepError wraps a failure to advance a photon.
type StepError struct {
	Tick    int
	Photon  int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d photon %d: %v", e.Tick, e.Photon, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
