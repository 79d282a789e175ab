package storage

import (
	"github.com/san-kum/photonwalk/internal/sim"
	"github.com/san-kum/photonwalk/internal/walk"
)

// Frame is the population at one tick.
type Frame struct {
	Tick       int
	Population walk.Population
}

// Recorder keeps every stride-th frame plus the final one.
type Recorder struct {
	stride int
	frames []Frame
}

func NewRecorder(stride int) *Recorder {
	if stride < 1 {
		stride = 1
	}
	return &Recorder{stride: stride, frames: []Frame{}}
}

func (r *Recorder) OnTick(tick int, pop walk.Population) {
	if tick%r.stride == 0 {
		r.frames = append(r.frames, Frame{Tick: tick, Population: pop})
	}
}

func (r *Recorder) OnTerminate(res *sim.Result) {
	if res.Ticks == 0 {
		return
	}
	if n := len(r.frames); n == 0 || r.frames[n-1].Tick != res.Ticks {
		r.frames = append(r.frames, Frame{Tick: res.Ticks, Population: res.Population})
	}
}

func (r *Recorder) Frames() []Frame { return r.frames }
