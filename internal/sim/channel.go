package sim

import (
	"context"

	"github.com/san-kum/photonwalk/internal/walk"
)

// Event is either a frame or the final result.
type Event struct {
	Tick       int
	Population walk.Population
	Result     *Result
}

// FrameChannel hands frames to a consumer running on another goroutine.
// OnTick blocks until the consumer has received the frame, so the loop never
// runs ahead of the previous handoff. If ctx is done the frame is dropped.
type FrameChannel struct {
	ctx context.Context
	ch  chan Event
}

func NewFrameChannel(ctx context.Context) *FrameChannel {
	return &FrameChannel{ctx: ctx, ch: make(chan Event)}
}

func (f *FrameChannel) Events() <-chan Event { return f.ch }

func (f *FrameChannel) OnTick(tick int, pop walk.Population) {
	select {
	case f.ch <- Event{Tick: tick, Population: pop}:
	case <-f.ctx.Done():
	}
}

// OnTerminate delivers the result and closes the channel.
func (f *FrameChannel) OnTerminate(res *Result) {
	select {
	case f.ch <- Event{Tick: res.Ticks, Population: res.Population, Result: res}:
	case <-f.ctx.Done():
	}
	close(f.ch)
}
