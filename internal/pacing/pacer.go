// Package pacing replays an already settled round as a sequence of timed
// frames: spinning reels, a dealer turning cards, a ball settling. Frames are
// presentation only; by the time the first one is shown the round has been
// settled and the ledger credited.
package pacing

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Frame is one step of a reveal. Delay is measured from the previous frame.
type Frame struct {
	Delay time.Duration
	Text  string
	Final bool
}

// Total is the time a sequence of frames takes to play.
func Total(frames []Frame) time.Duration {
	var d time.Duration
	for _, f := range frames {
		d += f.Delay
	}
	return d
}

// Pacer schedules frames on a clock.
type Pacer struct {
	clock quartz.Clock
}

// New creates a pacer. A nil clock uses the real one.
func New(clock quartz.Clock) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{clock: clock}
}

// Playback is a reveal in progress.
type Playback struct {
	mu      sync.Mutex
	timer   *quartz.Timer
	stopped bool
	done    chan struct{}
	once    sync.Once
}

// Done is closed once the last frame was shown or the playback was stopped.
func (p *Playback) Done() <-chan struct{} { return p.done }

// Stop cancels the frames not shown yet. It reports whether anything was
// still pending.
func (p *Playback) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	p.stopped = true
	pending := p.timer != nil && p.timer.Stop()
	p.finish()
	return pending
}

func (p *Playback) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *Playback) finish() {
	p.once.Do(func() { close(p.done) })
}

// Start shows frames in order, calling fn for each after its delay. Frames
// without a delay are shown straight away on the calling goroutine; the rest
// run on the clock's goroutine, so fn must not block.
func (p *Pacer) Start(frames []Frame, fn func(Frame)) *Playback {
	pb := &Playback{done: make(chan struct{})}
	p.schedule(pb, frames, fn)
	return pb
}

func (p *Pacer) schedule(pb *Playback, frames []Frame, fn func(Frame)) {
	for len(frames) > 0 && frames[0].Delay <= 0 {
		if pb.isStopped() {
			return
		}
		fn(frames[0])
		frames = frames[1:]
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.stopped {
		return
	}
	if len(frames) == 0 {
		pb.finish()
		return
	}

	next, rest := frames[0], frames[1:]
	pb.timer = p.clock.AfterFunc(next.Delay, func() {
		if pb.isStopped() {
			return
		}
		fn(next)
		p.schedule(pb, rest, fn)
	}, "pacing", "frame")
}

// Play shows frames and blocks until they have all been shown or ctx is done.
func (p *Pacer) Play(ctx context.Context, frames []Frame, fn func(Frame)) error {
	pb := p.Start(frames, fn)
	select {
	case <-pb.Done():
		return nil
	case <-ctx.Done():
		pb.Stop()
		return ctx.Err()
	}
}
