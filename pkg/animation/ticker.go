// Package animation drives values over time on top of the engine's frame
// callbacks: a Controller progresses 0 to 1 under an easing curve, and
// Tweens map that progress onto concrete value types.
package animation

import (
	"time"

	"github.com/go-loom/loom/pkg/engine"
)

// Scheduler schedules a callback for the start of the next frame.
// *engine.App implements it; tests substitute a manual pump.
type Scheduler interface {
	ScheduleFrameCallback(fn engine.FrameCallback)
}

// Ticker invokes a callback every frame while active, passing the time
// elapsed since it started. It re-registers itself each frame, so stopping
// simply lets the chain lapse.
type Ticker struct {
	scheduler Scheduler
	callback  func(elapsed time.Duration)

	active   bool
	armed    bool
	started  time.Time
	hasEpoch bool
}

// NewTicker creates an inactive ticker.
func NewTicker(scheduler Scheduler, callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{scheduler: scheduler, callback: callback}
}

// Start activates the ticker. The first tick reports zero elapsed time, at
// the timestamp of the next frame.
func (t *Ticker) Start() {
	if t.active {
		return
	}
	t.active = true
	t.hasEpoch = false
	t.arm()
}

// Stop deactivates the ticker. A frame callback already in flight becomes
// a no-op.
func (t *Ticker) Stop() {
	t.active = false
}

// IsActive reports whether the ticker is running.
func (t *Ticker) IsActive() bool { return t.active }

func (t *Ticker) arm() {
	if t.armed {
		return
	}
	t.armed = true
	t.scheduler.ScheduleFrameCallback(t.tick)
}

func (t *Ticker) tick(now time.Time) {
	t.armed = false
	if !t.active {
		return
	}
	if !t.hasEpoch {
		t.started = now
		t.hasEpoch = true
	}
	t.callback(now.Sub(t.started))
	if t.active {
		t.arm()
	}
}
