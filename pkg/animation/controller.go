package animation

import (
	"fmt"
	"time"
)

// Status is where a controller sits in its lifecycle.
type Status int

const (
	// StatusDismissed means stopped at the lower bound.
	StatusDismissed Status = iota
	// StatusForward means running toward the upper bound.
	StatusForward
	// StatusReverse means running toward the lower bound.
	StatusReverse
	// StatusCompleted means stopped at the upper bound.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusDismissed:
		return "dismissed"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller progresses a value between its bounds over a duration, easing
// it through a curve. Listeners fire on every tick; widgets typically set
// state from a listener to rebuild with the new value.
//
// Controller implements core.Disposable, so core.UseController manages its
// lifetime.
type Controller struct {
	// Value is the current animation value.
	Value float64

	// Duration is the time a full lower-to-upper run takes.
	Duration time.Duration

	// Curve transforms linear progress; nil means linear.
	Curve func(float64) float64

	// LowerBound and UpperBound default to 0 and 1.
	LowerBound float64
	UpperBound float64

	status          Status
	ticker          *Ticker
	scheduler       Scheduler
	target          float64
	startValue      float64
	listeners       map[int]func()
	statusListeners map[int]func(Status)
	nextListener    int
}

// NewController creates a dismissed controller at the lower bound.
func NewController(scheduler Scheduler, duration time.Duration) *Controller {
	return &Controller{
		Duration:        duration,
		UpperBound:      1,
		Curve:           Linear,
		scheduler:       scheduler,
		listeners:       map[int]func(){},
		statusListeners: map[int]func(Status){},
	}
}

// Forward runs from the current value to the upper bound.
func (c *Controller) Forward() {
	c.animateTo(c.UpperBound, StatusForward)
}

// Reverse runs from the current value to the lower bound.
func (c *Controller) Reverse() {
	c.animateTo(c.LowerBound, StatusReverse)
}

// AnimateTo runs from the current value to target.
func (c *Controller) AnimateTo(target float64) {
	if target > c.Value {
		c.animateTo(target, StatusForward)
	} else {
		c.animateTo(target, StatusReverse)
	}
}

func (c *Controller) animateTo(target float64, direction Status) {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.target = target
	c.startValue = c.Value
	c.setStatus(direction)
	c.ticker = NewTicker(c.scheduler, c.tick)
	c.ticker.Start()
}

func (c *Controller) tick(elapsed time.Duration) {
	if c.Duration <= 0 {
		c.Value = c.target
		c.notifyListeners()
		c.settle()
		return
	}

	progress := float64(elapsed) / float64(c.Duration)
	if progress >= 1 {
		progress = 1
	}
	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.startValue + (c.target-c.startValue)*eased
	c.notifyListeners()

	if progress >= 1 {
		c.settle()
	}
}

func (c *Controller) settle() {
	c.Stop()
	switch {
	case c.Value <= c.LowerBound:
		c.setStatus(StatusDismissed)
	case c.Value >= c.UpperBound:
		c.setStatus(StatusCompleted)
	}
}

// Stop halts the controller at its current value.
func (c *Controller) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Reset stops and snaps the value back to the lower bound.
func (c *Controller) Reset() {
	c.Stop()
	c.Value = c.LowerBound
	c.setStatus(StatusDismissed)
	c.notifyListeners()
}

// Status returns the controller's lifecycle status.
func (c *Controller) Status() Status { return c.status }

// IsAnimating reports whether the controller is running.
func (c *Controller) IsAnimating() bool {
	return c.status == StatusForward || c.status == StatusReverse
}

// AddListener registers a per-tick callback and returns its removal.
func (c *Controller) AddListener(fn func()) func() {
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// AddStatusListener registers a status-change callback and returns its
// removal.
func (c *Controller) AddStatusListener(fn func(Status)) func() {
	id := c.nextListener
	c.nextListener++
	c.statusListeners[id] = fn
	return func() { delete(c.statusListeners, id) }
}

func (c *Controller) setStatus(status Status) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *Controller) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose stops the controller and drops its listeners.
func (c *Controller) Dispose() {
	c.Stop()
	c.listeners = nil
	c.statusListeners = nil
}
