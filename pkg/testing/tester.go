// Package testing is the widget test harness: it mounts a build function on
// a fake surface, pumps frames deterministically, finds elements in the
// mounted tree, and simulates pointer input.
//
// The package shares its name with the standard library, so import it with
// an alias:
//
//	import loomtest "github.com/go-loom/loom/pkg/testing"
package testing

import (
	"testing"
	"time"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/engine"
	"github.com/go-loom/loom/pkg/events"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

const (
	// DefaultWidth is the fake surface's logical width.
	DefaultWidth = 800
	// DefaultHeight is the fake surface's logical height.
	DefaultHeight = 600

	frameInterval = 16 * time.Millisecond
)

// fakeSurface collects presented layers instead of rasterizing them.
type fakeSurface struct {
	size      graphics.Size
	scale     float64
	presented []*graphics.Layer
}

func (s *fakeSurface) Size() graphics.Size { return s.size }

func (s *fakeSurface) DevicePixelRatio() float64 { return s.scale }

func (s *fakeSurface) Present(l *graphics.Layer) error {
	s.presented = append(s.presented, l)
	return nil
}

// Tester drives an App against a fake surface with a deterministic clock.
type Tester struct {
	t       *testing.T
	app     *engine.App
	surface *fakeSurface
	now     time.Time

	nextPointer int
}

// Option configures a Tester before the tree is mounted.
type Option func(*fakeSurface)

// WithSize overrides the fake surface size.
func WithSize(width, height float64) Option {
	return func(s *fakeSurface) { s.size = graphics.Size{Width: width, Height: height} }
}

// WithDevicePixelRatio overrides the fake surface scale.
func WithDevicePixelRatio(scale float64) Option {
	return func(s *fakeSurface) { s.scale = scale }
}

// Mount builds the widget tree and produces the first frame.
func Mount(t *testing.T, build core.BuildFunc, opts ...Option) *Tester {
	t.Helper()
	surface := &fakeSurface{
		size:  graphics.Size{Width: DefaultWidth, Height: DefaultHeight},
		scale: 1,
	}
	for _, opt := range opts {
		opt(surface)
	}
	tester := &Tester{
		t:           t,
		app:         engine.NewApp(surface, build),
		surface:     surface,
		now:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		nextPointer: 1,
	}
	tester.Pump()
	return tester
}

// App exposes the engine under test.
func (x *Tester) App() *engine.App { return x.app }

// View exposes the render view.
func (x *Tester) View() *layout.RenderView { return x.app.View() }

// Now reports the tester's current frame time.
func (x *Tester) Now() time.Time { return x.now }

// Resize changes the surface size and pumps a frame so layout reflects it.
func (x *Tester) Resize(width, height float64) {
	x.t.Helper()
	x.surface.size = graphics.Size{Width: width, Height: height}
	x.Pump()
}

// Pump advances the clock one frame interval and runs a frame.
func (x *Tester) Pump() {
	x.t.Helper()
	x.now = x.now.Add(frameInterval)
	if err := x.app.RunFrame(x.now); err != nil {
		x.t.Fatalf("RunFrame: %v", err)
	}
}

// PumpUntilIdle pumps frames until nothing schedules more work. It fails
// the test after maxFrames, which catches trees that rebuild forever.
func (x *Tester) PumpUntilIdle(maxFrames int) {
	x.t.Helper()
	for i := 0; i < maxFrames; i++ {
		if !x.app.NeedsFrame() {
			return
		}
		x.Pump()
	}
	if x.app.NeedsFrame() {
		x.t.Fatalf("tree did not settle within %d frames", maxFrames)
	}
}

// PresentedFrames returns every root layer handed to the surface so far.
func (x *Tester) PresentedFrames() []*graphics.Layer { return x.surface.presented }

// LastFrame returns the most recently presented root layer.
func (x *Tester) LastFrame() *graphics.Layer {
	x.t.Helper()
	if len(x.surface.presented) == 0 {
		x.t.Fatalf("no frame has been presented yet")
	}
	return x.surface.presented[len(x.surface.presented)-1]
}

// TapAt sends a down/up pair at the given surface position and pumps.
func (x *Tester) TapAt(position graphics.Offset) {
	x.t.Helper()
	id := x.allocPointer()
	x.app.DispatchPointer(events.PointerEvent{
		PointerID: id, Phase: events.PointerPhaseDown, Position: position,
	})
	x.app.DispatchPointer(events.PointerEvent{
		PointerID: id, Phase: events.PointerPhaseUp, Position: position,
	})
	x.Pump()
}

// DragFrom presses at start, moves by delta across steps move events, and
// releases. Deltas are synthesized by the engine from the positions.
func (x *Tester) DragFrom(start, delta graphics.Offset, steps int) {
	x.t.Helper()
	if steps < 1 {
		steps = 1
	}
	id := x.allocPointer()
	x.app.DispatchPointer(events.PointerEvent{
		PointerID: id, Phase: events.PointerPhaseDown, Position: start,
	})
	position := start
	for i := 1; i <= steps; i++ {
		position = graphics.Offset{
			X: start.X + delta.X*float64(i)/float64(steps),
			Y: start.Y + delta.Y*float64(i)/float64(steps),
		}
		x.app.DispatchPointer(events.PointerEvent{
			PointerID: id, Phase: events.PointerPhaseMove, Position: position,
		})
	}
	x.app.DispatchPointer(events.PointerEvent{
		PointerID: id, Phase: events.PointerPhaseUp, Position: position,
	})
	x.Pump()
}

// ScrollAt sends a wheel event at the given position and pumps.
func (x *Tester) ScrollAt(position, scrollDelta graphics.Offset) {
	x.t.Helper()
	x.app.DispatchPointer(events.PointerEvent{
		PointerID: x.allocPointer(), Phase: events.PointerPhaseScroll,
		Position: position, ScrollDelta: scrollDelta,
	})
	x.Pump()
}

func (x *Tester) allocPointer() int {
	id := x.nextPointer
	x.nextPointer++
	return id
}
