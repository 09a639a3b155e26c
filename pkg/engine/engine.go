// Package engine ties the pipeline to an embedder: it owns the frame loop
// ordering (dispatch, build, layout, paint, composite, present) and routes
// pointer input through hit testing.
//
// The embedder supplies a Surface and calls RunFrame whenever NeedsFrame
// reports true (or when OnNeedsFrame wakes its loop). All tree access
// happens on the embedder's frame goroutine; use Dispatch to marshal work
// onto it from anywhere else.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/events"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// Surface is the embedder's output target. Present receives the root
// compositing layer after every frame; the embedder replays it onto its
// backend canvas and descends into child layers.
type Surface interface {
	// Size is the surface's current size in logical pixels.
	Size() graphics.Size

	// DevicePixelRatio is the physical-to-logical pixel scale.
	DevicePixelRatio() float64

	// Present hands over the frame's root layer.
	Present(layer *graphics.Layer) error
}

// FrameCallback runs during a frame with the frame's timestamp.
type FrameCallback func(now time.Time)

// App drives an application: one surface, one render view, one build root.
type App struct {
	surface  Surface
	pipeline *layout.PipelineOwner
	view     *layout.RenderView
	builder  *core.BuildOwner

	// OnNeedsFrame is invoked (at most once per quiet period) when anything
	// schedules work for the next frame. Safe to leave nil when the
	// embedder polls NeedsFrame instead.
	OnNeedsFrame func()

	frameRequested atomic.Bool
	inFrame        atomic.Bool
	frameCount     uint64

	mu                 sync.Mutex
	frameCallbacks     []FrameCallback
	postFrameCallbacks []FrameCallback

	// lastPointer remembers each pointer's previous position so move events
	// carry deltas even when the embedder does not supply them.
	lastPointer map[int]graphics.Offset

	// taps tracks, per pointer, the tap target the down event landed on.
	taps map[int]layout.TapTarget
}

// NewApp wires a build callback to a surface. The first RunFrame produces
// the initial frame.
func NewApp(surface Surface, build core.BuildFunc) *App {
	pipeline := &layout.PipelineOwner{}
	view := layout.NewRenderView(surface.Size())
	view.PrepareInitialFrame(pipeline)

	app := &App{
		surface:     surface,
		pipeline:    pipeline,
		view:        view,
		builder:     core.NewBuildOwner(pipeline, view),
		lastPointer: map[int]graphics.Offset{},
	}
	pipeline.OnNeedsFrame = app.requestFrame
	app.builder.OnNeedsFrame = app.requestFrame
	app.builder.SetRoot(build)
	return app
}

// View exposes the render view, primarily for tests and tooling.
func (a *App) View() *layout.RenderView { return a.view }

// Builder exposes the build owner, for Dispatch and state plumbing.
func (a *App) Builder() *core.BuildOwner { return a.builder }

// FrameCount reports how many frames have been produced.
func (a *App) FrameCount() uint64 { return a.frameCount }

func (a *App) requestFrame() {
	if a.inFrame.Load() {
		// Scheduling from inside RunFrame either gets flushed later in the
		// same frame or shows up in the dirty lists NeedsFrame checks.
		return
	}
	if a.frameRequested.Swap(true) {
		return
	}
	if a.OnNeedsFrame != nil {
		a.OnNeedsFrame()
	}
}

// NeedsFrame reports whether anything is waiting on a frame.
func (a *App) NeedsFrame() bool {
	return a.frameRequested.Load() ||
		a.builder.NeedsBuild() ||
		a.pipeline.NeedsLayout() ||
		a.pipeline.NeedsPaint()
}

// ScheduleFrameCallback runs fn at the start of the next frame, before the
// build phase. One shot; animation tickers re-register every frame.
func (a *App) ScheduleFrameCallback(fn FrameCallback) {
	a.mu.Lock()
	a.frameCallbacks = append(a.frameCallbacks, fn)
	a.mu.Unlock()
	a.requestFrame()
}

// AddPostFrameCallback runs fn once after the next frame is presented.
func (a *App) AddPostFrameCallback(fn FrameCallback) {
	a.mu.Lock()
	a.postFrameCallbacks = append(a.postFrameCallbacks, fn)
	a.mu.Unlock()
}

// Dispatch marshals work onto the frame loop; it runs before the next
// build flush.
func (a *App) Dispatch(callback func()) {
	a.builder.Dispatch(callback)
	a.requestFrame()
}

func (a *App) takeFrameCallbacks() []FrameCallback {
	a.mu.Lock()
	defer a.mu.Unlock()
	callbacks := a.frameCallbacks
	a.frameCallbacks = nil
	return callbacks
}

func (a *App) takePostFrameCallbacks() []FrameCallback {
	a.mu.Lock()
	defer a.mu.Unlock()
	callbacks := a.postFrameCallbacks
	a.postFrameCallbacks = nil
	return callbacks
}

// RunFrame produces one frame: frame callbacks, build, layout, paint, and
// present. Call it from the embedder's frame loop.
func (a *App) RunFrame(now time.Time) error {
	a.inFrame.Store(true)
	a.frameRequested.Store(false)

	for _, fn := range a.takeFrameCallbacks() {
		fn(now)
	}

	if size := a.surface.Size(); !graphics.SizeEqual(size, a.view.Configuration()) {
		a.view.SetConfiguration(size)
	}

	a.builder.FlushBuild()
	a.pipeline.FlushLayout()
	a.pipeline.FlushPaint()

	err := a.surface.Present(a.view.Layer())
	if err != nil {
		err = errors.Wrap("engine.RunFrame", errors.KindPaint, err)
	}
	a.frameCount++
	a.inFrame.Store(false)

	// A ticker or other frame callback re-registered during the frame still
	// needs the embedder woken for the next one.
	a.mu.Lock()
	rearmed := len(a.frameCallbacks) > 0
	a.mu.Unlock()
	if rearmed {
		a.requestFrame()
	}

	for _, fn := range a.takePostFrameCallbacks() {
		fn(now)
	}
	return err
}

// DispatchPointer routes a pointer event through hit testing: every
// handler on the hit path receives the event with the position rewritten
// into its own coordinates. Tap targets fire on up when the down landed on
// them too.
func (a *App) DispatchPointer(event events.PointerEvent) {
	if event.Phase == events.PointerPhaseMove && event.Delta == (graphics.Offset{}) {
		if last, ok := a.lastPointer[event.PointerID]; ok {
			event.Delta = event.Position.Sub(last)
		}
	}
	switch event.Phase {
	case events.PointerPhaseUp, events.PointerPhaseCancel:
		delete(a.lastPointer, event.PointerID)
	default:
		a.lastPointer[event.PointerID] = event.Position
	}

	result := a.view.HitTestFromRoot(event.Position)
	for _, entry := range result.Entries {
		if handler, ok := entry.Target.(events.PointerHandler); ok {
			local := event
			local.Position = entry.Position
			handler.HandlePointer(local)
		}
	}
	a.dispatchTap(event, result)
}

func (a *App) dispatchTap(event events.PointerEvent, result *layout.HitTestResult) {
	switch event.Phase {
	case events.PointerPhaseDown:
		for _, entry := range result.Entries {
			if target, ok := entry.Target.(layout.TapTarget); ok {
				if a.taps == nil {
					a.taps = map[int]layout.TapTarget{}
				}
				a.taps[event.PointerID] = target
				break
			}
		}
	case events.PointerPhaseUp:
		target := a.takePendingTap(event.PointerID)
		if target == nil {
			return
		}
		// A tap fires only when the up lands on the same target the down
		// did.
		for _, entry := range result.Entries {
			if hit, ok := target.(layout.RenderObject); ok && entry.Target == hit {
				target.OnTap()
				return
			}
		}
	case events.PointerPhaseCancel:
		a.takePendingTap(event.PointerID)
	}
}

func (a *App) takePendingTap(pointerID int) layout.TapTarget {
	target, ok := a.taps[pointerID]
	if !ok {
		return nil
	}
	delete(a.taps, pointerID)
	return target
}
