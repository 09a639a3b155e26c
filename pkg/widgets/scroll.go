package widgets

import (
	"math"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/events"
	"github.com/go-loom/loom/pkg/layout"
)

// ScrollPhysics decides how a scroll position responds at and beyond its
// content bounds.
type ScrollPhysics interface {
	// ApplyBoundaryConditions returns the part of a proposed offset change
	// the position must reject; zero inside the scrollable range.
	ApplyBoundaryConditions(position *ScrollPosition, value float64) float64
}

// ClampingScrollPhysics stops hard at the content edges.
type ClampingScrollPhysics struct{}

func (ClampingScrollPhysics) ApplyBoundaryConditions(position *ScrollPosition, value float64) float64 {
	if value < position.MinScrollExtent() {
		return value - position.MinScrollExtent()
	}
	if value > position.MaxScrollExtent() {
		return value - position.MaxScrollExtent()
	}
	return 0
}

// ScrollPosition is the mutable scroll state a viewport reads and a
// scroll view writes. It implements ViewOffset.
type ScrollPosition struct {
	physics ScrollPhysics

	pixels            float64
	minScrollExtent   float64
	maxScrollExtent   float64
	viewportDimension float64
	hasDimensions     bool

	dragging bool

	listeners  map[int]func()
	nextListen int
}

// NewScrollPosition returns a position at offset zero. A nil physics
// defaults to clamping.
func NewScrollPosition(physics ScrollPhysics) *ScrollPosition {
	if physics == nil {
		physics = ClampingScrollPhysics{}
	}
	return &ScrollPosition{
		physics:   physics,
		listeners: map[int]func(){},
	}
}

func (p *ScrollPosition) Pixels() float64          { return p.pixels }
func (p *ScrollPosition) MinScrollExtent() float64 { return p.minScrollExtent }
func (p *ScrollPosition) MaxScrollExtent() float64 { return p.maxScrollExtent }

// ViewportDimension is the viewport's main-axis extent from the last
// layout; zero before the first layout.
func (p *ScrollPosition) ViewportDimension() float64 { return p.viewportDimension }

func (p *ScrollPosition) ApplyViewportDimension(extent float64) bool {
	p.viewportDimension = extent
	return true
}

func (p *ScrollPosition) ApplyContentDimensions(minScrollExtent, maxScrollExtent float64) bool {
	p.minScrollExtent = minScrollExtent
	p.maxScrollExtent = maxScrollExtent
	p.hasDimensions = true
	clamped := math.Max(minScrollExtent, math.Min(maxScrollExtent, p.pixels))
	if clamped != p.pixels {
		// The content shrank out from under the offset; move and lay out
		// again at the corrected position.
		p.pixels = clamped
		return false
	}
	return true
}

func (p *ScrollPosition) CorrectBy(delta float64) {
	p.pixels += delta
}

// JumpTo moves to value, subject to the physics' boundary conditions, and
// notifies listeners when the offset actually moved.
func (p *ScrollPosition) JumpTo(value float64) {
	if p.hasDimensions {
		value -= p.physics.ApplyBoundaryConditions(p, value)
	}
	if value == p.pixels {
		return
	}
	p.pixels = value
	p.notify()
}

// ScrollBy moves by delta in scroll offset space: positive deltas scroll
// toward higher offsets.
func (p *ScrollPosition) ScrollBy(delta float64) {
	p.JumpTo(p.pixels + delta)
}

// StartDrag begins a pointer drag; Move deltas feed UpdateDrag until
// EndDrag.
func (p *ScrollPosition) StartDrag() { p.dragging = true }

// Dragging reports whether a pointer drag is in progress.
func (p *ScrollPosition) Dragging() bool { return p.dragging }

// UpdateDrag applies a pointer movement: content follows the finger, so
// the offset moves opposite the pointer delta.
func (p *ScrollPosition) UpdateDrag(pointerDelta float64) {
	if !p.dragging {
		return
	}
	p.ScrollBy(-pointerDelta)
}

func (p *ScrollPosition) EndDrag() { p.dragging = false }

func (p *ScrollPosition) AddListener(fn func()) int {
	id := p.nextListen
	p.nextListen++
	p.listeners[id] = fn
	return id
}

func (p *ScrollPosition) RemoveListener(id int) {
	delete(p.listeners, id)
}

func (p *ScrollPosition) notify() {
	for _, fn := range p.listeners {
		fn()
	}
}

// Dispose drops all listeners; core.UseController calls it when the
// owning element unmounts.
func (p *ScrollPosition) Dispose() {
	p.listeners = map[int]func(){}
}

// ScrollView declares a scrollable viewport bound to position: wheel
// scrolls and pointer drags move the offset, slivers declares the
// content. The position must outlive rebuilds; hold it in UseController
// or on the embedder.
func ScrollView(ui *core.Ui, position *ScrollPosition, axisDirection layout.AxisDirection, slivers func(ui *core.Ui)) {
	axis := axisDirection.Axis()
	mainOf := func(x, y float64) float64 {
		if axis == layout.AxisHorizontal {
			return x
		}
		return y
	}
	ui.RenderNode(Listener{
		OnPointer: func(event events.PointerEvent) {
			switch event.Phase {
			case events.PointerPhaseScroll:
				position.ScrollBy(mainOf(event.ScrollDelta.X, event.ScrollDelta.Y))
			case events.PointerPhaseDown:
				position.StartDrag()
			case events.PointerPhaseMove:
				position.UpdateDrag(mainOf(event.Delta.X, event.Delta.Y))
			case events.PointerPhaseUp, events.PointerPhaseCancel:
				position.EndDrag()
			}
		},
	}, func(ui *core.Ui) {
		ui.RenderNode(Viewport{
			AxisDirection: axisDirection,
			Offset:        position,
		}, slivers)
	})
}

var _ ViewOffset = (*ScrollPosition)(nil)
