package widgets

import (
	"fmt"
	"math"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// DefaultCacheExtent is how far beyond the visible region, in logical
// pixels, a viewport keeps slivers laid out.
const DefaultCacheExtent = 250.0

// maxLayoutCycles bounds how many scroll offset corrections a viewport
// accepts in one layout pass before declaring the slivers inconsistent.
const maxLayoutCycles = 10

// ViewOffset is a viewport's window onto its scrollable content. The
// viewport reports its dimensions during layout and reads the current
// pixel offset; scrolling mutates the offset and notifies listeners.
type ViewOffset interface {
	// Pixels is the current scroll offset.
	Pixels() float64

	// ApplyViewportDimension records the viewport's main-axis extent.
	// Returning false forces another layout pass.
	ApplyViewportDimension(extent float64) bool

	// ApplyContentDimensions records the scrollable range. Returning false
	// (after clamping the offset into range) forces another layout pass.
	ApplyContentDimensions(minScrollExtent, maxScrollExtent float64) bool

	// CorrectBy adjusts the offset without notifying listeners. Only layout
	// calls this, in response to a sliver's ScrollOffsetCorrection.
	CorrectBy(delta float64)

	// AddListener registers fn to run whenever the offset changes, returning
	// a handle for RemoveListener.
	AddListener(fn func()) int

	// RemoveListener drops a previously registered listener.
	RemoveListener(id int)
}

// Viewport is the box-to-sliver bridge: it fills the room its parent
// gives it and lays out sliver children through the window described by
// Offset. Children must speak the sliver protocol.
type Viewport struct {
	core.KeyedBase

	// AxisDirection is the direction scroll offsets grow in, typically
	// AxisDirectionDown.
	AxisDirection layout.AxisDirection

	// Offset is the scroll offset source, usually a ScrollPosition.
	Offset ViewOffset

	// CacheExtent is how far past the visible region slivers stay laid out.
	// Zero means DefaultCacheExtent.
	CacheExtent float64

	// CacheExtentStyle interprets CacheExtent as pixels or viewport
	// multiples.
	CacheExtentStyle layout.CacheExtentStyle
}

func (w Viewport) CreateRenderObject() layout.RenderObject {
	r := &renderViewport{
		axisDirection:    w.AxisDirection,
		offset:           w.Offset,
		cacheExtent:      w.CacheExtent,
		cacheExtentStyle: w.CacheExtentStyle,
		listenerID:       -1,
	}
	r.SetSelf(r)
	return r
}

func (w Viewport) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderViewport)
	changed := false
	if r.axisDirection != w.AxisDirection {
		r.axisDirection = w.AxisDirection
		changed = true
	}
	if r.offset != w.Offset {
		r.detachOffset()
		r.offset = w.Offset
		r.attachOffset()
		changed = true
	}
	if r.cacheExtent != w.CacheExtent || r.cacheExtentStyle != w.CacheExtentStyle {
		r.cacheExtent = w.CacheExtent
		r.cacheExtentStyle = w.CacheExtentStyle
		changed = true
	}
	if changed {
		r.MarkNeedsLayout()
	}
}

type renderViewport struct {
	layout.RenderBoxBase
	axisDirection    layout.AxisDirection
	offset           ViewOffset
	cacheExtent      float64
	cacheExtentStyle layout.CacheExtentStyle
	listenerID       int

	// Out-of-band layout results, collected while laying out the sliver
	// sequence.
	minScrollExtent   float64
	maxScrollExtent   float64
	hasVisualOverflow bool
}

// Viewports composite into their own layer so scrolling repaints nothing
// outside them, and their clip stays local to that layer.
func (r *renderViewport) IsRepaintBoundary() bool { return true }

func (r *renderViewport) SizedByParent() bool { return true }

func (r *renderViewport) PerformResize() {
	constraints := r.BoxConstraints()
	if !constraints.HasBoundedWidth() || !constraints.HasBoundedHeight() {
		panic("widgets: viewport needs bounded constraints")
	}
	r.SetSize(constraints.Biggest())
}

func (r *renderViewport) SetupParentData(child layout.RenderObject) {
	child.(interface{ SetParentData(any) }).SetParentData(&layout.SliverLogicalParentData{})
}

func (r *renderViewport) Attach(owner *layout.PipelineOwner) {
	r.RenderBoxBase.Attach(owner)
	r.attachOffset()
}

func (r *renderViewport) Detach() {
	r.detachOffset()
	r.RenderBoxBase.Detach()
}

func (r *renderViewport) attachOffset() {
	if r.offset != nil && r.listenerID < 0 {
		r.listenerID = r.offset.AddListener(r.MarkNeedsLayout)
	}
}

func (r *renderViewport) detachOffset() {
	if r.offset != nil && r.listenerID >= 0 {
		r.offset.RemoveListener(r.listenerID)
	}
	r.listenerID = -1
}

func (r *renderViewport) axis() layout.Axis { return r.axisDirection.Axis() }

func (r *renderViewport) mainAxisExtent() float64 {
	if r.axis() == layout.AxisHorizontal {
		return r.Size().Width
	}
	return r.Size().Height
}

func (r *renderViewport) crossAxisExtent() float64 {
	if r.axis() == layout.AxisHorizontal {
		return r.Size().Height
	}
	return r.Size().Width
}

func (r *renderViewport) crossAxisDirection() layout.AxisDirection {
	if r.axis() == layout.AxisHorizontal {
		return layout.AxisDirectionDown
	}
	return layout.AxisDirectionRight
}

func (r *renderViewport) PerformLayout() {
	mainAxisExtent := r.mainAxisExtent()
	crossAxisExtent := r.crossAxisExtent()
	r.offset.ApplyViewportDimension(mainAxisExtent)

	if r.ChildCount() == 0 {
		r.minScrollExtent = 0
		r.maxScrollExtent = 0
		r.hasVisualOverflow = false
		r.offset.ApplyContentDimensions(0, 0)
		return
	}

	for cycles := 0; ; cycles++ {
		if cycles >= maxLayoutCycles {
			panic(fmt.Sprintf(
				"widgets: viewport gave up after %d scroll offset corrections; "+
					"a sliver keeps changing its answer", maxLayoutCycles))
		}
		correction := r.attemptLayout(mainAxisExtent, crossAxisExtent, r.offset.Pixels())
		if correction != 0 {
			r.offset.CorrectBy(correction)
			continue
		}
		if r.offset.ApplyContentDimensions(
			math.Min(0, r.minScrollExtent),
			math.Max(0, r.maxScrollExtent-mainAxisExtent),
		) {
			break
		}
	}
}

// attemptLayout runs one pass over the sliver sequence and returns the
// scroll offset correction to apply, or zero when the pass stands.
func (r *renderViewport) attemptLayout(mainAxisExtent, crossAxisExtent, correctedOffset float64) float64 {
	r.minScrollExtent = 0
	r.maxScrollExtent = 0
	r.hasVisualOverflow = false

	calculatedCacheExtent := r.cacheExtent
	if calculatedCacheExtent == 0 {
		calculatedCacheExtent = DefaultCacheExtent
	}
	if r.cacheExtentStyle == layout.CacheExtentStyleViewport {
		calculatedCacheExtent = r.cacheExtent * mainAxisExtent
	}
	fullCacheExtent := mainAxisExtent + 2*calculatedCacheExtent

	// centerOffset is where the zero scroll offset sits relative to the
	// viewport's leading edge; negative once the user has scrolled past it.
	centerOffset := -correctedOffset
	leadingPaintRoom := math.Min(math.Max(centerOffset, 0), mainAxisExtent)
	leadingCacheRoom := math.Min(math.Max(centerOffset+calculatedCacheExtent, 0), fullCacheExtent)

	return r.layoutChildSequence(
		math.Max(0, -centerOffset),                     // scrollOffset
		math.Min(0, -centerOffset),                     // overlap
		leadingPaintRoom,                               // layoutOffset
		math.Max(0, mainAxisExtent-leadingPaintRoom),   // remainingPaintExtent
		mainAxisExtent,
		crossAxisExtent,
		math.Max(0, fullCacheExtent-leadingCacheRoom),  // remainingCacheExtent
		math.Min(math.Max(centerOffset, -calculatedCacheExtent), 0), // cacheOrigin
	)
}

func (r *renderViewport) layoutChildSequence(
	scrollOffset, overlap, layoutOffset, remainingPaintExtent float64,
	mainAxisExtent, crossAxisExtent float64,
	remainingCacheExtent, cacheOrigin float64,
) float64 {
	initialLayoutOffset := layoutOffset
	maxPaintOffset := layoutOffset + overlap
	precedingScrollExtent := 0.0

	for i := 0; i < r.ChildCount(); i++ {
		child, ok := r.ChildAt(i).(layout.RenderSliver)
		if !ok {
			panic(fmt.Sprintf("widgets: viewport child %T does not speak the sliver protocol", r.ChildAt(i)))
		}

		sliverScrollOffset := math.Max(0, scrollOffset)
		correctedCacheOrigin := math.Max(cacheOrigin, -sliverScrollOffset)
		cacheExtentCorrection := cacheOrigin - correctedCacheOrigin

		child.Layout(layout.SliverConstraints{
			AxisDirection:          r.axisDirection,
			GrowthDirection:        layout.GrowthDirectionForward,
			UserScrollDirection:    layout.ScrollDirectionIdle,
			ScrollOffset:           sliverScrollOffset,
			PrecedingScrollExtent:  precedingScrollExtent,
			Overlap:                maxPaintOffset - layoutOffset,
			RemainingPaintExtent:   math.Max(0, remainingPaintExtent-layoutOffset+initialLayoutOffset),
			CrossAxisExtent:        crossAxisExtent,
			CrossAxisDirection:     r.crossAxisDirection(),
			ViewportMainAxisExtent: mainAxisExtent,
			RemainingCacheExtent:   math.Max(0, remainingCacheExtent+cacheExtentCorrection),
			CacheOrigin:            correctedCacheOrigin,
		}, true)

		geometry := child.Geometry()
		if geometry.ScrollOffsetCorrection != 0 {
			return geometry.ScrollOffsetCorrection
		}

		effectiveLayoutOffset := layoutOffset + geometry.PaintOrigin
		if geometry.Visible || scrollOffset > 0 {
			r.setChildLayoutOffset(child, effectiveLayoutOffset)
		} else {
			r.setChildLayoutOffset(child, -scrollOffset+initialLayoutOffset)
		}
		maxPaintOffset = math.Max(effectiveLayoutOffset+geometry.PaintExtent, maxPaintOffset)

		scrollOffset -= geometry.ScrollExtent
		precedingScrollExtent += geometry.ScrollExtent
		layoutOffset += geometry.LayoutExtent
		if geometry.CacheExtent != 0 {
			remainingCacheExtent -= geometry.CacheExtent - cacheExtentCorrection
			cacheOrigin = math.Min(correctedCacheOrigin+geometry.CacheExtent, 0)
		}

		r.maxScrollExtent += geometry.ScrollExtent
		if geometry.HasVisualOverflow {
			r.hasVisualOverflow = true
		}
	}
	return 0
}

func sliverParentDataOf(child layout.RenderObject) *layout.SliverLogicalParentData {
	data, ok := child.(interface{ ParentData() any }).ParentData().(*layout.SliverLogicalParentData)
	if !ok {
		panic(fmt.Sprintf("widgets: expected sliver parent data on %T", child))
	}
	return data
}

func (r *renderViewport) setChildLayoutOffset(child layout.RenderSliver, offset float64) {
	sliverParentDataOf(child).LayoutOffset = offset
}

// paintOffsetOf maps a child's layout offset to the graphics offset its
// leading edge paints at, honoring reversed axis directions.
func (r *renderViewport) paintOffsetOf(child layout.RenderSliver) graphics.Offset {
	layoutOffset := sliverParentDataOf(child).LayoutOffset
	paintExtent := child.Geometry().PaintExtent
	switch r.axisDirection {
	case layout.AxisDirectionDown:
		return graphics.Offset{Y: layoutOffset}
	case layout.AxisDirectionRight:
		return graphics.Offset{X: layoutOffset}
	case layout.AxisDirectionUp:
		return graphics.Offset{Y: r.Size().Height - layoutOffset - paintExtent}
	default: // AxisDirectionLeft
		return graphics.Offset{X: r.Size().Width - layoutOffset - paintExtent}
	}
}

func (r *renderViewport) Paint(ctx *layout.PaintContext) {
	if r.hasVisualOverflow {
		ctx.PushClipRect(r.PaintBounds())
	}
	for i := 0; i < r.ChildCount(); i++ {
		child := r.ChildAt(i).(layout.RenderSliver)
		if child.Geometry().Visible {
			ctx.PaintChildWithLayer(child, r.paintOffsetOf(child))
		}
	}
}

func (r *renderViewport) HitTestChildren(position graphics.Offset, result *layout.HitTestResult) bool {
	mainAxisPosition, crossAxisPosition := position.Y, position.X
	if r.axis() == layout.AxisHorizontal {
		mainAxisPosition, crossAxisPosition = position.X, position.Y
	}
	for i := r.ChildCount() - 1; i >= 0; i-- {
		child := r.ChildAt(i).(layout.RenderSliver)
		if !child.Geometry().Visible {
			continue
		}
		paintOffset := r.paintOffsetOf(child)
		childMain := r.childMainAxisPosition(child, mainAxisPosition, paintOffset)
		hit := result.AddWithPaintOffset(paintOffset, position,
			func(result *layout.HitTestResult, _ graphics.Offset) bool {
				return child.HitTestSliver(result, childMain, crossAxisPosition)
			})
		if hit {
			return true
		}
	}
	return false
}

// childMainAxisPosition converts a viewport-local main axis position into
// the child's distance from its visible leading edge.
func (r *renderViewport) childMainAxisPosition(child layout.RenderSliver, mainAxisPosition float64, paintOffset graphics.Offset) float64 {
	switch r.axisDirection {
	case layout.AxisDirectionDown:
		return mainAxisPosition - paintOffset.Y
	case layout.AxisDirectionRight:
		return mainAxisPosition - paintOffset.X
	case layout.AxisDirectionUp:
		return child.Geometry().PaintExtent - (mainAxisPosition - paintOffset.Y)
	default: // AxisDirectionLeft
		return child.Geometry().PaintExtent - (mainAxisPosition - paintOffset.X)
	}
}

// MaxScrollExtent reports the total scrollable extent from the last layout.
func (r *renderViewport) MaxScrollExtent() float64 { return r.maxScrollExtent }
