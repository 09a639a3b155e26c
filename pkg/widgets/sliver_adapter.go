package widgets

import (
	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// SliverToBoxAdapter hosts a single box child inside a sliver sequence.
type SliverToBoxAdapter struct {
	core.KeyedBase
}

func (w SliverToBoxAdapter) CreateRenderObject() layout.RenderObject {
	r := &renderSliverToBoxAdapter{}
	r.SetSelf(r)
	return r
}

func (w SliverToBoxAdapter) UpdateRenderObject(renderObject layout.RenderObject) {}

type renderSliverToBoxAdapter struct {
	layout.RenderSliverBase
}

func (r *renderSliverToBoxAdapter) PerformLayout() {
	constraints := r.SliverConstraints()
	child, ok := r.FirstChild().(layout.RenderBox)
	if !ok {
		r.SetGeometry(layout.SliverGeometryZero)
		return
	}
	child.Layout(constraints.AsBoxConstraints(0, layout.Unbounded), true)

	childExtent := child.Size().Height
	if constraints.Axis() == layout.AxisHorizontal {
		childExtent = child.Size().Width
	}
	paintedExtent := constraints.PaintExtentOf(0, childExtent)
	cacheExtent := constraints.CacheExtentOf(0, childExtent)

	geometry := layout.SliverGeometryOf(childExtent, paintedExtent, cacheExtent)
	geometry.HasVisualOverflow = childExtent > constraints.RemainingPaintExtent ||
		constraints.ScrollOffset > 0
	r.SetGeometry(geometry)

	// The child's leading edge sits -ScrollOffset before the sliver's
	// visible leading edge.
	offset := graphics.Offset{Y: -constraints.ScrollOffset}
	if constraints.Axis() == layout.AxisHorizontal {
		offset = graphics.Offset{X: -constraints.ScrollOffset}
	}
	layout.BoxParentDataOf(child).Offset = offset
}

func (r *renderSliverToBoxAdapter) HitTestSliverChildren(result *layout.HitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	child, ok := r.FirstChild().(layout.RenderBox)
	if !ok {
		return false
	}
	constraints := r.SliverConstraints()
	position := graphics.Offset{X: crossAxisPosition, Y: mainAxisPosition}
	if constraints.Axis() == layout.AxisHorizontal {
		position = graphics.Offset{X: mainAxisPosition, Y: crossAxisPosition}
	}
	offset := layout.BoxParentDataOf(child).Offset
	return result.AddWithPaintOffset(offset, position,
		func(result *layout.HitTestResult, transformed graphics.Offset) bool {
			return child.HitTest(transformed, result)
		})
}

func (r *renderSliverToBoxAdapter) ChildMainAxisPosition(child layout.RenderObject) float64 {
	return -r.SliverConstraints().ScrollOffset
}
