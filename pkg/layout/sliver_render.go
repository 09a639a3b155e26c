package layout

import (
	"fmt"

	"github.com/go-loom/loom/pkg/graphics"
)

// RenderSliverBase is the embeddable base for sliver-protocol render
// objects. Where boxes answer layout with a size, slivers answer with a
// SliverGeometry.
type RenderSliverBase struct {
	nodeBase
	geometry    SliverGeometry
	hasGeometry bool
}

// Geometry returns the geometry computed during layout. Reading it before
// layout is a bug in the caller and panics.
func (r *RenderSliverBase) Geometry() SliverGeometry {
	if !r.hasGeometry {
		panic(fmt.Sprintf("layout: geometry of %T read before layout", r.self))
	}
	return r.geometry
}

// SetGeometry adopts a geometry; PerformLayout implementations must call
// this exactly once per pass.
func (r *RenderSliverBase) SetGeometry(geometry SliverGeometry) {
	if !geometry.IsNormalized() {
		panic(fmt.Sprintf("layout: %T produced non-normalized geometry %+v", r.self, geometry))
	}
	r.geometry = geometry
	r.hasGeometry = true
}

// SliverConstraints returns the sliver constraints from the most recent
// layout.
func (r *RenderSliverBase) SliverConstraints() SliverConstraints {
	return SliverConstraintsOf(r.constraints)
}

// PaintBounds covers the sliver's painted region: paint extent along the
// main axis, cross axis extent across it.
func (r *RenderSliverBase) PaintBounds() graphics.Rect {
	if !r.hasGeometry {
		return graphics.Rect{}
	}
	constraints := r.SliverConstraints()
	if constraints.Axis() == AxisHorizontal {
		return graphics.RectFromLTWH(0, 0, r.geometry.PaintExtent, constraints.CrossAxisExtent)
	}
	return graphics.RectFromLTWH(0, 0, constraints.CrossAxisExtent, r.geometry.PaintExtent)
}

// HitTestSliver implements the default sliver protocol: positions are
// main/cross axis distances from the sliver's leading edge, accepted within
// the hit test extent.
func (r *RenderSliverBase) HitTestSliver(result *HitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	if !r.hasGeometry {
		return false
	}
	constraints := r.SliverConstraints()
	if mainAxisPosition < 0 || mainAxisPosition >= r.geometry.HitTestExtent ||
		crossAxisPosition < 0 || crossAxisPosition >= constraints.CrossAxisExtent {
		return false
	}
	hit := false
	if tester, ok := r.self.(interface {
		HitTestSliverChildren(*HitTestResult, float64, float64) bool
	}); ok {
		hit = tester.HitTestSliverChildren(result, mainAxisPosition, crossAxisPosition)
	}
	if !hit {
		if selfTester, ok := r.self.(interface {
			HitTestSliverSelf(float64, float64) bool
		}); ok {
			hit = selfTester.HitTestSliverSelf(mainAxisPosition, crossAxisPosition)
		}
	}
	if hit {
		position := graphics.Offset{X: crossAxisPosition, Y: mainAxisPosition}
		if constraints.Axis() == AxisHorizontal {
			position = graphics.Offset{X: mainAxisPosition, Y: crossAxisPosition}
		}
		result.Add(r.self, position)
	}
	return hit
}

// ChildMainAxisPosition returns the distance from the sliver's visible
// leading edge to the given child's layout position. Slivers positioning
// box children override this for hit testing.
func (r *RenderSliverBase) ChildMainAxisPosition(child RenderObject) float64 {
	return 0
}
