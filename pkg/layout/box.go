package layout

import (
	"fmt"

	"github.com/go-loom/loom/pkg/graphics"
)

// RenderBoxBase is the embeddable base for box-protocol render objects.
//
// It adds a size, intrinsic sizing with memoization, speculative (dry)
// layout, and the default box hit testing to the shared node plumbing.
type RenderBoxBase struct {
	nodeBase
	size    graphics.Size
	hasSize bool

	intrinsicCache map[intrinsicKey]float64
	dryLayoutCache map[BoxConstraints]graphics.Size
}

type intrinsicDimension int

const (
	intrinsicMinWidth intrinsicDimension = iota
	intrinsicMaxWidth
	intrinsicMinHeight
	intrinsicMaxHeight
)

type intrinsicKey struct {
	dimension intrinsicDimension
	argument  float64
}

// Size returns the size adopted during layout. Reading it before layout is
// a bug in the caller and panics.
func (r *RenderBoxBase) Size() graphics.Size {
	if !r.hasSize {
		panic(fmt.Sprintf("layout: size of %T read before layout", r.self))
	}
	return r.size
}

// HasSize reports whether the box has been laid out at least once.
func (r *RenderBoxBase) HasSize() bool { return r.hasSize }

// SetSize adopts a size; PerformLayout implementations must call this
// exactly once, with a size satisfying the current constraints.
func (r *RenderBoxBase) SetSize(size graphics.Size) {
	r.size = size
	r.hasSize = true
}

// BoxConstraints returns the box constraints from the most recent layout.
func (r *RenderBoxBase) BoxConstraints() BoxConstraints {
	return BoxConstraintsOf(r.constraints)
}

// PaintBounds covers the box's size at its own origin.
func (r *RenderBoxBase) PaintBounds() graphics.Rect {
	if !r.hasSize {
		return graphics.Rect{}
	}
	return graphics.RectFromOffsetSize(graphics.Offset{}, r.size)
}

// PerformResize adopts the smallest size allowed by the constraints. Boxes
// that are SizedByParent with different sizing override this.
func (r *RenderBoxBase) PerformResize() {
	r.SetSize(r.BoxConstraints().Smallest())
}

// GetDryLayout speculatively computes the size the box would adopt under
// the given constraints, without mutating any layout state. Results are
// memoized until the next MarkNeedsLayout.
func (r *RenderBoxBase) GetDryLayout(constraints BoxConstraints) graphics.Size {
	if size, ok := r.dryLayoutCache[constraints]; ok {
		return size
	}
	var size graphics.Size
	if computer, ok := r.self.(interface {
		ComputeDryLayout(BoxConstraints) graphics.Size
	}); ok {
		size = computer.ComputeDryLayout(constraints)
	} else {
		size = constraints.Constrain(graphics.Size{})
	}
	if r.dryLayoutCache == nil {
		r.dryLayoutCache = make(map[BoxConstraints]graphics.Size)
	}
	r.dryLayoutCache[constraints] = size
	return size
}

// MinIntrinsicWidth returns the smallest width the box can paint its
// content in, given at most the argument's worth of height.
func (r *RenderBoxBase) MinIntrinsicWidth(height float64) float64 {
	return r.intrinsic(intrinsicMinWidth, height)
}

// MaxIntrinsicWidth returns the smallest width beyond which more width
// never reduces the required height.
func (r *RenderBoxBase) MaxIntrinsicWidth(height float64) float64 {
	return r.intrinsic(intrinsicMaxWidth, height)
}

// MinIntrinsicHeight is the vertical analogue of MinIntrinsicWidth.
func (r *RenderBoxBase) MinIntrinsicHeight(width float64) float64 {
	return r.intrinsic(intrinsicMinHeight, width)
}

// MaxIntrinsicHeight is the vertical analogue of MaxIntrinsicWidth.
func (r *RenderBoxBase) MaxIntrinsicHeight(width float64) float64 {
	return r.intrinsic(intrinsicMaxHeight, width)
}

func (r *RenderBoxBase) intrinsic(dimension intrinsicDimension, argument float64) float64 {
	key := intrinsicKey{dimension: dimension, argument: argument}
	if value, ok := r.intrinsicCache[key]; ok {
		return value
	}
	value := r.computeIntrinsic(dimension, argument)
	if r.intrinsicCache == nil {
		r.intrinsicCache = make(map[intrinsicKey]float64)
	}
	r.intrinsicCache[key] = value
	return value
}

func (r *RenderBoxBase) computeIntrinsic(dimension intrinsicDimension, argument float64) float64 {
	switch dimension {
	case intrinsicMinWidth:
		if c, ok := r.self.(interface{ ComputeMinIntrinsicWidth(float64) float64 }); ok {
			return c.ComputeMinIntrinsicWidth(argument)
		}
	case intrinsicMaxWidth:
		if c, ok := r.self.(interface{ ComputeMaxIntrinsicWidth(float64) float64 }); ok {
			return c.ComputeMaxIntrinsicWidth(argument)
		}
	case intrinsicMinHeight:
		if c, ok := r.self.(interface{ ComputeMinIntrinsicHeight(float64) float64 }); ok {
			return c.ComputeMinIntrinsicHeight(argument)
		}
	case intrinsicMaxHeight:
		if c, ok := r.self.(interface{ ComputeMaxIntrinsicHeight(float64) float64 }); ok {
			return c.ComputeMaxIntrinsicHeight(argument)
		}
	}
	return 0
}

// invalidateLayoutCaches drops memoized intrinsic and dry layout results.
// MarkNeedsLayout calls this through the self reference.
func (r *RenderBoxBase) invalidateLayoutCaches() {
	r.intrinsicCache = nil
	r.dryLayoutCache = nil
}

// PerformLayout defaults to laying out a sole child under the box's own
// constraints and adopting its size; leaves adopt the smallest size.
func (r *RenderBoxBase) PerformLayout() {
	constraints := r.BoxConstraints()
	if child := r.FirstChild(); child != nil {
		child.Layout(constraints, true)
		r.SetSize(child.(RenderBox).Size())
		return
	}
	r.SetSize(constraints.Smallest())
}

// HitTest implements the default box protocol: a position inside the box
// hits if a child or the box itself claims it. Children are tested in
// reverse paint order so the entries come out front-most first.
func (r *RenderBoxBase) HitTest(position graphics.Offset, result *HitTestResult) bool {
	if !r.hasSize || !r.size.Contains(position) {
		return false
	}
	hit := r.hitTestChildren(position, result)
	if !hit {
		if selfTester, ok := r.self.(interface {
			HitTestSelf(graphics.Offset) bool
		}); ok && selfTester.HitTestSelf(position) {
			hit = true
		}
	}
	if hit {
		result.Add(r.self, position)
	}
	return hit
}

func (r *RenderBoxBase) hitTestChildren(position graphics.Offset, result *HitTestResult) bool {
	if tester, ok := r.self.(interface {
		HitTestChildren(graphics.Offset, *HitTestResult) bool
	}); ok {
		return tester.HitTestChildren(position, result)
	}
	for i := len(r.children) - 1; i >= 0; i-- {
		child, ok := r.children[i].(RenderBox)
		if !ok {
			continue
		}
		offset := BoxParentDataOf(child).Offset
		hit := result.AddWithPaintOffset(offset, position,
			func(result *HitTestResult, transformed graphics.Offset) bool {
				return child.HitTest(transformed, result)
			})
		if hit {
			return true
		}
	}
	return false
}
