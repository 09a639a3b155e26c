package widgets

import (
	"math"
	"reflect"
	"sort"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// SliverChildDelegate supplies a sliver list's children on demand. Only
// the children intersecting the viewport's cache region are alive at any
// moment; the rest exist as indices.
type SliverChildDelegate interface {
	// EstimatedChildCount is the number of children. Extents of children
	// that have never been laid out are estimated from the measured ones.
	EstimatedChildCount() int

	// Build creates the render object for the child at index. The returned
	// box must be fully constructed (SetSelf called).
	Build(index int) layout.RenderBox

	// KeyFor identifies the child at index across delegate swaps, so a live
	// render object survives its index shifting. Nil means identify by
	// index alone.
	KeyFor(index int) any
}

// LayoutObserver is an optional SliverChildDelegate extension notified of
// the materialized index range after every layout. last < first when no
// child intersected the cache region.
type LayoutObserver interface {
	DidFinishLayout(first, last int)
}

// SliverChildBuilder is the closure-based SliverChildDelegate. Keep one
// instance alive across builds; a delegate with a fresh identity every
// build forces the list to re-adopt its children by key each frame.
type SliverChildBuilder struct {
	Count   int
	Builder func(index int) layout.RenderBox
	Keyer   func(index int) any
}

func (d *SliverChildBuilder) EstimatedChildCount() int { return d.Count }

func (d *SliverChildBuilder) Build(index int) layout.RenderBox { return d.Builder(index) }

func (d *SliverChildBuilder) KeyFor(index int) any {
	if d.Keyer == nil {
		return nil
	}
	return d.Keyer(index)
}

// sameDelegate compares delegates by pointer identity. Delegates carrying
// closures are not ==-comparable, so identity is the only safe test.
func sameDelegate(a, b SliverChildDelegate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() == reflect.Pointer && bv.Kind() == reflect.Pointer {
		return av.Type() == bv.Type() && av.Pointer() == bv.Pointer()
	}
	return av.Type() == bv.Type() && av.Comparable() && bv.Comparable() && a == b
}

// SliverList lays out a virtualized run of box children along the scroll
// axis. With ItemExtent set, every child is forced to that main-axis
// extent and the visible range is computed arithmetically; otherwise
// children size themselves and extents are measured as they first appear.
type SliverList struct {
	core.KeyedBase
	Delegate   SliverChildDelegate
	ItemExtent float64
}

func (w SliverList) CreateRenderObject() layout.RenderObject {
	r := &renderSliverList{
		delegate:   w.Delegate,
		itemExtent: w.ItemExtent,
		live:       map[int]layout.RenderBox{},
		keys:       map[int]any{},
		extents:    map[int]float64{},
		orphans:    map[any]layout.RenderBox{},
	}
	r.SetSelf(r)
	return r
}

func (w SliverList) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderSliverList)
	changed := false
	if !sameDelegate(r.delegate, w.Delegate) {
		r.setDelegate(w.Delegate)
		changed = true
	}
	if r.itemExtent != w.ItemExtent {
		r.itemExtent = w.ItemExtent
		r.extents = map[int]float64{}
		changed = true
	}
	if changed {
		r.MarkNeedsLayout()
	}
}

type renderSliverList struct {
	layout.RenderSliverBase
	delegate   SliverChildDelegate
	itemExtent float64

	// live maps indices to materialized children; keys remembers each live
	// child's delegate key for reuse across delegate swaps.
	live map[int]layout.RenderBox
	keys map[int]any

	// extents caches measured main-axis extents by index so children
	// scrolled out of the cache region keep their offsets stable.
	extents map[int]float64

	// orphans holds keyed children detached from their index by a delegate
	// swap, awaiting reuse; whatever is left after layout is dropped.
	orphans map[any]layout.RenderBox
}

// setDelegate orphans the live children so the next layout can re-adopt
// them by key under their new indices.
func (r *renderSliverList) setDelegate(delegate SliverChildDelegate) {
	for index, child := range r.live {
		if key := r.keys[index]; key != nil {
			r.orphans[key] = child
		} else {
			r.RemoveChild(child)
		}
		delete(r.live, index)
		delete(r.keys, index)
	}
	r.extents = map[int]float64{}
	r.delegate = delegate
}

func (r *renderSliverList) mainExtentOf(size graphics.Size) float64 {
	if r.SliverConstraints().Axis() == layout.AxisHorizontal {
		return size.Width
	}
	return size.Height
}

// ensureChild returns the live child at index, materializing it if needed
// and keeping the underlying child list in index order.
func (r *renderSliverList) ensureChild(index int) layout.RenderBox {
	if child, ok := r.live[index]; ok {
		return child
	}
	key := r.delegate.KeyFor(index)
	var child layout.RenderBox
	if key != nil {
		if orphan, ok := r.orphans[key]; ok {
			child = orphan
			delete(r.orphans, key)
		}
	}
	fresh := child == nil
	if fresh {
		child = r.delegate.Build(index)
	}

	// Anchor behind the nearest live predecessor so paint order tracks
	// index order.
	var after layout.RenderObject
	anchorIndex := -1
	for i, sibling := range r.live {
		if i < index && i > anchorIndex {
			anchorIndex = i
			after = sibling
		}
	}
	if fresh {
		r.InsertChild(child, after)
	} else {
		r.MoveChild(child, after)
	}
	r.live[index] = child
	r.keys[index] = key
	return child
}

// collectGarbage drops live children outside [first, last] and any keyed
// orphans layout did not re-adopt.
func (r *renderSliverList) collectGarbage(first, last int) {
	for index, child := range r.live {
		if index >= first && index <= last {
			continue
		}
		r.RemoveChild(child)
		delete(r.live, index)
		delete(r.keys, index)
	}
	for key, child := range r.orphans {
		r.RemoveChild(child)
		delete(r.orphans, key)
	}
	if observer, ok := r.delegate.(LayoutObserver); ok {
		observer.DidFinishLayout(first, last)
	}
}

func (r *renderSliverList) PerformLayout() {
	constraints := r.SliverConstraints()
	count := 0
	if r.delegate != nil {
		count = r.delegate.EstimatedChildCount()
	}
	if count <= 0 {
		r.collectGarbage(0, -1)
		r.SetGeometry(layout.SliverGeometryZero)
		return
	}
	if r.itemExtent > 0 {
		r.performFixedExtentLayout(constraints, count)
		return
	}
	r.performMeasuredLayout(constraints, count)
}

// performFixedExtentLayout computes the live range arithmetically; no
// child has to exist to know where any child goes.
func (r *renderSliverList) performFixedExtentLayout(constraints layout.SliverConstraints, count int) {
	// RemainingCacheExtent is measured from CacheOrigin, so both band edges
	// shift by it.
	bandStart := constraints.ScrollOffset + constraints.CacheOrigin
	bandEnd := bandStart + constraints.RemainingCacheExtent
	scrollExtent := float64(count) * r.itemExtent

	first := int(math.Floor(bandStart / r.itemExtent))
	if first < 0 {
		first = 0
	}
	last := int(math.Ceil(bandEnd/r.itemExtent)) - 1
	if last > count-1 {
		last = count - 1
	}
	if first > last {
		r.collectGarbage(0, -1)
		r.SetGeometry(layout.SliverGeometry{
			ScrollExtent:   scrollExtent,
			MaxPaintExtent: scrollExtent,
		})
		return
	}

	childConstraints := constraints.AsBoxConstraints(r.itemExtent, r.itemExtent)
	for index := first; index <= last; index++ {
		child := r.ensureChild(index)
		child.Layout(childConstraints, true)
		r.positionChild(child, float64(index)*r.itemExtent-constraints.ScrollOffset)
	}
	r.collectGarbage(first, last)

	leading := float64(first) * r.itemExtent
	trailing := float64(last+1) * r.itemExtent
	geometry := layout.SliverGeometryOf(
		scrollExtent,
		constraints.PaintExtentOf(leading, trailing),
		constraints.CacheExtentOf(leading, trailing),
	)
	geometry.HasVisualOverflow = trailing > constraints.ScrollOffset+constraints.RemainingPaintExtent ||
		constraints.ScrollOffset > 0
	r.SetGeometry(geometry)
}

// performMeasuredLayout walks children in index order, measuring extents
// the first time each child is reached and caching them so later frames
// skip children that stay outside the cache region.
func (r *renderSliverList) performMeasuredLayout(constraints layout.SliverConstraints, count int) {
	bandStart := constraints.ScrollOffset + constraints.CacheOrigin
	bandEnd := bandStart + constraints.RemainingCacheExtent
	childConstraints := constraints.AsBoxConstraints(0, layout.Unbounded)

	offset := 0.0
	first, last := -1, -1
	var leading, trailing float64
	reached := 0

	for index := 0; index < count; index++ {
		start := offset
		var extent float64
		cached, measured := r.extents[index]
		_, alive := r.live[index]

		if start >= bandEnd && !measured {
			// Past the band with nothing measured ahead; estimate the rest.
			break
		}
		switch {
		case start >= bandEnd:
			extent = cached
		case measured && !alive && start+cached <= bandStart:
			// Fully before the band; the cached extent keeps offsets stable
			// without rebuilding the child.
			extent = cached
		default:
			child := r.ensureChild(index)
			child.Layout(childConstraints, true)
			extent = r.mainExtentOf(child.Size())
			r.extents[index] = extent
		}

		end := start + extent
		if end > bandStart && start < bandEnd {
			if first < 0 {
				first = index
				leading = start
			}
			last = index
			trailing = end
			r.positionChild(r.ensureChild(index), start-constraints.ScrollOffset)
		}
		offset = end
		reached = index + 1
	}

	r.collectGarbage(first, last)

	scrollExtent := offset
	if reached < count {
		scrollExtent += r.estimatedExtent() * float64(count-reached)
	}
	if first < 0 {
		r.SetGeometry(layout.SliverGeometry{
			ScrollExtent:   scrollExtent,
			MaxPaintExtent: scrollExtent,
		})
		return
	}
	geometry := layout.SliverGeometryOf(
		scrollExtent,
		constraints.PaintExtentOf(leading, trailing),
		constraints.CacheExtentOf(leading, trailing),
	)
	geometry.HasVisualOverflow = trailing > constraints.ScrollOffset+constraints.RemainingPaintExtent ||
		constraints.ScrollOffset > 0
	r.SetGeometry(geometry)
}

// estimatedExtent is the average measured extent, used to estimate the
// scroll extent of children never laid out.
func (r *renderSliverList) estimatedExtent() float64 {
	if len(r.extents) == 0 {
		return 0
	}
	total := 0.0
	for _, extent := range r.extents {
		total += extent
	}
	return total / float64(len(r.extents))
}

func (r *renderSliverList) positionChild(child layout.RenderBox, mainAxisOffset float64) {
	offset := graphics.Offset{Y: mainAxisOffset}
	if r.SliverConstraints().Axis() == layout.AxisHorizontal {
		offset = graphics.Offset{X: mainAxisOffset}
	}
	layout.BoxParentDataOf(child).Offset = offset
}

// liveIndices returns the live indices in ascending order.
func (r *renderSliverList) liveIndices() []int {
	indices := make([]int, 0, len(r.live))
	for index := range r.live {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}

func (r *renderSliverList) Paint(ctx *layout.PaintContext) {
	for _, index := range r.liveIndices() {
		child := r.live[index]
		ctx.PaintChildWithLayer(child, layout.BoxParentDataOf(child).Offset)
	}
}

func (r *renderSliverList) HitTestSliverChildren(result *layout.HitTestResult, mainAxisPosition, crossAxisPosition float64) bool {
	constraints := r.SliverConstraints()
	position := graphics.Offset{X: crossAxisPosition, Y: mainAxisPosition}
	if constraints.Axis() == layout.AxisHorizontal {
		position = graphics.Offset{X: mainAxisPosition, Y: crossAxisPosition}
	}
	indices := r.liveIndices()
	for i := len(indices) - 1; i >= 0; i-- {
		child := r.live[indices[i]]
		offset := layout.BoxParentDataOf(child).Offset
		hit := result.AddWithPaintOffset(offset, position,
			func(result *layout.HitTestResult, transformed graphics.Offset) bool {
				return child.HitTest(transformed, result)
			})
		if hit {
			return true
		}
	}
	return false
}

// LiveChildCount reports how many children are currently materialized.
func (r *renderSliverList) LiveChildCount() int { return len(r.live) }

// FirstLiveIndex reports the smallest materialized index, or -1.
func (r *renderSliverList) FirstLiveIndex() int {
	indices := r.liveIndices()
	if len(indices) == 0 {
		return -1
	}
	return indices[0]
}
