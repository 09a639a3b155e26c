package layout

import "github.com/go-loom/loom/pkg/graphics"

// HitTestEntry records one render object hit at a position expressed in
// that object's own coordinates.
type HitTestEntry struct {
	Target   RenderObject
	Position graphics.Offset
}

// HitTestResult collects hit entries front-most first.
//
// As the test descends the tree, each level that paints its children at an
// offset pushes that offset so entries record local positions and the
// engine can recover each target's position from the root.
type HitTestResult struct {
	Entries []HitTestEntry

	// transforms accumulates the paint offsets from the root to the level
	// currently being tested.
	transforms []graphics.Offset
}

// Add appends a hit on target at the given local position.
func (h *HitTestResult) Add(target RenderObject, position graphics.Offset) {
	h.Entries = append(h.Entries, HitTestEntry{Target: target, Position: position})
}

// CurrentTransform returns the accumulated offset from the root to the
// level currently being tested.
func (h *HitTestResult) CurrentTransform() graphics.Offset {
	if len(h.transforms) == 0 {
		return graphics.Offset{}
	}
	return h.transforms[len(h.transforms)-1]
}

// AddWithPaintOffset runs a child hit test with the position translated
// into the child's coordinates, pushing the child's paint offset for the
// duration of the callback.
func (h *HitTestResult) AddWithPaintOffset(
	offset graphics.Offset,
	position graphics.Offset,
	hitTest func(result *HitTestResult, transformed graphics.Offset) bool,
) bool {
	h.transforms = append(h.transforms, h.CurrentTransform().Add(offset))
	hit := hitTest(h, position.Sub(offset))
	h.transforms = h.transforms[:len(h.transforms)-1]
	return hit
}

// TapTarget is a render object that responds to tap events.
type TapTarget interface {
	OnTap()
}
