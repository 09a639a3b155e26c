package layout

import "slices"

// PipelineOwner tracks render objects that need layout or paint.
//
// Layout scheduling works with relayout boundaries: when a node needs
// layout, MarkNeedsLayout walks up to the nearest boundary, marking each
// node along the way, and the boundary lands here. FlushLayout then
// re-lays out boundaries parents-first; the dirty path below each boundary
// is laid out as part of its PerformLayout.
type PipelineOwner struct {
	dirtyLayout    []RenderObject        // boundaries needing layout, processed depth-first
	dirtyLayoutSet map[RenderObject]bool // O(1) dedup check
	dirtyPaint     map[RenderObject]struct{}
	needsLayout    bool
	needsPaint     bool

	// OnNeedsFrame is invoked when scheduling makes a new frame necessary.
	// The embedder uses it to wake its frame loop.
	OnNeedsFrame func()

	frameRequested bool
}

// ScheduleLayout marks a relayout boundary as needing layout.
// Only relayout boundaries should be scheduled here - intermediate nodes
// are marked via MarkNeedsLayout but not scheduled directly.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[RenderObject]bool)
	}
	if p.dirtyLayoutSet[object] {
		return
	}
	p.dirtyLayoutSet[object] = true
	p.dirtyLayout = append(p.dirtyLayout, object)
	p.needsLayout = true
	p.needsPaint = true
}

// SchedulePaint marks a repaint boundary as needing paint.
func (p *PipelineOwner) SchedulePaint(object RenderObject) {
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[RenderObject]struct{})
	}
	if _, exists := p.dirtyPaint[object]; exists {
		return
	}
	p.dirtyPaint[object] = struct{}{}
	p.needsPaint = true
}

// NeedsLayout reports if any render objects need layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if any render objects need paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// requestVisualUpdate asks the embedder for a frame, at most once until the
// next flush.
func (p *PipelineOwner) requestVisualUpdate() {
	if p.frameRequested {
		return
	}
	p.frameRequested = true
	if p.OnNeedsFrame != nil {
		p.OnNeedsFrame()
	}
}

// FlushLayout processes scheduled boundaries in depth order (parents first).
//
// Boundaries are processed parent-first so that if a parent and child are
// both scheduled, the parent lays out first and may clear the child's dirty
// flag as a side effect (the child gets laid out as part of the parent's
// PerformLayout). Boundaries scheduled while the flush runs join the same
// pass.
func (p *PipelineOwner) FlushLayout() {
	for len(p.dirtyLayout) > 0 {
		slices.SortFunc(p.dirtyLayout, func(a, b RenderObject) int {
			return a.node().depth - b.node().depth
		})

		dirty := p.dirtyLayout
		p.dirtyLayout = nil
		p.dirtyLayoutSet = nil

		for _, object := range dirty {
			n := object.node()
			// A parent's layout may have already laid this node out, and a
			// node may have been detached since it was scheduled.
			if n.needsLayout && n.owner == p {
				n.layoutWithoutResize()
			}
		}
	}
	p.needsLayout = false
	p.frameRequested = false
}

// FlushPaint repaints dirty repaint boundaries in depth order (parents
// first) into their layers. Nodes scheduled while the flush runs wait for
// the next frame.
func (p *PipelineOwner) FlushPaint() {
	if !p.needsPaint || len(p.dirtyPaint) == 0 {
		p.dirtyPaint = nil
		p.needsPaint = false
		return
	}

	dirty := make([]RenderObject, 0, len(p.dirtyPaint))
	for object := range p.dirtyPaint {
		dirty = append(dirty, object)
	}
	p.dirtyPaint = nil
	p.needsPaint = false

	slices.SortFunc(dirty, func(a, b RenderObject) int {
		return a.node().depth - b.node().depth
	})

	for _, object := range dirty {
		n := object.node()
		// A parent boundary's repaint may have already repainted this one.
		if n.needsPaint && n.owner == p {
			RepaintCompositedChild(object)
		}
	}
}
