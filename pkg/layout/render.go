// Package layout is the render tree: mutable nodes carrying dirty flags
// and depth, the two-phase constraint-passing layout protocol in its box
// and sliver dialects, depth-ordered flushing through the pipeline owner,
// paint recording into compositing layers, and hit testing.
package layout

import (
	"fmt"

	"github.com/go-loom/loom/pkg/graphics"
)

// RenderObject is a node in the render tree.
//
// Concrete render objects embed RenderBoxBase or RenderSliverBase, which
// supply the node plumbing (parent links, depth, dirty flags, relayout
// boundary tracking), and implement PerformLayout and Paint for their
// protocol. After constructing a node, SetSelf must be called with the
// outer value so the base can dispatch to overridden methods; NewX
// constructors do this internally.
type RenderObject interface {
	// node exposes the shared node state to the layout package.
	node() *nodeBase

	// Layout runs the layout protocol with the given constraints. If
	// parentUsesSize is false the parent promises to ignore the child's
	// resulting size, which lets the child become a relayout boundary.
	Layout(constraints Constraints, parentUsesSize bool)

	// PerformLayout computes the node's size or geometry and lays out
	// children. Called by Layout; never call it directly.
	PerformLayout()

	// Paint records the node's visual output. The context's canvas origin
	// is the node's own origin.
	Paint(ctx *PaintContext)

	// VisitChildren calls visitor for each child in paint order.
	VisitChildren(visitor func(RenderObject))

	// IsRepaintBoundary reports whether the node paints into its own layer.
	IsRepaintBoundary() bool

	// SizedByParent reports whether the node's size depends only on its
	// constraints. Such nodes size themselves in PerformResize and are
	// always relayout boundaries.
	SizedByParent() bool

	// PaintBounds is the node's paint region in its own coordinates.
	PaintBounds() graphics.Rect

	// Attach wires the subtree to a pipeline owner; dirty nodes rejoin the
	// owner's dirty lists.
	Attach(owner *PipelineOwner)

	// Detach disconnects the subtree from its pipeline owner.
	Detach()

	// MarkNeedsLayout schedules the node's relayout boundary for layout.
	MarkNeedsLayout()

	// MarkNeedsPaint schedules the node's repaint boundary for paint.
	MarkNeedsPaint()
}

// RenderBox is a render object speaking the box protocol.
type RenderBox interface {
	RenderObject

	// Size is the box's size; valid only after layout.
	Size() graphics.Size

	// HitTest checks whether the position (in the box's coordinates) hits
	// this box or a descendant, appending entries front-most first.
	HitTest(position graphics.Offset, result *HitTestResult) bool
}

// RenderSliver is a render object speaking the sliver protocol.
type RenderSliver interface {
	RenderObject

	// Geometry is the sliver's layout answer; valid only after layout.
	Geometry() SliverGeometry

	// HitTestSliver checks positions expressed as main/cross axis distances
	// from the sliver's leading edge.
	HitTestSliver(result *HitTestResult, mainAxisPosition, crossAxisPosition float64) bool
}

// BoxParentData is the parent data for children of box containers.
type BoxParentData struct {
	// Offset is the child's position in the parent's coordinates.
	Offset graphics.Offset
}

// SliverLogicalParentData is the parent data a viewport stores on its
// sliver children.
type SliverLogicalParentData struct {
	// LayoutOffset is the child's distance from the viewport's zero scroll
	// offset along the growth direction.
	LayoutOffset float64
}

// BoxParentDataOf returns the child's BoxParentData, panicking if the parent
// installed a different kind.
func BoxParentDataOf(child RenderObject) *BoxParentData {
	data, ok := child.node().parentData.(*BoxParentData)
	if !ok {
		panic(fmt.Sprintf("layout: expected *BoxParentData on %T, got %T",
			child, child.node().parentData))
	}
	return data
}

// nodeBase is the state shared by every render object.
type nodeBase struct {
	self             RenderObject
	parent           RenderObject
	children         []RenderObject
	owner            *PipelineOwner
	depth            int
	parentData       any
	constraints      Constraints
	relayoutBoundary RenderObject
	needsLayout      bool
	needsPaint       bool
	layer            *graphics.Layer
}

func (n *nodeBase) node() *nodeBase { return n }

// SetSelf records the outer render object for dynamic dispatch. Constructors
// call this; tests building bare fixtures must call it too.
func (n *nodeBase) SetSelf(self RenderObject) {
	n.self = self
	n.needsLayout = true
	n.needsPaint = true
}

// Parent returns the node's parent, or nil at the root.
func (n *nodeBase) Parent() RenderObject { return n.parent }

// Depth returns the node's depth; roots are at zero and every child is
// strictly deeper than its parent.
func (n *nodeBase) Depth() int { return n.depth }

// Owner returns the pipeline owner the node is attached to, or nil.
func (n *nodeBase) Owner() *PipelineOwner { return n.owner }

// Attached reports whether the node is wired to a pipeline owner.
func (n *nodeBase) Attached() bool { return n.owner != nil }

// NeedsLayout reports whether the node is marked for layout.
func (n *nodeBase) NeedsLayout() bool { return n.needsLayout }

// NeedsPaint reports whether the node is marked for paint.
func (n *nodeBase) NeedsPaint() bool { return n.needsPaint }

// Constraints returns the constraints from the most recent layout.
func (n *nodeBase) Constraints() Constraints { return n.constraints }

// RelayoutBoundary returns the nearest ancestor (possibly the node itself)
// whose layout is insulated from this node's size changes.
func (n *nodeBase) RelayoutBoundary() RenderObject { return n.relayoutBoundary }

// ParentData returns the data the parent stored on this node.
func (n *nodeBase) ParentData() any { return n.parentData }

// SetParentData installs parent data; only the parent should call this.
func (n *nodeBase) SetParentData(data any) { n.parentData = data }

// Layer returns the node's cached compositing layer, if it is a repaint
// boundary that has painted.
func (n *nodeBase) Layer() *graphics.Layer { return n.layer }

// SetLayer installs a compositing layer. Exposed for tests and the
// compositor; repaint boundaries normally get layers from RepaintBoundaryLayer.
func (n *nodeBase) SetLayer(layer *graphics.Layer) { n.layer = layer }

// ClearNeedsPaint resets the paint flag without painting. Test hook.
func (n *nodeBase) ClearNeedsPaint() { n.needsPaint = false }

// Default protocol hooks; embedders override on the outer type.

func (n *nodeBase) IsRepaintBoundary() bool { return false }

func (n *nodeBase) SizedByParent() bool { return false }

func (n *nodeBase) PerformLayout() {}

func (n *nodeBase) Paint(ctx *PaintContext) {
	// Default: paint children at their box offsets.
	for _, child := range n.children {
		data, ok := child.node().parentData.(*BoxParentData)
		offset := graphics.Offset{}
		if ok {
			offset = data.Offset
		}
		ctx.PaintChildWithLayer(child, offset)
	}
}

func (n *nodeBase) VisitChildren(visitor func(RenderObject)) {
	for _, child := range n.children {
		visitor(child)
	}
}

// Layout runs the layout protocol on this node.
//
// The node becomes its own relayout boundary when the parent cannot observe
// its size (tight constraints, parentUsesSize false, sized by parent, or no
// parent at all); otherwise it shares the parent's boundary. A clean node
// receiving identical constraints skips its PerformLayout entirely, only
// repairing boundary references below if the boundary moved.
func (n *nodeBase) Layout(constraints Constraints, parentUsesSize bool) {
	if constraints == nil {
		panic("layout: Layout called with nil constraints")
	}
	if !constraints.IsNormalized() {
		panic(fmt.Sprintf("layout: non-normalized constraints %+v", constraints))
	}

	var boundary RenderObject
	if !parentUsesSize || n.self.SizedByParent() || constraints.IsTight() || n.parent == nil {
		boundary = n.self
	} else {
		boundary = n.parent.node().relayoutBoundary
	}

	if !n.needsLayout && constraints == n.constraints {
		if boundary != n.relayoutBoundary {
			n.relayoutBoundary = boundary
			n.self.VisitChildren(propagateRelayoutBoundary)
		}
		return
	}

	n.constraints = constraints
	if n.relayoutBoundary != nil && boundary != n.relayoutBoundary {
		// The boundary moved; stale references below must be cleared before
		// children are laid out so they recompute against the new boundary.
		n.self.VisitChildren(cleanRelayoutBoundary)
	}
	n.relayoutBoundary = boundary

	if n.self.SizedByParent() {
		if resizer, ok := n.self.(interface{ PerformResize() }); ok {
			resizer.PerformResize()
		}
	}
	n.self.PerformLayout()
	n.needsLayout = false
	n.MarkNeedsPaint()
}

// layoutWithoutResize re-runs layout at the cached constraints. Only the
// pipeline owner calls this, on relayout boundaries.
func (n *nodeBase) layoutWithoutResize() {
	n.self.PerformLayout()
	n.needsLayout = false
	n.MarkNeedsPaint()
}

// MarkNeedsLayout marks the node dirty and schedules its relayout boundary
// with the pipeline owner. Detached nodes stay dirty and are rescheduled on
// attach.
func (n *nodeBase) MarkNeedsLayout() {
	if invalidator, ok := n.self.(interface{ invalidateLayoutCaches() }); ok {
		invalidator.invalidateLayoutCaches()
	}
	if n.needsLayout {
		return
	}
	if n.relayoutBoundary == nil {
		// Never laid out; dirty the path to the root so the first layout
		// pass reaches us.
		n.needsLayout = true
		if n.parent != nil {
			n.parent.MarkNeedsLayout()
		}
		return
	}
	if n.relayoutBoundary != n.self {
		n.needsLayout = true
		if n.parent != nil {
			n.parent.MarkNeedsLayout()
		}
		return
	}
	n.needsLayout = true
	if n.owner != nil {
		n.owner.ScheduleLayout(n.self)
		n.owner.requestVisualUpdate()
	}
}

// MarkNeedsPaint marks the node dirty and schedules its repaint boundary.
func (n *nodeBase) MarkNeedsPaint() {
	if n.needsPaint {
		return
	}
	n.needsPaint = true
	if n.self.IsRepaintBoundary() {
		if n.owner != nil {
			n.owner.SchedulePaint(n.self)
			n.owner.requestVisualUpdate()
		}
		return
	}
	if n.parent != nil {
		n.parent.MarkNeedsPaint()
		return
	}
	// Root without a boundary above it; the owner repaints from the root.
	if n.owner != nil {
		n.owner.requestVisualUpdate()
	}
}

// Attach wires the subtree to a pipeline owner. Nodes that were marked
// dirty while detached re-enter the owner's dirty lists.
func (n *nodeBase) Attach(owner *PipelineOwner) {
	if owner == nil {
		panic("layout: Attach called with nil owner")
	}
	n.owner = owner
	if n.needsLayout && n.relayoutBoundary != nil {
		// Re-run the dirty walk now that scheduling can reach the owner.
		n.needsLayout = false
		n.MarkNeedsLayout()
	}
	if n.needsPaint && n.layer != nil {
		n.needsPaint = false
		n.MarkNeedsPaint()
	}
	n.self.VisitChildren(func(child RenderObject) {
		child.Attach(owner)
	})
}

// Detach disconnects the subtree from its pipeline owner. Dirty flags are
// kept so the subtree reschedules itself if reattached.
func (n *nodeBase) Detach() {
	n.owner = nil
	n.self.VisitChildren(func(child RenderObject) {
		child.Detach()
	})
}

// PaintBounds defaults to an empty rect; RenderBoxBase and RenderSliverBase
// override it.
func (n *nodeBase) PaintBounds() graphics.Rect { return graphics.Rect{} }

// cleanRelayoutBoundary clears stale boundary references below a node whose
// boundary changed, stopping at nodes that are boundaries themselves.
func cleanRelayoutBoundary(child RenderObject) {
	cn := child.node()
	if cn.relayoutBoundary == child {
		return
	}
	cn.relayoutBoundary = nil
	child.VisitChildren(cleanRelayoutBoundary)
}

// propagateRelayoutBoundary repairs boundary references below a clean node
// whose boundary moved without relayout.
func propagateRelayoutBoundary(child RenderObject) {
	cn := child.node()
	if cn.relayoutBoundary == child {
		return
	}
	parentBoundary := cn.parent.node().relayoutBoundary
	if parentBoundary == cn.relayoutBoundary {
		return
	}
	cn.relayoutBoundary = parentBoundary
	child.VisitChildren(propagateRelayoutBoundary)
}
