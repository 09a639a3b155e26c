package layout

import "github.com/go-loom/loom/pkg/graphics"

// RenderView is the root of the render tree. It fills the surface it is
// configured with, imposes tight constraints on its sole child, and owns
// the root compositing layer.
type RenderView struct {
	RenderBoxBase
	configuration graphics.Size
}

// NewRenderView creates a root sized to the given surface dimensions.
func NewRenderView(size graphics.Size) *RenderView {
	v := &RenderView{configuration: size}
	v.SetSelf(v)
	return v
}

// IsRepaintBoundary is always true for the root.
func (v *RenderView) IsRepaintBoundary() bool { return true }

// Configuration returns the surface size the view renders into.
func (v *RenderView) Configuration() graphics.Size { return v.configuration }

// SetConfiguration resizes the view, typically when the surface resizes.
func (v *RenderView) SetConfiguration(size graphics.Size) {
	if size == v.configuration {
		return
	}
	v.configuration = size
	v.constraints = Tight(size)
	v.MarkNeedsLayout()
}

// Child returns the view's sole child, or nil.
func (v *RenderView) Child() RenderObject { return v.FirstChild() }

// SetChild replaces the view's sole child.
func (v *RenderView) SetChild(child RenderObject) {
	v.RemoveAllChildren()
	if child != nil {
		v.AddChild(child)
	}
}

// PrepareInitialFrame attaches the view to the owner and schedules the
// first layout and paint. The root is always its own relayout boundary.
func (v *RenderView) PrepareInitialFrame(owner *PipelineOwner) {
	v.relayoutBoundary = v.self
	v.constraints = Tight(v.configuration)
	v.Attach(owner)
	v.needsLayout = true
	v.needsPaint = true
	owner.ScheduleLayout(v)
	owner.SchedulePaint(v)
}

// PerformLayout adopts the surface size and lays out the child tightly.
// The child cannot influence the root's size, so it becomes a relayout
// boundary of its own.
func (v *RenderView) PerformLayout() {
	v.SetSize(v.configuration)
	if child := v.Child(); child != nil {
		child.Layout(Tight(v.configuration), false)
	}
}

// HitTestFromRoot runs a hit test at a surface position and returns the
// entries front-most first, always ending with the view itself.
func (v *RenderView) HitTestFromRoot(position graphics.Offset) *HitTestResult {
	result := &HitTestResult{}
	if child, ok := v.Child().(RenderBox); ok {
		child.HitTest(position, result)
	}
	result.Add(v, position)
	return result
}
