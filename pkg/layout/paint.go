package layout

import (
	"fmt"

	"github.com/go-loom/loom/pkg/graphics"
)

// PaintContext provides the canvas a render object paints into, tracks the
// layer being recorded, and culls children that fall outside the clip.
type PaintContext struct {
	Canvas graphics.Canvas

	// layer is the compositing layer being recorded into, when painting
	// under a repaint boundary.
	layer *graphics.Layer

	// Cull state: the accumulated translation and clip in the recording
	// layer's coordinates.
	dx, dy float64
	clip   *graphics.Rect
}

// PushTranslation shifts the origin for subsequent painting.
func (p *PaintContext) PushTranslation(dx, dy float64) {
	p.Canvas.Translate(dx, dy)
	p.dx += dx
	p.dy += dy
}

// PushClipRect restricts subsequent painting to rect (in current local
// coordinates).
func (p *PaintContext) PushClipRect(rect graphics.Rect) {
	p.Canvas.ClipRect(rect)
	global := rect.Translate(p.dx, p.dy)
	if p.clip == nil {
		p.clip = &global
	} else {
		intersection := p.clip.Intersect(global)
		p.clip = &intersection
	}
}

// culled reports whether a child painted at offset lies entirely outside
// the current clip.
func (p *PaintContext) culled(child RenderObject, offset graphics.Offset) bool {
	if p.clip == nil {
		return false
	}
	bounds := child.PaintBounds().Translate(offset.X+p.dx, offset.Y+p.dy)
	if bounds.IsEmpty() {
		return false
	}
	return !p.clip.Overlaps(bounds)
}

// PaintChild paints a child inline at the given offset, regardless of
// boundary status. Children outside the clip are culled.
func (p *PaintContext) PaintChild(child RenderObject, offset graphics.Offset) {
	if child == nil || p.culled(child, offset) {
		return
	}
	p.Canvas.Save()
	p.Canvas.Translate(offset.X, offset.Y)
	paintNode(child, p)
	p.Canvas.Restore()
}

// PaintChildWithLayer paints a child at the given offset, compositing
// through the child's layer when the child is a repaint boundary.
//
// A clean boundary child with a cached layer of the right size costs a
// single layer reference here: neither the child nor this recording
// re-record anything. A dirty boundary child repaints into its own layer
// first. Children outside the clip are culled.
func (p *PaintContext) PaintChildWithLayer(child RenderObject, offset graphics.Offset) {
	if child == nil || p.culled(child, offset) {
		return
	}
	if child.IsRepaintBoundary() {
		cn := child.node()
		if cn.needsPaint || cn.layer == nil ||
			!graphics.SizeEqual(cn.layer.Size(), child.PaintBounds().Size()) {
			RepaintCompositedChild(child)
		}
		cn.layer.SetOffset(offset)
		p.Canvas.DrawLayer(cn.layer, offset)
		if p.layer != nil {
			p.layer.AddChild(cn.layer)
		}
		return
	}
	p.Canvas.Save()
	p.Canvas.Translate(offset.X, offset.Y)
	paintNode(child, p)
	p.Canvas.Restore()
}

// paintNode clears the dirty flag and invokes the node's Paint. A node that
// re-dirties itself while painting is a bug.
func paintNode(node RenderObject, ctx *PaintContext) {
	n := node.node()
	n.needsPaint = false
	node.Paint(ctx)
	if n.needsPaint {
		panic(fmt.Sprintf("layout: %T marked itself dirty during Paint", node))
	}
}

// RepaintCompositedChild records a repaint boundary's subtree into its
// layer. The cached layer is reused when its size still matches the
// child's paint bounds; otherwise a fresh layer replaces it.
func RepaintCompositedChild(child RenderObject) {
	if !child.IsRepaintBoundary() {
		panic(fmt.Sprintf("layout: RepaintCompositedChild on non-boundary %T", child))
	}
	cn := child.node()
	bounds := child.PaintBounds().Size()
	layer := cn.layer
	if layer == nil || !graphics.SizeEqual(layer.Size(), bounds) {
		layer = graphics.NewLayer(bounds)
		cn.layer = layer
	}
	layer.ClearChildren()

	recorder := &graphics.PictureRecorder{}
	ctx := &PaintContext{
		Canvas: recorder.BeginRecording(bounds),
		layer:  layer,
	}
	paintNode(child, ctx)
	layer.SetContent(recorder.EndRecording())
}
