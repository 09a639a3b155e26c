package layout

import (
	"testing"

	"github.com/go-loom/loom/pkg/graphics"
)

type testRenderBox struct {
	RenderBoxBase
	paintCalls int
}

func (r *testRenderBox) PerformLayout() {
	r.SetSize(graphics.Size{Width: 10, Height: 10})
}

func (r *testRenderBox) Paint(ctx *PaintContext) {
	r.paintCalls++
	ctx.Canvas.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), graphics.DefaultPaint())
}

func (r *testRenderBox) IsRepaintBoundary() bool {
	return true
}

func newTestRenderBox() *testRenderBox {
	r := &testRenderBox{}
	r.SetSelf(r)
	r.SetSize(graphics.Size{Width: 10, Height: 10})
	return r
}

func recordingContext(size graphics.Size) (*PaintContext, *graphics.PictureRecorder) {
	recorder := &graphics.PictureRecorder{}
	return &PaintContext{Canvas: recorder.BeginRecording(size)}, recorder
}

func TestPaintChildWithLayer_UsesCachedLayerWhenClean(t *testing.T) {
	child := newTestRenderBox()

	recorder := &graphics.PictureRecorder{}
	recordCanvas := recorder.BeginRecording(graphics.Size{Width: 10, Height: 10})
	recordCanvas.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), graphics.DefaultPaint())
	layer := graphics.NewLayer(graphics.Size{Width: 10, Height: 10})
	layer.SetContent(recorder.EndRecording())

	child.SetLayer(layer)
	child.ClearNeedsPaint()

	ctx, _ := recordingContext(graphics.Size{Width: 10, Height: 10})
	ctx.PaintChildWithLayer(child, graphics.Offset{})

	if child.paintCalls != 0 {
		t.Fatalf("expected cached layer to be used, but child.Paint was called %d times", child.paintCalls)
	}
}

func TestPaintChildWithLayer_PaintsChildWhenNoLayer(t *testing.T) {
	child := newTestRenderBox()

	ctx, _ := recordingContext(graphics.Size{Width: 10, Height: 10})
	ctx.PaintChildWithLayer(child, graphics.Offset{})

	if child.paintCalls != 1 {
		t.Fatalf("expected child.Paint to be called once, got %d", child.paintCalls)
	}
	if child.Layer() == nil {
		t.Fatalf("expected repaint to populate the child's layer")
	}
}

func TestPaintChildWithLayer_CullsOutsideClip(t *testing.T) {
	child := newTestRenderBox()

	ctx, _ := recordingContext(graphics.Size{Width: 10, Height: 10})

	// Clip away from the child bounds.
	ctx.PushClipRect(graphics.RectFromLTWH(100, 100, 10, 10))

	ctx.PaintChildWithLayer(child, graphics.Offset{})

	if child.paintCalls != 0 {
		t.Fatalf("expected child to be culled outside clip, got %d paint calls", child.paintCalls)
	}
}

func TestPaintChild_CullsOutsideClip(t *testing.T) {
	child := newTestRenderBox()

	ctx, _ := recordingContext(graphics.Size{Width: 10, Height: 10})

	// Clip away from the child bounds.
	ctx.PushClipRect(graphics.RectFromLTWH(100, 100, 10, 10))

	ctx.PaintChild(child, graphics.Offset{})

	if child.paintCalls != 0 {
		t.Fatalf("expected child to be culled outside clip, got %d paint calls", child.paintCalls)
	}
}

func TestPaintChild_CullUsesTransformAndOffset(t *testing.T) {
	child := newTestRenderBox()

	ctx, _ := recordingContext(graphics.Size{Width: 10, Height: 10})

	// Apply a transform and an offset; global bounds should be at (15, 5) to (25, 15).
	ctx.PushTranslation(10, 0)
	ctx.PushClipRect(graphics.RectFromLTWH(6, 6, 2, 2)) // local -> global (16,6) to (18,8)

	ctx.PaintChild(child, graphics.Offset{X: 5, Y: 5})

	if child.paintCalls != 1 {
		t.Fatalf("expected child to be painted with intersecting clip, got %d paint calls", child.paintCalls)
	}
}

func TestRepaintCompositedChild_ReusesLayerWhileSizeUnchanged(t *testing.T) {
	child := newTestRenderBox()

	RepaintCompositedChild(child)
	first := child.Layer()
	if first == nil {
		t.Fatalf("expected a layer after first repaint")
	}

	child.MarkNeedsPaint()
	RepaintCompositedChild(child)

	if child.Layer() != first {
		t.Fatalf("expected layer identity to be preserved while bounds are unchanged")
	}
}

func TestRepaintCompositedChild_AllocatesNewLayerOnResize(t *testing.T) {
	child := newTestRenderBox()

	RepaintCompositedChild(child)
	first := child.Layer()

	child.SetSize(graphics.Size{Width: 20, Height: 20})
	child.MarkNeedsPaint()
	RepaintCompositedChild(child)

	second := child.Layer()
	if second == first {
		t.Fatalf("expected a fresh layer after the paint bounds changed")
	}
	if !graphics.SizeEqual(second.Size(), graphics.Size{Width: 20, Height: 20}) {
		t.Fatalf("expected new layer sized to new bounds, got %+v", second.Size())
	}
}

func TestFlushPaint_RepaintsOnlyDirtyBoundaries(t *testing.T) {
	view, owner := newAttachedRoot(100, 100)
	boundary := &testRenderBox{}
	boundary.SetSelf(boundary)
	view.SetChild(boundary)
	owner.FlushLayout()
	owner.FlushPaint()

	before := boundary.paintCalls
	owner.FlushPaint()
	if boundary.paintCalls != before {
		t.Fatalf("expected clean boundary to be skipped, got %d extra paints",
			boundary.paintCalls-before)
	}

	boundary.MarkNeedsPaint()
	owner.FlushPaint()
	if boundary.paintCalls != before+1 {
		t.Fatalf("expected exactly one repaint, got %d", boundary.paintCalls-before)
	}
}
