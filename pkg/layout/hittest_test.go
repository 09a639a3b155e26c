package layout

import (
	"testing"

	"github.com/go-loom/loom/pkg/graphics"
)

// hitBox opts in to hitting itself anywhere inside its bounds.
type hitBox struct {
	RenderBoxBase
}

func newHitBox(width, height float64) *hitBox {
	b := &hitBox{}
	b.SetSelf(b)
	b.SetSize(graphics.Size{Width: width, Height: height})
	return b
}

func (b *hitBox) HitTestSelf(position graphics.Offset) bool { return true }

func placeChild(parent RenderObject, child RenderObject, x, y float64) {
	parent.node().AddChild(child)
	BoxParentDataOf(child).Offset = graphics.Offset{X: x, Y: y}
}

func TestHitTest_MissesOutsideBounds(t *testing.T) {
	box := newHitBox(10, 10)
	result := &HitTestResult{}
	if box.HitTest(graphics.Offset{X: 15, Y: 5}, result) {
		t.Fatalf("expected miss outside bounds")
	}
	if len(result.Entries) != 0 {
		t.Fatalf("expected no entries on miss, got %d", len(result.Entries))
	}
}

func TestHitTest_EntriesFrontMostFirst(t *testing.T) {
	parent := newHitBox(100, 100)
	bottom := newHitBox(50, 50)
	top := newHitBox(50, 50)
	placeChild(parent, bottom, 0, 0)
	placeChild(parent, top, 20, 20) // painted last, so frontmost

	result := &HitTestResult{}
	if !parent.HitTest(graphics.Offset{X: 30, Y: 30}, result) {
		t.Fatalf("expected hit")
	}

	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Target != RenderObject(top) {
		t.Fatalf("expected frontmost child first")
	}
	if result.Entries[1].Target != RenderObject(parent) {
		t.Fatalf("expected parent after children")
	}
}

func TestHitTest_FirstHitChildStopsScan(t *testing.T) {
	parent := newHitBox(100, 100)
	under := newHitBox(100, 100)
	over := newHitBox(100, 100)
	placeChild(parent, under, 0, 0)
	placeChild(parent, over, 0, 0)

	result := &HitTestResult{}
	parent.HitTest(graphics.Offset{X: 10, Y: 10}, result)

	for _, entry := range result.Entries {
		if entry.Target == RenderObject(under) {
			t.Fatalf("expected occluded child to be skipped")
		}
	}
}

func TestHitTest_PositionsAreLocal(t *testing.T) {
	parent := newHitBox(100, 100)
	child := newHitBox(50, 50)
	placeChild(parent, child, 30, 40)

	result := &HitTestResult{}
	if !parent.HitTest(graphics.Offset{X: 35, Y: 50}, result) {
		t.Fatalf("expected hit")
	}

	childEntry := result.Entries[0]
	if childEntry.Target != RenderObject(child) {
		t.Fatalf("expected child entry first")
	}
	if childEntry.Position.X != 5 || childEntry.Position.Y != 10 {
		t.Fatalf("expected local position (5,10), got %+v", childEntry.Position)
	}

	parentEntry := result.Entries[1]
	if parentEntry.Position.X != 35 || parentEntry.Position.Y != 50 {
		t.Fatalf("expected parent position (35,50), got %+v", parentEntry.Position)
	}
}

func TestAddWithPaintOffset_RestoresTransformStack(t *testing.T) {
	result := &HitTestResult{}
	result.AddWithPaintOffset(graphics.Offset{X: 10, Y: 10}, graphics.Offset{X: 15, Y: 15},
		func(result *HitTestResult, transformed graphics.Offset) bool {
			if transformed.X != 5 || transformed.Y != 5 {
				t.Fatalf("expected transformed position (5,5), got %+v", transformed)
			}
			if result.CurrentTransform().X != 10 {
				t.Fatalf("expected pushed transform")
			}
			return false
		})
	if result.CurrentTransform() != (graphics.Offset{}) {
		t.Fatalf("expected transform stack restored after callback")
	}
}

func TestRenderView_HitTestFromRoot_AlwaysIncludesView(t *testing.T) {
	view, owner := newAttachedRoot(100, 100)
	owner.FlushLayout()

	result := view.HitTestFromRoot(graphics.Offset{X: 500, Y: 500})
	if len(result.Entries) != 1 || result.Entries[0].Target != RenderObject(view) {
		t.Fatalf("expected the view itself as the terminal entry")
	}
}
