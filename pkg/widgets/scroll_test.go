package widgets

import (
	"testing"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/events"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

func dimensionedPosition(min, max float64) *ScrollPosition {
	p := NewScrollPosition(nil)
	p.ApplyViewportDimension(100)
	p.ApplyContentDimensions(min, max)
	return p
}

func TestScrollPosition_ClampsAtEdges(t *testing.T) {
	p := dimensionedPosition(0, 500)

	p.JumpTo(600)
	if p.Pixels() != 500 {
		t.Fatalf("pixels = %v, want clamped to 500", p.Pixels())
	}
	p.JumpTo(-50)
	if p.Pixels() != 0 {
		t.Fatalf("pixels = %v, want clamped to 0", p.Pixels())
	}
}

func TestScrollPosition_NotifiesOnlyOnChange(t *testing.T) {
	p := dimensionedPosition(0, 500)
	notified := 0
	p.AddListener(func() { notified++ })

	p.JumpTo(100)
	p.JumpTo(100)
	p.ScrollBy(0)

	if notified != 1 {
		t.Fatalf("notified %d times, want 1", notified)
	}
}

func TestScrollPosition_RemoveListener(t *testing.T) {
	p := dimensionedPosition(0, 500)
	notified := 0
	id := p.AddListener(func() { notified++ })
	p.RemoveListener(id)

	p.JumpTo(100)

	if notified != 0 {
		t.Fatalf("removed listener still notified %d times", notified)
	}
}

func TestScrollPosition_CorrectBySkipsListeners(t *testing.T) {
	p := dimensionedPosition(0, 500)
	notified := 0
	p.AddListener(func() { notified++ })

	p.CorrectBy(40)

	if p.Pixels() != 40 {
		t.Fatalf("pixels = %v, want 40", p.Pixels())
	}
	if notified != 0 {
		t.Fatalf("corrections must not notify; notified %d times", notified)
	}
}

func TestScrollPosition_DragMovesOppositeThePointer(t *testing.T) {
	p := dimensionedPosition(0, 500)
	p.JumpTo(100)

	p.StartDrag()
	p.UpdateDrag(30) // finger moves down, content follows, offset shrinks
	p.EndDrag()
	p.UpdateDrag(30) // ignored outside a drag

	if p.Pixels() != 70 {
		t.Fatalf("pixels = %v, want 70", p.Pixels())
	}
}

func TestScrollPosition_ContentShrinkClampsAndRequestsRelayout(t *testing.T) {
	p := dimensionedPosition(0, 500)
	p.JumpTo(400)

	if p.ApplyContentDimensions(0, 300) {
		t.Fatalf("expected a second layout pass after clamping")
	}
	if p.Pixels() != 300 {
		t.Fatalf("pixels = %v, want clamped to 300", p.Pixels())
	}
}

func TestScrollView_WheelScrollsTheViewport(t *testing.T) {
	pipeline := &layout.PipelineOwner{}
	view := layout.NewRenderView(graphics.Size{Width: 100, Height: 100})
	view.PrepareInitialFrame(pipeline)
	owner := core.NewBuildOwner(pipeline, view)

	position := NewScrollPosition(nil)
	delegate := fixedDelegate(50, 20)
	owner.SetRoot(func(ui *core.Ui) {
		ScrollView(ui, position, layout.AxisDirectionDown, func(ui *core.Ui) {
			ui.RenderLeaf(SliverList{Delegate: delegate, ItemExtent: 20})
		})
	})
	owner.FlushBuild()
	pipeline.FlushLayout()

	result := view.HitTestFromRoot(graphics.Offset{X: 50, Y: 50})
	scrolled := false
	for _, entry := range result.Entries {
		if handler, ok := entry.Target.(events.PointerHandler); ok {
			handler.HandlePointer(events.PointerEvent{
				Phase:       events.PointerPhaseScroll,
				Position:    entry.Position,
				ScrollDelta: graphics.Offset{Y: 40},
			})
			scrolled = true
			break
		}
	}
	if !scrolled {
		t.Fatalf("expected a pointer handler on the hit path")
	}

	pipeline.FlushLayout()
	if position.Pixels() != 40 {
		t.Fatalf("pixels = %v, want 40 after the wheel event", position.Pixels())
	}
}
