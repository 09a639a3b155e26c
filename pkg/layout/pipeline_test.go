package layout

import (
	"testing"

	"github.com/go-loom/loom/pkg/graphics"
)

// orderBox records the order boundaries are laid out in.
type orderBox struct {
	RenderBoxBase
	name     string
	log      *[]string
	onLayout func()
}

func newOrderBox(name string, log *[]string) *orderBox {
	b := &orderBox{name: name, log: log}
	b.SetSelf(b)
	return b
}

func (b *orderBox) PerformLayout() {
	*b.log = append(*b.log, b.name)
	if b.onLayout != nil {
		b.onLayout()
	}
	constraints := b.BoxConstraints()
	for i := 0; i < b.ChildCount(); i++ {
		// Tight constraints keep each level a relayout boundary.
		b.ChildAt(i).Layout(constraints, false)
	}
	b.SetSize(constraints.Constrain(graphics.Size{Width: 50, Height: 50}))
}

func TestFlushLayout_ParentsBeforeChildren(t *testing.T) {
	var log []string
	view, owner := newAttachedRoot(100, 100)
	outer := newOrderBox("outer", &log)
	inner := newOrderBox("inner", &log)
	outer.AddChild(inner)
	view.SetChild(outer)
	owner.FlushLayout()

	log = nil
	// Schedule child first to prove ordering comes from depth, not insertion.
	inner.MarkNeedsLayout()
	outer.MarkNeedsLayout()
	owner.FlushLayout()

	if len(log) < 2 || log[0] != "outer" || log[1] != "inner" {
		t.Fatalf("expected parent-first layout order, got %v", log)
	}
}

func TestFlushLayout_ParentFlushClearsChildDirtiness(t *testing.T) {
	var log []string
	view, owner := newAttachedRoot(100, 100)
	outer := newOrderBox("outer", &log)
	inner := newOrderBox("inner", &log)
	outer.AddChild(inner)
	view.SetChild(outer)
	owner.FlushLayout()

	log = nil
	inner.MarkNeedsLayout()
	outer.MarkNeedsLayout()
	owner.FlushLayout()

	// inner must appear exactly once: laid out by outer, not again by the
	// owner's own scan.
	count := 0
	for _, name := range log {
		if name == "inner" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one inner layout, got %d (%v)", count, log)
	}
}

func TestFlushLayout_NodesScheduledMidFlushJoinSamePass(t *testing.T) {
	var log []string
	view, owner := newAttachedRoot(100, 100)
	first := newOrderBox("first", &log)
	second := newOrderBox("second", &log)
	view.SetChild(first)
	first.AddChild(second)
	owner.FlushLayout()

	log = nil
	first.onLayout = func() { second.MarkNeedsLayout() }
	first.MarkNeedsLayout()
	owner.FlushLayout()

	if owner.NeedsLayout() {
		t.Fatalf("expected mid-flush scheduling to be drained in the same pass")
	}
}

func TestScheduleLayout_Deduplicates(t *testing.T) {
	owner := &PipelineOwner{}
	box := newSpyBox(10, 10)
	box.Layout(Tight(graphics.Size{Width: 10, Height: 10}), false)
	box.Attach(owner)

	box.MarkNeedsLayout()
	owner.ScheduleLayout(box)
	owner.FlushLayout()

	if box.layoutCount != 2 {
		t.Fatalf("expected a single relayout despite duplicate scheduling, got %d", box.layoutCount)
	}
}

func TestOnNeedsFrame_FiredOncePerFlushCycle(t *testing.T) {
	frames := 0
	view, owner := newAttachedRoot(100, 100)
	owner.OnNeedsFrame = func() { frames++ }
	box := newSpyBox(10, 10)
	view.SetChild(box)
	owner.FlushLayout()
	owner.FlushPaint()

	frames = 0
	box.MarkNeedsLayout()
	box.MarkNeedsPaint()
	if frames != 1 {
		t.Fatalf("expected one frame request per dirty cycle, got %d", frames)
	}
}
