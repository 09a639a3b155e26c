package widgets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// itemBox is a list item that sizes to a fixed height (or whatever the
// constraints force) and accepts hits.
type itemBox struct {
	layout.RenderBoxBase
	height float64
}

func newItemBox(height float64) *itemBox {
	r := &itemBox{height: height}
	r.SetSelf(r)
	return r
}

func (r *itemBox) PerformLayout() {
	r.SetSize(r.BoxConstraints().Constrain(graphics.Size{Height: r.height}))
}

func (r *itemBox) HitTestSelf(position graphics.Offset) bool { return true }

func newScrollFixture(t *testing.T, delegate SliverChildDelegate, itemExtent float64) (*layout.PipelineOwner, *ScrollPosition, *renderViewport, *renderSliverList) {
	t.Helper()
	owner := &layout.PipelineOwner{}
	view := layout.NewRenderView(graphics.Size{Width: 100, Height: 100})
	view.PrepareInitialFrame(owner)

	position := NewScrollPosition(nil)
	viewport := Viewport{
		AxisDirection: layout.AxisDirectionDown,
		Offset:        position,
	}.CreateRenderObject().(*renderViewport)
	list := SliverList{Delegate: delegate, ItemExtent: itemExtent}.
		CreateRenderObject().(*renderSliverList)
	viewport.AddChild(list)
	view.SetChild(viewport)

	owner.FlushLayout()
	return owner, position, viewport, list
}

func fixedDelegate(count int, height float64) *SliverChildBuilder {
	return &SliverChildBuilder{
		Count:   count,
		Builder: func(index int) layout.RenderBox { return newItemBox(height) },
	}
}

func TestViewport_RealizesOnlyCacheRegion(t *testing.T) {
	_, position, _, list := newScrollFixture(t, fixedDelegate(50, 20), 20)

	// Five items are visible; the cache region keeps more alive, but
	// nowhere near all fifty.
	if got := list.LiveChildCount(); got != 18 {
		t.Fatalf("live children = %d, want 18", got)
	}
	if got := list.FirstLiveIndex(); got != 0 {
		t.Fatalf("first live index = %d, want 0", got)
	}
	if got := list.Geometry().ScrollExtent; got != 1000 {
		t.Fatalf("scroll extent = %v, want 1000", got)
	}
	if got := position.MaxScrollExtent(); got != 900 {
		t.Fatalf("max scroll extent = %v, want 900", got)
	}
	if got := position.ViewportDimension(); got != 100 {
		t.Fatalf("viewport dimension = %v, want 100", got)
	}
}

func TestViewport_ScrollShiftsTheLiveWindow(t *testing.T) {
	owner, position, _, list := newScrollFixture(t, fixedDelegate(50, 20), 20)

	position.JumpTo(500)
	owner.FlushLayout()

	if got := list.FirstLiveIndex(); got != 12 {
		t.Fatalf("first live index after scroll = %d, want 12", got)
	}
	// Item 25 starts at scroll offset 500, so it paints at the viewport's
	// leading edge.
	child := list.live[25]
	if child == nil {
		t.Fatalf("expected item 25 to be live")
	}
	if got := layout.BoxParentDataOf(child).Offset.Y; got != 0 {
		t.Fatalf("item 25 paints at y=%v, want 0", got)
	}
}

func TestViewport_OffsetClampsToContent(t *testing.T) {
	owner, position, _, _ := newScrollFixture(t, fixedDelegate(50, 20), 20)

	position.JumpTo(5000)
	owner.FlushLayout()

	if got := position.Pixels(); got != 900 {
		t.Fatalf("pixels = %v, want clamped to 900", got)
	}
}

func TestViewport_HitTestReachesListItem(t *testing.T) {
	_, _, _, list := newScrollFixture(t, fixedDelegate(50, 20), 20)
	view := rootViewOf(list)

	result := view.HitTestFromRoot(graphics.Offset{X: 50, Y: 30})

	item := list.live[1]
	if result.Entries[0].Target != layout.RenderObject(item) {
		t.Fatalf("expected item 1 front-most, got %T", result.Entries[0].Target)
	}
	if got := result.Entries[0].Position; got.X != 50 || got.Y != 10 {
		t.Fatalf("item-local position = %+v, want (50,10)", got)
	}
}

// rootViewOf walks up from a node to the render view.
func rootViewOf(node layout.RenderObject) *layout.RenderView {
	current := node
	for {
		base, ok := current.(interface{ Parent() layout.RenderObject })
		if !ok || base.Parent() == nil {
			return current.(*layout.RenderView)
		}
		current = base.Parent()
	}
}

func TestViewport_MeasuredListComputesExactExtent(t *testing.T) {
	delegate := &SliverChildBuilder{
		Count:   10,
		Builder: func(index int) layout.RenderBox { return newItemBox(30) },
	}
	_, position, _, list := newScrollFixture(t, delegate, 0)

	if got := list.Geometry().ScrollExtent; got != 300 {
		t.Fatalf("scroll extent = %v, want 300", got)
	}
	if got := position.MaxScrollExtent(); got != 200 {
		t.Fatalf("max scroll extent = %v, want 200", got)
	}
}

func TestViewport_MeasuredListEstimatesUnreachedChildren(t *testing.T) {
	delegate := &SliverChildBuilder{
		Count:   100,
		Builder: func(index int) layout.RenderBox { return newItemBox(30) },
	}
	_, _, _, list := newScrollFixture(t, delegate, 0)

	// Only the first dozen items get measured; the rest are estimated from
	// the measured average, which here is exact.
	if got := list.Geometry().ScrollExtent; got != 3000 {
		t.Fatalf("estimated scroll extent = %v, want 3000", got)
	}
	if got := list.LiveChildCount(); got >= 100 {
		t.Fatalf("estimation must not materialize every child, got %d live", got)
	}
}

func TestViewport_AdapterHostsBoxContent(t *testing.T) {
	owner := &layout.PipelineOwner{}
	view := layout.NewRenderView(graphics.Size{Width: 100, Height: 100})
	view.PrepareInitialFrame(owner)

	position := NewScrollPosition(nil)
	viewport := Viewport{
		AxisDirection: layout.AxisDirectionDown,
		Offset:        position,
	}.CreateRenderObject().(*renderViewport)
	adapter := SliverToBoxAdapter{}.CreateRenderObject().(*renderSliverToBoxAdapter)
	content := newItemBox(150)
	adapter.AddChild(content)
	viewport.AddChild(adapter)
	view.SetChild(viewport)
	owner.FlushLayout()

	if got := adapter.Geometry().ScrollExtent; got != 150 {
		t.Fatalf("scroll extent = %v, want 150", got)
	}
	if got := adapter.Geometry().PaintExtent; got != 100 {
		t.Fatalf("paint extent = %v, want the viewport's 100", got)
	}

	position.JumpTo(50)
	owner.FlushLayout()

	if got := layout.BoxParentDataOf(content).Offset.Y; got != -50 {
		t.Fatalf("scrolled content offset = %v, want -50", got)
	}
}

// correctingSliver demands a scroll offset correction for its first
// pending layout passes, then settles into fixed content.
type correctingSliver struct {
	layout.RenderSliverBase
	pending int
	passes  int
}

func newCorrectingSliver(pending int) *correctingSliver {
	s := &correctingSliver{pending: pending}
	s.SetSelf(s)
	return s
}

func (s *correctingSliver) PerformLayout() {
	s.passes++
	if s.pending > 0 {
		s.pending--
		s.SetGeometry(layout.SliverGeometry{ScrollOffsetCorrection: 25})
		return
	}
	c := s.SliverConstraints()
	s.SetGeometry(layout.SliverGeometryOf(500, c.PaintExtentOf(0, 500), c.CacheExtentOf(0, 500)))
}

func TestViewport_AppliesScrollOffsetCorrection(t *testing.T) {
	owner := &layout.PipelineOwner{}
	view := layout.NewRenderView(graphics.Size{Width: 100, Height: 100})
	view.PrepareInitialFrame(owner)

	position := NewScrollPosition(nil)
	viewport := Viewport{
		AxisDirection: layout.AxisDirectionDown,
		Offset:        position,
	}.CreateRenderObject().(*renderViewport)
	sliver := newCorrectingSliver(1)
	viewport.AddChild(sliver)
	view.SetChild(viewport)
	owner.FlushLayout()

	if got := position.Pixels(); got != 25 {
		t.Fatalf("pixels = %v, want the correction of 25", got)
	}
	if sliver.passes != 2 {
		t.Fatalf("layout passes = %d, want 2 (corrected, then settled)", sliver.passes)
	}
}

func TestViewport_DivergingCorrectionsPanic(t *testing.T) {
	owner := &layout.PipelineOwner{}
	view := layout.NewRenderView(graphics.Size{Width: 100, Height: 100})
	view.PrepareInitialFrame(owner)

	position := NewScrollPosition(nil)
	viewport := Viewport{
		AxisDirection: layout.AxisDirectionDown,
		Offset:        position,
	}.CreateRenderObject().(*renderViewport)
	viewport.AddChild(newCorrectingSliver(1000))
	view.SetChild(viewport)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected the viewport to give up on endless corrections")
		}
		if !strings.Contains(fmt.Sprint(r), "scroll offset corrections") {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	owner.FlushLayout()
}
