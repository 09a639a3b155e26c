package layout

import (
	"testing"

	"github.com/go-loom/loom/pkg/graphics"
)

func TestBoxConstraints_TightAndLoose(t *testing.T) {
	tight := Tight(graphics.Size{Width: 100, Height: 50})
	if !tight.IsTight() {
		t.Fatalf("expected tight constraints")
	}
	loose := tight.Loosen()
	if loose.IsTight() || loose.MinWidth != 0 || loose.MaxWidth != 100 {
		t.Fatalf("unexpected loosened constraints %+v", loose)
	}
}

func TestBoxConstraints_Constrain(t *testing.T) {
	c := BoxConstraints{MinWidth: 10, MaxWidth: 100, MinHeight: 20, MaxHeight: 40}
	got := c.Constrain(graphics.Size{Width: 5, Height: 500})
	if got.Width != 10 || got.Height != 40 {
		t.Fatalf("expected 10x40, got %+v", got)
	}
}

func TestBoxConstraints_DeflateNeverNegative(t *testing.T) {
	c := Tight(graphics.Size{Width: 10, Height: 10})
	got := c.Deflate(EdgeInsetsAll(20))
	if !got.IsNormalized() {
		t.Fatalf("deflated constraints not normalized: %+v", got)
	}
	if got.MinWidth != 0 || got.MaxWidth != 0 {
		t.Fatalf("expected width collapsed to zero, got %+v", got)
	}
}

func TestBoxConstraints_Enforce(t *testing.T) {
	c := BoxConstraints{MaxWidth: 500, MaxHeight: 500}
	bounds := BoxConstraints{MinWidth: 50, MaxWidth: 100, MinHeight: 50, MaxHeight: 100}
	got := c.Enforce(bounds)
	if got.MinWidth != 50 || got.MaxWidth != 100 {
		t.Fatalf("expected widths clamped into [50,100], got %+v", got)
	}
}

func TestBoxConstraints_Unbounded(t *testing.T) {
	c := BoxConstraints{MaxWidth: Unbounded, MaxHeight: 100}
	if c.HasBoundedWidth() {
		t.Fatalf("expected unbounded width")
	}
	if !c.HasBoundedHeight() {
		t.Fatalf("expected bounded height")
	}
}

func TestSliverConstraints_AsBoxConstraints(t *testing.T) {
	c := SliverConstraints{
		AxisDirection:      AxisDirectionDown,
		CrossAxisDirection: AxisDirectionRight,
		CrossAxisExtent:    320,
	}
	box := c.AsBoxConstraints(0, 44)
	if box.MinWidth != 320 || box.MaxWidth != 320 {
		t.Fatalf("expected tight cross axis width, got %+v", box)
	}
	if box.MinHeight != 0 || box.MaxHeight != 44 {
		t.Fatalf("expected main axis range [0,44], got %+v", box)
	}
}

func TestSliverConstraints_IsNormalized(t *testing.T) {
	c := SliverConstraints{
		AxisDirection:        AxisDirectionDown,
		CrossAxisDirection:   AxisDirectionRight,
		RemainingPaintExtent: 600,
		RemainingCacheExtent: 850,
	}
	if !c.IsNormalized() {
		t.Fatalf("expected normalized constraints")
	}

	c.RemainingCacheExtent = 100 // less than remaining paint extent
	if c.IsNormalized() {
		t.Fatalf("expected cache extent below paint extent to be abnormal")
	}

	c.RemainingCacheExtent = 850
	c.CrossAxisDirection = AxisDirectionUp // same axis as scroll axis
	if c.IsNormalized() {
		t.Fatalf("expected parallel cross axis to be abnormal")
	}
}

func TestAxisDirection_FlipAndAxis(t *testing.T) {
	if AxisDirectionDown.Flip() != AxisDirectionUp {
		t.Fatalf("down should flip to up")
	}
	if AxisDirectionLeft.Axis() != AxisHorizontal {
		t.Fatalf("left runs on the horizontal axis")
	}
	if !AxisDirectionUp.IsReversed() || AxisDirectionRight.IsReversed() {
		t.Fatalf("reversed directions are up and left")
	}
}

func TestApplyGrowthDirection(t *testing.T) {
	if ApplyGrowthDirection(AxisDirectionDown, GrowthDirectionReverse) != AxisDirectionUp {
		t.Fatalf("reverse growth flips the axis direction")
	}
	if ApplyGrowthDirection(AxisDirectionDown, GrowthDirectionForward) != AxisDirectionDown {
		t.Fatalf("forward growth keeps the axis direction")
	}
}

func TestSliverGeometryOf_DerivedFields(t *testing.T) {
	g := SliverGeometryOf(500, 120, 200)
	if g.LayoutExtent != 120 || g.HitTestExtent != 120 {
		t.Fatalf("expected derived extents to follow paint extent, got %+v", g)
	}
	if !g.Visible {
		t.Fatalf("painting slivers are visible")
	}
	if g.MaxPaintExtent != 500 {
		t.Fatalf("expected max paint extent from scroll extent, got %v", g.MaxPaintExtent)
	}
	if !g.IsNormalized() {
		t.Fatalf("expected normalized geometry")
	}
}
