package layout

import (
	"fmt"
	"math"
)

// Axis is a layout direction.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// AxisDirection is an axis with a concrete direction of increasing scroll
// offsets: down means offsets grow toward the bottom of the screen.
type AxisDirection int

const (
	AxisDirectionUp AxisDirection = iota
	AxisDirectionRight
	AxisDirectionDown
	AxisDirectionLeft
)

// Axis returns the axis the direction runs along.
func (d AxisDirection) Axis() Axis {
	switch d {
	case AxisDirectionLeft, AxisDirectionRight:
		return AxisHorizontal
	default:
		return AxisVertical
	}
}

// IsReversed reports whether offsets grow opposite the coordinate axis.
func (d AxisDirection) IsReversed() bool {
	return d == AxisDirectionUp || d == AxisDirectionLeft
}

// Flip returns the opposite direction along the same axis.
func (d AxisDirection) Flip() AxisDirection {
	switch d {
	case AxisDirectionUp:
		return AxisDirectionDown
	case AxisDirectionDown:
		return AxisDirectionUp
	case AxisDirectionLeft:
		return AxisDirectionRight
	default:
		return AxisDirectionLeft
	}
}

// GrowthDirection is the direction a sliver's contents grow relative to the
// axis direction. Forward slivers lie after the viewport's zero scroll
// offset, reverse slivers before it.
type GrowthDirection int

const (
	GrowthDirectionForward GrowthDirection = iota
	GrowthDirectionReverse
)

// ApplyGrowthDirection resolves the effective axis direction of a sliver
// given its growth direction.
func ApplyGrowthDirection(axisDirection AxisDirection, growth GrowthDirection) AxisDirection {
	if growth == GrowthDirectionReverse {
		return axisDirection.Flip()
	}
	return axisDirection
}

// ScrollDirection is the direction the user is currently scrolling, in terms
// of the positive scroll offset axis.
type ScrollDirection int

const (
	ScrollDirectionIdle ScrollDirection = iota
	ScrollDirectionForward
	ScrollDirectionReverse
)

// Flip returns the opposite scroll direction; idle stays idle.
func (d ScrollDirection) Flip() ScrollDirection {
	switch d {
	case ScrollDirectionForward:
		return ScrollDirectionReverse
	case ScrollDirectionReverse:
		return ScrollDirectionForward
	default:
		return ScrollDirectionIdle
	}
}

// CacheExtentStyle determines how a viewport's cache extent is interpreted.
type CacheExtentStyle int

const (
	// CacheExtentStylePixel interprets the cache extent as logical pixels.
	CacheExtentStylePixel CacheExtentStyle = iota
	// CacheExtentStyleViewport interprets the cache extent as a multiple of
	// the viewport's main axis extent.
	CacheExtentStyleViewport
)

// SliverConstraints describe the slice of a viewport a sliver may occupy.
//
// Unlike box constraints, sliver constraints are never tight: a sliver is
// told how much scrolled-past and paintable room exists and answers with a
// SliverGeometry.
type SliverConstraints struct {
	// AxisDirection is the direction scroll offsets increase in.
	AxisDirection AxisDirection

	// GrowthDirection is the direction this sliver's contents grow relative
	// to AxisDirection.
	GrowthDirection GrowthDirection

	// UserScrollDirection is the direction the user is scrolling, adjusted
	// for GrowthDirection.
	UserScrollDirection ScrollDirection

	// ScrollOffset is how far past this sliver's leading edge the viewport
	// has scrolled. Zero when the leading edge is visible or ahead.
	ScrollOffset float64

	// PrecedingScrollExtent is the total scroll extent of all slivers before
	// this one in growth order.
	PrecedingScrollExtent float64

	// Overlap is how much paint from earlier slivers intrudes into this
	// sliver's paint region.
	Overlap float64

	// RemainingPaintExtent is the visible room left for this sliver and its
	// successors.
	RemainingPaintExtent float64

	// CrossAxisExtent is the extent perpendicular to the scroll axis.
	CrossAxisExtent float64

	// CrossAxisDirection is the direction positions increase in across the
	// axis.
	CrossAxisDirection AxisDirection

	// ViewportMainAxisExtent is the full main-axis extent of the viewport.
	ViewportMainAxisExtent float64

	// CacheOrigin is where the cache region starts relative to ScrollOffset;
	// zero or negative.
	CacheOrigin float64

	// RemainingCacheExtent is the room left in the cache region, measured
	// from CacheOrigin. Always at least RemainingPaintExtent.
	RemainingCacheExtent float64
}

func (SliverConstraints) isConstraints() {}

// IsTight is always false for sliver constraints.
func (c SliverConstraints) IsTight() bool { return false }

// IsNormalized checks the invariants the viewport is supposed to maintain.
func (c SliverConstraints) IsNormalized() bool {
	return c.ScrollOffset >= 0 &&
		c.CrossAxisExtent >= 0 &&
		c.AxisDirection.Axis() != c.CrossAxisDirection.Axis() &&
		c.ViewportMainAxisExtent >= 0 &&
		c.RemainingPaintExtent >= 0 &&
		c.CacheOrigin <= 0 &&
		c.RemainingCacheExtent >= c.RemainingPaintExtent
}

// Axis returns the scroll axis.
func (c SliverConstraints) Axis() Axis {
	return c.AxisDirection.Axis()
}

// NormalizedGrowthDirection returns the growth direction in terms of
// down/right axis directions.
func (c SliverConstraints) NormalizedGrowthDirection() GrowthDirection {
	if c.AxisDirection.IsReversed() {
		if c.GrowthDirection == GrowthDirectionForward {
			return GrowthDirectionReverse
		}
		return GrowthDirectionForward
	}
	return c.GrowthDirection
}

// AsBoxConstraints converts to box constraints for a box child occupying the
// given main-axis range, with the sliver's cross-axis extent held tight.
func (c SliverConstraints) AsBoxConstraints(minExtent, maxExtent float64) BoxConstraints {
	if c.Axis() == AxisHorizontal {
		return BoxConstraints{
			MinWidth:  minExtent,
			MaxWidth:  maxExtent,
			MinHeight: c.CrossAxisExtent,
			MaxHeight: c.CrossAxisExtent,
		}
	}
	return BoxConstraints{
		MinWidth:  c.CrossAxisExtent,
		MaxWidth:  c.CrossAxisExtent,
		MinHeight: minExtent,
		MaxHeight: maxExtent,
	}
}

// PaintExtentOf returns how much of the content range [from, to) paints
// into the viewport under these constraints.
func (c SliverConstraints) PaintExtentOf(from, to float64) float64 {
	a := c.ScrollOffset
	b := c.ScrollOffset + c.RemainingPaintExtent
	return clamp(clamp(to, a, b)-clamp(from, a, b), 0, c.RemainingPaintExtent)
}

// CacheExtentOf returns how much of the content range [from, to) falls in
// the cache region under these constraints.
func (c SliverConstraints) CacheExtentOf(from, to float64) float64 {
	a := c.ScrollOffset + c.CacheOrigin
	b := c.ScrollOffset + c.RemainingCacheExtent
	return clamp(clamp(to, a, b)-clamp(from, a, b), 0, c.RemainingCacheExtent)
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}

// SliverConstraintsOf extracts sliver constraints, panicking if the
// constraints belong to the box protocol.
func SliverConstraintsOf(c Constraints) SliverConstraints {
	sliver, ok := c.(SliverConstraints)
	if !ok {
		panic(fmt.Sprintf("layout: expected SliverConstraints, got %T", c))
	}
	return sliver
}

// SliverGeometry is a sliver's answer to layout: how much scrollable content
// it represents and how much of it paints right now.
type SliverGeometry struct {
	// ScrollExtent is the total scrollable extent of the sliver's content.
	ScrollExtent float64

	// PaintOrigin is where painting starts relative to the sliver's layout
	// position. Usually zero; negative values paint before the layout edge.
	PaintOrigin float64

	// PaintExtent is how much of the viewport this sliver paints into.
	PaintExtent float64

	// LayoutExtent is how far the next sliver's layout position is placed
	// after this one. At most PaintExtent.
	LayoutExtent float64

	// MaxPaintExtent is how much the sliver could paint given unlimited
	// room. At least PaintExtent.
	MaxPaintExtent float64

	// HitTestExtent is the main-axis range that responds to hit tests.
	HitTestExtent float64

	// Visible reports whether the sliver paints anything.
	Visible bool

	// HasVisualOverflow reports whether the sliver paints outside its layout
	// bounds, forcing the viewport to clip.
	HasVisualOverflow bool

	// ScrollOffsetCorrection, when non-zero, aborts the layout pass: the
	// viewport adjusts its scroll offset by this amount and retries.
	ScrollOffsetCorrection float64

	// CacheExtent is how much of the cache region this sliver consumes.
	CacheExtent float64
}

// SliverGeometryZero is the geometry of a sliver with no content.
var SliverGeometryZero = SliverGeometry{}

// SliverGeometryOf fills the derived fields from the three that matter in
// the common case: layout extent, hit test extent and visibility all follow
// the paint extent, and the sliver could paint its full scroll extent.
func SliverGeometryOf(scrollExtent, paintExtent, cacheExtent float64) SliverGeometry {
	return SliverGeometry{
		ScrollExtent:   scrollExtent,
		PaintExtent:    paintExtent,
		LayoutExtent:   paintExtent,
		MaxPaintExtent: math.Max(scrollExtent, paintExtent),
		HitTestExtent:  paintExtent,
		Visible:        paintExtent > 0,
		CacheExtent:    cacheExtent,
	}
}

// IsNormalized checks the invariants a sliver must maintain in its answer.
func (g SliverGeometry) IsNormalized() bool {
	return g.ScrollExtent >= 0 &&
		g.PaintExtent >= 0 &&
		g.LayoutExtent <= g.PaintExtent+epsilon &&
		g.MaxPaintExtent+epsilon >= g.PaintExtent &&
		g.HitTestExtent >= 0
}

const epsilon = 0.0001
