package layout

import (
	"fmt"
	"math"

	"github.com/go-loom/loom/pkg/graphics"
)

// Constraints is the input to layout. There are exactly two kinds:
// BoxConstraints for the 2D box protocol and SliverConstraints for
// scrollable slivers. A render object knows which protocol it speaks and
// converts with BoxConstraintsOf or SliverConstraintsOf; asking for the
// wrong kind is a bug in the caller and panics.
type Constraints interface {
	// IsTight reports whether the constraints admit exactly one size.
	IsTight() bool

	// IsNormalized reports whether the constraints are internally
	// consistent (mins not exceeding maxes, extents non-negative).
	IsNormalized() bool

	isConstraints()
}

// Unbounded is the infinite extent used for unconstrained dimensions.
var Unbounded = math.Inf(1)

// BoxConstraints describe an allowed range of sizes for the box protocol.
type BoxConstraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

func (BoxConstraints) isConstraints() {}

// Tight returns constraints that admit exactly the given size.
func Tight(size graphics.Size) BoxConstraints {
	return BoxConstraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// TightFor returns constraints tight in the dimensions that are non-negative
// and unbounded in the others.
func TightFor(width, height float64) BoxConstraints {
	c := BoxConstraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
	if width >= 0 {
		c.MinWidth = width
		c.MaxWidth = width
	}
	if height >= 0 {
		c.MinHeight = height
		c.MaxHeight = height
	}
	return c
}

// Loose returns constraints from zero up to the given size.
func Loose(size graphics.Size) BoxConstraints {
	return BoxConstraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Expand returns constraints that force the largest size the parent allows.
func Expand() BoxConstraints {
	return BoxConstraints{
		MinWidth:  Unbounded,
		MaxWidth:  Unbounded,
		MinHeight: Unbounded,
		MaxHeight: Unbounded,
	}
}

// IsTight reports whether exactly one size satisfies the constraints.
func (c BoxConstraints) IsTight() bool {
	return c.MinWidth >= c.MaxWidth && c.MinHeight >= c.MaxHeight
}

// IsNormalized reports whether mins do not exceed maxes.
func (c BoxConstraints) IsNormalized() bool {
	return c.MinWidth >= 0 && c.MinWidth <= c.MaxWidth &&
		c.MinHeight >= 0 && c.MinHeight <= c.MaxHeight
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c BoxConstraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether MaxHeight is finite.
func (c BoxConstraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// Smallest returns the smallest size satisfying the constraints.
func (c BoxConstraints) Smallest() graphics.Size {
	return graphics.Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Biggest returns the largest size satisfying the constraints.
func (c BoxConstraints) Biggest() graphics.Size {
	return graphics.Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// ConstrainWidth clamps the given width into the allowed range.
func (c BoxConstraints) ConstrainWidth(width float64) float64 {
	return math.Max(c.MinWidth, math.Min(c.MaxWidth, width))
}

// ConstrainHeight clamps the given height into the allowed range.
func (c BoxConstraints) ConstrainHeight(height float64) float64 {
	return math.Max(c.MinHeight, math.Min(c.MaxHeight, height))
}

// Constrain clamps the given size into the allowed range.
func (c BoxConstraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  c.ConstrainWidth(size.Width),
		Height: c.ConstrainHeight(size.Height),
	}
}

// Loosen removes the minimum constraints while keeping the maximums.
func (c BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// Enforce returns constraints that respect both c and the given bounds.
func (c BoxConstraints) Enforce(bounds BoxConstraints) BoxConstraints {
	return BoxConstraints{
		MinWidth:  math.Max(bounds.MinWidth, math.Min(bounds.MaxWidth, c.MinWidth)),
		MaxWidth:  math.Max(bounds.MinWidth, math.Min(bounds.MaxWidth, c.MaxWidth)),
		MinHeight: math.Max(bounds.MinHeight, math.Min(bounds.MaxHeight, c.MinHeight)),
		MaxHeight: math.Max(bounds.MinHeight, math.Min(bounds.MaxHeight, c.MaxHeight)),
	}
}

// Deflate returns constraints reduced by the given insets, never below zero.
func (c BoxConstraints) Deflate(insets EdgeInsets) BoxConstraints {
	horizontal := insets.Horizontal()
	vertical := insets.Vertical()
	minWidth := math.Max(0, c.MinWidth-horizontal)
	minHeight := math.Max(0, c.MinHeight-vertical)
	return BoxConstraints{
		MinWidth:  minWidth,
		MaxWidth:  math.Max(minWidth, c.MaxWidth-horizontal),
		MinHeight: minHeight,
		MaxHeight: math.Max(minHeight, c.MaxHeight-vertical),
	}
}

// BoxConstraintsOf extracts box constraints, panicking if the constraints
// belong to the sliver protocol.
func BoxConstraintsOf(c Constraints) BoxConstraints {
	box, ok := c.(BoxConstraints)
	if !ok {
		panic(fmt.Sprintf("layout: expected BoxConstraints, got %T", c))
	}
	return box
}

// EdgeInsets describe offsets from the four edges of a box.
type EdgeInsets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// EdgeInsetsAll returns uniform insets on all four edges.
func EdgeInsetsAll(value float64) EdgeInsets {
	return EdgeInsets{Left: value, Top: value, Right: value, Bottom: value}
}

// EdgeInsetsSymmetric returns insets mirrored horizontally and vertically.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns the combined left and right insets.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the combined top and bottom insets.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

// TopLeft returns the offset of the top-left content corner.
func (e EdgeInsets) TopLeft() graphics.Offset {
	return graphics.Offset{X: e.Left, Y: e.Top}
}
