package animation

import (
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// Tween maps a controller's 0..1 progress onto a value range of any type.
type Tween[T any] struct {
	Begin T
	End   T

	// Lerp interpolates between Begin and End at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the value at progress t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform evaluates the tween at the controller's current value.
func (tw *Tween[T]) Transform(controller *Controller) T {
	return tw.Evaluate(controller.Value)
}

// Float64 tweens a scalar.
func Float64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// OffsetTween tweens a position.
func OffsetTween(begin, end graphics.Offset) *Tween[graphics.Offset] {
	return &Tween[graphics.Offset]{Begin: begin, End: end, Lerp: LerpOffset}
}

// ColorTween tweens a color per channel.
func ColorTween(begin, end graphics.Color) *Tween[graphics.Color] {
	return &Tween[graphics.Color]{Begin: begin, End: end, Lerp: LerpColor}
}

// EdgeInsetsTween tweens insets per side.
func EdgeInsetsTween(begin, end layout.EdgeInsets) *Tween[layout.EdgeInsets] {
	return &Tween[layout.EdgeInsets]{Begin: begin, End: end, Lerp: LerpEdgeInsets}
}

// LerpFloat64 linearly interpolates between two scalars.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two offsets.
func LerpOffset(a, b graphics.Offset, t float64) graphics.Offset {
	return graphics.Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// LerpColor linearly interpolates two colors channel by channel.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	lerpChannel := func(shift uint) uint32 {
		from := float64((uint32(a) >> shift) & 0xFF)
		to := float64((uint32(b) >> shift) & 0xFF)
		return uint32(LerpFloat64(from, to, t)) & 0xFF
	}
	return graphics.Color(
		lerpChannel(24)<<24 | lerpChannel(16)<<16 | lerpChannel(8)<<8 | lerpChannel(0),
	)
}

// LerpEdgeInsets linearly interpolates insets side by side.
func LerpEdgeInsets(a, b layout.EdgeInsets, t float64) layout.EdgeInsets {
	return layout.EdgeInsets{
		Left:   LerpFloat64(a.Left, b.Left, t),
		Top:    LerpFloat64(a.Top, b.Top, t),
		Right:  LerpFloat64(a.Right, b.Right, t),
		Bottom: LerpFloat64(a.Bottom, b.Bottom, t),
	}
}
