package testing

import (
	"github.com/go-loom/loom/pkg/graphics"
)

// PaintedRect is a filled rectangle observed while replaying a frame, in
// surface coordinates and clipped to the clip stack in effect when it was
// drawn.
type PaintedRect struct {
	Bounds graphics.Rect
	Color  graphics.Color
}

// Rasterize replays a layer tree and returns every filled rectangle in
// paint order. Stroked shapes and lines are ignored; tests assert on fills.
func Rasterize(layer *graphics.Layer) []PaintedRect {
	canvas := &flattenCanvas{clip: graphics.RectFromOffsetSize(graphics.Offset{}, layer.Size())}
	layer.Composite(canvas)
	return canvas.rects
}

// PaintedRects rasterizes the most recently presented frame.
func (x *Tester) PaintedRects() []PaintedRect {
	x.t.Helper()
	return Rasterize(x.LastFrame())
}

// PaintedColorAt returns the color of the topmost fill covering position,
// or false when nothing painted there.
func (x *Tester) PaintedColorAt(position graphics.Offset) (graphics.Color, bool) {
	x.t.Helper()
	rects := x.PaintedRects()
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].Bounds.Contains(position) {
			return rects[i].Color, true
		}
	}
	return 0, false
}

// flattenCanvas resolves translate and clip state so recorded operations
// come out in absolute surface coordinates.
type flattenCanvas struct {
	origin graphics.Offset
	clip   graphics.Rect
	stack  []flattenState
	rects  []PaintedRect
}

type flattenState struct {
	origin graphics.Offset
	clip   graphics.Rect
}

func (c *flattenCanvas) Save() {
	c.stack = append(c.stack, flattenState{origin: c.origin, clip: c.clip})
}

func (c *flattenCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	state := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.origin = state.origin
	c.clip = state.clip
}

func (c *flattenCanvas) Translate(dx, dy float64) {
	c.origin = c.origin.Add(graphics.Offset{X: dx, Y: dy})
}

func (c *flattenCanvas) ClipRect(rect graphics.Rect) {
	c.clip = c.clip.Intersect(rect.Translate(c.origin.X, c.origin.Y))
}

func (c *flattenCanvas) ClipRRect(rrect graphics.RRect) {
	// Corner radii are ignored; the bounding rect is close enough for
	// coverage assertions.
	c.ClipRect(rrect.Rect)
}

func (c *flattenCanvas) Clear(color graphics.Color) {
	c.rects = append(c.rects, PaintedRect{Bounds: c.clip, Color: color})
}

func (c *flattenCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	if paint.Style != graphics.PaintStyleFill {
		return
	}
	bounds := rect.Translate(c.origin.X, c.origin.Y).Intersect(c.clip)
	if bounds.IsEmpty() {
		return
	}
	c.rects = append(c.rects, PaintedRect{Bounds: bounds, Color: paint.Color})
}

func (c *flattenCanvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	c.DrawRect(rrect.Rect, paint)
}

func (c *flattenCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {}

func (c *flattenCanvas) DrawDisplayList(list *graphics.DisplayList) {
	if list != nil {
		list.Paint(c)
	}
}

func (c *flattenCanvas) DrawLayer(layer *graphics.Layer, offset graphics.Offset) {
	c.Save()
	c.Translate(offset.X, offset.Y)
	layer.Composite(c)
	c.Restore()
}
