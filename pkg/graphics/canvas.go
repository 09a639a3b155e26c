package graphics

// Canvas records or renders drawing commands.
//
// The engine core only ever draws into recording canvases; rasterization
// happens outside, in whatever backend the embedder supplies. A backend
// implements Canvas and replays composited layers onto it.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)

	// ClipRRect restricts future drawing to the given rounded rectangle.
	ClipRRect(rrect RRect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawRRect draws a rounded rectangle with the provided paint.
	DrawRRect(rrect RRect, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawDisplayList replays a recorded display list at the current origin.
	DrawDisplayList(list *DisplayList)

	// DrawLayer composites a child layer at the given offset.
	//
	// During recording this captures the layer by reference, so a boundary
	// child can repaint its layer without its parents re-recording.
	DrawLayer(layer *Layer, offset Offset)
}
