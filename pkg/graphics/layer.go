package graphics

// Layer is a node in the compositing tree.
//
// Each repaint boundary owns a layer holding the display list recorded the
// last time the boundary painted. Child boundaries appear as child layers
// rather than as operations inside the content list, so a child can repaint
// without its ancestors re-recording.
type Layer struct {
	offset   Offset
	size     Size
	content  *DisplayList
	children []*Layer
}

// NewLayer creates a layer covering the given size.
func NewLayer(size Size) *Layer {
	return &Layer{size: size}
}

// Size returns the pixel bounds the layer was allocated for.
func (l *Layer) Size() Size {
	return l.size
}

// Offset returns the layer's offset within its parent layer.
func (l *Layer) Offset() Offset {
	return l.offset
}

// SetOffset positions the layer within its parent.
func (l *Layer) SetOffset(offset Offset) {
	l.offset = offset
}

// SetContent replaces the layer's recorded display list.
func (l *Layer) SetContent(content *DisplayList) {
	l.content = content
}

// Content returns the layer's recorded display list, or nil before the
// first paint.
func (l *Layer) Content() *DisplayList {
	return l.content
}

// AddChild appends a child layer.
func (l *Layer) AddChild(child *Layer) {
	l.children = append(l.children, child)
}

// ClearChildren detaches all child layers.
func (l *Layer) ClearChildren() {
	l.children = nil
}

// Children returns the child layers in paint order.
func (l *Layer) Children() []*Layer {
	return l.children
}

// Composite replays the layer's content onto the canvas.
//
// Child layers are referenced from within the content by DrawLayer
// operations, which preserves their paint order relative to the layer's own
// drawing. A backend's DrawLayer implementation descends by calling
// Composite on the referenced child at its offset.
func (l *Layer) Composite(canvas Canvas) {
	if l.content != nil {
		l.content.Paint(canvas)
	}
}
