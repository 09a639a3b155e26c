package graphics

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// OpCount returns the number of recorded operations.
func (d *DisplayList) OpCount() int {
	return len(d.ops)
}

// PictureRecorder captures drawing commands into a DisplayList.
type PictureRecorder struct {
	canvas *recordingCanvas
}

// BeginRecording starts recording and returns the canvas to draw into.
func (p *PictureRecorder) BeginRecording(size Size) Canvas {
	p.canvas = &recordingCanvas{size: size}
	return p.canvas
}

// EndRecording stops recording and returns the captured display list.
func (p *PictureRecorder) EndRecording() *DisplayList {
	if p.canvas == nil {
		return &DisplayList{}
	}
	list := &DisplayList{ops: p.canvas.ops, size: p.canvas.size}
	p.canvas = nil
	return list
}

// recordingCanvas implements Canvas by appending operations to a list.
type recordingCanvas struct {
	ops  []displayOp
	size Size
}

func (c *recordingCanvas) Save() {
	c.ops = append(c.ops, opSave{})
}

func (c *recordingCanvas) Restore() {
	c.ops = append(c.ops, opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) ClipRect(rect Rect) {
	c.ops = append(c.ops, opClipRect{rect: rect})
}

func (c *recordingCanvas) ClipRRect(rrect RRect) {
	c.ops = append(c.ops, opClipRRect{rrect: rrect})
}

func (c *recordingCanvas) Clear(color Color) {
	c.ops = append(c.ops, opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.ops = append(c.ops, opRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawRRect(rrect RRect, paint Paint) {
	c.ops = append(c.ops, opRRect{rrect: rrect, paint: paint})
}

func (c *recordingCanvas) DrawLine(start, end Offset, paint Paint) {
	c.ops = append(c.ops, opLine{start: start, end: end, paint: paint})
}

func (c *recordingCanvas) DrawDisplayList(list *DisplayList) {
	if list == nil {
		return
	}
	c.ops = append(c.ops, opDisplayList{list: list})
}

func (c *recordingCanvas) DrawLayer(layer *Layer, offset Offset) {
	if layer == nil {
		return
	}
	c.ops = append(c.ops, opLayer{layer: layer, offset: offset})
}

// displayOp is a single recorded drawing operation.
type displayOp interface {
	execute(canvas Canvas)
}

type opSave struct{}

func (o opSave) execute(canvas Canvas) { canvas.Save() }

type opRestore struct{}

func (o opRestore) execute(canvas Canvas) { canvas.Restore() }

type opTranslate struct {
	dx, dy float64
}

func (o opTranslate) execute(canvas Canvas) { canvas.Translate(o.dx, o.dy) }

type opClipRect struct {
	rect Rect
}

func (o opClipRect) execute(canvas Canvas) { canvas.ClipRect(o.rect) }

type opClipRRect struct {
	rrect RRect
}

func (o opClipRRect) execute(canvas Canvas) { canvas.ClipRRect(o.rrect) }

type opClear struct {
	color Color
}

func (o opClear) execute(canvas Canvas) { canvas.Clear(o.color) }

type opRect struct {
	rect  Rect
	paint Paint
}

func (o opRect) execute(canvas Canvas) { canvas.DrawRect(o.rect, o.paint) }

type opRRect struct {
	rrect RRect
	paint Paint
}

func (o opRRect) execute(canvas Canvas) { canvas.DrawRRect(o.rrect, o.paint) }

type opLine struct {
	start, end Offset
	paint      Paint
}

func (o opLine) execute(canvas Canvas) { canvas.DrawLine(o.start, o.end, o.paint) }

type opDisplayList struct {
	list *DisplayList
}

func (o opDisplayList) execute(canvas Canvas) { canvas.DrawDisplayList(o.list) }

type opLayer struct {
	layer  *Layer
	offset Offset
}

func (o opLayer) execute(canvas Canvas) { canvas.DrawLayer(o.layer, o.offset) }
