// Package widgets provides the built-in widget vocabulary: boxes, flex
// rows and columns, pointer listeners, and the scrolling stack (viewport,
// slivers, scroll views).
//
// Widgets are immutable value configurations declared fresh every rebuild;
// each owns a retained render object that carries layout and paint state
// across frames.
package widgets

import (
	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// SizedBox forces a fixed size, passing it to its child as tight
// constraints. A zero dimension collapses that axis.
type SizedBox struct {
	core.KeyedBase
	Width  float64
	Height float64
}

func (w SizedBox) CreateRenderObject() layout.RenderObject {
	r := &renderSizedBox{width: w.Width, height: w.Height}
	r.SetSelf(r)
	return r
}

func (w SizedBox) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderSizedBox)
	if r.width != w.Width || r.height != w.Height {
		r.width = w.Width
		r.height = w.Height
		r.MarkNeedsLayout()
	}
}

type renderSizedBox struct {
	layout.RenderBoxBase
	width  float64
	height float64
}

func (r *renderSizedBox) desired() graphics.Size {
	return graphics.Size{Width: r.width, Height: r.height}
}

func (r *renderSizedBox) PerformLayout() {
	size := r.BoxConstraints().Constrain(r.desired())
	if child := r.FirstChild(); child != nil {
		child.Layout(layout.Tight(size), false)
	}
	r.SetSize(size)
}

func (r *renderSizedBox) ComputeDryLayout(constraints layout.BoxConstraints) graphics.Size {
	return constraints.Constrain(r.desired())
}

// ColoredBox fills its bounds with a color behind its child.
type ColoredBox struct {
	core.KeyedBase
	Color graphics.Color
}

func (w ColoredBox) CreateRenderObject() layout.RenderObject {
	r := &renderColoredBox{color: w.Color}
	r.SetSelf(r)
	return r
}

func (w ColoredBox) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderColoredBox)
	if r.color != w.Color {
		r.color = w.Color
		r.MarkNeedsPaint()
	}
}

type renderColoredBox struct {
	layout.RenderBoxBase
	color graphics.Color
}

func (r *renderColoredBox) PerformLayout() {
	constraints := r.BoxConstraints()
	if child := r.FirstChild(); child != nil {
		child.Layout(constraints, true)
		r.SetSize(child.(layout.RenderBox).Size())
		return
	}
	// Without a child, fill whatever room there is.
	r.SetSize(constraints.Constrain(constraints.Biggest()))
}

func (r *renderColoredBox) Paint(ctx *layout.PaintContext) {
	ctx.Canvas.DrawRect(r.PaintBounds(), graphics.FillPaint(r.color))
	r.RenderBoxBase.Paint(ctx)
}

func (r *renderColoredBox) HitTestSelf(position graphics.Offset) bool {
	return true
}

// Padding insets its child on all four sides.
type Padding struct {
	core.KeyedBase
	Insets layout.EdgeInsets
}

func (w Padding) CreateRenderObject() layout.RenderObject {
	r := &renderPadding{insets: w.Insets}
	r.SetSelf(r)
	return r
}

func (w Padding) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderPadding)
	if r.insets != w.Insets {
		r.insets = w.Insets
		r.MarkNeedsLayout()
	}
}

type renderPadding struct {
	layout.RenderBoxBase
	insets layout.EdgeInsets
}

func (r *renderPadding) PerformLayout() {
	constraints := r.BoxConstraints()
	child := r.FirstChild()
	if child == nil {
		r.SetSize(constraints.Constrain(graphics.Size{
			Width:  r.insets.Horizontal(),
			Height: r.insets.Vertical(),
		}))
		return
	}
	child.Layout(constraints.Deflate(r.insets), true)
	childSize := child.(layout.RenderBox).Size()
	layout.BoxParentDataOf(child).Offset = r.insets.TopLeft()
	r.SetSize(constraints.Constrain(graphics.Size{
		Width:  childSize.Width + r.insets.Horizontal(),
		Height: childSize.Height + r.insets.Vertical(),
	}))
}

// Alignment positions a child inside spare room: 0 is the start edge,
// 0.5 the center, 1 the end edge, per axis.
type Alignment struct {
	X float64
	Y float64
}

var (
	AlignTopLeft  = Alignment{X: 0, Y: 0}
	AlignCenter   = Alignment{X: 0.5, Y: 0.5}
	AlignBotRight = Alignment{X: 1, Y: 1}
)

// Align sizes itself to the available room and positions its child inside.
type Align struct {
	core.KeyedBase
	Alignment Alignment
}

func (w Align) CreateRenderObject() layout.RenderObject {
	r := &renderAlign{alignment: w.Alignment}
	r.SetSelf(r)
	return r
}

func (w Align) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderAlign)
	if r.alignment != w.Alignment {
		r.alignment = w.Alignment
		r.MarkNeedsLayout()
	}
}

type renderAlign struct {
	layout.RenderBoxBase
	alignment Alignment
}

func (r *renderAlign) PerformLayout() {
	constraints := r.BoxConstraints()
	child := r.FirstChild()
	if child == nil {
		r.SetSize(constraints.Constrain(constraints.Biggest()))
		return
	}
	child.Layout(constraints.Loosen(), true)
	childSize := child.(layout.RenderBox).Size()
	size := constraints.Constrain(constraints.Biggest())
	if !constraints.HasBoundedWidth() {
		size.Width = constraints.ConstrainWidth(childSize.Width)
	}
	if !constraints.HasBoundedHeight() {
		size.Height = constraints.ConstrainHeight(childSize.Height)
	}
	r.SetSize(size)
	layout.BoxParentDataOf(child).Offset = graphics.Offset{
		X: (size.Width - childSize.Width) * r.alignment.X,
		Y: (size.Height - childSize.Height) * r.alignment.Y,
	}
}

// RepaintBoundary isolates its subtree into its own compositing layer, so
// repaints inside do not re-record anything outside, and vice versa.
type RepaintBoundary struct {
	core.KeyedBase
}

func (w RepaintBoundary) CreateRenderObject() layout.RenderObject {
	r := &renderRepaintBoundary{}
	r.SetSelf(r)
	return r
}

func (w RepaintBoundary) UpdateRenderObject(renderObject layout.RenderObject) {}

type renderRepaintBoundary struct {
	layout.RenderBoxBase
}

func (r *renderRepaintBoundary) IsRepaintBoundary() bool { return true }
