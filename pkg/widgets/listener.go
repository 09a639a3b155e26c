package widgets

import (
	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/events"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// Listener receives the pointer events that hit its bounds. It imposes no
// layout of its own; the child (or the smallest allowed size) determines
// its bounds.
type Listener struct {
	core.KeyedBase
	OnPointer func(events.PointerEvent)
}

func (w Listener) CreateRenderObject() layout.RenderObject {
	r := &renderListener{onPointer: w.OnPointer}
	r.SetSelf(r)
	return r
}

func (w Listener) UpdateRenderObject(renderObject layout.RenderObject) {
	// Closures are re-created every build; swapping them is free and needs
	// neither layout nor paint.
	renderObject.(*renderListener).onPointer = w.OnPointer
}

type renderListener struct {
	layout.RenderBoxBase
	onPointer func(events.PointerEvent)
}

func (r *renderListener) HitTestSelf(position graphics.Offset) bool { return true }

func (r *renderListener) HandlePointer(event events.PointerEvent) {
	if r.onPointer != nil {
		r.onPointer(event)
	}
}
