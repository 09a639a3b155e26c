package core

import (
	"reflect"

	"github.com/go-loom/loom/pkg/layout"
)

// Ui is the reconciliation cursor for one sibling scope.
//
// The application's build callback declares widgets top-down; each declared
// widget is matched against the scope's previous children with a single
// forward scan. A match (same widget type, equal key) updates the live
// element in place; previous children the scan skips over are torn down;
// a declaration with no match creates a fresh element at the cursor. When
// the scope closes, previous children the scan never reached are torn down
// as well. Render-object child lists are kept in sync as the scan goes, so
// node identity (and with it layout and paint state) survives reorders.
type Ui struct {
	owner   *BuildOwner
	element *Element

	previous    []*Element
	cursor      int
	lastRender  layout.RenderObject
	stateCursor int
}

// RenderNode declares a render-backed element configured by widget. The
// content callback, if non-nil, declares the element's children.
func (ui *Ui) RenderNode(widget RenderWidget, content func(*Ui)) {
	el := ui.matchOrCreate(widget)
	ui.element.children = append(ui.element.children, el)
	ui.lastRender = el.renderObject

	childUi := &Ui{owner: ui.owner, element: el, previous: el.children}
	el.children = nil
	if content != nil {
		runScope(childUi, content)
	}
	childUi.finish()
}

// runScope runs a scope's content callback. If the callback panics, the
// scope is abandoned before the panic continues, so every scope on the
// unwinding path closes over the render children it still owns. Without
// this the interrupted element's unreached previous children would be
// stranded with their render objects attached, and the next clean rebuild
// would duplicate them.
func runScope(childUi *Ui, content func(*Ui)) {
	defer func() {
		if recovered := recover(); recovered != nil {
			childUi.abandon()
			panic(recovered)
		}
	}()
	content(childUi)
}

// RenderLeaf declares a render-backed element with no children.
func (ui *Ui) RenderLeaf(widget RenderWidget) {
	ui.RenderNode(widget, nil)
}

// matchOrCreate runs the forward scan for one declaration.
func (ui *Ui) matchOrCreate(widget RenderWidget) *Element {
	for i := ui.cursor; i < len(ui.previous); i++ {
		prev := ui.previous[i]
		if !canUpdate(prev.widgetType, prev.key, widget) {
			continue
		}
		// Previous children skipped by the scan have no match anywhere
		// later (matching is in-order), so they are gone.
		for j := ui.cursor; j < i; j++ {
			ui.previous[j].unmount(true)
		}
		ui.cursor = i + 1
		prev.widget = widget
		widget.UpdateRenderObject(prev.renderObject)
		ui.placeRender(prev.renderObject, true)
		return prev
	}

	el := &Element{
		widget:     widget,
		widgetType: reflect.TypeOf(widget),
		key:        widget.Key(),
		parent:     ui.element,
		owner:      ui.owner,
		depth:      ui.element.depth + 1,
	}
	el.renderObject = widget.CreateRenderObject()
	if el.renderObject == nil {
		panic("core: CreateRenderObject returned nil")
	}
	ui.placeRender(el.renderObject, false)
	return el
}

// placeRender positions a child render object directly after the previous
// sibling's in the parent's child list.
func (ui *Ui) placeRender(child layout.RenderObject, existing bool) {
	container, ok := ui.element.renderObject.(renderContainer)
	if !ok {
		panic("core: parent render object cannot hold children")
	}
	if existing {
		if child != ui.lastRender {
			container.MoveChild(child, ui.lastRender)
		}
		return
	}
	container.InsertChild(child, ui.lastRender)
}

// finish closes the scope: previous children the scan never reached are
// torn down, as are state cells beyond the last one used this pass.
func (ui *Ui) finish() {
	for i := ui.cursor; i < len(ui.previous); i++ {
		ui.previous[i].unmount(true)
	}
	ui.previous = nil
	if ui.stateCursor < len(ui.element.states) {
		for _, cell := range ui.element.states[ui.stateCursor:] {
			cell.dispose()
		}
		ui.element.states = ui.element.states[:ui.stateCursor]
	}
}

// abandon closes the scope without tearing anything down; used when the
// build callback panicked mid-scope and the safest tree is the union of
// what was declared and what was already there.
func (ui *Ui) abandon() {
	ui.element.children = append(ui.element.children, ui.previous[ui.cursor:]...)
	ui.previous = nil
}
