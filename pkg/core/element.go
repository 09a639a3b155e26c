package core

import (
	"reflect"

	"github.com/go-loom/loom/pkg/layout"
)

// Element is the identity node behind a declared widget: it survives across
// rebuilds, owns the retained render object the widget configures, and
// carries the call-site state cells for its scope.
type Element struct {
	widget       RenderWidget
	widgetType   reflect.Type
	key          Key
	renderObject layout.RenderObject
	parent       *Element
	children     []*Element
	states       []*stateCell
	owner        *BuildOwner
	depth        int
}

// Widget returns the most recent widget configuration.
func (e *Element) Widget() RenderWidget { return e.widget }

// RenderObject returns the retained node this element configures.
func (e *Element) RenderObject() layout.RenderObject { return e.renderObject }

// Parent returns the enclosing element, or nil at the root.
func (e *Element) Parent() *Element { return e.parent }

// Depth returns the element's distance from the root.
func (e *Element) Depth() int { return e.depth }

// VisitChildren calls visitor for each child element in declaration order.
func (e *Element) VisitChildren(visitor func(*Element)) {
	for _, child := range e.children {
		visitor(child)
	}
}

// renderContainer is the child-editing surface every render object exposes
// through its embedded node base.
type renderContainer interface {
	InsertChild(child, after layout.RenderObject)
	MoveChild(child, after layout.RenderObject)
	RemoveChild(child layout.RenderObject)
}

// unmount tears the element's subtree down, depth-first. Only the subtree
// root detaches its render object from the render tree; descendants go with
// it.
func (e *Element) unmount(detachRender bool) {
	if detachRender && e.renderObject != nil && e.parent != nil && e.parent.renderObject != nil {
		if container, ok := e.parent.renderObject.(renderContainer); ok {
			container.RemoveChild(e.renderObject)
		}
	}
	for _, child := range e.children {
		child.unmount(false)
	}
	e.children = nil
	for _, cell := range e.states {
		cell.dispose()
	}
	e.states = nil
	e.renderObject = nil
	e.parent = nil
}
