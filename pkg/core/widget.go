// Package core reconciles declarative widget trees: a build callback
// declares the tree each frame through a Ui cursor, and the element
// reconciler matches declarations to live elements by order, type, and
// key, updating retained render objects in place instead of rebuilding
// them. State cells give build callbacks persistent values whose writes
// schedule the next build.
package core

import (
	"reflect"

	"github.com/go-loom/loom/pkg/layout"
)

// Key identifies an element across rebuilds. Keys must be comparable; nil
// means "match by declaration order and widget type alone".
type Key any

// RenderWidget is an immutable description of a render object's
// configuration. Widgets are cheap value objects declared fresh on every
// rebuild; the reconciler matches them to live elements and pushes changed
// configuration into the retained render objects.
type RenderWidget interface {
	// Key returns the widget's explicit key, or nil.
	Key() Key

	// CreateRenderObject instantiates the retained node for a fresh element.
	CreateRenderObject() layout.RenderObject

	// UpdateRenderObject pushes this widget's configuration into an existing
	// node, marking it for layout or paint only when something changed.
	UpdateRenderObject(renderObject layout.RenderObject)
}

// KeyedBase is an embeddable helper supplying an explicit key.
type KeyedBase struct {
	WidgetKey Key
}

// Key returns the explicit key.
func (k KeyedBase) Key() Key { return k.WidgetKey }

// canUpdate reports whether an element configured by old can accept the new
// widget in place: same dynamic type and equal explicit keys.
func canUpdate(oldType reflect.Type, oldKey Key, widget RenderWidget) bool {
	return oldType == reflect.TypeOf(widget) && oldKey == widget.Key()
}
