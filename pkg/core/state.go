package core

import "reflect"

// stateCell is one call-site persistent value on an element. Cells are
// matched positionally within their scope: the Nth state declaration of a
// rebuild gets the Nth cell, as long as the stored type still matches.
type stateCell struct {
	value     any
	valueType reflect.Type
	owner     *BuildOwner
	disposeFn func()

	// initialized distinguishes a never-run initializer from a stored nil;
	// interface-typed states may legitimately hold nil.
	initialized bool
}

func (c *stateCell) dispose() {
	if c.disposeFn != nil {
		c.disposeFn()
		c.disposeFn = nil
	}
	c.value = nil
	c.initialized = false
}

// nextStateCell claims the scope's next cell, replacing it if the stored
// type changed since the last rebuild.
func (ui *Ui) nextStateCell(valueType reflect.Type) *stateCell {
	el := ui.element
	if ui.stateCursor < len(el.states) {
		cell := el.states[ui.stateCursor]
		if cell.valueType == valueType {
			ui.stateCursor++
			return cell
		}
		cell.dispose()
		fresh := &stateCell{valueType: valueType, owner: ui.owner}
		el.states[ui.stateCursor] = fresh
		ui.stateCursor++
		return fresh
	}
	cell := &stateCell{valueType: valueType, owner: ui.owner}
	el.states = append(el.states, cell)
	ui.stateCursor++
	return cell
}

// State is a mutable value that persists at its declaration site across
// rebuilds. Setting it schedules a rebuild.
type State[T any] struct {
	cell *stateCell
}

// UseState declares (or re-finds) a persistent value in the current scope.
// The initializer runs only when the cell is created.
func UseState[T any](ui *Ui, init func() T) State[T] {
	cell := ui.nextStateCell(reflect.TypeOf((*T)(nil)).Elem())
	if !cell.initialized {
		cell.value = init()
		cell.initialized = true
	}
	return State[T]{cell: cell}
}

// Value returns the current value. A stored nil interface comes back as
// the zero value.
func (s State[T]) Value() T {
	value, _ := s.cell.value.(T)
	return value
}

// Set replaces the value and schedules a rebuild.
func (s State[T]) Set(value T) {
	s.cell.value = value
	s.cell.owner.ScheduleBuild()
}

// Update applies a transformation to the value and schedules a rebuild.
func (s State[T]) Update(transform func(T) T) {
	s.Set(transform(s.Value()))
}

// Disposable is a resource released when its owning scope unmounts.
type Disposable interface {
	Dispose()
}

// UseController declares a long-lived controller in the current scope. The
// controller is created once and disposed automatically when the scope's
// element unmounts or the declaration disappears.
func UseController[C Disposable](ui *Ui, create func() C) C {
	cell := ui.nextStateCell(reflect.TypeOf((*C)(nil)).Elem())
	if !cell.initialized {
		controller := create()
		cell.value = controller
		cell.disposeFn = controller.Dispose
		cell.initialized = true
	}
	return cell.value.(C)
}
