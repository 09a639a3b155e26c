package testing

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/layout"
)

// Finder selects elements from a mounted tree.
type Finder interface {
	// Evaluate returns matches under root in depth-first pre-order.
	Evaluate(root *core.Element) []*core.Element

	// Description names the finder in failure messages.
	Description() string
}

// Find evaluates a finder against the mounted tree.
func (x *Tester) Find(finder Finder) Result {
	root := x.app.Builder().RootElement()
	if root == nil {
		return Result{t: x.t, finder: finder}
	}
	return Result{t: x.t, finder: finder, elements: finder.Evaluate(root)}
}

// Result wraps finder matches with assertion helpers.
type Result struct {
	t        testing.TB
	finder   Finder
	elements []*core.Element
}

func fail(t testing.TB, format string, args ...any) {
	t.Helper()
	t.Fatalf(format, args...)
}

// Count returns how many elements matched.
func (r Result) Count() int { return len(r.elements) }

// Exists reports whether anything matched.
func (r Result) Exists() bool { return len(r.elements) > 0 }

// All returns the matches in traversal order.
func (r Result) All() []*core.Element { return r.elements }

// First returns the first match and fails the test when there is none.
func (r Result) First() *core.Element {
	if len(r.elements) == 0 {
		fail(r.t, "no elements matched %s", r.finder.Description())
		return nil
	}
	return r.elements[0]
}

// Single returns the only match and fails the test otherwise.
func (r Result) Single() *core.Element {
	if len(r.elements) != 1 {
		fail(r.t, "%d elements matched %s, want exactly 1", len(r.elements), r.finder.Description())
		return nil
	}
	return r.elements[0]
}

// RenderBox returns the first match's render object as a RenderBox.
func (r Result) RenderBox() layout.RenderBox {
	element := r.First()
	if element == nil {
		return nil
	}
	box, ok := element.RenderObject().(layout.RenderBox)
	if !ok {
		fail(r.t, "%s matched a non-box render object %T", r.finder.Description(), element.RenderObject())
		return nil
	}
	return box
}

// ByType matches elements whose widget has the concrete type T.
func ByType[T core.RenderWidget]() Finder {
	widgetType := reflect.TypeOf((*T)(nil)).Elem()
	return &predicateFinder{
		desc: fmt.Sprintf("ByType[%s]", widgetType),
		fn: func(e *core.Element) bool {
			return reflect.TypeOf(e.Widget()) == widgetType
		},
	}
}

// ByKey matches elements whose widget key equals key.
func ByKey(key core.Key) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("ByKey(%v)", key),
		fn: func(e *core.Element) bool {
			return e.Widget().Key() == key
		},
	}
}

// ByPredicate matches elements satisfying fn.
func ByPredicate(desc string, fn func(*core.Element) bool) Finder {
	return &predicateFinder{desc: desc, fn: fn}
}

type predicateFinder struct {
	desc string
	fn   func(*core.Element) bool
}

func (f *predicateFinder) Evaluate(root *core.Element) []*core.Element {
	var matches []*core.Element
	walk(root, func(e *core.Element) {
		if f.fn(e) {
			matches = append(matches, e)
		}
	})
	return matches
}

func (f *predicateFinder) Description() string { return f.desc }

// Descendant matches elements satisfying matching inside subtrees whose
// root satisfies of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *core.Element) []*core.Element {
	var matches []*core.Element
	seen := map[*core.Element]bool{}
	for _, ancestor := range f.of.Evaluate(root) {
		ancestor.VisitChildren(func(child *core.Element) {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					matches = append(matches, match)
				}
			}
		})
	}
	return matches
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of %s, matching %s)", f.of.Description(), f.matching.Description())
}

func walk(e *core.Element, visit func(*core.Element)) {
	visit(e)
	e.VisitChildren(func(child *core.Element) {
		walk(child, visit)
	})
}
