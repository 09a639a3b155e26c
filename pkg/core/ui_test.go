package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// probeWidget configures probeRender nodes; Label is the mutable
// configuration, Tag distinguishes "different widget type" scenarios.
type probeWidget struct {
	KeyedBase
	Label string
}

func (w probeWidget) CreateRenderObject() layout.RenderObject {
	r := &probeRender{label: w.Label}
	r.SetSelf(r)
	return r
}

func (w probeWidget) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*probeRender)
	if r.label != w.Label {
		r.label = w.Label
		r.updates++
		r.MarkNeedsLayout()
	}
}

type probeRender struct {
	layout.RenderBoxBase
	label   string
	updates int
}

// otherWidget has a distinct type so the reconciler cannot update across it.
type otherWidget struct {
	KeyedBase
}

func (w otherWidget) CreateRenderObject() layout.RenderObject {
	r := &probeRender{label: "other"}
	r.SetSelf(r)
	return r
}

func (w otherWidget) UpdateRenderObject(renderObject layout.RenderObject) {}

func newTestOwner() (*BuildOwner, *layout.RenderView) {
	pipeline := &layout.PipelineOwner{}
	view := layout.NewRenderView(graphics.Size{Width: 100, Height: 100})
	view.PrepareInitialFrame(pipeline)
	return NewBuildOwner(pipeline, view), view
}

func renderLabels(parent layout.RenderObject) []string {
	var labels []string
	parent.VisitChildren(func(child layout.RenderObject) {
		labels = append(labels, child.(*probeRender).label)
	})
	return labels
}

func renderChildren(parent layout.RenderObject) []layout.RenderObject {
	var children []layout.RenderObject
	parent.VisitChildren(func(child layout.RenderObject) {
		children = append(children, child)
	})
	return children
}

func buildLabels(owner *BuildOwner, labels ...string) {
	owner.SetRoot(func(ui *Ui) {
		ui.RenderNode(probeWidget{Label: "host"}, func(ui *Ui) {
			for _, label := range labels {
				ui.RenderLeaf(probeWidget{
					KeyedBase: KeyedBase{WidgetKey: label},
					Label:     label,
				})
			}
		})
	})
	owner.FlushBuild()
}

func hostOf(owner *BuildOwner) layout.RenderObject {
	return owner.RootElement().children[0].RenderObject()
}

func TestBuild_DeclaresRenderTree(t *testing.T) {
	owner, view := newTestOwner()
	buildLabels(owner, "a", "b", "c")

	if diff := cmp.Diff([]string{"a", "b", "c"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("render children mismatch (-want +got):\n%s", diff)
	}
	if len(renderChildren(view)) != 1 {
		t.Fatalf("expected one root child under the view")
	}
}

func TestRebuild_SameKeysUpdateInPlace(t *testing.T) {
	owner, _ := newTestOwner()
	buildLabels(owner, "a", "b")
	before := renderChildren(hostOf(owner))

	owner.SetRoot(func(ui *Ui) {
		ui.RenderNode(probeWidget{Label: "host"}, func(ui *Ui) {
			ui.RenderLeaf(probeWidget{KeyedBase: KeyedBase{WidgetKey: "a"}, Label: "a2"})
			ui.RenderLeaf(probeWidget{KeyedBase: KeyedBase{WidgetKey: "b"}, Label: "b2"})
		})
	})
	owner.FlushBuild()

	after := renderChildren(hostOf(owner))
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected render object %d to keep its identity", i)
		}
	}
	if diff := cmp.Diff([]string{"a2", "b2"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("labels not updated in place (-want +got):\n%s", diff)
	}
}

func TestRebuild_KeyedReorderPreservesIdentity(t *testing.T) {
	owner, _ := newTestOwner()
	buildLabels(owner, "a", "b", "c")
	host := hostOf(owner)
	before := renderChildren(host)
	byLabel := map[string]layout.RenderObject{}
	for _, child := range before {
		byLabel[child.(*probeRender).label] = child
	}

	buildLabels(owner, "c", "a", "b")

	after := renderChildren(hostOf(owner))
	if diff := cmp.Diff([]string{"c", "a", "b"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	for _, child := range after {
		label := child.(*probeRender).label
		if byLabel[label] != child {
			t.Fatalf("expected %q to keep its render object across reorder", label)
		}
	}
}

func TestRebuild_SkippedPreviousChildrenAreTornDown(t *testing.T) {
	owner, _ := newTestOwner()
	buildLabels(owner, "a", "b", "c")

	// "b" matches ahead in the previous list; "a" is skipped over and must
	// be gone, not reordered behind.
	buildLabels(owner, "b", "c")

	if diff := cmp.Diff([]string{"b", "c"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestRebuild_TrailingLeftoversAreTornDown(t *testing.T) {
	owner, _ := newTestOwner()
	buildLabels(owner, "a", "b", "c")
	buildLabels(owner, "a")

	if diff := cmp.Diff([]string{"a"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestRebuild_TypeChangeRecreatesElement(t *testing.T) {
	owner, _ := newTestOwner()
	buildLabels(owner, "a")
	before := renderChildren(hostOf(owner))[0]

	owner.SetRoot(func(ui *Ui) {
		ui.RenderNode(probeWidget{Label: "host"}, func(ui *Ui) {
			ui.RenderLeaf(otherWidget{KeyedBase: KeyedBase{WidgetKey: "a"}})
		})
	})
	owner.FlushBuild()

	after := renderChildren(hostOf(owner))[0]
	if before == after {
		t.Fatalf("expected a fresh render object for a different widget type")
	}
}

func TestRebuild_InsertionAtCursor(t *testing.T) {
	owner, _ := newTestOwner()
	buildLabels(owner, "a", "c")
	host := hostOf(owner)
	before := renderChildren(host)

	buildLabels(owner, "a", "b", "c")

	after := renderChildren(hostOf(owner))
	if diff := cmp.Diff([]string{"a", "b", "c"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if after[0] != before[0] || after[2] != before[1] {
		t.Fatalf("expected surrounding render objects to keep their identity")
	}
}

func TestBuildPanic_ReportedAndPreviousTreeStands(t *testing.T) {
	captured := &capturingHandler{}
	errors.SetHandler(captured)
	defer errors.SetHandler(nil)

	owner, _ := newTestOwner()
	buildLabels(owner, "a", "b")

	owner.SetRoot(func(ui *Ui) {
		panic("boom")
	})
	owner.FlushBuild()

	if len(captured.got) != 1 || captured.got[0].Kind != errors.KindBuild {
		t.Fatalf("expected one build error report, got %+v", captured.got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("expected previous tree to stand (-want +got):\n%s", diff)
	}
}

func TestBuildPanic_MidScopeDoesNotDuplicateChildren(t *testing.T) {
	captured := &capturingHandler{}
	errors.SetHandler(captured)
	defer errors.SetHandler(nil)

	owner, _ := newTestOwner()
	buildLabels(owner, "a", "b")
	before := renderChildren(hostOf(owner))

	// The panic interrupts the scope after "a" was declared; "b" must stay
	// owned by its element, not strand with its render object attached.
	owner.SetRoot(func(ui *Ui) {
		ui.RenderNode(probeWidget{Label: "host"}, func(ui *Ui) {
			ui.RenderLeaf(probeWidget{KeyedBase: KeyedBase{WidgetKey: "a"}, Label: "a"})
			panic("boom")
		})
	})
	owner.FlushBuild()

	if len(captured.got) != 1 || captured.got[0].Kind != errors.KindBuild {
		t.Fatalf("expected one build error report, got %+v", captured.got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("interrupted scope mismatch (-want +got):\n%s", diff)
	}

	buildLabels(owner, "a", "b")

	after := renderChildren(hostOf(owner))
	if diff := cmp.Diff([]string{"a", "b"}, renderLabels(hostOf(owner))); diff != "" {
		t.Fatalf("clean rebuild after panic mismatch (-want +got):\n%s", diff)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected render object %d to keep its identity across the panic", i)
		}
	}
}

type capturingHandler struct {
	got []*errors.Error
}

func (h *capturingHandler) HandleError(err *errors.Error) {
	h.got = append(h.got, err)
}
