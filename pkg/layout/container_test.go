package layout

import "testing"

func childrenOf(n RenderObject) []RenderObject {
	var out []RenderObject
	n.VisitChildren(func(child RenderObject) {
		out = append(out, child)
	})
	return out
}

func TestInsertChild_OrderAndParentLinks(t *testing.T) {
	parent := newSpyBox(100, 100)
	a := newSpyBox(1, 1)
	b := newSpyBox(2, 2)
	c := newSpyBox(3, 3)

	parent.AddChild(a)
	parent.AddChild(c)
	parent.InsertChild(b, a)

	got := childrenOf(parent)
	want := []RenderObject{a, b, c}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("child %d out of order", i)
		}
	}
	for _, child := range want {
		if child.node().parent != RenderObject(parent) {
			t.Fatalf("child missing parent back-reference")
		}
	}
	if parent.ChildBefore(b) != RenderObject(a) || parent.ChildAfter(b) != RenderObject(c) {
		t.Fatalf("sibling navigation broken around middle child")
	}
}

func TestInsertChild_NilAfterPrepends(t *testing.T) {
	parent := newSpyBox(100, 100)
	a := newSpyBox(1, 1)
	b := newSpyBox(2, 2)
	parent.AddChild(a)
	parent.InsertChild(b, nil)

	if parent.FirstChild() != RenderObject(b) {
		t.Fatalf("expected insert after nil to prepend")
	}
}

func TestInsertChild_AlreadyParentedPanics(t *testing.T) {
	parent := newSpyBox(100, 100)
	other := newSpyBox(100, 100)
	child := newSpyBox(1, 1)
	parent.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected adopting an already-parented child to panic")
		}
	}()
	other.AddChild(child)
}

func TestInsertChild_AncestorPanics(t *testing.T) {
	parent := newSpyBox(100, 100)
	child := newSpyBox(1, 1)
	parent.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected adopting an ancestor to panic")
		}
	}()
	child.AddChild(parent)
}

func TestRemoveChild_NotAChildPanics(t *testing.T) {
	parent := newSpyBox(100, 100)
	stranger := newSpyBox(1, 1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected removing a non-child to panic")
		}
	}()
	parent.RemoveChild(stranger)
}

func TestRemoveChild_ClearsLinksAndParentData(t *testing.T) {
	parent := newSpyBox(100, 100)
	child := newSpyBox(1, 1)
	parent.AddChild(child)
	parent.RemoveChild(child)

	if child.Parent() != nil {
		t.Fatalf("expected parent link cleared")
	}
	if child.ParentData() != nil {
		t.Fatalf("expected parent data cleared")
	}
	if parent.ChildCount() != 0 {
		t.Fatalf("expected empty child list")
	}
}

func TestRemoveAllChildren_DropsEveryChild(t *testing.T) {
	parent := newSpyBox(100, 100)
	a := newSpyBox(1, 1)
	b := newSpyBox(2, 2)
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveAllChildren()

	if parent.ChildCount() != 0 || a.Parent() != nil || b.Parent() != nil {
		t.Fatalf("expected all children dropped")
	}
}

func TestMoveChild_ReordersWithoutReadoption(t *testing.T) {
	parent := newSpyBox(100, 100)
	a := newSpyBox(1, 1)
	b := newSpyBox(2, 2)
	c := newSpyBox(3, 3)
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	aData := a.ParentData()
	parent.MoveChild(a, c)

	got := childrenOf(parent)
	want := []RenderObject{b, c, a}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("child %d out of order after move", i)
		}
	}
	if a.ParentData() != aData {
		t.Fatalf("expected parent data to survive a move")
	}
}

func TestDepth_ChildrenStrictlyDeeper(t *testing.T) {
	root := newSpyBox(100, 100)
	mid := newSpyBox(50, 50)
	leaf := newSpyBox(10, 10)

	// Build the subtree bottom-up first, so adoption has to fix depths
	// for a whole subtree at once.
	mid.AddChild(leaf)
	root.AddChild(mid)

	if !(root.Depth() < mid.Depth() && mid.Depth() < leaf.Depth()) {
		t.Fatalf("depth invariant violated: root=%d mid=%d leaf=%d",
			root.Depth(), mid.Depth(), leaf.Depth())
	}
}

func TestDepth_SubtreeMovedDeeper(t *testing.T) {
	view, owner := newAttachedRoot(100, 100)
	shallow := newSpyBox(50, 50)
	deepA := newSpyBox(40, 40)
	deepB := newSpyBox(30, 30)
	view.SetChild(shallow)
	owner.FlushLayout()

	sub := newSpyBox(10, 10)
	subLeaf := newSpyBox(5, 5)
	sub.AddChild(subLeaf)

	shallow.AddChild(deepA)
	deepA.AddChild(deepB)
	deepB.AddChild(sub)

	if !(deepB.Depth() < sub.Depth() && sub.Depth() < subLeaf.Depth()) {
		t.Fatalf("depth invariant violated after reparenting deeper: %d %d %d",
			deepB.Depth(), sub.Depth(), subLeaf.Depth())
	}
}

func TestAttach_PropagatesOwnerToSubtree(t *testing.T) {
	view, owner := newAttachedRoot(100, 100)
	parent := newSpyBox(50, 50)
	child := newSpyBox(10, 10)
	parent.AddChild(child)
	view.SetChild(parent)

	if child.Owner() != owner {
		t.Fatalf("expected owner to propagate to grafted subtree")
	}

	view.SetChild(nil)
	if parent.Owner() != nil || child.Owner() != nil {
		t.Fatalf("expected detach to clear owners recursively")
	}
}
