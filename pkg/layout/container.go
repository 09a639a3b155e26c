package layout

import "fmt"

// Child list editing.
//
// Every node owns an ordered child list. Structural edits go through the
// adoption protocol: adopting installs parent data, fixes depths and
// attaches the child to the owner; dropping reverses all of that. Invalid
// edits are bugs in the caller and panic.

// ChildCount returns the number of children.
func (n *nodeBase) ChildCount() int { return len(n.children) }

// ChildAt returns the child at the given paint-order index.
func (n *nodeBase) ChildAt(index int) RenderObject { return n.children[index] }

// FirstChild returns the first child, or nil.
func (n *nodeBase) FirstChild() RenderObject {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil.
func (n *nodeBase) LastChild() RenderObject {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// ChildAfter returns the sibling painted after child, or nil.
func (n *nodeBase) ChildAfter(child RenderObject) RenderObject {
	i := n.childIndex(child)
	if i < 0 {
		panic("layout: ChildAfter of a render object that is not a child")
	}
	if i+1 >= len(n.children) {
		return nil
	}
	return n.children[i+1]
}

// ChildBefore returns the sibling painted before child, or nil.
func (n *nodeBase) ChildBefore(child RenderObject) RenderObject {
	i := n.childIndex(child)
	if i < 0 {
		panic("layout: ChildBefore of a render object that is not a child")
	}
	if i == 0 {
		return nil
	}
	return n.children[i-1]
}

// InsertChild adds a child after the given sibling, or first if after is nil.
func (n *nodeBase) InsertChild(child, after RenderObject) {
	n.adoptChild(child)
	n.insertIntoChildList(child, after)
}

// AddChild appends a child at the end of the child list.
func (n *nodeBase) AddChild(child RenderObject) {
	n.InsertChild(child, n.LastChild())
}

// RemoveChild detaches a child from the list and drops it.
func (n *nodeBase) RemoveChild(child RenderObject) {
	n.removeFromChildList(child)
	n.dropChild(child)
}

// RemoveAllChildren drops every child.
func (n *nodeBase) RemoveAllChildren() {
	children := n.children
	n.children = nil
	for _, child := range children {
		n.dropChild(child)
	}
}

// MoveChild repositions an existing child after the given sibling. The
// child keeps its identity, parent data and layout state; only paint order
// changes, so the parent is marked for layout to re-place it.
func (n *nodeBase) MoveChild(child, after RenderObject) {
	if child == after {
		panic("layout: MoveChild cannot place a child after itself")
	}
	if child.node().parent != n.self {
		panic("layout: MoveChild of a render object that is not a child")
	}
	i := n.childIndex(child)
	if n.childAfterIndex(after) == i {
		return
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	n.insertIntoChildList(child, after)
	n.MarkNeedsLayout()
}

func (n *nodeBase) childIndex(child RenderObject) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// childAfterIndex returns the list index a child inserted after the given
// sibling would occupy.
func (n *nodeBase) childAfterIndex(after RenderObject) int {
	if after == nil {
		return 0
	}
	i := n.childIndex(after)
	if i < 0 {
		panic("layout: insertion point is not a child of this render object")
	}
	return i + 1
}

func (n *nodeBase) insertIntoChildList(child, after RenderObject) {
	if n.childIndex(child) >= 0 {
		panic("layout: render object inserted twice into the same child list")
	}
	i := n.childAfterIndex(after)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

func (n *nodeBase) removeFromChildList(child RenderObject) {
	i := n.childIndex(child)
	if i < 0 {
		panic("layout: RemoveChild of a render object that is not a child")
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
}

// adoptChild makes child part of this node's subtree.
func (n *nodeBase) adoptChild(child RenderObject) {
	if child == nil {
		panic("layout: cannot adopt a nil child")
	}
	cn := child.node()
	if cn.self == nil {
		panic(fmt.Sprintf("layout: %T adopted before SetSelf", child))
	}
	if cn.parent != nil {
		panic(fmt.Sprintf("layout: %T already has a parent", child))
	}
	for ancestor := n.self; ancestor != nil; ancestor = ancestor.node().parent {
		if ancestor == child {
			panic(fmt.Sprintf("layout: adopting %T would create a cycle", child))
		}
	}
	n.setupParentData(child)
	cn.parent = n.self
	n.RedepthChild(child)
	if n.owner != nil {
		child.Attach(n.owner)
	}
	n.MarkNeedsLayout()
}

// dropChild severs the child from this node's subtree.
func (n *nodeBase) dropChild(child RenderObject) {
	cn := child.node()
	if cn.parent != n.self {
		panic(fmt.Sprintf("layout: dropping %T which is not a child", child))
	}
	cleanRelayoutBoundary(child)
	cn.parentData = nil
	cn.parent = nil
	if n.owner != nil {
		child.Detach()
	}
	n.MarkNeedsLayout()
}

// setupParentData installs fresh parent data on an adopted child. Parents
// speaking a different protocol override SetupParentData.
func (n *nodeBase) setupParentData(child RenderObject) {
	if setup, ok := n.self.(interface{ SetupParentData(RenderObject) }); ok {
		setup.SetupParentData(child)
		return
	}
	child.node().parentData = &BoxParentData{}
}

// RedepthChild ensures child is strictly deeper than this node, descending
// only while depths actually change.
func (n *nodeBase) RedepthChild(child RenderObject) {
	cn := child.node()
	if cn.depth <= n.depth {
		cn.depth = n.depth + 1
		child.VisitChildren(func(grandchild RenderObject) {
			cn.RedepthChild(grandchild)
		})
	}
}

// RedepthChildren recomputes depths for the whole subtree below this node.
func (n *nodeBase) RedepthChildren() {
	for _, child := range n.children {
		n.RedepthChild(child)
	}
}
