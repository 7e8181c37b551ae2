package tree

// SnapshotNode is one immutable node of a published tree. ID is the node's
// absolute path. Expanded is set once a branch has been enumerated.
type SnapshotNode struct {
	ID         string
	Element    Element
	Expandable bool
	Expanded   bool
	Children   []SnapshotNode
}

// Snapshot is an immutable copy of the tree for presentation.
type Snapshot struct {
	Roots []SnapshotNode
}

// Snapshot copies the current tree. Elements are values, so the copy shares
// nothing mutable with the store.
func (s *Store) Snapshot() Snapshot {
	roots := make([]SnapshotNode, len(s.roots))
	for i, id := range s.roots {
		roots[i] = s.snapshotNode(id)
	}
	return Snapshot{Roots: roots}
}

func (s *Store) snapshotNode(id NodeID) SnapshotNode {
	n := &s.nodes[id]
	out := SnapshotNode{
		ID:         n.element.Metadata().Path,
		Element:    n.element,
		Expandable: n.kind == Branch,
		Expanded:   n.expanded,
	}
	if len(n.children) > 0 {
		out.Children = make([]SnapshotNode, len(n.children))
		for i, c := range n.children {
			out.Children[i] = s.snapshotNode(c)
		}
	}
	return out
}

// Walk visits every node depth-first in display order. Returning false from
// fn skips the node's children.
func (sn Snapshot) Walk(fn func(n SnapshotNode, depth int) bool) {
	for _, r := range sn.Roots {
		walk(r, 0, fn)
	}
}

func walk(n SnapshotNode, depth int, fn func(SnapshotNode, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Find returns the node with the given ID.
func (sn Snapshot) Find(id string) (SnapshotNode, bool) {
	var found SnapshotNode
	var ok bool
	sn.Walk(func(n SnapshotNode, _ int) bool {
		if ok {
			return false
		}
		if n.ID == id {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Count returns the number of nodes in the snapshot.
func (sn Snapshot) Count() int {
	count := 0
	sn.Walk(func(SnapshotNode, int) bool {
		count++
		return true
	})
	return count
}
