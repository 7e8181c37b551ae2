package tree

import "github.com/justyntemme/fstree/internal/debug"

// Kind distinguishes terminal nodes from expandable ones.
type Kind uint8

const (
	Leaf Kind = iota
	Branch
)

func (k Kind) String() string {
	if k == Branch {
		return "branch"
	}
	return "leaf"
}

// NodeID addresses a node in the store's arena.
type NodeID int

// NoParent is the parent of a root node.
const NoParent NodeID = -1

type node struct {
	kind     Kind
	element  Element
	parent   NodeID
	children []NodeID
	expanded bool
}

// Store is the authoritative mutable tree. Nodes live in an arena and refer
// to each other by NodeID; index maps the path of every Branch to its node.
//
// Store performs no locking. Callers must serialize every call, reads
// included, against mutations.
type Store struct {
	nodes []node
	roots []NodeID
	index map[string]NodeID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]NodeID),
	}
}

// Len returns the number of materialized nodes.
func (s *Store) Len() int { return len(s.nodes) }

// AddRoot appends a root node. Roots whose path is already present are
// ignored.
func (s *Store) AddRoot(kind Kind, e Element) bool {
	path := e.Metadata().Path
	if _, ok := s.find(path); ok {
		debug.Log(debug.TREE, "AddRoot: %q already present", path)
		return false
	}
	id := s.alloc(kind, e, NoParent)
	s.roots = append(s.roots, id)
	if kind == Branch {
		s.index[path] = id
	}
	debug.Log(debug.TREE, "AddRoot: %s %q", kind, path)
	return true
}

// Lookup returns the element at path if it is an indexed branch, a child of
// one, or a root.
func (s *Store) Lookup(path string) (Element, bool) {
	id, ok := s.find(path)
	if !ok {
		return nil, false
	}
	return s.nodes[id].element, true
}

// IsBranch reports whether path names a branch.
func (s *Store) IsBranch(path string) bool {
	_, ok := s.index[path]
	return ok
}

// HasChildren reports whether the branch at path has at least one child.
func (s *Store) HasChildren(path string) bool {
	id, ok := s.index[path]
	return ok && len(s.nodes[id].children) > 0
}

// IsExpanded reports whether the branch at path has been enumerated. It
// separates "expanded and empty" from "never expanded".
func (s *Store) IsExpanded(path string) bool {
	id, ok := s.index[path]
	return ok && s.nodes[id].expanded
}

// MarkExpanded records that the branch at path has been enumerated.
func (s *Store) MarkExpanded(path string) bool {
	id, ok := s.index[path]
	if !ok {
		return false
	}
	s.nodes[id].expanded = true
	return true
}

// Children returns the elements of the branch's children in order.
func (s *Store) Children(path string) []Element {
	id, ok := s.index[path]
	if !ok {
		return nil
	}
	children := s.nodes[id].children
	out := make([]Element, len(children))
	for i, c := range children {
		out[i] = s.nodes[c].element
	}
	return out
}

// AttachLeaf appends a leaf child to the branch at parentPath. Unknown
// parents and duplicate child paths are ignored.
func (s *Store) AttachLeaf(parentPath string, e Element) bool {
	return s.attach(parentPath, Leaf, e)
}

// AttachBranch appends a branch child to the branch at parentPath and
// indexes it so it can be expanded in turn. Unknown parents and duplicate
// child paths are ignored.
func (s *Store) AttachBranch(parentPath string, e Element) bool {
	return s.attach(parentPath, Branch, e)
}

// UpdateBranchElement replaces the element of the branch at path with
// f(element).
func (s *Store) UpdateBranchElement(path string, f func(Element) Element) bool {
	id, ok := s.index[path]
	if !ok {
		return false
	}
	s.nodes[id].element = f(s.nodes[id].element)
	return true
}

// UpdateLeafElement replaces the element of the leaf at path with
// f(element). The leaf is found among the children of its parent branch,
// or among the roots.
func (s *Store) UpdateLeafElement(path string, f func(Element) Element) bool {
	id, ok := s.find(path)
	if !ok || s.nodes[id].kind != Leaf {
		return false
	}
	s.nodes[id].element = f(s.nodes[id].element)
	return true
}

func (s *Store) attach(parentPath string, kind Kind, e Element) bool {
	pid, ok := s.index[parentPath]
	if !ok {
		debug.Log(debug.TREE, "attach: unknown parent %q", parentPath)
		return false
	}
	path := e.Metadata().Path
	if _, dup := s.childByPath(pid, path); dup {
		return false
	}
	if _, dup := s.index[path]; dup && kind == Branch {
		return false
	}

	id := s.alloc(kind, e, pid)
	s.nodes[pid].children = append(s.nodes[pid].children, id)
	if kind == Branch {
		s.index[path] = id
	}
	return true
}

func (s *Store) alloc(kind Kind, e Element, parent NodeID) NodeID {
	s.nodes = append(s.nodes, node{kind: kind, element: e, parent: parent})
	return NodeID(len(s.nodes) - 1)
}

// find resolves path through the index, then its parent's children, then
// the roots.
func (s *Store) find(path string) (NodeID, bool) {
	if id, ok := s.index[path]; ok {
		return id, true
	}
	if parent, ok := Parent(path); ok {
		if pid, ok := s.index[parent]; ok {
			if id, ok := s.childByPath(pid, path); ok {
				return id, true
			}
		}
	}
	for _, id := range s.roots {
		if s.nodes[id].element.Metadata().Path == path {
			return id, true
		}
	}
	return 0, false
}

func (s *Store) childByPath(parent NodeID, path string) (NodeID, bool) {
	for _, c := range s.nodes[parent].children {
		if s.nodes[c].element.Metadata().Path == path {
			return c, true
		}
	}
	return 0, false
}
