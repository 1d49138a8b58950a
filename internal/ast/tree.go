package ast

import (
	"cminus/internal/source"
	"cminus/internal/symbols"
)

// Tree owns every node of one program. Its shape is fixed once built; the
// only mutation after construction is Bind on Ident nodes.
type Tree struct {
	Nodes   *Arena[Node]
	Strings *source.Interner
	File    source.FileID
	Root    NodeID
}

// NewTree returns an empty tree whose positions belong to file.
func NewTree(strings *source.Interner, file source.FileID) *Tree {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Tree{
		Nodes:   NewArena[Node](64),
		Strings: strings,
		File:    file,
	}
}

// Get returns the node for id, or nil.
func (t *Tree) Get(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Kind returns the kind of id, KindInvalid for a missing node.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Get(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Len reports the number of nodes.
func (t *Tree) Len() int {
	return int(t.Nodes.Len())
}

// Name returns the identifier text of an Ident node.
func (t *Tree) Name(id NodeID) string {
	n := t.Get(id)
	if n == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(n.Name)
	return s
}

// Bind records the symbol an Ident resolved to. It returns false for a
// non-Ident node or an Ident that is already bound.
func (t *Tree) Bind(id NodeID, sym symbols.SymbolID) bool {
	n := t.Get(id)
	if n == nil || n.Kind != KindIdent || n.Ref.IsValid() || !sym.IsValid() {
		return false
	}
	n.Ref = sym
	return true
}

// Ref returns the back-reference of an Ident.
func (t *Tree) Ref(id NodeID) symbols.SymbolID {
	if n := t.Get(id); n != nil {
		return n.Ref
	}
	return symbols.NoSymbolID
}

// SetFile moves every position in the tree to file. Decoders use it once the
// tree's source has been registered in a FileSet.
func (t *Tree) SetFile(file source.FileID) {
	t.File = file
	nodes := t.Nodes.Slice()
	for i := range nodes {
		if nodes[i].Pos.IsValid() {
			nodes[i].Pos.File = file
		}
	}
}

// Inspect visits id and its descendants in pre-order, following Children in
// order. Returning false from fn skips the node's children.
func (t *Tree) Inspect(id NodeID, fn func(NodeID, *Node) bool) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for _, child := range n.Children {
		t.Inspect(child, fn)
	}
}

// Unbound lists identifier nodes without a binding, in pre-order.
func (t *Tree) Unbound() []NodeID {
	var out []NodeID
	t.Inspect(t.Root, func(id NodeID, n *Node) bool {
		if n.Kind == KindIdent && !n.Ref.IsValid() {
			out = append(out, id)
		}
		return true
	})
	return out
}
