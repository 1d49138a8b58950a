package ast

import "cminus/internal/source"

// DeclIdent returns the declared-name Ident of a declaration node.
func (t *Tree) DeclIdent(decl NodeID) NodeID {
	n := t.Get(decl)
	if n == nil {
		return NoNodeID
	}
	switch n.Kind {
	case KindVarDecl, KindFormalDecl, KindFnDecl:
		return n.Child(1)
	case KindStructDecl:
		return n.Child(0)
	}
	return NoNodeID
}

// DeclType returns the type node of a var/formal/function declaration.
func (t *Tree) DeclType(decl NodeID) NodeID {
	n := t.Get(decl)
	if n == nil {
		return NoNodeID
	}
	switch n.Kind {
	case KindVarDecl, KindFormalDecl, KindFnDecl:
		return n.Child(0)
	}
	return NoNodeID
}

// Formals returns the FormalDecl nodes of a function declaration.
func (t *Tree) Formals(fn NodeID) []NodeID {
	n := t.Get(fn)
	if n == nil || n.Kind != KindFnDecl {
		return nil
	}
	if list := t.Get(n.Child(2)); list != nil {
		return list.Children
	}
	return nil
}

// StructFields returns the field declarations of a struct declaration.
func (t *Tree) StructFields(decl NodeID) []NodeID {
	n := t.Get(decl)
	if n == nil || n.Kind != KindStructDecl {
		return nil
	}
	if list := t.Get(n.Child(1)); list != nil {
		return list.Children
	}
	return nil
}

// StructTypeName returns the Ident naming the struct in a StructType node.
func (t *Tree) StructTypeName(typ NodeID) NodeID {
	n := t.Get(typ)
	if n == nil || n.Kind != KindStructType {
		return NoNodeID
	}
	return n.Child(0)
}

// Pos returns the position of a node. Leaves carry their own; declarations
// report their declared name; other nodes report their first positioned child.
func (t *Tree) Pos(id NodeID) source.Pos {
	n := t.Get(id)
	if n == nil {
		return source.NoPos
	}
	if n.Pos.IsValid() {
		return n.Pos
	}
	if n.Kind.IsDecl() {
		return t.Pos(t.DeclIdent(id))
	}
	for _, child := range n.Children {
		if pos := t.Pos(child); pos.IsValid() {
			return pos
		}
	}
	return source.NoPos
}
