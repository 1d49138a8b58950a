package ast

import (
	"cminus/internal/source"
	"cminus/internal/symbols"
)

// Node is a tagged variant. Which payload fields are meaningful depends on
// Kind:
//
//	Ident            Name, Pos, Ref
//	IntLit           IntVal, Pos
//	StrLit           StrVal, Pos
//	True, False      Pos
//	everything else  Children (layout below)
//
// Child layouts:
//
//	Program          DeclList
//	DeclList         Decl...
//	FormalsList      FormalDecl...
//	FnBody           DeclList StmtList
//	StmtList         Stmt...
//	ExpList          Expr...
//	VarDecl          Type Ident
//	FormalDecl       Type Ident
//	FnDecl           Type Ident FormalsList FnBody
//	StructDecl       Ident DeclList
//	StructType       Ident
//	AssignStmt       Assign
//	PostInc/PostDec/Read/Write  Expr
//	If/While/Repeat  Expr DeclList StmtList
//	IfElse           Expr DeclList StmtList DeclList StmtList
//	CallStmt         CallExp
//	ReturnStmt       [Expr]
//	DotAccess        Expr Ident
//	Assign           Expr Expr
//	CallExp          Ident ExpList
//	unary            Expr
//	binary           Expr Expr
type Node struct {
	Kind     Kind
	Pos      source.Pos
	Name     source.StringID
	IntVal   int64
	StrVal   string
	Children []NodeID

	// Ref is the back-reference of an Ident: the symbol the name resolved to,
	// or NoSymbolID while unresolved. Name analysis writes it at most once.
	Ref symbols.SymbolID
}

// Child returns the i-th child or NoNodeID.
func (n *Node) Child(i int) NodeID {
	if n == nil || i < 0 || i >= len(n.Children) {
		return NoNodeID
	}
	return n.Children[i]
}

// Resolved reports whether an Ident has its back-reference set.
func (n *Node) Resolved() bool {
	return n != nil && n.Ref.IsValid()
}
