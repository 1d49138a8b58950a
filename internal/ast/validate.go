package ast

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is wrapped by every Validate error.
var ErrMalformedTree = errors.New("malformed tree")

type childRule struct {
	kinds func(Kind) bool
	what  string
}

var (
	anyDecl   = childRule{Kind.IsDecl, "declaration"}
	anyType   = childRule{Kind.IsType, "type"}
	anyStmt   = childRule{Kind.IsStmt, "statement"}
	anyExpr   = childRule{Kind.IsExpr, "expression"}
	anyLoc    = childRule{Kind.IsLoc, "location"}
	ident     = childRule{is(KindIdent), "identifier"}
	declList  = childRule{is(KindDeclList), "declaration list"}
	stmtList  = childRule{is(KindStmtList), "statement list"}
	expList   = childRule{is(KindExpList), "expression list"}
	formals   = childRule{is(KindFormalsList), "formals list"}
	fnBody    = childRule{is(KindFnBody), "function body"}
	formal    = childRule{is(KindFormalDecl), "formal declaration"}
	assign    = childRule{is(KindAssign), "assignment"}
	callExp   = childRule{is(KindCallExp), "call"}
)

func is(want Kind) func(Kind) bool {
	return func(k Kind) bool { return k == want }
}

// fixed layouts; nil entry means the kind is a leaf
var layouts = map[Kind][]childRule{
	KindProgram:     {declList},
	KindFnBody:      {declList, stmtList},
	KindVarDecl:     {anyType, ident},
	KindFormalDecl:  {anyType, ident},
	KindFnDecl:      {anyType, ident, formals, fnBody},
	KindStructDecl:  {ident, declList},
	KindStructType:  {ident},
	KindAssignStmt:  {assign},
	KindPostIncStmt: {anyLoc},
	KindPostDecStmt: {anyLoc},
	KindReadStmt:    {anyLoc},
	KindWriteStmt:   {anyExpr},
	KindIfStmt:      {anyExpr, declList, stmtList},
	KindIfElseStmt:  {anyExpr, declList, stmtList, declList, stmtList},
	KindWhileStmt:   {anyExpr, declList, stmtList},
	KindRepeatStmt:  {anyExpr, declList, stmtList},
	KindCallStmt:    {callExp},
	KindDotAccess:   {anyLoc, ident},
	KindAssign:      {anyLoc, anyExpr},
	KindCallExp:     {ident, expList},
	KindUnaryMinus:  {anyExpr},
	KindNot:         {anyExpr},
}

// variable-length lists
var lists = map[Kind]childRule{
	KindDeclList:    anyDecl,
	KindFormalsList: formal,
	KindStmtList:    anyStmt,
	KindExpList:     anyExpr,
}

// Validate checks the parser contract: a single Program root, every node
// reachable exactly once, and each kind with the child layout documented on
// Node. It does not look at names or bindings.
func (t *Tree) Validate() error {
	root := t.Get(t.Root)
	if root == nil {
		return fmt.Errorf("%w: no root", ErrMalformedTree)
	}
	if root.Kind != KindProgram {
		return fmt.Errorf("%w: root is %s, want Program", ErrMalformedTree, root.Kind)
	}
	seen := make([]bool, t.Len()+1)
	var errs []error
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := t.Get(id)
		if n == nil {
			errs = append(errs, fmt.Errorf("%w: dangling node #%d", ErrMalformedTree, id))
			return
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("%w: node #%d (%s) shared", ErrMalformedTree, id, n.Kind))
			return
		}
		seen[id] = true
		if err := t.checkShape(id, n); err != nil {
			errs = append(errs, err)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(t.Root)
	return errors.Join(errs...)
}

func (t *Tree) checkShape(id NodeID, n *Node) error {
	if !n.Kind.Valid() {
		return fmt.Errorf("%w: node #%d has invalid kind %d", ErrMalformedTree, id, n.Kind)
	}
	if rule, ok := lists[n.Kind]; ok {
		for i, child := range n.Children {
			if !rule.kinds(t.Kind(child)) {
				return fmt.Errorf("%w: %s #%d child %d is %s, want %s", ErrMalformedTree, n.Kind, id, i, t.Kind(child), rule.what)
			}
		}
		return nil
	}
	if n.Kind == KindReturnStmt {
		switch len(n.Children) {
		case 0:
			return nil
		case 1:
			if !t.Kind(n.Children[0]).IsExpr() {
				return fmt.Errorf("%w: ReturnStmt #%d operand is %s", ErrMalformedTree, id, t.Kind(n.Children[0]))
			}
			return nil
		}
		return fmt.Errorf("%w: ReturnStmt #%d has %d children", ErrMalformedTree, id, len(n.Children))
	}
	var want []childRule
	switch {
	case n.Kind.IsBinary():
		want = []childRule{anyExpr, anyExpr}
	default:
		want = layouts[n.Kind]
	}
	if len(n.Children) != len(want) {
		return fmt.Errorf("%w: %s #%d has %d children, want %d", ErrMalformedTree, n.Kind, id, len(n.Children), len(want))
	}
	for i, rule := range want {
		if k := t.Kind(n.Children[i]); !rule.kinds(k) {
			return fmt.Errorf("%w: %s #%d child %d is %s, want %s", ErrMalformedTree, n.Kind, id, i, k, rule.what)
		}
	}
	if n.Kind == KindIdent && n.Name == 0 {
		return fmt.Errorf("%w: Ident #%d has no name", ErrMalformedTree, id)
	}
	return nil
}
