package ast

// Group is one region of a node's children. When OpensScope is set the
// traversal pushes a fresh scope before visiting Nodes and pops it after.
type Group struct {
	Nodes      []NodeID
	OpensScope bool
}

// Groups partitions the children of id for traversal.
//
// Declarations, types, literals and identifiers have no groups: the declared
// name and the type are handled by the node's own action and are never visited
// as uses. A StructDecl returns its field group, which only the struct action
// walks.
func (t *Tree) Groups(id NodeID) []Group {
	n := t.Get(id)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindFnDecl:
		// formals and body share one scope
		return []Group{{Nodes: []NodeID{n.Child(2), n.Child(3)}, OpensScope: true}}
	case KindIfStmt, KindWhileStmt, KindRepeatStmt:
		return []Group{
			{Nodes: []NodeID{n.Child(0)}},
			{Nodes: []NodeID{n.Child(1), n.Child(2)}, OpensScope: true},
		}
	case KindIfElseStmt:
		return []Group{
			{Nodes: []NodeID{n.Child(0)}},
			{Nodes: []NodeID{n.Child(1), n.Child(2)}, OpensScope: true},
			{Nodes: []NodeID{n.Child(3), n.Child(4)}, OpensScope: true},
		}
	case KindStructDecl:
		return []Group{{Nodes: t.StructFields(id)}}
	case KindVarDecl, KindFormalDecl,
		KindIntType, KindBoolType, KindVoidType, KindStructType,
		KindIntLit, KindStrLit, KindTrue, KindFalse,
		KindIdent, KindDotAccess:
		return nil
	case KindProgram, KindDeclList, KindFormalsList, KindFnBody, KindStmtList, KindExpList,
		KindAssignStmt, KindPostIncStmt, KindPostDecStmt, KindReadStmt, KindWriteStmt,
		KindCallStmt, KindReturnStmt,
		KindAssign, KindCallExp, KindUnaryMinus, KindNot,
		KindPlus, KindMinus, KindTimes, KindDivide, KindAnd, KindOr,
		KindEquals, KindNotEquals, KindLess, KindGreater, KindLessEq, KindGreaterEq:
		if len(n.Children) == 0 {
			return nil
		}
		return []Group{{Nodes: n.Children}}
	}
	return nil
}
