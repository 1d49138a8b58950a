package sema

import (
	"fmt"
	"strconv"

	"cminus/internal/ast"
	"cminus/internal/trace"
)

// visit runs the node's action and, unless the action took over its
// children, walks each child group in order. A scope-opening group gets a
// fresh scope that is popped once the group is done.
func (a *analyzer) visit(id ast.NodeID) error {
	n := a.tree.Get(id)
	if n == nil {
		return nil
	}
	a.visited++
	if a.traceNodes {
		trace.Point(a.tracer, trace.ScopeNode, "visit", n.Kind.String(), a.span, "pos", a.tree.Pos(id).String())
	}

	descend, err := a.action(id, n)
	if err != nil || !descend {
		return err
	}
	for _, group := range a.tree.Groups(id) {
		if err := a.visitGroup(group); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) visitGroup(group ast.Group) error {
	if group.OpensScope {
		scope := a.stack.NewScope()
		trace.Point(a.tracer, trace.ScopeBlock, "push", "", a.span,
			"scope", strconv.FormatUint(uint64(scope), 10), "depth", strconv.Itoa(a.stack.Depth()))
	}
	for _, child := range group.Nodes {
		if err := a.visit(child); err != nil {
			return err
		}
	}
	if group.OpensScope {
		scope, err := a.stack.RemoveScope()
		if err != nil {
			return fmt.Errorf("leave group: %w", err)
		}
		trace.Point(a.tracer, trace.ScopeBlock, "pop", "", a.span,
			"scope", strconv.FormatUint(uint64(scope), 10), "depth", strconv.Itoa(a.stack.Depth()))
	}
	return nil
}

// action is the per-kind semantic action. It reports false when the node's
// children must not be walked by visit.
func (a *analyzer) action(id ast.NodeID, n *ast.Node) (bool, error) {
	switch n.Kind {
	case ast.KindVarDecl, ast.KindFormalDecl:
		return false, a.declareVar(id)
	case ast.KindFnDecl:
		return true, a.declareFn(id)
	case ast.KindStructDecl:
		return false, a.declareStruct(id)
	case ast.KindIdent:
		_, err := a.resolveIdent(id)
		return false, err
	case ast.KindDotAccess:
		_, err := a.resolveDot(id)
		return false, err
	}
	return true, nil
}
