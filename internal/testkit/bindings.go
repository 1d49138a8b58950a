package testkit

import (
	"errors"
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/symbols"
)

// CheckBindings verifies that every bound identifier points at a live symbol
// with the same name. Unbound identifiers are fine here; see CheckAllBound.
func CheckBindings(tree *ast.Tree, table *symbols.Table) error {
	if tree == nil || table == nil {
		return fmt.Errorf("nil tree or table")
	}
	var errs []error
	tree.Inspect(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		if n.Kind != ast.KindIdent || !n.Ref.IsValid() {
			return true
		}
		sym := table.Symbol(n.Ref)
		if sym == nil {
			errs = append(errs, fmt.Errorf("ident %q at %s bound to missing symbol %d", tree.Name(id), n.Pos, n.Ref))
			return true
		}
		if sym.Name != n.Name {
			errs = append(errs, fmt.Errorf("ident %q at %s bound to symbol %q", tree.Name(id), n.Pos, table.Name(n.Ref)))
		}
		return true
	})
	return errors.Join(errs...)
}

// CheckAllBound fails for every identifier left without a binding.
func CheckAllBound(tree *ast.Tree) error {
	var errs []error
	for _, id := range tree.Unbound() {
		errs = append(errs, fmt.Errorf("ident %q at %s is unbound", tree.Name(id), tree.Get(id).Pos))
	}
	return errors.Join(errs...)
}

// FindIdent returns the first identifier with the given name and position,
// NoNodeID if there is none. Tests use it to pick a node out of a built tree.
func FindIdent(tree *ast.Tree, name string, line, col uint32) ast.NodeID {
	found := ast.NoNodeID
	tree.Inspect(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		if found.IsValid() {
			return false
		}
		if n.Kind == ast.KindIdent && n.Pos.Line == line && n.Pos.Col == col && tree.Name(id) == name {
			found = id
		}
		return true
	})
	return found
}
