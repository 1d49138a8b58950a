package sema

import (
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/source"
	"cminus/internal/symbols"
)

// resolveIdent binds a use of a name to the innermost visible declaration.
func (a *analyzer) resolveIdent(id ast.NodeID) (symbols.SymbolID, error) {
	n := a.tree.Get(id)
	sym, ok, err := a.stack.LookupGlobal(n.Name)
	if err != nil {
		return symbols.NoSymbolID, fmt.Errorf("resolve %q: %w", a.tree.Name(id), err)
	}
	if !ok {
		a.report(diag.SemaUndeclared, n.Pos, source.NoPos)
		return symbols.NoSymbolID, nil
	}
	a.tree.Bind(id, sym)
	return sym, nil
}

// resolveDot resolves lhs.field, lhs first. It returns the field symbol, or
// NoSymbolID when the chain is broken; a break is reported once, at the
// identifier that ends lhs.
func (a *analyzer) resolveDot(id ast.NodeID) (symbols.SymbolID, error) {
	n := a.tree.Get(id)
	lhs, field := n.Child(0), n.Child(1)

	var (
		lhsSym   symbols.SymbolID
		lhsIdent = lhs
		err      error
	)
	if a.tree.Kind(lhs) == ast.KindDotAccess {
		lhsIdent = a.tree.Get(lhs).Child(1)
		lhsSym, err = a.resolveDot(lhs)
	} else {
		lhsSym, err = a.resolveIdent(lhs)
	}
	if err != nil || !lhsSym.IsValid() {
		return symbols.NoSymbolID, err
	}

	pos := a.tree.Pos(lhsIdent)
	sym := a.table.Symbol(lhsSym)
	if !sym.IsStructVar() {
		a.report(diag.SemaDotAccessNonStruct, pos, source.NoPos)
		return symbols.NoSymbolID, nil
	}
	fieldSym, ok := a.table.Field(sym.Struct, a.tree.Get(field).Name)
	if !ok {
		a.report(diag.SemaUnknownField, pos, source.NoPos)
		return symbols.NoSymbolID, nil
	}
	a.tree.Bind(field, fieldSym)
	return fieldSym, nil
}
