package sema

import (
	"errors"
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/source"
	"cminus/internal/symbols"
	"cminus/internal/trace"
)

// declareVar handles variable, formal and field declarations against the
// active stack. A bad type is reported before a clash with an earlier name
// in the same scope; both are reported, and neither creates a second binding.
func (a *analyzer) declareVar(decl ast.NodeID) error {
	identID := a.tree.DeclIdent(decl)
	ident := a.tree.Get(identID)
	if ident == nil {
		return nil
	}

	sym, ok, err := a.varSymbol(a.tree.DeclType(decl), ident.Name, ident.Pos)
	if err != nil {
		return err
	}

	prev, dup, err := a.stack.LookupLocal(ident.Name)
	if err != nil {
		return fmt.Errorf("declare %q: %w", a.tree.Name(identID), err)
	}
	if dup {
		a.multiplyDeclared(ident.Pos, prev)
	}
	if !ok {
		return nil
	}

	id, err := a.stack.AddDeclaration(ident.Name, sym)
	switch {
	case errors.Is(err, symbols.ErrDuplicateName):
		// already reported above
	case err != nil:
		return fmt.Errorf("declare %q: %w", a.tree.Name(identID), err)
	default:
		a.tree.Bind(identID, id)
	}
	return nil
}

// varSymbol builds the symbol a var/formal declaration would bind. It reports
// and returns false for void and for struct types that do not name a visible
// struct declaration.
func (a *analyzer) varSymbol(typ ast.NodeID, name source.StringID, pos source.Pos) (symbols.Symbol, bool, error) {
	switch a.tree.Kind(typ) {
	case ast.KindIntType:
		return symbols.NewVar(name, pos, symbols.IntType), true, nil
	case ast.KindBoolType:
		return symbols.NewVar(name, pos, symbols.BoolType), true, nil
	case ast.KindStructType:
		typeIdent := a.tree.StructTypeName(typ)
		structName := a.tree.Get(typeIdent).Name
		id, found, err := a.stack.LookupGlobal(structName)
		if err != nil {
			return symbols.Symbol{}, false, fmt.Errorf("resolve struct %q: %w", a.tree.Name(typeIdent), err)
		}
		if !found || a.table.Symbol(id).Kind != symbols.SymbolStruct {
			a.report(diag.SemaBadStructType, pos, source.NoPos)
			return symbols.Symbol{}, false, nil
		}
		a.tree.Bind(typeIdent, id)
		return symbols.NewStructVar(name, pos, structName, id), true, nil
	default:
		a.report(diag.SemaBadVoidDecl, pos, source.NoPos)
		return symbols.Symbol{}, false, nil
	}
}

// declareFn binds the function in the enclosing scope before its formals and
// body are walked, so the body can call it recursively. A name clash is the
// only error; the formals and body are still analysed.
func (a *analyzer) declareFn(decl ast.NodeID) error {
	identID := a.tree.DeclIdent(decl)
	ident := a.tree.Get(identID)
	if ident == nil {
		return nil
	}

	formals := a.tree.Formals(decl)
	params := make([]symbols.TypeDesc, 0, len(formals))
	for _, formal := range formals {
		params = append(params, a.typeDesc(a.tree.DeclType(formal)))
	}
	sym := symbols.NewFunc(ident.Name, ident.Pos, params, a.typeDesc(a.tree.DeclType(decl)))

	id, err := a.stack.AddDeclaration(ident.Name, sym)
	switch {
	case errors.Is(err, symbols.ErrDuplicateName):
		prev, _, lerr := a.stack.LookupLocal(ident.Name)
		if lerr != nil {
			return fmt.Errorf("declare %q: %w", a.tree.Name(identID), lerr)
		}
		a.multiplyDeclared(ident.Pos, prev)
	case err != nil:
		return fmt.Errorf("declare %q: %w", a.tree.Name(identID), err)
	default:
		a.tree.Bind(identID, id)
	}
	return nil
}

// declareStruct analyses the field list on a private single-scope stack
// linked to the active one, then binds the struct in the enclosing scope.
// A struct whose name is already taken locally is reported and skipped.
func (a *analyzer) declareStruct(decl ast.NodeID) error {
	identID := a.tree.DeclIdent(decl)
	ident := a.tree.Get(identID)
	if ident == nil {
		return nil
	}

	prev, dup, err := a.stack.LookupLocal(ident.Name)
	if err != nil {
		return fmt.Errorf("declare struct %q: %w", a.tree.Name(identID), err)
	}
	if dup {
		a.multiplyDeclared(ident.Pos, prev)
		return nil
	}

	outer := a.stack
	fields := symbols.NewStack(a.table, symbols.ScopeFields)
	fields.LinkScope(outer)
	trace.Point(a.tracer, trace.ScopeBlock, "fields", a.tree.Name(identID), a.span)

	a.stack = fields
	for _, group := range a.tree.Groups(decl) {
		if err = a.visitGroup(group); err != nil {
			break
		}
	}
	a.stack = outer
	if err != nil {
		return err
	}
	if fields.Depth() != 1 {
		return fmt.Errorf("struct %q: %w: field stack depth %d", a.tree.Name(identID), ErrUnbalancedScopes, fields.Depth())
	}

	id, err := outer.AddDeclaration(ident.Name, symbols.NewStruct(ident.Name, ident.Pos, fields.Current()))
	if err != nil {
		// a clash was ruled out above, so any failure here is internal
		return fmt.Errorf("declare struct %q: %w", a.tree.Name(identID), err)
	}
	a.tree.Bind(identID, id)
	return nil
}

// typeDesc describes a type node without resolving it. Function signatures
// record what was written; only variables require a valid type.
func (a *analyzer) typeDesc(typ ast.NodeID) symbols.TypeDesc {
	switch a.tree.Kind(typ) {
	case ast.KindIntType:
		return symbols.IntType
	case ast.KindBoolType:
		return symbols.BoolType
	case ast.KindVoidType:
		return symbols.VoidType
	case ast.KindStructType:
		if n := a.tree.Get(a.tree.StructTypeName(typ)); n != nil {
			return symbols.StructOf(n.Name)
		}
	}
	return symbols.TypeDesc{}
}
