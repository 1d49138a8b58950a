package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cminus/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table owns every scope and symbol created during one analysis run. Stacks
// are views over a Table; struct field scopes stay here after their stack is
// gone so later passes can query struct layout.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// Symbol is a nil-safe shortcut for t.Symbols.Get.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if t == nil {
		return nil
	}
	return t.Symbols.Get(id)
}

// Scope is a nil-safe shortcut for t.Scopes.Get.
func (t *Table) Scope(id ScopeID) *Scope {
	if t == nil {
		return nil
	}
	return t.Scopes.Get(id)
}

// Name returns the text of a symbol's name.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}

// Field looks up a field of the struct type symbol structID.
func (t *Table) Field(structID SymbolID, name source.StringID) (SymbolID, bool) {
	sym := t.Symbol(structID)
	if sym == nil || sym.Kind != SymbolStruct {
		return NoSymbolID, false
	}
	return t.Scope(sym.Fields).Lookup(name)
}

// Fields returns the field symbols of a struct type in declaration order.
func (t *Table) Fields(structID SymbolID) []SymbolID {
	sym := t.Symbol(structID)
	if sym == nil || sym.Kind != SymbolStruct {
		return nil
	}
	scope := t.Scope(sym.Fields)
	if scope == nil {
		return nil
	}
	return scope.Symbols
}
