package symbols

import (
	"cminus/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeGlobal            // bottom of a program's stack
	ScopeBlock             // pushed by a scope-opening child group
	ScopeFields            // private scope of a struct declaration
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeBlock:
		return "block"
	case ScopeFields:
		return "fields"
	default:
		return "invalid"
	}
}

// Scope is one lexical binding level. Names are unique within a scope;
// Symbols keeps declaration order for deterministic dumps.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID // scope below this one when it was pushed
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
}

// Lookup returns the binding for name in this scope only.
func (s *Scope) Lookup(name source.StringID) (SymbolID, bool) {
	if s == nil {
		return NoSymbolID, false
	}
	id, ok := s.NameIndex[name]
	return id, ok
}

// Len reports the number of bindings.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Symbols)
}
