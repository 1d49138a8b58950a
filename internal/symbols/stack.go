package symbols

import (
	"fmt"

	"cminus/internal/source"
)

// Stack is the symbol table proper: the chain of scopes visible at the
// current point of a traversal, innermost last.
//
// A Stack may be linked to another Stack with LinkScope. A linked stack
// answers LookupGlobal misses by asking the linked one; nothing else crosses
// the link, so pushes and pops on either side stay independent.
type Stack struct {
	table  *Table
	scopes []ScopeID
	link   *Stack
}

// NewStack returns a stack holding a single empty scope of the given kind.
func NewStack(table *Table, kind ScopeKind) *Stack {
	s := &Stack{table: table, scopes: make([]ScopeID, 0, 8)}
	s.scopes = append(s.scopes, table.Scopes.New(kind, NoScopeID))
	return s
}

// Table returns the backing table.
func (s *Stack) Table() *Table { return s.table }

// Depth reports how many scopes are on the stack.
func (s *Stack) Depth() int { return len(s.scopes) }

// Current returns the innermost scope, or NoScopeID on an empty stack.
func (s *Stack) Current() ScopeID {
	if len(s.scopes) == 0 {
		return NoScopeID
	}
	return s.scopes[len(s.scopes)-1]
}

// NewScope pushes an empty block scope and returns its ID.
func (s *Stack) NewScope() ScopeID {
	id := s.table.Scopes.New(ScopeBlock, s.Current())
	s.scopes = append(s.scopes, id)
	return id
}

// RemoveScope pops the innermost scope. The popped scope stays in the table.
func (s *Stack) RemoveScope() (ScopeID, error) {
	if len(s.scopes) == 0 {
		return NoScopeID, fmt.Errorf("remove scope: %w", ErrEmptyTable)
	}
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return top, nil
}

// AddDeclaration binds name to sym in the innermost scope. On success the
// symbol is stored in the table and its ID returned; the table is left
// untouched when the name is already bound there.
func (s *Stack) AddDeclaration(name source.StringID, sym Symbol) (SymbolID, error) {
	scope := s.table.Scopes.Get(s.Current())
	if scope == nil {
		return NoSymbolID, fmt.Errorf("add declaration: %w", ErrEmptyTable)
	}
	if _, exists := scope.NameIndex[name]; exists {
		return NoSymbolID, fmt.Errorf("%w: %q", ErrDuplicateName, s.table.Strings.MustLookup(name))
	}
	sym.Name = name
	sym.Scope = s.Current()
	id := s.table.Symbols.New(&sym)
	scope.NameIndex[name] = id
	scope.Symbols = append(scope.Symbols, id)
	return id, nil
}

// LookupLocal searches the innermost scope only. A missing name is reported
// through the bool, not as an error.
func (s *Stack) LookupLocal(name source.StringID) (SymbolID, bool, error) {
	scope := s.table.Scopes.Get(s.Current())
	if scope == nil {
		return NoSymbolID, false, fmt.Errorf("lookup local: %w", ErrEmptyTable)
	}
	id, ok := scope.Lookup(name)
	return id, ok, nil
}

// LookupGlobal searches from the innermost scope outwards and returns the
// first binding. On a miss the linked stack, if any, is searched the same way.
func (s *Stack) LookupGlobal(name source.StringID) (SymbolID, bool, error) {
	if len(s.scopes) == 0 {
		return NoSymbolID, false, fmt.Errorf("lookup global: %w", ErrEmptyTable)
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if id, ok := s.table.Scopes.Get(s.scopes[i]).Lookup(name); ok {
			return id, true, nil
		}
	}
	if s.link != nil {
		return s.link.LookupGlobal(name)
	}
	return NoSymbolID, false, nil
}

// LinkScope makes outer's scopes visible to LookupGlobal as if they sat
// below this stack's outermost scope. The link is read-only and is held by
// reference, so it sees outer's scopes as they are at lookup time.
func (s *Stack) LinkScope(outer *Stack) {
	if outer == s {
		return
	}
	s.link = outer
}

// Linked returns the stack installed by LinkScope, if any.
func (s *Stack) Linked() *Stack { return s.link }
