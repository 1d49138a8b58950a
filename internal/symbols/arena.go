package symbols

import (
	"fmt"
	"iter"

	"fortio.org/safecast"

	"cminus/internal/source"
)

// arena is a slice-backed store addressed by 1-based IDs; slot 0 is the
// zero sentinel so the zero ID never resolves.
type arena[ID ~uint32, T any] struct {
	items []T
	what  string
}

func newArena[ID ~uint32, T any](what string, capHint, minCap uint32) arena[ID, T] {
	if capHint == 0 {
		capHint = minCap
	}
	return arena[ID, T]{items: make([]T, 1, capHint+1), what: what}
}

func (a *arena[ID, T]) add(v T) ID {
	n, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", a.what, err))
	}
	a.items = append(a.items, v)
	return ID(n)
}

// Get returns the element for id, or nil for the sentinel or an unknown id.
func (a *arena[ID, T]) Get(id ID) *T {
	if id == 0 || uint64(id) >= uint64(len(a.items)) {
		return nil
	}
	return &a.items[id]
}

// Len reports the number of allocated elements.
func (a *arena[ID, T]) Len() int { return len(a.items) - 1 }

// All yields every element in allocation order.
func (a *arena[ID, T]) All() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := 1; i < len(a.items); i++ {
			if !yield(ID(uint32(i)), &a.items[i]) { // #nosec G115 -- bounded by add
				return
			}
		}
	}
}

// Scopes is the scope arena of a Table.
type Scopes struct{ arena[ScopeID, Scope] }

// NewScopes creates a scope arena with an optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	return &Scopes{newArena[ScopeID, Scope]("scopes", capacity, 32)}
}

// New allocates an empty scope of the given kind.
func (s *Scopes) New(kind ScopeKind, parent ScopeID) ScopeID {
	return s.add(Scope{
		Kind:      kind,
		Parent:    parent,
		NameIndex: make(map[source.StringID]SymbolID),
	})
}

// Symbols is the symbol arena of a Table.
type Symbols struct{ arena[SymbolID, Symbol] }

// NewSymbols creates a symbol arena with an optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	return &Symbols{newArena[SymbolID, Symbol]("symbols", capacity, 64)}
}

// New copies sym into the arena.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return s.add(*sym)
}
