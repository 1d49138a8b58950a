package symbols

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// Dump writes every non-empty scope of the table with its bindings, one
// column per name / kind / type / position. Field scopes are labelled with
// the struct that owns them.
func (t *Table) Dump(w io.Writer) error {
	owners := make(map[ScopeID]SymbolID)
	for id, sym := range t.Symbols.All() {
		if sym.Kind == SymbolStruct {
			owners[sym.Fields] = id
		}
	}

	bw := bufio.NewWriter(w)
	for scopeID, scope := range t.Scopes.All() {
		if scope.Len() == 0 {
			continue
		}
		header := fmt.Sprintf("scope #%d %s", scopeID, scope.Kind)
		if owner, ok := owners[scopeID]; ok {
			header += " of " + t.Describe(owner)
		} else if scope.Parent.IsValid() {
			header += fmt.Sprintf(" (parent #%d)", scope.Parent)
		}
		fmt.Fprintln(bw, header)

		nameWidth, typeWidth := 4, 4
		for _, id := range scope.Symbols {
			nameWidth = max(nameWidth, runewidth.StringWidth(t.Name(id)))
			typeWidth = max(typeWidth, runewidth.StringWidth(t.Describe(id)))
		}
		for _, id := range scope.Symbols {
			sym := t.Symbols.Get(id)
			fmt.Fprintf(bw, "  %s  %-6s  %s  %s\n",
				runewidth.FillRight(t.Name(id), nameWidth),
				sym.Kind,
				runewidth.FillRight(t.Describe(id), typeWidth),
				sym.Pos,
			)
		}
	}
	return bw.Flush()
}
