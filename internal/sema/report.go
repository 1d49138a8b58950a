package sema

import (
	"cminus/internal/diag"
	"cminus/internal/source"
	"cminus/internal/symbols"
	"cminus/internal/trace"
)

// report emits one semantic error with the code's canonical message. A valid
// prev adds a note pointing at the earlier declaration.
func (a *analyzer) report(code diag.Code, pos, prev source.Pos) {
	a.entries = append(a.entries, diag.Entry{Pos: pos, Code: code})
	b := diag.ReportError(a.reporter, code, pos, code.Title())
	if prev.IsValid() {
		b.WithNote(prev, "previously declared here")
	}
	b.Emit()
	trace.Point(a.tracer, trace.ScopeBlock, "diag", code.ID(), a.span, "pos", pos.String())
}

func (a *analyzer) multiplyDeclared(pos source.Pos, prev symbols.SymbolID) {
	var prevPos source.Pos
	if sym := a.table.Symbol(prev); sym != nil {
		prevPos = sym.Pos
	}
	a.report(diag.SemaMultiplyDeclared, pos, prevPos)
}
