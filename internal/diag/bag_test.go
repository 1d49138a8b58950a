package diag

import (
	"testing"

	"cminus/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		bag.Add(NewError(SemaUndeclared, source.Pos{Line: uint32(i + 1), Col: 1}, "x"))
	}
	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("expected 2 kept and 1 dropped, got %d/%d", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
}

func TestBagSortKeepsEmissionOrderAtSamePosition(t *testing.T) {
	bag := NewBag(0)
	pos := source.Pos{Line: 3, Col: 6}
	bag.Add(NewError(SemaUndeclared, source.Pos{Line: 5, Col: 1}, "later"))
	bag.Add(NewError(SemaBadVoidDecl, pos, "void"))
	bag.Add(NewError(SemaMultiplyDeclared, pos, "dup"))
	bag.Sort()

	got := bag.Codes()
	want := []Code{SemaBadVoidDecl, SemaMultiplyDeclared, SemaUndeclared}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s want %s", i, got[i].ID(), want[i].ID())
		}
	}
}

func TestBagEntriesAndCount(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	ReportError(r, SemaUnknownField, source.Pos{Line: 1, Col: 2}, "f").Emit()
	ReportError(r, SemaUnknownField, source.Pos{Line: 4, Col: 2}, "g").
		WithNote(source.Pos{Line: 1, Col: 1}, "struct declared here").
		Emit()

	if bag.Count(SemaUnknownField) != 2 || bag.Count(SemaUndeclared) != 0 {
		t.Fatalf("unexpected counts: %v", bag.Codes())
	}
	entries := bag.Entries()
	if entries[1].Pos.Line != 4 || entries[1].Code != SemaUnknownField {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
	if len(bag.Items()[1].Notes) != 1 {
		t.Fatalf("note lost")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaUndeclared, source.Pos{Line: 1, Col: 1}, "y")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected a single diagnostic, got %d", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		SemaMultiplyDeclared: "SEM3001",
		IODecodeTree:         "IO4002",
		InternalEmptyTable:   "INT9001",
		UnknownCode:          "E0000",
	}
	for code, want := range cases {
		if code.ID() != want {
			t.Fatalf("%d: got %s want %s", code, code.ID(), want)
		}
	}
	if SemaBadVoidDecl.Title() != "Non-function declared void" {
		t.Fatalf("unexpected title %q", SemaBadVoidDecl.Title())
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("prog.cm", nil)
	diags := []Diagnostic{
		NewError(SemaMultiplyDeclared, source.Pos{File: file, Line: 2, Col: 5}, "Multiply declared identifier").
			WithNote(source.Pos{File: file, Line: 1, Col: 5}, "previous  declaration"),
	}
	got := FormatShortDiagnostics(diags, fs, true)
	want := "ERROR SEM3001 prog.cm:2:5 Multiply declared identifier\nnote SEM3001 prog.cm:1:5 previous declaration"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
