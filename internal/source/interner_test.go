package source

import "testing"

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to the empty string, got %q ok=%v", s, ok)
	}

	id1 := interner.Intern("count")
	if id1 == NoStringID {
		t.Fatalf("non-empty string interned as NoStringID")
	}
	if id2 := interner.Intern("count"); id1 != id2 {
		t.Fatalf("same text produced different IDs: %d != %d", id1, id2)
	}
	if s := interner.MustLookup(id1); s != "count" {
		t.Fatalf("lookup returned %q", s)
	}
	if id3 := interner.Intern("total"); id3 == id1 {
		t.Fatalf("different strings share ID %d", id3)
	}
	if interner.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", interner.Len())
	}
}

func TestInternerNormalisesNFC(t *testing.T) {
	interner := NewInterner()

	composed := interner.Intern("caf\u00e9")
	decomposed := interner.Intern("cafe\u0301")
	if composed != decomposed {
		t.Fatalf("NFC-equivalent names got different IDs: %d vs %d", composed, decomposed)
	}
	if id, ok := interner.Find("cafe\u0301"); !ok || id != composed {
		t.Fatalf("Find did not normalise: id=%d ok=%v", id, ok)
	}
}

func TestInternerFindDoesNotInsert(t *testing.T) {
	interner := NewInterner()
	if _, ok := interner.Find("ghost"); ok {
		t.Fatalf("Find reported a name that was never interned")
	}
	if interner.Len() != 1 {
		t.Fatalf("Find must not grow the interner, len=%d", interner.Len())
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	interner := NewInterner()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown ID")
		}
	}()
	interner.MustLookup(StringID(42))
}
