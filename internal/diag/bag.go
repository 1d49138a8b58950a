package diag

import (
	"math"
	"sort"

	"cminus/internal/source"
)

// Bag collects diagnostics in the order they are reported, up to a limit.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag returns a bag that keeps at most max diagnostics; max <= 0 means
// the widest limit the bag supports.
func NewBag(max int) *Bag {
	if max <= 0 || max > math.MaxUint16 {
		max = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   uint16(max), // #nosec G115 -- clamped above
	}
}

// Add appends d unless the limit is reached, in which case d is counted as
// dropped and false is returned.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// NoteDropped adds n to the dropped count, for bags restored from a run
// that already hit the limit.
func (b *Bag) NoteDropped(n int) {
	if n > 0 {
		b.dropped += n
	}
}

// Dropped reports how many diagnostics were refused because of the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors reports whether any kept diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the bag's backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Count returns the number of diagnostics with the given code.
func (b *Bag) Count(code Code) int {
	n := 0
	for i := range b.items {
		if b.items[i].Code == code {
			n++
		}
	}
	return n
}

// Codes returns the codes in bag order.
func (b *Bag) Codes() []Code {
	out := make([]Code, len(b.items))
	for i := range b.items {
		out[i] = b.items[i].Code
	}
	return out
}

// Entry is the (position, kind) pair later stages consume.
type Entry struct {
	Pos  source.Pos
	Code Code
}

// Entries returns (position, code) pairs in bag order.
func (b *Bag) Entries() []Entry {
	out := make([]Entry, len(b.items))
	for i := range b.items {
		out[i] = Entry{Pos: b.items[i].Primary, Code: b.items[i].Code}
	}
	return out
}

// Sort orders diagnostics by position, then severity (desc).
// The sort is stable, so diagnostics reported at the same position keep
// their emission order (a bad type before the duplicate it accompanies).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary != dj.Primary {
			return di.Primary.Before(dj.Primary)
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return false
	})
}
