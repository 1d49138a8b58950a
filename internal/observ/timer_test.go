package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("decode")
	tm.End(idx, "3 nodes")
	tm.Record("analyze", 2*time.Millisecond, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "decode" || r.Phases[0].Note != "3 nodes" {
		t.Fatalf("unexpected first phase %+v", r.Phases[0])
	}
	if r.Phases[1].DurationMS != 2 {
		t.Fatalf("recorded duration %v, want 2", r.Phases[1].DurationMS)
	}
	if r.TotalMS < 2 {
		t.Fatalf("total %v below recorded phase", r.TotalMS)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "decode", "// 3 nodes", "analyze", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestReportAdd(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "decode", DurationMS: 1, Note: "x"}, {Name: "analyze", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "analyze", DurationMS: 4}, {Name: "sort", DurationMS: 1}}}

	sum := a.Add(b)
	if sum.TotalMS != 8 {
		t.Fatalf("total %v, want 8", sum.TotalMS)
	}
	want := []PhaseReport{{Name: "decode", DurationMS: 1}, {Name: "analyze", DurationMS: 6}, {Name: "sort", DurationMS: 1}}
	if len(sum.Phases) != len(want) {
		t.Fatalf("phases %+v", sum.Phases)
	}
	for i := range want {
		if sum.Phases[i] != want[i] {
			t.Fatalf("phase %d = %+v, want %+v", i, sum.Phases[i], want[i])
		}
	}
	if a.Phases[0].Note != "x" {
		t.Fatalf("Add mutated its receiver")
	}
}

func TestNilTimerReport(t *testing.T) {
	var tm *Timer
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer should report nothing")
	}
}
