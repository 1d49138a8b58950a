package ui

import (
	"math"
	"strings"
	"testing"

	"cminus/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	files := []string{"a.cmast", "b.cmast", "c.cmast"}
	m := NewProgressModel("checking", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.cmast", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "b.cmast", Stage: driver.StageAnalyze, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "c.cmast", Stage: driver.StageAnalyze, Status: driver.StatusCached})
	m.applyEvent(driver.Event{File: "unknown.cmast", Stage: driver.StageLoad, Status: driver.StatusError})

	if got := m.items[0].status; got != "analyzing" {
		t.Fatalf("a status %q", got)
	}
	c := m.counts()
	if c.finished != 2 || c.failed != 1 || c.cached != 1 {
		t.Fatalf("counts %+v", c)
	}
	if got, want := m.fraction(), 2.6/3; math.Abs(got-want) > 1e-9 {
		t.Fatalf("fraction %v, want %v", got, want)
	}

	view := m.View()
	for _, want := range []string{"checking (2/3, 1 with errors, 1 cached)", "analyzing", "a.cmast"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	ch := make(chan driver.Event)
	close(ch)
	m := NewProgressModel("checking", []string{"a.cmast"}, ch).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatalf("closed channel should produce doneMsg")
	}
	m.Update(doneMsg{})
	if !m.done || !strings.HasPrefix(stripANSI(m.View()), "done: ") {
		t.Fatalf("model should be done")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/very/long/path.cmast", 10); got != "interna..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			in = true
		case in && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}
