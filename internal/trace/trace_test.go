package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelGating(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopeBlock, false},
		{LevelDetail, ScopeBlock, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil || !strings.Contains(err.Error(), "off|error|phase|detail|debug") {
		t.Fatalf("expected error listing the levels, got %v", err)
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("Both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(Both) = %v, %v", m, err)
	}
	if _, err := ParseMode(""); err == nil {
		t.Fatalf("empty mode should be rejected")
	}
	cases := map[string]Format{"": FormatAuto, "auto": FormatAuto, "text": FormatText, "json": FormatNDJSON, "ndjson": FormatNDJSON}
	for in, want := range cases {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if ModeRing.String() != "ring" || Kind(9).String() != "unknown" {
		t.Fatalf("unexpected names %s %s", ModeRing, Kind(9))
	}
}

func TestStreamTextSpanAndPoint(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopeFile, "analyze", 0)
	Point(tr, ScopeBlock, "push", "", span.ID(), "depth", "2")
	Point(tr, ScopeNode, "visit", "", span.ID()) // filtered at detail
	span.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ analyze") {
		t.Fatalf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "• push {depth=2}") {
		t.Fatalf("point line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← analyze (ok)") {
		t.Fatalf("end line: %q", lines[2])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "check", 0).End("")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("invalid json %q: %v", line, err)
		}
		if ev["name"] != "check" || ev["scope"] != "driver" {
			t.Fatalf("unexpected event %v", ev)
		}
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" || snap[1].Seq != 3 {
		t.Fatalf("unexpected ring contents: %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump wrote %q", buf.String())
	}
}

func TestMultiDumpsRing(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), NewRingTracer(8, LevelPhase))
	Begin(m, ScopeFile, "analyze", 0).End("")
	var dump bytes.Buffer
	if err := m.Dump(&dump, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if buf.String() == "" || strings.Count(dump.String(), "\n") != 2 {
		t.Fatalf("stream %q, dump %q", buf.String(), dump.String())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should carry Nop")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	span := Begin(FromContext(ctx), ScopeDriver, "check", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx).SpanID != span.ID() || span.ID() == 0 {
		t.Fatalf("span context not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestNewWritesNDJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson")
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, OutputPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	span := Begin(tr, ScopeDriver, "check", 0).WithExtra("files", "2")
	Point(tr, ScopeFile, "cache_hit", "a.cmast", span.ID())
	span.End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got %d:\n%s", len(lines), data)
	}
	var point map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &point); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if point["kind"] != "point" || point["parent_id"] != float64(span.ID()) {
		t.Fatalf("unexpected point %v", point)
	}
	if !strings.Contains(lines[2], `"files":"2"`) {
		t.Fatalf("end event lost its extra: %s", lines[2])
	}
	if _, ok := tr.(Dumper); !ok {
		t.Fatalf("both mode should keep a ring")
	}
}

func TestDisabledSpanStillTimes(t *testing.T) {
	span := Begin(Nop, ScopeFile, "analyze", 0)
	if span.ID() != 0 || span.WithExtra("k", "v") != span {
		t.Fatalf("disabled span should be inert")
	}
	if span.End("") < 0 {
		t.Fatalf("negative duration")
	}
}
