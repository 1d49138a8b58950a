package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // ring only, dumped on internal faults
	LevelPhase               // driver + per-file spans
	LevelDetail              // scope push/pop and diagnostics
	LevelDebug               // everything including node visits
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// StorageMode determines where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on fault
	ModeBoth
)

var modeNames = []string{"", "stream", "ring", "both"}

// Format is the rendering of an event.
type Format uint8

const (
	FormatAuto   Format = iota // picked from the output path
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

var formatNames = []string{"auto", "text", "ndjson"}

// Kind is the type of an event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = []string{"", "begin", "end", "point"}

// Scope is the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole CLI run
	ScopeFile                    // one analysis run over one tree
	ScopeBlock                   // lexical scope push/pop, diagnostics
	ScopeNode                    // per-node visits
)

var scopeNames = []string{"", "driver", "file", "block", "node"}

func nameOf[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return "unknown"
}

func parseName[T ~uint8](names []string, what, s string) (T, error) {
	i := slices.Index(names, strings.ToLower(s))
	if i <= 0 && (i < 0 || names[0] == "") {
		return 0, fmt.Errorf("invalid trace %s: %q (expected: %s)", what, s, strings.Join(slices.DeleteFunc(slices.Clone(names), func(n string) bool { return n == "" }), "|"))
	}
	return T(i), nil // #nosec G115 -- tables are tiny
}

func (l Level) String() string       { return nameOf(levelNames, l) }
func (m StorageMode) String() string { return nameOf(modeNames, m) }
func (f Format) String() string      { return nameOf(formatNames, f) }
func (k Kind) String() string        { return nameOf(kindNames, k) }
func (s Scope) String() string       { return nameOf(scopeNames, s) }

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) { return parseName[Level](levelNames, "level", s) }

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) { return parseName[StorageMode](modeNames, "mode", s) }

// ParseFormat converts a flag value to a Format; "json" is accepted for
// ndjson and "" for auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	return parseName[Format](formatNames, "format", s)
}

// ShouldEmit reports whether events of scope are recorded at this level.
// LevelError records phase events; they only surface through a ring dump.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError, LevelPhase:
		return scope <= ScopeFile
	case LevelDetail:
		return scope <= ScopeBlock
	}
	return true
}
