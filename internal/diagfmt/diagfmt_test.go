package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cminus/internal/diag"
	"cminus/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("/home/user/project")
	file := fs.AddVirtual("/home/user/project/src/prog.cm", []byte("int x;\nint x;\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaMultiplyDeclared, source.Pos{File: file, Line: 2, Col: 5}, diag.SemaMultiplyDeclared.Title()).
		WithNote(source.Pos{File: file, Line: 1, Col: 5}, "previously declared here"))
	return bag, fs
}

func TestPrettyPathModes(t *testing.T) {
	bag, fs := sampleBag(t)
	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/prog.cm:2:5"},
		{"relative", PathModeRelative, "src/prog.cm:2:5"},
		{"basename", PathModeBasename, "prog.cm:2:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode}); err != nil {
				t.Fatalf("pretty: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Fatalf("expected %q in:\n%s", tt.want, out)
			}
			if !strings.Contains(out, "ERROR SEM3001: Multiply declared identifier") {
				t.Fatalf("missing header in:\n%s", out)
			}
		})
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: true, ShowNotes: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[1] != "   2 | int x;" {
		t.Fatalf("context line %q", lines[1])
	}
	if lines[2] != "     |     ^" {
		t.Fatalf("caret line %q", lines[2])
	}
	if lines[3] != "  note: prog.cm:1:5: previously declared here" {
		t.Fatalf("note line %q", lines[3])
	}
}

func TestPrettyCaretUsesDisplayWidth(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("w.cm", []byte("界 y;\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaUndeclared, source.Pos{File: file, Line: 1, Col: 3}, diag.SemaUndeclared.Title()))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// the wide rune takes two cells, the space one
	if lines[2] != "     |    ^" {
		t.Fatalf("caret line %q", lines[2])
	}
}

func TestShort(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, true); err != nil {
		t.Fatalf("short: %v", err)
	}
	want := "ERROR SEM3001 /home/user/project/src/prog.cm:2:5 Multiply declared identifier\n" +
		"note SEM3001 /home/user/project/src/prog.cm:1:5 previously declared here\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
	buf.Reset()
	if err := Short(&buf, diag.NewBag(1), fs, false); err != nil || buf.Len() != 0 {
		t.Fatalf("empty bag wrote %q, %v", buf.String(), err)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3001" || d.Severity != "ERROR" || d.Location != (LocationJSON{File: "prog.cm", Line: 2, Col: 5}) {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Line != 1 {
		t.Fatalf("notes %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Add(diag.NewError(diag.SemaUndeclared, source.Pos{Line: 1, Col: 1}, "Undeclared identifier"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 1 {
		t.Fatalf("count %d dropped %d", out.Count, out.Dropped)
	}
}
