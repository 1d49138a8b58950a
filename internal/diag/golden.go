package diag

import (
	"fmt"
	"strings"

	"cminus/internal/source"
)

// FormatShortDiagnostics renders one line per diagnostic,
// "<SEV> <CODE> <path>:<line>:<col> <message>", in the given order. Notes
// follow their diagnostic as "note" lines when includeNotes is set.
// The output is stable and is what golden files compare against.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range diags {
		d := &diags[i]
		writeShortLine(&b, d.Severity.String(), d.Code, pathOf(fs, d.Primary.File), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			writeShortLine(&b, "note", d.Code, pathOf(fs, note.Pos.File), note.Pos, note.Msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeShortLine(b *strings.Builder, sev string, code Code, path string, pos source.Pos, msg string) {
	fmt.Fprintf(b, "%s %s %s:%d:%d %s\n", sev, code.ID(), path, pos.Line, pos.Col, sanitizeMessage(msg))
}

func pathOf(fs *source.FileSet, id source.FileID) string {
	if fs == nil {
		return "<input>"
	}
	f := fs.Get(id)
	if f == nil || f.Path == "" {
		return "<input>"
	}
	return f.Path
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
