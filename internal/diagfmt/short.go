package diagfmt

import (
	"io"

	"cminus/internal/diag"
	"cminus/internal/source"
)

// Short writes one line per diagnostic, "ERROR SEM3002 prog.cm:2:11 Undeclared identifier",
// the same layout golden tests compare against.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
