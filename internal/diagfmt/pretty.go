package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cminus/internal/diag"
	"cminus/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics for humans, in bag order (callers usually Sort
// first):
//
//	prog.cm:3:5: ERROR SEM3001: Multiply declared identifier
//	   3 | int x;
//	     |     ^
//	  note: prog.cm:1:5: previously declared here
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		loc := location(fs, d.Primary, opts.PathMode)
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprint(loc),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		); err != nil {
			return err
		}
		if opts.Context {
			if err := writeContext(w, fs, d.Primary, p); err != nil {
				return err
			}
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				if _, err := fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Pos, opts.PathMode), n.Msg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func location(fs *source.FileSet, pos source.Pos, mode PathMode) string {
	path := formatPath(fs, pos.File, mode)
	if !pos.IsValid() {
		return path
	}
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}

// writeContext prints the source line and a caret under the column. Columns
// count characters, so the caret offset is the display width of the prefix.
func writeContext(w io.Writer, fs *source.FileSet, pos source.Pos, p palette) error {
	if fs == nil || !pos.IsValid() {
		return nil
	}
	line := fs.Get(pos.File).GetLine(pos.Line)
	if line == "" {
		return nil
	}
	line = strings.ReplaceAll(line, "\t", " ")
	runes := []rune(line)
	col := int(pos.Col) - 1
	col = max(0, min(col, len(runes)))
	offset := runewidth.StringWidth(string(runes[:col]))

	num := fmt.Sprintf("%4d", pos.Line)
	gutter := strings.Repeat(" ", len(num))
	if _, err := fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s %s%s\n", gutter, p.gutter.Sprint("|"), strings.Repeat(" ", offset), p.caret.Sprint("^"))
	return err
}
