package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/source"
)

// TreeExt is the extension of encoded syntax tree files.
const TreeExt = ".cmast"

// LoadError is a tree file that could not be turned into a Tree.
type LoadError struct {
	Path string
	// Code is IOLoadFileError or IODecodeTree.
	Code diag.Code
	Err  error
}

func (e *LoadError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }

// ListTreeFiles expands directories to the *.cmast files below them (sorted)
// and keeps plain paths as given. Paths that cannot be stat'ed are kept so
// that loading reports them per file. Duplicates are dropped.
func ListTreeFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if seen[p] {
			return
		}
		seen[p] = true
		files = append(files, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, TreeExt) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", p, err)
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// LoadTree reads and decodes the tree file at path. The tree's source file
// is registered in fileSet (as an empty virtual file when it is not on disk)
// and every position in the tree points at it.
//
// On failure the returned FileID names a virtual entry for path itself so
// that the error can be reported against it; err is a *LoadError.
func LoadTree(fileSet *source.FileSet, path string) (*ast.Tree, []byte, source.FileID, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		id := fileSet.AddVirtual(path, nil)
		return nil, nil, id, &LoadError{Path: path, Code: diag.IOLoadFileError, Err: err}
	}
	tree, sourcePath, err := ast.Decode(bytes.NewReader(data), 0)
	if err != nil {
		id := fileSet.AddVirtual(path, nil)
		return nil, data, id, &LoadError{Path: path, Code: diag.IODecodeTree, Err: err}
	}

	var id source.FileID
	switch {
	case sourcePath == "":
		id = fileSet.AddVirtual(path, nil)
	case filepath.IsAbs(sourcePath):
		id = fileSet.LoadOrVirtual(sourcePath)
	default:
		id = fileSet.LoadOrVirtual(filepath.Join(filepath.Dir(path), sourcePath))
	}
	tree.SetFile(id)
	return tree, data, id, nil
}

// loadDiagnostic converts a LoadTree failure into the diagnostic for file.
func loadDiagnostic(file source.FileID, err error) diag.Diagnostic {
	var le *LoadError
	if !errors.As(err, &le) {
		return diag.NewError(diag.IOLoadFileError, source.Pos{File: file}, err.Error())
	}
	msg := le.Err.Error()
	if errors.Is(le.Err, ast.ErrSchemaMismatch) {
		msg += " (re-export the tree with the current parser)"
	}
	return diag.NewError(le.Code, source.Pos{File: file}, le.Code.Title()+": "+msg)
}
