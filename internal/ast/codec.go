package ast

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"cminus/internal/source"
)

// Current schema version - increment when the envelope or node layout changes
const treeSchemaVersion uint16 = 1

// ErrSchemaMismatch is returned by Decode for an envelope written by a
// different schema version.
var ErrSchemaMismatch = errors.New("tree schema mismatch")

// envelope is the on-disk form of a Tree (.cmast files). Bindings are an
// analysis result and are not part of it.
type envelope struct {
	Schema  uint16     `msgpack:"schema"`
	Source  string     `msgpack:"source"`
	Strings []string   `msgpack:"strings"`
	Root    uint32     `msgpack:"root"`
	Nodes   []wireNode `msgpack:"nodes"`
}

type wireNode struct {
	Kind     uint8    `msgpack:"k"`
	Line     uint32   `msgpack:"l,omitempty"`
	Col      uint32   `msgpack:"c,omitempty"`
	Name     uint32   `msgpack:"n,omitempty"`
	Int      int64    `msgpack:"i,omitempty"`
	Str      string   `msgpack:"s,omitempty"`
	Children []uint32 `msgpack:"ch,omitempty"`
}

// Encode writes t with the path of the source file it was parsed from.
func Encode(w io.Writer, t *Tree, sourcePath string) error {
	env := envelope{
		Schema:  treeSchemaVersion,
		Source:  sourcePath,
		Strings: t.Strings.Snapshot(),
		Root:    uint32(t.Root),
		Nodes:   make([]wireNode, 0, t.Len()),
	}
	for _, n := range t.Nodes.Slice() {
		wn := wireNode{
			Kind: uint8(n.Kind),
			Line: n.Pos.Line,
			Col:  n.Pos.Col,
			Name: uint32(n.Name),
			Int:  n.IntVal,
			Str:  n.StrVal,
		}
		if len(n.Children) > 0 {
			wn.Children = make([]uint32, len(n.Children))
			for i, c := range n.Children {
				wn.Children[i] = uint32(c)
			}
		}
		env.Nodes = append(env.Nodes, wn)
	}
	return msgpack.NewEncoder(w).Encode(&env)
}

// Decode reads a tree written by Encode and returns it with its source path.
// Positions are attached to file; callers usually pass the FileID under which
// they registered the source path. The result is shape-checked with Validate.
func Decode(r io.Reader, file source.FileID) (*Tree, string, error) {
	var env envelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, "", fmt.Errorf("decode tree: %w", err)
	}
	if env.Schema != treeSchemaVersion {
		return nil, env.Source, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, env.Schema, treeSchemaVersion)
	}

	strings := source.NewInterner()
	// interned IDs are re-derived; NFC may merge two spellings into one
	remap := make([]source.StringID, len(env.Strings))
	for i, s := range env.Strings {
		if i == 0 {
			continue
		}
		remap[i] = strings.Intern(s)
	}

	capHint, err := safecast.Conv[uint](len(env.Nodes))
	if err != nil {
		return nil, env.Source, fmt.Errorf("decode tree: %w", err)
	}
	t := &Tree{
		Nodes:   NewArena[Node](capHint),
		Strings: strings,
		File:    file,
		Root:    NodeID(env.Root),
	}
	for i, wn := range env.Nodes {
		n := Node{
			Kind:   Kind(wn.Kind),
			IntVal: wn.Int,
			StrVal: wn.Str,
		}
		if wn.Line != 0 {
			n.Pos = source.Pos{File: file, Line: wn.Line, Col: wn.Col}
		}
		if wn.Name != 0 {
			if int(wn.Name) >= len(remap) {
				return nil, env.Source, fmt.Errorf("%w: node #%d names string %d of %d", ErrMalformedTree, i+1, wn.Name, len(remap))
			}
			n.Name = remap[wn.Name]
		}
		if len(wn.Children) > 0 {
			n.Children = make([]NodeID, len(wn.Children))
			for j, c := range wn.Children {
				n.Children[j] = NodeID(c)
			}
		}
		t.Nodes.Allocate(n)
	}
	if err := t.Validate(); err != nil {
		return nil, env.Source, err
	}
	return t, env.Source, nil
}
