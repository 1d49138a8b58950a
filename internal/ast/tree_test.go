package ast

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"cminus/internal/source"
)

// struct S { int f; };
// int main(int a) { S s; if (a) { int x; } else { bool y; } s.f = a; return s.f; }
func buildSample(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder(nil, 0)
	structS := b.StructDecl(b.Ident("S", 1, 8), b.VarDecl(b.IntType(), b.Ident("f", 1, 16)))
	ifElse := b.IfElse(
		b.Ident("a", 2, 25),
		b.DeclList(b.VarDecl(b.IntType(), b.Ident("x", 2, 34))),
		b.StmtList(),
		b.DeclList(b.VarDecl(b.BoolType(), b.Ident("y", 2, 51))),
		b.StmtList(),
	)
	body := b.Body(
		b.DeclList(b.VarDecl(b.StructType(b.Ident("S", 2, 19)), b.Ident("s", 2, 21))),
		b.StmtList(
			ifElse,
			b.AssignStmt(b.Dot(b.Ident("s", 2, 57), b.Ident("f", 2, 59)), b.Ident("a", 2, 63)),
			b.Return(b.Dot(b.Ident("s", 2, 73), b.Ident("f", 2, 75))),
		),
	)
	fn := b.FnDecl(b.IntType(), b.Ident("main", 2, 5),
		b.Formals(b.FormalDecl(b.IntType(), b.Ident("a", 2, 14))), body)
	b.Program(structS, fn)
	if err := b.Tree.Validate(); err != nil {
		t.Fatalf("sample tree invalid: %v", err)
	}
	return b
}

func TestGroupsPerKind(t *testing.T) {
	b := buildSample(t)
	tree := b.Tree

	var fn, ifElse, structDecl, varDecl, dot NodeID
	tree.Inspect(tree.Root, func(id NodeID, n *Node) bool {
		switch n.Kind {
		case KindFnDecl:
			fn = id
		case KindIfElseStmt:
			ifElse = id
		case KindStructDecl:
			structDecl = id
		case KindVarDecl:
			if !varDecl.IsValid() {
				varDecl = id
			}
		case KindDotAccess:
			dot = id
		}
		return true
	})

	cases := []struct {
		name   string
		id     NodeID
		scopes []bool
	}{
		{"fn", fn, []bool{true}},
		{"ifelse", ifElse, []bool{false, true, true}},
		{"struct", structDecl, []bool{false}},
		{"var", varDecl, nil},
		{"dot", dot, nil},
		{"program", tree.Root, []bool{false}},
	}
	for _, tc := range cases {
		groups := tree.Groups(tc.id)
		if len(groups) != len(tc.scopes) {
			t.Fatalf("%s: got %d groups, want %d", tc.name, len(groups), len(tc.scopes))
		}
		for i, g := range groups {
			if g.OpensScope != tc.scopes[i] {
				t.Fatalf("%s: group %d OpensScope=%v", tc.name, i, g.OpensScope)
			}
		}
	}

	// else branch keeps its declarations ahead of its statements
	elseGroup := tree.Groups(ifElse)[2]
	if tree.Kind(elseGroup.Nodes[0]) != KindDeclList || tree.Kind(elseGroup.Nodes[1]) != KindStmtList {
		t.Fatalf("else group order: %s, %s", tree.Kind(elseGroup.Nodes[0]), tree.Kind(elseGroup.Nodes[1]))
	}
	if got := len(tree.Groups(structDecl)[0].Nodes); got != 1 {
		t.Fatalf("struct field group has %d nodes, want 1", got)
	}
}

func TestReturnWithoutValueHasNoGroups(t *testing.T) {
	b := NewBuilder(nil, 0)
	ret := b.Return(NoNodeID)
	if groups := b.Tree.Groups(ret); groups != nil {
		t.Fatalf("bare return: got %d groups", len(groups))
	}
}

func TestBindOnce(t *testing.T) {
	b := NewBuilder(nil, 0)
	id := b.Ident("x", 1, 1)
	if b.Tree.Get(id).Resolved() {
		t.Fatalf("fresh ident already resolved")
	}
	if !b.Tree.Bind(id, 3) {
		t.Fatalf("first bind failed")
	}
	if b.Tree.Bind(id, 4) {
		t.Fatalf("second bind succeeded")
	}
	if b.Tree.Ref(id) != 3 {
		t.Fatalf("ref = %d, want 3", b.Tree.Ref(id))
	}
	if b.Tree.Bind(b.IntType(), 3) {
		t.Fatalf("bind on non-ident succeeded")
	}
}

func TestValidateRejectsBadShapes(t *testing.T) {
	t.Run("no root", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		if err := b.Tree.Validate(); !errors.Is(err, ErrMalformedTree) {
			t.Fatalf("expected ErrMalformedTree, got %v", err)
		}
	})
	t.Run("stmt in decl list", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		b.Program(b.Write(b.IntLit(1, 1, 7)))
		if err := b.Tree.Validate(); !errors.Is(err, ErrMalformedTree) {
			t.Fatalf("expected ErrMalformedTree, got %v", err)
		}
	})
	t.Run("shared node", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		typ := b.IntType()
		b.Program(b.VarDecl(typ, b.Ident("x", 1, 5)), b.VarDecl(typ, b.Ident("y", 2, 5)))
		if err := b.Tree.Validate(); !errors.Is(err, ErrMalformedTree) {
			t.Fatalf("expected ErrMalformedTree, got %v", err)
		}
	})
	t.Run("literal on assignment lhs", func(t *testing.T) {
		b := NewBuilder(nil, 0)
		body := b.Body(b.DeclList(), b.StmtList(b.AssignStmt(b.IntLit(1, 2, 1), b.IntLit(2, 2, 5))))
		b.Program(b.FnDecl(b.VoidType(), b.Ident("f", 1, 6), b.Formals(), body))
		if err := b.Tree.Validate(); !errors.Is(err, ErrMalformedTree) {
			t.Fatalf("expected ErrMalformedTree, got %v", err)
		}
	})
}

func TestPosFallsBackToChildren(t *testing.T) {
	b := buildSample(t)
	tree := b.Tree
	var fn NodeID
	tree.Inspect(tree.Root, func(id NodeID, n *Node) bool {
		if n.Kind == KindFnDecl {
			fn = id
			return false
		}
		return true
	})
	if got := tree.Pos(fn); got.Line != 2 || got.Col != 5 {
		t.Fatalf("fn pos = %s, want 2:5", got)
	}
	if got := tree.Name(tree.DeclIdent(fn)); got != "main" {
		t.Fatalf("fn name = %q", got)
	}
	if got := len(tree.Formals(fn)); got != 1 {
		t.Fatalf("formals = %d, want 1", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	b := buildSample(t)
	var buf bytes.Buffer
	if err := Encode(&buf, b.Tree, "sample.cm"); err != nil {
		t.Fatalf("encode: %v", err)
	}

	const file source.FileID = 7
	got, path, err := Decode(&buf, file)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if path != "sample.cm" {
		t.Fatalf("source path = %q", path)
	}
	if got.Len() != b.Tree.Len() || got.Root != b.Tree.Root {
		t.Fatalf("decoded %d nodes root %d, want %d root %d", got.Len(), got.Root, b.Tree.Len(), b.Tree.Root)
	}
	want := b.Tree.Nodes.Slice()
	for i, n := range got.Nodes.Slice() {
		w := want[i]
		if n.Kind != w.Kind || n.Pos.Line != w.Pos.Line || n.Pos.Col != w.Pos.Col || len(n.Children) != len(w.Children) {
			t.Fatalf("node #%d: got %+v, want %+v", i+1, n, w)
		}
		if n.Pos.IsValid() && n.Pos.File != file {
			t.Fatalf("node #%d: file %d, want %d", i+1, n.Pos.File, file)
		}
		id := NodeID(i + 1)
		if got.Name(id) != b.Tree.Name(id) {
			t.Fatalf("node #%d: name %q, want %q", i+1, got.Name(id), b.Tree.Name(id))
		}
	}
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	var buf bytes.Buffer
	env := envelope{Schema: treeSchemaVersion + 1, Source: "x.cm", Strings: []string{""}}
	if err := msgpack.NewEncoder(&buf).Encode(&env); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, _, err := Decode(&buf, 0); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
