package sema

import (
	"context"
	"testing"

	"cminus/internal/ast"
	"cminus/internal/trace"
)

func TestScopePushPopBalanced(t *testing.T) {
	// one function scope, then guard + two branch scopes, then a loop body
	b := ast.NewBuilder(nil, 0)
	b.Program(voidMain(b, nil,
		b.IfElse(b.True(2, 5), b.DeclList(), b.StmtList(), b.DeclList(), b.StmtList()),
		b.While(b.False(3, 8), b.DeclList(), b.StmtList(
			b.If(b.True(4, 5), b.DeclList(), b.StmtList()),
		)),
	))

	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Analyze(ctx, b.Tree, Options{}); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	depth, maxDepth, pushes := 0, 0, 0
	for _, ev := range ring.Snapshot() {
		switch ev.Name {
		case "push":
			depth++
			pushes++
			maxDepth = max(maxDepth, depth)
		case "pop":
			depth--
			if depth < 0 {
				t.Fatalf("pop without push")
			}
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced: %d scopes left open", depth)
	}
	if pushes != 5 {
		t.Fatalf("pushes = %d, want 5", pushes)
	}
	if maxDepth != 3 {
		t.Fatalf("max nesting = %d, want 3", maxDepth)
	}
}

func TestNodeVisitsTracedAtDebug(t *testing.T) {
	b := ast.NewBuilder(nil, 0)
	b.Program(b.VarDecl(b.IntType(), b.Ident("x", 1, 5)))

	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	res, err := Analyze(ctx, b.Tree, Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	visits := 0
	for _, ev := range ring.Snapshot() {
		if ev.Name == "visit" {
			visits++
		}
	}
	// Program, DeclList, VarDecl; the decl's children are not walked
	if visits != 3 || res.Visited != 3 {
		t.Fatalf("visits traced %d, counted %d, want 3", visits, res.Visited)
	}
}
