package fuzztests

import (
	"bytes"
	"testing"

	"cminus/internal/ast"
)

const maxFuzzInput = 64 << 10

// seedTrees builds small programs covering every child-group layout.
func seedTrees() []func(b *ast.Builder) {
	return []func(b *ast.Builder){
		func(b *ast.Builder) {
			b.Program(b.VarDecl(b.IntType(), b.Ident("x", 1, 5)))
		},
		func(b *ast.Builder) {
			b.Program(
				b.StructDecl(b.Ident("P", 1, 8),
					b.VarDecl(b.IntType(), b.Ident("x", 1, 16)),
				),
				b.VarDecl(b.StructType(b.Ident("P", 2, 8)), b.Ident("p", 2, 10)),
				b.FnDecl(b.IntType(), b.Ident("f", 3, 5),
					b.Formals(b.FormalDecl(b.BoolType(), b.Ident("c", 3, 12))),
					b.Body(
						b.DeclList(b.VarDecl(b.IntType(), b.Ident("y", 4, 9))),
						b.StmtList(
							b.If(b.Ident("c", 5, 9),
								b.DeclList(b.VarDecl(b.IntType(), b.Ident("y", 5, 18))),
								b.StmtList(b.AssignStmt(b.Dot(b.Ident("p", 6, 5), b.Ident("x", 6, 7)), b.Ident("y", 6, 11))),
							),
							b.While(b.Ident("c", 7, 12), b.DeclList(), b.StmtList(b.PostInc(b.Ident("y", 7, 16)))),
							b.Return(b.Call(b.Ident("f", 8, 12), b.True(8, 14))),
						),
					),
				),
			)
		},
		func(b *ast.Builder) {
			b.Program(
				b.VarDecl(b.VoidType(), b.Ident("v", 1, 6)),
				b.VarDecl(b.StructType(b.Ident("Missing", 2, 8)), b.Ident("m", 2, 16)),
				b.FnDecl(b.VoidType(), b.Ident("main", 3, 6), b.Formals(),
					b.Body(b.DeclList(), b.StmtList(
						b.IfElse(b.Ident("u", 4, 9),
							b.DeclList(), b.StmtList(b.Write(b.StrLit("a", 4, 18))),
							b.DeclList(), b.StmtList(b.Read(b.Dot(b.Ident("v", 5, 12), b.Ident("f", 5, 14)))),
						),
						b.Repeat(b.IntLit(3, 6, 12), b.DeclList(), b.StmtList(b.Return(ast.NoNodeID))),
					)),
				),
			)
		},
	}
}

func addSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("not a tree"))
	for _, build := range seedTrees() {
		b := ast.NewBuilder(nil, 0)
		build(b)
		var buf bytes.Buffer
		if err := ast.Encode(&buf, b.Tree, "seed.cm"); err != nil {
			f.Fatalf("encode seed: %v", err)
		}
		f.Add(buf.Bytes())
	}
}
