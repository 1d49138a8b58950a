package ast

import "cminus/internal/source"

// Builder is the construction API for trees. The parser calls it bottom-up;
// Program sets the root.
type Builder struct {
	Tree *Tree
}

func NewBuilder(strings *source.Interner, file source.FileID) *Builder {
	return &Builder{Tree: NewTree(strings, file)}
}

func (b *Builder) node(kind Kind, children ...NodeID) NodeID {
	return NodeID(b.Tree.Nodes.Allocate(Node{Kind: kind, Children: children}))
}

func (b *Builder) pos(line, col uint32) source.Pos {
	return source.Pos{File: b.Tree.File, Line: line, Col: col}
}

// Program wraps the top-level declarations and makes the result the root.
func (b *Builder) Program(decls ...NodeID) NodeID {
	id := b.node(KindProgram, b.DeclList(decls...))
	b.Tree.Root = id
	return id
}

func (b *Builder) DeclList(decls ...NodeID) NodeID  { return b.node(KindDeclList, decls...) }
func (b *Builder) StmtList(stmts ...NodeID) NodeID  { return b.node(KindStmtList, stmts...) }
func (b *Builder) ExpList(exprs ...NodeID) NodeID   { return b.node(KindExpList, exprs...) }
func (b *Builder) Formals(formals ...NodeID) NodeID { return b.node(KindFormalsList, formals...) }

// Body builds a function body from its declaration and statement lists.
func (b *Builder) Body(decls, stmts NodeID) NodeID {
	return b.node(KindFnBody, decls, stmts)
}

// types

func (b *Builder) IntType() NodeID  { return b.node(KindIntType) }
func (b *Builder) BoolType() NodeID { return b.node(KindBoolType) }
func (b *Builder) VoidType() NodeID { return b.node(KindVoidType) }

// StructType names a struct type, "struct name" in source.
func (b *Builder) StructType(name NodeID) NodeID {
	return b.node(KindStructType, name)
}

// declarations

func (b *Builder) VarDecl(typ, name NodeID) NodeID    { return b.node(KindVarDecl, typ, name) }
func (b *Builder) FormalDecl(typ, name NodeID) NodeID { return b.node(KindFormalDecl, typ, name) }

func (b *Builder) FnDecl(result, name, formals, body NodeID) NodeID {
	return b.node(KindFnDecl, result, name, formals, body)
}

func (b *Builder) StructDecl(name NodeID, fields ...NodeID) NodeID {
	return b.node(KindStructDecl, name, b.DeclList(fields...))
}

// leaves

// Ident interns name and records its scanner position.
func (b *Builder) Ident(name string, line, col uint32) NodeID {
	id := b.node(KindIdent)
	n := b.Tree.Get(id)
	n.Name = b.Tree.Strings.Intern(name)
	n.Pos = b.pos(line, col)
	return id
}

func (b *Builder) IntLit(v int64, line, col uint32) NodeID {
	id := b.node(KindIntLit)
	n := b.Tree.Get(id)
	n.IntVal = v
	n.Pos = b.pos(line, col)
	return id
}

func (b *Builder) StrLit(v string, line, col uint32) NodeID {
	id := b.node(KindStrLit)
	n := b.Tree.Get(id)
	n.StrVal = v
	n.Pos = b.pos(line, col)
	return id
}

func (b *Builder) True(line, col uint32) NodeID {
	id := b.node(KindTrue)
	b.Tree.Get(id).Pos = b.pos(line, col)
	return id
}

func (b *Builder) False(line, col uint32) NodeID {
	id := b.node(KindFalse)
	b.Tree.Get(id).Pos = b.pos(line, col)
	return id
}

// statements

func (b *Builder) AssignStmt(lhs, rhs NodeID) NodeID {
	return b.node(KindAssignStmt, b.Assign(lhs, rhs))
}

func (b *Builder) PostInc(loc NodeID) NodeID { return b.node(KindPostIncStmt, loc) }
func (b *Builder) PostDec(loc NodeID) NodeID { return b.node(KindPostDecStmt, loc) }
func (b *Builder) Read(loc NodeID) NodeID    { return b.node(KindReadStmt, loc) }
func (b *Builder) Write(exp NodeID) NodeID   { return b.node(KindWriteStmt, exp) }

func (b *Builder) If(cond, decls, stmts NodeID) NodeID {
	return b.node(KindIfStmt, cond, decls, stmts)
}

func (b *Builder) IfElse(cond, thenDecls, thenStmts, elseDecls, elseStmts NodeID) NodeID {
	return b.node(KindIfElseStmt, cond, thenDecls, thenStmts, elseDecls, elseStmts)
}

func (b *Builder) While(cond, decls, stmts NodeID) NodeID {
	return b.node(KindWhileStmt, cond, decls, stmts)
}

func (b *Builder) Repeat(count, decls, stmts NodeID) NodeID {
	return b.node(KindRepeatStmt, count, decls, stmts)
}

func (b *Builder) CallStmt(call NodeID) NodeID { return b.node(KindCallStmt, call) }

// Return builds "return;" when exp is NoNodeID.
func (b *Builder) Return(exp NodeID) NodeID {
	if !exp.IsValid() {
		return b.node(KindReturnStmt)
	}
	return b.node(KindReturnStmt, exp)
}

// expressions

func (b *Builder) Dot(lhs, field NodeID) NodeID { return b.node(KindDotAccess, lhs, field) }
func (b *Builder) Assign(lhs, rhs NodeID) NodeID {
	return b.node(KindAssign, lhs, rhs)
}

func (b *Builder) Call(fn NodeID, args ...NodeID) NodeID {
	return b.node(KindCallExp, fn, b.ExpList(args...))
}

// Unary builds a unary operator node; kind must satisfy IsUnary.
func (b *Builder) Unary(kind Kind, operand NodeID) NodeID {
	if !kind.IsUnary() {
		panic("ast: " + kind.String() + " is not a unary operator")
	}
	return b.node(kind, operand)
}

// Binary builds a binary operator node; kind must satisfy IsBinary.
func (b *Builder) Binary(kind Kind, lhs, rhs NodeID) NodeID {
	if !kind.IsBinary() {
		panic("ast: " + kind.String() + " is not a binary operator")
	}
	return b.node(kind, lhs, rhs)
}
