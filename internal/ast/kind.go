package ast

// Kind tags a node. The set is closed; every switch over Kind in this module
// is expected to be exhaustive.
type Kind uint8

const (
	KindInvalid Kind = iota

	// lists and containers
	KindProgram
	KindDeclList
	KindFormalsList
	KindFnBody
	KindStmtList
	KindExpList

	// declarations
	KindVarDecl
	KindFnDecl
	KindFormalDecl
	KindStructDecl

	// types
	KindIntType
	KindBoolType
	KindVoidType
	KindStructType

	// statements
	KindAssignStmt
	KindPostIncStmt
	KindPostDecStmt
	KindReadStmt
	KindWriteStmt
	KindIfStmt
	KindIfElseStmt
	KindWhileStmt
	KindRepeatStmt
	KindCallStmt
	KindReturnStmt

	// expressions
	KindIntLit
	KindStrLit
	KindTrue
	KindFalse
	KindIdent
	KindDotAccess
	KindAssign
	KindCallExp
	KindUnaryMinus
	KindNot
	KindPlus
	KindMinus
	KindTimes
	KindDivide
	KindAnd
	KindOr
	KindEquals
	KindNotEquals
	KindLess
	KindGreater
	KindLessEq
	KindGreaterEq

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:     "Invalid",
	KindProgram:     "Program",
	KindDeclList:    "DeclList",
	KindFormalsList: "FormalsList",
	KindFnBody:      "FnBody",
	KindStmtList:    "StmtList",
	KindExpList:     "ExpList",
	KindVarDecl:     "VarDecl",
	KindFnDecl:      "FnDecl",
	KindFormalDecl:  "FormalDecl",
	KindStructDecl:  "StructDecl",
	KindIntType:     "IntType",
	KindBoolType:    "BoolType",
	KindVoidType:    "VoidType",
	KindStructType:  "StructType",
	KindAssignStmt:  "AssignStmt",
	KindPostIncStmt: "PostIncStmt",
	KindPostDecStmt: "PostDecStmt",
	KindReadStmt:    "ReadStmt",
	KindWriteStmt:   "WriteStmt",
	KindIfStmt:      "IfStmt",
	KindIfElseStmt:  "IfElseStmt",
	KindWhileStmt:   "WhileStmt",
	KindRepeatStmt:  "RepeatStmt",
	KindCallStmt:    "CallStmt",
	KindReturnStmt:  "ReturnStmt",
	KindIntLit:      "IntLit",
	KindStrLit:      "StrLit",
	KindTrue:        "True",
	KindFalse:       "False",
	KindIdent:       "Ident",
	KindDotAccess:   "DotAccess",
	KindAssign:      "Assign",
	KindCallExp:     "CallExp",
	KindUnaryMinus:  "UnaryMinus",
	KindNot:         "Not",
	KindPlus:        "Plus",
	KindMinus:       "Minus",
	KindTimes:       "Times",
	KindDivide:      "Divide",
	KindAnd:         "And",
	KindOr:          "Or",
	KindEquals:      "Equals",
	KindNotEquals:   "NotEquals",
	KindLess:        "Less",
	KindGreater:     "Greater",
	KindLessEq:      "LessEq",
	KindGreaterEq:   "GreaterEq",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Invalid"
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k > KindInvalid && k < kindCount }

func (k Kind) IsDecl() bool { return k >= KindVarDecl && k <= KindStructDecl }
func (k Kind) IsType() bool { return k >= KindIntType && k <= KindStructType }
func (k Kind) IsStmt() bool { return k >= KindAssignStmt && k <= KindReturnStmt }
func (k Kind) IsExpr() bool { return k >= KindIntLit && k <= KindGreaterEq }

// IsUnary reports unary operator kinds.
func (k Kind) IsUnary() bool { return k == KindUnaryMinus || k == KindNot }

// IsBinary reports binary operator kinds.
func (k Kind) IsBinary() bool { return k >= KindPlus && k <= KindGreaterEq }

// IsLoc reports kinds that may stand on the left of '=' or '.'.
func (k Kind) IsLoc() bool { return k == KindIdent || k == KindDotAccess }
