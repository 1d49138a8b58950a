package symbols

import (
	"cminus/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar                // variable, formal parameter or struct field
	SymbolFunc
	SymbolStruct // struct type declaration
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolFunc:
		return "func"
	case SymbolStruct:
		return "struct"
	default:
		return "invalid"
	}
}

// TypeKind is the coarse shape of a declared type.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeInt
	TypeBool
	TypeVoid
	TypeStruct
)

func (k TypeKind) String() string {
	switch k {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeVoid:
		return "void"
	case TypeStruct:
		return "struct"
	default:
		return "invalid"
	}
}

// TypeDesc describes a declared type. StructName is set only for TypeStruct.
type TypeDesc struct {
	Kind       TypeKind
	StructName source.StringID
}

// Scalar types.
var (
	IntType  = TypeDesc{Kind: TypeInt}
	BoolType = TypeDesc{Kind: TypeBool}
	VoidType = TypeDesc{Kind: TypeVoid}
)

// StructOf returns the descriptor for struct type name.
func StructOf(name source.StringID) TypeDesc {
	return TypeDesc{Kind: TypeStruct, StructName: name}
}

// Symbol describes a named entity available in a scope. Symbols are written
// once when declared and only read afterwards.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID // scope the symbol was declared in
	Pos   source.Pos

	// SymbolVar: declared type; Struct is the struct declaration when
	// Type.Kind == TypeStruct.
	Type   TypeDesc
	Struct SymbolID

	// SymbolFunc: ordered parameter types and return type.
	Params []TypeDesc
	Result TypeDesc

	// SymbolStruct: the private field scope.
	Fields ScopeID
}

// IsStructVar reports whether the symbol is a struct-typed variable.
func (s *Symbol) IsStructVar() bool {
	return s != nil && s.Kind == SymbolVar && s.Type.Kind == TypeStruct && s.Struct.IsValid()
}

// NewVar builds a scalar variable symbol.
func NewVar(name source.StringID, pos source.Pos, typ TypeDesc) Symbol {
	return Symbol{Name: name, Kind: SymbolVar, Pos: pos, Type: typ}
}

// NewStructVar builds a variable whose type is the struct declared by decl.
func NewStructVar(name source.StringID, pos source.Pos, structName source.StringID, decl SymbolID) Symbol {
	return Symbol{Name: name, Kind: SymbolVar, Pos: pos, Type: StructOf(structName), Struct: decl}
}

// NewFunc builds a function symbol.
func NewFunc(name source.StringID, pos source.Pos, params []TypeDesc, result TypeDesc) Symbol {
	return Symbol{Name: name, Kind: SymbolFunc, Pos: pos, Params: params, Result: result}
}

// NewStruct builds a struct type symbol owning the given field scope.
func NewStruct(name source.StringID, pos source.Pos, fields ScopeID) Symbol {
	return Symbol{Name: name, Kind: SymbolStruct, Pos: pos, Fields: fields}
}
