package symbols

import (
	"strings"
)

// TypeString renders a type descriptor: "int", "bool", "void" or the struct name.
func (t *Table) TypeString(desc TypeDesc) string {
	if desc.Kind == TypeStruct {
		if name, ok := t.Strings.Lookup(desc.StructName); ok && name != "" {
			return name
		}
	}
	return desc.Kind.String()
}

// Describe renders the type information a use of the symbol carries:
// "int" for a variable, "Point" for a struct-typed variable,
// "int,bool->void" for a function and "struct Point" for a struct type.
func (t *Table) Describe(id SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil {
		return "<unresolved>"
	}
	switch sym.Kind {
	case SymbolVar:
		return t.TypeString(sym.Type)
	case SymbolFunc:
		var sb strings.Builder
		for i, p := range sym.Params {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(t.TypeString(p))
		}
		sb.WriteString("->")
		sb.WriteString(t.TypeString(sym.Result))
		return sb.String()
	case SymbolStruct:
		return "struct " + t.Name(id)
	default:
		return sym.Kind.String()
	}
}
