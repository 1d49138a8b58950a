package symbols

import (
	"errors"
	"fmt"
)

// Validate walks the arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for scopeID, scope := range t.Scopes.All() {
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() && (t.Scopes.Get(scope.Parent) == nil || scope.Parent == scopeID) {
			errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
		}
		if len(scope.NameIndex) != len(scope.Symbols) {
			errs = append(errs, fmt.Errorf("scope %d indexes %d names but lists %d symbols", scopeID, len(scope.NameIndex), len(scope.Symbols)))
		}
		for name, id := range scope.NameIndex {
			sym := t.Symbols.Get(id)
			if sym == nil {
				errs = append(errs, fmt.Errorf("scope %d name %d references missing symbol %d", scopeID, name, id))
				continue
			}
			if sym.Name != name {
				errs = append(errs, fmt.Errorf("scope %d name %d bound to symbol %d named %d", scopeID, name, id, sym.Name))
			}
			if sym.Scope != scopeID {
				errs = append(errs, fmt.Errorf("symbol %d claims scope %d but is bound in %d", id, sym.Scope, scopeID))
			}
		}
	}

	for symbolID, sym := range t.Symbols.All() {
		switch sym.Kind {
		case SymbolVar:
			if sym.Type.Kind == TypeVoid || sym.Type.Kind == TypeInvalid {
				errs = append(errs, fmt.Errorf("variable symbol %d has type %s", symbolID, sym.Type.Kind))
			}
			if sym.Type.Kind == TypeStruct {
				decl := t.Symbols.Get(sym.Struct)
				if decl == nil || decl.Kind != SymbolStruct {
					errs = append(errs, fmt.Errorf("struct variable %d does not reference a struct type", symbolID))
				}
			}
		case SymbolStruct:
			fields := t.Scopes.Get(sym.Fields)
			if fields == nil || fields.Kind != ScopeFields {
				errs = append(errs, fmt.Errorf("struct symbol %d has no field scope", symbolID))
			}
		case SymbolFunc:
		default:
			errs = append(errs, fmt.Errorf("symbol %d has invalid kind", symbolID))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
