package poly

import (
	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
	"github.com/adept-lang/adeptcore/internal/infer"
	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// Match walks pattern against concrete element-by-element, populating
// catalog as it binds $T/$#N variables (spec.md §4.4). Both types must
// already be alias-expanded.
func Match(bag *diag.Bag, env *Env, pattern, concrete *ast.Type, catalog *Catalog) diag.Result {
	if pattern == nil || concrete == nil {
		return diag.AltFailure
	}

	switch pattern.Kind {
	case ast.TypeNamed:
		if concrete.Kind != ast.TypeNamed || pattern.Name != concrete.Name {
			return diag.Failure
		}
		return diag.Success

	case ast.TypePointer:
		if concrete.Kind != ast.TypePointer {
			return diag.Failure
		}
		return Match(bag, env, pattern.Elem, concrete.Elem, catalog)

	case ast.TypeFixedArray, ast.TypeVarFixedArray:
		if concrete.Kind != pattern.Kind {
			return diag.Failure
		}
		if pattern.Kind == ast.TypeFixedArray && pattern.Length != concrete.Length {
			return diag.Failure
		}
		return Match(bag, env, pattern.Elem, concrete.Elem, catalog)

	case ast.TypeFunc:
		if concrete.Kind != ast.TypeFunc {
			return diag.Failure
		}
		if pattern.FuncVararg != concrete.FuncVararg || pattern.FuncStdCall != concrete.FuncStdCall {
			return diag.Failure
		}
		if len(pattern.FuncArgs) != len(concrete.FuncArgs) {
			return diag.Failure
		}
		if res := Match(bag, env, pattern.FuncReturn, concrete.FuncReturn, catalog); res != diag.Success {
			return res
		}
		for i := range pattern.FuncArgs {
			if res := Match(bag, env, pattern.FuncArgs[i], concrete.FuncArgs[i], catalog); res != diag.Success {
				return res
			}
		}
		return diag.Success

	case ast.TypeGenericBase:
		if concrete.Kind != ast.TypeGenericBase {
			return diag.Failure
		}
		if pattern.Name != concrete.Name || len(pattern.GenericArgs) != len(concrete.GenericArgs) {
			return diag.Failure
		}
		for i := range pattern.GenericArgs {
			if res := Match(bag, env, pattern.GenericArgs[i], concrete.GenericArgs[i], catalog); res != diag.Success {
				return res
			}
		}
		return diag.Success

	case ast.TypePolymorph:
		if pattern.Prerequisite != "" {
			return MatchWithPrerequisite(bag, env, pattern.Name, pattern.Prerequisite, concrete, catalog)
		}
		return enforcePolymorph(bag, pattern.Name, concrete, catalog)

	case ast.TypePolyCount:
		if concrete.Kind != ast.TypeFixedArray {
			return diag.Failure
		}
		if existing, ok := catalog.findCount(pattern.Name); ok {
			if existing != concrete.Length {
				return diag.Failure
			}
			return diag.Success
		}
		catalog.addCount(pattern.Name, concrete.Length)
		return diag.Success

	default:
		return diag.AltFailure
	}
}

// MatchWithPrerequisite handles a $T~Req element, where Req may be a
// special prerequisite name or a named composite (spec.md §4.4's
// "Polymorph-with-prerequisite"). It must be the final element reached
// in the walk: Req is checked against the remainder of concrete (here,
// concrete itself, since this module's tree-shaped ast.Type already
// isolates "the remainder" as the subtree rooted at this position).
func MatchWithPrerequisite(bag *diag.Bag, env *Env, varName, requirement string, concrete *ast.Type, catalog *Catalog) diag.Result {
	meets, res := CheckPrerequisite(bag, env, requirement, concrete)
	if res == diag.AltFailure {
		return res
	}
	if res == diag.Success && meets {
		return enforcePolymorph(bag, varName, concrete, catalog)
	}
	return diag.Failure
}

// enforcePolymorph implements spec.md §4.4's consistency rule for a
// bound $T: the first sighting wins; a later sighting must match the
// existing binding exactly, or both sides must be numeric primitives
// (trivially convertible regardless of the `~` marker).
func enforcePolymorph(bag *diag.Bag, name string, concrete *ast.Type, catalog *Catalog) diag.Result {
	existing, ok := catalog.findType(name)
	if !ok {
		catalog.addType(name, concrete)
		return diag.Success
	}
	if elementsIdentical(existing, concrete) {
		return diag.Success
	}
	if isAllowedBuiltinAutoConversion(existing, concrete) {
		return diag.Success
	}
	return diag.Failure
}

// isAllowedBuiltinAutoConversion reports whether a and b are both
// built-in numeric primitives, which the original permits as an
// exception to exact $T consistency (spec.md §4.4 parenthetical).
func isAllowedBuiltinAutoConversion(a, b *ast.Type) bool {
	ak, aok := infer.ResolvePrimitive(a)
	bk, bok := infer.ResolvePrimitive(b)
	if !aok || !bok {
		return false
	}
	return irtypes.IsNumber(ak) && irtypes.IsNumber(bk)
}

// elementsIdentical performs the "concrete element must match
// structurally" check for non-polymorphic positions (spec.md §4.4). It
// compares shape the same way irtypes.TypesIdentical compares resolved
// types, but over the pre-conversion ast.Type tree.
func elementsIdentical(a, b *ast.Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ast.TypeNamed:
		return a.Name == b.Name
	case ast.TypePointer:
		return elementsIdentical(a.Elem, b.Elem)
	case ast.TypeFixedArray, ast.TypeVarFixedArray:
		return a.Length == b.Length && elementsIdentical(a.Elem, b.Elem)
	case ast.TypeFunc:
		if a.FuncVararg != b.FuncVararg || a.FuncStdCall != b.FuncStdCall || len(a.FuncArgs) != len(b.FuncArgs) {
			return false
		}
		if !elementsIdentical(a.FuncReturn, b.FuncReturn) {
			return false
		}
		for i := range a.FuncArgs {
			if !elementsIdentical(a.FuncArgs[i], b.FuncArgs[i]) {
				return false
			}
		}
		return true
	case ast.TypeGenericBase:
		if a.Name != b.Name || len(a.GenericArgs) != len(b.GenericArgs) {
			return false
		}
		for i := range a.GenericArgs {
			if !elementsIdentical(a.GenericArgs[i], b.GenericArgs[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
