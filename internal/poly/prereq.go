package poly

import (
	"fmt"
	"sort"

	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
	"github.com/adept-lang/adeptcore/internal/infer"
	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// reservedPrereqNames holds the seven special prerequisite names, sorted
// for binary-search lookup (spec.md §4.5: "reserved prerequisite names
// are stored in a sorted array and matched by binary search"). A name
// outside this set is a named-composite structural-subtype requirement
// instead.
var reservedPrereqNames = []string{
	"__assign__",
	"__number__",
	"__pod__",
	"__primitive__",
	"__signed__",
	"__struct__",
	"__unsigned__",
}

func isSpecialPrerequisite(name string) bool {
	i := sort.SearchStrings(reservedPrereqNames, name)
	return i < len(reservedPrereqNames) && reservedPrereqNames[i] == name
}

// Env supplies the struct registry and method/signature cache the
// prerequisite checker and does-extend walk need beyond the bare type
// tree (spec.md §4.5: "discovered via the signature-cache / method
// lookup"; §4.4's "does-extend check ... walks the inheritance
// relation").
type Env struct {
	Module  *ir.Module
	Structs map[string]*ast.StructDef
	// Parents maps a struct name to the names of the composites it
	// directly embeds/extends, for the does-extend walk.
	Parents map[string][]string
}

// NewEnv builds an Env backed by m's method/signature cache.
func NewEnv(m *ir.Module) *Env {
	return &Env{Module: m, Structs: map[string]*ast.StructDef{}, Parents: map[string][]string{}}
}

// firstElementBase returns the base-name of concrete's first element if
// it is a TypeNamed, matching the original's "concrete_type_view's first
// element" framing (spec.md §4.5).
func firstElementBase(concrete *ast.Type) (string, bool) {
	if concrete == nil || concrete.Kind != ast.TypeNamed {
		return "", false
	}
	return concrete.Name, true
}

// hasUserAssignOverride reports whether concrete's struct has a
// user-defined __assign__ method, via the module's method table
// (ir.Module.Methods / MethodKey), mirroring
// ir_gen_find_assign_func+signature cache.
func hasUserAssignOverride(env *Env, concrete *ast.Type) bool {
	name, ok := firstElementBase(concrete)
	if !ok || env == nil || env.Module == nil {
		return false
	}
	key := ir.MethodKey{TypeName: name, MethodName: "__assign__"}
	if cached, ok := env.Module.SignatureCache[key]; ok {
		return cached
	}
	_, found := env.Module.Methods[key]
	env.Module.SignatureCache[key] = found
	return found
}

// CheckPrerequisite evaluates requirement against concrete (spec.md
// §4.5). requirement is either one of the seven special names or the name
// of a composite used as a structural-subtype template.
func CheckPrerequisite(bag *diag.Bag, env *Env, requirement string, concrete *ast.Type) (bool, diag.Result) {
	if isSpecialPrerequisite(requirement) {
		return checkSpecialPrerequisite(env, requirement, concrete), diag.Success
	}
	return checkStructuralPrerequisite(bag, env, requirement, concrete)
}

func checkSpecialPrerequisite(env *Env, requirement string, concrete *ast.Type) bool {
	switch requirement {
	case "__assign__":
		return hasUserAssignOverride(env, concrete)
	case "__pod__":
		return !hasUserAssignOverride(env, concrete)
	case "__number__":
		name, ok := firstElementBase(concrete)
		if !ok {
			return false
		}
		k, ok := infer.ResolvePrimitive(&ast.Type{Kind: ast.TypeNamed, Name: name})
		return ok && irtypes.IsNumber(k)
	case "__primitive__":
		name, ok := firstElementBase(concrete)
		if !ok {
			return false
		}
		_, ok = infer.ResolvePrimitive(&ast.Type{Kind: ast.TypeNamed, Name: name})
		return ok
	case "__struct__":
		return !checkSpecialPrerequisite(env, "__primitive__", concrete)
	case "__signed__":
		name, _ := firstElementBase(concrete)
		switch name {
		case "byte", "short", "int", "long":
			return true
		}
		return false
	case "__unsigned__":
		name, _ := firstElementBase(concrete)
		switch name {
		case "ubyte", "ushort", "uint", "ulong", "usize":
			return true
		}
		return false
	default:
		return false
	}
}

// checkStructuralPrerequisite implements the named-composite branch:
// the concrete composite must have, for every field of the named
// template, a field of the same name (spec.md §4.5). Looking up an
// unknown template name is an internal error.
func checkStructuralPrerequisite(bag *diag.Bag, env *Env, templateName string, concrete *ast.Type) (bool, diag.Result) {
	template, ok := env.Structs[templateName]
	if !ok {
		bag.Error(&diag.UserError{
			Severity: diag.SeverityInternalError,
			Message:  fmt.Sprintf("undeclared struct %q used as prerequisite", templateName),
		})
		return false, diag.AltFailure
	}

	name, ok := firstElementBase(concrete)
	if !ok {
		return false, diag.Success
	}
	given, ok := env.Structs[name]
	if !ok {
		return false, diag.Success
	}

	fields := make(map[string]bool, len(given.Fields))
	for _, f := range given.Fields {
		fields[f.Name] = true
	}
	for _, f := range template.Fields {
		if !fields[f.Name] {
			return false, diag.Success
		}
	}
	return true, diag.Success
}
