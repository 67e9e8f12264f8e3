package poly

import (
	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// DoesExtend determines whether subject's named composite inherits from
// parentName, walking env.Parents (spec.md §4.4's "does-extend check
// ... walks the inheritance relation and may bind the parent's
// polymorphs into the same catalog"). subjectArgs are subject's own
// generic arguments, bound into catalog under parentName's declared
// generic parameter list when a direct edge is found.
func DoesExtend(bag *diag.Bag, env *Env, subjectName string, subjectArgs []*ast.Type, parentName string, catalog *Catalog) (bool, diag.Result) {
	return doesExtend(bag, env, subjectName, subjectArgs, parentName, catalog, 0)
}

const maxInheritanceDepth = 64

func doesExtend(bag *diag.Bag, env *Env, subjectName string, subjectArgs []*ast.Type, parentName string, catalog *Catalog, depth int) (bool, diag.Result) {
	if depth > maxInheritanceDepth {
		bag.Error(&diag.UserError{Severity: diag.SeverityInternalError, Message: "inheritance chain too deep for " + subjectName})
		return false, diag.AltFailure
	}
	if subjectName == parentName {
		bindGenericParams(env, parentName, subjectArgs, catalog)
		return true, diag.Success
	}
	for _, parent := range env.Parents[subjectName] {
		found, res := doesExtend(bag, env, parent, nil, parentName, catalog, depth+1)
		if res != diag.Success {
			return false, res
		}
		if found {
			return true, diag.Success
		}
	}
	return false, diag.Success
}

func bindGenericParams(env *Env, name string, args []*ast.Type, catalog *Catalog) {
	def, ok := env.Structs[name]
	if !ok || len(def.GenericParams) != len(args) {
		return
	}
	for i, p := range def.GenericParams {
		catalog.addType(p, args[i])
	}
}

// Apply pushes catalog's type bindings onto module's polymorphic
// type-variable stack (ir.Module.PolyTypeVarStack), resolving each
// ast.Type binding to an irtypes.Type via resolve (spec.md §3.5). The
// bindings are read back through ir.Module.ResolvePolyVar, which
// internal/infer uses when converting a polymorphic type.
// The caller must pop with module.PopPolyScope when lowering finishes.
func (c *Catalog) Apply(module *ir.Module, resolve func(*ast.Type) (*irtypes.Type, diag.Result)) diag.Result {
	module.PushPolyScope()
	for name, ty := range c.Types {
		resolved, res := resolve(ty)
		if res != diag.Success {
			return res
		}
		module.PolyTypeVarStack[len(module.PolyTypeVarStack)-1][name] = resolved
	}
	return diag.Success
}
