// Package infer implements the inference engine of spec.md §4.3: alias
// expansion, generic-literal resolution, variable scoping with
// nearest-name suggestions, and (SPEC_FULL.md §12) folded
// meta-definition skipping. Engine is the top-level driver that ties the
// three sub-algorithms together against one ir.Module's running type
// registry.
package infer

import (
	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// Engine bundles one compilation unit's alias table, lexical scope
// stack, and diagnostic bag, and resolves AST type/expression nodes
// against a target ir.Module's pool and type registry.
type Engine struct {
	Module *ir.Module
	Bag    *diag.Bag
	Aliases *AliasTable
	Scope   *Scope
}

// NewEngine builds an inference engine for one module, given the
// aliases collected from its AST (spec.md §4.3's input contract).
func NewEngine(m *ir.Module, bag *diag.Bag, aliases []*ast.AliasDef) *Engine {
	return &Engine{
		Module:  m,
		Bag:     bag,
		Aliases: NewAliasTable(aliases),
		Scope:   NewScope(),
	}
}

// SkipFoldedMeta reports whether a declaration guarded by d should be
// skipped: the parser already folded d's condition to a constant and it
// was false (SPEC_FULL.md §12). A directive the parser could not fold,
// or no directive at all, never causes a skip here — it either isn't
// resolvable yet or there is nothing to decide.
func SkipFoldedMeta(d *ast.MetaDirective) bool {
	return d != nil && d.Folded && !d.Value
}

// ResolveType expands ty's aliases and converts the result into an
// irtypes.Type allocated from the module's pool. Named composites are
// looked up in m.Types; nothing is recorded in a runtime-type-info
// table (ir.Module has none). Struct/union element types must already be
// registered in m.Types by the caller (internal/ir's declaration pass
// runs before inference per spec.md §2's pipeline ordering) — an
// unregistered named composite is reported as an unresolved identifier.
func (e *Engine) ResolveType(ty *ast.Type) (*irtypes.Type, diag.Result) {
	expanded, res := e.Aliases.Expand(e.Bag, ty)
	if res != diag.Success {
		return nil, res
	}
	return e.convert(expanded)
}

func (e *Engine) convert(ty *ast.Type) (*irtypes.Type, diag.Result) {
	if ty == nil {
		return irtypes.New(e.Module.Pool, irtypes.Void), diag.Success
	}
	switch ty.Kind {
	case ast.TypeNamed:
		if k, ok := ResolvePrimitive(ty); ok {
			return irtypes.New(e.Module.Pool, k), diag.Success
		}
		if t, ok := e.Module.Types[ty.Name]; ok {
			e.registerUsage(ty.Name, t)
			return t, diag.Success
		}
		if v, ok := e.Module.ResolvePolyVar(ty.Name); ok {
			return v, diag.Success
		}
		suggestion, has := nearestName(ty.Name, e.typeNames())
		ue := &diag.UserError{Severity: diag.SeverityUserError, Message: "unresolved type " + ty.Name, Pos: diag.Pos{Object: ty.Pos.Object}}
		if has {
			ue.Suggestion = suggestion
		}
		e.Bag.Error(ue)
		return nil, diag.Failure

	case ast.TypePointer:
		pointee, res := e.convert(ty.Elem)
		if res != diag.Success {
			return nil, res
		}
		return irtypes.NewPointer(e.Module.Pool, pointee), diag.Success

	case ast.TypeFixedArray:
		elem, res := e.convert(ty.Elem)
		if res != diag.Success {
			return nil, res
		}
		return irtypes.NewFixedArray(e.Module.Pool, elem, ty.Length), diag.Success

	case ast.TypeFunc:
		ret, res := e.convert(ty.FuncReturn)
		if res != diag.Success {
			return nil, res
		}
		args := make([]*irtypes.Type, len(ty.FuncArgs))
		for i, a := range ty.FuncArgs {
			arg, res := e.convert(a)
			if res != diag.Success {
				return nil, res
			}
			args[i] = arg
		}
		return irtypes.NewFuncPtr(e.Module.Pool, ret, args, ty.FuncVararg, ty.FuncStdCall), diag.Success

	case ast.TypePolymorph:
		if v, ok := e.Module.ResolvePolyVar(ty.Name); ok {
			return v, diag.Success
		}
		e.Bag.Error(&diag.UserError{
			Severity: diag.SeverityUserError,
			Message:  "unbound polymorphic type $" + ty.Name,
			Pos:      diag.Pos{Object: ty.Pos.Object},
		})
		return nil, diag.Failure

	default:
		e.Bag.Error(&diag.UserError{
			Severity: diag.SeverityInternalError,
			Message:  "type element has no runtime representation",
			Pos:      diag.Pos{Object: ty.Pos.Object},
		})
		return nil, diag.AltFailure
	}
}

// registerUsage is a hook point for recording that name was referenced
// during this resolution pass; the type itself is already present in
// m.Types, so there is nothing to insert, but a future diagnostics pass
// (unused-type warnings) can key off this.
func (e *Engine) registerUsage(name string, t *irtypes.Type) {
	_ = name
	_ = t
}

func (e *Engine) typeNames() []string {
	names := make([]string, 0, len(e.Module.Types))
	for name := range e.Module.Types {
		names = append(names, name)
	}
	return names
}

// ResolveExpr runs generic-literal resolution over root (spec.md §4.3
// steps 1-3) against this engine's current scope, then converts the
// chosen solution primitive back into an *irtypes.Type.
func (e *Engine) ResolveExpr(root *ast.Expr, defaultAssignedType *irtypes.Type) (*irtypes.Type, diag.Result) {
	var def *irtypes.Kind
	if defaultAssignedType != nil {
		k := defaultAssignedType.Kind
		def = &k
	}
	k, res := ResolveLiterals(e.Bag, e.Scope, root, def)
	if res != diag.Success {
		return nil, res
	}
	return irtypes.New(e.Module.Pool, k), diag.Success
}
