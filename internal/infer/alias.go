package infer

import (
	"fmt"
	"sort"

	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
)

// maxAliasExpansionDepth bounds alias-chain recursion (spec.md §4.3:
// "any alias expansion depth exceeding a small recursion bound ->
// error").
const maxAliasExpansionDepth = 32

// AliasTable holds every alias declaration in the compilation unit,
// sorted by name so lookups are binary-search lookups as spec.md §4.3
// describes ("A named alias is looked up by binary search").
type AliasTable struct {
	sorted []*ast.AliasDef
}

// NewAliasTable builds a table from the (unsorted) set of aliases
// collected before inference begins (spec.md §4.3's "Input contract:
// the whole AST with aliases already collected").
func NewAliasTable(defs []*ast.AliasDef) *AliasTable {
	sorted := append([]*ast.AliasDef(nil), defs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &AliasTable{sorted: sorted}
}

func (t *AliasTable) lookup(name string) (*ast.AliasDef, bool) {
	i := sort.Search(len(t.sorted), func(i int) bool { return t.sorted[i].Name >= name })
	if i < len(t.sorted) && t.sorted[i].Name == name {
		return t.sorted[i], true
	}
	return nil, false
}

// Names returns every alias name, for nearest-name suggestions when an
// unresolved named type turns out not to be a real base type either.
func (t *AliasTable) Names() []string {
	names := make([]string, len(t.sorted))
	for i, a := range t.sorted {
		names[i] = a.Name
	}
	return names
}

// Expand applies alias expansion to every AST type element, recursively,
// per spec.md §4.3: "A named alias is looked up by binary search; its
// element list is cloned and spliced in place of the alias element;
// recursion resolves chains. Aliases referencing generic-base elements
// re-walk their generic parameter list."
func (t *AliasTable) Expand(bag *diag.Bag, ty *ast.Type) (*ast.Type, diag.Result) {
	return t.expand(bag, ty, 0, nil)
}

func (t *AliasTable) expand(bag *diag.Bag, ty *ast.Type, depth int, subst map[string]*ast.Type) (*ast.Type, diag.Result) {
	if ty == nil {
		return nil, diag.Success
	}
	if depth > maxAliasExpansionDepth {
		bag.Error(&diag.UserError{
			Severity: diag.SeverityUserError,
			Message:  fmt.Sprintf("alias expansion recursion exceeds %d levels", maxAliasExpansionDepth),
		})
		return nil, diag.AltFailure
	}

	switch ty.Kind {
	case ast.TypeNamed:
		if repl, ok := subst[ty.Name]; ok {
			return repl, diag.Success
		}
		if alias, ok := t.lookup(ty.Name); ok && len(alias.GenericParams) == 0 {
			return t.expand(bag, alias.Target, depth+1, subst)
		}
		return ty, diag.Success

	case ast.TypePointer:
		elem, res := t.expand(bag, ty.Elem, depth, subst)
		if res != diag.Success {
			return nil, res
		}
		return &ast.Type{Kind: ast.TypePointer, Pos: ty.Pos, Elem: elem}, diag.Success

	case ast.TypeFixedArray, ast.TypeVarFixedArray:
		elem, res := t.expand(bag, ty.Elem, depth, subst)
		if res != diag.Success {
			return nil, res
		}
		out := *ty
		out.Elem = elem
		return &out, diag.Success

	case ast.TypeFunc:
		ret, res := t.expand(bag, ty.FuncReturn, depth, subst)
		if res != diag.Success {
			return nil, res
		}
		args := make([]*ast.Type, len(ty.FuncArgs))
		for i, a := range ty.FuncArgs {
			expanded, res := t.expand(bag, a, depth, subst)
			if res != diag.Success {
				return nil, res
			}
			args[i] = expanded
		}
		out := *ty
		out.FuncReturn = ret
		out.FuncArgs = args
		return &out, diag.Success

	case ast.TypeGenericBase:
		args := make([]*ast.Type, len(ty.GenericArgs))
		for i, a := range ty.GenericArgs {
			expanded, res := t.expand(bag, a, depth, subst)
			if res != diag.Success {
				return nil, res
			}
			args[i] = expanded
		}
		if alias, ok := t.lookup(ty.Name); ok && len(alias.GenericParams) == len(args) {
			// "Aliases referencing generic-base elements re-walk their
			// generic parameter list": build a substitution mapping
			// the alias's declared parameter names to the concrete
			// args supplied at this use site, then expand the
			// alias's target under that substitution.
			inner := make(map[string]*ast.Type, len(args))
			for i, p := range alias.GenericParams {
				inner[p] = args[i]
			}
			return t.expand(bag, alias.Target, depth+1, inner)
		}
		out := *ty
		out.GenericArgs = args
		return &out, diag.Success

	case ast.TypePolymorph, ast.TypePolyCount:
		if repl, ok := subst[ty.Name]; ok && ty.Kind == ast.TypePolymorph {
			return repl, diag.Success
		}
		return ty, diag.Success

	default:
		return ty, diag.Success
	}
}
