package infer

import (
	"fmt"

	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// primitiveNames maps the surface-syntax primitive spelling to its
// irtypes.Kind (spec.md §4.3 step 2's target list: "bool/byte/ubyte/
// short/ushort/int/uint/long/ulong/usize/float/double").
var primitiveNames = map[string]irtypes.Kind{
	"bool":   irtypes.Bool,
	"byte":   irtypes.S8,
	"ubyte":  irtypes.U8,
	"short":  irtypes.S16,
	"ushort": irtypes.U16,
	"int":    irtypes.S32,
	"uint":   irtypes.U32,
	"long":   irtypes.S64,
	"ulong":  irtypes.U64,
	"usize":  irtypes.U64,
	"float":  irtypes.Float,
	"double": irtypes.Double,
}

// ResolvePrimitive recognizes a named primitive type. It does not
// consult the alias table: by the time literal resolution runs, every
// type element reachable from a declaration has already passed through
// AliasTable.Expand, so a surviving TypeNamed is either a genuine
// primitive or a struct/union name (irrelevant here).
func ResolvePrimitive(ty *ast.Type) (irtypes.Kind, bool) {
	if ty == nil || ty.Kind != ast.TypeNamed {
		return irtypes.None, false
	}
	k, ok := primitiveNames[ty.Name]
	return k, ok
}

// literalState accumulates one root expression's undetermined list and,
// once found, its solution primitive (spec.md §4.3's per-root-expression
// algorithm).
type literalState struct {
	undetermined []*ast.Expr
	solution     irtypes.Kind
	hasSolution  bool
}

// contribute records a concrete primitive encountered during the walk.
// The first contribution wins and is applied to every undetermined
// literal collected so far; later contributions are no-ops for the
// purpose of picking the solution (the literals they govern were
// already rewritten when the node was visited, see walkExpr's ExprCast
// case).
func (s *literalState) contribute(bag *diag.Bag, k irtypes.Kind) {
	if s.hasSolution {
		return
	}
	s.solution = k
	s.hasSolution = true
	for _, lit := range s.undetermined {
		applyLiteralSolution(bag, lit, k)
	}
	s.undetermined = nil
}

// applyLiteralSolution rewrites a single generic literal to concrete
// kind k in place, recording a narrowing-conversion warning when
// step 2's rule calls for one.
func applyLiteralSolution(bag *diag.Bag, lit *ast.Expr, k irtypes.Kind) {
	var conv ConversionKind
	switch lit.LiteralKind {
	case ast.LiteralGenericInt:
		conv = genericIntConversion(k)
	case ast.LiteralGenericFloat:
		conv = genericFloatConversion(k)
	default:
		return
	}
	lit.ResolvedType = &ast.Type{Kind: ast.TypeNamed, Name: kindName(k)}
	if conv == ConvFloatToIntWarn || conv == ConvTruncate {
		bag.Warn(&diag.UserError{
			Severity: diag.SeverityWarning,
			Message:  fmt.Sprintf("narrowing conversion of literal to %s", kindName(k)),
			Pos:      diag.Pos{Object: lit.Pos.Object},
		})
	}
}

func kindName(k irtypes.Kind) string {
	for name, kk := range primitiveNames {
		if kk == k {
			return name
		}
	}
	return k.String()
}

// walker threads the scope and alias table a single inference pass
// needs to resolve ExprVariable and ExprCast nodes.
type walker struct {
	bag   *diag.Bag
	scope *Scope
}

// walkExpr visits e, folding concrete-type contributions into state and
// queuing still-undetermined generic literals (spec.md §4.3 step 1/2).
func (w *walker) walkExpr(e *ast.Expr, state *literalState) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprLiteral:
		if e.LiteralKind == ast.LiteralConcrete {
			if k, ok := ResolvePrimitive(e.ConcreteType); ok {
				state.contribute(w.bag, k)
				e.ResolvedType = e.ConcreteType
			}
			return
		}
		if state.hasSolution {
			applyLiteralSolution(w.bag, e, state.solution)
			return
		}
		state.undetermined = append(state.undetermined, e)

	case ast.ExprVariable:
		decl, ok := w.scope.Lookup(e.VarName)
		if !ok {
			suggestion, has := w.scope.Suggest(e.VarName)
			msg := fmt.Sprintf("undeclared identifier %q", e.VarName)
			ue := &diag.UserError{Severity: diag.SeverityUserError, Message: msg, Pos: diag.Pos{Object: e.Pos.Object}}
			if has {
				ue.Suggestion = suggestion
			}
			w.bag.Error(ue)
			return
		}
		e.ResolvedType = decl.Type
		if k, ok := ResolvePrimitive(decl.Type); ok {
			state.contribute(w.bag, k)
		}

	case ast.ExprCast:
		// A cast's operand is an independent sub-problem: whatever
		// generic literals live inside it are solved against the
		// cast's own declared type, not the enclosing expression's
		// solution (spec.md §4.3: "a cast" is itself listed as one of
		// the concrete contributions a walk can encounter, and it
		// governs only the value it casts).
		sub := &literalState{}
		w.walkExpr(e.CastOperand, sub)
		castKind, ok := ResolvePrimitive(e.CastType)
		if ok {
			sub.contribute(w.bag, castKind)
		}
		w.finalize(sub, nil)
		e.ResolvedType = e.CastType
		if ok {
			state.contribute(w.bag, castKind)
		}

	case ast.ExprOther:
		for _, c := range e.Children {
			w.walkExpr(c, state)
		}
	}
}

// finalize applies step 3's default-solution rule when the walk ended
// with no concrete contribution: "if both generic-int and generic-float
// are present -> double; only generic-int -> int; only generic-float ->
// double; else the caller's default_assigned_type, if any."
func (w *walker) finalize(state *literalState, defaultAssignedType *irtypes.Kind) {
	if state.hasSolution || len(state.undetermined) == 0 {
		return
	}
	sawInt, sawFloat := false, false
	for _, lit := range state.undetermined {
		if lit.LiteralKind == ast.LiteralGenericFloat {
			sawFloat = true
		} else {
			sawInt = true
		}
	}
	var solution irtypes.Kind
	switch {
	case sawInt && sawFloat:
		solution = irtypes.Double
	case sawInt:
		solution = irtypes.S32
	case sawFloat:
		solution = irtypes.Double
	case defaultAssignedType != nil:
		solution = *defaultAssignedType
	default:
		return
	}
	state.contribute(w.bag, solution)
}

// ResolveLiterals runs the generic-literal resolution algorithm over one
// root expression, rewriting every reachable ExprLiteral's ResolvedType
// in place and returning the chosen solution primitive.
func ResolveLiterals(bag *diag.Bag, scope *Scope, root *ast.Expr, defaultAssignedType *irtypes.Kind) (irtypes.Kind, diag.Result) {
	w := &walker{bag: bag, scope: scope}
	state := &literalState{}
	w.walkExpr(root, state)
	w.finalize(state, defaultAssignedType)
	if !state.hasSolution {
		if defaultAssignedType != nil {
			return *defaultAssignedType, diag.Success
		}
		return irtypes.None, diag.Success
	}
	return state.solution, diag.Success
}
