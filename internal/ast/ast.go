// Package ast defines the minimal surface-syntax handoff contract
// spec.md §6.1 describes: "AST: types, functions, structs/unions,
// globals, aliases, meta-definitions" produced by the parser
// (out-of-scope external collaborator, spec.md §1). internal/infer and
// internal/poly consume these types; nothing in this package performs
// lexing or parsing.
package ast

// Pos is a source position as spec.md §6.2 describes it: a byte index
// plus the object (source file) it belongs to. The driver's
// compiler_panic/compiler_warn/compiler_print_source callbacks resolve
// this to (line, column) against the relevant object's buffer —
// internal/diag.SourceResolver plays that role here.
type Pos struct {
	ByteIndex int
	Object    int
}

// TypeKind discriminates a surface-syntax Type element (spec.md
// GLOSSARY: "Element (type element): one node in a type's linearised
// element sequence").
type TypeKind int

const (
	TypeNamed TypeKind = iota // a base name: "int", "MyStruct", or an alias name
	TypePointer
	TypeFixedArray  // [N] T
	TypeVarFixedArray // [$#N] T — a polymorphic-arity fixed array used only inside a pattern
	TypeGenericBase // Name<Args...> — a generic type applied to concrete/poly arguments
	TypeFunc
	TypePolymorph   // $T, optionally with a prerequisite: $T~Req
	TypePolyCount   // $#N
)

// Type is one node of a surface-syntax type expression, prior to alias
// expansion and literal-kind resolution.
type Type struct {
	Kind TypeKind
	Pos  Pos

	Name string // TypeNamed, TypeGenericBase, TypePolymorph ($T's "T"), TypePolyCount ($#N's "N")

	Elem   *Type   // TypePointer, TypeFixedArray, TypeVarFixedArray element type
	Length uint64  // TypeFixedArray length

	GenericArgs []*Type // TypeGenericBase

	FuncReturn  *Type   // TypeFunc
	FuncArgs    []*Type // TypeFunc
	FuncVararg  bool
	FuncStdCall bool

	Prerequisite string // TypePolymorph's "~Req", empty if none
}

// AliasDef is a named type alias: `alias Name = Elements...`. Its
// element list is spliced in place of a TypeNamed reference to Name
// wherever one occurs (spec.md §4.3 "Alias expansion").
type AliasDef struct {
	Name         string
	GenericParams []string // non-empty for a generic-base alias
	Target       *Type
}

// LiteralKind discriminates a generic vs already-concrete literal
// expression (spec.md GLOSSARY "Generic-int/float").
type LiteralKind int

const (
	LiteralGenericInt LiteralKind = iota
	LiteralGenericFloat
	LiteralConcrete // already has a ConcreteType (a typed literal, e.g. `3'i64`)
)

// ExprKind discriminates an expression node relevant to inference:
// literal, variable reference, typed cast, or anything else (a call, a
// binary op, ...) that simply recurses into its children without itself
// contributing or consuming a solution primitive.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprVariable
	ExprCast
	ExprOther
)

// Expr is one node of an expression tree being walked for inference
// (spec.md §4.3). Only the fields relevant to literal-kind resolution
// and variable lookup are modeled; ExprOther's Children recurse without
// further interpretation.
type Expr struct {
	Kind ExprKind
	Pos  Pos

	// ExprLiteral.
	LiteralKind LiteralKind
	// ConcreteType is set when LiteralKind == LiteralConcrete.
	ConcreteType *Type

	// ExprVariable.
	VarName string

	// ExprCast.
	CastType *Type
	CastOperand *Expr

	// ExprOther (and ExprCast's operand traversal) — generic children,
	// e.g. a binary op's two operands or a call's argument list.
	Children []*Expr

	// ResolvedType is filled in by internal/infer once a solution
	// primitive is chosen for this expression (spec.md §4.3 step 2/3).
	// Nil until resolved.
	ResolvedType *Type
}

// VarDecl is one declared variable binding, as recorded into a Scope
// frame (spec.md §4.3 "Variable scoping").
type VarDecl struct {
	Name string
	Type *Type
	Pos  Pos
}

// StructField is one named, typed field of a composite declaration.
type StructField struct {
	Name string
	Type *Type
}

// StructDef is a struct/union declaration as the prerequisite checker's
// structural subtype check needs it (spec.md §4.5: "named composite ...
// the concrete composite has, for every field of the named template, a
// field of the same name"). GenericParams is non-empty for a
// polymorphic composite (`Name<$T>`).
type StructDef struct {
	Name          string
	Fields        []StructField
	GenericParams []string
	IsUnion       bool
}

// MetaDirective is a conditional-compilation marker attached to a
// declaration (SPEC_FULL.md §12 supplemented feature, carried over from
// original_source's `#meta`/`#end` blocks). The parser folds the
// condition to a constant boolean wherever it can; Folded is false for
// an expression internal/infer cannot evaluate at this stage, in which
// case the declaration is kept and the directive is ignored rather than
// guessed at.
type MetaDirective struct {
	Name   string
	Folded bool
	Value  bool
}
