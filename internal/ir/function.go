package ir

import "github.com/adept-lang/adeptcore/internal/irtypes"

// VarInfo is one stack-slot's worth of variable metadata — name, type,
// and a staticness trait (spec.md §3.4, §4.6.3: static stack variables
// map to a backing native global instead of a fresh alloca).
type VarInfo struct {
	Name   string
	Type   *irtypes.Type
	Static bool
	Pos    SourcePos
}

// ScopeNode is one lexical-scope frame attached to a function purely
// for diagnostics and variable-metadata display (spec.md §3.4) — not to
// be confused with internal/infer's scope *stack*, which is the live
// structure the inference engine actually walks while resolving
// identifiers against the AST. This tree is the frozen-after-inference
// record of what ended up in each scope, used by e.g. a `--dump-ast`
// debug output (spec.md §6.6).
type ScopeNode struct {
	Parent   *ScopeNode
	Vars     []VarInfo
	Children []*ScopeNode
}

// NewChild creates a nested scope under s.
func (s *ScopeNode) NewChild() *ScopeNode {
	c := &ScopeNode{Parent: s}
	s.Children = append(s.Children, c)
	return c
}

// Traits are the per-function boolean flags of spec.md §3.4.
type Traits struct {
	Foreign   bool
	Main      bool
	StdCall   bool
	Vararg    bool
	ExportAs  string // empty means "no explicit export_as name"
}

// Function is one compiled function (spec.md §3.4): name (mangled form
// derived by the backend, §4.6.3), arity, return type, argument types,
// basic blocks, stack-slot count, traits, a scope tree, and an optional
// filename/definition string used in null-check error messages
// (spec.md §4.6.4 step 6).
type Function struct {
	IRFuncID     int // stable id the backend's base-62 mangling (§4.6.3) is derived from
	name         string
	ReturnType   *irtypes.Type
	ArgTypes     []*irtypes.Type
	Blocks       []*BasicBlock
	VariableCount int // stack slots, including the argument prelude
	Traits       Traits
	Scope        *ScopeNode
	Filename     string
	DefString    string // human-readable definition, e.g. "func foo(int) int"
}

// Name returns the function's unmangled source name. The backend
// computes the external symbol name separately (spec.md §4.6.3); this
// is the name the driver and diagnostics refer to the function by.
func (f *Function) Name() string { return f.name }

// NewFunction allocates an (initially block-less) function record. A
// function with zero blocks is an external/foreign declaration (spec.md
// §4.6.4 step 4 treats it specially: "External declaration").
func NewFunction(irFuncID int, name string, returnType *irtypes.Type, argTypes []*irtypes.Type) *Function {
	return &Function{
		IRFuncID:   irFuncID,
		name:       name,
		ReturnType: returnType,
		ArgTypes:   argTypes,
		Scope:      &ScopeNode{},
	}
}

// Arity returns the number of declared arguments.
func (f *Function) Arity() int { return len(f.ArgTypes) }

// CreateBlock appends a new, empty basic block and returns it.
func (f *Function) CreateBlock(name string) *BasicBlock {
	b := &BasicBlock{ID: len(f.Blocks), Name: name}
	f.Blocks = append(f.Blocks, b)
	return b
}

// InsertBlockBefore inserts a new empty block immediately before the
// block at index i, renumbering every block's ID to match its new
// index. Used for the "pre-entry" block main's static-global
// initializer injection needs (spec.md §4.6.4 step 3, §4.6.6).
func (f *Function) InsertBlockBefore(i int, name string) *BasicBlock {
	b := &BasicBlock{Name: name}
	blocks := make([]*BasicBlock, 0, len(f.Blocks)+1)
	blocks = append(blocks, f.Blocks[:i]...)
	blocks = append(blocks, b)
	blocks = append(blocks, f.Blocks[i:]...)
	for idx, blk := range blocks {
		blk.ID = idx
	}
	f.Blocks = blocks
	return b
}

// IsDeclarationOnly reports whether f has no basic blocks, i.e. it is an
// external/foreign declaration rather than a definition.
func (f *Function) IsDeclarationOnly() bool { return len(f.Blocks) == 0 }
