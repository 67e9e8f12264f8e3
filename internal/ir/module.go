package ir

import (
	"sort"

	"github.com/google/uuid"

	"github.com/adept-lang/adeptcore/internal/irtypes"
	"github.com/adept-lang/adeptcore/internal/pool"
)

// Global is a module-level (named) global variable.
type Global struct {
	Name        string
	Type        *irtypes.Type
	Initializer interface{} // an *irvalue.Value, or nil for a zero/undef initializer
	Constant    bool
	Foreign     bool
}

// AnonGlobalEntry is one entry of the module's anonymous-global table,
// addressed by index from irvalue.Value's KindAnonGlobal/
// KindConstAnonGlobal (spec.md §3.2).
type AnonGlobalEntry struct {
	Type        *irtypes.Type
	Initializer interface{}
	Constant    bool
}

// MethodKey identifies an entry in the method/generic-method tables:
// the subject type's structural name plus the method name.
type MethodKey struct {
	TypeName   string
	MethodName string
}

// Module owns everything allocated for one compiled object (spec.md
// §3.5): the pool; the function table; a sorted name→function index for
// binary search; method and generic-method tables; a type map; the
// global and anonymous-global tables; a polymorphic type-variable
// stack; a signature cache; and the two synthetic builders that
// accumulate static-variable initializer/finalizer bodies.
type Module struct {
	Pool *pool.Pool
	Name string

	// BuildID stamps every compiled module with a UUIDv4 so two builds
	// of the same sources remain distinguishable for caching/debugging
	// (SPEC_FULL.md §11 domain stack). It is not emitted into the native
	// module (no `llvm.ident` metadata); see DESIGN.md, Open Question
	// decision 6.
	BuildID uuid.UUID

	TargetTriple string

	Functions     []*Function
	functionIndex map[string]int // name -> index into Functions, kept in step with sortedNames
	sortedNames   []string       // binary-search index over function names (spec.md §3.5)

	Methods        map[MethodKey]*Function
	GenericMethods map[MethodKey]*Function

	Types map[string]*irtypes.Type

	Globals      []*Global
	AnonGlobals  []AnonGlobalEntry

	// ForeignLibraries is the module's accumulated foreign-library
	// declarations (spec.md §4.6.7 step 4), each rendered onto the
	// linker command line by internal/backend/linkline according to its
	// "framework:"/"file:" prefix, or as a plain -lname library when
	// neither prefix is present.
	ForeignLibraries []string

	// PolyTypeVarStack is the polymorphic type-variable stack (spec.md
	// §3.5) — the active $T/$#N bindings in scope while lowering a
	// generic function's body, pushed/popped by internal/poly as it
	// enters/leaves a polymorphic instantiation.
	PolyTypeVarStack []map[string]*irtypes.Type

	// SignatureCache memoizes "does type T have a user override of
	// method M" lookups (spec.md §4.5's __assign__ prerequisite).
	SignatureCache map[MethodKey]bool

	// InitBuilder / DeinitBuilder accumulate the basic blocks that
	// initialize/tear down static variables (spec.md §3.5, §4.6.6).
	InitBuilder   *Function
	DeinitBuilder *Function
}

// NewModule creates an empty module backed by a fresh pool.
func NewModule(name string) *Module {
	m := &Module{
		Pool:           pool.New(),
		Name:           name,
		BuildID:        uuid.New(),
		functionIndex:  map[string]int{},
		Methods:        map[MethodKey]*Function{},
		GenericMethods: map[MethodKey]*Function{},
		Types:          map[string]*irtypes.Type{},
		SignatureCache: map[MethodKey]bool{},
	}
	voidType := irtypes.New(m.Pool, irtypes.Void)
	m.InitBuilder = NewFunction(-1, "__init_static_vars", voidType, nil)
	m.InitBuilder.CreateBlock("entry")
	m.DeinitBuilder = NewFunction(-2, "____adeinitsvars", voidType, nil)
	m.DeinitBuilder.CreateBlock("entry")
	return m
}

// AddFunction appends fn to the module's function table and keeps the
// binary-search name index (spec.md §3.5) in step.
func (m *Module) AddFunction(fn *Function) {
	idx := len(m.Functions)
	m.Functions = append(m.Functions, fn)
	m.functionIndex[fn.Name()] = idx
	pos := sort.SearchStrings(m.sortedNames, fn.Name())
	m.sortedNames = append(m.sortedNames, "")
	copy(m.sortedNames[pos+1:], m.sortedNames[pos:])
	m.sortedNames[pos] = fn.Name()
}

// LookupFunction performs the binary-search-by-name lookup spec.md §3.5
// calls for.
func (m *Module) LookupFunction(name string) (*Function, bool) {
	i := sort.SearchStrings(m.sortedNames, name)
	if i < len(m.sortedNames) && m.sortedNames[i] == name {
		idx := m.functionIndex[name]
		return m.Functions[idx], true
	}
	return nil, false
}

// AddGlobal appends a named global and returns it.
func (m *Module) AddGlobal(g *Global) *Global {
	m.Globals = append(m.Globals, g)
	return g
}

// AddAnonGlobal appends an anonymous-global table entry and returns its
// index, used to build irvalue.AnonGlobal/ConstAnonGlobal references.
func (m *Module) AddAnonGlobal(e AnonGlobalEntry) int {
	m.AnonGlobals = append(m.AnonGlobals, e)
	return len(m.AnonGlobals) - 1
}

// PushPolyScope pushes a fresh type-variable binding frame, used when
// internal/poly enters a polymorphic function instantiation.
func (m *Module) PushPolyScope() {
	m.PolyTypeVarStack = append(m.PolyTypeVarStack, map[string]*irtypes.Type{})
}

// PopPolyScope pops the innermost type-variable binding frame.
func (m *Module) PopPolyScope() {
	m.PolyTypeVarStack = m.PolyTypeVarStack[:len(m.PolyTypeVarStack)-1]
}

// ResolvePolyVar looks up a $T binding against the current poly-scope
// stack, innermost first.
func (m *Module) ResolvePolyVar(name string) (*irtypes.Type, bool) {
	for i := len(m.PolyTypeVarStack) - 1; i >= 0; i-- {
		if t, ok := m.PolyTypeVarStack[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}
