package llvmgen

import (
	lir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/adept-lang/adeptcore/internal/backend/strtab"
	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irtypes"
	"github.com/adept-lang/adeptcore/internal/irvalue"
)

// Options configures a lowering pass (spec.md §4.6.1, §6.4's
// --windows/--macos/--wasm32 cross-compile target flags).
type Options struct {
	DataLayout irtypes.DataLayout
	Triple     string // empty selects TargetTriple(DataLayout)
	PIC        bool
	UnsafeNew  bool // SPEC_FULL.md: --unsafe-new disables malloc zero-init
}

// Context carries every piece of state one lowering pass accumulates:
// the native module under construction, the source IR module being
// read, per-kind caches so repeated references to the same type/global/
// function/interned string reuse a single native value, and the
// deferred phi2 back-patch list (spec.md §4.6.4 step 9).
type Context struct {
	Source  *ir.Module
	LLVM    *lir.Module
	Options Options

	dataLayout irtypes.DataLayout

	typeCache map[*irtypes.Type]types.Type

	globals     map[string]*lir.Global
	anonGlobals map[int]*lir.Global

	funcs map[int]*lir.Func // ir.Function.IRFuncID -> native function

	// staticGlobals backs every `static` local variable's slot,
	// module-wide (see the note on Context.staticGlobal in function.go).
	staticGlobals map[int]*lir.Global

	strings         *strtab.Table
	internedGlobals map[int]*lir.Global

	memset     *lir.Func // lazily-declared llvm.memset.p0i8.i64 (spec.md §4.6.5)
	mallocFn   *lir.Func
	freeFn     *lir.Func
	memcpyFn   *lir.Func
	nullFailFn *lir.Func
	intrinsics map[string]*lir.Func

	relocations []phiRelocation
}

// phiRelocation is one pending phi2 incoming-block fixup (spec.md
// §4.6.4 step 9): the native PHI's incoming list is filled eagerly with
// the IR's nominal block ids, then replayed once every ir block's
// *actual* exit block (after null-check landing-block splitting) is
// known.
type phiRelocation struct {
	phi       *lir.InstPhi
	index     int // which incoming pair to patch
	sourceID  int // the original ir block id recorded at construction
}

// NewContext builds the native module skeleton: target triple and data
// layout, static/named globals, and function declarations/definitions'
// signatures (spec.md §4.6.1-§4.6.3). Function bodies are lowered
// separately by LowerFunction.
func NewContext(src *ir.Module, opts Options) *Context {
	if opts.DataLayout.PointerSize == 0 {
		opts.DataLayout = irtypes.AMD64
	}
	triple := opts.Triple
	if triple == "" {
		triple = TargetTriple(opts.DataLayout)
	}

	m := lir.NewModule()
	m.SourceFilename = src.Name
	m.TargetTriple = triple
	m.DataLayout = DataLayoutString(opts.DataLayout)

	c := &Context{
		Source:          src,
		LLVM:            m,
		Options:         opts,
		dataLayout:      opts.DataLayout,
		typeCache:       map[*irtypes.Type]types.Type{},
		globals:         map[string]*lir.Global{},
		anonGlobals:     map[int]*lir.Global{},
		funcs:           map[int]*lir.Func{},
		staticGlobals:   map[int]*lir.Global{},
		strings:         strtab.New(),
		internedGlobals: map[int]*lir.Global{},
		intrinsics:      map[string]*lir.Func{},
	}

	c.lowerNamedGlobals()
	c.declareFunctions()

	return c
}

// lowerNamedGlobals creates a native global for every module-level
// Global (spec.md §4.6.2). An initializer of nil becomes undef — real
// initialization, when the source value isn't itself a compile-time
// constant, happens via InitBuilder's body inside __init_static_vars,
// lowered the same as any other function.
func (c *Context) lowerNamedGlobals() {
	for _, g := range c.Source.Globals {
		contentType := c.LowerType(g.Type)
		ng := c.LLVM.NewGlobal(g.Name, contentType)
		ng.Immutable = g.Constant
		if g.Foreign {
			ng.Linkage = enum.LinkageExternal
			c.globals[g.Name] = ng
			continue
		}
		if iv, ok := g.Initializer.(*irvalue.Value); ok && iv != nil {
			ng.Init = c.lowerConstant(iv)
		}
		if ng.Init == nil {
			ng.Init = constant.NewUndef(contentType)
		}
		c.globals[g.Name] = ng
	}
}

// anonGlobal lazily materializes the native global backing anonymous
// table entry idx (spec.md §3.2's KindAnonGlobal/KindConstAnonGlobal),
// so a module that never references a given literal never pays for it.
func (c *Context) anonGlobal(idx int) *lir.Global {
	if g, ok := c.anonGlobals[idx]; ok {
		return g
	}
	entry := c.Source.AnonGlobals[idx]
	contentType := c.LowerType(entry.Type)
	name := anonGlobalName(idx)
	ng := c.LLVM.NewGlobal(name, contentType)
	ng.Immutable = entry.Constant
	ng.Linkage = enum.LinkagePrivate
	if iv, ok := entry.Initializer.(*irvalue.Value); ok && iv != nil {
		ng.Init = c.lowerConstant(iv)
	}
	if ng.Init == nil {
		ng.Init = constant.NewZeroInitializer(contentType)
	}
	c.anonGlobals[idx] = ng
	return ng
}

func anonGlobalName(idx int) string {
	return "A" + hex(uint64(idx))
}

// internString implements spec.md §4.7: a binary-search string table
// that hands out a stable index and, on a fresh string, a private
// constant global named "S<hex>". Hits on an already-seen byte sequence
// reuse the prior global.
func (c *Context) internString(data []byte) *lir.Global {
	idx, isNew := c.strings.Intern(data)
	if !isNew {
		return c.internedGlobals[idx]
	}
	arr := constant.NewCharArrayFromString(string(data) + "\x00")
	name := "S" + hex(uint64(idx))
	ng := c.LLVM.NewGlobalDef(name, arr)
	ng.Linkage = enum.LinkagePrivate
	ng.Immutable = true
	c.internedGlobals[idx] = ng
	return ng
}

func hex(v uint64) string {
	const digits = "0123456789abcdef"
	if v == 0 {
		return "0"
	}
	var buf [16]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v%16]
		v /= 16
	}
	return string(buf[i:])
}

// memsetDecl lazily declares llvm.memset.p0i8.i64, used by malloc's
// zero-init lowering (spec.md §4.6.5).
func (c *Context) memsetDecl() *lir.Func {
	if c.memset != nil {
		return c.memset
	}
	ptrI8 := types.NewPointer(types.I8)
	fn := c.LLVM.NewFunc("llvm.memset.p0i8.i64", types.Void,
		lir.NewParam("", ptrI8),
		lir.NewParam("", types.I8),
		lir.NewParam("", types.I64),
		lir.NewParam("", types.I1),
	)
	c.memset = fn
	return fn
}
