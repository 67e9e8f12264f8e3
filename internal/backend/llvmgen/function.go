package llvmgen

import (
	"fmt"

	lir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/adept-lang/adeptcore/internal/ir"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// base62 renders n least-significant-digit-first (original_source's
// ir_implementation: digit = id % base, append, id /= base, repeat —
// never reversed), n=0 -> "0".
func base62(n int) string {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return "0"
	}
	var buf []byte
	for n > 0 {
		buf = append(buf, base62Alphabet[n%62])
		n /= 62
	}
	return string(buf)
}

// mangleSymbol computes fn's external linkage name (spec.md §4.6.3):
// foreign declarations, the designated main, and an explicit
// export_as name are emitted verbatim so they link against their
// expected C symbol; everything else becomes the id-only symbol
// original_source/src/IR/ir.c's ir_implementation(id, 'a', ...)
// produces — an 'a' prefix followed by the base-62 encoding of
// ir_func_id, discarding the source name entirely so overloads and
// generic instantiations never collide. The synthetic
// __init_static_vars/____adeinitsvars builders (negative ids) keep
// their own names.
func mangleSymbol(fn *ir.Function) string {
	if fn.Traits.ExportAs != "" {
		return fn.Traits.ExportAs
	}
	if fn.IRFuncID < 0 {
		return fn.Name()
	}
	if fn.Traits.Foreign || fn.Traits.Main {
		return fn.Name()
	}
	return "a" + base62(fn.IRFuncID)
}

// declareFunctions creates a native function skeleton for every
// function in the source module, including the synthetic
// __init_static_vars/____adeinitsvars builders (spec.md §4.6.3).
// Bodies are filled in later by LowerFunction.
func (c *Context) declareFunctions() {
	all := append(append([]*ir.Function{}, c.Source.Functions...), c.Source.InitBuilder, c.Source.DeinitBuilder)
	for _, fn := range all {
		c.declareFunction(fn)
	}
}

func (c *Context) declareFunction(fn *ir.Function) *lir.Func {
	if existing, ok := c.funcs[fn.IRFuncID]; ok {
		return existing
	}

	params := make([]*lir.Param, len(fn.ArgTypes))
	for i, t := range fn.ArgTypes {
		params[i] = lir.NewParam(fmt.Sprintf("arg%d", i), c.LowerType(t))
	}

	native := c.LLVM.NewFunc(mangleSymbol(fn), c.LowerType(fn.ReturnType), params...)
	native.Sig.Variadic = fn.Traits.Vararg
	if fn.Traits.StdCall {
		native.CallingConv = enum.CallConvX86StdCall
	}

	switch {
	case fn.IRFuncID < 0:
		// The synthetic __init_static_vars/____adeinitsvars trampolines
		// are never called from outside this translation unit.
		native.Linkage = enum.LinkagePrivate
	default:
		native.Linkage = enum.LinkageExternal
	}

	c.funcs[fn.IRFuncID] = native
	return native
}

// funcState is the per-function mutable lowering state: the value
// catalog keyed [block_id][instruction_id] (spec.md §3.2's invariant),
// lazily-materialized stack-slot allocas and static backing globals,
// the shared null-check landing block, and the map from logical IR
// block id to the *actual* native block that ends up holding that
// block's terminator (its "exit" block, which can differ from its
// entry block once null-check splitting inserts intermediate blocks).
type funcState struct {
	fn     *ir.Function
	native *lir.Func

	entryBlocks []*lir.Block // index == ir block id, the jump target for break/cond_break/phi predecessors-at-construction
	exitBlocks  map[int]*lir.Block

	catalog map[int]map[int]value.Value

	slots map[int]*lir.InstAlloca

	nullFail     *lir.Block
	nullFailLine *lir.InstPhi
	nullFailCol  *lir.InstPhi
}

// staticGlobals is shared across every function lowered by this
// Context, since a `static` local's backing global is a single
// module-level object regardless of which function's body references
// its slot (spec.md §4.6.3: "static stack variables map to a backing
// native global"). Keying purely by slot number is an Open Question
// resolution recorded in DESIGN.md: the source IR does not carry an
// explicit cross-function static-variable id, so slot numbers are
// treated as globally unique for statics.
func (c *Context) staticGlobal(slot int, elemType types.Type) *lir.Global {
	if g, ok := c.staticGlobals[slot]; ok {
		return g
	}
	g := c.LLVM.NewGlobal(fmt.Sprintf("static.%d", slot), elemType)
	g.Linkage = enum.LinkagePrivate
	g.Init = constant.NewZeroInitializer(elemType)
	c.staticGlobals[slot] = g
	return g
}

// LowerFunction fills in fn's native body (spec.md §4.6.4). A
// declaration-only function (no blocks) is left as the bare skeleton
// declareFunctions already created.
func (c *Context) LowerFunction(fn *ir.Function) error {
	if fn.IsDeclarationOnly() {
		return nil
	}
	native := c.funcs[fn.IRFuncID]

	st := &funcState{
		fn:          fn,
		native:      native,
		exitBlocks:  map[int]*lir.Block{},
		catalog:     map[int]map[int]value.Value{},
		slots:       map[int]*lir.InstAlloca{},
	}

	for i, b := range fn.Blocks {
		st.entryBlocks = append(st.entryBlocks, native.NewBlock(blockName(i, b.Name)))
	}

	// main's pre-entry block calls __init_static_vars before falling
	// into the source's real entry block (spec.md §4.6.4 step 3,
	// §4.6.6).
	if fn.Traits.Main {
		c.injectMainPrologue(st)
	}

	for i, b := range fn.Blocks {
		cur := st.entryBlocks[i]
		st.catalog[b.ID] = map[int]value.Value{}
		for _, inst := range b.Instructions {
			var err error
			cur, err = c.lowerInstruction(st, cur, b.ID, inst)
			if err != nil {
				return err
			}
		}
		st.exitBlocks[b.ID] = cur
	}

	c.backpatchPhis(st)

	return nil
}

// injectMainPrologue splits off a fresh block before main's own entry
// that calls __init_static_vars then branches into the real body
// (spec.md §4.6.4 step 3 / §4.6.6). The deinit trampoline is invoked
// from every `ret` inside main's body by OpDeinitStaticVars, which the
// source already emits where needed — no post-entry split is required
// here.
func (c *Context) injectMainPrologue(st *funcState) {
	if len(st.entryBlocks) == 0 {
		return
	}
	pre := st.native.NewBlock("pre_entry")
	initFn := c.funcs[c.Source.InitBuilder.IRFuncID]
	pre.NewCall(initFn)
	pre.NewBr(st.entryBlocks[0])

	// pre was appended to the tail by NewBlock; move it to the front so
	// it becomes the function's actual entry block.
	rest := append([]*lir.Block{}, st.native.Blocks[:len(st.native.Blocks)-1]...)
	st.native.Blocks = append([]*lir.Block{pre}, rest...)
}

func blockName(id int, name string) string {
	if name == "" {
		return fmt.Sprintf("b%d", id)
	}
	return fmt.Sprintf("b%d_%s", id, name)
}

// backpatchPhis replays the deferred phi2 incoming-block fixups (spec.md
// §4.6.4 step 9): each Phi2Inst was lowered with a native PHI whose
// incoming-block operands pointed at the *entry* block of its source
// predecessor at construction time; once every block has finished
// lowering (and any null-check splitting has run), the predecessor's
// true exit block is known and is substituted in.
func (c *Context) backpatchPhis(st *funcState) {
	for _, r := range c.relocations {
		if exit, ok := st.exitBlocks[r.sourceID]; ok {
			r.phi.Incs[r.index].Pred = exit
		}
	}
	c.relocations = c.relocations[:0]
}
