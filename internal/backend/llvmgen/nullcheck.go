package llvmgen

import (
	lir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irvalue"
)

// nullCheckFailDecl lazily declares the runtime trampoline a failed
// null check calls into, matching the shape of a panic handler: it
// never returns, so the landing block ends in `unreachable` rather than
// a branch back into the function (spec.md §4.6.5).
func (c *Context) nullCheckFailDecl() *lir.Func {
	if c.nullFailFn != nil {
		return c.nullFailFn
	}
	fn := c.LLVM.NewFunc("__adept_null_check_fail", types.Void,
		lir.NewParam("line", types.I32),
		lir.NewParam("column", types.I32),
	)
	fn.Linkage = enum.LinkageExternal
	c.nullFailFn = fn
	return fn
}

// landingBlock lazily creates the function-wide shared null-check
// failure block: every null check across the function branches into
// the same block, feeding its own call-site line/column into two PHI
// nodes rather than each check growing its own copy of the failure
// path (spec.md §4.6.5: "landing-block synthesis with PHI incomings for
// line/column").
func (c *Context) landingBlock(st *funcState) *lir.Block {
	if st.nullFail != nil {
		return st.nullFail
	}
	b := st.native.NewBlock("null_check_fail")
	line := b.NewPhi()
	line.Typ = types.I32
	col := b.NewPhi()
	col.Typ = types.I32
	b.NewCall(c.nullCheckFailDecl(), line, col)
	b.NewUnreachable()

	st.nullFail = b
	st.nullFailLine = line
	st.nullFailCol = col
	return b
}

// emitNullCheck implements the per-access null check of spec.md §4.6.5:
// when the instruction's source position (pos) was recorded, compare
// ptr against null and branch to the shared failure landing block on
// failure, continuing in a fresh block otherwise. Instructions whose
// Pos was never recorded (HasPos() false) skip the check entirely,
// matching the spec's "when line and column metadata are present"
// qualifier.
func (c *Context) emitNullCheck(st *funcState, cur *lir.Block, ptr *irvalue.Value, pos ir.SourcePos) *lir.Block {
	if !pos.HasPos() {
		return cur
	}

	native := c.lowerValue(st, ptr)
	pt, ok := native.Type().(*types.PointerType)
	if !ok {
		return cur
	}

	isNull := cur.NewICmp(enum.IPredEQ, native, constant.NewNull(pt))
	cont := st.native.NewBlock("null_check_ok")
	fail := c.landingBlock(st)
	cur.NewCondBr(isNull, fail, cont)

	st.nullFailLine.Incs = append(st.nullFailLine.Incs, lir.NewIncoming(constI32(pos.Line), cur))
	st.nullFailCol.Incs = append(st.nullFailCol.Incs, lir.NewIncoming(constI32(pos.Column), cur))

	return cont
}

func constI32(v int) value.Value {
	return constant.NewInt(types.I32, int64(v))
}
