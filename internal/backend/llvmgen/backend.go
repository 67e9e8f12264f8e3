package llvmgen

import (
	lir "github.com/llir/llvm/ir"
	"github.com/pkg/errors"

	"github.com/adept-lang/adeptcore/internal/ir"
)

// Compile lowers src into a complete native module (spec.md §4.6): the
// module skeleton (target triple, data layout, globals, function
// signatures) comes together in NewContext, then every function body,
// including the two synthetic static-variable init/deinit trampolines,
// is filled in here.
func Compile(src *ir.Module, opts Options) (*lir.Module, error) {
	c := NewContext(src, opts)

	all := append(append([]*ir.Function{}, src.Functions...), src.InitBuilder, src.DeinitBuilder)
	for _, fn := range all {
		if err := c.LowerFunction(fn); err != nil {
			return nil, errors.Wrapf(err, "llvmgen: lowering function %q", fn.Name())
		}
	}

	return c.LLVM, nil
}
