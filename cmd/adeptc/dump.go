package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adept-lang/adeptcore/internal/backend/llvmgen"
	"github.com/adept-lang/adeptcore/internal/config"
)

func newDumpIRCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-ir [object.adept...]",
		Short: "lower to native IR and print it without linking (spec.md §6.6 debug dumps)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bindAndResolve(cmd, v)
			return runDumpIR(cfg, args)
		},
	}
}

func runDumpIR(cfg *config.Config, objectPaths []string) error {
	if Frontend == nil {
		return errors.New("adeptc: no frontend registered (lexer/parser/IR generation is out of scope for this module)")
	}

	mod, err := Frontend(objectPaths)
	if err != nil {
		return errors.Wrap(err, "adeptc: frontend")
	}

	native, err := llvmgen.Compile(mod, llvmgen.Options{
		DataLayout: dataLayoutFor(cfg.CrossTarget),
		PIC:        cfg.UsePIC,
		UnsafeNew:  cfg.UnsafeNew,
	})
	if err != nil {
		return errors.Wrap(err, "adeptc: backend lowering")
	}

	fmt.Println(native.String())
	return nil
}

// newDumpASTCmd is a stub: AST dumping requires the parser, an
// out-of-scope external collaborator (spec.md §1), so this command
// exists to document the CLI surface's shape without pretending to
// implement a stage this module doesn't own.
func newDumpASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-ast [object.adept...]",
		Short: "print the inferred AST (requires an external parser frontend)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("adeptc: dump-ast requires a registered AST frontend, which this module does not provide")
		},
	}
}
