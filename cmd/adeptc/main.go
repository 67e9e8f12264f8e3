// Command adeptc is the driver binary: it wires configuration, logging,
// diagnostics, backend lowering, and linking together behind the CLI
// surface spec.md §6.4 describes. The lexer, parser, and IR generator
// are out-of-scope external collaborators per spec.md §1 — this binary
// consumes an already-built *ir.Module via the Frontend hook (build.go)
// rather than parsing source itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/adept-lang/adeptcore/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	fs := pflag.NewFlagSet("adeptc", pflag.ExitOnError)
	config.RegisterFlags(fs, v)

	root := &cobra.Command{
		Use:   "adeptc [object.adept...]",
		Short: "the ahead-of-time compiler driver",
	}
	root.PersistentFlags().AddFlagSet(fs)

	root.AddCommand(newBuildCmd(v))
	root.AddCommand(newRunCmd(v))
	root.AddCommand(newDumpIRCmd(v))
	root.AddCommand(newDumpASTCmd())

	return root
}

// bindAndResolve merges cmd's own flags into v (so per-command flags
// still reach viper) and resolves the final Config (spec.md §10.3:
// flags over project file over defaults).
func bindAndResolve(cmd *cobra.Command, v *viper.Viper) *config.Config {
	_ = v.BindPFlags(cmd.Flags())
	return config.FromViper(v)
}
