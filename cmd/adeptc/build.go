package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/adept-lang/adeptcore/internal/backend/linkline"
	"github.com/adept-lang/adeptcore/internal/backend/llvmgen"
	"github.com/adept-lang/adeptcore/internal/config"
	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// Frontend builds the IR module for the given object paths. This
// module's actual lexer/parser/inference/IR-generation stages are
// out-of-scope external collaborators (spec.md §1); an embedder wires
// this hook up to produce the *ir.Module this driver then lowers and
// links. Left nil, the build/run/dump-ir commands report that no
// frontend is registered rather than silently doing nothing.
var Frontend func(objectPaths []string) (*ir.Module, error)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [object.adept...]",
		Short: "compile objects to a native executable or object file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bindAndResolve(cmd, v)
			return runBuild(cmd.Context(), cfg, args)
		},
	}
	return cmd
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [object.adept...]",
		Short: "compile and immediately execute (-e)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bindAndResolve(cmd, v)
			cfg.Execute = true
			return runBuild(cmd.Context(), cfg, args)
		},
	}
	return cmd
}

func runBuild(ctx context.Context, cfg *config.Config, objectPaths []string) error {
	log, err := config.NewLogger(cfg)
	if err != nil {
		return errors.Wrap(err, "adeptc: building logger")
	}
	defer log.Sync()

	if Frontend == nil {
		return errors.New("adeptc: no frontend registered (lexer/parser/IR generation is out of scope for this module)")
	}

	mod, err := Frontend(objectPaths)
	if err != nil {
		return errors.Wrap(err, "adeptc: frontend")
	}

	opts := llvmgen.Options{
		DataLayout: dataLayoutFor(cfg.CrossTarget),
		PIC:        cfg.UsePIC,
		UnsafeNew:  cfg.UnsafeNew,
	}

	native, err := llvmgen.Compile(mod, opts)
	if err != nil {
		return errors.Wrap(err, "adeptc: backend lowering")
	}

	objPath := cfg.OutputPath + ".o"
	llPath := cfg.OutputPath + ".ll"
	if err := os.WriteFile(llPath, []byte(native.String()), 0o644); err != nil {
		return errors.Wrap(err, "adeptc: writing intermediate IR")
	}

	// A pass manager plus an object-file-emitting target machine is
	// native-LLVM-library territory this module's pure-Go dependency
	// does not provide; `llc` is invoked the same way a gcc-based
	// frontend invokes its backend compiler (spec.md §4.6.7 steps 1-2).
	if err := exec.CommandContext(ctx, "llc", "-filetype=obj", llPath, "-o", objPath).Run(); err != nil {
		return errors.Wrap(err, "adeptc: llc failed to emit object file")
	}
	if !cfg.KeepObject && !cfg.EmitObject {
		defer os.Remove(objPath)
	}

	info, statErr := os.Stat(objPath)
	if statErr == nil {
		log.Info("emitted object", zap.String("path", objPath), zap.String("size", humanize.Bytes(uint64(info.Size()))))
	}

	if cfg.EmitObject {
		return nil
	}

	libs := foreignLibraries(mod)
	command := linkline.Build(linkerFor(cfg.CrossTarget), cfg.LinkerPassthrough, libs, objPath, cfg.OutputPath)
	if err := linkline.Invoke(ctx, log, command); err != nil {
		return err
	}

	if cfg.Execute {
		return executeOutput(ctx, cfg)
	}
	return nil
}

// foreignLibraries collects the module's foreign-library declarations
// (spec.md §4.3) into linker-ready Libs. Kind defaults to a plain
// library; "framework:"/"file:" name prefixes select the other two
// kinds, matching how a project file would record them.
func foreignLibraries(mod *ir.Module) []linkline.Lib {
	libs := make([]linkline.Lib, 0, len(mod.ForeignLibraries))
	for _, raw := range mod.ForeignLibraries {
		switch {
		case strings.HasPrefix(raw, "framework:"):
			libs = append(libs, linkline.Lib{Kind: linkline.KindFramework, Name: strings.TrimPrefix(raw, "framework:")})
		case strings.HasPrefix(raw, "file:"):
			libs = append(libs, linkline.Lib{Kind: linkline.KindFile, Name: strings.TrimPrefix(raw, "file:")})
		default:
			libs = append(libs, linkline.Lib{Kind: linkline.KindLibrary, Name: raw})
		}
	}
	return libs
}

func dataLayoutFor(t config.CrossTarget) irtypes.DataLayout {
	if t == config.TargetWasm32 {
		return irtypes.WASM32
	}
	return irtypes.AMD64
}

func linkerFor(t config.CrossTarget) string {
	switch t {
	case config.TargetWindows:
		return "x86_64-w64-mingw32-gcc"
	case config.TargetMacOS:
		return "cc"
	default:
		return "cc"
	}
}

// executeOutput runs the just-linked executable (spec.md §4.6.7 step
// 5): a relative path gets "./" prepended on Unix; Windows rewrites
// path separators instead.
func executeOutput(ctx context.Context, cfg *config.Config) error {
	path := cfg.OutputPath
	if cfg.CrossTarget == config.TargetWindows {
		path = strings.ReplaceAll(path, "/", `\`)
	} else if !filepath.IsAbs(path) {
		path = "./" + path
	}
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
