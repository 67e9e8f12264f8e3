// Package config implements the CLI surface and project-config layer
// (spec.md §6.4, SPEC_FULL.md §10.3): github.com/spf13/cobra for the
// command tree, github.com/spf13/pflag for flag parsing, and
// github.com/spf13/viper so the same settings are also readable from an
// adept.toml/adept.yaml project file, with flags taking precedence over
// file config over built-in defaults.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// OptLevel is the compiler's four-valued optimization enum (spec.md
// §4.6.1 step 2).
type OptLevel int

const (
	OptNone OptLevel = iota
	OptLess
	OptDefault
	OptAggressive
	OptNothing // -Onothing: skip the pass manager entirely
)

func ParseOptLevel(s string) OptLevel {
	switch strings.ToLower(s) {
	case "0":
		return OptNone
	case "1":
		return OptLess
	case "2":
		return OptDefault
	case "3":
		return OptAggressive
	case "nothing":
		return OptNothing
	default:
		return OptDefault
	}
}

// CrossTarget selects the cross-compile triple family (spec.md §6.4's
// --windows/--macos/--wasm32).
type CrossTarget int

const (
	TargetHost CrossTarget = iota
	TargetWindows
	TargetMacOS
	TargetWasm32
)

// Config is the resolved CLI/project configuration (spec.md §6.4) plus
// the supplemented first-class fields SPEC_FULL.md §12 calls for.
type Config struct {
	OutputPath string
	OptLevel   OptLevel

	EmitObject bool // -c
	KeepObject bool // -j / --no-remove-object
	Execute    bool // -e

	WarningsAsErrors bool // -Werror
	NullChecksEnabled bool
	UsePIC            bool
	UseLibm           bool

	CrossTarget CrossTarget
	EntryPoint  string

	LibrarySearchPaths []string
	LinkerPassthrough  []string

	// UnsafeNew disables malloc's default zero-fill (spec.md §4.6.5,
	// SPEC_FULL.md §12).
	UnsafeNew bool

	Verbose bool
	Quiet   bool
}

// Default returns the built-in defaults, the lowest-precedence layer
// under viper's file-config and pflag's CLI-flag layers.
func Default() *Config {
	return &Config{
		OutputPath:        "a.out",
		OptLevel:          OptDefault,
		NullChecksEnabled: true,
		CrossTarget:       TargetHost,
		EntryPoint:        "main",
	}
}

// RegisterFlags registers the CLI flags on fs and binds them into v
// (spec.md §6.4); FromViper then resolves the Config, where a flag's
// value always wins over the project file, which always wins over
// Default().
func RegisterFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.StringP("output", "o", "a.out", "output name/path")
	fs.String("opt", "default", "optimization level: 0,1,2,3,nothing")
	fs.BoolP("emit-object", "c", false, "stop after emitting the object file")
	fs.BoolP("keep-object", "j", false, "keep the intermediate object file")
	fs.BoolP("execute", "e", false, "run the resulting executable")
	fs.Bool("werror", false, "elevate the first warning to an error")
	fs.Bool("no-null-checks", false, "disable runtime null checks")
	fs.Bool("pic", false, "emit position-independent code")
	fs.Bool("no-libm", false, "do not link against libm")
	fs.Bool("windows", false, "cross-compile for Windows")
	fs.Bool("macos", false, "cross-compile for macOS")
	fs.Bool("wasm32", false, "cross-compile for wasm32")
	fs.String("entry", "main", "entry-point symbol")
	fs.StringSlice("library-path", nil, "additional library search path")
	fs.StringSlice("link", nil, "linker pass-through argument")
	fs.Bool("unsafe-new", false, "disable default zero-initialization of new/malloc")
	fs.BoolP("verbose", "v", false, "debug-level logging")
	fs.Bool("quiet", false, "warn-level-only logging")

	_ = v.BindPFlags(fs)
}

// FromViper resolves a Config from v (CLI flags already bound via
// RegisterFlags, merged with any adept.toml/adept.yaml project file v
// was configured to read).
func FromViper(v *viper.Viper) *Config {
	cfg := Default()

	cfg.OutputPath = v.GetString("output")
	cfg.OptLevel = ParseOptLevel(v.GetString("opt"))
	cfg.EmitObject = v.GetBool("emit-object")
	cfg.KeepObject = v.GetBool("keep-object")
	cfg.Execute = v.GetBool("execute")
	cfg.WarningsAsErrors = v.GetBool("werror")
	cfg.NullChecksEnabled = !v.GetBool("no-null-checks")
	cfg.UsePIC = v.GetBool("pic")
	cfg.UseLibm = !v.GetBool("no-libm")
	cfg.EntryPoint = v.GetString("entry")
	cfg.LibrarySearchPaths = v.GetStringSlice("library-path")
	cfg.LinkerPassthrough = v.GetStringSlice("link")
	cfg.UnsafeNew = v.GetBool("unsafe-new")
	cfg.Verbose = v.GetBool("verbose")
	cfg.Quiet = v.GetBool("quiet")

	switch {
	case v.GetBool("windows"):
		cfg.CrossTarget = TargetWindows
	case v.GetBool("macos"):
		cfg.CrossTarget = TargetMacOS
	case v.GetBool("wasm32"):
		cfg.CrossTarget = TargetWasm32
	default:
		cfg.CrossTarget = TargetHost
	}

	return cfg
}

// NewLogger builds the root zap.Logger for cfg (SPEC_FULL.md §10.1):
// info by default, debug under -v, warn under --quiet.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	switch {
	case cfg.Verbose:
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case cfg.Quiet:
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	default:
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.TimeKey = ""
	return zcfg.Build()
}

// NewViper returns a viper instance pre-configured to read an
// adept.toml or adept.yaml project file from the current directory,
// falling back silently to CLI flags/defaults if neither exists.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("adept")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // absence is not an error: CLI flags/defaults still apply
	return v
}
