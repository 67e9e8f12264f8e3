package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperFlagOverridesDefault(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	RegisterFlags(fs, v)

	require.NoError(t, fs.Parse([]string{"-o", "myprog", "--opt", "3", "--unsafe-new"}))

	cfg := FromViper(v)
	assert.Equal(t, "myprog", cfg.OutputPath)
	assert.Equal(t, OptAggressive, cfg.OptLevel)
	assert.True(t, cfg.UnsafeNew)
	assert.True(t, cfg.NullChecksEnabled, "null checks default on unless explicitly disabled")
}

func TestFromViperNoNullChecksFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	RegisterFlags(fs, v)

	require.NoError(t, fs.Parse([]string{"--no-null-checks"}))

	cfg := FromViper(v)
	assert.False(t, cfg.NullChecksEnabled)
}

func TestCrossTargetPrecedence(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()
	RegisterFlags(fs, v)

	require.NoError(t, fs.Parse([]string{"--macos"}))

	cfg := FromViper(v)
	assert.Equal(t, TargetMacOS, cfg.CrossTarget)
}

func TestParseOptLevel(t *testing.T) {
	assert.Equal(t, OptNone, ParseOptLevel("0"))
	assert.Equal(t, OptNothing, ParseOptLevel("nothing"))
	assert.Equal(t, OptDefault, ParseOptLevel("bogus"))
}
