// Package linkline builds and invokes the system linker command line
// (spec.md §4.6.7 step 4): the user's pass-through linker options, each
// foreign library rendered per its kind, the object path, and the
// output path.
package linkline

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Kind distinguishes how a foreign library dependency is rendered onto
// the linker command line (spec.md §4.6.7 step 4).
type Kind int

const (
	// KindLibrary renders as -lname, after sanitizing non-alphanumeric
	// characters out of name.
	KindLibrary Kind = iota
	// KindFramework renders as -framework "Name" (macOS).
	KindFramework
	// KindFile renders as a quoted path, passed through to the linker
	// verbatim.
	KindFile
)

// Lib is one foreign library dependency collected while lowering a
// module (spec.md §4.3's foreign-library declarations).
type Lib struct {
	Kind Kind
	Name string
}

// sanitizeLibraryName strips everything but letters, digits, and
// underscore so an attacker-controlled or malformed library name can
// never inject extra linker arguments through -lname (spec.md §4.6.7:
// "sanitising non-alphanumerics from library kinds").
func sanitizeLibraryName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Render renders one library dependency as it should appear on the
// linker command line.
func (l Lib) Render() string {
	switch l.Kind {
	case KindFramework:
		return `-framework "` + l.Name + `"`
	case KindFile:
		return `"` + l.Name + `"`
	default:
		return "-l" + sanitizeLibraryName(l.Name)
	}
}

// Command is an assembled, not-yet-invoked linker command line (spec.md
// §4.6.7 step 4). Its exact shape depends on platform and cross-compile
// target, but the concatenation order is fixed: user options, then
// libraries, then the object path, then the output path.
type Command struct {
	Linker string
	Args   []string
}

// Build concatenates the user's linker pass-through options (spec.md
// §6.4's linker pass-through arguments), each foreign library per its
// Kind, the compiled object path, and the output path into a Command.
func Build(linker string, userOpts []string, libs []Lib, objPath, outPath string) Command {
	args := make([]string, 0, len(userOpts)+len(libs)+3)
	args = append(args, userOpts...)
	for _, lib := range libs {
		args = append(args, lib.Render())
	}
	args = append(args, objPath, "-o", outPath)
	return Command{Linker: linker, Args: args}
}

// Invoke runs cmd's linker, surfacing any failure as an external error
// (spec.md §6.5: "External errors — linker invocation failed") with its
// combined stdout/stderr attached for diagnostics.
func Invoke(ctx context.Context, log *zap.Logger, cmd Command) error {
	log.Debug("invoking linker", zap.String("linker", cmd.Linker), zap.Strings("args", cmd.Args))

	c := exec.CommandContext(ctx, cmd.Linker, cmd.Args...)
	output, err := c.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "linkline: %s failed: %s", cmd.Linker, string(output))
	}
	return nil
}
