// Package diag implements the driver glue of spec.md §6.2 and the error
// taxonomy of spec.md §7: a three-valued pass result (success, failure,
// alt-failure), an accumulating warnings array, source-position
// resolution, and wrapped internal/external errors.
//
// Grounded on DataDog-datadog-agent's root go.mod ambient stack
// (go.uber.org/zap for structured logging, github.com/pkg/errors for
// wrapped causes) — see SPEC_FULL.md §10.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result is the three-valued propagation code of spec.md §7: success,
// failure (non-fatal, the caller may continue walking siblings), or
// alt-failure ("a serious problem was reported and the caller must stop
// walking"). A plain Go `error` cannot distinguish the latter two, which
// is why the inference and polymorphism passes in this module return a
// Result alongside (or instead of) an error; backend lowering returns a
// plain error.
type Result int

const (
	Success Result = iota
	Failure
	AltFailure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case AltFailure:
		return "alt-failure"
	default:
		return "?"
	}
}

// Severity classifies a diagnostic per spec.md §7's taxonomy.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityUserError
	SeverityInternalError
	SeverityExternalError
)

// UserError is a source-located diagnostic: unknown identifier, type
// mismatch, polymorphism failure, duplicate import, malformed literal,
// prerequisite violation (spec.md §7). It is deliberately not wrapped
// via pkg/errors — it is not a Go-internal failure bubbling up a stack,
// it is the expected, structured output of a compiler pass.
type UserError struct {
	Severity Severity
	Message  string
	Pos      Pos
	Suggestion string // nearest-name suggestion, empty if none (spec.md §4.3)
}

// Pos is a resolved source position, as produced by a SourceResolver
// from an ast.Pos byte index.
type Pos struct {
	Object int
	Line   int
	Column int
}

func (e *UserError) Error() string {
	prefix := ""
	switch e.Severity {
	case SeverityInternalError:
		prefix = "internal-error: "
	case SeverityExternalError:
		prefix = "external-error: "
	}
	msg := fmt.Sprintf("%s%s at %d:%d: %s", prefix, objectLabel(e.Pos.Object), e.Pos.Line, e.Pos.Column, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func objectLabel(object int) string {
	if object == 0 {
		return "<object>"
	}
	return fmt.Sprintf("<object %d>", object)
}

// Wrap attaches a Go cause to an internal/external error via pkg/errors
// so the original stack trace survives the propagation chain described
// in spec.md §7 ("Propagation").
func Wrap(cause error, message string) error {
	return errors.WithMessage(cause, message)
}

// SourceResolver is the interface the core calls back into for
// compiler_panic[f]/compiler_warn[f]/compiler_print_source (spec.md
// §6.2). A default FileResolver implementation lives in resolver.go.
type SourceResolver interface {
	// Resolve turns a byte index within the given object into a
	// (line, column) pair.
	Resolve(object, byteIndex int) (line, column int)
	// SourceLine returns the full text of the line containing
	// byteIndex, for compiler_print_source-style diagnostics.
	SourceLine(object, byteIndex int) string
}

// Bag accumulates warnings and the first diagnostic reported, whatever
// its severity, for a single compilation unit (spec.md §7: "The first
// diagnostic is captured into the compiler's error slot so the driver
// can query it after return. Warnings accumulate into an array.").
type Bag struct {
	log      *zap.SugaredLogger
	Warnings []*UserError
	First    *UserError

	// WarningsAsErrors implements -Werror (SPEC_FULL.md §12): when set,
	// Finalize promotes the first warning to a user error and returns
	// Failure instead of Success.
	WarningsAsErrors bool
}

// NewBag returns an empty diagnostic bag logging through l (nil is
// accepted and treated as a no-op logger).
func NewBag(l *zap.Logger) *Bag {
	if l == nil {
		l = zap.NewNop()
	}
	return &Bag{log: l.Sugar()}
}

// Warn records a warning (spec.md §7's "Warnings" category: implicit
// conversions, deprecation, obsolete features).
func (b *Bag) Warn(e *UserError) {
	e.Severity = SeverityWarning
	b.Warnings = append(b.Warnings, e)
	b.log.Debugw("warning", "message", e.Message, "line", e.Pos.Line, "column", e.Pos.Column)
}

// Error records a user/internal/external error. Only the first is kept
// as Bag.First, matching spec.md §7's single error-slot semantics; later
// ones are still logged for -v visibility.
func (b *Bag) Error(e *UserError) {
	if b.First == nil {
		b.First = e
	}
	b.log.Errorw(e.Message, "severity", e.Severity, "line", e.Pos.Line, "column", e.Pos.Column)
}

// Finalize implements -Werror: if WarningsAsErrors is set and at least
// one warning was recorded, the first warning is promoted and Failure
// is returned; otherwise Success, unless an error was already recorded.
func (b *Bag) Finalize() Result {
	if b.First != nil {
		return Failure
	}
	if b.WarningsAsErrors && len(b.Warnings) > 0 {
		promoted := *b.Warnings[0]
		promoted.Severity = SeverityUserError
		b.First = &promoted
		return Failure
	}
	return Success
}
