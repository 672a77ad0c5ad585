// Package errors defines the decode-time error taxonomy of §7: every kind
// a Decode can raise, each carrying the line number and line text where
// available, formatted the way the teacher's own errors package formats a
// syntax error — plain text by default, a full stack frame under "%+v".
package errors

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/tehw0lf/toon-go/printer"
)

// Kind tags which of §7's error kinds a DecodeError is.
type Kind int

const (
	// KindIndentation is a tab in leading whitespace, or a leading-space
	// count that is not a multiple of indent_width, under strict mode.
	KindIndentation Kind = iota
	// KindInvalidHeader is a malformed array header line.
	KindInvalidHeader
	// KindCountMismatch is an element or row count that disagrees with a
	// header's declared length or field count, under strict mode.
	KindCountMismatch
	// KindInvalidEscape is an unknown escape sequence or a trailing
	// backslash inside a quoted string.
	KindInvalidEscape
	// KindBlankInsideArray is a blank line inside an array body, under
	// strict mode.
	KindBlankInsideArray
	// KindPathConflict is a key-folding expansion collision, under
	// strict mode.
	KindPathConflict
)

func (k Kind) String() string {
	switch k {
	case KindIndentation:
		return "IndentationError"
	case KindInvalidHeader:
		return "InvalidHeader"
	case KindCountMismatch:
		return "CountMismatch"
	case KindInvalidEscape:
		return "InvalidEscape"
	case KindBlankInsideArray:
		return "BlankInsideArray"
	case KindPathConflict:
		return "PathConflict"
	default:
		return "DecodeError"
	}
}

// DecodeError is the one error type every decode failure surfaces as
// (§6, §7): a message, an optional 1-based line number and line text, and
// optional expected/actual fields for mismatches.
type DecodeError struct {
	Kind     Kind
	Message  string
	Line     int
	LineText string
	Column   int
	Expected string
	Actual   string
	frame    xerrors.Frame
}

// New constructs a DecodeError, capturing the caller's frame the way the
// teacher's ErrSyntax does.
func New(kind Kind, line int, lineText, message string) *DecodeError {
	return &DecodeError{
		Kind:     kind,
		Message:  message,
		Line:     line,
		LineText: lineText,
		frame:    xerrors.Caller(1),
	}
}

// WithExpectedActual attaches the expected/actual pair for a
// CountMismatch-style diagnostic and returns e for chaining.
func (e *DecodeError) WithExpectedActual(expected, actual string) *DecodeError {
	e.Expected = expected
	e.Actual = actual
	return e
}

// WithColumn attaches a 1-based column for the caret the pretty printer
// draws under the offending line.
func (e *DecodeError) WithColumn(col int) *DecodeError {
	e.Column = col
	return e
}

func (e *DecodeError) Error() string {
	pos := ""
	if e.Line > 0 {
		pos = fmt.Sprintf("line %d: ", e.Line)
	}
	msg := fmt.Sprintf("%s: %s%s", e.Kind, pos, e.Message)
	if e.Expected != "" || e.Actual != "" {
		msg = fmt.Sprintf("%s (expected %s, got %s)", msg, e.Expected, e.Actual)
	}
	if e.LineText == "" {
		return msg
	}
	snippet := printer.Snippet(e.LineText, e.Column)
	return msg + "\n" + snippet
}

// FormatError implements xerrors.Formatter so "%+v" prints a stack frame
// in addition to the message, mirroring the teacher's syntaxError.
func (e *DecodeError) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}

func (e *DecodeError) Format(f fmt.State, verb rune) {
	xerrors.FormatError(e, f, verb)
}

// Wrapf wraps err with a formatted message and a stack frame, for a
// failure that is not a DecodeError but still deserves a frame when
// inspected with "%+v".
func Wrapf(err error, msg string, args ...interface{}) error {
	return xerrors.Errorf(msg+": %w", append(args, err)...)
}
