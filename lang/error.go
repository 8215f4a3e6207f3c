package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	// Lexical errors.
	ErrUnexpectedChar     = NewError("unrecognized character")
	ErrUnterminatedString = NewError("unterminated string literal")
	ErrStringEscape       = NewError("unsupported string escape")
	ErrBareMinus          = NewError("'-' must begin a number or '->'")
	ErrBadNumber          = NewError("malformed numeric literal")

	// Parse errors.
	ErrParse           = NewError("parse error")
	ErrTrailingTokens  = NewError("unconsumed input after expression")
	ErrMemberIdent     = NewError("member access requires an identifier")
	ErrDuplicateKey    = NewError("duplicate object key")
	ErrUnclosedBracket = NewError("unclosed bracket")

	// Resolution errors.
	ErrDefinition     = NewError("definition text failed to parse")
	ErrFieldNotFound  = NewError("field not found")
	ErrNotStructured  = NewError("member access on non-object value")
	ErrBudgetExceeded = NewError("expansion pass budget exceeded")

	// Driver errors.
	ErrReadInput = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes
// and an optional source position.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	pos   *Position   // Source position, if known
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at <pos>: <err>"
	//   2. "<msg> at <pos>"
	//   3. "<msg>: <err>"
	//   4. "<msg>" / "<err>" / ""
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos != nil {
			msg += " at " + e.pos.String()
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this error was derived
// from. Derived errors share their sentinel's message.
func (e *Error) Is(target error) bool {
	te := &Error{}
	if !errors.As(target, &te) {
		return false
	}

	return e.msg == te.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		pos:   e.pos,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// WithPosition attaches a source position to the error.
// This creates a new Error instance to maintain immutability.
func (e *Error) WithPosition(pos Position) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   &pos,
		attrs: e.attrs,
	}
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Snippet renders the offending source line with a caret marking the
// error column, for drivers presenting errors to a user:
//
//	  2 | $entity..id
//	             ^
//
// It returns the empty string when err carries no position or the
// position falls outside source.
func Snippet(err error, source string) string {
	ee := &Error{}
	if !errors.As(err, &ee) {
		return ""
	}

	pos, ok := ee.Position()
	if !ok {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	var buf strings.Builder

	line := lines[pos.Line-1]

	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(pos.Line))
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := len(strconv.Itoa(pos.Line)) + 5
	if pos.Column > 0 {
		padding += pos.Column - 1
	}

	buf.WriteString(strings.Repeat(" ", padding))
	buf.WriteString("^\n")

	return buf.String()
}
