// Package lerr defines the interpreter's error taxonomy: a small set of
// abstract kinds (not Go type names) attached to an underlying wrapped
// error, so that callers up at the REPL boundary can distinguish "the
// user's program is ill-formed" from "something unexpected happened" by
// inspecting a Kind rather than parsing a message.
package lerr

import (
	"errors"
	"fmt"
)

// Kind tags the category of failure, matching the error taxonomy: lex
// errors, unbalanced/unexpected-EOF parses, ill-formed special forms,
// unbound lookups, arity mismatches, wrong-variant operands, and file
// I/O failures from load.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindSyntax
	KindUnboundSymbol
	KindArity
	KindType
	KindIO
	// KindInternal marks a failure that is not a property of the user's
	// program — a defect in the interpreter itself. Every other Kind
	// prints with the "Error:" prefix at the REPL; KindInternal prints
	// with "Internal Error:".
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindParse:
		return "ParseError"
	case KindSyntax:
		return "SyntaxError"
	case KindUnboundSymbol:
		return "UnboundSymbol"
	case KindArity:
		return "ArityError"
	case KindType:
		return "TypeError"
	case KindIO:
		return "IOError"
	case KindInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Error is the interpreter's single error type: a Kind plus a wrapped
// underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind to an existing error without discarding it.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error; otherwise it reports KindInternal, since an un-tagged error is
// by definition not one of the user-facing kinds the interpreter knows
// how to name.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}
