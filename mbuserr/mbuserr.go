// Package mbuserr implements the single error type used across every layer
// of the M-Bus decoder: an ordered stack of labelled contexts, a Kind, and
// an optional underlying cause.
package mbuserr

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies why a parse failed, per the decoder's error model.
type Kind int

const (
	// Framing covers bad start bytes, length-echo mismatches, missing tail
	// bytes and checksum failures at the link layer.
	Framing Kind = iota
	// Structural covers short input, chain-length overruns, reserved CI
	// values and reserved VIF/DIB codes.
	Structural
	// Value covers field values that parse but fall outside the ranges the
	// spec permits (dates, BCD nibbles, padding bits).
	Value
	// Unsupported covers recognised-but-unimplemented wire features: the
	// compact frame, Type M date-time, encrypted security modes, malformed
	// LVAR length bytes, non-uppercase manufacturer codes.
	Unsupported
	// Assertion covers implementation-side guards that should never fire
	// on well-formed input, e.g. a caller requesting a 10-byte BCD number.
	Assertion
)

func (k Kind) String() string {
	switch k {
	case Framing:
		return "framing"
	case Structural:
		return "structural"
	case Value:
		return "value"
	case Unsupported:
		return "unsupported"
	case Assertion:
		return "assertion"
	default:
		return "unknown"
	}
}

// Error is the decoder's single error type. Context is ordered
// most-specific first: the first entry is the innermost label pushed by
// the failing leaf parser, the last is the outermost layer that called it.
type Error struct {
	kind    Kind
	context []string
	cause   error
}

// New starts a fresh error with the given kind and innermost context
// label. Callers higher up the stack add more context with WithContext.
func New(kind Kind, label string) *Error {
	return &Error{kind: kind, context: []string{label}}
}

// Wrap starts a fresh error around an external cause (e.g. a UTF-8 decode
// failure), attaching a stack trace to it via github.com/pkg/errors so the
// original failure site isn't lost once contexts are layered on top.
func Wrap(kind Kind, label string, cause error) *Error {
	return &Error{kind: kind, context: []string{label}, cause: errors.WithStack(cause)}
}

// WithContext returns a new error with label pushed as the new outermost
// (least-specific) context, leaving e unmodified. This is how a caller
// layers context as the parse stack unwinds, e.g. "invalid BCD nibble" ->
// "final byte" -> "signed N byte BCD number" -> "frame record".
func (e *Error) WithContext(label string) *Error {
	ctx := make([]string, 0, len(e.context)+1)
	ctx = append(ctx, e.context...)
	ctx = append(ctx, label)
	return &Error{kind: e.kind, context: ctx, cause: e.cause}
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Context returns the ordered context stack, innermost first. Tests and
// diagnostics inspect Context()[0] for the precise failure label.
func (e *Error) Context() []string {
	out := make([]string, len(e.context))
	copy(out, e.context)
	return out
}

// Label is a convenience accessor for the innermost context, the label
// the test suite and diagnostics care most about.
func (e *Error) Label() string {
	if len(e.context) == 0 {
		return ""
	}
	return e.context[0]
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.kind.String())
	for i := len(e.context) - 1; i >= 0; i-- {
		b.WriteString(": invalid ")
		b.WriteString(e.context[i])
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// HasLabel reports whether label appears anywhere in the context stack.
func (e *Error) HasLabel(label string) bool {
	for _, c := range e.context {
		if c == label {
			return true
		}
	}
	return false
}
