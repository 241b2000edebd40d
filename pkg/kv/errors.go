package kv

import "fmt"

// ErrorKind tags the category of a kvtext failure (spec §7).
type ErrorKind string

const (
	// Lexical covers invalid bytes, unterminated strings, bad escapes,
	// and malformed numbers.
	Lexical ErrorKind = "LEXICAL"
	// Structural covers grammar violations and exceeded decode depth.
	Structural ErrorKind = "STRUCTURAL"
	// Encode covers unserializable values, exceeded encode depth, and
	// disallowed NaN/Infinity.
	Encode ErrorKind = "ENCODE"
	// IO covers include-file open/read/close failures (KV0 file mode).
	IO ErrorKind = "IO"
	// Host covers wrong argument count/type at the exported operation
	// boundary.
	Host ErrorKind = "HOST"
)

// Error is the single error type returned by every kvtext operation. It
// carries a kind, a message, and (when applicable) the 1-based character
// offset into the input where the failure was detected.
type Error struct {
	Kind      ErrorKind
	Message   string
	Offset    int
	HasOffset bool
	Cause     error
}

// Error renders the spec §6.4 wire format: "<message> ... at character
// <offset>" when an offset applies, or the bare message otherwise.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.HasOffset {
		return fmt.Sprintf("%s ... at character %d", msg, e.Offset)
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewLexicalError builds a Lexical error with a 1-based character offset.
func NewLexicalError(message string, offset int) *Error {
	return &Error{Kind: Lexical, Message: message, Offset: offset + 1, HasOffset: true}
}

// NewStructuralError builds a Structural error with a 1-based character offset.
func NewStructuralError(message string, offset int) *Error {
	return &Error{Kind: Structural, Message: message, Offset: offset + 1, HasOffset: true}
}

// NewEncodeError builds an Encode error with no associated input offset.
func NewEncodeError(message string) *Error {
	return &Error{Kind: Encode, Message: message}
}

// NewIOError wraps a file I/O failure from the KV0 include resolver.
func NewIOError(message string, cause error) *Error {
	return &Error{Kind: IO, Message: message, Cause: cause}
}

// NewHostError builds a Host error (wrong argument count or type).
func NewHostError(message string) *Error {
	return &Error{Kind: Host, Message: message}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	kvErr, ok := err.(*Error)
	return ok && kvErr.Kind == kind
}
