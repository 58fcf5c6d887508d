package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // Go to value tree
	PhaseDecode Phase = "decode" // value tree to Go
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch    Kind = "type_mismatch"
	KindKeyNotFound     Kind = "key_not_found"
	KindValueNotFound   Kind = "value_not_found"
	KindValueExhausted  Kind = "value_exhausted"
	KindNumericOverflow Kind = "numeric_overflow"
	KindUnsupported     Kind = "unsupported"
	KindDataCorrupted   Kind = "data_corrupted"
	KindInvalidInput    Kind = "invalid_input"
	KindHookFailed      Kind = "hook_failed" // user Marshaler/Unmarshaler returned a plain error
)

// Error is the structured error type returned by every encode and decode call
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Key      string
	Expected string
	Found    string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(FormatPath(e.Path))
	}

	if e.Expected != "" || e.Found != "" {
		b.WriteString(": ")
		if e.Expected != "" && e.Found != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
			b.WriteString(", found ")
			b.WriteString(e.Found)
		} else if e.Expected != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		} else {
			b.WriteString("found ")
			b.WriteString(e.Found)
		}
	}

	if e.Detail != "" {
		if e.Expected != "" || e.Found != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kind must match; Phase must
// match when the target sets one.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && t.Phase != e.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// FormatPath joins coding path steps; index steps ("[3]") attach without a dot.
func FormatPath(path []string) string {
	var b strings.Builder
	for i, step := range path {
		if i > 0 && !strings.HasPrefix(step, "[") {
			b.WriteByte('.')
		}
		b.WriteString(step)
	}
	return b.String()
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the coding path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Key sets the coding key involved
func (b *Builder) Key(k string) *Builder {
	b.err.Key = k
	return b
}

// Expected sets the expected type or kind
func (b *Builder) Expected(t string) *Builder {
	b.err.Expected = t
	return b
}

// Found sets the type or kind actually present
func (b *Builder) Found(t string) *Builder {
	b.err.Found = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, expected, found string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		Expected: expected,
		Found:    found,
	}
}

// KeyNotFound creates an error for a required key absent from an object
func KeyNotFound(phase Phase, path []string, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindKeyNotFound,
		Path:   path,
		Key:    key,
		Detail: fmt.Sprintf("no value associated with key %q", key),
	}
}

// ValueNotFound creates an error for a null where a non-optional value was expected
func ValueNotFound(phase Phase, path []string, expected string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindValueNotFound,
		Path:     path,
		Expected: expected,
		Found:    "null",
	}
}

// ValueExhausted creates an error for reading past the end of an array
func ValueExhausted(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueExhausted,
		Path:   path,
		Detail: fmt.Sprintf("index %d past end (length %d)", index, length),
		Value:  index,
	}
}

// NumericOverflow creates an error for a number outside the target width,
// signedness or integrality
func NumericOverflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNumericOverflow,
		Path:     path,
		Expected: target,
		Detail:   fmt.Sprintf("value %v does not fit %s", value, target),
		Value:    value,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Detail: what,
	}
}

// DataCorrupted creates an error for a value of the right kind whose content
// cannot be interpreted (a malformed date string, for example)
func DataCorrupted(phase Phase, path []string, expected string, cause error) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindDataCorrupted,
		Path:     path,
		Expected: expected,
		Cause:    cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, path []string, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Path:   path,
		Detail: detail,
		Cause:  cause,
	}
}
