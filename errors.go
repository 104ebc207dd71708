package blueprint

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure conditions of a generation.
// Match them with errors.Is; they are usually wrapped in an *Error.
var (
	ErrSchemaFileNotFound  = errors.New("blueprint: schema file not found")
	ErrInvalidSchemaExport = errors.New("blueprint: schema source does not provide a usable schema")
	ErrInvalidDataInput    = errors.New("blueprint: data input is not valid JSON")
	ErrInvalidFormat       = errors.New("blueprint: unrecognized page format")
	ErrInvalidOrientation  = errors.New("blueprint: unrecognized orientation")
	ErrRender              = errors.New("blueprint: render failure")
)

// Error represents an error that occurred during a specific stage of a
// generation. It wraps a sentinel and, optionally, the underlying cause.
type Error struct {
	Op    string // stage, e.g. "schema", "shape", "output"
	Kind  error  // one of the Err* sentinels
	Cause error  // underlying error, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil && e.Kind != nil:
		return fmt.Sprintf("%v (%s): %v", e.Kind, e.Op, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("blueprint.%s: %v", e.Op, e.Cause)
	case e.Kind != nil:
		return fmt.Sprintf("%v (%s)", e.Kind, e.Op)
	}
	return fmt.Sprintf("blueprint.%s: unknown error", e.Op)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// newError creates a new *Error of the given kind with operation context.
func newError(op string, kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Cause: cause}
}

// renderError wraps cause as a render failure unless it already is one.
func renderError(op string, cause error) error {
	if errors.Is(cause, ErrRender) {
		return cause
	}
	return newError(op, ErrRender, cause)
}
