package mr

import (
	"github.com/pkg/errors"
)

// Kind classifies failures of the numeric core.
type Kind uint8

const (
	// KindUnknown is reported for errors that did not originate in this package
	KindUnknown Kind = iota
	// KindType is for inputs of an unsupported shape (neither Track Array nor Probe List)
	KindType
	// KindValue is for unrecognized configuration literals and violated input orderings
	KindValue
	// KindMathDomain is for interpolation over fewer than 2 samples and log-domain violations
	KindMathDomain
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindValue:
		return "value"
	case KindMathDomain:
		return "math domain"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every operation of the core.
type Error struct {
	Kind Kind
	// Op is the name of the operation which failed (e.g. "interp")
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Kind.String() + " error: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause makes Error compatible with errors.Cause
func (e *Error) Cause() error {
	return e.Err
}

func newError(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  errors.Errorf(format, args...),
	}
}

// KindOf returns the Kind of the first *Error found in err's chain.
// KindUnknown is returned for nil and foreign errors.
func KindOf(err error) Kind {
	var mrErr *Error
	if errors.As(err, &mrErr) {
		return mrErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
