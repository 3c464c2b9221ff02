// Package codeerr defines the error taxonomy shared by the field, matrix,
// and coder packages. The four kinds form a tagged union: callers
// type-switch on them instead of matching against package-level sentinels.
package codeerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValueError reports a parameter outside its valid range, e.g. a field
// degree outside [1,7] or K > N.
type ValueError struct {
	Param string
	Value interface{}
	Want  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: got %v, want %s", e.Param, e.Value, e.Want)
}

// NewValueError builds a ValueError.
func NewValueError(param string, value interface{}, want string) error {
	return &ValueError{Param: param, Value: value, Want: want}
}

// NoInverse reports a failed attempt to invert a zero field element or a
// singular matrix.
type NoInverse struct {
	// What names what could not be inverted: "element" or "matrix".
	What string
	// A is the offending scalar when What == "element".
	A int
}

func (e *NoInverse) Error() string {
	if e.What == "element" {
		return fmt.Sprintf("no multiplicative inverse: element %d has none", e.A)
	}
	return "no inverse: matrix is singular"
}

// NewNoInverseElement reports that element a (always 0) has no inverse.
func NewNoInverseElement(a int) error {
	return &NoInverse{What: "element", A: a}
}

// NewNoInverseMatrix reports that a matrix has zero determinant.
func NewNoInverseMatrix() error {
	return &NoInverse{What: "matrix"}
}

// IOError wraps an error surfaced from a Reader or Writer. The underlying
// cause is preserved with a stack trace via github.com/pkg/errors so that
// callers debugging a failed encode/decode can see where in the pipeline
// the read or write failed.
type IOError struct {
	Op    string
	cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.cause)
}

// Unwrap allows errors.Is/errors.As to reach the wrapped cause.
func (e *IOError) Unwrap() error {
	return e.cause
}

// WrapIO tags err as having occurred during op (e.g. "read data block",
// "write shard 3"). Returns nil if err is nil.
func WrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, cause: errors.WithStack(err)}
}

// AllocationFailure propagates an allocator failure. The core never
// triggers this itself; it exists so the taxonomy stays a closed sum type
// callers can exhaustively switch over.
type AllocationFailure struct {
	Want string
}

func (e *AllocationFailure) Error() string {
	return fmt.Sprintf("allocation failure: %s", e.Want)
}
