// Package errors provides the error types used across caloriedash.
//
// It wraps github.com/cockroachdb/errors so callers get stack traces and
// error marks, and adds a small set of typed errors for the model and data
// layers:
//
//   - ValueError: an argument or a decoded value is invalid
//   - DimensionError: a vector or matrix has the wrong shape
//   - NotFittedError: a model is used before parameters were loaded
//   - ModelError: an operation failed with an underlying cause
//
// Startup failures are expressed with the sentinels ErrDataUnavailable and
// ErrModelUnavailable. Use DataUnavailable and ModelUnavailable to mark a
// cause so that errors.Is matches it at the top of the call chain.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors.
var (
	ErrEmptyData         = errors.New("empty data")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrNotFitted         = errors.New("model not fitted")

	// ErrDataUnavailable marks a dataset that is missing or malformed.
	ErrDataUnavailable = errors.New("dataset unavailable")
	// ErrModelUnavailable marks a model artifact that is missing, corrupt
	// or incompatible.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrSchemaMismatch marks an artifact whose features do not match the
	// feature schema.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)

// Re-exported helpers from cockroachdb/errors.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Mark   = errors.Mark
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ValueError reports an invalid value passed to an operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// DimensionError reports a shape mismatch along Axis (0 rows, 1 columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("%s: dimension mismatch in %s: expected %d, got %d", e.Op, axis, e.Expected, e.Got)
}

// Is lets errors.Is match ErrDimensionMismatch.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// NotFittedError reports use of a model that has no parameters.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: %s called before the model was fitted or loaded", e.ModelName, e.Method)
}

// Is lets errors.Is match ErrNotFitted.
func (e *NotFittedError) Is(target error) bool {
	return target == ErrNotFitted
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ModelError reports a failed operation together with its cause.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError.
func NewModelError(op, kind string, err error) error {
	return &ModelError{Op: op, Kind: kind, Err: err}
}

// DataUnavailable wraps cause with a message and marks it with
// ErrDataUnavailable.
func DataUnavailable(cause error, format string, args ...interface{}) error {
	if cause == nil {
		cause = errors.Newf(format, args...)
	} else {
		cause = errors.Wrapf(cause, format, args...)
	}
	return errors.Mark(cause, ErrDataUnavailable)
}

// ModelUnavailable wraps cause with a message and marks it with
// ErrModelUnavailable.
func ModelUnavailable(cause error, format string, args ...interface{}) error {
	if cause == nil {
		cause = errors.Newf(format, args...)
	} else {
		cause = errors.Wrapf(cause, format, args...)
	}
	return errors.Mark(cause, ErrModelUnavailable)
}

// Recover converts a panic into an error assigned to *err. It must be
// deferred directly:
//
//	func (m *Model) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
//		defer errors.Recover(&err, "Model.Predict")
//		...
//	}
//
// gonum/mat panics on shape errors, so every public entry point that
// touches matrices defers it.
func Recover(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case error:
		*err = errors.Wrapf(v, "%s: recovered from panic", op)
	default:
		*err = errors.Newf("%s: recovered from panic: %v", op, v)
	}
}
