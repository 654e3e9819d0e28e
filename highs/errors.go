package highs

import (
	"errors"
	"fmt"
)

// Sentinel errors. API calls return them wrapped in *Error; match with
// errors.Is.
var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDimensions        = errors.New("model dimensions not consistent")
	ErrMatrixMismatch    = errors.New("matrix representations differ")
	ErrInvalidModel      = errors.New("model fails consistency checks")
	ErrUserScaleRange    = errors.New("user scale exponent out of range")
	ErrUserScaleOverflow = errors.New("user scale overflows a finite value")
	ErrUserScaleInexact  = errors.New("user scale loses precision of a finite value")
	ErrUnknownOption     = errors.New("unknown option")
	ErrUnsupported       = errors.New("unsupported by engine")
)

// Error represents a HiGHS error with context about which operation failed.
type Error struct {
	Op     string // Operation that failed (e.g., "Run", "SetIntOption")
	Status Status // HiGHS status code
	Msg    string // Additional context
	Err    error  // Underlying sentinel, if any
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("highs: %s failed: %s: %v", e.Op, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("highs: %s failed: %s", e.Op, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("highs: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("highs: %s failed with status %s", e.Op, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates a new Error if status is not OK.
// Returns nil if status is OK or Warning.
func newError(op string, status Status) error {
	if status == StatusOK || status == StatusWarning {
		return nil
	}
	return &Error{Op: op, Status: status}
}

// newErrorMsg creates a new Error with an additional message.
func newErrorMsg(op, msg string) error {
	return &Error{Op: op, Status: StatusError, Msg: msg}
}

// wrapError attaches op context to a sentinel.
func wrapError(op string, err error, format string, args ...any) error {
	return &Error{Op: op, Status: StatusError, Msg: fmt.Sprintf(format, args...), Err: err}
}
