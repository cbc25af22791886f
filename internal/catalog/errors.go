package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a point lookup misses.
var ErrNotFound = errors.New("record not found")

// Error codes surfaced to GraphQL callers via extensions.code.
const (
	CodeBadUserInput = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// UserInputError is a caller-visible validation failure: a uniqueness
// violation, a dangling author reference, or a missing update/delete target.
// The message is safe to show to the caller.
type UserInputError struct {
	Field   string // schema field the error is about, e.g. "title"
	Message string
}

func (e *UserInputError) Error() string {
	return e.Message
}

// NewUserInputError builds a UserInputError for the given field.
func NewUserInputError(field, format string, args ...interface{}) *UserInputError {
	return &UserInputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InfrastructureError wraps a connection-level failure talking to the backing
// store. Its message is a fixed string so internal details never leak; the
// cause stays available through Unwrap for logging.
type InfrastructureError struct {
	Cause error
}

func (e *InfrastructureError) Error() string {
	return "backing store unavailable"
}

func (e *InfrastructureError) Unwrap() error {
	return e.Cause
}

// IsUserInput reports whether err is (or wraps) a UserInputError.
func IsUserInput(err error) bool {
	var uie *UserInputError
	return errors.As(err, &uie)
}

// IsInfrastructure reports whether err is (or wraps) an InfrastructureError.
func IsInfrastructure(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}
