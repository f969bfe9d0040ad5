package errors

import (
	"fmt"
)

// New returns a new error. Arguments are handled in the manner of
// fmt.Sprintf.
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ContextError annotates an error with a short description of the operation
// that failed. Contexts stack as the error propagates up the call chain, so
// the final message reads like a breadcrumb trail.
type ContextError struct {
	Context string
	Err     error
}

func (err ContextError) Error() string {
	return fmt.Sprintf("%s: %s", err.Context, err.Err)
}

// WithContext wraps err with a short verb phrase describing the failed
// operation (e.g. "parse config").
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

// RootCause returns the innermost error in a chain of ContextErrors.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ctxErr.Err
	}
}

// FriendlyError is an error whose message is meant to be shown to end users
// verbatim, without any additional wrapping by the CLI error handler.
type FriendlyError struct {
	message string
}

// NewFriendlyError creates a FriendlyError. Arguments are handled in the
// manner of fmt.Sprintf.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{message: fmt.Sprintf(format, args...)}
}

func (err FriendlyError) Error() string {
	return err.message
}

// FriendlyMessage implements the interface checked by GetPrintableMessage.
func (err FriendlyError) FriendlyMessage() string {
	return err.message
}

type friendlier interface {
	FriendlyMessage() string
}

// GetPrintableMessage returns the message that should be shown to users for
// the given error. Friendly errors are printed as-is, anything else gets the
// full context chain.
func GetPrintableMessage(err error) string {
	if friendly, ok := err.(friendlier); ok {
		return friendly.FriendlyMessage()
	}
	if friendly, ok := RootCause(err).(friendlier); ok {
		return friendly.FriendlyMessage()
	}
	return err.Error()
}
