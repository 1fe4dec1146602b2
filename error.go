package texmeta

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT  = "conflict"
	ECYCLE     = "cycle"
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	EMALFORMED = "malformed"
	ENOTFOUND  = "not_found"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("texmeta error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// CommandError reports a recognized LaTeX command whose argument could not
// be extracted, such as one with unbalanced braces.
type CommandError struct {
	// Command is the command name without the leading backslash.
	Command string

	// Text is the offending source, truncated to a short excerpt.
	Text string

	// Reason describes what is wrong with the argument.
	Reason string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("malformed \\%s: %s near %q", e.Command, e.Reason, e.Text)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return EMALFORMED
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return "Internal error"
}
