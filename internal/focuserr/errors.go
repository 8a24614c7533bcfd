// Package focuserr defines the coded errors shared by every focusctl package.
package focuserr

import (
	stderrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for focusctl
const (
	CodeNotFound     = "FOCUS_NOT_FOUND"     // account, uid, session or class absent
	CodeInvalidInput = "FOCUS_INVALID_INPUT" // empty class, malformed uid, bad arguments
	CodeIO           = "FOCUS_IO"            // file read, write or rename failure
	CodeExternalTool = "FOCUS_EXTERNAL_TOOL" // subprocess missing or exited non-zero
	CodeConfig       = "FOCUS_CONFIG"        // tool configuration invalid or unreadable
)

// NotFound reports that a referenced account, session or class does not exist.
func NotFound(format string, args ...any) *errors.Error {
	msg := fmt.Sprintf(format, args...)
	return errors.New(CodeNotFound, msg).
		WithUserMessage(msg).
		WithSeverity("error")
}

// InvalidInput reports bad caller input.
func InvalidInput(format string, args ...any) *errors.Error {
	msg := fmt.Sprintf(format, args...)
	return errors.New(CodeInvalidInput, msg).
		WithUserMessage(msg).
		WithSeverity("error")
}

// IO wraps a filesystem failure on path.
func IO(cause error, op, path string) *errors.Error {
	msg := fmt.Sprintf("%s %s: %v", op, path, cause)
	return errors.Wrap(cause, CodeIO, msg).
		WithUserMessage(msg).
		WithContext("path", path).
		WithSeverity("error")
}

// ExternalTool wraps the failure of an external program.
func ExternalTool(cause error, program string) *errors.Error {
	msg := fmt.Sprintf("%s: %v", program, cause)
	return errors.Wrap(cause, CodeExternalTool, msg).
		WithUserMessage(msg).
		WithContext("program", program).
		WithSeverity("warning")
}

// Config reports an invalid tool configuration.
func Config(cause error, format string, args ...any) *errors.Error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
		return errors.Wrap(cause, CodeConfig, msg).
			WithUserMessage(msg).
			WithSeverity("error")
	}
	return errors.New(CodeConfig, msg).
		WithUserMessage(msg).
		WithSeverity("error")
}

// HasCode reports whether the first coded error in err's chain carries code.
func HasCode(err error, code string) bool {
	var coded *errors.Error
	if !stderrors.As(err, &coded) {
		return false
	}
	return string(coded.ErrorCode()) == code
}

// Describe returns the human-readable message for err. Coded errors
// contribute their user message; anything else falls back to Error().
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var coded *errors.Error
	if stderrors.As(err, &coded) && coded.UserMessage() != "" {
		return coded.UserMessage()
	}
	return err.Error()
}
