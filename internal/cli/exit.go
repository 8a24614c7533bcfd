package cli

import (
	"fmt"

	"focusctl/internal/focuserr"
)

// ExitError signals a non-zero exit code without printing an extra error
// message. The command has already written its own output; main exits
// with Code and prints nothing more.
//
// Used where a non-zero exit is a valid outcome, such as "remove-class"
// of a class that is not configured or "check" finding problems.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to tell a handled exit from an error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitExecFailed is the status of "wrap" when the command cannot be
// started.
const ExitExecFailed = 127

// UsageErrorf reports bad command-line usage.
func UsageErrorf(format string, args ...any) error {
	return focuserr.InvalidInput(format, args...)
}
