package commands

import (
	"errors"

	"focusctl/internal/cli"
	"focusctl/internal/launch"
)

// ExitCode returns the exit status carried by err when err is one of
// focusctl's own exit results: an already reported *cli.ExitError or a
// wrapped command's *launch.ExitStatus. Exit codes of helper programs
// wrapped inside other errors do not count; those errors still need to
// be printed.
func ExitCode(err error) (int, bool) {
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		return exit.Code, true
	}
	var status *launch.ExitStatus
	if errors.As(err, &status) {
		return status.Code, true
	}
	return 0, false
}
