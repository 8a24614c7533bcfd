//go:build !unix

package launch

import (
	"errors"
	"os"
	"os/exec"

	"focusctl/internal/focuserr"
)

// Exec runs the planned command as a child and reports its exit status
// through *ExitStatus. Credentials are not switched on these platforms.
func (p Plan) Exec() error {
	path, err := p.resolve()
	if err != nil {
		return err
	}
	cmd := exec.Command(path, p.Argv[1:]...)
	cmd.Dir = p.Dir
	cmd.Env = p.Env
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return &ExitStatus{Code: 0}
	case errors.As(err, &exitErr):
		return &ExitStatus{Code: exitErr.ExitCode()}
	default:
		return focuserr.IO(err, "exec", path)
	}
}
