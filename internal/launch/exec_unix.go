//go:build unix

package launch

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"focusctl/internal/focuserr"
)

// execFunc replaces the current process image. Tests override it.
var execFunc = unix.Exec

// Exec replaces focusctl with the planned command. It only returns on
// failure.
func (p Plan) Exec() error {
	path, err := p.resolve()
	if err != nil {
		return err
	}

	// The credential calls below act on the calling thread; exec must
	// happen on that same thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if p.Credential != nil {
		if err := unix.Setgroups([]int{}); err != nil {
			return focuserr.IO(err, "drop supplementary groups for", path)
		}
		if err := unix.Setgid(int(p.Credential.GID)); err != nil {
			return focuserr.IO(err, "setgid for", path)
		}
		if err := unix.Setuid(int(p.Credential.UID)); err != nil {
			return focuserr.IO(err, "setuid for", path)
		}
	}
	if err := os.Chdir(p.Dir); err != nil {
		return focuserr.IO(err, "chdir", p.Dir)
	}
	if err := execFunc(path, p.Argv, p.Env); err != nil {
		return focuserr.IO(err, "exec", path)
	}
	return nil
}
