// Package launch replaces focusctl with the wrapped application, running as
// the target account inside its desktop session.
package launch

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"focusctl/internal/focuserr"
	"focusctl/internal/model"
	"focusctl/internal/sysexec"
)

// FallbackClass is used when nothing usable remains of the command name.
const FallbackClass = "FocusApp"

// AutoClass derives a window class from a command: the ASCII letters and
// digits of its base name, first letter upper-cased, with "App" appended.
// "/usr/bin/firefox" gives "FirefoxApp".
func AutoClass(command string) string {
	base := filepath.Base(command)
	var b strings.Builder
	for _, r := range base {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if b.Len() == 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return FallbackClass
	}
	return b.String() + "App"
}

// Credential is the identity a launched process drops to.
type Credential struct {
	UID uint32
	GID uint32
}

// Plan is everything needed to start the wrapped command.
type Plan struct {
	Argv []string
	Dir  string   // Working directory: the target's home
	Env  []string // Full environment of the new process
	// Credential is set when a privileged caller launches for another
	// account.
	Credential *Credential
}

// NewPlan builds the launch of argv for acct. base is the caller's
// environment; HOME and the session variables are layered on top. When
// dropPrivileges is set the process switches to acct's uid and gid and
// also gets acct's USER and LOGNAME.
func NewPlan(base []string, acct model.Account, env model.SessionEnvironment, argv []string, dropPrivileges bool) (Plan, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return Plan{}, focuserr.InvalidInput("missing command after --")
	}
	overrides := []string{"HOME=" + acct.Home}
	var cred *Credential
	if dropPrivileges {
		cred = &Credential{UID: acct.UID, GID: acct.GID}
		overrides = append(overrides, "USER="+acct.Username, "LOGNAME="+acct.Username)
	}
	overrides = append(overrides, env.Environ()...)
	return Plan{
		Argv:       append([]string(nil), argv...),
		Dir:        acct.Home,
		Env:        sysexec.MergeEnv(base, overrides),
		Credential: cred,
	}, nil
}

// resolve finds the executable in the caller's PATH. Names containing a
// separator are used as given.
func (p Plan) resolve() (string, error) {
	name := p.Argv[0]
	if strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", focuserr.ExternalTool(err, name).WithContext("reason", sysexec.ReasonNotInstalled)
	}
	return path, nil
}

// ExitStatus carries the exit code of a child process that ran to
// completion where the process image could not be replaced.
type ExitStatus struct {
	Code int
}

func (e *ExitStatus) Error() string {
	return "command exited with status " + strconv.Itoa(e.Code)
}

// ExitCode returns the child's status.
func (e *ExitStatus) ExitCode() int {
	return e.Code
}
