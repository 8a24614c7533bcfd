// Package sysexec is the boundary to external programs. Everything focusctl
// learns from the system (loginctl, id, the bus tools) goes through Runner so
// that the rest of the code can be tested against fakes.
package sysexec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	goerrors "github.com/agilira/go-errors"
	"go.uber.org/zap"

	"focusctl/internal/focuserr"
)

// Command is one invocation of an external program.
type Command struct {
	Name   string    // Program name, looked up in PATH
	Args   []string  // Arguments, without the program name
	Env    []string  // KEY=value overrides applied on top of the base environment
	Stdout io.Writer // Where stdout goes for Run; nil discards
}

// String renders the command line for logs and hints.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes external programs.
type Runner interface {
	// Output runs the command and returns its stdout. Stderr is discarded.
	Output(ctx context.Context, cmd Command) ([]byte, error)
	// Run runs the command for its exit status only.
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// BaseEnv is the environment every command starts from. The process
	// environment is captured once in main and passed in here; nil gives
	// children an empty environment plus their overrides.
	BaseEnv []string
	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

func (r *ExecRunner) logger() *zap.SugaredLogger {
	if r.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return r.Logger
}

func (r *ExecRunner) command(ctx context.Context, c Command) (*exec.Cmd, context.Context, context.CancelFunc) {
	cancel := context.CancelFunc(func() {})
	if r.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
	}
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Env = MergeEnv(r.BaseEnv, c.Env)
	return cmd, ctx, cancel
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, c Command) ([]byte, error) {
	cmd, ctx, cancel := r.command(ctx, c)
	defer cancel()

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	r.logger().Debugw("ran external command", "command", c.String(), "error", err)
	if err != nil {
		return nil, classify(ctx, err, c.Name)
	}
	return stdout.Bytes(), nil
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd, ctx, cancel := r.command(ctx, c)
	defer cancel()

	cmd.Stdout = c.Stdout
	err := cmd.Run()
	r.logger().Debugw("ran external command", "command", c.String(), "error", err)
	if err != nil {
		return classify(ctx, err, c.Name)
	}
	return nil
}

// Failure reasons recorded in the "reason" context of external tool errors.
const (
	ReasonNotInstalled = "not_installed"
	ReasonTimeout      = "timeout"
	ReasonExitStatus   = "exit_status"
	ReasonOther        = "other"
)

// Reason returns the failure reason recorded on an external tool error, or
// "" for any other error.
func Reason(err error) string {
	var coded *goerrors.Error
	if !errors.As(err, &coded) || coded.Context == nil {
		return ""
	}
	reason, _ := coded.Context["reason"].(string)
	return reason
}

// IsNotInstalled reports whether err means the program could not be found.
func IsNotInstalled(err error) bool {
	return Reason(err) == ReasonNotInstalled
}

func classify(ctx context.Context, err error, program string) error {
	var exitErr *exec.ExitError
	reason := ReasonOther
	switch {
	case errors.Is(err, exec.ErrNotFound):
		reason = ReasonNotInstalled
	case ctx.Err() != nil:
		reason = ReasonTimeout
	case errors.As(err, &exitErr):
		reason = ReasonExitStatus
	}
	return focuserr.ExternalTool(err, program).WithContext("reason", reason)
}

// MergeEnv returns base with every key in overrides replaced or appended.
// Later overrides win over earlier ones.
func MergeEnv(base, overrides []string) []string {
	if len(overrides) == 0 {
		return append([]string(nil), base...)
	}
	replaced := make(map[string]bool, len(overrides))
	for _, kv := range overrides {
		replaced[envKey(kv)] = true
	}
	var env []string
	for _, kv := range base {
		// Filter out the keys we override, keeping others (TERM, USER, etc.)
		if replaced[envKey(kv)] {
			continue
		}
		env = append(env, kv)
	}
	seen := make(map[string]int, len(overrides))
	for _, kv := range overrides {
		k := envKey(kv)
		if i, ok := seen[k]; ok {
			env[i] = kv
			continue
		}
		seen[k] = len(env)
		env = append(env, kv)
	}
	return env
}

func envKey(kv string) string {
	if i := strings.IndexByte(kv, '='); i >= 0 {
		return kv[:i]
	}
	return kv
}

// Lookup returns the value of key in an environment list and whether it was
// present.
func Lookup(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		if envKey(env[i]) == key {
			return strings.TrimPrefix(env[i], key+"="), true
		}
	}
	return "", false
}

// ExitFailure builds the error a Runner reports for a non-zero exit. Fakes
// use it to script failures.
func ExitFailure(program string) error {
	return focuserr.ExternalTool(errors.New("exit status 1"), program).WithContext("reason", ReasonExitStatus)
}

func notInstalled(program string) error {
	return focuserr.ExternalTool(exec.ErrNotFound, program).WithContext("reason", ReasonNotInstalled)
}
