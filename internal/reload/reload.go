// Package reload asks the running compositor to re-read its configuration.
package reload

import (
	"context"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"focusctl/internal/model"
	"focusctl/internal/sysexec"
)

// Defaults for the reconfigure call.
const (
	DefaultDestination = "org.kde.KWin"
	DefaultObjectPath  = "/KWin"
	DefaultMethod      = "reconfigure"
)

// DefaultTools lists the bus-call programs in the order they are tried.
var DefaultTools = []string{"qdbus6", "qdbus-qt6", "qdbus-qt5", "qdbus"}

// Outcome is the result of one reload attempt chain.
type Outcome struct {
	Via string // Tool that succeeded; empty when every tool failed
	Err error  // Combined failures of the tools tried before giving up
}

// OK reports whether some tool succeeded.
func (o Outcome) OK() bool {
	return o.Via != ""
}

// Dispatcher tries each tool in order until one succeeds.
type Dispatcher struct {
	Tools       []string
	Destination string
	ObjectPath  string
	Method      string
	Runner      sysexec.Runner
	Logger      *zap.SugaredLogger
}

func (d Dispatcher) logger() *zap.SugaredLogger {
	if d.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return d.Logger
}

func (d Dispatcher) tools() []string {
	if len(d.Tools) == 0 {
		return DefaultTools
	}
	return d.Tools
}

func (d Dispatcher) callArgs() []string {
	dest, path, method := d.Destination, d.ObjectPath, d.Method
	if dest == "" {
		dest = DefaultDestination
	}
	if path == "" {
		path = DefaultObjectPath
	}
	if method == "" {
		method = DefaultMethod
	}
	return []string{dest, path, method}
}

// Reload runs the reconfigure call with env applied to each attempt. It
// never fails: the outcome carries what happened.
func (d Dispatcher) Reload(ctx context.Context, env model.SessionEnvironment) Outcome {
	var errs error
	for _, tool := range d.tools() {
		err := d.Runner.Run(ctx, sysexec.Command{
			Name: tool,
			Args: d.callArgs(),
			Env:  env.Environ(),
		})
		if err == nil {
			d.logger().Debugw("reconfigure requested", "tool", tool)
			return Outcome{Via: tool}
		}
		d.logger().Debugw("reconfigure attempt failed", "tool", tool, "reason", sysexec.Reason(err), "error", err)
		errs = multierr.Append(errs, err)
	}
	return Outcome{Err: errs}
}

// ManualCommand is the command a user can run inside the session when no
// tool worked.
func (d Dispatcher) ManualCommand() string {
	return "qdbus " + strings.Join(d.callArgs(), " ")
}
