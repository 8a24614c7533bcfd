// Package session works out the environment a child process needs to talk
// to a user's running desktop session.
package session

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"focusctl/internal/focuserr"
	"focusctl/internal/logind"
	"focusctl/internal/model"
	"focusctl/internal/sysexec"
)

const (
	// DefaultRuntimeBase holds one runtime directory per logged-in uid.
	DefaultRuntimeBase = "/run/user"
	// DefaultWaylandDisplay is used when no socket is found in the runtime
	// directory of a wayland session.
	DefaultWaylandDisplay = "wayland-0"
	// DefaultX11Display is the first local X display.
	DefaultX11Display = ":0"

	waylandSocketPrefix = "wayland-"
)

// Strategy names how an environment was obtained.
type Strategy string

const (
	StrategyInherited Strategy = "inherited"
	StrategyDerived   Strategy = "derived"
)

// Resolver implements session environment resolution.
type Resolver struct {
	// Env is the environment of the running process, captured once at
	// startup. Nothing here reads os.Getenv.
	Env         []string
	Sessions    logind.Manager
	RuntimeBase string
	Logger      *zap.SugaredLogger
}

func (r Resolver) logger() *zap.SugaredLogger {
	if r.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return r.Logger
}

func (r Resolver) runtimeBase() string {
	if r.RuntimeBase == "" {
		return DefaultRuntimeBase
	}
	return r.RuntimeBase
}

// RuntimeDir is the per-uid runtime directory looked for on disk.
func (r Resolver) RuntimeDir(uid uint32) string {
	return filepath.Join(r.runtimeBase(), strconv.FormatUint(uint64(uid), 10))
}

// Resolve returns the session environment for acct. When the running
// process already carries a runtime directory or bus address those values
// are reused as-is; otherwise the environment is derived from the uid's
// active graphical session.
func (r Resolver) Resolve(ctx context.Context, acct model.Account) (model.SessionEnvironment, Strategy, error) {
	if env, ok := r.Inherited(); ok {
		r.logger().Debugw("using session environment of the running process", "runtime_dir", env.RuntimeDir)
		return env, StrategyInherited, nil
	}
	env, err := r.Derive(ctx, acct)
	if err != nil {
		return model.SessionEnvironment{}, "", err
	}
	return env, StrategyDerived, nil
}

// Inherited reads the session variables of the running process. It
// reports false unless XDG_RUNTIME_DIR or DBUS_SESSION_BUS_ADDRESS is set
// and non-empty.
func (r Resolver) Inherited() (model.SessionEnvironment, bool) {
	get := func(key string) string {
		v, _ := sysexec.Lookup(r.Env, key)
		return v
	}
	env := model.SessionEnvironment{
		RuntimeDir:     get(model.EnvRuntimeDir),
		BusAddress:     get(model.EnvBusAddress),
		Type:           model.SessionType(get(model.EnvSessionType)),
		Display:        get(model.EnvDisplay),
		WaylandDisplay: get(model.EnvWaylandDisplay),
		XAuthority:     get(model.EnvXAuthority),
	}
	if env.RuntimeDir == "" && env.BusAddress == "" {
		return model.SessionEnvironment{}, false
	}
	return env, true
}

// Derive reconstructs the environment of acct's graphical session. The
// runtime directory must exist and a qualifying session must be listed;
// every other field is best effort and left empty when unknown.
func (r Resolver) Derive(ctx context.Context, acct model.Account) (model.SessionEnvironment, error) {
	rundir := r.RuntimeDir(acct.UID)
	if fi, err := os.Stat(rundir); err != nil || !fi.IsDir() {
		return model.SessionEnvironment{}, focuserr.NotFound("%s does not exist (no user session?)", rundir)
	}

	finder := logind.Finder{Manager: r.Sessions, Logger: r.Logger}
	s, err := finder.GraphicalFor(ctx, acct.UID)
	if err != nil {
		return model.SessionEnvironment{}, err
	}

	env := model.SessionEnvironment{
		RuntimeDir: finder.Property(ctx, s.ID, logind.PropRuntimeDir),
		BusAddress: finder.Property(ctx, s.ID, logind.PropBusAddress),
		Type:       s.Type,
	}
	if env.RuntimeDir == "" {
		env.RuntimeDir = rundir
	}
	if env.BusAddress == "" {
		bus := filepath.Join(rundir, "bus")
		if _, err := os.Stat(bus); err == nil {
			env.BusAddress = "unix:path=" + bus
		}
	}

	switch s.Type {
	case model.SessionWayland:
		env.WaylandDisplay = WaylandSocket(rundir)
	case model.SessionX11:
		env.Display = DefaultX11Display
		env.XAuthority = filepath.Join(acct.Home, ".Xauthority")
	}

	r.logger().Debugw("derived session environment", "session", s.ID, "uid", acct.UID, "type", s.Type)
	return env, nil
}

// WaylandSocket returns the first wayland socket name in dir, in directory
// order, or DefaultWaylandDisplay when there is none.
func WaylandSocket(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DefaultWaylandDisplay
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, waylandSocketPrefix) && !strings.HasSuffix(name, ".lock") {
			return name
		}
	}
	return DefaultWaylandDisplay
}
