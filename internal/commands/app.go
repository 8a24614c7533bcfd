// Package commands implements the focusctl subcommands on top of the core
// packages. App owns the process-level inputs (environment, streams,
// terminal state) and builds every collaborator from them, so tests can
// swap the external programs for fakes.
package commands

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"focusctl/internal/account"
	"focusctl/internal/cli"
	"focusctl/internal/config"
	"focusctl/internal/kwinrc"
	"focusctl/internal/launch"
	"focusctl/internal/logind"
	"focusctl/internal/model"
	"focusctl/internal/reload"
	"focusctl/internal/session"
	"focusctl/internal/sysexec"
)

// Options are the global flags.
type Options struct {
	UID         uint32
	UIDSet      bool
	User        string
	SessionAuto bool
	DryRun      bool
	Verbose     bool
	ConfigPath  string
}

// App runs focusctl commands.
type App struct {
	Ctx       context.Context
	Env       []string // Process environment, captured once
	Stdout    io.Writer
	Stderr    io.Writer
	StdoutTTY bool
	StderrTTY bool

	// Config, when set, is used instead of loading one.
	Config *config.Config
	// Runner, when set, replaces the exec-backed runner for every external
	// program.
	Runner sysexec.Runner
	// Exec, when set, replaces launching the wrapped command.
	Exec func(launch.Plan) error
	// CheckLatest, when set, replaces the release lookup of "version --check".
	CheckLatest func(owner, repository, current string) (latest string, outdated bool, err error)
	// RunProgram, when set, replaces running the interactive editor.
	RunProgram func(tea.Model) (tea.Model, error)

	opts        Options
	globalFlags *pflag.FlagSet
	cfg         *config.Config
	log         *zap.SugaredLogger
	printer     *cli.Printer
	runner      sysexec.Runner
}

func (a *App) ctx() context.Context {
	if a.Ctx == nil {
		return context.Background()
	}
	return a.Ctx
}

// setup loads the configuration and builds the logger, printer and runner.
// Called by each command after flag parsing.
func (a *App) setup() error {
	if a.cfg != nil {
		return nil
	}
	if a.globalFlags != nil {
		a.opts.UIDSet = a.globalFlags.Changed("uid")
	}
	cfg := a.Config
	if cfg == nil {
		envPath, _ := sysexec.Lookup(a.Env, config.EnvVar)
		loaded, _, err := config.Load(a.opts.ConfigPath, envPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := cli.NewLogger(a.Stderr, a.StderrTTY, cfg.Log.Level, a.opts.Verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.printer = cli.NewPrinter(a.Stdout, a.Stderr,
		cli.DetectProfile(a.Env, a.StdoutTTY), cli.DetectProfile(a.Env, a.StderrTTY))
	a.runner = a.Runner
	if a.runner == nil {
		a.runner = &sysexec.ExecRunner{
			BaseEnv: a.Env,
			Timeout: cfg.CommandTimeout,
			Logger:  logger.Named("exec"),
		}
	}
	return nil
}

func (a *App) sessionManager() logind.Manager {
	return logind.Loginctl{Binary: a.cfg.Loginctl, Runner: a.runner}
}

func (a *App) accounts() account.Resolver {
	return account.Resolver{
		Directory: account.PasswdFile{Path: a.cfg.Passwd},
		Sessions:  a.sessionManager(),
		Identity:  account.IDCommand{Runner: a.runner},
		Logger:    a.log.Named("account"),
	}
}

func (a *App) sessions() session.Resolver {
	return session.Resolver{
		Env:         a.Env,
		Sessions:    a.sessionManager(),
		RuntimeBase: a.cfg.RuntimeBase,
		Logger:      a.log.Named("session"),
	}
}

func (a *App) dispatcher() reload.Dispatcher {
	return reload.Dispatcher{
		Tools:       a.cfg.Reload.Tools,
		Destination: a.cfg.Reload.Destination,
		ObjectPath:  a.cfg.Reload.ObjectPath,
		Method:      a.cfg.Reload.Method,
		Runner:      a.runner,
		Logger:      a.log.Named("reload"),
	}
}

// target resolves the account selected by the global flags. Failure is
// fatal for every command that uses it.
func (a *App) target() (account.Target, error) {
	req := account.Request{User: a.opts.User, Auto: a.opts.SessionAuto}
	if a.opts.UIDSet {
		uid := a.opts.UID
		req.UID = &uid
	}
	t, err := a.accounts().Resolve(a.ctx(), req)
	if err != nil {
		return account.Target{}, err
	}
	a.log.Debugw("resolved target", "user", t.Account.Username, "uid", t.Account.UID, "source", t.Source)
	return t, nil
}

// store opens the target's kwinrc. Files written for another account are
// handed over to it.
func (a *App) store(t account.Target) kwinrc.Store {
	s := kwinrc.Store{
		Path:   kwinrc.PathFor(t.Account, a.cfg.KWinrc),
		Layout: a.cfg.Layout(),
		Logger: a.log.Named("kwinrc"),
	}
	if t.ActsForOther() {
		acct := t.Account
		s.Owner = &acct
	}
	return s
}

// reload runs the reconfigure call and reports the outcome.
func (a *App) reload(env model.SessionEnvironment) {
	d := a.dispatcher()
	out := d.Reload(a.ctx(), env)
	if out.OK() {
		a.printer.Status("requested KWin reconfigure via %s", out.Via)
		return
	}
	a.log.Debugw("every reconfigure tool failed", "error", out.Err)
	a.printer.Warn("could not call qdbus/qdbus6; run manually inside session:")
	a.printer.Hint("\t%s", d.ManualCommand())
}

// mutate plans a kwinrc change, writes it, then reloads the compositor in
// the target's session. With --dry-run the change is only shown. A
// missing session never fails the command once the file is written.
func (a *App) mutate(t account.Target, plan func(kwinrc.Store) (kwinrc.Change, error), done string) error {
	s := a.store(t)
	change, err := plan(s)
	if err != nil {
		return err
	}
	if a.opts.DryRun {
		a.preview(change)
		return nil
	}
	if err := s.Apply(change); err != nil {
		return err
	}

	env, _, err := a.sessions().Resolve(a.ctx(), t.Account)
	if err != nil {
		a.log.Debugw("no session environment", "uid", t.Account.UID, "error", err)
		a.printer.Status("%s (no session env for reconfigure)", done)
		return nil
	}
	a.reload(env)
	a.printer.Status("%s", done)
	return nil
}

// preview prints a change as a diff with two lines of context.
func (a *App) preview(c kwinrc.Change) {
	if !c.Changed() {
		a.printer.Status("[dry-run] %s already up to date", c.Path)
		return
	}
	a.printer.Status("[dry-run] would write %s", c.Path)
	a.printer.Println(a.printer.Faint("--- " + c.Path))
	a.printer.Println(a.printer.Faint("+++ " + c.Path))
	for _, d := range kwinrc.WithContext(c.Diff(), 2) {
		if d.Gap {
			a.printer.Println(a.printer.Faint("@@"))
			continue
		}
		a.printer.Println(a.printer.DiffLine(d.Op, d.Prefix(), d.Text))
	}
}
