package commands

import (
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"focusctl/internal/account"
	"focusctl/internal/classes"
	"focusctl/internal/cli"
	"focusctl/internal/focuserr"
	"focusctl/internal/launch"
	"focusctl/internal/model"
)

const wrapUsage = "wrap <ClassName>|--auto [--dry-run] [--no-enable] [--no-reconfigure] -- <command...>"

type wrapOptions struct {
	auto          bool
	dryRun        bool
	noEnable      bool
	noReconfigure bool
}

func (a *App) wrapCommand() *cli.Command {
	var opts wrapOptions
	return &cli.Command{
		Name:     "wrap",
		Summary:  "Set up focus forcing for a class, then run a command",
		Usage:    "focusctl " + wrapUsage,
		KeepDash: true,
		Description: `Make sure the script is enabled and the class is configured, reconfigure
KWin, then replace focusctl with the command. The command runs with HOME
and the working directory set to the target's home and the session
environment applied. Run as root for another user, it drops to that
user's uid and gid first.

With --auto the class is derived from the command name: "firefox" becomes
"FirefoxApp".`,
		Examples: []cli.Example{
			{Command: "focusctl wrap Firefox -- firefox --new-window"},
			{Description: "Preview what would happen", Command: "sudo focusctl --session-auto wrap --auto --dry-run -- /usr/bin/kate"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("wrap", pflag.ContinueOnError)
			fs.BoolVar(&opts.auto, "auto", false, "derive the class from the command name")
			fs.BoolVar(&opts.dryRun, "dry-run", false, "print the plan without changing anything")
			fs.BoolVar(&opts.noEnable, "no-enable", false, "do not enable the script")
			fs.BoolVar(&opts.noReconfigure, "no-reconfigure", false, "do not ask KWin to reconfigure")
			return fs
		},
		Run: func(args []string) error {
			return a.runWrap(args, opts)
		},
	}
}

// splitDash separates wrap's own arguments from the wrapped command line.
func splitDash(args []string) (left, command []string) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil
	}
	return args[:i], args[i+1:]
}

func (a *App) runWrap(args []string, opts wrapOptions) error {
	left, command := splitDash(args)
	if len(command) == 0 {
		return cli.UsageErrorf("wrap requires '-- <command...>'\nusage: focusctl %s", wrapUsage)
	}

	var class string
	switch {
	case opts.auto && len(left) > 0:
		return cli.UsageErrorf("unexpected argument %q with --auto", left[0])
	case opts.auto:
		class = launch.AutoClass(command[0])
	case len(left) == 1:
		class = strings.TrimSpace(left[0])
	case len(left) == 0:
		return cli.UsageErrorf("wrap requires <ClassName> or --auto")
	default:
		return cli.UsageErrorf("unexpected argument %q", left[1])
	}
	if classes.Key(class) == "" {
		return focuserr.InvalidInput("class is empty")
	}

	if err := a.setup(); err != nil {
		return err
	}
	t, err := a.target()
	if err != nil {
		return err
	}
	env, _, err := a.sessions().Resolve(a.ctx(), t.Account)
	if err != nil {
		a.printer.Error("failed to resolve session env for uid %d (%s): %s",
			t.Account.UID, t.Account.Username, focuserr.Describe(err))
		a.printer.Hint("hint: target uid must have an active graphical session (check %s).",
			a.sessions().RuntimeDir(t.Account.UID))
		return &cli.ExitError{Code: 1}
	}

	if opts.dryRun || a.opts.DryRun {
		a.printer.Status("[dry-run] target user: %s (uid=%d)", t.Account.Username, t.Account.UID)
		a.printer.Status("[dry-run] class: %s", class)
		a.printer.Status("[dry-run] session env: %s", strings.Join(env.Environ(), " "))
		a.printer.Status("[dry-run] exec: %q", command)
		return nil
	}

	if err := a.ensureIntegration(t, env, class, opts); err != nil {
		return err
	}

	plan, err := launch.NewPlan(a.Env, t.Account, env, command, t.ActsForOther())
	if err != nil {
		return err
	}
	a.log.Debugw("launching", "argv", plan.Argv, "dir", plan.Dir, "drop_privileges", plan.Credential != nil)

	exec := a.Exec
	if exec == nil {
		exec = launch.Plan.Exec
	}
	err = exec(plan)
	if err == nil {
		return nil
	}
	if _, ok := ExitCode(err); ok {
		return err
	}
	a.printer.Error("exec failed: %s", focuserr.Describe(err))
	return &cli.ExitError{Code: cli.ExitExecFailed}
}

// ensureIntegration enables the script (best effort), adds the class if it
// is missing and reconfigures KWin.
func (a *App) ensureIntegration(t account.Target, env model.SessionEnvironment, class string, opts wrapOptions) error {
	s := a.store(t)
	if !opts.noEnable {
		if err := s.SetEnabled(true); err != nil {
			a.log.Warnw("could not enable the focus helper script", "path", s.Path, "error", err)
		}
	}

	current, err := s.Classes()
	if err != nil {
		return err
	}
	if updated, added := classes.Add(current, class); added {
		if err := s.SetClasses(updated); err != nil {
			return err
		}
		a.log.Debugw("added class", "class", class)
	}

	if !opts.noReconfigure {
		a.reload(env)
	}
	return nil
}
