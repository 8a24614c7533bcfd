package commands

import (
	"focusctl/internal/cli"
	"focusctl/internal/kwinrc"
	"focusctl/internal/model"
)

func (a *App) toggleCommand(name, summary string, enabled bool) *cli.Command {
	return &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   "focusctl " + name,
		Run: func(args []string) error {
			if err := requireArgs(args, 0, name); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			done := "disabled " + a.cfg.ScriptID
			if enabled {
				done = "enabled " + a.cfg.ScriptID
			}
			return a.mutate(t, func(s kwinrc.Store) (kwinrc.Change, error) {
				return s.PlanEnabled(enabled)
			}, done)
		},
	}
}

func (a *App) enableCommand() *cli.Command {
	return a.toggleCommand("enable", "Enable the focus helper script", true)
}

func (a *App) disableCommand() *cli.Command {
	return a.toggleCommand("disable", "Disable the focus helper script", false)
}

func (a *App) enabledCommand() *cli.Command {
	return &cli.Command{
		Name:    "enabled",
		Summary: "Print whether the script is enabled (true, false or (unset))",
		Usage:   "focusctl enabled",
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "enabled"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			flag, err := a.store(t).Enabled()
			if err != nil {
				return err
			}
			a.printer.Println(flag.String())
			return nil
		},
	}
}

func (a *App) reconfigureCommand() *cli.Command {
	return &cli.Command{
		Name:    "reconfigure",
		Summary: "Ask the running KWin to reload its configuration",
		Usage:   "focusctl reconfigure",
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "reconfigure"); err != nil {
				return err
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
				a.log.Debugw("reconfiguring without a session environment", "error", err)
				env = model.SessionEnvironment{}
			}
			if a.opts.DryRun {
				a.printer.Status("[dry-run] would call %s", a.dispatcher().ManualCommand())
				return nil
			}
			a.reload(env)
			return nil
		},
	}
}
