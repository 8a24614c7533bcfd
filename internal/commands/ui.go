package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"focusctl/internal/cli"
	"focusctl/internal/focuserr"
	"focusctl/internal/tui"
)

func (a *App) uiCommand() *cli.Command {
	return &cli.Command{
		Name:    "ui",
		Summary: "Edit the forced classes interactively",
		Description: "Opens a full-screen editor for the class list and the enabled flag.\n" +
			"Every edit is written immediately; KWin is asked to reconfigure once\n" +
			"when the editor closes.",
		Usage: "focusctl ui",
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "ui"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			if a.opts.DryRun {
				return cli.UsageErrorf("ui does not support --dry-run")
			}
			if a.RunProgram == nil && !a.StdoutTTY {
				return cli.UsageErrorf("ui needs a terminal")
			}
			t, err := a.target()
			if err != nil {
				return err
			}

			s := a.store(t)
			run := a.RunProgram
			if run == nil {
				run = func(m tea.Model) (tea.Model, error) {
					return tea.NewProgram(m, tea.WithAltScreen()).Run()
				}
			}
			final, err := run(tui.InitialModel(s, s.Path, t.Account.Username))
			if err != nil {
				return focuserr.ExternalTool(err, "ui")
			}

			m, ok := final.(tui.AppModel)
			if !ok || !m.Modified {
				return nil
			}
			env, _, err := a.sessions().Resolve(a.ctx(), t.Account)
			if err != nil {
				a.log.Debugw("no session environment", "uid", t.Account.UID, "error", err)
				a.printer.Status("saved %s (no session env for reconfigure)", s.Path)
				return nil
			}
			a.reload(env)
			a.printer.Status("saved %s", s.Path)
			return nil
		},
	}
}
