package commands

import (
	"github.com/spf13/pflag"

	"focusctl/internal/cli"
)

// Root builds the focusctl command tree.
func (a *App) Root() *cli.Command {
	return &cli.Command{
		Name:   "focusctl",
		Output: a.Stderr,
		Description: `focusctl manages the forced-focus window classes of the KWin focus helper
script. It edits kwinrc in place, toggles the script's plugin flag and asks
the running KWin to reconfigure.

Run as root, it can act on behalf of the user owning the active graphical
session. Matching is case-insensitive and ignores a trailing ".desktop";
stored names keep your spelling.`,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("focusctl", pflag.ContinueOnError)
			fs.Uint32Var(&a.opts.UID, "uid", 0, "target this uid's KWin config and session")
			fs.StringVar(&a.opts.User, "user", "", "target this user's KWin config and session")
			fs.BoolVar(&a.opts.SessionAuto, "session-auto", false, "target the user of the active graphical session (root only)")
			fs.BoolVar(&a.opts.DryRun, "dry-run", false, "show the kwinrc change instead of writing it")
			fs.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log debug details to stderr")
			fs.StringVar(&a.opts.ConfigPath, "config", "", "focusctl config file (default $FOCUSCTL_CONFIG)")
			a.globalFlags = fs
			return fs
		},
		Subcommands: []*cli.Command{
			a.listClassesCommand(),
			a.listKeysCommand(),
			a.addClassCommand(),
			a.removeClassCommand(),
			a.setClassesCommand(),
			a.clearCommand(),
			a.enableCommand(),
			a.disableCommand(),
			a.enabledCommand(),
			a.reconfigureCommand(),
			a.wrapCommand(),
			a.showCommand(),
			a.checkCommand(),
			a.sessionCommand(),
			a.uiCommand(),
			a.versionCommand(),
		},
		Examples: []cli.Example{
			{Description: "Force focus for Firefox windows", Command: "focusctl add-class firefox"},
			{Description: "Edit the active desktop user's settings from a root shell", Command: "sudo focusctl --session-auto list-classes"},
			{Description: "Launch an app with focus forcing set up first", Command: "focusctl wrap --auto -- firefox --new-window"},
		},
	}
}
