package commands

import (
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"focusctl/internal/cli"
	"focusctl/internal/focuserr"
	"focusctl/internal/model"
)

func checkGithubRelease(owner, repository, current string) (string, bool, error) {
	githubTag := &latest.GithubTag{
		Owner:      owner,
		Repository: repository,
	}
	res, err := latest.Check(githubTag, current)
	if err != nil {
		return "", false, err
	}
	return res.Current, res.Outdated, nil
}

func (a *App) versionCommand() *cli.Command {
	var check bool
	return &cli.Command{
		Name:    "version",
		Summary: "Print the focusctl version",
		Usage:   "focusctl version [--check]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("version", pflag.ContinueOnError)
			fs.BoolVar(&check, "check", false, "check GitHub for a newer release (needs update.owner and update.repository)")
			return fs
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "version [--check]"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			a.printer.Printf("focusctl version %s\n", model.Version)
			if !check {
				return nil
			}

			update := a.cfg.Update
			if !update.Configured() {
				a.printer.Status("update check not configured (set update.owner and update.repository)")
				return nil
			}
			lookup := a.CheckLatest
			if lookup == nil {
				lookup = checkGithubRelease
			}
			current, outdated, err := lookup(update.Owner, update.Repository, model.Version)
			if err != nil {
				return focuserr.ExternalTool(err, "github.com/"+update.Owner+"/"+update.Repository)
			}
			if outdated {
				a.printer.Printf("\n%s A new version is available: %s (you have %s)\n", a.printer.Icon(model.IconWarning), current, model.Version)
				a.printer.Printf("Download it from https://github.com/%s/%s/releases\n", update.Owner, update.Repository)
				return nil
			}
			a.printer.Printf("%s You are using the latest version: %s\n", a.printer.Icon(model.IconOK), model.Version)
			return nil
		},
	}
}
