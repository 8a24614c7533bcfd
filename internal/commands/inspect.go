package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"focusctl/internal/cli"
	"focusctl/internal/focuserr"
	"focusctl/internal/kwinrc"
	"focusctl/internal/model"
)

func (a *App) showCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Show the managed kwinrc settings in context",
		Usage:   "focusctl show",
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "show"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			s := a.store(t)
			lines, err := s.Lines()
			if err != nil {
				return err
			}
			a.printer.Println(a.printer.Faint("# " + s.Path))
			if len(lines) == 0 {
				a.printer.Status("%s is empty or does not exist yet", s.Path)
				return nil
			}
			for _, e := range s.Excerpts(lines) {
				a.printExcerpt(e)
			}
			return nil
		},
	}
}

func (a *App) printExcerpt(e kwinrc.Excerpt) {
	a.printer.Println()
	if !e.Found {
		a.printer.Println(a.printer.Icon(model.IconSkipped) + " " + a.printer.Faint(fmt.Sprintf("[%s] not present", e.Section)))
		return
	}
	lines := e.Context.Lines()
	highlighted := strings.Split(strings.TrimSuffix(a.printer.Highlight(strings.Join(lines, "\n")+"\n", "ini"), "\n"), "\n")
	if len(highlighted) != len(lines) {
		highlighted = lines
	}
	first := e.Context.FirstLine()
	for i, text := range highlighted {
		n := first + i
		marker := " "
		if n == e.Context.LineNumber {
			marker = model.IconSelected
		}
		a.printer.Println(fmt.Sprintf("%s %s %s", marker, a.printer.Faint(fmt.Sprintf("%4d", n)), text))
	}
}

func (a *App) checkCommand() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Summary: "Report problems with the managed kwinrc settings",
		Usage:   "focusctl check",
		Description: `Report repeated sections or keys (only the last one takes effect),
duplicate or empty classes and an unset plugin flag. Exits 1 when
problems are found.`,
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "check"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			r, err := a.store(t).Check()
			if err != nil {
				return err
			}
			a.printer.Println(a.printer.Faint("# " + r.Path))
			a.printer.Printf("classes: %d, enabled: %s\n", len(r.Classes), r.Enabled)
			if r.OK() {
				a.printer.Println(a.printer.Icon(model.IconOK) + " no problems found")
				return nil
			}
			for _, p := range r.Problems {
				a.printer.Println(a.printer.Icon(model.IconWarning) + " " + p.Error())
			}
			a.log.Debugw("kwinrc check failed", "error", r.Err())
			return &cli.ExitError{Code: 1}
		},
	}
}

type sessionReport struct {
	User     string                    `json:"user"`
	UID      uint32                    `json:"uid"`
	GID      uint32                    `json:"gid"`
	Home     string                    `json:"home"`
	Source   string                    `json:"source"`
	KWinrc   string                    `json:"kwinrc"`
	Strategy string                    `json:"strategy,omitempty"`
	Session  *model.SessionEnvironment `json:"session,omitempty"`
	Error    string                    `json:"session_error,omitempty"`
}

func (a *App) sessionCommand() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:    "session",
		Summary: "Print the resolved target account and session environment",
		Usage:   "focusctl session [--json]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("session", pflag.ContinueOnError)
			fs.BoolVar(&asJSON, "json", false, "print as JSON")
			return fs
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "session [--json]"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			r := sessionReport{
				User:   t.Account.Username,
				UID:    t.Account.UID,
				GID:    t.Account.GID,
				Home:   t.Account.Home,
				Source: string(t.Source),
				KWinrc: a.store(t).Path,
			}
			env, strategy, err := a.sessions().Resolve(a.ctx(), t.Account)
			if err != nil {
				r.Error = focuserr.Describe(err)
			} else {
				r.Strategy = string(strategy)
				r.Session = &env
			}

			if asJSON {
				enc := json.NewEncoder(a.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			a.printer.Printf("user:     %s (uid=%d gid=%d, from %s)\n", r.User, r.UID, r.GID, r.Source)
			a.printer.Printf("home:     %s\n", r.Home)
			a.printer.Printf("kwinrc:   %s\n", r.KWinrc)
			if r.Session == nil {
				a.printer.Printf("session:  %s %s\n", a.printer.Icon(model.IconError), r.Error)
				return nil
			}
			a.printer.Printf("session:  %s\n", r.Strategy)
			for _, kv := range r.Session.Environ() {
				a.printer.Printf("  %s\n", kv)
			}
			return nil
		},
	}
}
