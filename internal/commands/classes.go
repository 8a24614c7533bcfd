package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"focusctl/internal/classes"
	"focusctl/internal/cli"
	"focusctl/internal/focuserr"
	"focusctl/internal/kwinrc"
)

const noClasses = "(no forced classes configured)"

func requireArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return cli.UsageErrorf("usage: focusctl %s", usage)
	}
	return nil
}

func (a *App) readClasses() ([]string, kwinrc.Store, error) {
	t, err := a.target()
	if err != nil {
		return nil, kwinrc.Store{}, err
	}
	s := a.store(t)
	list, err := s.Classes()
	return list, s, err
}

func (a *App) listClassesCommand() *cli.Command {
	var keys bool
	return &cli.Command{
		Name:    "list-classes",
		Summary: "Print the forced-focus classes",
		Usage:   "focusctl list-classes [--keys|-k]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("list-classes", pflag.ContinueOnError)
			fs.BoolVarP(&keys, "keys", "k", false, "also show the normalized match key of each class")
			return fs
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "list-classes [--keys|-k]"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			list, _, err := a.readClasses()
			if err != nil {
				return err
			}
			if keys {
				a.printKeys(list)
				return nil
			}
			if len(list) == 0 {
				a.printer.Println(noClasses)
				return nil
			}
			for _, c := range list {
				a.printer.Println(c)
			}
			return nil
		},
	}
}

func (a *App) listKeysCommand() *cli.Command {
	return &cli.Command{
		Name:    "list-keys",
		Summary: "Print each class with its normalized match key",
		Usage:   "focusctl list-keys",
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "list-keys"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			list, _, err := a.readClasses()
			if err != nil {
				return err
			}
			a.printKeys(list)
			return nil
		},
	}
}

// printKeys prints "stored -> key" with the stored names in a 24 column
// field.
func (a *App) printKeys(list []string) {
	if len(list) == 0 {
		a.printer.Println(noClasses)
		return
	}
	for _, c := range list {
		a.printer.Println(fmt.Sprintf("%-24s -> %s", c, a.printer.Key(classes.Key(c))))
	}
}

func (a *App) addClassCommand() *cli.Command {
	return &cli.Command{
		Name:    "add-class",
		Summary: "Add a window class to the forced-focus list",
		Usage:   "focusctl add-class <window-class>",
		Run: func(args []string) error {
			if err := requireArgs(args, 1, "add-class <window-class>"); err != nil {
				return err
			}
			if classes.Key(args[0]) == "" {
				return focuserr.InvalidInput("class is empty")
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			current, err := a.store(t).Classes()
			if err != nil {
				return err
			}
			updated, changed := classes.Add(current, args[0])
			if !changed {
				a.printer.Status("class already present (case-insensitive / .desktop-insensitive)")
				return nil
			}
			return a.mutate(t, func(s kwinrc.Store) (kwinrc.Change, error) {
				return s.PlanClasses(updated)
			}, "added class")
		},
	}
}

func (a *App) removeClassCommand() *cli.Command {
	return &cli.Command{
		Name:    "remove-class",
		Summary: "Remove a window class from the forced-focus list",
		Usage:   "focusctl remove-class <window-class>",
		Run: func(args []string) error {
			if err := requireArgs(args, 1, "remove-class <window-class>"); err != nil {
				return err
			}
			if classes.Key(args[0]) == "" {
				return focuserr.InvalidInput("class is empty")
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			current, err := a.store(t).Classes()
			if err != nil {
				return err
			}
			updated, removed := classes.Remove(current, args[0])
			if !removed {
				a.printer.Error("class not found (case-insensitive / .desktop-insensitive)")
				return &cli.ExitError{Code: 1}
			}
			return a.mutate(t, func(s kwinrc.Store) (kwinrc.Change, error) {
				return s.PlanClasses(updated)
			}, "removed class")
		},
	}
}

func (a *App) setClassesCommand() *cli.Command {
	return &cli.Command{
		Name:    "set-classes",
		Summary: "Replace the forced-focus list",
		Usage:   "focusctl set-classes <c1;c2;c3>",
		Description: `Replace the forced-focus list. Semicolons, commas and whitespace all
separate classes; entries with the same normalized key collapse to the
first one.`,
		Examples: []cli.Example{
			{Command: `focusctl set-classes "Firefox;org.kde.konsole.desktop"`},
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 1, "set-classes <c1;c2;c3>"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			list := classes.Dedupe(classes.Parse(args[0]))
			return a.mutate(t, func(s kwinrc.Store) (kwinrc.Change, error) {
				return s.PlanClasses(list)
			}, "set classes")
		},
	}
}

func (a *App) clearCommand() *cli.Command {
	return &cli.Command{
		Name:    "clear",
		Summary: "Remove every forced-focus class",
		Usage:   "focusctl clear",
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "clear"); err != nil {
				return err
			}
			if err := a.setup(); err != nil {
				return err
			}
			t, err := a.target()
			if err != nil {
				return err
			}
			return a.mutate(t, func(s kwinrc.Store) (kwinrc.Change, error) {
				return s.PlanClasses(nil)
			}, "cleared classes")
		},
	}
}
