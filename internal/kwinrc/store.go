package kwinrc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"focusctl/internal/classes"
	"focusctl/internal/focuserr"
	"focusctl/internal/ini"
	"focusctl/internal/model"
)

// Store is one account's kwinrc. Every call reads the file again; nothing is
// cached between operations because KWin itself rewrites the file.
//
// There is no lock around read-modify-write. Two concurrent writers each
// replace the whole file atomically and the last rename wins.
type Store struct {
	Path   string
	Layout Layout
	// Owner, when set, receives ownership of every file written. Used when
	// root edits another account's kwinrc.
	Owner  *model.Account
	Logger *zap.SugaredLogger
}

func (s Store) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return s.Logger
}

// Lines reads the file. A missing file is an empty document; any other
// read error is returned.
func (s Store) Lines() ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger().Debugw("kwinrc does not exist yet", "path", s.Path)
		return nil, nil
	}
	if err != nil {
		return nil, focuserr.IO(err, "read", s.Path)
	}
	return ini.SplitLines(string(data)), nil
}

// ClassesIn returns the deduplicated class list stored in lines.
func (s Store) ClassesIn(lines []string) []string {
	loc := ini.Locate(lines, s.Layout.ScriptGroup, s.Layout.ClassesKey)
	if loc.Value == "" {
		return nil
	}
	return classes.Dedupe(classes.Parse(loc.Value))
}

// EnabledIn returns the plugin flag stored in lines.
func (s Store) EnabledIn(lines []string) model.EnabledFlag {
	loc := ini.Locate(lines, s.Layout.PluginsGroup, s.Layout.EnabledKey())
	if !loc.HasValue() {
		return model.EnabledUnset
	}
	return model.FlagOf(ParseEnabled(loc.Value))
}

// Classes reads the stored class list.
func (s Store) Classes() ([]string, error) {
	lines, err := s.Lines()
	if err != nil {
		return nil, err
	}
	return s.ClassesIn(lines), nil
}

// Enabled reads the plugin flag.
func (s Store) Enabled() (model.EnabledFlag, error) {
	lines, err := s.Lines()
	if err != nil {
		return model.EnabledUnset, err
	}
	return s.EnabledIn(lines), nil
}

// PlanClasses computes the document with list stored as the class list.
func (s Store) PlanClasses(list []string) (Change, error) {
	before, err := s.Lines()
	if err != nil {
		return Change{}, err
	}
	after := ini.Set(before, s.Layout.ScriptGroup, s.Layout.ClassesKey, classes.Join(list))
	return Change{Path: s.Path, Before: before, After: after}, nil
}

// PlanEnabled computes the document with the plugin flag set.
func (s Store) PlanEnabled(enabled bool) (Change, error) {
	before, err := s.Lines()
	if err != nil {
		return Change{}, err
	}
	after := ini.Set(before, s.Layout.PluginsGroup, s.Layout.EnabledKey(), FormatEnabled(enabled))
	return Change{Path: s.Path, Before: before, After: after}, nil
}

// SetClasses stores list, which is written as given.
func (s Store) SetClasses(list []string) error {
	c, err := s.PlanClasses(list)
	if err != nil {
		return err
	}
	return s.Apply(c)
}

// SetEnabled stores the plugin flag.
func (s Store) SetEnabled(enabled bool) error {
	c, err := s.PlanEnabled(enabled)
	if err != nil {
		return err
	}
	return s.Apply(c)
}

// Apply writes a planned change, creating the parent directory if needed.
func (s Store) Apply(c Change) error {
	dir := filepath.Dir(c.Path)
	if err := s.ensureDir(dir); err != nil {
		return err
	}
	var opts []ini.WriteOption
	if s.Owner != nil {
		opts = append(opts, ini.WithOwner(int(s.Owner.UID), int(s.Owner.GID)))
	}
	if err := ini.WriteAtomic(c.Path, []byte(ini.JoinLines(c.After)), opts...); err != nil {
		return err
	}
	s.logger().Debugw("wrote kwinrc", "path", c.Path, "lines", len(c.After))
	return nil
}

func (s Store) ensureDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return focuserr.IO(err, "create directory", dir)
	}
	if s.Owner != nil {
		if err := os.Chown(dir, int(s.Owner.UID), int(s.Owner.GID)); err != nil {
			return focuserr.IO(err, "change owner of", dir)
		}
	}
	return nil
}
