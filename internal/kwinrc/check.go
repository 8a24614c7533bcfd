package kwinrc

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"focusctl/internal/classes"
	"focusctl/internal/ini"
	"focusctl/internal/model"
)

// Problem is one finding of a health check. Line is 1-based; 0 means the
// finding is not tied to a line.
type Problem struct {
	Line    int
	Message string
}

func (p Problem) Error() string {
	if p.Line == 0 {
		return p.Message
	}
	return fmt.Sprintf("line %d: %s", p.Line, p.Message)
}

// Report is the result of checking a kwinrc document.
type Report struct {
	Path     string
	Classes  []string
	Enabled  model.EnabledFlag
	Problems []Problem
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Err combines every problem into one error, nil when there are none.
func (r Report) Err() error {
	var err error
	for _, p := range r.Problems {
		err = multierr.Append(err, p)
	}
	return err
}

// Check reads the file and reports problems with the managed settings.
func (s Store) Check() (Report, error) {
	lines, err := s.Lines()
	if err != nil {
		return Report{}, err
	}
	return s.CheckLines(lines), nil
}

// CheckLines reports repeated managed sections and keys (only the last
// one takes effect), duplicate or empty class entries in the effective
// value, and an unset plugin flag.
func (s Store) CheckLines(lines []string) Report {
	r := Report{
		Path:    s.Path,
		Classes: s.ClassesIn(lines),
		Enabled: s.EnabledIn(lines),
	}
	add := func(index int, format string, args ...any) {
		r.Problems = append(r.Problems, Problem{Line: index + 1, Message: fmt.Sprintf(format, args...)})
	}

	repeated := func(section, key string) []ini.Occurrence {
		headers, values := ini.Scan(lines, section, key)
		for _, h := range headers[min(1, len(headers)):] {
			add(h.Index, "section [%s] repeated; only one is expected", section)
		}
		if len(values) > 1 {
			last := values[len(values)-1]
			for _, v := range values[:len(values)-1] {
				add(v.Index, "%s set again on line %d; this value is ignored", key, last.Index+1)
			}
		}
		return values
	}

	values := repeated(s.Layout.ScriptGroup, s.Layout.ClassesKey)
	repeated(s.Layout.PluginsGroup, s.Layout.EnabledKey())

	if len(values) > 0 {
		effective := values[len(values)-1]
		for _, entry := range strings.Split(effective.Value, ";") {
			if strings.TrimSpace(entry) == "" && effective.Value != "" {
				add(effective.Index, "empty entry in %s", s.Layout.ClassesKey)
				break
			}
		}
		stored := classes.Parse(effective.Value)
		for dup, first := range sortedDuplicates(stored) {
			add(effective.Index, "%q duplicates %q (same key %q)", stored[dup], stored[first], classes.Key(stored[dup]))
		}
	}

	if r.Enabled == model.EnabledUnset {
		r.Problems = append(r.Problems, Problem{Message: fmt.Sprintf("[%s] %s is not set; the script is not enabled", s.Layout.PluginsGroup, s.Layout.EnabledKey())})
	}
	return r
}

// sortedDuplicates yields Duplicates in list order.
func sortedDuplicates(list []string) func(yield func(int, int) bool) {
	dups := classes.Duplicates(list)
	return func(yield func(int, int) bool) {
		for i := range list {
			first, ok := dups[i]
			if !ok {
				continue
			}
			if !yield(i, first) {
				return
			}
		}
	}
}
