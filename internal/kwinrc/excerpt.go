package kwinrc

import (
	"focusctl/internal/ini"
	"focusctl/internal/model"
)

// Excerpt is a managed setting with the lines around it.
type Excerpt struct {
	Section string
	Key     string
	Found   bool // False when the section is absent
	Context model.LineContext
}

// Excerpts locates both managed settings in lines. The context is centered
// on the value line, or on the section header when the key is missing.
func (s Store) Excerpts(lines []string) []Excerpt {
	excerpt := func(section, key string) Excerpt {
		e := Excerpt{Section: section, Key: key}
		loc := ini.Locate(lines, section, key)
		switch {
		case loc.HasValue():
			e.Found = true
			e.Context = model.GetLineContext(lines, loc.ValueIndex+1)
		case loc.HasSection():
			e.Found = true
			e.Context = model.GetLineContext(lines, loc.HeaderIndex+1)
		}
		return e
	}
	return []Excerpt{
		excerpt(s.Layout.ScriptGroup, s.Layout.ClassesKey),
		excerpt(s.Layout.PluginsGroup, s.Layout.EnabledKey()),
	}
}
