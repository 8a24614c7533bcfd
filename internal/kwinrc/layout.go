// Package kwinrc reads and edits the two kwinrc settings focusctl manages:
// the forced-focus class list of the helper script and the script's
// plugin-enabled flag.
package kwinrc

import (
	"path/filepath"
	"strings"

	"focusctl/internal/model"
)

// Defaults for the KWin focus helper script.
const (
	DefaultRelPath      = ".config/kwinrc"
	DefaultScriptID     = "kwin-focus-helper"
	DefaultScriptGroup  = "Script-kwin-focus-helper"
	DefaultClassesKey   = "forceFocusClasses"
	DefaultPluginsGroup = "Plugins"

	enabledSuffix = "Enabled"
)

// Layout names the sections and keys that hold the managed settings.
type Layout struct {
	ScriptGroup  string // Section holding the class list
	ClassesKey   string // Key of the class list
	PluginsGroup string // Section holding plugin flags
	ScriptID     string // Plugin id; the flag key is ScriptID + "Enabled"
}

// DefaultLayout is the layout used by the KWin focus helper script.
func DefaultLayout() Layout {
	return Layout{
		ScriptGroup:  DefaultScriptGroup,
		ClassesKey:   DefaultClassesKey,
		PluginsGroup: DefaultPluginsGroup,
		ScriptID:     DefaultScriptID,
	}
}

// EnabledKey is the key of the plugin-enabled flag.
func (l Layout) EnabledKey() string {
	return l.ScriptID + enabledSuffix
}

// PathFor returns the kwinrc location for an account. rel is relative to
// the account's home directory.
func PathFor(acct model.Account, rel string) string {
	if rel == "" {
		rel = DefaultRelPath
	}
	return filepath.Join(acct.Home, rel)
}

// ParseEnabled interprets a stored flag value: "true", "1" and "yes" (any
// case, surrounding space ignored) are enabled, anything else is disabled.
func ParseEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// FormatEnabled renders a flag value the way KWin writes it.
func FormatEnabled(enabled bool) string {
	if enabled {
		return "true"
	}
	return "false"
}
