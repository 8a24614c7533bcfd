// Package config loads focusctl's own settings: where kwinrc lives, which
// sections it uses, which programs to call and how long to wait for them.
//
// Configuration comes from one YAML file named by the --config flag or the
// FOCUSCTL_CONFIG environment variable. There is no search path; without
// either, Default is used.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"focusctl/internal/focuserr"
	"focusctl/internal/kwinrc"
	"focusctl/internal/reload"
	"focusctl/internal/session"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "FOCUSCTL_CONFIG"

// Config is the complete tool configuration.
type Config struct {
	// KWinrc is the kwinrc path relative to the target's home.
	KWinrc string `yaml:"kwinrc"`

	// ScriptID is the KWin script id; its plugin flag is <id>Enabled.
	ScriptID string `yaml:"script_id"`

	// ScriptGroup is the section holding the class list.
	ScriptGroup string `yaml:"script_group"`

	// ClassesKey is the key of the class list.
	ClassesKey string `yaml:"classes_key"`

	// PluginsGroup is the section holding plugin flags.
	PluginsGroup string `yaml:"plugins_group"`

	// Passwd is the account directory.
	Passwd string `yaml:"passwd"`

	// RuntimeBase holds the per-uid runtime directories.
	RuntimeBase string `yaml:"runtime_base"`

	// Loginctl is the session manager client binary.
	Loginctl string `yaml:"loginctl"`

	// CommandTimeout bounds every external command. Zero disables it.
	CommandTimeout time.Duration `yaml:"command_timeout"`

	Reload ReloadConfig `yaml:"reload"`
	Log    LogConfig    `yaml:"log"`
	Update UpdateConfig `yaml:"update"`
}

// ReloadConfig describes the reconfigure bus call.
type ReloadConfig struct {
	Destination string   `yaml:"destination"`
	ObjectPath  string   `yaml:"object_path"`
	Method      string   `yaml:"method"`
	Tools       []string `yaml:"tools"`
}

// LogConfig sets the diagnostic log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// UpdateConfig names the GitHub repository checked by "version --check".
// Both fields empty means the check is not configured.
type UpdateConfig struct {
	Owner      string `yaml:"owner"`
	Repository string `yaml:"repository"`
}

// Configured reports whether a release source is set.
func (u UpdateConfig) Configured() bool {
	return u.Owner != "" && u.Repository != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		KWinrc:         kwinrc.DefaultRelPath,
		ScriptID:       kwinrc.DefaultScriptID,
		ScriptGroup:    kwinrc.DefaultScriptGroup,
		ClassesKey:     kwinrc.DefaultClassesKey,
		PluginsGroup:   kwinrc.DefaultPluginsGroup,
		Passwd:         "/etc/passwd",
		RuntimeBase:    session.DefaultRuntimeBase,
		Loginctl:       "loginctl",
		CommandTimeout: 10 * time.Second,
		Reload: ReloadConfig{
			Destination: reload.DefaultDestination,
			ObjectPath:  reload.DefaultObjectPath,
			Method:      reload.DefaultMethod,
			Tools:       append([]string(nil), reload.DefaultTools...),
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load picks the config file: flagPath if set, else envPath, else none.
// It returns the configuration and the file it came from ("" for defaults).
func Load(flagPath, envPath string) (*Config, string, error) {
	path := flagPath
	if path == "" {
		path = envPath
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFile reads path over the defaults and validates the result. Keys
// missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, focuserr.Config(err, "reading config %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, focuserr.Config(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, focuserr.Config(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems together.
func (c *Config) Validate() error {
	var errs error
	required := []struct{ name, value string }{
		{"kwinrc", c.KWinrc},
		{"script_id", c.ScriptID},
		{"script_group", c.ScriptGroup},
		{"classes_key", c.ClassesKey},
		{"plugins_group", c.PluginsGroup},
		{"passwd", c.Passwd},
		{"runtime_base", c.RuntimeBase},
		{"loginctl", c.Loginctl},
		{"reload.destination", c.Reload.Destination},
		{"reload.object_path", c.Reload.ObjectPath},
		{"reload.method", c.Reload.Method},
	}
	for _, r := range required {
		if r.value == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	if filepath.IsAbs(c.KWinrc) {
		errs = multierr.Append(errs, fmt.Errorf("kwinrc must be relative to the home directory, got %s", c.KWinrc))
	} else if rel := filepath.Clean(c.KWinrc); c.KWinrc != "" && (rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		errs = multierr.Append(errs, fmt.Errorf("kwinrc must name a file inside the home directory, got %s", c.KWinrc))
	}
	if len(c.Reload.Tools) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("reload.tools needs at least one program"))
	}
	for i, tool := range c.Reload.Tools {
		if tool == "" {
			errs = multierr.Append(errs, fmt.Errorf("reload.tools[%d] is empty", i))
		}
	}
	if c.CommandTimeout < 0 {
		errs = multierr.Append(errs, fmt.Errorf("command_timeout must not be negative"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}
	if (c.Update.Owner == "") != (c.Update.Repository == "") {
		errs = multierr.Append(errs, fmt.Errorf("update.owner and update.repository must be set together"))
	}
	return errs
}

// Layout returns the kwinrc sections and keys.
func (c *Config) Layout() kwinrc.Layout {
	return kwinrc.Layout{
		ScriptGroup:  c.ScriptGroup,
		ClassesKey:   c.ClassesKey,
		PluginsGroup: c.PluginsGroup,
		ScriptID:     c.ScriptID,
	}
}
