// SPDX-License-Identifier: MPL-2.0

// Package config loads shipout's configuration: tool names, polling knobs,
// the release-notes defaults, and the interactive editor.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "shipout"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config holds the resolved configuration for a run. All fields have
// working defaults; a config file and SHIPOUT_* environment variables can
// override them.
type Config struct {
	// Editor is the interactive editor command used to create release notes
	// when none exist. Resolved from (in order) this setting, $VISUAL, and
	// $EDITOR; empty means no editor is configured.
	Editor string `mapstructure:"editor"`

	// NotesFile is the default release-notes path, relative to the working
	// directory, used when the notes variable is not supplied.
	NotesFile string `mapstructure:"notes_file"`

	// PollAttempts bounds the availability polling loop after an archive
	// upload; PollIntervalSeconds is the pause between attempts.
	PollAttempts        int `mapstructure:"poll_attempts"`
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds"`

	// MailWrapColumn is the column announcement bodies are word-wrapped at.
	MailWrapColumn int `mapstructure:"mail_wrap_column"`

	// Tools names the external programs release actions shell out to.
	Tools Tools `mapstructure:"tools"`
}

// Tools names the external programs used by built-in release actions. Each
// entry is looked up on PATH unless given as an absolute path.
type Tools struct {
	Make     string `mapstructure:"make"`
	Scp      string `mapstructure:"scp"`
	Curl     string `mapstructure:"curl"`
	Gpg      string `mapstructure:"gpg"`
	Luarocks string `mapstructure:"luarocks"`
	Gh       string `mapstructure:"gh"`
	Rsync    string `mapstructure:"rsync"`
	Sendmail string `mapstructure:"sendmail"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		NotesFile:           "release-notes.txt",
		PollAttempts:        6,
		PollIntervalSeconds: 30,
		MailWrapColumn:      72,
		Tools: Tools{
			Make:     "make",
			Scp:      "scp",
			Curl:     "curl",
			Gpg:      "gpg",
			Luarocks: "luarocks",
			Gh:       "gh",
			Rsync:    "rsync",
			Sendmail: "sendmail",
		},
	}
}

// ConfigDir returns the shipout configuration directory using the platform
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the config file (if present) and SHIPOUT_* environment
// variables on top of the defaults. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("editor", defaults.Editor)
	v.SetDefault("notes_file", defaults.NotesFile)
	v.SetDefault("poll_attempts", defaults.PollAttempts)
	v.SetDefault("poll_interval_seconds", defaults.PollIntervalSeconds)
	v.SetDefault("mail_wrap_column", defaults.MailWrapColumn)
	v.SetDefault("tools.make", defaults.Tools.Make)
	v.SetDefault("tools.scp", defaults.Tools.Scp)
	v.SetDefault("tools.curl", defaults.Tools.Curl)
	v.SetDefault("tools.gpg", defaults.Tools.Gpg)
	v.SetDefault("tools.luarocks", defaults.Tools.Luarocks)
	v.SetDefault("tools.gh", defaults.Tools.Gh)
	v.SetDefault("tools.rsync", defaults.Tools.Rsync)
	v.SetDefault("tools.sendmail", defaults.Tools.Sendmail)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir, err := ConfigDir(); err == nil {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ResolveEditor returns the editor command string: the configured editor if
// set, otherwise $VISUAL, otherwise $EDITOR. Empty means none configured.
func (c *Config) ResolveEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	return os.Getenv("EDITOR")
}
