// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that locates the config file.
const EnvVar = "GRAINMIRROR_CONFIG"

// Config is the complete configuration for grainmirror.
type Config struct {
	// Registry configures the persisted mirror registry.
	Registry RegistryConfig `yaml:"registry"`

	// Stamp configures tagged-filename timestamp rendering.
	Stamp StampConfig `yaml:"stamp"`

	// Watch configures the continuous sync watcher.
	Watch WatchConfig `yaml:"watch"`
}

// RegistryConfig configures the persisted mirror registry.
type RegistryConfig struct {
	// Path is the registry store file. The sidecar lock file lives
	// next to it. Default: ${HOME}/.local/state/grainmirror/registry.cbor
	Path string `yaml:"path"`
}

// StampConfig configures tagged-filename timestamps.
type StampConfig struct {
	// Zone overrides the timezone label stamped into generated
	// filenames (3-4 lowercase letters, e.g. "pdt"). Empty derives the
	// label from the local timezone at stamping time.
	Zone string `yaml:"zone"`
}

// WatchConfig configures the continuous sync watcher.
type WatchConfig struct {
	// Debounce is the quiet period after the last filesystem event
	// before a sync fires, as a Go duration string. Default: 500ms
	Debounce string `yaml:"debounce"`
}

var zoneLabelPattern = regexp.MustCompile(`^[a-z]{3,4}$`)

// Default returns the built-in configuration. A config file overrides
// these values; it is not required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Registry: RegistryConfig{
			Path: filepath.Join(homeDir, ".local", "state", "grainmirror", "registry.cbor"),
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// Load loads configuration from the file named by GRAINMIRROR_CONFIG,
// or returns the defaults when the variable is unset. Configuration
// never comes from a file the operator did not name.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. Environment variables do not override config values;
// the only expansion performed is ${HOME} and similar path variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field formats. Called after loading; exported so
// callers constructing a Config programmatically can check it too.
func (c *Config) Validate() error {
	if c.Registry.Path == "" {
		return fmt.Errorf("registry.path must not be empty")
	}
	if c.Stamp.Zone != "" && !zoneLabelPattern.MatchString(c.Stamp.Zone) {
		return fmt.Errorf("stamp.zone %q must be 3-4 lowercase letters", c.Stamp.Zone)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// DebounceDuration parses the watch debounce field.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("watch.debounce %q: %w", c.Watch.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("watch.debounce %q must not be negative", c.Watch.Debounce)
	}
	return d, nil
}

// expandVariables expands ${HOME} and ${USER} in path fields so config
// files stay portable across machines.
func (c *Config) expandVariables() {
	c.Registry.Path = expandPath(c.Registry.Path)
}

func expandPath(path string) string {
	if path == "" {
		return path
	}
	homeDir, _ := os.UserHomeDir()
	path = strings.ReplaceAll(path, "${HOME}", homeDir)
	path = strings.ReplaceAll(path, "${USER}", os.Getenv("USER"))
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
