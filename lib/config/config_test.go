// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grainmirror.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultRegistryPathUnderStateDir(t *testing.T) {
	cfg := Default()
	if !strings.HasSuffix(cfg.Registry.Path, filepath.Join(".local", "state", "grainmirror", "registry.cbor")) {
		t.Errorf("default registry path = %s, want XDG state location", cfg.Registry.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadWithoutEnvVarReturnsDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Registry.Path != Default().Registry.Path {
		t.Errorf("Load without %s changed defaults: %s", EnvVar, cfg.Registry.Path)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
registry:
  path: /var/lib/grainmirror/registry.cbor
stamp:
  zone: pdt
watch:
  debounce: 2s
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Registry.Path != "/var/lib/grainmirror/registry.cbor" {
		t.Errorf("registry path = %s", cfg.Registry.Path)
	}
	if cfg.Stamp.Zone != "pdt" {
		t.Errorf("zone = %s", cfg.Stamp.Zone)
	}
	d, err := cfg.DebounceDuration()
	if err != nil {
		t.Fatalf("DebounceDuration: %v", err)
	}
	if d != 2*time.Second {
		t.Errorf("debounce = %v, want 2s", d)
	}
}

func TestLoadFilePartialOverrideKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
stamp:
  zone: utc
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Registry.Path != Default().Registry.Path {
		t.Errorf("unset field lost its default: %s", cfg.Registry.Path)
	}
	if cfg.Watch.Debounce != "500ms" {
		t.Errorf("unset debounce lost its default: %s", cfg.Watch.Debounce)
	}
}

func TestLoadFileExpandsHome(t *testing.T) {
	path := writeConfig(t, `
registry:
  path: ${HOME}/mirrors/registry.cbor
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "mirrors", "registry.cbor"); cfg.Registry.Path != want {
		t.Errorf("registry path = %s, want %s", cfg.Registry.Path, want)
	}
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad zone", "stamp:\n  zone: PDT9\n"},
		{"bad debounce", "watch:\n  debounce: fast\n"},
		{"negative debounce", "watch:\n  debounce: -1s\n"},
		{"empty registry path", "registry:\n  path: \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile accepted an invalid config")
			}
		})
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile of a missing file did not fail")
	}
}
