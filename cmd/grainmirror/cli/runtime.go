// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/grainmirror/grainmirror/lib/clock"
	"github.com/grainmirror/grainmirror/lib/config"
	"github.com/grainmirror/grainmirror/lib/fsys"
	"github.com/grainmirror/grainmirror/lib/mirror"
	"github.com/grainmirror/grainmirror/lib/registry"
)

// Runtime bundles the collaborators every command handler operates
// on: configuration, the registry store, the OS filesystem, and the
// wall clock. Commands build it once at the top of Run.
type Runtime struct {
	Config *config.Config
	Store  *registry.Store
	FS     fsys.FS
	Clock  clock.Clock
	Logger *slog.Logger
}

// NewRuntime loads configuration and wires the production
// collaborators. configPath comes from the --config flag; when empty,
// the GRAINMIRROR_CONFIG environment variable or built-in defaults
// apply.
func NewRuntime(configPath string) (*Runtime, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	return &Runtime{
		Config: cfg,
		Store:  registry.NewStore(cfg.Registry.Path),
		FS:     fsys.NewOS(),
		Clock:  clock.Real(),
		Logger: NewCommandLogger(),
	}, nil
}

// Engine returns a sync/verify engine over the runtime's collaborators.
func (r *Runtime) Engine() *mirror.Engine {
	return mirror.NewEngine(r.Store, r.FS, r.Clock)
}

// Service returns a registration service over the runtime's collaborators.
func (r *Runtime) Service() *registry.Service {
	return registry.NewService(r.Store, r.FS)
}

// ConfigFlag is an embeddable params struct providing the --config
// flag shared by every command that touches the registry.
type ConfigFlag struct {
	Config string `flag:"config" desc:"path to config file (overrides GRAINMIRROR_CONFIG)"`
}

// Runtime builds the production runtime from the flag value.
func (c *ConfigFlag) Runtime() (*Runtime, error) {
	return NewRuntime(c.Config)
}
