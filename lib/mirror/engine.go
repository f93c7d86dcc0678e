// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"errors"

	"github.com/grainmirror/grainmirror/lib/clock"
	"github.com/grainmirror/grainmirror/lib/fsys"
	"github.com/grainmirror/grainmirror/lib/registry"
)

// ErrSourceUnreadable indicates a registered source file that could
// not be read at sync or verify time. The path may have been deleted
// or its permissions changed since registration; the registry entry is
// left untouched so the situation is recoverable.
var ErrSourceUnreadable = errors.New("source unreadable")

// Engine runs sync and verify operations against a registry store.
// The filesystem and clock are injected so tests can run entirely
// in-memory with a deterministic timeline.
type Engine struct {
	store *registry.Store
	fs    fsys.FS
	clock clock.Clock
}

// NewEngine builds an engine over the given store, filesystem, and
// clock.
func NewEngine(store *registry.Store, fs fsys.FS, clk clock.Clock) *Engine {
	return &Engine{store: store, fs: fs, clock: clk}
}
