// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package watch keeps mirrors current by syncing registered sources
// whenever their files change on disk.
//
// The watcher subscribes to the parent directories of every registered
// source (editors replace files rather than write in place, so
// watching the file itself misses most saves) and coalesces bursts of
// events through a debounce window before syncing. Sync failures are
// logged and do not stop the watch loop.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/grainmirror/grainmirror/lib/clock"
	"github.com/grainmirror/grainmirror/lib/mirror"
	"github.com/grainmirror/grainmirror/lib/registry"
)

// DefaultDebounce is the quiet period after the last event before a
// sync fires. Long enough to coalesce an editor's write-rename pair,
// short enough to feel immediate.
const DefaultDebounce = 500 * time.Millisecond

// Watcher syncs registered sources in response to filesystem events.
type Watcher struct {
	engine   *mirror.Engine
	store    *registry.Store
	clock    clock.Clock
	logger   *slog.Logger
	debounce time.Duration
}

// New builds a watcher. A non-positive debounce falls back to
// [DefaultDebounce].
func New(engine *mirror.Engine, store *registry.Store, clk clock.Clock, logger *slog.Logger, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		engine:   engine,
		store:    store,
		clock:    clk,
		logger:   logger,
		debounce: debounce,
	}
}

// Run watches until ctx is cancelled. The set of watched sources is
// fixed at startup: registering a new source requires restarting the
// watch.
func (w *Watcher) Run(ctx context.Context) error {
	sources, err := w.sourceSet()
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources registered, nothing to watch")
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting filesystem watcher: %w", err)
	}
	defer notifier.Close()

	for _, dir := range parentDirs(sources) {
		if err := notifier.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.logger.Info("watching directory", "dir", dir)
	}

	return w.processEvents(ctx, sources, notifier.Events, notifier.Errors)
}

// processEvents is the watch loop, split from Run so tests can feed
// synthetic event channels with a fake clock.
func (w *Watcher) processEvents(ctx context.Context, sources map[string]bool, events <-chan fsnotify.Event, errs <-chan error) error {
	pending := make(map[string]bool)
	var debounced <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(event.Name)
			if !sources[path] {
				continue
			}
			pending[path] = true
			debounced = w.clock.After(w.debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-debounced:
			debounced = nil
			w.syncPending(pending)
			clear(pending)
		}
	}
}

func (w *Watcher) syncPending(pending map[string]bool) {
	for source := range pending {
		report, err := w.engine.Sync(source)
		if err != nil {
			w.logger.Error("sync failed", "source", source, "error", err)
			continue
		}
		if !report.OK() {
			w.logger.Warn("sync incomplete",
				"source", source,
				"written", len(report.Written),
				"failed", len(report.Failures))
			continue
		}
		w.logger.Info("synced", "source", source, "mirrors", len(report.Written))
	}
}

func (w *Watcher) sourceSet() (map[string]bool, error) {
	sources := make(map[string]bool)
	err := w.store.View(func(r *registry.Registry) error {
		for _, path := range r.SourcePaths() {
			sources[path] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func parentDirs(sources map[string]bool) []string {
	seen := make(map[string]bool)
	var dirs []string
	for source := range sources {
		dir := filepath.Dir(source)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}
