// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/grainmirror/grainmirror/lib/contenthash"
)

// ErrSourceNotFound reports a registration attempt for a source path
// that does not exist on the filesystem.
var ErrSourceNotFound = errors.New("source file not found")

// ErrSourceNotRegistered reports an operation against a source path
// with no registry entry.
var ErrSourceNotRegistered = errors.New("source not registered")

// ErrMirrorsRemain reports a drop of an entry that still has mirrors
// and was not forced.
var ErrMirrorsRemain = errors.New("entry still has mirrors")

// Entry is the sync state of one registered source.
type Entry struct {
	// Mirrors are the absolute paths holding copies of the source.
	// No duplicates; order is not meaningful but is kept sorted so
	// the store serializes deterministically.
	Mirrors []string `json:"mirrors"`

	// LastSync is the RFC 3339 timestamp of the last successful sync,
	// or empty if the source has never been synced.
	LastSync string `json:"last_sync,omitempty"`

	// Hash is the hex content digest of the source as of the last
	// sync, or empty if never synced. When present it is always
	// exactly contenthash.DigestHexLength characters.
	Hash string `json:"hash,omitempty"`
}

// Validate checks the entry invariants: unique mirrors and a
// well-formed hash. Called after loading the store so corruption is
// reported at the boundary, not at point of use.
func (e *Entry) Validate() error {
	seen := make(map[string]bool, len(e.Mirrors))
	for _, mirror := range e.Mirrors {
		if seen[mirror] {
			return errors.New("duplicate mirror path " + mirror)
		}
		seen[mirror] = true
	}
	if e.Hash != "" {
		if _, err := contenthash.Parse(e.Hash); err != nil {
			return err
		}
	}
	return nil
}

// Registry is the full source-to-mirrors mapping. It is plain data;
// persistence and locking live in [Store], operator semantics in
// [Service].
type Registry struct {
	Sources map[string]*Entry `json:"sources"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Sources: make(map[string]*Entry)}
}

// Entry returns the entry for source, or nil if unregistered.
func (r *Registry) Entry(source string) *Entry {
	return r.Sources[source]
}

// SourcePaths returns all registered source paths sorted
// lexicographically. Batch operations iterate this so repeated runs
// produce identical report ordering.
func (r *Registry) SourcePaths() []string {
	paths := make([]string, 0, len(r.Sources))
	for path := range r.Sources {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// AddMirror adds mirror to source's entry, creating the entry if the
// source is unregistered. Returns false if the (source, mirror) pair
// was already present.
func (r *Registry) AddMirror(source, mirror string) bool {
	entry := r.Sources[source]
	if entry == nil {
		entry = &Entry{}
		r.Sources[source] = entry
	}
	if slices.Contains(entry.Mirrors, mirror) {
		return false
	}
	entry.Mirrors = append(entry.Mirrors, mirror)
	sort.Strings(entry.Mirrors)
	return true
}

// RemoveMirror removes mirror from source's entry. Returns false when
// the mirror was not in the list (a no-op, not an error). The entry
// itself stays, even with zero mirrors — deleting an entry is the
// explicit Drop operation.
func (r *Registry) RemoveMirror(source, mirror string) bool {
	entry := r.Sources[source]
	if entry == nil {
		return false
	}
	index := slices.Index(entry.Mirrors, mirror)
	if index < 0 {
		return false
	}
	entry.Mirrors = slices.Delete(entry.Mirrors, index, index+1)
	return true
}

// Drop deletes source's entry. Fails with [ErrMirrorsRemain] when the
// entry still lists mirrors and force is false.
func (r *Registry) Drop(source string, force bool) error {
	entry := r.Sources[source]
	if entry == nil {
		return ErrSourceNotRegistered
	}
	if len(entry.Mirrors) > 0 && !force {
		return ErrMirrorsRemain
	}
	delete(r.Sources, source)
	return nil
}

// validate checks every entry. Used by Store after decoding.
func (r *Registry) validate() error {
	for source, entry := range r.Sources {
		if err := entry.Validate(); err != nil {
			return errors.New("entry " + source + ": " + err.Error())
		}
	}
	return nil
}

// Canonicalize normalizes a user-supplied path to the registry's key
// form: tilde expanded, absolute, cleaned.
func Canonicalize(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(absolute), nil
}
