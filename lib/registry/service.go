// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"

	"github.com/grainmirror/grainmirror/lib/fsys"
)

// Service implements the operator-facing registry operations on top
// of a [Store] and the filesystem collaborator.
type Service struct {
	store *Store
	fs    fsys.FS
}

// NewService wires a service to its store and filesystem.
func NewService(store *Store, fs fsys.FS) *Service {
	return &Service{store: store, fs: fs}
}

// Store exposes the underlying store for engines that share it.
func (s *Service) Store() *Store { return s.store }

// Listed pairs a source path with a snapshot of its entry.
type Listed struct {
	Source string `json:"source"`
	Entry  Entry  `json:"entry"`
}

// Register records mirror as a copy destination for source. The
// source must exist on the filesystem ([ErrSourceNotFound]); the
// mirror need not. Registering an already-registered pair is a no-op
// that returns alreadyRegistered=true instead of duplicating.
func (s *Service) Register(source, mirror string) (alreadyRegistered bool, err error) {
	source, mirror, err = s.canonicalPair(source, mirror)
	if err != nil {
		return false, err
	}

	exists, err := s.fs.Exists(source)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}

	err = s.store.Update(func(r *Registry) error {
		alreadyRegistered = !r.AddMirror(source, mirror)
		return nil
	})
	return alreadyRegistered, err
}

// Unregister removes mirror from source's entry. Removing a mirror
// that is not listed is an idempotent no-op (removed=false). An
// unregistered source is an error.
func (s *Service) Unregister(source, mirror string) (removed bool, err error) {
	source, mirror, err = s.canonicalPair(source, mirror)
	if err != nil {
		return false, err
	}

	err = s.store.Update(func(r *Registry) error {
		if r.Entry(source) == nil {
			return fmt.Errorf("%w: %s", ErrSourceNotRegistered, source)
		}
		removed = r.RemoveMirror(source, mirror)
		return nil
	})
	return removed, err
}

// Drop deletes source's entry entirely. Refuses while mirrors remain
// unless forced.
func (s *Service) Drop(source string, force bool) error {
	source, err := Canonicalize(source)
	if err != nil {
		return err
	}
	return s.store.Update(func(r *Registry) error {
		if err := r.Drop(source, force); err != nil {
			return fmt.Errorf("%w: %s", err, source)
		}
		return nil
	})
}

// List returns every entry, sorted by source path.
func (s *Service) List() ([]Listed, error) {
	var listed []Listed
	err := s.store.View(func(r *Registry) error {
		for _, source := range r.SourcePaths() {
			listed = append(listed, Listed{Source: source, Entry: *r.Entry(source)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listed, nil
}

func (s *Service) canonicalPair(source, mirror string) (string, string, error) {
	canonicalSource, err := Canonicalize(source)
	if err != nil {
		return "", "", fmt.Errorf("canonicalizing source %s: %w", source, err)
	}
	canonicalMirror, err := Canonicalize(mirror)
	if err != nil {
		return "", "", fmt.Errorf("canonicalizing mirror %s: %w", mirror, err)
	}
	return canonicalSource, canonicalMirror, nil
}
