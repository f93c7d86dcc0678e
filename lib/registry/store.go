// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/grainmirror/grainmirror/lib/codec"
)

// Store persists a [Registry] as a single deterministic-CBOR file.
//
// Concurrency model: the store file is the only shared mutable
// resource between CLI invocations, so every Update is a full
// read-modify-write under an exclusive flock on a sidecar ".lock"
// file. The lock file is separate from the data file because the data
// file is replaced by rename on every write — a lock on the data
// file's descriptor would be a lock on a dead inode after the first
// update.
type Store struct {
	path string
}

// NewStore returns a store for the registry file at path. The file
// need not exist yet; the first Update creates it along with any
// missing parent directories.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file location.
func (s *Store) Path() string { return s.path }

// Update runs fn over the current registry state under an exclusive
// lock and, if fn succeeds, persists the mutated state atomically
// before returning. The success of Update is the acknowledgment: once
// it returns nil the write is on disk (write-then-acknowledge). If fn
// returns an error, nothing is written and the error is returned
// verbatim.
func (s *Store) Update(fn func(r *Registry) error) error {
	unlock, err := s.lock(unix.LOCK_EX)
	if err != nil {
		return err
	}
	defer unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	return s.save(reg)
}

// View runs fn over the current registry state under a shared lock.
// fn must not mutate the registry; nothing is written back.
func (s *Store) View(fn func(r *Registry) error) error {
	unlock, err := s.lock(unix.LOCK_SH)
	if err != nil {
		return err
	}
	defer unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}
	return fn(reg)
}

// ReadRaw returns the raw serialized bytes of the store file, for
// diagnostic dumping. Taken under a shared lock so a concurrent
// update is never observed mid-rename.
func (s *Store) ReadRaw() ([]byte, error) {
	unlock, err := s.lock(unix.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// Same treatment as load: a store that was never written is
		// empty, not broken.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry store: %w", err)
	}
	return data, nil
}

// lock acquires the sidecar lock file with the given flock mode and
// returns the release function.
func (s *Store) lock(how int) (func(), error) {
	if how == unix.LOCK_EX {
		// Only the write path creates the state directory; a read of
		// a store that was never written must not leave one behind.
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return nil, fmt.Errorf("creating registry directory: %w", err)
		}
	}

	lockPath := s.path + ".lock"
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if os.IsNotExist(err) && how == unix.LOCK_SH {
		// The state directory itself is missing, so the store was
		// never written and there is no writer to exclude. Readers
		// see the empty state without taking a lock.
		return func() {}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening registry lock file: %w", err)
	}
	if err := unix.Flock(int(file.Fd()), how); err != nil {
		file.Close()
		return nil, fmt.Errorf("locking registry: %w", err)
	}
	return func() {
		// Closing the descriptor releases the flock; the explicit
		// unlock first keeps the hold time minimal if close blocks.
		unix.Flock(int(file.Fd()), unix.LOCK_UN)
		file.Close()
	}, nil
}

// load reads and decodes the store file. A missing file is an empty
// registry, not an error — first use has nothing to read.
func (s *Store) load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry store: %w", err)
	}

	reg := NewRegistry()
	if err := codec.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("decoding registry store %s: %w", s.path, err)
	}
	if reg.Sources == nil {
		reg.Sources = make(map[string]*Entry)
	}
	if err := reg.validate(); err != nil {
		return nil, fmt.Errorf("registry store %s: %w", s.path, err)
	}
	return reg, nil
}

// save writes the registry atomically: temp file in the same
// directory, fsync, rename over the store path, fsync the directory.
// Readers never observe a partial write.
func (s *Store) save(reg *Registry) error {
	data, err := codec.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	temporaryPath := s.path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary registry file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary registry file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary registry file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary registry file: %w", err)
	}

	if err := os.Rename(temporaryPath, s.path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming registry file into place: %w", err)
	}

	// Sync the parent directory so the rename survives power loss.
	if dir, err := os.Open(filepath.Dir(s.path)); err == nil {
		dir.Sync()
		dir.Close()
	}
	return nil
}
