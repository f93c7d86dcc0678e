// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package fsys

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// FS is the narrow filesystem capability the core engines depend on.
type FS interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) (bool, error)

	// Read returns the full content of the file at path.
	Read(path string) ([]byte, error)

	// Write replaces the file at path with data, creating parent
	// directories as needed. The replacement goes through a temporary
	// file and rename, so a failed write leaves any existing file
	// untouched and never exposes partial content.
	Write(path string, data []byte) error

	// List returns the entry names (not full paths) of directory dir,
	// sorted lexicographically.
	List(dir string) ([]string, error)

	// Rename moves the file at old to new within the same filesystem.
	Rename(old, new string) error
}

type aferoFS struct {
	fs afero.Fs
}

// NewOS returns an FS backed by the operating system filesystem.
func NewOS() FS {
	return &aferoFS{fs: afero.NewOsFs()}
}

// NewMemory returns an FS backed by an in-memory filesystem. Intended
// for tests; contents are discarded when the value is garbage
// collected.
func NewMemory() FS {
	return &aferoFS{fs: afero.NewMemMapFs()}
}

// FromAfero wraps an arbitrary afero filesystem (read-only views,
// base-path jails) in the collaborator interface.
func FromAfero(fs afero.Fs) FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Exists(path string) (bool, error) {
	exists, err := afero.Exists(a.fs, path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return exists, nil
}

func (a *aferoFS) Read(path string) ([]byte, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (a *aferoFS) Write(path string, data []byte) error {
	if err := a.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating parent directories for %s: %w", path, err)
	}
	temporary := path + ".tmp"
	file, err := a.fs.OpenFile(temporary, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		a.fs.Remove(temporary)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		a.fs.Remove(temporary)
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		a.fs.Remove(temporary)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := a.fs.Rename(temporary, path); err != nil {
		a.fs.Remove(temporary)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func (a *aferoFS) List(dir string) ([]string, error) {
	entries, err := afero.ReadDir(a.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (a *aferoFS) Rename(old, new string) error {
	if err := a.fs.Rename(old, new); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", old, new, err)
	}
	return nil
}
