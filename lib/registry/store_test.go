// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "registry.cbor"))
}

func TestStoreMissingFileIsEmptyRegistry(t *testing.T) {
	store := testStore(t)
	err := store.View(func(r *Registry) error {
		if len(r.Sources) != 0 {
			t.Errorf("fresh store has %d sources", len(r.Sources))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStoreUpdatePersists(t *testing.T) {
	store := testStore(t)
	err := store.Update(func(r *Registry) error {
		r.AddMirror("/a/readme.md", "/b/readme.md")
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	// A separate Store value over the same path sees the write.
	reopened := NewStore(store.Path())
	err = reopened.View(func(r *Registry) error {
		entry := r.Entry("/a/readme.md")
		if entry == nil || len(entry.Mirrors) != 1 {
			t.Errorf("persisted entry = %+v", entry)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStoreUpdateErrorWritesNothing(t *testing.T) {
	store := testStore(t)
	boom := fmt.Errorf("mutation failed")
	err := store.Update(func(r *Registry) error {
		r.AddMirror("/a/x", "/b/x")
		return boom
	})
	if err != boom {
		t.Fatalf("Update err = %v, want the mutation error verbatim", err)
	}

	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("store file written despite mutation failure")
	}
}

func TestStoreNoTempFileLeftBehind(t *testing.T) {
	store := testStore(t)
	if err := store.Update(func(r *Registry) error {
		r.AddMirror("/a/x", "/b/x")
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := os.Stat(store.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after save")
	}
}

func TestStoreDeterministicBytes(t *testing.T) {
	store := testStore(t)
	mutate := func(r *Registry) error {
		r.AddMirror("/a/x", "/b/x")
		r.AddMirror("/a/x", "/c/x")
		return nil
	}
	if err := store.Update(mutate); err != nil {
		t.Fatalf("Update: %v", err)
	}
	first, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	// A no-op read-modify-write leaves identical bytes.
	if err := store.Update(func(r *Registry) error { return nil }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(first, again) {
		t.Error("no-op update changed the store bytes")
	}
}

func TestStoreConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store := testStore(t)

	var wg sync.WaitGroup
	const writers = 16
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Update(func(r *Registry) error {
				r.AddMirror("/a/readme.md", fmt.Sprintf("/mirror-%02d/readme.md", i))
				return nil
			})
			if err != nil {
				t.Errorf("Update %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	err := store.View(func(r *Registry) error {
		entry := r.Entry("/a/readme.md")
		if entry == nil {
			t.Fatal("entry missing")
		}
		if len(entry.Mirrors) != writers {
			t.Errorf("mirror count = %d, want %d (lost updates)", len(entry.Mirrors), writers)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStoreRejectsCorruptFile(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("this is not cbor"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := store.View(func(r *Registry) error { return nil }); err == nil {
		t.Error("corrupt store file loaded without error")
	}
}

func TestStoreReadRaw(t *testing.T) {
	store := testStore(t)
	if err := store.Update(func(r *Registry) error {
		r.AddMirror("/a/x", "/b/x")
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	raw, err := store.ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if len(raw) == 0 {
		t.Error("ReadRaw returned empty data")
	}
}

func TestStoreReadRawMissingFile(t *testing.T) {
	store := testStore(t)
	raw, err := store.ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw on never-written store: %v", err)
	}
	if raw != nil {
		t.Errorf("ReadRaw on never-written store = %q, want nil", raw)
	}
}

// Reads of a store that was never written must not create the state
// directory as a side effect; only the first Update does.
func TestStoreReadsDoNotCreateStateDirectory(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "state")
	store := NewStore(filepath.Join(stateDir, "registry.cbor"))

	err := store.View(func(r *Registry) error {
		if len(r.Sources) != 0 {
			t.Errorf("fresh store has %d sources", len(r.Sources))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if _, err := store.ReadRaw(); err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if _, err := os.Stat(stateDir); !os.IsNotExist(err) {
		t.Fatalf("read created the state directory: %v", err)
	}

	err = store.Update(func(r *Registry) error { return nil })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := os.Stat(stateDir); err != nil {
		t.Errorf("first update should create the state directory: %v", err)
	}
}
