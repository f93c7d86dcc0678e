// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package fsys

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestWriteCreatesParents(t *testing.T) {
	fs := NewMemory()
	path := "/mirrors/project/docs/readme.md"
	if err := fs.Write(path, []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v; want true, nil", exists, err)
	}

	data, err := fs.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(data, []byte("hello")) {
		t.Errorf("Read = %q, want %q", data, "hello")
	}
}

func TestExistsFalseForMissing(t *testing.T) {
	fs := NewMemory()
	exists, err := fs.Exists("/nowhere")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("Exists(/nowhere) = true")
	}
}

func TestReadMissingFails(t *testing.T) {
	fs := NewMemory()
	if _, err := fs.Read("/nowhere"); err == nil {
		t.Error("Read of missing file should fail")
	}
}

func TestListSorted(t *testing.T) {
	fs := NewMemory()
	for _, name := range []string{"zebra.txt", "apple.txt", "mango.txt"} {
		if err := fs.Write("/dir/"+name, []byte("x")); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	names, err := fs.List("/dir")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"apple.txt", "mango.txt", "zebra.txt"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}
}

func TestRename(t *testing.T) {
	fs := NewMemory()
	old := "/dir/old.txt"
	new := "/dir/new.txt"
	if err := fs.Write(old, []byte("content")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fs.Rename(old, new); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	if exists, _ := fs.Exists(old); exists {
		t.Error("old path still exists after rename")
	}
	data, err := fs.Read(new)
	if err != nil {
		t.Fatalf("Read(new): %v", err)
	}
	if string(data) != "content" {
		t.Errorf("Read(new) = %q", data)
	}
}

func TestOSBackedRoundTrip(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")
	if err := fs.Write(path, []byte("os")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := fs.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "os" {
		t.Errorf("Read = %q", data)
	}
	names, err := fs.List(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "file.txt" {
		t.Errorf("List = %v", names)
	}
}

// refuseRenameAfero fails every rename, simulating a filesystem that
// cannot complete the final step of a write.
type refuseRenameAfero struct {
	afero.Fs
}

func (f *refuseRenameAfero) Rename(old, new string) error {
	return errors.New("rename refused")
}

func TestWriteFailureKeepsExistingContent(t *testing.T) {
	backing := afero.NewMemMapFs()
	fs := FromAfero(backing)
	path := "/mirrors/readme.md"
	if err := fs.Write(path, []byte("original")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	broken := FromAfero(&refuseRenameAfero{Fs: backing})
	if err := broken.Write(path, []byte("replacement")); err == nil {
		t.Fatal("Write through refusing filesystem should fail")
	}

	// The destination was never truncated.
	data, err := fs.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(data, []byte("original")) {
		t.Errorf("destination = %q, want original content intact", data)
	}
	// The temporary file was cleaned up.
	exists, err := fs.Exists(path + ".tmp")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("temporary file left behind after failed write")
	}
}

func TestWriteLeavesNoTemporaryFile(t *testing.T) {
	fs := NewMemory()
	path := "/mirrors/readme.md"
	if err := fs.Write(path, []byte("one")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fs.Write(path, []byte("two")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	data, err := fs.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(data, []byte("two")) {
		t.Errorf("Read = %q, want %q", data, "two")
	}
	names, err := fs.List("/mirrors")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"readme.md"}) {
		t.Errorf("List = %v, want only readme.md", names)
	}
}
