// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestAddMirrorCreatesEntry(t *testing.T) {
	r := NewRegistry()
	if !r.AddMirror("/a/readme.md", "/b/readme.md") {
		t.Fatal("first AddMirror returned false")
	}

	entry := r.Entry("/a/readme.md")
	if entry == nil {
		t.Fatal("entry missing after AddMirror")
	}
	if !reflect.DeepEqual(entry.Mirrors, []string{"/b/readme.md"}) {
		t.Errorf("Mirrors = %v", entry.Mirrors)
	}
	if entry.Hash != "" || entry.LastSync != "" {
		t.Error("new entry should be never-synced")
	}
}

func TestAddMirrorIdempotent(t *testing.T) {
	r := NewRegistry()
	r.AddMirror("/a/readme.md", "/b/readme.md")
	if r.AddMirror("/a/readme.md", "/b/readme.md") {
		t.Error("second AddMirror of same pair returned true")
	}
	if got := len(r.Entry("/a/readme.md").Mirrors); got != 1 {
		t.Errorf("mirror count = %d, want 1", got)
	}
}

func TestMirrorsStaySorted(t *testing.T) {
	r := NewRegistry()
	r.AddMirror("/a/x", "/zebra/x")
	r.AddMirror("/a/x", "/apple/x")
	r.AddMirror("/a/x", "/mango/x")
	want := []string{"/apple/x", "/mango/x", "/zebra/x"}
	if !reflect.DeepEqual(r.Entry("/a/x").Mirrors, want) {
		t.Errorf("Mirrors = %v, want %v", r.Entry("/a/x").Mirrors, want)
	}
}

func TestRemoveMirror(t *testing.T) {
	r := NewRegistry()
	r.AddMirror("/a/x", "/b/x")
	r.AddMirror("/a/x", "/c/x")

	if !r.RemoveMirror("/a/x", "/b/x") {
		t.Error("RemoveMirror of member returned false")
	}
	// Removing again is a no-op, not an error.
	if r.RemoveMirror("/a/x", "/b/x") {
		t.Error("RemoveMirror of non-member returned true")
	}
	// Entry survives with its remaining mirror.
	if got := r.Entry("/a/x").Mirrors; !reflect.DeepEqual(got, []string{"/c/x"}) {
		t.Errorf("Mirrors = %v", got)
	}
}

func TestEntrySurvivesLastMirrorRemoval(t *testing.T) {
	r := NewRegistry()
	r.AddMirror("/a/x", "/b/x")
	r.RemoveMirror("/a/x", "/b/x")
	if r.Entry("/a/x") == nil {
		t.Error("entry deleted implicitly; deletion must be the explicit Drop")
	}
}

func TestDrop(t *testing.T) {
	r := NewRegistry()
	r.AddMirror("/a/x", "/b/x")

	if err := r.Drop("/a/x", false); !errors.Is(err, ErrMirrorsRemain) {
		t.Errorf("Drop with mirrors err = %v, want ErrMirrorsRemain", err)
	}
	if err := r.Drop("/a/x", true); err != nil {
		t.Errorf("forced Drop: %v", err)
	}
	if r.Entry("/a/x") != nil {
		t.Error("entry still present after forced Drop")
	}
	if err := r.Drop("/a/x", false); !errors.Is(err, ErrSourceNotRegistered) {
		t.Errorf("Drop of unknown source err = %v, want ErrSourceNotRegistered", err)
	}
}

func TestSourcePathsSorted(t *testing.T) {
	r := NewRegistry()
	r.AddMirror("/zebra", "/m/zebra")
	r.AddMirror("/apple", "/m/apple")
	r.AddMirror("/mango", "/m/mango")
	want := []string{"/apple", "/mango", "/zebra"}
	if !reflect.DeepEqual(r.SourcePaths(), want) {
		t.Errorf("SourcePaths = %v, want %v", r.SourcePaths(), want)
	}
}

func TestEntryValidate(t *testing.T) {
	good := &Entry{Mirrors: []string{"/b/x", "/c/x"}, Hash: strings.Repeat("ab", 32)}
	if err := good.Validate(); err != nil {
		t.Errorf("valid entry rejected: %v", err)
	}

	duplicate := &Entry{Mirrors: []string{"/b/x", "/b/x"}}
	if err := duplicate.Validate(); err == nil {
		t.Error("duplicate mirrors accepted")
	}

	badHash := &Entry{Hash: "deadbeef"}
	if err := badHash.Validate(); err == nil {
		t.Error("short hash accepted")
	}
}
