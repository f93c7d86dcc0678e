// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSmallestAndLargest(t *testing.T) {
	used := []string{"bdghjk", "xbdghj", "zvsnml", "hgdbxj"}

	smallest, ok := Smallest(used)
	if !ok || smallest.String() != "xbdghj" {
		t.Errorf("Smallest = %s, %v; want xbdghj, true", smallest, ok)
	}

	largest, ok := Largest(used)
	if !ok || largest.String() != "zvsnml" {
		t.Errorf("Largest = %s, %v; want zvsnml, true", largest, ok)
	}
}

func TestExtremalIgnoresInvalidAndArchive(t *testing.T) {
	used := []string{"not-a-code", "zxvsnm", "xxxxxx", ""}
	if _, ok := Smallest(used); ok {
		t.Error("Smallest found a code in a set with no eligible members")
	}

	used = append(used, "bdghjk")
	smallest, ok := Smallest(used)
	if !ok || smallest.String() != "bdghjk" {
		t.Errorf("Smallest = %s, %v; want bdghjk, true", smallest, ok)
	}
}

func TestAllocateNextEmptySet(t *testing.T) {
	code, err := AllocateNext(nil)
	if err != nil {
		t.Fatalf("AllocateNext(nil): %v", err)
	}
	if code != Start {
		t.Errorf("AllocateNext(nil) = %s, want %s", code, Start)
	}
}

func TestAllocateNextStepsBelowMinimum(t *testing.T) {
	code, err := AllocateNext([]string{"bdghjk", "zvsnml"})
	if err != nil {
		t.Fatalf("AllocateNext: %v", err)
	}
	if code.String() != "bdghjx" {
		t.Errorf("AllocateNext = %s, want bdghjx", code)
	}
}

func TestAllocateNextExhausted(t *testing.T) {
	// Start has no predecessor, so a set whose minimum is Start has
	// no room left on the newest side.
	_, err := AllocateNext([]string{Start.String()})
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("AllocateNext err = %v, want ErrExhausted", err)
	}
}

func TestAllocateNextIsOrderIndependent(t *testing.T) {
	used := []string{"bdghjk", "zvsnml", "hgdbxj", "njmslk", "xbdgvz"}
	want, err := AllocateNext(used)
	if err != nil {
		t.Fatalf("AllocateNext: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), used...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := AllocateNext(shuffled)
		if err != nil {
			t.Fatalf("AllocateNext(shuffled): %v", err)
		}
		if got != want {
			t.Fatalf("AllocateNext depends on input order: %s vs %s", got, want)
		}
	}
}

func TestAllocateNextCollisionFreedom(t *testing.T) {
	// Build a used set by walking successors from a mid-space code,
	// then check the allocation property: the result is not a member
	// and sorts before the minimum.
	code := MustParse("njmslk")
	used := []string{code.String()}
	for i := 0; i < 200; i++ {
		next, err := Successor(code)
		if err != nil {
			t.Fatalf("Successor(%s): %v", code, err)
		}
		used = append(used, next.String())
		code = next
	}

	got, err := AllocateNext(used)
	if err != nil {
		t.Fatalf("AllocateNext: %v", err)
	}
	for _, raw := range used {
		if got.String() == raw {
			t.Fatalf("AllocateNext returned a member of the used set: %s", got)
		}
	}
	smallest, _ := Smallest(used)
	if !got.Less(smallest) {
		t.Errorf("AllocateNext = %s does not sort before minimum %s", got, smallest)
	}
	if got.IsArchive() {
		t.Error("AllocateNext returned the reserved Archive code")
	}
}
