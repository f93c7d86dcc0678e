// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeNowStandsStill(t *testing.T) {
	initial := time.Unix(1700000000, 0)
	fake := Fake(initial)
	if !fake.Now().Equal(initial) {
		t.Errorf("Now = %v, want %v", fake.Now(), initial)
	}
	fake.Advance(time.Hour)
	if !fake.Now().Equal(initial.Add(time.Hour)) {
		t.Errorf("Now after Advance = %v", fake.Now())
	}
}

func TestFakeAfterFiresOnAdvance(t *testing.T) {
	fake := Fake(time.Unix(0, 0))
	ch := fake.After(time.Minute)

	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}

	fake.Advance(time.Minute)
	select {
	case fired := <-ch:
		if !fired.Equal(time.Unix(60, 0)) {
			t.Errorf("fired at %v", fired)
		}
	default:
		t.Fatal("After did not fire after Advance")
	}
}

func TestFakeAfterImmediateForNonPositive(t *testing.T) {
	fake := Fake(time.Unix(0, 0))
	select {
	case <-fake.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFakeTickerFiresRepeatedly(t *testing.T) {
	fake := Fake(time.Unix(0, 0))
	ticker := fake.NewTicker(time.Second)
	defer ticker.Stop()

	// The tick channel has capacity 1; draining between advances
	// observes each tick.
	for i := 0; i < 3; i++ {
		fake.Advance(time.Second)
		select {
		case <-ticker.C:
		default:
			t.Fatalf("tick %d missing", i)
		}
	}
}

func TestFakeTickerStops(t *testing.T) {
	fake := Fake(time.Unix(0, 0))
	ticker := fake.NewTicker(time.Second)
	ticker.Stop()
	fake.Advance(5 * time.Second)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestFakeTickerDropsTicksWhenBehind(t *testing.T) {
	fake := Fake(time.Unix(0, 0))
	ticker := fake.NewTicker(time.Second)
	defer ticker.Stop()

	// Three intervals with no reader: only one queued tick.
	fake.Advance(3 * time.Second)
	count := 0
	for {
		select {
		case <-ticker.C:
			count++
			continue
		default:
		}
		break
	}
	if count != 1 {
		t.Errorf("queued ticks = %d, want 1 (capacity-1 drop semantics)", count)
	}
}
