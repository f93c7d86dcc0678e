// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for
// testability.
//
// Production code accepts a Clock interface parameter instead of
// calling time.Now, time.After, time.NewTicker, or time.Sleep
// directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a deterministic clock that
// advances only when Advance is called, so sync timestamps and watch
// debounce intervals are exact values rather than wall-clock races.
//
// Add a Clock field to structs that use time:
//
//	type Engine struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	engine := mirror.NewEngine(store, fs, clock.Real())
//
// In tests:
//
//	fake := clock.Fake(time.Unix(1700000000, 0))
//	engine := mirror.NewEngine(store, fs, fake)
//	fake.Advance(time.Minute)
package clock
