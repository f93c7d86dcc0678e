// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package fsys is the filesystem collaborator for the mirroring and
// rebalancing engines. It deliberately exposes only the five
// operations the core needs — exists, read, write, list, rename — so
// engines never reach for arbitrary filesystem state and tests can
// substitute an in-memory implementation.
//
// The implementation wraps [afero.Fs]. [NewOS] backs the interface
// with the real filesystem; [NewMemory] backs it with afero's
// MemMapFs for hermetic engine tests. [Write] creates missing parent
// directories, matching the sync engine's contract that mirror
// destinations need not exist ahead of time.
package fsys
