// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Grainmirror is a personal file-mirroring and naming utility. It
// tracks hard copies of important files across directories (register,
// sync, verify), detects content drift via keyed BLAKE3 hashes, and
// keeps grainorder-tagged filenames densely ordered by age
// (rebalance, grain).
package main
