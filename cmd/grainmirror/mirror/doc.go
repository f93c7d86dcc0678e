// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package mirror implements the registration, sync, and verify
// commands: register, remove, drop, list, sync (with --watch), and
// verify. These are thin wrappers over lib/registry, lib/mirror, and
// lib/watch; exit status is non-zero exactly when the underlying
// operation reports failure or drift.
package mirror
