// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry tracks which source files are mirrored where.
//
// The data model is a mapping from canonical absolute source path to
// an [Entry]: the set of mirror paths plus the content hash and
// timestamp of the last successful sync. The whole mapping persists
// as a single deterministic-CBOR file managed by [Store].
//
// Every mutating operation is a critical section: [Store.Update]
// takes an exclusive flock on a sidecar lock file, reads the full
// state, applies the mutation in memory, and writes the full state
// back atomically (temp file, fsync, rename) before returning. Two
// racing CLI invocations therefore serialize instead of losing
// updates, and a crash after a successful call never loses the
// acknowledged write. [Store.View] takes a shared lock for reads.
//
// [Service] layers the operator-facing operations on top:
// registration (idempotent — re-registering a (source, mirror) pair
// reports "already registered" rather than duplicating), mirror
// removal (idempotent no-op for unknown mirrors), entry drops (only
// when no mirrors remain, unless forced), and sorted listing.
// Registration consults the filesystem collaborator so that a source
// that does not exist is rejected up front with [ErrSourceNotFound].
package registry
