// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package mirror implements the sync and verify engines over the
// registry, the filesystem collaborator, and the content hasher.
//
// Sync reads a registered source, hashes it, and writes byte-identical
// copies to every registered mirror, creating parent directories as
// needed. Mirror writes are best-effort across mirrors and
// all-or-nothing per mirror: one failed write is collected in the
// report without stopping the remaining mirrors. The registry entry's
// hash and timestamp always record what the SOURCE was at sync time,
// deliberately independent of whether every mirror write landed — a
// half-failed sync followed by verify shows exactly which mirrors
// drifted.
//
// Verify recomputes the source hash and reports two orthogonal
// findings: whether the source changed since the recorded sync
// (registry hash stale), and per-mirror state against the CURRENT
// source content. A mirror that matches the current content is InSync
// even when the registry hash is stale, so an operator who edited the
// source and manually fixed a mirror sees the truth. Findings are
// report fields, not errors.
//
// Batch variants process sources in sorted path order so repeated
// runs produce identical, diffable report sequences. Per-source
// failures are aggregated with go-multierror and never abort
// siblings.
package mirror
