// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package rebalance reassigns a dense, order-preserving sequence of
// grainorder codes to a directory's tagged files.
//
// The operation is split into three explicit phases so callers own the
// confirmation step: [Rebalancer.Scan] parses the directory's tagged
// filenames (untagged entries are skipped, not errors),
// [Rebalancer.BuildPlan] sorts newest-first by timestamp and assigns
// codes starting from the smallest valid code, and [Rebalancer.Apply]
// performs the renames. Apply stops at the first failed rename and
// reports exactly which renames completed and which remain pending, so
// a re-scan of the directory always yields a coherent, re-plannable
// state with no two files claiming the same code.
//
// Plans serialize to JSON and load back through jsonc, so a saved plan
// can be annotated with comments and hand-edited before applying.
package rebalance
