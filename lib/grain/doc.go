// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package grain implements the grainorder identifier space: 6-symbol
// codes over a fixed 13-symbol alphabet with no repeated symbols,
// used as sortable file-name prefixes so that directory listings
// order chronologically.
//
// The alphabet is "x b d g h j k l m n s v z" in rank order, smallest
// first. Ordering between codes is lexicographic over alphabet RANK,
// not over raw byte values — 'x' is the smallest symbol even though
// its ASCII value is large. By convention, a smaller code means a
// newer file.
//
// The identifier space holds 13×12×11×10×9×8 = 1,235,520 codes
// ([SpaceSize]). One code, [Archive] ("zxvsnm"), is reserved for
// archived items and is never produced by [Successor], [Predecessor],
// or [AllocateNext].
//
// [Code] is an immutable validated value type in the style of the
// rest of the repository: construct with [Parse] or [MustParse], the
// zero value is not a valid code. Codes marshal as text for JSON and
// CBOR.
//
// Stepping through the space is done with [Successor] (next larger
// code) and [Predecessor] (next smaller code). Both apply carry
// propagation when a position runs out of locally available symbols,
// and both return [ErrExhausted] at the edge of the space rather
// than wrapping around.
//
// [AllocateNext] mints a fresh code strictly smaller than every code
// in a used set, which keeps newly allocated files at the top of a
// sorted listing. The allocation is collision-free by construction:
// the result is the immediate predecessor of the smallest used code,
// so it cannot be a member of the set.
package grain
