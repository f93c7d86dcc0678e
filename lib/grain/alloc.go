// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grain

// Smallest scans used and returns the rank-lexicographically smallest
// valid code. Strings that do not parse as codes are skipped, as is
// the reserved [Archive] code. The second return is false when the
// set contains no eligible code.
//
// The result depends only on set membership, never on slice order.
func Smallest(used []string) (Code, bool) {
	return extremal(used, func(candidate, best Code) bool {
		return candidate.Less(best)
	})
}

// Largest is the counterpart of [Smallest], returning the largest
// eligible code in used.
func Largest(used []string) (Code, bool) {
	return extremal(used, func(candidate, best Code) bool {
		return best.Less(candidate)
	})
}

func extremal(used []string, better func(candidate, best Code) bool) (Code, bool) {
	var best Code
	found := false
	for _, raw := range used {
		code, err := Parse(raw)
		if err != nil || code.IsArchive() {
			continue
		}
		if !found || better(code, best) {
			best = code
			found = true
		}
	}
	return best, found
}

// AllocateNext returns a fresh code that is not a member of used and
// sorts before every member: the immediate [Predecessor] of the
// smallest used code. When used holds no eligible code the allocation
// starts at [Start].
//
// The collision guarantee is structural — the result is strictly
// smaller than the minimum of the set — and therefore holds even when
// used was populated by an uncoordinated process, provided that
// process allocated the same way.
//
// Returns [ErrExhausted] when the smallest used code is already
// [Start]; the caller must report that, not retry with a different
// strategy.
func AllocateNext(used []string) (Code, error) {
	smallest, ok := Smallest(used)
	if !ok {
		return Start, nil
	}
	return Predecessor(smallest)
}
