// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grain

// Successor returns the next larger valid code, stepping from the
// newest fringe toward the oldest. The carry rule: the rightmost
// position is raised to the smallest symbol larger than its current
// one that is not already used to its left; if no such symbol exists
// the position to the left is raised instead and everything after it
// is refilled with the smallest available symbols in rank order. If
// the leftmost position cannot be raised the space is exhausted and
// [ErrExhausted] is returned.
//
// The reserved [Archive] code is never returned; stepping passes
// over it.
func Successor(c Code) (Code, error) {
	return step(c, stepUp)
}

// Predecessor returns the next smaller valid code, the inverse of
// [Successor]. The allocator uses it to mint a code smaller than the
// current newest one. Returns [ErrExhausted] below [Start], and
// never returns [Archive].
func Predecessor(c Code) (Code, error) {
	return step(c, stepDown)
}

type direction int

const (
	stepUp direction = iota
	stepDown
)

func step(c Code, dir direction) (Code, error) {
	next, err := stepOnce(c, dir)
	if err != nil {
		return Code{}, err
	}
	if next.IsArchive() {
		return stepOnce(next, dir)
	}
	return next, nil
}

// stepOnce advances c by exactly one position in rank-lexicographic
// order over the valid (distinct-symbol) code space, without the
// archive exclusion.
func stepOnce(c Code, dir direction) (Code, error) {
	ranks := c.ranks()

	// Walk positions right to left looking for one that can move in
	// the requested direction given the symbols fixed to its left.
	for pos := CodeLength - 1; pos >= 0; pos-- {
		var usedLeft [len(Alphabet)]bool
		for i := 0; i < pos; i++ {
			usedLeft[ranks[i]] = true
		}

		replacement := -1
		if dir == stepUp {
			for r := ranks[pos] + 1; r < len(Alphabet); r++ {
				if !usedLeft[r] {
					replacement = r
					break
				}
			}
		} else {
			for r := ranks[pos] - 1; r >= 0; r-- {
				if !usedLeft[r] {
					replacement = r
					break
				}
			}
		}
		if replacement < 0 {
			continue // carry: this position is at its local extreme
		}

		ranks[pos] = replacement
		usedLeft[replacement] = true
		fillSuffix(&ranks, &usedLeft, pos+1, dir)
		return fromRanks(ranks), nil
	}

	return Code{}, ErrExhausted
}

// fillSuffix rewrites positions from..end with the extremal available
// symbols: smallest-first when stepping up (the suffix must be the
// minimum possible), largest-first when stepping down (the suffix
// must be the maximum possible).
func fillSuffix(ranks *[CodeLength]int, used *[len(Alphabet)]bool, from int, dir direction) {
	if dir == stepUp {
		r := 0
		for pos := from; pos < CodeLength; pos++ {
			for used[r] {
				r++
			}
			ranks[pos] = r
			used[r] = true
		}
		return
	}
	r := len(Alphabet) - 1
	for pos := from; pos < CodeLength; pos++ {
		for used[r] {
			r--
		}
		ranks[pos] = r
		used[r] = true
	}
}
