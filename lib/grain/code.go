// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grain

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet is the 13 grainorder symbols in rank order, smallest
// (newest) first. Comparison between codes uses position in this
// string, never raw byte values.
const Alphabet = "xbdghjklmnsvz"

// CodeLength is the number of symbols in every grainorder code.
const CodeLength = 6

// SpaceSize is the number of valid codes: 13×12×11×10×9×8
// permutations of 6 distinct symbols from the 13-symbol alphabet.
// The reserved [Archive] code is included in this count.
const SpaceSize = 13 * 12 * 11 * 10 * 9 * 8

// ErrExhausted signals that a step or allocation hit the edge of the
// grainorder space. Callers must surface this verbatim — there is no
// fallback allocation strategy.
var ErrExhausted = errors.New("grainorder space exhausted")

// ErrInvalidCode is wrapped by all [Parse] failures. Use
// errors.Is(err, ErrInvalidCode) to classify.
var ErrInvalidCode = errors.New("invalid grainorder code")

// Code is a validated grainorder: exactly 6 symbols from [Alphabet]
// with no symbol repeated. Code is an immutable value type; the zero
// value is not valid (use IsZero to check).
type Code struct {
	code string
}

// Start is the smallest valid code, "xbdghj": the first 6 alphabet
// symbols in rank order. A directory's newest file carries Start
// after a rebalance, and allocation into an empty set begins here.
var Start = MustParse("xbdghj")

// Archive is the reserved code for archived and overflow items. It is
// excluded from stepping and allocation; assigning it is always an
// explicit operator decision.
var Archive = MustParse("zxvsnm")

// Parse validates and wraps a raw grainorder string. The string must
// be exactly 6 symbols long, every symbol must be in [Alphabet], and
// no symbol may repeat. All errors wrap [ErrInvalidCode].
func Parse(raw string) (Code, error) {
	if len(raw) != CodeLength {
		return Code{}, fmt.Errorf("%w: %q is %d symbols, want %d", ErrInvalidCode, raw, len(raw), CodeLength)
	}
	var seen [len(Alphabet)]bool
	for i := 0; i < CodeLength; i++ {
		r := symbolRank(raw[i])
		if r < 0 {
			return Code{}, fmt.Errorf("%w: %q has symbol %q outside the alphabet", ErrInvalidCode, raw, raw[i])
		}
		if seen[r] {
			return Code{}, fmt.Errorf("%w: %q repeats symbol %q", ErrInvalidCode, raw, raw[i])
		}
		seen[r] = true
	}
	return Code{code: raw}, nil
}

// MustParse is like Parse but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParse(raw string) Code {
	c, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("grain.MustParse(%q): %v", raw, err))
	}
	return c
}

// IsValid reports whether raw is a well-formed grainorder code.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// String returns the raw 6-symbol code.
func (c Code) String() string { return c.code }

// IsZero reports whether the Code is the zero value (uninitialized).
func (c Code) IsZero() bool { return c.code == "" }

// IsArchive reports whether the code is the reserved [Archive] code.
func (c Code) IsArchive() bool { return c.code == Archive.code }

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after
// b under rank-lexicographic ordering. A negative result means a is
// the newer code.
func Compare(a, b Code) int {
	for i := 0; i < CodeLength; i++ {
		ra, rb := symbolRank(a.code[i]), symbolRank(b.code[i])
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
	}
	return 0
}

// Less reports whether c orders strictly before other.
func (c Code) Less(other Code) bool { return Compare(c, other) < 0 }

// MarshalText implements encoding.TextMarshaler so codes serialize as
// plain strings in JSON and CBOR.
func (c Code) MarshalText() ([]byte, error) {
	if c.code == "" {
		return nil, nil
	}
	return []byte(c.code), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, validating the
// code. Empty input produces the zero value.
func (c *Code) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*c = Code{}
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// symbolRank returns the rank of symbol b in [Alphabet], or -1 if b
// is not an alphabet symbol.
func symbolRank(b byte) int {
	return strings.IndexByte(Alphabet, b)
}

// ranks decomposes a valid code into its six symbol ranks.
func (c Code) ranks() [CodeLength]int {
	var r [CodeLength]int
	for i := 0; i < CodeLength; i++ {
		r[i] = symbolRank(c.code[i])
	}
	return r
}

// fromRanks assembles a code from six symbol ranks. The caller
// guarantees distinctness and range.
func fromRanks(r [CodeLength]int) Code {
	var b [CodeLength]byte
	for i, rank := range r {
		b[i] = Alphabet[rank]
	}
	return Code{code: string(b[:])}
}
