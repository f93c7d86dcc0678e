// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grainfile

import (
	"fmt"
	"regexp"

	"github.com/grainmirror/grainmirror/lib/grain"
)

var namePattern = regexp.MustCompile(`^([a-z]{6})-(\d{5}-\d{2}-\d{2}--\d{4}-[a-z]{3,4})--(.+)$`)

// TaggedName is a filename decomposed into its grainorder code,
// timestamp, and free-text remainder.
type TaggedName struct {
	Code  grain.Code
	Stamp Stamp

	// Rest is the free-text remainder after the second "--"
	// separator, preserved byte for byte across renames.
	Rest string
}

// ParseName decomposes a filename against the tagged pattern. The
// grainorder and stamp are validated; a filename that does not match
// is an ordinary error, which callers scanning mixed directories
// treat as "not tagged" rather than a failure.
func ParseName(name string) (TaggedName, error) {
	match := namePattern.FindStringSubmatch(name)
	if match == nil {
		return TaggedName{}, fmt.Errorf("filename %q is not grainorder-tagged", name)
	}

	code, err := grain.Parse(match[1])
	if err != nil {
		return TaggedName{}, fmt.Errorf("filename %q: %w", name, err)
	}
	stamp, err := ParseStamp(match[2])
	if err != nil {
		return TaggedName{}, fmt.Errorf("filename %q: %w", name, err)
	}

	return TaggedName{Code: code, Stamp: stamp, Rest: match[3]}, nil
}

// String reassembles the canonical filename. For any name produced by
// [ParseName], String returns the original input unchanged.
func (n TaggedName) String() string {
	return n.Code.String() + "-" + n.Stamp.String() + "--" + n.Rest
}

// WithCode returns a copy of the name carrying a different grainorder
// code, leaving stamp and remainder untouched. This is the rename
// primitive the rebalancer plans with.
func (n TaggedName) WithCode(code grain.Code) TaggedName {
	n.Code = code
	return n
}
