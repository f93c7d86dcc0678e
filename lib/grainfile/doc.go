// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package grainfile parses and formats grainorder-tagged filenames.
//
// A tagged filename has the bit-exact shape
//
//	{code}-{stamp}--{rest}
//
// where code is a 6-symbol grainorder ([grain.Code]), stamp is a
// timestamp of the form
//
//	{5-digit year}-{MM}-{DD}--{HHMM}-{zone}
//
// with a 3-4 lowercase-letter zone label, and rest is arbitrary
// free text (usually the human-readable filename). Example:
//
//	xzvbdh-12025-10-28--1315-pdt--readme.md
//
// The 5-digit year is the Holocene year: the Gregorian year plus
// 10,000, which keeps the field fixed-width for the next 88,000
// years. [Stamp.Key] reduces a stamp to an integer YYYYYMMDDHHMM for
// total ordering; the zone label is carried verbatim but does not
// participate in ordering, so stamps compare by their local wall
// time.
//
// Filenames that do not match the pattern are not an error at the
// package level — [ParseName] returns an error and callers such as
// the rebalancer simply skip those entries, since not every file in
// a directory is tagged.
package grainfile
