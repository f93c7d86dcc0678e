// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grain

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	for _, raw := range []string{"xbdghj", "zvsnml", "zxvsnm", "bxdghj", "jhgdbx"} {
		code, err := Parse(raw)
		if err != nil {
			t.Errorf("Parse(%q): %v", raw, err)
			continue
		}
		if code.String() != raw {
			t.Errorf("Parse(%q).String() = %q", raw, code.String())
		}
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		raw    string
		reason string
	}{
		{"", "empty"},
		{"xbdgh", "too short"},
		{"xbdghjk", "too long"},
		{"xbdgha", "symbol outside alphabet"},
		{"xbdghx", "repeated symbol"},
		{"XBDGHJ", "uppercase"},
		{"xbdgh1", "digit"},
		{"xxxxxx", "all repeats"},
	}
	for _, c := range cases {
		if _, err := Parse(c.raw); err == nil {
			t.Errorf("Parse(%q) succeeded, want error (%s)", c.raw, c.reason)
		} else if !errors.Is(err, ErrInvalidCode) {
			t.Errorf("Parse(%q) error %v does not wrap ErrInvalidCode", c.raw, err)
		}
	}
}

func TestSpaceSizeArithmetic(t *testing.T) {
	if SpaceSize != 1235520 {
		t.Errorf("SpaceSize = %d, want 1235520", SpaceSize)
	}
}

func TestCompareUsesAlphabetRank(t *testing.T) {
	// 'x' is rank 0 despite its large byte value, so any code starting
	// with 'x' sorts before any code starting with 'b'.
	a := MustParse("xbdghj")
	b := MustParse("bdghjk")
	if Compare(a, b) != -1 {
		t.Errorf("Compare(%s, %s) = %d, want -1", a, b, Compare(a, b))
	}
	if Compare(b, a) != 1 {
		t.Errorf("Compare(%s, %s) = %d, want 1", b, a, Compare(b, a))
	}
	if Compare(a, a) != 0 {
		t.Errorf("Compare(%s, %s) = %d, want 0", a, a, Compare(a, a))
	}
}

func TestCompareIsStrictTotalOrder(t *testing.T) {
	codes := []Code{
		MustParse("xbdghj"),
		MustParse("xbdghk"),
		MustParse("bxdghj"),
		MustParse("zvsnml"),
		MustParse("hgdbxj"),
		MustParse("njmslk"),
	}
	for _, a := range codes {
		for _, b := range codes {
			if Compare(a, b) != -Compare(b, a) {
				t.Errorf("antisymmetry violated for %s, %s", a, b)
			}
			for _, c := range codes {
				if Compare(a, b) < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Errorf("transitivity violated for %s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestCodeTextRoundTrip(t *testing.T) {
	code := MustParse("hgdbxj")
	data, err := code.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var decoded Code
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if decoded != code {
		t.Errorf("round trip = %s, want %s", decoded, code)
	}

	var zero Code
	if err := zero.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil): %v", err)
	}
	if !zero.IsZero() {
		t.Error("UnmarshalText(nil) should produce the zero value")
	}

	if err := zero.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText should reject an invalid code")
	}
}

func TestArchiveIsValidButReserved(t *testing.T) {
	if !IsValid(Archive.String()) {
		t.Error("Archive must be a well-formed code")
	}
	if !Archive.IsArchive() {
		t.Error("Archive.IsArchive() = false")
	}
	if Start.IsArchive() {
		t.Error("Start.IsArchive() = true")
	}
}
