// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
)

func TestConfirmFrom(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"absolutely\n", false},
		{"", false}, // EOF
	}
	for _, tc := range cases {
		var out strings.Builder
		got := confirmFrom(strings.NewReader(tc.input), &out, "proceed?")
		if got != tc.want {
			t.Errorf("confirmFrom(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Errorf("prompt missing [y/N]: %q", out.String())
		}
	}
}
