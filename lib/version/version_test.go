// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoNamesTheBinary(t *testing.T) {
	if !strings.HasPrefix(Info(), "grainmirror ") {
		t.Errorf("Info() = %q, want grainmirror prefix", Info())
	}
}

func TestInfoCarriesDirtyMarker(t *testing.T) {
	prior := GitDirty
	defer func() { GitDirty = prior }()

	GitDirty = "true"
	if !strings.Contains(Info(), "-dirty") {
		t.Errorf("Info() = %q, want -dirty marker", Info())
	}
	GitDirty = "false"
	if strings.Contains(Info(), "-dirty") {
		t.Errorf("Info() = %q, want no -dirty marker", Info())
	}
}
