// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
)

// These variables are stamped at build time, e.g.:
//
//	go build -ldflags "\
//	  -X github.com/grainmirror/grainmirror/lib/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/grainmirror/grainmirror/lib/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/grainmirror
//
// An unstamped build (plain go build, go run) reports the zero values
// below, which is fine for development.
var (
	// GitCommit is the short git SHA the binary was built from.
	GitCommit = "unknown"

	// GitDirty is "true" when the build tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// Version is the release version, bumped by hand when tagging.
	Version = "0.1.0-dev"
)

// Info returns the one-line version string the version subcommand
// leads with.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("grainmirror %s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns Info plus the Go toolchain and platform the binary was
// built with.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the release version.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return GitCommit
}
