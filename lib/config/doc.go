// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for grainmirror.
//
// Configuration is loaded from a single file specified by:
//   - the GRAINMIRROR_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// There are no discovery fallbacks: configuration never comes from a
// file the operator did not name. When neither the variable nor the
// flag is set, the built-in defaults apply unchanged, so the tool
// works out of the box with the registry under the XDG state
// directory.
package config
