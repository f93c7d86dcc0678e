// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for grainmirror.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Commands are assembled into a tree in
// cmd/grainmirror/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// [BindFlags] binds pflag entries from struct tags on a params struct,
// so a command declares its flags next to the fields that receive
// them. [JSONOutput] is an embeddable params struct adding --json
// output. [Runtime] wires configuration into the store, filesystem,
// and clock that command handlers operate on.
package cli
