// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete grainmirror CLI command tree.
package commands

import (
	"fmt"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
	grainordercmd "github.com/grainmirror/grainmirror/cmd/grainmirror/grainorder"
	mirrorcmd "github.com/grainmirror/grainmirror/cmd/grainmirror/mirror"
	rebalancecmd "github.com/grainmirror/grainmirror/cmd/grainmirror/rebalance"
	registrycmd "github.com/grainmirror/grainmirror/cmd/grainmirror/registry"
	"github.com/grainmirror/grainmirror/lib/version"
)

// Root builds and returns the complete grainmirror command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "grainmirror",
		Description: `grainmirror: mirror files and keep their names ordered.

Track hard copies of important files across directories, detect when
a copy drifts from its source, and keep grainorder-tagged filenames
densely ordered by age.`,
		Subcommands: []*cli.Command{
			mirrorcmd.RegisterCommand(),
			mirrorcmd.RemoveCommand(),
			mirrorcmd.DropCommand(),
			mirrorcmd.ListCommand(),
			mirrorcmd.SyncCommand(),
			mirrorcmd.VerifyCommand(),
			rebalancecmd.Command(),
			grainordercmd.Command(),
			registrycmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Println(version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Register a mirror and sync it",
				Command:     "grainmirror register ~/docs/notes.md ~/backup/notes.md && grainmirror sync",
			},
			{
				Description: "Check every mirror for drift",
				Command:     "grainmirror verify",
			},
			{
				Description: "Keep mirrors current while editing",
				Command:     "grainmirror sync --watch",
			},
			{
				Description: "Re-sort a notes directory's grainorder codes",
				Command:     "grainmirror rebalance ~/notes",
			},
			{
				Description: "Mint the next code for a new file",
				Command:     "grainmirror grain next --dir ~/notes",
			},
		},
	}
}
