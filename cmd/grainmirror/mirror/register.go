// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
)

type registerParams struct {
	cli.ConfigFlag
}

// RegisterCommand returns the "register" command.
func RegisterCommand() *cli.Command {
	var params registerParams

	return &cli.Command{
		Name:    "register",
		Summary: "Register a mirror path for a source file",
		Description: `Register a mirror path for a source file.

The source must exist; the mirror path need not (it is created on the
first sync). Registering the same pair twice is a no-op. Paths are
canonicalized to absolute form before storage.`,
		Usage: "grainmirror register SOURCE MIRROR [flags]",
		Examples: []cli.Example{
			{
				Description: "Mirror a document into a backup directory",
				Command:     "grainmirror register ~/docs/notes.md ~/backup/notes.md",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("register", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected SOURCE and MIRROR arguments, got %d", len(args))
			}
			runtime, err := params.Runtime()
			if err != nil {
				return err
			}
			already, err := runtime.Service().Register(args[0], args[1])
			if err != nil {
				return err
			}
			if already {
				fmt.Printf("already registered: %s -> %s\n", args[0], args[1])
				return nil
			}
			fmt.Printf("registered: %s -> %s\n", args[0], args[1])
			return nil
		},
	}
}

type removeParams struct {
	cli.ConfigFlag
}

// RemoveCommand returns the "remove" command.
func RemoveCommand() *cli.Command {
	var params removeParams

	return &cli.Command{
		Name:    "remove",
		Summary: "Remove a mirror path from a source's entry",
		Description: `Remove a mirror path from a source's registry entry.

Removing a mirror that was never registered is a no-op. The entry
itself survives with zero mirrors; use "drop" to delete it.`,
		Usage: "grainmirror remove SOURCE MIRROR [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("remove", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected SOURCE and MIRROR arguments, got %d", len(args))
			}
			runtime, err := params.Runtime()
			if err != nil {
				return err
			}
			removed, err := runtime.Service().Unregister(args[0], args[1])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Printf("not registered: %s -> %s\n", args[0], args[1])
				return nil
			}
			fmt.Printf("removed: %s -> %s\n", args[0], args[1])
			return nil
		},
	}
}

type dropParams struct {
	cli.ConfigFlag
	Force bool `flag:"force" desc:"drop the entry even if mirrors are still registered"`
}

// DropCommand returns the "drop" command.
func DropCommand() *cli.Command {
	var params dropParams

	return &cli.Command{
		Name:    "drop",
		Summary: "Delete a source's registry entry",
		Description: `Delete a source's registry entry entirely.

Fails when the entry still lists mirrors unless --force is given. The
mirror files themselves are never touched.`,
		Usage: "grainmirror drop SOURCE [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("drop", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected SOURCE argument, got %d", len(args))
			}
			runtime, err := params.Runtime()
			if err != nil {
				return err
			}
			if err := runtime.Service().Drop(args[0], params.Force); err != nil {
				return err
			}
			fmt.Printf("dropped: %s\n", args[0])
			return nil
		},
	}
}
