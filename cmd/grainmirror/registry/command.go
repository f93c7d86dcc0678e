// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry implements the "registry" command group for
// inspecting the persisted registry store file itself.
package registry

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
	"github.com/grainmirror/grainmirror/lib/codec"
)

// Command returns the "registry" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "registry",
		Summary: "Inspect the registry store file",
		Subcommands: []*cli.Command{
			dumpCommand(),
			pathCommand(),
		},
	}
}

type dumpParams struct {
	cli.ConfigFlag
}

func dumpCommand() *cli.Command {
	var params dumpParams

	return &cli.Command{
		Name:    "dump",
		Summary: "Print the raw store in CBOR diagnostic notation",
		Description: `Print the registry store file in CBOR diagnostic notation.

This shows the exact persisted bytes in readable form, useful when
debugging a registry that fails to load. The structured view of the
same data is "grainmirror list --json".`,
		Usage: "grainmirror registry dump [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("dump", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("dump takes no arguments")
			}
			runtime, err := params.Runtime()
			if err != nil {
				return err
			}
			data, err := runtime.Store.ReadRaw()
			if err != nil {
				return err
			}
			if len(data) == 0 {
				fmt.Println("registry store does not exist yet")
				return nil
			}
			diag, err := codec.Diagnose(data)
			if err != nil {
				return fmt.Errorf("store file is not valid CBOR: %w", err)
			}
			fmt.Println(diag)
			return nil
		},
	}
}

type pathParams struct {
	cli.ConfigFlag
}

func pathCommand() *cli.Command {
	var params pathParams

	return &cli.Command{
		Name:    "path",
		Summary: "Print the store file location",
		Usage:   "grainmirror registry path [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("path", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("path takes no arguments")
			}
			runtime, err := params.Runtime()
			if err != nil {
				return err
			}
			fmt.Println(runtime.Store.Path())
			return nil
		},
	}
}
