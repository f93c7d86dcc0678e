// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package grainorder exposes the grainorder codec and allocator on the
// command line: minting the next free code, validating a code,
// printing code sequences, and tagging plain files with code and
// timestamp.
package grainorder

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
	"github.com/grainmirror/grainmirror/lib/grain"
	"github.com/grainmirror/grainmirror/lib/grainfile"
)

// Command returns the "grain" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "grain",
		Summary: "Work with grainorder codes directly",
		Description: `Work with grainorder codes directly.

A grainorder is a 6-symbol code over the 13-symbol alphabet
"` + grain.Alphabet + `" with no repeated symbols, ordered by alphabet
rank so that alphabetically smaller means newer. These subcommands
expose the codec for scripts; the mirror and rebalance commands use
the same logic internally.`,
		Subcommands: []*cli.Command{
			nextCommand(),
			checkCommand(),
			seqCommand(),
			tagCommand(),
		},
	}
}

type nextParams struct {
	Used []string `flag:"used" desc:"codes already in use (repeatable, comma-separated)"`
	Dir  string   `flag:"dir" desc:"directory whose tagged filenames supply the used codes"`
}

func nextCommand() *cli.Command {
	var params nextParams

	return &cli.Command{
		Name:    "next",
		Summary: "Mint the next free code, smaller than all used codes",
		Description: `Mint the next free code.

With no used codes the start code is printed. Otherwise the result is
the predecessor of the smallest used code: strictly smaller (newer)
than everything in use and guaranteed collision-free. Used codes come
from --used, from the tagged filenames in --dir, or from stdin lines
when neither flag is given and stdin is piped.`,
		Usage: "grainmirror grain next [--used CODE,...] [--dir DIR]",
		Examples: []cli.Example{
			{
				Description: "First code of an empty sequence",
				Command:     "grainmirror grain next",
			},
			{
				Description: "Next code for an existing notes directory",
				Command:     "grainmirror grain next --dir ~/notes",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("next", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("next takes no positional arguments")
			}
			used, err := collectUsed(&params)
			if err != nil {
				return err
			}
			code, err := grain.AllocateNext(used)
			if err != nil {
				return err
			}
			fmt.Println(code)
			return nil
		},
	}
}

// collectUsed gathers used codes from --used, --dir, or piped stdin,
// in that priority order.
func collectUsed(params *nextParams) ([]string, error) {
	if len(params.Used) > 0 {
		return params.Used, nil
	}
	if params.Dir != "" {
		entries, err := os.ReadDir(params.Dir)
		if err != nil {
			return nil, err
		}
		var used []string
		for _, entry := range entries {
			name, err := grainfile.ParseName(entry.Name())
			if err != nil {
				continue
			}
			used = append(used, name.Code.String())
		}
		return used, nil
	}
	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		var used []string
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				used = append(used, line)
			}
		}
		return used, scanner.Err()
	}
	return nil, nil
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Summary: "Validate codes, printing rank order details",
		Description: `Validate one or more codes.

Prints "valid" or the violation for each argument. Exit status is
non-zero if any argument is invalid.`,
		Usage: "grainmirror grain check CODE [CODE...]",
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("expected at least one CODE argument")
			}
			failed := false
			for _, raw := range args {
				code, err := grain.Parse(raw)
				if err != nil {
					failed = true
					fmt.Printf("%s: %v\n", raw, err)
					continue
				}
				switch {
				case code.IsArchive():
					fmt.Printf("%s: valid (reserved archive code)\n", raw)
				default:
					fmt.Printf("%s: valid\n", raw)
				}
			}
			if failed {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

type seqParams struct {
	From string `flag:"from" desc:"code to start from" default:"xbdghj"`
}

func seqCommand() *cli.Command {
	var params seqParams

	return &cli.Command{
		Name:    "seq",
		Summary: "Print a sequence of consecutive codes",
		Description: `Print COUNT consecutive codes in ascending rank order, starting
from --from (inclusive). The reserved archive code is skipped, as in
every other operation.`,
		Usage: "grainmirror grain seq COUNT [--from CODE]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("seq", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected COUNT argument")
			}
			count, err := strconv.Atoi(args[0])
			if err != nil || count < 1 {
				return fmt.Errorf("COUNT must be a positive integer, got %q", args[0])
			}
			code, err := grain.Parse(params.From)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				if i > 0 {
					code, err = grain.Successor(code)
					if errors.Is(err, grain.ErrExhausted) {
						return fmt.Errorf("%w after %d codes", grain.ErrExhausted, i)
					}
					if err != nil {
						return err
					}
				}
				fmt.Println(code)
			}
			return nil
		},
	}
}
