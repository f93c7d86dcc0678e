// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grainorder

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
	"github.com/grainmirror/grainmirror/lib/fsys"
	"github.com/grainmirror/grainmirror/lib/grain"
	"github.com/grainmirror/grainmirror/lib/grainfile"
)

type tagParams struct {
	cli.ConfigFlag
}

func tagCommand() *cli.Command {
	var params tagParams

	return &cli.Command{
		Name:    "tag",
		Summary: "Rename plain files into the tagged grainorder form",
		Description: `Rename one or more plain files into the tagged form
{code}-{stamp}--{name}.

Each file receives the next free code in its directory: newer (rank
smaller) than every code already present there, with files tagged
later in the argument list newer than earlier ones. The timestamp is
the current minute; the zone label comes from the local timezone, or
from stamp.zone in the config file when set. Files already carrying a
tagged name are left alone.

When the directory's smallest code is already the start code there is
no newer code to hand out; rebalancing the directory reopens the
space.`,
		Usage: "grainmirror grain tag FILE [FILE...]",
		Examples: []cli.Example{
			{
				Description: "Tag a freshly written note",
				Command:     "grainmirror grain tag ~/notes/meeting.md",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tag", &params)
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("expected at least one FILE argument")
			}
			rt, err := params.Runtime()
			if err != nil {
				return err
			}
			stamp := grainfile.FromTime(rt.Clock.Now())
			if zone := rt.Config.Stamp.Zone; zone != "" {
				stamp.Zone = zone
			}
			outcomes, err := tagFiles(rt.FS, stamp, args)
			for _, outcome := range outcomes {
				if outcome.skipped {
					fmt.Printf("already tagged: %s\n", outcome.path)
					continue
				}
				fmt.Printf("tagged: %s -> %s\n", outcome.path, outcome.newName)
			}
			return err
		},
	}
}

type tagOutcome struct {
	path    string
	newName string
	skipped bool
}

// tagFiles renames each path into the tagged form, allocating codes
// per directory. Codes minted earlier in the run count as used for
// later paths in the same directory, so every file of a batch gets a
// distinct code and each is newer than the last.
func tagFiles(fs fsys.FS, stamp grainfile.Stamp, paths []string) ([]tagOutcome, error) {
	used := make(map[string][]string)
	var outcomes []tagOutcome
	for _, path := range paths {
		dir := filepath.Dir(path)
		base := filepath.Base(path)
		if _, err := grainfile.ParseName(base); err == nil {
			outcomes = append(outcomes, tagOutcome{path: path, skipped: true})
			continue
		}
		exists, err := fs.Exists(path)
		if err != nil {
			return outcomes, err
		}
		if !exists {
			return outcomes, fmt.Errorf("no such file: %s", path)
		}

		if _, seen := used[dir]; !seen {
			codes, err := taggedCodes(fs, dir)
			if err != nil {
				return outcomes, err
			}
			used[dir] = codes
		}
		code, err := grain.AllocateNext(used[dir])
		if errors.Is(err, grain.ErrExhausted) {
			return outcomes, fmt.Errorf("%w: no code newer than the smallest in %s; rebalance the directory first", err, dir)
		}
		if err != nil {
			return outcomes, err
		}

		name := grainfile.TaggedName{Code: code, Stamp: stamp, Rest: base}
		target := filepath.Join(dir, name.String())
		taken, err := fs.Exists(target)
		if err != nil {
			return outcomes, err
		}
		if taken {
			return outcomes, fmt.Errorf("target %s already exists", target)
		}
		if err := fs.Rename(path, target); err != nil {
			return outcomes, err
		}
		used[dir] = append(used[dir], code.String())
		outcomes = append(outcomes, tagOutcome{path: path, newName: name.String()})
	}
	return outcomes, nil
}

// taggedCodes collects the codes of all tagged filenames in dir.
func taggedCodes(fs fsys.FS, dir string) ([]string, error) {
	entries, err := fs.List(dir)
	if err != nil {
		return nil, err
	}
	var codes []string
	for _, entry := range entries {
		name, err := grainfile.ParseName(entry)
		if err != nil {
			continue
		}
		codes = append(codes, name.Code.String())
	}
	return codes, nil
}
