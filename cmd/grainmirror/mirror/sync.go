// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
	libmirror "github.com/grainmirror/grainmirror/lib/mirror"
	"github.com/grainmirror/grainmirror/lib/watch"
)

type syncParams struct {
	cli.JSONOutput
	cli.ConfigFlag
	Watch bool `flag:"watch,w" desc:"keep running and re-sync sources when they change"`
}

// SyncCommand returns the "sync" command.
func SyncCommand() *cli.Command {
	var params syncParams

	return &cli.Command{
		Name:    "sync",
		Summary: "Copy sources to their mirrors",
		Description: `Copy each registered source's current content to its mirrors.

With a SOURCE argument, syncs only that source. Without one, syncs
every registered source in sorted path order. A mirror write failure
is reported and does not stop the remaining mirrors or sources.

With --watch, stays running and re-syncs a source whenever its file
changes, coalescing rapid event bursts. Ctrl-C stops the watch.`,
		Usage: "grainmirror sync [SOURCE] [flags]",
		Examples: []cli.Example{
			{
				Description: "Sync everything once",
				Command:     "grainmirror sync",
			},
			{
				Description: "Keep mirrors current while editing",
				Command:     "grainmirror sync --watch",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("sync", &params)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one SOURCE argument, got %d", len(args))
			}
			runtime, err := params.Runtime()
			if err != nil {
				return err
			}
			engine := runtime.Engine()

			if params.Watch {
				if len(args) != 0 {
					return fmt.Errorf("--watch syncs all registered sources; drop the SOURCE argument")
				}
				return runWatch(runtime, engine)
			}

			if len(args) == 1 {
				report, err := engine.Sync(args[0])
				if err != nil {
					return err
				}
				return printSyncReports(&params.JSONOutput, []*libmirror.SyncReport{report})
			}

			// Per-source failures are carried inside the reports;
			// the aggregate error only matters when the registry
			// itself could not be read.
			reports, err := engine.SyncAll()
			if reports == nil {
				return err
			}
			return printSyncReports(&params.JSONOutput, reports)
		},
	}
}

func runWatch(runtime *cli.Runtime, engine *libmirror.Engine) error {
	debounce, err := runtime.Config.DebounceDuration()
	if err != nil {
		return err
	}
	watcher := watch.New(engine, runtime.Store, runtime.Clock, runtime.Logger, debounce)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = watcher.Run(ctx)
	if ctx.Err() != nil {
		// Ctrl-C is the normal way to end a watch.
		return nil
	}
	return err
}

func printSyncReports(jsonOut *cli.JSONOutput, reports []*libmirror.SyncReport) error {
	if done, err := jsonOut.EmitJSON(reports); done {
		return err
	}
	failed := false
	for _, report := range reports {
		if report.Error != "" {
			failed = true
			fmt.Printf("%s: %s\n", report.Source, report.Error)
			continue
		}
		fmt.Printf("%s: %d mirror(s) written\n", report.Source, len(report.Written))
		for _, failure := range report.Failures {
			failed = true
			fmt.Printf("  failed %s: %s\n", failure.Mirror, failure.Error)
		}
	}
	if failed {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
