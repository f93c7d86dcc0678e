// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

// Package rebalance implements the "rebalance" command: reassign a
// dense sequence of grainorder codes to a directory's tagged files,
// newest first, with explicit confirmation before renaming.
package rebalance

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
	librebalance "github.com/grainmirror/grainmirror/lib/rebalance"
)

var (
	fromStyle  = lipgloss.NewStyle().Faint(true)
	toStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noOpStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type rebalanceParams struct {
	cli.ConfigFlag
	Yes     bool   `flag:"yes,y" desc:"apply without asking for confirmation"`
	DryRun  bool   `flag:"dry-run,n" desc:"print the plan and exit without renaming"`
	PlanOut string `flag:"plan-out" desc:"write the plan as JSON to this file and exit"`
	PlanIn  string `flag:"plan-in" desc:"apply a previously saved plan instead of planning"`
}

// Command returns the "rebalance" command.
func Command() *cli.Command {
	var params rebalanceParams

	return &cli.Command{
		Name:    "rebalance",
		Summary: "Reassign dense grainorder codes to a directory's tagged files",
		Description: `Reassign a dense, collision-free sequence of grainorder codes to the
tagged files in DIR.

Files are sorted by their timestamp, newest first; the newest file
gets the smallest valid code and each older file the next one up.
Untagged files and files carrying the reserved archive code are left
alone. The plan is shown and applied only after confirmation (or
--yes).

A plan can be saved with --plan-out, reviewed or hand-edited (JSON
with comments is accepted), and applied later with --plan-in.`,
		Usage: "grainmirror rebalance DIR [flags]",
		Examples: []cli.Example{
			{
				Description: "Preview what would change",
				Command:     "grainmirror rebalance ~/notes --dry-run",
			},
			{
				Description: "Save a plan for review, apply it later",
				Command:     "grainmirror rebalance ~/notes --plan-out plan.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("rebalance", &params)
		},
		Run: func(args []string) error {
			return run(&params, args)
		},
	}
}

func run(params *rebalanceParams, args []string) error {
	runtime, err := params.Runtime()
	if err != nil {
		return err
	}
	rebalancer := librebalance.NewRebalancer(runtime.FS)

	var plan *librebalance.Plan
	if params.PlanIn != "" {
		if len(args) != 0 {
			return fmt.Errorf("--plan-in carries its own directory; drop the DIR argument")
		}
		plan, err = librebalance.LoadPlan(runtime.FS, params.PlanIn)
		if err != nil {
			return err
		}
	} else {
		if len(args) != 1 {
			return fmt.Errorf("expected DIR argument, got %d", len(args))
		}
		names, err := rebalancer.Scan(args[0])
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("no tagged files found")
			return nil
		}
		plan, err = rebalancer.BuildPlan(args[0], names)
		if err != nil {
			return err
		}
	}

	if params.PlanOut != "" {
		if err := librebalance.SavePlan(runtime.FS, params.PlanOut, plan); err != nil {
			return err
		}
		fmt.Printf("plan with %d rename(s) written to %s\n", plan.Changes(), params.PlanOut)
		return nil
	}

	printPlan(plan)
	if plan.Changes() == 0 {
		fmt.Println("already balanced, nothing to do")
		return nil
	}
	if params.DryRun {
		return nil
	}
	if !params.Yes && !cli.Confirm(fmt.Sprintf("rename %d file(s) in %s?", plan.Changes(), plan.Dir)) {
		fmt.Println("aborted")
		return &cli.ExitError{Code: 1}
	}

	if err := rebalancer.Apply(plan); err != nil {
		var partial *librebalance.PartialFailure
		if errors.As(err, &partial) {
			printPartialFailure(partial)
			return &cli.ExitError{Code: 1}
		}
		return err
	}
	fmt.Printf("renamed %d file(s)\n", plan.Changes())
	return nil
}

func printPlan(plan *librebalance.Plan) {
	fmt.Printf("%s:\n", plan.Dir)
	for _, rename := range plan.Renames {
		if rename.NoOp() {
			fmt.Println(noOpStyle.Render("  = " + rename.From))
			continue
		}
		fmt.Printf("  %s\n  -> %s\n",
			fromStyle.Render(rename.From),
			toStyle.Render(rename.To))
	}
}

func printPartialFailure(partial *librebalance.PartialFailure) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(partial.Error()))
	for _, rename := range partial.Completed {
		fmt.Fprintf(os.Stderr, "  done:    %s -> %s\n", rename.From, rename.To)
	}
	for _, rename := range partial.Pending {
		fmt.Fprintf(os.Stderr, "  pending: %s -> %s\n", rename.From, rename.To)
	}
	fmt.Fprintln(os.Stderr, "pending entries show where each file currently lives; finish the renames by hand or re-run rebalance")
}
