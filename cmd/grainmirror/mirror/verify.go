// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
	libmirror "github.com/grainmirror/grainmirror/lib/mirror"
)

var (
	inSyncStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	driftStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sourceStyle  = lipgloss.NewStyle().Bold(true)
)

type verifyParams struct {
	cli.JSONOutput
	cli.ConfigFlag
}

// VerifyCommand returns the "verify" command.
func VerifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Detect mirror drift",
		Description: `Recompute each source's content hash and compare every mirror
against it.

Two findings are reported independently: whether the source changed
since its last sync (the registry's hash is stale), and whether each
mirror matches the source's current content. A changed source with
faithful mirrors exits zero; a drifted or missing mirror exits
non-zero.`,
		Usage: "grainmirror verify [SOURCE] [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
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

			var reports []*libmirror.VerifyReport
			var verifyErr error
			if len(args) == 1 {
				report, err := engine.Verify(args[0])
				if err != nil {
					return err
				}
				reports = []*libmirror.VerifyReport{report}
			} else {
				reports, verifyErr = engine.VerifyAll()
				if reports == nil && verifyErr != nil {
					return verifyErr
				}
			}

			if done, err := params.EmitJSON(reports); done {
				if err != nil {
					return err
				}
				return verifyExit(reports, verifyErr)
			}
			printVerifyReports(reports)
			if verifyErr != nil {
				fmt.Println(driftStyle.Render(fmt.Sprintf("unverifiable: %v", verifyErr)))
			}
			return verifyExit(reports, verifyErr)
		},
	}
}

func verifyExit(reports []*libmirror.VerifyReport, verifyErr error) error {
	if verifyErr != nil {
		return &cli.ExitError{Code: 1}
	}
	for _, report := range reports {
		if !report.AllInSync() {
			return &cli.ExitError{Code: 1}
		}
	}
	return nil
}

func printVerifyReports(reports []*libmirror.VerifyReport) {
	for _, report := range reports {
		header := sourceStyle.Render(report.Source)
		switch {
		case report.NeverSynced:
			header += " " + changedStyle.Render("(never synced)")
		case report.SourceChanged:
			header += " " + changedStyle.Render("(source changed since last sync)")
		}
		fmt.Println(header)
		for _, status := range report.Mirrors {
			line := fmt.Sprintf("  %-10s %s", status.State, status.Mirror)
			if status.Detail != "" {
				line += " (" + status.Detail + ")"
			}
			if status.State == libmirror.StateInSync {
				fmt.Println(inSyncStyle.Render(line))
			} else {
				fmt.Println(driftStyle.Render(line))
			}
		}
	}
}
