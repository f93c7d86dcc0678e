// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/grainmirror/grainmirror/cmd/grainmirror/cli"
)

type listParams struct {
	cli.JSONOutput
	cli.ConfigFlag
}

// ListCommand returns the "list" command.
func ListCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List registered sources and their mirrors",
		Usage:   "grainmirror list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("list takes no arguments")
			}
			runtime, err := params.Runtime()
			if err != nil {
				return err
			}
			listed, err := runtime.Service().List()
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(listed); done {
				return err
			}
			if len(listed) == 0 {
				fmt.Println("no sources registered")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "SOURCE\tMIRRORS\tLAST SYNC")
			for _, item := range listed {
				lastSync := item.Entry.LastSync
				if lastSync == "" {
					lastSync = "never"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", item.Source, len(item.Entry.Mirrors), lastSync)
				for _, mirrorPath := range item.Entry.Mirrors {
					fmt.Fprintf(tw, "  -> %s\t\t\n", mirrorPath)
				}
			}
			return tw.Flush()
		},
	}
}
