// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	ran := false
	root := &Command{
		Name: "grainmirror",
		Subcommands: []*Command{
			{
				Name: "sync",
				Run: func(args []string) error {
					ran = true
					return nil
				},
			},
		},
	}
	if err := root.Execute([]string{"sync"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Error("subcommand Run never called")
	}
}

func TestExecuteUnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name: "grainmirror",
		Subcommands: []*Command{
			{Name: "verify", Run: func([]string) error { return nil }},
		},
	}
	err := root.Execute([]string{"verfy"})
	if err == nil {
		t.Fatal("Execute accepted an unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "verify"`) {
		t.Errorf("err = %v, want a suggestion for verify", err)
	}
}

func TestExecuteParsesFlagsAndPassesPositionals(t *testing.T) {
	var force bool
	var got []string
	command := &Command{
		Name: "drop",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("drop", pflag.ContinueOnError)
			flagSet.BoolVar(&force, "force", false, "")
			return flagSet
		},
		Run: func(args []string) error {
			got = args
			return nil
		},
	}
	if err := command.Execute([]string{"--force", "/src/file"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !force {
		t.Error("--force not parsed")
	}
	if len(got) != 1 || got[0] != "/src/file" {
		t.Errorf("positional args = %v, want [/src/file]", got)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.Bool("json", false, "")
			return flagSet
		},
		Run: func([]string) error { return nil },
	}
	err := command.Execute([]string{"--jsno"})
	if err == nil {
		t.Fatal("Execute accepted an unknown flag")
	}
	if !strings.Contains(err.Error(), "--json") {
		t.Errorf("err = %v, want a suggestion for --json", err)
	}
}

func TestExecuteSubcommandRequiredWithoutArgs(t *testing.T) {
	root := &Command{
		Name:        "grainmirror",
		Subcommands: []*Command{{Name: "sync", Run: func([]string) error { return nil }}},
	}
	if err := root.Execute(nil); err == nil {
		t.Fatal("Execute without args on a group command did not fail")
	}
}

func TestPrintHelpListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:    "grainmirror",
		Summary: "mirror files and keep their names ordered",
		Subcommands: []*Command{
			{Name: "sync", Summary: "copy sources to their mirrors"},
			{Name: "verify", Summary: "detect mirror drift"},
		},
		Examples: []Example{
			{Description: "sync everything", Command: "grainmirror sync"},
		},
	}
	var out strings.Builder
	root.PrintHelp(&out)
	help := out.String()
	for _, want := range []string{"sync", "verify", "copy sources", "grainmirror sync"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestFullNameIncludesParents(t *testing.T) {
	sub := &Command{Name: "next", Run: func([]string) error { return nil }}
	group := &Command{Name: "grain", Subcommands: []*Command{sub}}
	root := &Command{Name: "grainmirror", Subcommands: []*Command{group}}
	// Dispatch sets parent pointers.
	if err := root.Execute([]string{"grain", "next"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := sub.fullName(); got != "grainmirror grain next" {
		t.Errorf("fullName = %q", got)
	}
}
