// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirm prints prompt and waits for an explicit affirmative answer
// ("y" or "yes", case-insensitive) on stdin. Anything else, including
// an empty line or EOF, declines.
//
// When stdin is not a terminal the answer cannot be asked for, so
// Confirm declines without reading; non-interactive callers pass
// --yes to skip confirmation instead.
func Confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal; pass --yes to confirm non-interactively")
		return false
	}
	return confirmFrom(os.Stdin, os.Stderr, prompt)
}

func confirmFrom(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
