// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package rebalance

import (
	"fmt"
	"path/filepath"

	"github.com/grainmirror/grainmirror/lib/grainfile"
)

// PartialFailure reports an apply that stopped partway. Completed
// renames have happened on disk; Pending ones have not, and their
// From fields give the name each unmoved file currently carries,
// which may be a temporary vacating name when the run was interrupted
// while untangling a code exchange.
type PartialFailure struct {
	Completed []Rename
	Pending   []Rename
	Cause     error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("rebalance stopped after %d of %d renames: %v",
		len(e.Completed), len(e.Completed)+len(e.Pending), e.Cause)
}

func (e *PartialFailure) Unwrap() error { return e.Cause }

// Apply performs the plan's renames, skipping no-ops. Renames run in
// an order that vacates a code before any other file claims it, so an
// interruption at any point never leaves two files carrying the same
// code. When pending files hold each other's planned codes (an
// exchange cycle), one of them is first moved to a dot-prefixed
// temporary name, which carries no code at all. The batch is still
// not atomic: the first failure stops the run and is returned as a
// [PartialFailure] listing exactly which renames landed and where
// every unmoved file currently lives. A rename whose target name
// already exists on disk fails rather than overwriting.
func (r *Rebalancer) Apply(plan *Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	type move struct {
		planned Rename
		current string // name the file carries right now
		code    string // code the file carries right now; empty while parked at a temporary name
		target  string // code the planned name carries
		done    bool
	}
	var moves []*move
	// held tracks the codes still carried by files this plan has yet
	// to move; a code is claimable only once its holder vacated it.
	held := make(map[string]bool)
	for _, rename := range plan.Renames {
		if rename.NoOp() {
			continue
		}
		// Validate already proved both names parse.
		from, err := grainfile.ParseName(rename.From)
		if err != nil {
			return err
		}
		to, err := grainfile.ParseName(rename.To)
		if err != nil {
			return err
		}
		moves = append(moves, &move{
			planned: rename,
			current: rename.From,
			code:    from.Code.String(),
			target:  to.Code.String(),
		})
		held[from.Code.String()] = true
	}

	var completed []Rename
	fail := func(cause error) error {
		var pending []Rename
		for _, m := range moves {
			if !m.done {
				pending = append(pending, Rename{From: m.current, To: m.planned.To})
			}
		}
		return &PartialFailure{Completed: completed, Pending: pending, Cause: cause}
	}

	remaining := len(moves)
	for remaining > 0 {
		progressed := false
		for _, m := range moves {
			if m.done || held[m.target] {
				continue
			}
			to := filepath.Join(plan.Dir, m.planned.To)
			if err := r.checkTarget(to); err != nil {
				return fail(err)
			}
			if err := r.fs.Rename(filepath.Join(plan.Dir, m.current), to); err != nil {
				return fail(err)
			}
			delete(held, m.code)
			m.done = true
			remaining--
			completed = append(completed, m.planned)
			progressed = true
		}
		if progressed {
			continue
		}

		// Every remaining target code is still carried by another
		// pending file, so the moves form one or more exchange
		// cycles. Vacate the first pending file to a temporary name;
		// its code is some other move's target, which unblocks the
		// next pass.
		var stuck *move
		for _, m := range moves {
			if !m.done {
				stuck = m
				break
			}
		}
		temporary := "." + stuck.planned.To + ".rebalance"
		temporaryPath := filepath.Join(plan.Dir, temporary)
		if err := r.checkTarget(temporaryPath); err != nil {
			return fail(err)
		}
		if err := r.fs.Rename(filepath.Join(plan.Dir, stuck.current), temporaryPath); err != nil {
			return fail(err)
		}
		delete(held, stuck.code)
		stuck.current = temporary
		stuck.code = ""
	}
	return nil
}

// checkTarget fails when the target path is already occupied. This can
// only happen when the directory changed between planning and
// applying; stopping here keeps codes collision-free.
func (r *Rebalancer) checkTarget(path string) error {
	exists, err := r.fs.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("target %s already exists", path)
	}
	return nil
}
