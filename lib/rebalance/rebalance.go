// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package rebalance

import (
	"errors"
	"fmt"
	"sort"

	"github.com/grainmirror/grainmirror/lib/fsys"
	"github.com/grainmirror/grainmirror/lib/grain"
	"github.com/grainmirror/grainmirror/lib/grainfile"
)

// ErrPlanExhausted indicates the directory holds more tagged files
// than the grainorder space has codes from the start code onward.
// Practically unreachable (the space holds over a million codes) but
// surfaced verbatim rather than assumed away.
var ErrPlanExhausted = errors.New("rebalance plan exhausted grainorder space")

// Rename is one planned filename change within the plan's directory.
// From and To are entry names, not full paths; they always share the
// same timestamp and remainder and differ only in the grainorder code.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NoOp reports whether the file already carries its planned name.
func (r Rename) NoOp() bool { return r.From == r.To }

// Plan is the full old-name to new-name mapping for one directory,
// newest file first. Files whose code already matches appear as no-op
// entries so the presented mapping is complete.
type Plan struct {
	Dir     string   `json:"dir"`
	Renames []Rename `json:"renames"`
}

// Changes counts the renames that actually move a file.
func (p *Plan) Changes() int {
	n := 0
	for _, r := range p.Renames {
		if !r.NoOp() {
			n++
		}
	}
	return n
}

// Validate checks a plan for internal consistency. Loaded plans may
// have been hand-edited, so every invariant BuildPlan guarantees is
// re-checked: names parse as tagged filenames, each rename preserves
// timestamp and remainder, and no two renames target the same name or
// the same code.
func (p *Plan) Validate() error {
	if p.Dir == "" {
		return errors.New("plan has no directory")
	}
	targets := make(map[string]string, len(p.Renames))
	codes := make(map[string]string, len(p.Renames))
	for _, r := range p.Renames {
		from, err := grainfile.ParseName(r.From)
		if err != nil {
			return fmt.Errorf("plan source: %w", err)
		}
		to, err := grainfile.ParseName(r.To)
		if err != nil {
			return fmt.Errorf("plan target: %w", err)
		}
		if from.Stamp != to.Stamp || from.Rest != to.Rest {
			return fmt.Errorf("rename %s -> %s changes more than the code", r.From, r.To)
		}
		if prior, dup := targets[r.To]; dup {
			return fmt.Errorf("renames of %s and %s both target %s", prior, r.From, r.To)
		}
		targets[r.To] = r.From
		if prior, dup := codes[to.Code.String()]; dup {
			return fmt.Errorf("renames of %s and %s both target code %s", prior, r.From, to.Code)
		}
		codes[to.Code.String()] = r.From
	}
	return nil
}

// Rebalancer plans and applies code reassignment over a filesystem.
type Rebalancer struct {
	fs fsys.FS
}

// NewRebalancer builds a rebalancer over the given filesystem.
func NewRebalancer(fs fsys.FS) *Rebalancer {
	return &Rebalancer{fs: fs}
}

// Scan lists dir and parses each entry name against the tagged
// pattern. Entries that do not parse are excluded without error: a
// mixed directory is normal, only tagged files participate.
func (r *Rebalancer) Scan(dir string) ([]grainfile.TaggedName, error) {
	entries, err := r.fs.List(dir)
	if err != nil {
		return nil, err
	}
	var names []grainfile.TaggedName
	for _, entry := range entries {
		name, err := grainfile.ParseName(entry)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// BuildPlan sorts names newest-first and assigns codes densely from
// the smallest valid code upward, so the newest file ends up with the
// smallest code. Files carrying the reserved archive code are left out
// of the plan entirely: archived files keep their code.
//
// The plan is deterministic: equal timestamps tie-break on the current
// filename, so replanning an unchanged directory yields an identical
// plan.
func (r *Rebalancer) BuildPlan(dir string, names []grainfile.TaggedName) (*Plan, error) {
	active := make([]grainfile.TaggedName, 0, len(names))
	for _, name := range names {
		if name.Code.IsArchive() {
			continue
		}
		active = append(active, name)
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Stamp.Key() != active[j].Stamp.Key() {
			return active[j].Stamp.Before(active[i].Stamp)
		}
		return active[i].String() < active[j].String()
	})

	plan := &Plan{Dir: dir, Renames: make([]Rename, 0, len(active))}
	code := grain.Start
	for i, name := range active {
		if i > 0 {
			next, err := grain.Successor(code)
			if err != nil {
				return nil, fmt.Errorf("%w: %d files from %s", ErrPlanExhausted, len(active), grain.Start)
			}
			code = next
		}
		plan.Renames = append(plan.Renames, Rename{
			From: name.String(),
			To:   name.WithCode(code).String(),
		})
	}
	return plan, nil
}
