// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package rebalance

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/grainmirror/grainmirror/lib/fsys"
)

// SavePlan writes the plan as indented JSON. Saved plans are meant to
// be reviewed and possibly hand-edited before applying.
func SavePlan(fs fsys.FS, path string, plan *Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return fs.Write(path, append(data, '\n'))
}

// LoadPlan reads a plan file. Comments and trailing commas are
// tolerated so an operator can annotate a saved plan. The loaded plan
// is validated before being returned.
func LoadPlan(fs fsys.FS, path string) (*Plan, error) {
	data, err := fs.Read(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := json.Unmarshal(jsonc.ToJSON(data), &plan); err != nil {
		return nil, fmt.Errorf("decoding plan %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return &plan, nil
}
