// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/grainmirror/grainmirror/lib/contenthash"
	"github.com/grainmirror/grainmirror/lib/registry"
)

// WriteFailure records a single mirror write that did not land during
// a sync. The remaining mirrors are unaffected.
type WriteFailure struct {
	Mirror string `json:"mirror"`
	Error  string `json:"error"`
}

// SyncReport describes the outcome of syncing one source. Written and
// Failures partition the entry's mirror set; Hash is the source
// content hash recorded in the registry.
type SyncReport struct {
	Source   string         `json:"source"`
	Hash     string         `json:"hash,omitempty"`
	Written  []string       `json:"written,omitempty"`
	Failures []WriteFailure `json:"failures,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// OK reports whether the sync fully succeeded: the source was read and
// every mirror received the content.
func (r *SyncReport) OK() bool {
	return r.Error == "" && len(r.Failures) == 0
}

// Sync copies the source's current content to each of its registered
// mirrors and records the content hash and sync time in the registry.
// The whole sequence runs under the store's exclusive lock, so
// concurrent syncs of the same registry serialize.
//
// The registry entry is updated whenever the source itself was
// readable, even if some mirror writes failed: the recorded hash
// states what the source contained at sync time, and verify surfaces
// the mirrors that missed it. An unreadable source returns
// [ErrSourceUnreadable] and leaves the registry untouched.
func (e *Engine) Sync(source string) (*SyncReport, error) {
	canonical, err := registry.Canonicalize(source)
	if err != nil {
		return nil, err
	}
	report := &SyncReport{Source: canonical}
	err = e.store.Update(func(r *registry.Registry) error {
		entry := r.Entry(canonical)
		if entry == nil {
			return fmt.Errorf("%w: %s", registry.ErrSourceNotRegistered, canonical)
		}
		data, err := e.fs.Read(canonical)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, canonical, err)
		}
		report.Hash = contenthash.HashBytes(data).String()
		for _, mirror := range entry.Mirrors {
			if err := e.fs.Write(mirror, data); err != nil {
				report.Failures = append(report.Failures, WriteFailure{
					Mirror: mirror,
					Error:  err.Error(),
				})
				continue
			}
			report.Written = append(report.Written, mirror)
		}
		entry.Hash = report.Hash
		entry.LastSync = e.clock.Now().UTC().Format(time.RFC3339)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// SyncAll syncs every registered source in sorted path order. A
// failing source is reported in its slot and does not stop the rest;
// the returned error aggregates all source-level and mirror-level
// failures, or is nil when everything landed.
func (e *Engine) SyncAll() ([]*SyncReport, error) {
	var sources []string
	err := e.store.View(func(r *registry.Registry) error {
		sources = r.SourcePaths()
		return nil
	})
	if err != nil {
		return nil, err
	}
	var merr *multierror.Error
	reports := make([]*SyncReport, 0, len(sources))
	for _, source := range sources {
		report, err := e.Sync(source)
		if err != nil {
			report = &SyncReport{Source: source, Error: err.Error()}
			merr = multierror.Append(merr, err)
		}
		for _, failure := range report.Failures {
			merr = multierror.Append(merr, fmt.Errorf("%s -> %s: %s",
				report.Source, failure.Mirror, failure.Error))
		}
		reports = append(reports, report)
	}
	return reports, merr.ErrorOrNil()
}
