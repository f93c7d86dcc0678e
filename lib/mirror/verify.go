// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/grainmirror/grainmirror/lib/contenthash"
	"github.com/grainmirror/grainmirror/lib/registry"
)

// MirrorState classifies a mirror against the source's current
// content.
type MirrorState string

const (
	// StateInSync means the mirror's bytes hash identically to the
	// source's current bytes.
	StateInSync MirrorState = "in-sync"
	// StateMissing means the mirror path does not exist.
	StateMissing MirrorState = "missing"
	// StateDrifted means the mirror exists but its content differs
	// from the source's current content.
	StateDrifted MirrorState = "drifted"
	// StateUnreadable means the mirror path exists but could not be
	// read.
	StateUnreadable MirrorState = "unreadable"
)

// MirrorStatus is the verify finding for one mirror path.
type MirrorStatus struct {
	Mirror string      `json:"mirror"`
	State  MirrorState `json:"state"`
	Detail string      `json:"detail,omitempty"`
}

// VerifyReport describes the drift findings for one source.
//
// SourceChanged and the per-mirror states are orthogonal: mirrors are
// judged against the source's CURRENT content, while SourceChanged
// compares that content to the hash recorded at the last sync. A
// source edited after a sync whose mirrors were then manually updated
// reports SourceChanged with every mirror in-sync.
type VerifyReport struct {
	Source string `json:"source"`
	// Hash is the source's current content hash.
	Hash string `json:"hash"`
	// SourceChanged is true when the source content no longer matches
	// the hash recorded at the last sync.
	SourceChanged bool `json:"source_changed"`
	// NeverSynced is true when the entry has no recorded sync;
	// SourceChanged is false in that case because there is nothing to
	// have changed from.
	NeverSynced bool           `json:"never_synced,omitempty"`
	Mirrors     []MirrorStatus `json:"mirrors"`
}

// AllInSync reports whether every mirror matches the source's current
// content. SourceChanged is deliberately excluded: a stale registry
// hash is a finding about the source, not about mirror fidelity.
func (r *VerifyReport) AllInSync() bool {
	for _, m := range r.Mirrors {
		if m.State != StateInSync {
			return false
		}
	}
	return true
}

// Verify recomputes the source's content hash and classifies each
// mirror against it. Verify never mutates the registry or any file;
// it takes only the store's shared lock.
func (e *Engine) Verify(source string) (*VerifyReport, error) {
	canonical, err := registry.Canonicalize(source)
	if err != nil {
		return nil, err
	}
	var entry registry.Entry
	err = e.store.View(func(r *registry.Registry) error {
		found := r.Entry(canonical)
		if found == nil {
			return fmt.Errorf("%w: %s", registry.ErrSourceNotRegistered, canonical)
		}
		entry = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	data, err := e.fs.Read(canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, canonical, err)
	}
	current := contenthash.HashBytes(data)
	report := &VerifyReport{
		Source:      canonical,
		Hash:        current.String(),
		NeverSynced: entry.Hash == "",
	}
	if entry.Hash != "" && entry.Hash != report.Hash {
		report.SourceChanged = true
	}
	for _, mirror := range entry.Mirrors {
		report.Mirrors = append(report.Mirrors, e.mirrorStatus(mirror, current))
	}
	return report, nil
}

func (e *Engine) mirrorStatus(mirror string, want contenthash.Digest) MirrorStatus {
	exists, err := e.fs.Exists(mirror)
	if err != nil {
		return MirrorStatus{Mirror: mirror, State: StateUnreadable, Detail: err.Error()}
	}
	if !exists {
		return MirrorStatus{Mirror: mirror, State: StateMissing}
	}
	data, err := e.fs.Read(mirror)
	if err != nil {
		return MirrorStatus{Mirror: mirror, State: StateUnreadable, Detail: err.Error()}
	}
	if contenthash.HashBytes(data) != want {
		return MirrorStatus{Mirror: mirror, State: StateDrifted}
	}
	return MirrorStatus{Mirror: mirror, State: StateInSync}
}

// VerifyAll verifies every registered source in sorted path order. A
// source-level failure (unreadable source) occupies its slot as a nil
// report and is aggregated into the returned error; drift findings are
// never errors.
func (e *Engine) VerifyAll() ([]*VerifyReport, error) {
	var sources []string
	err := e.store.View(func(r *registry.Registry) error {
		sources = r.SourcePaths()
		return nil
	})
	if err != nil {
		return nil, err
	}
	var merr *multierror.Error
	reports := make([]*VerifyReport, 0, len(sources))
	for _, source := range sources {
		report, err := e.Verify(source)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, merr.ErrorOrNil()
}
