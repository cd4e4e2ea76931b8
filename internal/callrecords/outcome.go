package callrecords

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salesops-platform/internal/crm"
)

// OutcomeRecorder attaches a human-entered outcome to the most recent call
// for a (prospect, caller) pair and mirrors the result onto the prospect.
//
// An outcome can only follow a call that went through the dialer: no record
// for the pair, or a record without a call key, fails with ErrNoCallHistory
// and nothing is written.
//
// The call-record upsert and the prospect stamp are two writes, not one
// transaction. RecordContact is idempotent, so a retry after a partial
// failure converges; the inconsistency window is the retry interval.

type OutcomeRecorder struct {
	store     Store
	prospects crm.ProspectRepository

	// observer is notified after both writes succeed; best-effort (audit).
	observer OutcomeObserver

	clock func() time.Time
}

// OutcomeObserver receives successful outcome recordings, e.g. for the audit
// trail. Failures are logged by implementations, never propagated.
type OutcomeObserver interface {
	OutcomeRecorded(ctx context.Context, rec CallRecord, outcome string)
}

func NewOutcomeRecorder(store Store, prospects crm.ProspectRepository) *OutcomeRecorder {
	return &OutcomeRecorder{store: store, prospects: prospects, clock: time.Now}
}

// WithObserver attaches a best-effort observer for recorded outcomes.
func (r *OutcomeRecorder) WithObserver(o OutcomeObserver) *OutcomeRecorder {
	r.observer = o
	return r
}

func (r *OutcomeRecorder) RecordOutcome(ctx context.Context, prospectID, callerID, outcome, notes string) error {
	if r.store == nil || r.prospects == nil {
		return errors.New("callrecords: outcome recorder not configured")
	}
	if prospectID == "" || callerID == "" || outcome == "" {
		return ErrInvalidArgument
	}

	latest, err := r.store.LatestFor(ctx, prospectID, callerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNoCallHistory
		}
		return fmt.Errorf("find latest call: %w", err)
	}
	if latest.CallKey == "" {
		return ErrNoCallHistory
	}

	patch := Patch{Outcome: &outcome}
	if notes != "" {
		patch.Notes = &notes
	}
	rec, err := r.store.Upsert(ctx, latest.CallKey, patch)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}

	if err := r.prospects.RecordContact(ctx, prospectID, r.clock().UTC(), outcome); err != nil {
		return fmt.Errorf("stamp prospect contact: %w", err)
	}

	if r.observer != nil {
		r.observer.OutcomeRecorded(ctx, rec, outcome)
	}
	return nil
}
