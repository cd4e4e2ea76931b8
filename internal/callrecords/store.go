package callrecords

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("callrecords: not found")
	ErrInvalidArgument = errors.New("callrecords: invalid argument")

	// ErrNoCallHistory means an outcome was submitted for a (prospect, caller)
	// pair with no prior dialed call. A business-rule failure, not a storage
	// defect; handlers surface it distinctly.
	ErrNoCallHistory = errors.New("callrecords: no call history for prospect and caller")
)

// Store is keyed call-record storage with merge-upsert semantics.
//
// Upsert contract:
// - unseen key: create with defaults (status pending, outcome "Call in
//   progress", attempted_at now), then apply the patch on top
// - existing key: apply only the patch's non-nil fields; everything else is
//   left untouched
//
// Upserts to the same key must serialize (no lost updates) even when two
// events for a previously-unseen key race; upserts to different keys must
// not contend. Records are never deleted; they are the call history.
type Store interface {
	Upsert(ctx context.Context, key string, patch Patch) (CallRecord, error)
	GetByKey(ctx context.Context, key string) (CallRecord, error)

	// LatestFor returns the most recent record for a (prospect, caller) pair,
	// ordered by attempted_at descending.
	LatestFor(ctx context.Context, prospectID, callerID string) (CallRecord, error)

	ListByProspect(ctx context.Context, prospectID string) ([]CallRecord, error)
	ListByCaller(ctx context.Context, callerID string, from, to time.Time) ([]CallRecord, error)
}
