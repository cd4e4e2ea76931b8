package callrecords

import "time"

// CallRecord is the canonical record a call's webhook events converge on.
//
// Identity: CallKey, derived from the provider's call identifier (the parent
// leg's identifier when the call was relayed). At most one record exists per
// key; duplicate and out-of-order provider deliveries merge into it.
//
// Statuses are stored verbatim as the provider reports them; the store does
// not enforce a transition graph because events can arrive in any order or
// be retried.

type CallRecord struct {
	CallKey string `json:"call_key" db:"call_key"`

	Status string `json:"status" db:"status"`

	ProspectID string `json:"prospect_id,omitempty" db:"prospect_id"`
	CallerID   string `json:"caller_id,omitempty" db:"caller_id"`
	To         string `json:"to,omitempty" db:"to_number"`

	Outcome string `json:"outcome,omitempty" db:"outcome"`
	Notes   string `json:"notes,omitempty" db:"notes"`

	RecordingURL    string `json:"recording_url,omitempty" db:"recording_url"`
	DurationSeconds int    `json:"duration_seconds,omitempty" db:"duration_seconds"`

	// AttemptedAt is set when the record is first created and never overwritten.
	AttemptedAt time.Time `json:"attempted_at" db:"attempted_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Known provider statuses. Stored verbatim; unknown values pass through.
const (
	StatusPending   = "pending"
	StatusInitiated = "initiated"
	StatusRinging   = "ringing"
	StatusAnswered  = "answered"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Defaults applied when a record is created for a previously-unseen key.
const (
	defaultOutcome       = "Call in progress"
	completedCallOutcome = "Call completed"
)

// Patch is a field-level partial update. A nil field leaves the stored value
// untouched; a non-nil field overwrites it, even with an empty value. This
// encodes the merge rule (absent vs. explicitly set) in the type system
// instead of by convention.
type Patch struct {
	Status     *string
	ProspectID *string
	CallerID   *string
	To         *string

	Outcome *string
	Notes   *string

	RecordingURL    *string
	DurationSeconds *int
}

func (p Patch) apply(rec *CallRecord) {
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.ProspectID != nil {
		rec.ProspectID = *p.ProspectID
	}
	if p.CallerID != nil {
		rec.CallerID = *p.CallerID
	}
	if p.To != nil {
		rec.To = *p.To
	}
	if p.Outcome != nil {
		rec.Outcome = *p.Outcome
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
	if p.RecordingURL != nil {
		rec.RecordingURL = *p.RecordingURL
	}
	if p.DurationSeconds != nil {
		rec.DurationSeconds = *p.DurationSeconds
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
