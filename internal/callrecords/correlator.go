package callrecords

import (
	"context"
	"errors"
)

// Correlator maps inbound provider events to call-record keys and applies
// them through the store's merge-upsert.
//
// Correlation rule: when a status event carries a parent call identifier
// (the call leg was relayed, e.g. a browser call bridged to a PSTN leg),
// the parent identifier is the key; otherwise the primary identifier is.
// Both legs of a relayed call then converge on one record.
//
// No ordering is assumed between event sources. A recording event arriving
// before its "completed" status event merges cleanly because each event only
// touches its own fields.

type Correlator struct {
	store Store
}

func NewCorrelator(store Store) *Correlator {
	return &Correlator{store: store}
}

// StatusEvent is a provider call-status callback, field-exact with common
// telephony providers' wire shape.
type StatusEvent struct {
	CallSid         string
	ParentCallSid   string
	CallStatus      string
	To              string
	DurationSeconds *int

	// ProspectID and CallerID arrive via side channel (custom callback
	// parameters), not from the provider's own payload.
	ProspectID string
	CallerID   string
}

// CorrelationKey resolves which record this event belongs to.
func (e StatusEvent) CorrelationKey() string {
	if e.ParentCallSid != "" {
		return e.ParentCallSid
	}
	return e.CallSid
}

// RecordingEvent is a provider recording-ready callback. Recording fetch and
// durable storage are external; only the final URL is recorded here.
type RecordingEvent struct {
	CallSid                  string
	RecordingURL             string
	RecordingDurationSeconds *int
}

func (c *Correlator) RecordStatus(ctx context.Context, e StatusEvent) (CallRecord, error) {
	if c.store == nil {
		return CallRecord{}, errors.New("callrecords: store not configured")
	}
	if e.CallSid == "" {
		return CallRecord{}, ErrInvalidArgument
	}
	if e.CallStatus == "" {
		return CallRecord{}, ErrInvalidArgument
	}

	patch := Patch{Status: &e.CallStatus}
	if e.To != "" {
		patch.To = &e.To
	}
	if e.DurationSeconds != nil {
		patch.DurationSeconds = e.DurationSeconds
	}
	if e.ProspectID != "" {
		patch.ProspectID = &e.ProspectID
	}
	if e.CallerID != "" {
		patch.CallerID = &e.CallerID
	}
	return c.store.Upsert(ctx, e.CorrelationKey(), patch)
}

func (c *Correlator) RecordRecording(ctx context.Context, e RecordingEvent) (CallRecord, error) {
	if c.store == nil {
		return CallRecord{}, errors.New("callrecords: store not configured")
	}
	if e.CallSid == "" || e.RecordingURL == "" {
		return CallRecord{}, ErrInvalidArgument
	}

	patch := Patch{
		RecordingURL: &e.RecordingURL,
		Outcome:      strPtr(completedCallOutcome),
	}
	if e.RecordingDurationSeconds != nil {
		patch.DurationSeconds = e.RecordingDurationSeconds
	}
	return c.store.Upsert(ctx, e.CallSid, patch)
}
