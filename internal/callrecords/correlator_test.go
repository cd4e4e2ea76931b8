package callrecords

import (
	"context"
	"testing"
)

func TestCorrelator_ParentIDWinsAsKey(t *testing.T) {
	s := testStore()
	c := NewCorrelator(s)
	ctx := context.Background()

	// Parent leg event first.
	if _, err := c.RecordStatus(ctx, StatusEvent{CallSid: "A", CallStatus: StatusInitiated}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Relayed child leg; must converge on the same record keyed by A.
	rec, err := c.RecordStatus(ctx, StatusEvent{CallSid: "B", ParentCallSid: "A", CallStatus: StatusAnswered})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.CallKey != "A" {
		t.Fatalf("expected key A, got %s", rec.CallKey)
	}
	if rec.Status != StatusAnswered {
		t.Fatalf("expected answered, got %s", rec.Status)
	}
	if _, err := s.GetByKey(ctx, "B"); err != ErrNotFound {
		t.Fatalf("expected no record under child sid, got %v", err)
	}
	if len(s.records) != 1 {
		t.Fatalf("expected single record, got %d", len(s.records))
	}
}

func TestCorrelator_RecordingBeforeStatus(t *testing.T) {
	s := testStore()
	c := NewCorrelator(s)
	ctx := context.Background()

	rec, err := c.RecordRecording(ctx, RecordingEvent{
		CallSid:                  "CA1",
		RecordingURL:             "https://r/ca1.mp3",
		RecordingDurationSeconds: intPtr(33),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Status != StatusPending {
		t.Fatalf("fresh record should default to pending, got %s", rec.Status)
	}
	if rec.Outcome != "Call completed" {
		t.Fatalf("expected completed outcome, got %q", rec.Outcome)
	}

	// The late status event must not clobber the recording fields.
	rec, err = c.RecordStatus(ctx, StatusEvent{CallSid: "CA1", CallStatus: StatusCompleted})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.RecordingURL != "https://r/ca1.mp3" || rec.DurationSeconds != 33 {
		t.Fatalf("recording fields lost: %+v", rec)
	}
	if rec.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", rec.Status)
	}
}

func TestCorrelator_StatusCarriesSideChannelIdentity(t *testing.T) {
	s := testStore()
	c := NewCorrelator(s)

	rec, err := c.RecordStatus(context.Background(), StatusEvent{
		CallSid:    "CA1",
		CallStatus: StatusRinging,
		To:         "+15551230000",
		ProspectID: "p1",
		CallerID:   "r1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.ProspectID != "p1" || rec.CallerID != "r1" || rec.To != "+15551230000" {
		t.Fatalf("side-channel identity not applied: %+v", rec)
	}
}

func TestCorrelator_RejectsMalformedEvents(t *testing.T) {
	c := NewCorrelator(testStore())
	ctx := context.Background()

	if _, err := c.RecordStatus(ctx, StatusEvent{CallStatus: StatusRinging}); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for missing sid, got %v", err)
	}
	if _, err := c.RecordStatus(ctx, StatusEvent{CallSid: "CA1"}); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for missing status, got %v", err)
	}
	if _, err := c.RecordRecording(ctx, RecordingEvent{CallSid: "CA1"}); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for missing url, got %v", err)
	}
}

func TestCorrelator_DuplicateDeliveryIsIdempotent(t *testing.T) {
	s := testStore()
	c := NewCorrelator(s)
	ctx := context.Background()

	e := StatusEvent{CallSid: "CA1", CallStatus: StatusCompleted, DurationSeconds: intPtr(61)}
	first, err := c.RecordStatus(ctx, e)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := c.RecordStatus(ctx, e)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first != second {
		t.Fatalf("duplicate delivery changed record: %+v vs %+v", first, second)
	}
}
