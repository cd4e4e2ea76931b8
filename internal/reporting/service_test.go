package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"salesops-platform/internal/callrecords"
)

func seedRecord(t *testing.T, s *callrecords.MemoryStore, key string, patch callrecords.Patch) {
	t.Helper()
	if _, err := s.Upsert(context.Background(), key, patch); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestActivitySummary(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	store := callrecords.NewMemoryStore()
	store.SetClock(func() time.Time { return now })

	seedRecord(t, store, "c1", callrecords.Patch{
		CallerID: strPtr("r1"), Status: strPtr(callrecords.StatusCompleted),
		DurationSeconds: intPtr(30), RecordingURL: strPtr("https://r/1.mp3"),
		Outcome: strPtr("Scheduled demo"),
	})
	seedRecord(t, store, "c2", callrecords.Patch{
		CallerID: strPtr("r1"), Status: strPtr(callrecords.StatusFailed),
	})
	seedRecord(t, store, "c3", callrecords.Patch{
		CallerID: strPtr("r1"), Status: strPtr(callrecords.StatusCompleted),
		DurationSeconds: intPtr(50),
	})
	// other caller excluded
	seedRecord(t, store, "c4", callrecords.Patch{
		CallerID: strPtr("r2"), Status: strPtr(callrecords.StatusCompleted),
	})

	svc := NewService(store)
	out, err := svc.ActivitySummary(context.Background(), ActivitySummaryRequest{
		CallerID: "r1",
		Range:    TimeRange{From: now.Add(-time.Hour), To: now.Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.TotalCalls != 3 {
		t.Fatalf("expected 3 calls, got %d", out.TotalCalls)
	}
	if out.CompletedCalls != 2 || out.FailedCalls != 1 {
		t.Fatalf("unexpected status counts: %+v", out)
	}
	if out.RecordedCalls != 1 || out.AnnotatedCalls != 1 {
		t.Fatalf("unexpected recorded/annotated: %+v", out)
	}
	if out.TotalDurationSeconds != 80 || out.AverageDurationSeconds != 26 {
		t.Fatalf("unexpected durations: %+v", out)
	}
}

func TestActivitySummary_ValidatesRequest(t *testing.T) {
	svc := NewService(callrecords.NewMemoryStore())
	now := time.Unix(1700000000, 0).UTC()

	cases := []ActivitySummaryRequest{
		{CallerID: "", Range: TimeRange{From: now, To: now.Add(time.Hour)}},
		{CallerID: "r1"},
		{CallerID: "r1", Range: TimeRange{From: now.Add(time.Hour), To: now}},
	}
	for i, req := range cases {
		if _, err := svc.ActivitySummary(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
}
