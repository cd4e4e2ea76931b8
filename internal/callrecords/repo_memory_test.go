package callrecords

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func testStore() *MemoryStore {
	s := NewMemoryStore()
	s.SetClock(func() time.Time { return time.Unix(1700000000, 0).UTC() })
	return s
}

func TestUpsert_CreateAppliesDefaults(t *testing.T) {
	s := testStore()

	rec, err := s.Upsert(context.Background(), "CA1", Patch{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Status != StatusPending {
		t.Fatalf("expected pending, got %q", rec.Status)
	}
	if rec.Outcome != "Call in progress" {
		t.Fatalf("expected default outcome, got %q", rec.Outcome)
	}
	if rec.AttemptedAt.IsZero() {
		t.Fatalf("expected attempted_at set")
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	s := testStore()
	patch := Patch{Status: strPtr(StatusCompleted), DurationSeconds: intPtr(42)}

	first, err := s.Upsert(context.Background(), "CA1", patch)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := s.Upsert(context.Background(), "CA1", patch)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical records, got %+v vs %+v", first, second)
	}
}

func TestUpsert_AbsentFieldsNeverClear(t *testing.T) {
	s := testStore()
	ctx := context.Background()

	if _, err := s.Upsert(ctx, "CA1", Patch{RecordingURL: strPtr("https://r/x.mp3")}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rec, err := s.Upsert(ctx, "CA1", Patch{Status: strPtr(StatusCompleted)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.RecordingURL != "https://r/x.mp3" {
		t.Fatalf("recording url lost: %q", rec.RecordingURL)
	}
	if rec.Status != StatusCompleted {
		t.Fatalf("status not applied: %q", rec.Status)
	}
}

func TestUpsert_AttemptedAtNeverOverwritten(t *testing.T) {
	s := NewMemoryStore()
	first := time.Unix(1700000000, 0).UTC()
	s.SetClock(func() time.Time { return first })

	created, err := s.Upsert(context.Background(), "CA1", Patch{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s.SetClock(func() time.Time { return first.Add(time.Hour) })
	updated, err := s.Upsert(context.Background(), "CA1", Patch{Status: strPtr(StatusRinging)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !updated.AttemptedAt.Equal(created.AttemptedAt) {
		t.Fatalf("attempted_at changed: %v -> %v", created.AttemptedAt, updated.AttemptedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at not advanced")
	}
}

func TestUpsert_ConcurrentSameKeyYieldsOneRecord(t *testing.T) {
	s := testStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var patch Patch
			if i%2 == 0 {
				patch.Status = strPtr(StatusCompleted)
			} else {
				patch.RecordingURL = strPtr("https://r/x.mp3")
			}
			if _, err := s.Upsert(ctx, "CA-race", patch); err != nil {
				t.Errorf("upsert failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	rec, err := s.GetByKey(ctx, "CA-race")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Status != StatusCompleted || rec.RecordingURL != "https://r/x.mp3" {
		t.Fatalf("lost update: %+v", rec)
	}
	if len(s.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(s.records))
	}
}

func TestLatestFor_PicksMostRecentAttempt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Unix(1700000000, 0).UTC()

	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		s.SetClock(func() time.Time { return at })
		key := fmt.Sprintf("CA%d", i)
		if _, err := s.Upsert(ctx, key, Patch{ProspectID: strPtr("p1"), CallerID: strPtr("r1")}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	latest, err := s.LatestFor(ctx, "p1", "r1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if latest.CallKey != "CA2" {
		t.Fatalf("expected CA2, got %s", latest.CallKey)
	}
}

func TestLatestFor_NotFound(t *testing.T) {
	s := testStore()
	if _, err := s.LatestFor(context.Background(), "p-none", "r-none"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
