package callrecords

import (
	"context"
	"errors"
	"testing"
	"time"

	"salesops-platform/internal/crm"
)

type recordingObserver struct {
	calls int
	last  string
}

func (o *recordingObserver) OutcomeRecorded(ctx context.Context, rec CallRecord, outcome string) {
	o.calls++
	o.last = outcome
}

func TestRecordOutcome_NoHistoryFailsWithoutWrites(t *testing.T) {
	store := testStore()
	prospects := crm.NewMemoryProspectRepo()
	prospects.Put(crm.Prospect{ID: "p1", Territory: "t"})

	r := NewOutcomeRecorder(store, prospects)
	err := r.RecordOutcome(context.Background(), "p1", "r1", "Not interested", "")
	if !errors.Is(err, ErrNoCallHistory) {
		t.Fatalf("expected ErrNoCallHistory, got %v", err)
	}

	if len(store.records) != 0 {
		t.Fatalf("expected no call records written")
	}
	p, _ := prospects.Get(context.Background(), "p1")
	if p.LastContactAt != nil || p.LastCallOutcome != "" {
		t.Fatalf("prospect must not be stamped on failure: %+v", p)
	}
}

func TestRecordOutcome_UpdatesRecordAndProspect(t *testing.T) {
	store := testStore()
	prospects := crm.NewMemoryProspectRepo()
	prospects.Put(crm.Prospect{ID: "p1", Territory: "t"})

	// A dialed call exists for the pair.
	if _, err := store.Upsert(context.Background(), "CA1", Patch{
		ProspectID: strPtr("p1"),
		CallerID:   strPtr("r1"),
		Status:     strPtr(StatusCompleted),
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	obs := &recordingObserver{}
	r := NewOutcomeRecorder(store, prospects).WithObserver(obs)
	r.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }

	if err := r.RecordOutcome(context.Background(), "p1", "r1", "Scheduled demo", "asked for pricing"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	rec, err := store.GetByKey(context.Background(), "CA1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Outcome != "Scheduled demo" || rec.Notes != "asked for pricing" {
		t.Fatalf("outcome not applied: %+v", rec)
	}

	p, _ := prospects.Get(context.Background(), "p1")
	if p.LastCallOutcome != "Scheduled demo" {
		t.Fatalf("prospect outcome not mirrored: %q", p.LastCallOutcome)
	}
	if p.LastContactAt == nil || !p.LastContactAt.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("prospect contact not stamped: %v", p.LastContactAt)
	}
	if obs.calls != 1 || obs.last != "Scheduled demo" {
		t.Fatalf("observer not notified: %+v", obs)
	}
}

func TestRecordOutcome_PicksLatestAttempt(t *testing.T) {
	store := NewMemoryStore()
	base := time.Unix(1700000000, 0).UTC()
	prospects := crm.NewMemoryProspectRepo()
	prospects.Put(crm.Prospect{ID: "p1", Territory: "t"})

	store.SetClock(func() time.Time { return base })
	_, _ = store.Upsert(context.Background(), "CA-old", Patch{ProspectID: strPtr("p1"), CallerID: strPtr("r1")})
	store.SetClock(func() time.Time { return base.Add(time.Hour) })
	_, _ = store.Upsert(context.Background(), "CA-new", Patch{ProspectID: strPtr("p1"), CallerID: strPtr("r1")})

	r := NewOutcomeRecorder(store, prospects)
	if err := r.RecordOutcome(context.Background(), "p1", "r1", "Left voicemail", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	newRec, _ := store.GetByKey(context.Background(), "CA-new")
	oldRec, _ := store.GetByKey(context.Background(), "CA-old")
	if newRec.Outcome != "Left voicemail" {
		t.Fatalf("latest record not annotated: %+v", newRec)
	}
	if oldRec.Outcome == "Left voicemail" {
		t.Fatalf("older record must not be annotated: %+v", oldRec)
	}
}

func TestRecordOutcome_ValidatesInput(t *testing.T) {
	r := NewOutcomeRecorder(testStore(), crm.NewMemoryProspectRepo())
	cases := [][3]string{
		{"", "r1", "x"},
		{"p1", "", "x"},
		{"p1", "r1", ""},
	}
	for i, c := range cases {
		if err := r.RecordOutcome(context.Background(), c[0], c[1], c[2], ""); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}
