package callrecords

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and early development.
// A single mutex serializes all keys; good enough at test scale.

type MemoryStore struct {
	mu      sync.Mutex
	records map[string]CallRecord

	clock func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]CallRecord{}, clock: time.Now}
}

// SetClock injects a deterministic clock for tests.
func (s *MemoryStore) SetClock(clock func() time.Time) { s.clock = clock }

func (s *MemoryStore) Upsert(ctx context.Context, key string, patch Patch) (CallRecord, error) {
	if key == "" {
		return CallRecord{}, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock().UTC()
	rec, ok := s.records[key]
	if !ok {
		rec = CallRecord{
			CallKey:     key,
			Status:      StatusPending,
			Outcome:     defaultOutcome,
			AttemptedAt: now,
		}
	}
	patch.apply(&rec)
	rec.UpdatedAt = now
	s.records[key] = rec
	return rec, nil
}

func (s *MemoryStore) GetByKey(ctx context.Context, key string) (CallRecord, error) {
	if key == "" {
		return CallRecord{}, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return CallRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) LatestFor(ctx context.Context, prospectID, callerID string) (CallRecord, error) {
	if prospectID == "" || callerID == "" {
		return CallRecord{}, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest CallRecord
	found := false
	for _, rec := range s.records {
		if rec.ProspectID != prospectID || rec.CallerID != callerID {
			continue
		}
		if !found || rec.AttemptedAt.After(latest.AttemptedAt) {
			latest = rec
			found = true
		}
	}
	if !found {
		return CallRecord{}, ErrNotFound
	}
	return latest, nil
}

func (s *MemoryStore) ListByProspect(ctx context.Context, prospectID string) ([]CallRecord, error) {
	if prospectID == "" {
		return nil, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CallRecord, 0)
	for _, rec := range s.records {
		if rec.ProspectID == prospectID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptedAt.After(out[j].AttemptedAt) })
	return out, nil
}

func (s *MemoryStore) ListByCaller(ctx context.Context, callerID string, from, to time.Time) ([]CallRecord, error) {
	if callerID == "" {
		return nil, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CallRecord, 0)
	for _, rec := range s.records {
		if rec.CallerID != callerID {
			continue
		}
		if rec.AttemptedAt.Before(from) || rec.AttemptedAt.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptedAt.After(out[j].AttemptedAt) })
	return out, nil
}
