package crm

import (
	"context"
	"sync"
	"time"
)

// MemoryProspectRepo is an in-memory ProspectRepository for tests and early development.

type MemoryProspectRepo struct {
	mu        sync.Mutex
	Prospects map[string]Prospect
}

func NewMemoryProspectRepo() *MemoryProspectRepo {
	return &MemoryProspectRepo{Prospects: map[string]Prospect{}}
}

func (r *MemoryProspectRepo) Put(p Prospect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Prospects[p.ID] = p
}

func (r *MemoryProspectRepo) Get(ctx context.Context, id string) (Prospect, error) {
	if id == "" {
		return Prospect{}, ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Prospects[id]
	if !ok {
		return Prospect{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryProspectRepo) ListByTerritory(ctx context.Context, territory string) ([]Prospect, error) {
	if territory == "" {
		return nil, ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Prospect, 0)
	for _, p := range r.Prospects {
		if p.Territory == territory {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryProspectRepo) RecordContact(ctx context.Context, id string, at time.Time, outcome string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Prospects[id]
	if !ok {
		return ErrNotFound
	}
	t := at.UTC()
	p.LastContactAt = &t
	p.LastCallOutcome = outcome
	p.UpdatedAt = t
	r.Prospects[id] = p
	return nil
}

func (r *MemoryProspectRepo) UpdateCoordinates(ctx context.Context, id string, lat, lng float64) error {
	if id == "" {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Prospects[id]
	if !ok {
		return ErrNotFound
	}
	p.SetCoordinates(lat, lng)
	r.Prospects[id] = p
	return nil
}

// MemoryFieldRepRepo is an in-memory FieldRepRepository.

type MemoryFieldRepRepo struct {
	mu   sync.Mutex
	Reps map[string]FieldRep
}

func NewMemoryFieldRepRepo() *MemoryFieldRepRepo {
	return &MemoryFieldRepRepo{Reps: map[string]FieldRep{}}
}

func (r *MemoryFieldRepRepo) Put(rep FieldRep) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reps[rep.ID] = rep
}

func (r *MemoryFieldRepRepo) Get(ctx context.Context, id string) (FieldRep, error) {
	if id == "" {
		return FieldRep{}, ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.Reps[id]
	if !ok {
		return FieldRep{}, ErrNotFound
	}
	return rep, nil
}
