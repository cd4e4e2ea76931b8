package dialer

import (
	"context"
	"errors"
	"time"

	"salesops-platform/internal/crm"
)

// CallListResponse is the wire shape returned to the calling-list endpoint.
type CallListResponse struct {
	FieldRepID string         `json:"field_rep_id"`
	Territory  string         `json:"territory"`
	Count      int            `json:"count"`
	Prospects  []crm.Prospect `json:"prospects"`
}

// ListCache caches generated calling lists for a short TTL.
//
// The cache is an explicit collaborator, not ambient state: misses and cache
// failures both fall through to regeneration, and entries invalidate only by
// expiry.
type ListCache interface {
	Get(ctx context.Context, fieldRepID string) (CallListResponse, bool, error)
	Set(ctx context.Context, fieldRepID string, resp CallListResponse, ttl time.Duration) error
}

// Service loads collaborator data and runs calling-list generation.
type Service struct {
	prospects crm.ProspectRepository
	reps      crm.FieldRepRepository

	cache    ListCache // optional
	cacheTTL time.Duration

	clock func() time.Time
}

func NewService(prospects crm.ProspectRepository, reps crm.FieldRepRepository) *Service {
	return &Service{
		prospects: prospects,
		reps:      reps,
		cacheTTL:  time.Minute,
		clock:     time.Now,
	}
}

// WithCache enables list caching. A non-positive TTL keeps the default.
func (s *Service) WithCache(cache ListCache, ttl time.Duration) *Service {
	s.cache = cache
	if ttl > 0 {
		s.cacheTTL = ttl
	}
	return s
}

// CallList returns the prioritized, route-ordered calling list for a field rep.
func (s *Service) CallList(ctx context.Context, fieldRepID string) (CallListResponse, error) {
	if fieldRepID == "" {
		return CallListResponse{}, crm.ErrInvalidArgument
	}
	if s.prospects == nil || s.reps == nil {
		return CallListResponse{}, errors.New("dialer: repositories not configured")
	}

	rep, err := s.reps.Get(ctx, fieldRepID)
	if err != nil {
		return CallListResponse{}, err
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, fieldRepID); err == nil && ok {
			return cached, nil
		}
		// cache errors fall through to regeneration
	}

	pool, err := s.prospects.ListByTerritory(ctx, rep.Territory)
	if err != nil {
		return CallListResponse{}, err
	}

	ordered := Generate(pool, rep, s.clock())
	resp := CallListResponse{
		FieldRepID: rep.ID,
		Territory:  rep.Territory,
		Count:      len(ordered),
		Prospects:  ordered,
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, fieldRepID, resp, s.cacheTTL)
	}
	return resp, nil
}
