package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// IMPORTANT:
// - Audit is internal-only. Do not expose these records to field reps by default.
// - Callers should treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Territory == "" {
		return ErrInvalidEvent
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogOutcomeRecorded records an outcome annotation applied to a prospect's
// latest call attempt.
func (s *Service) LogOutcomeRecorded(ctx context.Context, territory, actorUserID, actorRole, prospectID, callKey, outcome string) error {
	return s.Append(ctx, Event{
		Territory:   territory,
		Type:        EventTypeOutcomeRecorded,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		ProspectID:  prospectID,
		CallKey:     callKey,
		Outcome:     outcome,
		Message:     "outcome recorded",
	})
}

// LogCallStarted records an outbound dial initiated through the platform.
func (s *Service) LogCallStarted(ctx context.Context, territory, actorUserID, actorRole, prospectID, callKey string) error {
	return s.Append(ctx, Event{
		Territory:   territory,
		Type:        EventTypeCallStarted,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		ProspectID:  prospectID,
		CallKey:     callKey,
		Message:     "outbound call started",
	})
}
