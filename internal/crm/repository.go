package crm

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("crm: not found")
	ErrInvalidArgument = errors.New("crm: invalid argument")
)

// ProspectRepository abstracts prospect persistence.
//
// All reads are territory-scoped where possible; callers must not filter
// territories client-side when the repository can do it.

type ProspectRepository interface {
	Get(ctx context.Context, id string) (Prospect, error)
	ListByTerritory(ctx context.Context, territory string) ([]Prospect, error)

	// RecordContact stamps the prospect after an outcome is recorded.
	// It must be idempotent: replaying the same (at, outcome) pair is harmless.
	RecordContact(ctx context.Context, id string, at time.Time, outcome string) error

	// UpdateCoordinates sets both coordinates; partial coordinates are never stored.
	UpdateCoordinates(ctx context.Context, id string, lat, lng float64) error
}

// FieldRepRepository abstracts field-rep persistence.
type FieldRepRepository interface {
	Get(ctx context.Context, id string) (FieldRep, error)
}
