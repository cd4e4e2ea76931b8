package geocode

import (
	"context"
	"errors"
	"strings"

	"salesops-platform/internal/crm"
)

var ErrNoResult = errors.New("geocode: no result")

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lng float64, err error)
}

// Backfiller fills missing prospect coordinates so route sequencing has
// something to work with. Prospects with known coordinates are left alone
// unless force is set.
type Backfiller struct {
	Geocoder  Geocoder
	Prospects crm.ProspectRepository
}

func (b *Backfiller) Backfill(ctx context.Context, prospectID string, force bool) (crm.Prospect, error) {
	if b.Geocoder == nil || b.Prospects == nil {
		return crm.Prospect{}, errors.New("geocode: backfiller not configured")
	}

	p, err := b.Prospects.Get(ctx, prospectID)
	if err != nil {
		return crm.Prospect{}, err
	}
	if p.HasCoordinates() && !force {
		return p, nil
	}

	query := BuildQuery(p.Address, p.City, p.State)
	if query == "" {
		return crm.Prospect{}, ErrNoResult
	}

	lat, lng, err := b.Geocoder.Geocode(ctx, query)
	if err != nil {
		return crm.Prospect{}, err
	}
	if err := b.Prospects.UpdateCoordinates(ctx, prospectID, lat, lng); err != nil {
		return crm.Prospect{}, err
	}
	p.SetCoordinates(lat, lng)
	return p, nil
}

// BuildQuery joins the non-empty address parts with commas.
func BuildQuery(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}
