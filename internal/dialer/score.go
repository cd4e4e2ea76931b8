package dialer

import (
	"time"

	"salesops-platform/internal/crm"
)

// Priority scoring for call-list ordering.
//
// The score is a bounded integer in [100, 300]:
// - base 100 for every prospect
// - recency: never-contacted counts as maximum urgency (+50); otherwise
//   2 points per day since last contact, capped at 50
// - specialty: fixed weight table, unknown specialties get 15
//
// Scoring is pure and deterministic for a given now; callers inject the clock.

const (
	scoreBase  = 100
	recencyMax = 50
	scoreMax   = 300

	defaultSpecialtyWeight = 15
)

var specialtyWeights = map[string]int{
	"Chiropractor":     30,
	"Medical":          28,
	"Dental":           25,
	"Physical Therapy": 22,
	"Dermatology":      20,
}

// ScoredProspect pairs a prospect with its priority score.
// Invariant: 100 <= Score <= 300.
type ScoredProspect struct {
	Prospect crm.Prospect `json:"prospect"`
	Score    int          `json:"score"`
}

// Score computes the priority score for a prospect at the given time.
func Score(p crm.Prospect, now time.Time) int {
	recency := recencyMax
	if p.LastContactAt != nil {
		days := int(now.Sub(*p.LastContactAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		recency = days * 2
		if recency > recencyMax {
			recency = recencyMax
		}
	}

	weight, ok := specialtyWeights[p.Specialty]
	if !ok {
		weight = defaultSpecialtyWeight
	}

	s := scoreBase + recency + weight
	if s > scoreMax {
		s = scoreMax
	}
	return s
}
