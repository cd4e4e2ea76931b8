package dialer

import (
	"sort"
	"time"

	"salesops-platform/internal/crm"
)

// Calling-list generation.
//
// Pipeline: territory filter -> priority scoring (stable sort, descending) ->
// top-N cut -> geographic partition -> per-group nearest-neighbor routing
// from the rep's home.
//
// When the rep has no home coordinates the list is returned in priority
// order with no routing. That is a designed fallback, not an error.

const (
	// DefaultListSize caps how many prospects a rep is asked to call.
	DefaultListSize = 50
	// DefaultClusterCount is how many geographic groups the list is split into.
	DefaultClusterCount = 3
)

// Generate builds the ordered calling list for a field rep from the full
// prospect pool. Pure; all inputs are totals, no error conditions.
func Generate(allProspects []crm.Prospect, rep crm.FieldRep, now time.Time) []crm.Prospect {
	pool := make([]crm.Prospect, 0, len(allProspects))
	for _, p := range allProspects {
		if p.Territory == rep.Territory {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return []crm.Prospect{}
	}

	scored := make([]ScoredProspect, len(pool))
	for i, p := range pool {
		scored[i] = ScoredProspect{Prospect: p, Score: Score(p, now)}
	}
	// Stable: equal scores keep their original relative order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > DefaultListSize {
		scored = scored[:DefaultListSize]
	}

	top := make([]crm.Prospect, len(scored))
	for i, s := range scored {
		top[i] = s.Prospect
	}

	if !rep.HasHomeCoordinates() {
		return top
	}

	groups := Partition(top, DefaultClusterCount)
	out := make([]crm.Prospect, 0, len(top))
	for _, g := range groups {
		out = append(out, Sequence(g, *rep.HomeLat, *rep.HomeLng)...)
	}
	return out
}
