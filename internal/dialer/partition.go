package dialer

import (
	"sort"

	"salesops-platform/internal/crm"
)

// Partition splits prospects into exactly n groups by sorting on latitude
// and dealing element i to group i mod n.
//
// This is a latitude-band round-robin, not real spatial clustering: it
// guarantees an even size distribution but two prospects in the same group
// can be far apart. Downstream consumers depend on the exact assignment
// for reproducibility, so keep this behavior stable.
//
// Prospects with unknown coordinates sort as latitude 0.
func Partition(prospects []crm.Prospect, n int) [][]crm.Prospect {
	if n <= 0 {
		return nil
	}

	sorted := make([]crm.Prospect, len(prospects))
	copy(sorted, prospects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return latOrZero(sorted[i]) < latOrZero(sorted[j])
	})

	groups := make([][]crm.Prospect, n)
	for i := range groups {
		groups[i] = []crm.Prospect{}
	}
	for i, p := range sorted {
		groups[i%n] = append(groups[i%n], p)
	}
	return groups
}

func latOrZero(p crm.Prospect) float64 {
	if p.Lat == nil {
		return 0
	}
	return *p.Lat
}
