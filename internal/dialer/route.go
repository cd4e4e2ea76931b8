package dialer

import (
	"math"

	"salesops-platform/internal/crm"
)

// Sequence orders one group of prospects by greedy nearest-neighbor from the
// given origin. Distance is planar Euclidean on raw lat/lng degrees, not a
// geodesic; groups are small (<=50/n) so O(k^2) is fine.
//
// Ties pick the first-seen candidate. Prospects without coordinates cannot be
// measured; once only those remain they are appended in their original order,
// so the result is always a permutation of the input.
func Sequence(prospects []crm.Prospect, originLat, originLng float64) []crm.Prospect {
	if len(prospects) <= 1 {
		return prospects
	}

	remaining := make([]crm.Prospect, len(prospects))
	copy(remaining, prospects)

	out := make([]crm.Prospect, 0, len(prospects))
	curLat, curLng := originLat, originLng

	for len(remaining) > 0 {
		best := -1
		bestDist := math.Inf(1)
		for i, p := range remaining {
			d := planarDistance(curLat, curLng, p)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		if best < 0 || math.IsInf(bestDist, 1) {
			// only unmeasurable candidates left
			out = append(out, remaining...)
			break
		}

		picked := remaining[best]
		out = append(out, picked)
		curLat, curLng = *picked.Lat, *picked.Lng
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return out
}

func planarDistance(fromLat, fromLng float64, p crm.Prospect) float64 {
	if !p.HasCoordinates() {
		return math.Inf(1)
	}
	return math.Hypot(*p.Lat-fromLat, *p.Lng-fromLng)
}
