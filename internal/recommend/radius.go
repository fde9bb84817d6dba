package recommend

import (
	"sort"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// Located is a candidate annotated with its distance from the user.
type Located struct {
	model.Candidate
	DistanceKM float64 `json:"distance_km"`
}

// SearchMode records how the radius search satisfied the request.
type SearchMode string

const (
	ModeRadiusBounded   SearchMode = "radius_bounded"
	ModeNearestFallback SearchMode = "nearest_fallback"
)

// baseRadiiKM are the fixed expansion thresholds tried before the
// caller-supplied maximum.
var baseRadiiKM = []float64{3.0, 5.0, 10.0}

// ExpandRadius widens the search radius over 3, 5, 10 km and then maxKM,
// returning the first radius whose candidate count reaches minCount. When no
// radius suffices it falls back to the min(2*minCount, len) nearest
// candidates regardless of radius. Exactly one mode applies per call and the
// result is always a subset of the input.
func ExpandRadius(candidates []Located, minCount int, maxKM float64) ([]Located, SearchMode) {
	radii := append(append([]float64{}, baseRadiiKM...), maxKM)

	for _, radius := range radii {
		within := withinRadius(candidates, radius)
		if len(within) >= minCount {
			return within, ModeRadiusBounded
		}
	}

	nearest := make([]Located, len(candidates))
	copy(nearest, candidates)
	sort.SliceStable(nearest, func(i, j int) bool {
		return nearest[i].DistanceKM < nearest[j].DistanceKM
	})
	limit := minCount * 2
	if limit > len(nearest) {
		limit = len(nearest)
	}
	return nearest[:limit], ModeNearestFallback
}

func withinRadius(candidates []Located, maxKM float64) []Located {
	out := make([]Located, 0, len(candidates))
	for _, c := range candidates {
		if c.DistanceKM <= maxKM {
			out = append(out, c)
		}
	}
	return out
}
