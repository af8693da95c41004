package services

import (
	"cmp"
	"pig-logistics-sim/internal/domain"
	"slices"
)

// SelectCandidates returns the farms that can be collected today: not yet
// visited this week and holding at least one pig above market weight.
//
// Candidates are ordered by their heaviest batch average, heaviest first.
// The sort is stable so equal priorities keep the input order, which keeps
// the whole plan deterministic.
func SelectCandidates(farms []*domain.Farm, marketWeightKg float64) []*domain.Farm {
	candidates := make([]*domain.Farm, 0, len(farms))
	for _, f := range farms {
		if f.VisitedThisWeek || !f.HasSellablePigs(marketWeightKg) {
			continue
		}
		candidates = append(candidates, f)
	}

	slices.SortStableFunc(candidates, func(a, b *domain.Farm) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})

	return candidates
}

// removeFarms drops the farms whose id is in ids, keeping the order of the rest.
func removeFarms(farms []*domain.Farm, ids map[string]struct{}) []*domain.Farm {
	if len(ids) == 0 {
		return farms
	}
	out := farms[:0:0]
	for _, f := range farms {
		if _, ok := ids[f.ID]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}
