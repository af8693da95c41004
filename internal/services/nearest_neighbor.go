package services

import (
	"math"
	"pig-logistics-sim/internal/domain"
)

// BuildCandidateRoute proposes the stops of the next route.
//
// The first stop is the highest-priority candidate. The route then grows
// greedily by the nearest remaining candidate to the last stop, as long as
// that leg is shorter than maxLegKm and the route has fewer than maxStops.
// Ties on distance go to the earlier candidate.
func BuildCandidateRoute(candidates []*domain.Farm, maxStops int, maxLegKm float64) []*domain.Farm {
	if len(candidates) == 0 || maxStops <= 0 {
		return nil
	}

	route := []*domain.Farm{candidates[0]}
	remaining := make([]*domain.Farm, 0, len(candidates)-1)
	remaining = append(remaining, candidates[1:]...)

	for len(route) < maxStops && len(remaining) > 0 {
		last := route[len(route)-1].Location

		best := -1
		bestDist := math.Inf(1)
		// Strict comparison keeps the first of equally distant farms.
		for i, f := range remaining {
			d := last.DistanceKm(f.Location)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}

		if best < 0 || bestDist >= maxLegKm {
			break
		}

		route = append(route, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return route
}

// RouteDistanceKm is the length of the closed tour depot -> stops -> depot.
func RouteDistanceKm(depot domain.Location, stops []*domain.Farm) float64 {
	total := 0.0
	current := depot
	for _, f := range stops {
		total += current.DistanceKm(f.Location)
		current = f.Location
	}
	total += current.DistanceKm(depot)
	return total
}
