package services

import "pig-logistics-sim/internal/domain"

type stopLoad struct {
	farm     *domain.Farm
	pigs     int
	weightKg float64
	weights  []float64
}

type routeLoad struct {
	stops    []stopLoad
	pigs     int
	weightKg float64
}

// collectLoad walks the stops in order and takes the heaviest pigs of each
// batch while the truck has kg to spare and the slaughterhouse quota allows.
//
// The same function serves the feasibility estimate (harvest=false) and the
// commit (harvest=true), so a committed route always carries exactly what
// was estimated when its truck hours were booked.
func collectLoad(stops []*domain.Farm, capacityKg float64, quota int, harvest bool) routeLoad {
	var load routeLoad
	remainingKg := capacityKg

	for _, f := range stops {
		s := stopLoad{farm: f}

		for _, b := range f.Batches {
			space := remainingKg - s.weightKg
			if space <= 0 {
				break
			}

			allowed := quota - load.pigs - s.pigs
			if allowed < 0 {
				allowed = 0
			}

			var (
				kg float64
				n  int
			)
			if harvest {
				var taken []float64
				kg, n, taken = b.HarvestUpTo(space, allowed)
				s.weights = append(s.weights, taken...)
			} else {
				kg, n = b.Preview(space, allowed)
			}

			s.weightKg += kg
			s.pigs += n
		}

		remainingKg -= s.weightKg
		load.pigs += s.pigs
		load.weightKg += s.weightKg
		load.stops = append(load.stops, s)
	}

	return load
}
