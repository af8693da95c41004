package services

import (
	"math"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/domain"
)

// RecommendFleetSize sizes the fleet from the initial stock: enough trucks
// to move the pigs already above market weight within a few days, bounded
// by what the slaughterhouse can take in a day. Always at least one truck.
func RecommendFleetSize(env *domain.Environment, p config.Params) int {
	market := p.Prices.MarketWeightKg

	ready := 0
	for _, f := range env.Farms {
		if !f.HasSellablePigs(market) {
			continue
		}
		for _, b := range f.Batches {
			if b.NominalMean > market {
				ready += b.Count()
			}
		}
	}

	target := math.Min(
		float64(env.Slaughterhouse.DailyCapacity),
		float64(ready)/float64(p.Fleet.SizingDaysToClear),
	)
	perTruck := float64(p.Fleet.SizingPigsPerTruck * p.Fleet.SizingTripsPerDay)

	n := int(math.Ceil(target / perTruck))
	if n < 1 {
		n = 1
	}
	return n
}
