package services

import "pig-logistics-sim/internal/config"

// Pricing values delivered pigs by carcass weight. Pigs inside the optimal
// window earn the base price; the acceptable band around it takes a mild
// penalty and anything outside a severe one.
type Pricing struct {
	prices config.Prices
}

func NewPricing(p config.Prices) Pricing {
	return Pricing{prices: p}
}

// PenaltyRate returns the fraction of gross value withheld for a pig of weight w.
func (p Pricing) PenaltyRate(w float64) float64 {
	pr := p.prices
	switch {
	case w >= pr.OptimalMinKg && w <= pr.OptimalMaxKg:
		return 0
	case (w >= pr.AcceptMinKg && w < pr.OptimalMinKg) || (w > pr.OptimalMaxKg && w <= pr.AcceptMaxKg):
		return pr.MildPenalty
	default:
		return pr.SeverePenalty
	}
}

// Value returns net revenue and the total penalty for a set of pigs.
func (p Pricing) Value(weights []float64) (revenue float64, penalty float64) {
	for _, w := range weights {
		gross := w * p.prices.BasePerKg
		cut := gross * p.PenaltyRate(w)
		revenue += gross - cut
		penalty += cut
	}
	return revenue, penalty
}

// TravelCost scales the per-km cost by how full the truck is, never below
// minLoadFactor of the nominal cost.
func TravelCost(distanceKm, costPerKm, weightKg, capacityKg, minLoadFactor float64) float64 {
	loadFactor := weightKg / capacityKg
	if loadFactor < minLoadFactor {
		loadFactor = minLoadFactor
	}
	return distanceKm * costPerKm * loadFactor
}
