package domain

// Farm raises one or more batches and is visited at most once per week.
type Farm struct {
	ID       string
	Location Location
	Capacity int
	Batches  []*Batch

	VisitedThisWeek    bool
	CumulativeFeedCost float64
}

func NewFarm(id string, loc Location, capacity int) *Farm {
	return &Farm{ID: id, Location: loc, Capacity: capacity}
}

func (f *Farm) AddBatch(b *Batch) {
	f.Batches = append(f.Batches, b)
}

func (f *Farm) TotalPigs() int {
	total := 0
	for _, b := range f.Batches {
		total += b.Count()
	}
	return total
}

// DailyFeedCost accrues and returns the cost of one day of feed for every
// non-empty batch on the farm.
func (f *Farm) DailyFeedCost(model GrowthModel, pricePerKg float64) float64 {
	cost := 0.0
	for _, b := range f.Batches {
		if b.Count() == 0 {
			continue
		}
		kgPerPigDay := model.WeeklyFeedPerPig(b) / 7.0
		cost += kgPerPigDay * float64(b.Count()) * pricePerKg
	}

	f.CumulativeFeedCost += cost
	return cost
}

// HasSellablePigs reports whether any pig on the farm is heavier than the
// market threshold.
func (f *Farm) HasSellablePigs(marketWeightKg float64) bool {
	for _, b := range f.Batches {
		if b.Count() > 0 && b.MaxWeight() > marketWeightKg {
			return true
		}
	}
	return false
}

// Priority is the highest per-batch average weight on the farm. Farms with
// more mature batches are collected first.
func (f *Farm) Priority() float64 {
	best := 0.0
	for _, b := range f.Batches {
		if b.Count() == 0 {
			continue
		}
		if m := b.MeanWeight(); m > best {
			best = m
		}
	}
	return best
}
