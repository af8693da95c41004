package domain

import (
	"math"
	"slices"
	"testing"
)

func TestGrowOneWeekPreservesRank(t *testing.T) {
	model := testGrowthModel()
	b := NewBatchWithWeights("L1", 20, 0, []float64{120, 100, 83.4, 60})

	model.GrowOneWeek(b)

	if b.AgeWeeks != 21 {
		t.Fatalf("age = %d, want 21", b.AgeWeeks)
	}

	ws := b.Weights()
	for i := 1; i < len(ws); i++ {
		if ws[i-1] < ws[i] {
			t.Fatalf("rank changed: %v", ws)
		}
	}

	// The mean pig of week 20 becomes the mean pig of week 21.
	if math.Abs(ws[2]-89.2) > 1e-9 {
		t.Fatalf("mean pig weighs %v, want 89.2", ws[2])
	}
	if b.NominalMean != 89.2 || b.NominalSD != 15.2 {
		t.Fatalf("nominal = (%v, %v), want (89.2, 15.2)", b.NominalMean, b.NominalSD)
	}
}

func TestGrowOneWeekFallback(t *testing.T) {
	model := testGrowthModel()
	b := NewBatchWithWeights("L1", 28, 0, []float64{130, 125})
	mean := b.NominalMean

	model.GrowOneWeek(b)

	if !slices.Equal(b.Weights(), []float64{135, 130}) {
		t.Fatalf("weights = %v, want [135 130]", b.Weights())
	}
	if b.NominalMean != mean+5 {
		t.Fatalf("nominal mean = %v, want %v", b.NominalMean, mean+5)
	}
	if b.AgeWeeks != 29 {
		t.Fatalf("age = %d, want 29", b.AgeWeeks)
	}
}

func TestWeeklyFeedPerPig(t *testing.T) {
	model := testGrowthModel()

	avg := NewBatchWithWeights("L1", 20, 0, []float64{80})
	if got := model.WeeklyFeedPerPig(avg); math.Abs(got-15.6) > 1e-9 {
		t.Errorf("weekly feed = %v, want 15.6", got)
	}

	outside := NewBatchWithWeights("L2", 10, 0, []float64{30})
	if got := model.WeeklyFeedPerPig(outside); got != 15 {
		t.Errorf("weekly feed without previous week = %v, want 15", got)
	}

	// A very low intake z would make cumulative intake shrink; it is floored.
	low := NewBatchWithWeights("L3", 20, -10, []float64{80})
	if got := model.WeeklyFeedPerPig(low); got != 1 {
		t.Errorf("weekly feed = %v, want floor 1", got)
	}
}

func TestFarmDailyFeedCost(t *testing.T) {
	model := testGrowthModel()
	f := NewFarm("F1", Location{}, 2500)
	f.AddBatch(NewBatchWithWeights("L1", 20, 0, []float64{80, 80, 80, 80, 80, 80, 80}))
	f.AddBatch(NewBatchWithWeights("L2", 20, 0, nil))

	cost := f.DailyFeedCost(model, 0.35)

	want := 15.6 / 7 * 7 * 0.35
	if math.Abs(cost-want) > 1e-9 {
		t.Fatalf("cost = %v, want %v", cost, want)
	}
	f.DailyFeedCost(model, 0.35)
	if math.Abs(f.CumulativeFeedCost-2*want) > 1e-9 {
		t.Fatalf("cumulative = %v, want %v", f.CumulativeFeedCost, 2*want)
	}
}

func TestFarmSellableAndPriority(t *testing.T) {
	f := NewFarm("F1", Location{}, 2500)
	f.AddBatch(NewBatchWithWeights("L1", 20, 0, []float64{100, 90}))
	f.AddBatch(NewBatchWithWeights("L2", 22, 0, []float64{99, 97}))

	if f.HasSellablePigs(100) {
		t.Fatalf("no pig is above 100kg")
	}
	if f.Priority() != 98 {
		t.Fatalf("priority = %v, want 98", f.Priority())
	}

	f.AddBatch(NewBatchWithWeights("L3", 25, 0, []float64{100.5}))
	if !f.HasSellablePigs(100) {
		t.Fatalf("100.5kg pig should be sellable")
	}
	if f.Priority() != 100.5 {
		t.Fatalf("priority = %v, want 100.5", f.Priority())
	}
}

func TestLocationDistanceKm(t *testing.T) {
	a := Location{Lat: 41.0, Lon: 1.0}
	b := Location{Lat: 41.0 + 3.0/111, Lon: 1.0 + 4.0/85}

	if d := a.DistanceKm(b); math.Abs(d-5) > 1e-9 {
		t.Fatalf("distance = %v, want 5", d)
	}
	if d := a.DistanceKm(a); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}
