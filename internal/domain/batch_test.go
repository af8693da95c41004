package domain

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestBatchHarvestStopsAtFirstOverflow(t *testing.T) {
	b := NewBatchWithWeights("L1", 24, 0, []float64{90, 130, 110})

	kg, n, taken := b.Harvest(300)

	if kg != 240 {
		t.Fatalf("kg = %v, want 240", kg)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if !slices.Equal(taken, []float64{130, 110}) {
		t.Fatalf("taken = %v, want [130 110]", taken)
	}
	if !slices.Equal(b.Weights(), []float64{90}) {
		t.Fatalf("remaining = %v, want [90]", b.Weights())
	}
}

func TestBatchHarvestDoesNotSkipAhead(t *testing.T) {
	// 50 would still fit after 130 but selection stops at 120.
	b := NewBatchWithWeights("L1", 24, 0, []float64{130, 120, 50})

	kg, n, _ := b.Harvest(200)
	if kg != 130 || n != 1 {
		t.Fatalf("got kg=%v n=%d, want kg=130 n=1", kg, n)
	}
	if b.Count() != 2 {
		t.Fatalf("count = %d, want 2", b.Count())
	}
}

func TestBatchHarvestUpToCapsCount(t *testing.T) {
	b := NewBatchWithWeights("L1", 24, 0, []float64{100, 110, 120, 105})

	kg, n, taken := b.HarvestUpTo(1000, 2)
	if n != 2 || kg != 230 {
		t.Fatalf("got kg=%v n=%d, want kg=230 n=2", kg, n)
	}
	if !slices.Equal(taken, []float64{120, 110}) {
		t.Fatalf("taken = %v", taken)
	}
	if !slices.Equal(b.Weights(), []float64{105, 100}) {
		t.Fatalf("remaining = %v, want [105 100]", b.Weights())
	}
}

func TestBatchPreviewMatchesHarvest(t *testing.T) {
	model := testGrowthModel()
	src := rand.NewPCG(42, 42)
	b := NewBatch("L1", 300, 24, model, src)
	before := b.Count()

	pkg, pn := b.Preview(5000, 30)
	if b.Count() != before {
		t.Fatalf("preview changed count: %d -> %d", before, b.Count())
	}

	kg, n, taken := b.HarvestUpTo(5000, 30)
	if kg != pkg || n != pn {
		t.Fatalf("harvest (%v, %d) differs from preview (%v, %d)", kg, n, pkg, pn)
	}
	if len(taken) != n || b.Count() != before-n {
		t.Fatalf("count after harvest = %d, want %d", b.Count(), before-n)
	}
}

func TestNewBatchIsSortedAndNonNegative(t *testing.T) {
	b := NewBatch("L1", 500, 18, testGrowthModel(), rand.NewPCG(1, 2))

	ws := b.Weights()
	if len(ws) != 500 {
		t.Fatalf("count = %d, want 500", len(ws))
	}
	for i, w := range ws {
		if w < 0 {
			t.Fatalf("weight %d is negative: %v", i, w)
		}
		if i > 0 && ws[i-1] < w {
			t.Fatalf("weights not sorted descending at %d: %v < %v", i, ws[i-1], w)
		}
	}
	if b.NominalMean != 71.3 {
		t.Fatalf("NominalMean = %v, want 71.3", b.NominalMean)
	}
}

func TestNewBatchIsReproducible(t *testing.T) {
	a := NewBatch("L1", 50, 20, testGrowthModel(), rand.NewPCG(7, 7))
	b := NewBatch("L1", 50, 20, testGrowthModel(), rand.NewPCG(7, 7))

	if !slices.Equal(a.Weights(), b.Weights()) || a.IntakeZ != b.IntakeZ {
		t.Fatalf("same seed produced different batches")
	}
}

func testGrowthModel() GrowthModel {
	return GrowthModel{
		Tables:               DefaultGrowthTables(),
		FallbackWeeklyGainKg: 5,
		DefaultWeeklyFeedKg:  15,
		MinWeeklyFeedKg:      1,
	}
}

func TestBatchPreviewLeavesWeightsAlone(t *testing.T) {
	model := testGrowthModel()
	b := NewBatch("L1", 40, 20, model, rand.NewPCG(3, 4))
	model.GrowOneWeek(b)

	before := b.Weights()
	kg, n := b.Preview(1000, 5)
	if !slices.Equal(b.Weights(), before) {
		t.Fatalf("Preview changed the batch")
	}
	if !slices.IsSortedFunc(before, func(x, y float64) int { return cmp.Compare(y, x) }) {
		t.Fatalf("weights not kept heaviest first after growth: %v", before)
	}

	gotKg, gotN, _ := b.HarvestUpTo(1000, 5)
	if gotKg != kg || gotN != n {
		t.Fatalf("harvest = %v/%d, preview = %v/%d", gotKg, gotN, kg, n)
	}
}
