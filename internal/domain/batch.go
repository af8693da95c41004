package domain

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// Batch is a cohort of same-age pigs on one farm.
//
// Individual weights are kept sorted heaviest first. Harvesting removes a
// prefix of that order, so the relative order of the remaining pigs never
// changes and the count only shrinks.
type Batch struct {
	ID       string
	AgeWeeks int
	// IntakeZ places the whole batch on the cumulative intake curve. It is
	// sampled once at creation.
	IntakeZ float64
	// Nominal distribution of the batch's age, kept in step with growth.
	NominalMean float64
	NominalSD   float64

	weights []float64
}

// NewBatch samples count individual weights for the given age.
func NewBatch(id string, count, ageWeeks int, model GrowthModel, src rand.Source) *Batch {
	stat := model.InitialStat(ageWeeks)

	unit := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	b := &Batch{
		ID:          id,
		AgeWeeks:    ageWeeks,
		IntakeZ:     unit.Rand(),
		NominalMean: stat.Mean,
		NominalSD:   stat.SD,
		weights:     make([]float64, 0, count),
	}

	dist := distuv.Normal{Mu: stat.Mean, Sigma: stat.SD, Src: src}
	for i := 0; i < count; i++ {
		b.weights = append(b.weights, nonNegative(dist.Rand()))
	}
	b.sortDesc()

	return b
}

// NewBatchWithWeights builds a batch from known weights.
func NewBatchWithWeights(id string, ageWeeks int, intakeZ float64, weights []float64) *Batch {
	b := &Batch{
		ID:       id,
		AgeWeeks: ageWeeks,
		IntakeZ:  intakeZ,
		weights:  make([]float64, 0, len(weights)),
	}
	for _, w := range weights {
		b.weights = append(b.weights, nonNegative(w))
	}
	b.sortDesc()
	b.NominalMean = b.MeanWeight()
	return b
}

func (b *Batch) Count() int { return len(b.weights) }

// Weights returns a copy of the individual weights, heaviest first.
func (b *Batch) Weights() []float64 { return slices.Clone(b.weights) }

func (b *Batch) MaxWeight() float64 {
	if len(b.weights) == 0 {
		return 0
	}
	return slices.Max(b.weights)
}

func (b *Batch) TotalWeight() float64 {
	total := 0.0
	for _, w := range b.weights {
		total += w
	}
	return total
}

// MeanWeight is the average of the live individuals, 0 for an empty batch.
func (b *Batch) MeanWeight() float64 {
	if len(b.weights) == 0 {
		return 0
	}
	return b.TotalWeight() / float64(len(b.weights))
}

// Preview reports what HarvestUpTo would return without removing anyone.
// It only reads the weights, which every constructor and harvest leave
// sorted heaviest first.
func (b *Batch) Preview(maxKg float64, maxCount int) (float64, int) {
	return b.take(maxKg, maxCount)
}

// Harvest removes the heaviest pigs whose running weight stays within maxKg.
// Selection stops at the first pig that would exceed the ceiling; lighter
// pigs further down are not considered.
func (b *Batch) Harvest(maxKg float64) (float64, int, []float64) {
	return b.HarvestUpTo(maxKg, -1)
}

// HarvestUpTo is Harvest with an additional cap on the number of pigs.
// A negative maxCount means no cap.
func (b *Batch) HarvestUpTo(maxKg float64, maxCount int) (float64, int, []float64) {
	b.sortDesc()

	kg, n := b.take(maxKg, maxCount)
	taken := slices.Clone(b.weights[:n])
	b.weights = slices.Clone(b.weights[n:])

	return kg, n, taken
}

func (b *Batch) take(maxKg float64, maxCount int) (float64, int) {
	sum := 0.0
	n := 0
	for _, w := range b.weights {
		if maxCount >= 0 && n >= maxCount {
			break
		}
		if sum+w > maxKg {
			break
		}
		sum += w
		n++
	}
	return sum, n
}

func (b *Batch) sortDesc() {
	slices.SortStableFunc(b.weights, func(x, y float64) int { return cmp.Compare(y, x) })
}
