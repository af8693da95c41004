package environment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/domain"

	"gonum.org/v1/gonum/stat/distuv"
)

// RandomSource generates a slaughterhouse somewhere inside the configured
// region and farms either around it or scattered over the whole region.
// The same seed always produces the same environment.
type RandomSource struct {
	world config.World
	model domain.GrowthModel
	seed  uint64
}

func NewRandomSource(world config.World, model domain.GrowthModel, seed uint64) *RandomSource {
	return &RandomSource{world: world, model: model, seed: seed}
}

func (s *RandomSource) Load(ctx context.Context) (*domain.Environment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("random environment: %w", err)
	}

	w := s.world
	src := rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)

	uniform := func(lo, hi float64) float64 {
		if hi <= lo {
			return lo
		}
		return distuv.Uniform{Min: lo, Max: hi, Src: src}.Rand()
	}
	between := func(lo, hi int) int {
		return lo + rng.IntN(hi-lo+1)
	}

	center := domain.Location{
		Lat: uniform(w.LatMin, w.LatMax),
		Lon: uniform(w.LonMin, w.LonMax),
	}
	env := &domain.Environment{
		Slaughterhouse: domain.NewSlaughterhouse(w.SlaughterhouseID, center, w.SlaughterhouseCapacity),
		Farms:          make([]*domain.Farm, 0, w.FarmCount),
	}

	for i := 0; i < w.FarmCount; i++ {
		loc := domain.Location{
			Lat: center.Lat + uniform(-w.FarmLatSpread, w.FarmLatSpread),
			Lon: center.Lon + uniform(-w.FarmLonSpread, w.FarmLonSpread),
		}
		if w.FarmPlacement == config.PlacementRegion {
			loc = domain.Location{
				Lat: uniform(w.LatMin, w.LatMax),
				Lon: uniform(w.LonMin, w.LonMax),
			}
		}
		farm := domain.NewFarm(fmt.Sprintf("FARM_%d", i+1), loc, w.FarmCapacity)

		for j := 0; j < w.BatchesPerFarm; j++ {
			age := between(w.BatchAgeMin, w.BatchAgeMax)
			count := between(w.BatchSizeMin, w.BatchSizeMax)
			farm.AddBatch(domain.NewBatch(fmt.Sprintf("L_%d_%d", i, j), count, age, s.model, src))
		}

		env.Farms = append(env.Farms, farm)
	}

	return env, nil
}
