package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"pig-logistics-sim/internal/domain"
	"strings"
)

type seedFile struct {
	Slaughterhouse struct {
		ID            string  `json:"id"`
		Lat           float64 `json:"lat"`
		Lon           float64 `json:"lon"`
		DailyCapacity int     `json:"daily_capacity"`
	} `json:"slaughterhouse"`
	Farms []seedFarm `json:"farms"`
}

type seedFarm struct {
	ID       string      `json:"id"`
	Lat      float64     `json:"lat"`
	Lon      float64     `json:"lon"`
	Capacity int         `json:"capacity"`
	Batches  []seedBatch `json:"batches"`
}

type seedBatch struct {
	ID       string `json:"id"`
	Count    int    `json:"count"`
	AgeWeeks int    `json:"age_weeks"`
}

// JSONSource reads fixed farm and slaughterhouse locations from a seed
// file. Individual weights are still sampled from the growth model.
type JSONSource struct {
	path  string
	model domain.GrowthModel
	seed  uint64
}

func NewJSONSource(path string, model domain.GrowthModel, seed uint64) *JSONSource {
	return &JSONSource{path: path, model: model, seed: seed}
}

func (s *JSONSource) Load(ctx context.Context) (*domain.Environment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("json environment: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("json environment: read %q: %w", s.path, err)
	}

	var sf seedFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("json environment: parse %q: %w", s.path, err)
	}

	return s.build(sf)
}

func (s *JSONSource) build(sf seedFile) (*domain.Environment, error) {
	sh := sf.Slaughterhouse
	if strings.TrimSpace(sh.ID) == "" {
		return nil, fmt.Errorf("json environment: slaughterhouse has empty id")
	}
	if sh.DailyCapacity <= 0 {
		return nil, fmt.Errorf("json environment: slaughterhouse %s capacity=%d", sh.ID, sh.DailyCapacity)
	}

	src := rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15)
	env := &domain.Environment{
		Slaughterhouse: domain.NewSlaughterhouse(sh.ID, domain.Location{Lat: sh.Lat, Lon: sh.Lon}, sh.DailyCapacity),
		Farms:          make([]*domain.Farm, 0, len(sf.Farms)),
	}

	seen := make(map[string]struct{}, len(sf.Farms))
	for _, f := range sf.Farms {
		if strings.TrimSpace(f.ID) == "" {
			return nil, fmt.Errorf("json environment: farm has empty id")
		}
		if _, dup := seen[f.ID]; dup {
			return nil, fmt.Errorf("json environment: duplicate farm id %q", f.ID)
		}
		seen[f.ID] = struct{}{}
		if f.Capacity <= 0 {
			return nil, fmt.Errorf("json environment: farm %s capacity=%d", f.ID, f.Capacity)
		}

		farm := domain.NewFarm(f.ID, domain.Location{Lat: f.Lat, Lon: f.Lon}, f.Capacity)
		for _, b := range f.Batches {
			if strings.TrimSpace(b.ID) == "" {
				return nil, fmt.Errorf("json environment: farm %s has a batch with empty id", f.ID)
			}
			if b.Count <= 0 || b.AgeWeeks < 0 {
				return nil, fmt.Errorf(
					"json environment: batch %s count=%d age_weeks=%d",
					b.ID, b.Count, b.AgeWeeks,
				)
			}
			farm.AddBatch(domain.NewBatch(b.ID, b.Count, b.AgeWeeks, s.model, src))
		}

		env.Farms = append(env.Farms, farm)
	}

	return env, nil
}
