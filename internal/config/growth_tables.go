package config

import (
	"errors"
	"fmt"
	"os"
	"pig-logistics-sim/internal/domain"

	"gopkg.in/yaml.v3"
)

// GrowthModel assembles the weekly growth model from the parameters. When
// Growth.TablesFile is set, the curves are read from it instead of the
// built-in reference tables.
func (p Params) GrowthModel() (domain.GrowthModel, error) {
	tables := domain.DefaultGrowthTables()
	if p.Growth.TablesFile != "" {
		var err error
		tables, err = LoadGrowthTables(p.Growth.TablesFile)
		if err != nil {
			return domain.GrowthModel{}, err
		}
	}

	return domain.GrowthModel{
		Tables:               tables,
		FallbackWeeklyGainKg: p.Growth.FallbackWeeklyGainKg,
		DefaultWeeklyFeedKg:  p.Growth.DefaultWeeklyFeedKg,
		MinWeeklyFeedKg:      p.Growth.MinWeeklyFeedKg,
	}, nil
}

// LoadGrowthTables reads weight and cumulative intake curves from YAML:
//
//	weight:
//	  10: {mean: 29.7, sd: 3.9}
//	cumulative_intake:
//	  10: {mean: 5.1, sd: 5.5}
func LoadGrowthTables(path string) (domain.GrowthTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.GrowthTables{}, fmt.Errorf("load growth tables: read %q: %w", path, err)
	}

	var t domain.GrowthTables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return domain.GrowthTables{}, fmt.Errorf("load growth tables: parse %q: %w", path, err)
	}

	if len(t.Weight) == 0 {
		return domain.GrowthTables{}, errors.New("load growth tables: weight table is empty")
	}
	for age, s := range t.Weight {
		if s.SD <= 0 {
			return domain.GrowthTables{}, fmt.Errorf("load growth tables: week %d: sd must be positive", age)
		}
	}
	if t.Intake == nil {
		t.Intake = map[int]domain.Stat{}
	}

	return t, nil
}
