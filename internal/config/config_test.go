package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}
}

func TestLoadOverlaysFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	doc := `
days: 21
fleet:
  size: 4
prices:
  base_per_kg: 1.8
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SIM_CONFIG_FILE", path)
	t.Setenv("SIM_FLEET_SIZE", "6")
	t.Setenv("SIM_WORLD_FARM_COUNT", "25")

	p, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Days != 21 {
		t.Errorf("Days = %d, want 21 (from file)", p.Days)
	}
	if p.Fleet.Size != 6 {
		t.Errorf("Fleet.Size = %d, want 6 (env wins over file)", p.Fleet.Size)
	}
	if p.Prices.BasePerKg != 1.8 {
		t.Errorf("BasePerKg = %v, want 1.8", p.Prices.BasePerKg)
	}
	if p.World.FarmCount != 25 {
		t.Errorf("FarmCount = %d, want 25", p.World.FarmCount)
	}
	if p.Fleet.MaxHoursPerDay != 8 {
		t.Errorf("MaxHoursPerDay = %v, want default 8", p.Fleet.MaxHoursPerDay)
	}
}

func TestValidateRejectsBrokenPriceWindow(t *testing.T) {
	p := Default()
	p.Prices.OptimalMinKg = 118

	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for optimal window 118..115")
	}
}

func TestValidateRejectsRestWeek(t *testing.T) {
	p := Default()
	p.RestDays = 7

	if err := p.Validate(); err == nil {
		t.Fatalf("expected error when every day is a rest day")
	}
}

func TestGrowthModelFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	doc := `
weight:
  20: {mean: 80, sd: 10}
  21: {mean: 90, sd: 11}
cumulative_intake:
  20: {mean: 100, sd: 20}
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write tables: %v", err)
	}

	p := Default()
	p.Growth.TablesFile = path

	m, err := p.GrowthModel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Tables.Weight) != 2 || m.Tables.Weight[21].Mean != 90 {
		t.Fatalf("weight table = %+v", m.Tables.Weight)
	}
	if m.DefaultWeeklyFeedKg != 15 {
		t.Fatalf("DefaultWeeklyFeedKg = %v, want 15", m.DefaultWeeklyFeedKg)
	}
}

func TestLoadGrowthTablesRejectsZeroSD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	if err := os.WriteFile(path, []byte("weight:\n  20: {mean: 80, sd: 0}\n"), 0o600); err != nil {
		t.Fatalf("write tables: %v", err)
	}

	if _, err := LoadGrowthTables(path); err == nil {
		t.Fatalf("expected error for zero sd")
	}
}

func TestLoadWorldPreset(t *testing.T) {
	t.Setenv("SIM_WORLD_PRESET", "catalonia")
	t.Setenv("SIM_WORLD_FARM_COUNT", "30")

	p, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.World.FarmPlacement != PlacementRegion || p.World.SlaughterhouseCapacity != 2000 {
		t.Fatalf("world = %+v, want catalonia preset", p.World)
	}
	if p.World.BatchAgeMin != 18 || p.World.BatchAgeMax != 25 {
		t.Fatalf("ages = %d..%d, want 18..25", p.World.BatchAgeMin, p.World.BatchAgeMax)
	}
	if p.World.FarmCount != 30 {
		t.Fatalf("FarmCount = %d, want 30 (env wins over preset)", p.World.FarmCount)
	}
}

func TestLoadRejectsUnknownPreset(t *testing.T) {
	t.Setenv("SIM_WORLD_PRESET", "mars")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}

func TestValidateRejectsUnknownPlacement(t *testing.T) {
	p := Default()
	p.World.FarmPlacement = "ring"

	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for placement %q", p.World.FarmPlacement)
	}
}
