package app

import (
	"context"
	"pig-logistics-sim/internal/adapters/repositories"
	"pig-logistics-sim/internal/config"
	"testing"
)

func TestRunnerStoresRun(t *testing.T) {
	p := config.Default()
	p.Days = 3
	p.World.FarmCount = 10

	repo := repositories.NewMemoryRunRepository()
	out, err := (&Runner{Repo: repo}).Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(out.Document.DailyActivity) == 0 {
		t.Fatalf("export has no activity rows")
	}
	if len(out.Document.FarmLocations) != 10 {
		t.Fatalf("farm locations = %d, want 10", len(out.Document.FarmLocations))
	}

	got, err := repo.GetRun(context.Background(), out.Result.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.TotalPigs != out.Summary.TotalPigs {
		t.Fatalf("stored pigs = %d, want %d", got.TotalPigs, out.Summary.TotalPigs)
	}
}

func TestRunnerRejectsInvalidParams(t *testing.T) {
	p := config.Default()
	p.Days = 0

	if _, err := (&Runner{}).Run(context.Background(), p); err == nil {
		t.Fatalf("expected validation error")
	}
}
