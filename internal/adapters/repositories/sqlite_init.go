package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pig-logistics-sim/internal/adapters/export"
	"pig-logistics-sim/internal/ports"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		seed INTEGER NOT NULL,
		days INTEGER NOT NULL,
		fleet_size INTEGER NOT NULL,
		total_pigs INTEGER NOT NULL,
		revenue REAL NOT NULL,
		penalties REAL NOT NULL,
		net_profit REAL NOT NULL,
		document TEXT NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS run_activities (
		run_id TEXT NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		day INTEGER NOT NULL,
		date TEXT NOT NULL,
		kind TEXT NOT NULL,
		truck_id TEXT NOT NULL,
		stops TEXT NOT NULL,
		stop_details TEXT NOT NULL,
		total_pigs INTEGER NOT NULL,
		total_weight_kg REAL NOT NULL,
		distance_km REAL NOT NULL,
		time_hours REAL NOT NULL,
		revenue REAL NOT NULL,
		penalty REAL NOT NULL,
		travel_cost REAL NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_simulation_runs_created_at
	ON simulation_runs(created_at);
	`,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		seed BIGINT NOT NULL,
		days INTEGER NOT NULL,
		fleet_size INTEGER NOT NULL,
		total_pigs INTEGER NOT NULL,
		revenue DOUBLE PRECISION NOT NULL,
		penalties DOUBLE PRECISION NOT NULL,
		net_profit DOUBLE PRECISION NOT NULL,
		document JSONB NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS run_activities (
		run_id TEXT NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		day INTEGER NOT NULL,
		date TEXT NOT NULL,
		kind TEXT NOT NULL,
		truck_id TEXT NOT NULL,
		stops TEXT NOT NULL,
		stop_details TEXT NOT NULL,
		total_pigs INTEGER NOT NULL,
		total_weight_kg DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		time_hours DOUBLE PRECISION NOT NULL,
		revenue DOUBLE PRECISION NOT NULL,
		penalty DOUBLE PRECISION NOT NULL,
		travel_cost DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_simulation_runs_created_at
	ON simulation_runs(created_at);
	`,
	})
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Store a run from an export JSON file, replacing any run with the same id.
func ImportRunFromJSON(ctx context.Context, repo ports.RunRepository, jsonPath string) (string, error) {
	doc, raw, err := export.ReadFile(jsonPath)
	if err != nil {
		return "", fmt.Errorf("import run: %w", err)
	}

	rec, err := export.RecordFromDocument(doc, raw)
	if err != nil {
		return "", fmt.Errorf("import run: %w", err)
	}

	if err := repo.SaveRun(ctx, rec); err != nil {
		return "", fmt.Errorf("import run: %w", err)
	}

	return rec.ID, nil
}
