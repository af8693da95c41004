package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"pig-logistics-sim/internal/domain"
	"pig-logistics-sim/internal/platform/obs"
	"pig-logistics-sim/internal/ports"
	"strconv"
	"strings"
	"time"
)

// SQLRunRepository stores runs in any database/sql backend. Queries are
// written with ? placeholders and rebound to $n for Postgres.
type SQLRunRepository struct {
	DB       *sql.DB
	dollars  bool
	jsonCast string
}

// NewSqliteRunRepository returns a repository for a modernc.org/sqlite handle.
func NewSqliteRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

// NewPostgresRunRepository returns a repository for a pgx stdlib handle.
func NewPostgresRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db, dollars: true, jsonCast: "::jsonb"}
}

func (s *SQLRunRepository) rebind(q string) string {
	if !s.dollars {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const dateLayout = "2006-01-02"

// Persist a run and its activity rows in one transaction.
func (s *SQLRunRepository) SaveRun(ctx context.Context, run *domain.RunRecord) (err error) {
	defer obs.Time(ctx, "runs.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("save run: DB is nil")
	}
	if run == nil || strings.TrimSpace(run.ID) == "" {
		return errors.New("save run: run id must not be empty")
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Replacing a run drops its previous activity rows first.
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM run_activities WHERE run_id = ?;`), run.ID); err != nil {
		return fmt.Errorf("save run id=%s: delete activities: %w", run.ID, err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM simulation_runs WHERE id = ?;`), run.ID); err != nil {
		return fmt.Errorf("save run id=%s: delete run: %w", run.ID, err)
	}

	insertRun := s.rebind(`
	INSERT INTO simulation_runs (
		id, created_at, seed, days, fleet_size,
		total_pigs, revenue, penalties, net_profit, document
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?` + s.jsonCast + `);
	`)
	if _, err := tx.ExecContext(ctx, insertRun,
		run.ID, createdAt, int64(run.Seed), run.Days, run.FleetSize,
		run.TotalPigs, run.Revenue, run.Penalties, run.NetProfit, string(run.Document),
	); err != nil {
		return fmt.Errorf("save run id=%s: insert run: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
	INSERT INTO run_activities (
		run_id, seq, day, date, kind, truck_id, stops, stop_details,
		total_pigs, total_weight_kg, distance_km, time_hours, revenue, penalty, travel_cost
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save run id=%s: prepare activities: %w", run.ID, err)
	}
	defer stmt.Close()

	for i, row := range run.Rows {
		stops, details, err := encodeStops(row)
		if err != nil {
			return fmt.Errorf("save run id=%s: row %d: %w", run.ID, i, err)
		}

		if _, err := stmt.ExecContext(ctx,
			run.ID, i, row.Day, row.Date.Format(dateLayout), string(row.Kind), row.TruckID, stops, details,
			row.Totals.Pigs, row.Totals.WeightKg, row.DistanceKm, row.TimeHours,
			row.Totals.Revenue, row.Totals.Penalty, row.Totals.TravelCost,
		); err != nil {
			return fmt.Errorf("save run id=%s: insert row %d: %w", run.ID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run id=%s: commit tx: %w", run.ID, err)
	}

	return nil
}

// Return a run with its rows, or ports.ErrRunNotFound.
func (s *SQLRunRepository) GetRun(ctx context.Context, id string) (_ *domain.RunRecord, err error) {
	defer obs.Time(ctx, "runs.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("get run: DB is nil")
	}

	q := s.rebind(`
	SELECT id, created_at, seed, days, fleet_size, total_pigs, revenue, penalties, net_profit, document
	FROM simulation_runs
	WHERE id = ?;
	`)

	var (
		run  domain.RunRecord
		seed int64
		doc  []byte
	)
	err = s.DB.QueryRowContext(ctx, q, id).Scan(
		&run.ID, &run.CreatedAt, &seed, &run.Days, &run.FleetSize,
		&run.TotalPigs, &run.Revenue, &run.Penalties, &run.NetProfit, &doc,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run id=%s: %w", id, ports.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run id=%s: query simulation_runs: %w", id, err)
	}
	run.Seed = uint64(seed)
	run.Document = doc

	rows, err := s.DB.QueryContext(ctx, s.rebind(`
	SELECT day, date, kind, truck_id, stops, stop_details,
		total_pigs, total_weight_kg, distance_km, time_hours, revenue, penalty, travel_cost
	FROM run_activities
	WHERE run_id = ?
	ORDER BY seq;
	`), id)
	if err != nil {
		return nil, fmt.Errorf("get run id=%s: query run_activities: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row            domain.ActivityRow
			date, kind     string
			stops, details string
		)
		if err := rows.Scan(
			&row.Day, &date, &kind, &row.TruckID, &stops, &details,
			&row.Totals.Pigs, &row.Totals.WeightKg, &row.DistanceKm, &row.TimeHours,
			&row.Totals.Revenue, &row.Totals.Penalty, &row.Totals.TravelCost,
		); err != nil {
			return nil, fmt.Errorf("get run id=%s: scan row: %w", id, err)
		}

		row.Kind = domain.ActivityKind(kind)
		if row.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("get run id=%s: day %d: %w", id, row.Day, err)
		}
		if err := decodeStops(stops, details, &row); err != nil {
			return nil, fmt.Errorf("get run id=%s: day %d: %w", id, row.Day, err)
		}
		run.Rows = append(run.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run id=%s: row iteration: %w", id, err)
	}

	return &run, nil
}

// List runs newest first, without rows or document.
func (s *SQLRunRepository) ListRuns(ctx context.Context) (_ []*domain.RunRecord, err error) {
	defer obs.Time(ctx, "runs.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("list runs: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, created_at, seed, days, fleet_size, total_pigs, revenue, penalties, net_profit
	FROM simulation_runs
	ORDER BY created_at DESC, id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: query simulation_runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.RunRecord, 0, 16)
	for rows.Next() {
		var (
			run  domain.RunRecord
			seed int64
		)
		if err := rows.Scan(
			&run.ID, &run.CreatedAt, &seed, &run.Days, &run.FleetSize,
			&run.TotalPigs, &run.Revenue, &run.Penalties, &run.NetProfit,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		run.Seed = uint64(seed)
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

func encodeStops(row domain.ActivityRow) (string, string, error) {
	stops := row.Stops
	if stops == nil {
		stops = []string{}
	}
	s, err := json.Marshal(stops)
	if err != nil {
		return "", "", fmt.Errorf("encode stops: %w", err)
	}

	loads := row.Loads
	if loads == nil {
		loads = []domain.StopLoad{}
	}
	d, err := json.Marshal(loads)
	if err != nil {
		return "", "", fmt.Errorf("encode stop details: %w", err)
	}

	return string(s), string(d), nil
}

func decodeStops(stops, details string, row *domain.ActivityRow) error {
	if err := json.Unmarshal([]byte(stops), &row.Stops); err != nil {
		return fmt.Errorf("decode stops: %w", err)
	}
	if err := json.Unmarshal([]byte(details), &row.Loads); err != nil {
		return fmt.Errorf("decode stop details: %w", err)
	}
	if len(row.Stops) == 0 {
		row.Stops = nil
	}
	if len(row.Loads) == 0 {
		row.Loads = nil
	}
	return nil
}
