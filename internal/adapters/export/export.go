package export

import (
	"encoding/json"
	"fmt"
	"os"
	"pig-logistics-sim/internal/domain"
	"pig-logistics-sim/internal/services"
	"time"
)

type Metadata struct {
	DaysSimulated int    `json:"days_simulated"`
	FleetSize     int    `json:"fleet_size"`
	StartDate     string `json:"start_date"`
	RunID         string `json:"run_id"`
	Seed          uint64 `json:"seed"`
}

type StopDetail struct {
	FarmID   string  `json:"farm_id"`
	Pigs     int     `json:"pigs"`
	WeightKg float64 `json:"weight_kg"`
}

type ActivityRow struct {
	Day           int          `json:"day"`
	Date          string       `json:"date"`
	Kind          string       `json:"kind"`
	TruckID       string       `json:"truck_id"`
	Stops         []string     `json:"stops"`
	StopDetails   []StopDetail `json:"stop_details"`
	TotalPigs     int          `json:"total_pigs"`
	TotalWeightKg float64      `json:"total_weight_kg"`
	DistanceKm    float64      `json:"distance_km"`
	TimeHours     float64      `json:"time_hours"`
	Revenue       float64      `json:"revenue"`
	Penalty       float64      `json:"penalty"`
	TravelCost    float64      `json:"travel_cost"`
}

type FarmLocation struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Document is the export consumed by the dashboard front end.
type Document struct {
	Metadata      Metadata         `json:"metadata"`
	DailyActivity []ActivityRow    `json:"daily_activity"`
	FarmLocations []FarmLocation   `json:"farm_locations"`
	Summary       services.Summary `json:"summary"`
}

const dateLayout = "2006-01-02"

// Rows flattens a run's activity log in log order.
func Rows(res *services.Result) []domain.ActivityRow {
	rows := make([]domain.ActivityRow, 0, len(res.Activities))
	for _, a := range res.Activities {
		rows = append(rows, domain.FlattenActivity(a, res.Date(a.OnDay())))
	}
	return rows
}

func Build(res *services.Result, summary services.Summary) Document {
	doc := Document{
		Metadata: Metadata{
			DaysSimulated: res.Params.Days,
			FleetSize:     res.FleetSize,
			StartDate:     res.Params.StartDate.Format(dateLayout),
			RunID:         res.RunID,
			Seed:          res.Params.Seed,
		},
		DailyActivity: []ActivityRow{},
		FarmLocations: []FarmLocation{},
		Summary:       summary,
	}

	for _, r := range Rows(res) {
		doc.DailyActivity = append(doc.DailyActivity, toRow(r))
	}

	if res.Env != nil {
		for _, f := range res.Env.Farms {
			doc.FarmLocations = append(doc.FarmLocations, FarmLocation{ID: f.ID, Lat: f.Location.Lat, Lon: f.Location.Lon})
		}
	}

	return doc
}

func toRow(r domain.ActivityRow) ActivityRow {
	row := ActivityRow{
		Day:           r.Day,
		Date:          r.Date.Format(dateLayout),
		Kind:          string(r.Kind),
		TruckID:       r.TruckID,
		Stops:         r.Stops,
		StopDetails:   []StopDetail{},
		TotalPigs:     r.Totals.Pigs,
		TotalWeightKg: r.Totals.WeightKg,
		DistanceKm:    r.DistanceKm,
		TimeHours:     r.TimeHours,
		Revenue:       r.Totals.Revenue,
		Penalty:       r.Totals.Penalty,
		TravelCost:    r.Totals.TravelCost,
	}
	if row.Stops == nil {
		row.Stops = []string{}
	}
	for _, l := range r.Loads {
		row.StopDetails = append(row.StopDetails, StopDetail{FarmID: l.FarmID, Pigs: l.Pigs, WeightKg: l.WeightKg})
	}
	return row
}

func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal: %w", err)
	}
	return data, nil
}

func WriteFile(path string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %q: %w", path, err)
	}
	return nil
}

// ReadFile loads a document previously written by WriteFile.
func ReadFile(path string) (Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, nil, fmt.Errorf("export: read %q: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, nil, fmt.Errorf("export: parse %q: %w", path, err)
	}
	return doc, data, nil
}

// Record packs a run into the form stored by run repositories.
func Record(res *services.Result, summary services.Summary, doc Document) (*domain.RunRecord, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("export: record: %w", err)
	}

	return &domain.RunRecord{
		ID:        res.RunID,
		Seed:      res.Params.Seed,
		Days:      res.Params.Days,
		FleetSize: res.FleetSize,
		TotalPigs: summary.TotalPigs,
		Revenue:   summary.Revenue,
		Penalties: summary.Penalties,
		NetProfit: summary.NetProfit,
		Rows:      Rows(res),
		Document:  data,
	}, nil
}

// RecordFromDocument rebuilds a run record from an export file, for
// importing runs produced elsewhere.
func RecordFromDocument(doc Document, raw []byte) (*domain.RunRecord, error) {
	if doc.Metadata.RunID == "" {
		return nil, fmt.Errorf("export: document has no run_id")
	}

	rec := &domain.RunRecord{
		ID:        doc.Metadata.RunID,
		Seed:      doc.Metadata.Seed,
		Days:      doc.Metadata.DaysSimulated,
		FleetSize: doc.Metadata.FleetSize,
		TotalPigs: doc.Summary.TotalPigs,
		Revenue:   doc.Summary.Revenue,
		Penalties: doc.Summary.Penalties,
		NetProfit: doc.Summary.NetProfit,
		Document:  raw,
	}

	for _, r := range doc.DailyActivity {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("export: day %d: bad date %q: %w", r.Day, r.Date, err)
		}
		row := domain.ActivityRow{
			Day:     r.Day,
			Date:    date,
			Kind:    domain.ActivityKind(r.Kind),
			TruckID: r.TruckID,
			Stops:   r.Stops,
			Totals: domain.Totals{
				Pigs:       r.TotalPigs,
				WeightKg:   r.TotalWeightKg,
				Revenue:    r.Revenue,
				Penalty:    r.Penalty,
				TravelCost: r.TravelCost,
			},
			DistanceKm: r.DistanceKm,
			TimeHours:  r.TimeHours,
		}
		for _, d := range r.StopDetails {
			row.Loads = append(row.Loads, domain.StopLoad{FarmID: d.FarmID, Pigs: d.Pigs, WeightKg: d.WeightKg})
		}
		rec.Rows = append(rec.Rows, row)
	}

	return rec, nil
}
