package domain

import "time"

const (
	RestTruckID       = "REST"
	NoActivityTruckID = "NO_ACTIVITY"
)

// ActivityRow is the flattened, tabular form of an Activity shared by the
// export document and the run tables.
type ActivityRow struct {
	Day        int
	Date       time.Time
	Kind       ActivityKind
	TruckID    string
	Stops      []string
	Loads      []StopLoad
	Totals     Totals
	DistanceKm float64
	TimeHours  float64
}

// FlattenActivity turns a log entry into a row dated on the given day.
// Sentinels carry a placeholder truck id and zero totals.
func FlattenActivity(a Activity, date time.Time) ActivityRow {
	row := ActivityRow{
		Day:    a.OnDay(),
		Date:   date,
		Kind:   a.Kind(),
		Totals: a.Totals(),
	}

	switch v := a.(type) {
	case *Route:
		row.TruckID = v.Label()
		row.Stops = append([]string(nil), v.Stops...)
		for _, l := range v.Loads {
			if l.Pigs > 0 {
				row.Loads = append(row.Loads, l)
			}
		}
		row.DistanceKm = v.DistanceKm
		row.TimeHours = v.TimeHours
	case RestDay:
		row.TruckID = RestTruckID
	case NoActivity:
		row.TruckID = NoActivityTruckID
	}

	return row
}

// RunRecord is a finished simulation as stored by a run repository.
type RunRecord struct {
	ID        string
	CreatedAt time.Time
	Seed      uint64
	Days      int
	FleetSize int

	TotalPigs int
	Revenue   float64
	Penalties float64
	NetProfit float64

	Rows []ActivityRow
	// Document is the JSON export of the run.
	Document []byte
}
