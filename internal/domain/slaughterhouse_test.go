package domain

import (
	"errors"
	"testing"
	"time"
)

func TestSlaughterhouseReceive(t *testing.T) {
	s := NewSlaughterhouse("S", Location{}, 100)

	if err := s.Receive(60); err != nil {
		t.Fatalf("Receive(60): %v", err)
	}
	if got := s.RemainingCapacity(); got != 40 {
		t.Fatalf("remaining = %d, want 40", got)
	}

	if err := s.Receive(41); !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
	if s.ProcessedToday != 60 {
		t.Fatalf("processed = %d after rejected delivery, want 60", s.ProcessedToday)
	}

	s.ResetDay()
	if got := s.RemainingCapacity(); got != 100 {
		t.Fatalf("remaining after reset = %d, want 100", got)
	}
}

func TestFlattenActivity(t *testing.T) {
	date := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	r := &Route{
		Day: 3, TruckID: 1, Trip: 2,
		Stops: []string{"F1", "F2"},
		Loads: []StopLoad{{FarmID: "F1", Pigs: 5, WeightKg: 550}, {FarmID: "F2"}},
		TotalPigs: 5, TotalWeightKg: 550, DistanceKm: 30, TimeHours: 0.6,
	}

	row := FlattenActivity(r, date)
	if row.TruckID != "T1_V2" || row.Kind != ActivityRoute {
		t.Fatalf("row = %+v", row)
	}
	if len(row.Stops) != 2 || len(row.Loads) != 1 {
		t.Fatalf("stops = %v loads = %v", row.Stops, row.Loads)
	}

	rest := FlattenActivity(RestDay{Day: 6}, date)
	if rest.TruckID != RestTruckID || rest.Totals != (Totals{}) {
		t.Fatalf("rest row = %+v", rest)
	}
	if FlattenActivity(NoActivity{Day: 4}, date).TruckID != NoActivityTruckID {
		t.Fatalf("no-activity row has wrong truck id")
	}
}
