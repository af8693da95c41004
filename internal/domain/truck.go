package domain

import "fmt"

// Collection truck and its working hours for the current day.
type Truck struct {
	TruckID   int
	MaxHours  float64
	HoursUsed float64
	Trips     int
}

func NewTruck(id int, maxHours float64) *Truck {
	return &Truck{TruckID: id, MaxHours: maxHours}
}

// Fits reports whether a trip of the given length still fits in the day.
func (t *Truck) Fits(hours float64) bool {
	return t.HoursUsed+hours <= t.MaxHours
}

func (t *Truck) Exhausted() bool {
	return t.HoursUsed >= t.MaxHours
}

// Assign books a trip on the truck and returns its 1-based trip number.
func (t *Truck) Assign(hours float64) (int, error) {
	if hours < 0 {
		return 0, fmt.Errorf("assign truck: Truck %d negative trip length %.3fh: %w", t.TruckID, hours, ErrInvariant)
	}
	if !t.Fits(hours) {
		return 0, fmt.Errorf(
			"assign truck: Truck %d would work %.3fh (max=%.3fh): %w",
			t.TruckID, t.HoursUsed+hours, t.MaxHours, ErrInvariant,
		)
	}
	t.HoursUsed += hours
	t.Trips++
	return t.Trips, nil
}

// Clear the day's schedule.
func (t *Truck) Clear() {
	t.HoursUsed = 0
	t.Trips = 0
}

// Fleet is ordered; assignment always scans it from the first truck.
type Fleet []*Truck

func NewFleet(size int, maxHours float64) Fleet {
	fleet := make(Fleet, 0, size)
	for i := 0; i < size; i++ {
		fleet = append(fleet, NewTruck(i+1, maxHours))
	}
	return fleet
}

// Exhausted is true when no truck has any hours left.
func (f Fleet) Exhausted() bool {
	for _, t := range f {
		if !t.Exhausted() {
			return false
		}
	}
	return true
}

// FirstFit returns the first truck that can take a trip of the given length.
func (f Fleet) FirstFit(hours float64) (*Truck, bool) {
	for _, t := range f {
		if t.Fits(hours) {
			return t, true
		}
	}
	return nil, false
}

func (f Fleet) Clear() {
	for _, t := range f {
		t.Clear()
	}
}

func (f Fleet) HoursUsed() []float64 {
	out := make([]float64, len(f))
	for i, t := range f {
		out[i] = t.HoursUsed
	}
	return out
}
