package domain

import "fmt"

// Pigs collected at a single farm of a route.
type StopLoad struct {
	FarmID   string
	Pigs     int
	WeightKg float64
}

// Route is a committed collection trip: slaughterhouse, up to a few farms,
// and back. It is immutable once appended to the activity log.
type Route struct {
	Day     int
	TruckID int
	Trip    int
	// Stops lists every farm visited in order, including stops that
	// yielded no pigs.
	Stops []string
	Loads []StopLoad

	TotalPigs     int
	TotalWeightKg float64
	DistanceKm    float64
	TimeHours     float64
	Revenue       float64
	Penalty       float64
	TravelCost    float64
}

// Label identifies the truck trip, e.g. T1_V2 for the second trip of truck 1.
func (r *Route) Label() string {
	return fmt.Sprintf("T%d_V%d", r.TruckID, r.Trip)
}

func (r *Route) Profit() float64 {
	return r.Revenue - r.TravelCost
}

type ActivityKind string

const (
	ActivityRoute      ActivityKind = "route"
	ActivityRest       ActivityKind = "rest"
	ActivityNoActivity ActivityKind = "no_activity"
)

// Reportable figures shared by every activity record.
type Totals struct {
	Pigs       int
	WeightKg   float64
	Revenue    float64
	Penalty    float64
	TravelCost float64
}

// Activity is one entry of the daily log: a committed route, a rest day,
// or a working day on which nothing was collected.
type Activity interface {
	OnDay() int
	Kind() ActivityKind
	Totals() Totals
}

func (r *Route) OnDay() int         { return r.Day }
func (r *Route) Kind() ActivityKind { return ActivityRoute }
func (r *Route) Totals() Totals {
	return Totals{
		Pigs:       r.TotalPigs,
		WeightKg:   r.TotalWeightKg,
		Revenue:    r.Revenue,
		Penalty:    r.Penalty,
		TravelCost: r.TravelCost,
	}
}

type RestDay struct{ Day int }

func (r RestDay) OnDay() int         { return r.Day }
func (r RestDay) Kind() ActivityKind { return ActivityRest }
func (r RestDay) Totals() Totals     { return Totals{} }

type NoActivity struct{ Day int }

func (n NoActivity) OnDay() int         { return n.Day }
func (n NoActivity) Kind() ActivityKind { return ActivityNoActivity }
func (n NoActivity) Totals() Totals     { return Totals{} }
