package services

import "pig-logistics-sim/internal/domain"

type DailyPigs struct {
	Day     int  `json:"day"`
	Pigs    int  `json:"pigs"`
	RestDay bool `json:"rest_day"`
}

// Summary holds the dashboard figures of a run.
type Summary struct {
	Days              int         `json:"days"`
	FleetSize         int         `json:"fleet_size"`
	Routes            int         `json:"routes"`
	TotalPigs         int         `json:"total_pigs"`
	TotalWeightKg     float64     `json:"total_weight_kg"`
	Revenue           float64     `json:"revenue"`
	Penalties         float64     `json:"penalties"`
	VariableTransport float64     `json:"variable_transport_cost"`
	FixedTransport    float64     `json:"fixed_transport_cost"`
	FeedCost          float64     `json:"feed_cost"`
	NetProfit         float64     `json:"net_profit"`
	PigsPerDay        []DailyPigs `json:"pigs_per_day"`
}

// Summarize totals a run's activity log. Fixed truck cost is charged per
// whole week simulated.
func Summarize(res *Result) Summary {
	p := res.Params
	s := Summary{
		Days:       p.Days,
		FleetSize:  res.FleetSize,
		PigsPerDay: make([]DailyPigs, p.Days),
	}

	for i := range s.PigsPerDay {
		day := i + 1
		s.PigsPerDay[i] = DailyPigs{Day: day, RestDay: (day-1)%p.WeekDays >= p.WeekDays-p.RestDays}
	}

	for _, a := range res.Activities {
		if a.Kind() != domain.ActivityRoute {
			continue
		}
		t := a.Totals()
		s.Routes++
		s.TotalPigs += t.Pigs
		s.TotalWeightKg += t.WeightKg
		s.Revenue += t.Revenue
		s.Penalties += t.Penalty
		s.VariableTransport += t.TravelCost
		if d := a.OnDay(); d >= 1 && d <= p.Days {
			s.PigsPerDay[d-1].Pigs += t.Pigs
		}
	}

	weeks := p.Days / p.WeekDays
	s.FixedTransport = p.Fleet.FixedWeeklyCost * float64(weeks) * float64(res.FleetSize)

	if res.Env != nil {
		for _, f := range res.Env.Farms {
			s.FeedCost += f.CumulativeFeedCost
		}
	}

	s.NetProfit = s.Revenue - s.VariableTransport - s.FixedTransport - s.FeedCost
	return s
}
