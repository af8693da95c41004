package services

import (
	"context"
	"fmt"
	"log"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/domain"
	"pig-logistics-sim/internal/platform/metrics"
	"pig-logistics-sim/internal/platform/obs"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result is everything a finished run leaves behind for reporting.
type Result struct {
	RunID      string
	Params     config.Params
	FleetSize  int
	Activities []domain.Activity
	// DailyFeedCost[i] is the feed cost accrued on day i+1.
	DailyFeedCost []float64
	Env           *domain.Environment
}

// Date returns the calendar date of a simulated day.
func (r *Result) Date(day int) time.Time {
	return r.Params.StartDate.AddDate(0, 0, day-1)
}

// Simulator runs the day-by-day collection loop over one environment.
type Simulator struct {
	params  config.Params
	growth  domain.GrowthModel
	planner *Planner
}

func NewSimulator(params config.Params, growth domain.GrowthModel) *Simulator {
	return &Simulator{params: params, growth: growth, planner: NewPlanner(params)}
}

// Run simulates params.Days days on env, mutating it in place.
func (s *Simulator) Run(ctx context.Context, env *domain.Environment) (_ *Result, err error) {
	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)
	defer obs.Time(ctx, "services.Simulator.Run")(&err)
	defer func() {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		metrics.RunsTotal.WithLabelValues(status).Inc()
	}()

	if env == nil || env.Slaughterhouse == nil {
		return nil, fmt.Errorf("run simulation: missing slaughterhouse")
	}

	p := s.params
	fleetSize := p.Fleet.Size
	if fleetSize == 0 {
		fleetSize = RecommendFleetSize(env, p)
	}

	s.logBanner(runID, fleetSize, env)

	res := &Result{
		RunID:         runID,
		Params:        p,
		FleetSize:     fleetSize,
		DailyFeedCost: make([]float64, 0, p.Days),
		Env:           env,
	}

	sh := env.Slaughterhouse
	fleet := domain.NewFleet(fleetSize, p.Fleet.MaxHoursPerDay)

	for day := 1; day <= p.Days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run simulation: day %d: %w", day, err)
		}

		weekday := (day - 1) % p.WeekDays
		sh.ResetDay()

		if weekday == 0 {
			for _, f := range env.Farms {
				f.VisitedThisWeek = false
			}
			if day > 1 {
				for _, f := range env.Farms {
					for _, b := range f.Batches {
						s.growth.GrowOneWeek(b)
					}
				}
				log.Printf("run_id=%s day=%d msg=%q", runID, day, "new week: farms reset, batches grown")
			}
		}

		feed := 0.0
		for _, f := range env.Farms {
			feed += f.DailyFeedCost(s.growth, p.Prices.FeedPerKg)
		}
		res.DailyFeedCost = append(res.DailyFeedCost, feed)

		if weekday >= p.WeekDays-p.RestDays {
			log.Printf("run_id=%s day=%d msg=%q feed_cost=%.2f", runID, day, "rest day", feed)
			res.Activities = append(res.Activities, domain.RestDay{Day: day})
			continue
		}

		routes, err := s.planner.PlanDay(ctx, day, sh, env.Farms, fleet)
		if err != nil {
			return nil, fmt.Errorf("run simulation: %w", err)
		}

		log.Printf("run_id=%s day=%d routes=%d processed=%d feed_cost=%.2f", runID, day, len(routes), sh.ProcessedToday, feed)
		if len(routes) == 0 {
			res.Activities = append(res.Activities, domain.NoActivity{Day: day})
			continue
		}

		for _, r := range routes {
			logRoute(runID, r)
			res.Activities = append(res.Activities, r)
		}
		log.Printf("run_id=%s day=%d truck_hours=%s", runID, day, formatHours(fleet.HoursUsed()))
	}

	return res, nil
}

func (s *Simulator) logBanner(runID string, fleetSize int, env *domain.Environment) {
	p := s.params
	log.Printf(
		"run_id=%s days=%d fleet_size=%d fixed_weekly_cost=%.2f cost_per_km_small=%.2f cost_per_km_large=%.2f",
		runID, p.Days, fleetSize, p.Fleet.FixedWeeklyCost, p.Fleet.SmallCostPerKm, p.Fleet.LargeCostPerKm,
	)
	log.Printf(
		"run_id=%s price_per_kg=%.2f feed_per_kg=%.2f optimal=%.0f-%.0fkg slaughterhouse=%s capacity=%d farms=%d",
		runID, p.Prices.BasePerKg, p.Prices.FeedPerKg, p.Prices.OptimalMinKg, p.Prices.OptimalMaxKg,
		env.Slaughterhouse.ID, env.Slaughterhouse.DailyCapacity, len(env.Farms),
	)
}

func logRoute(runID string, r *domain.Route) {
	stops := make([]string, 0, len(r.Loads))
	for _, l := range r.Loads {
		stops = append(stops, fmt.Sprintf("%s(%d)", l.FarmID, l.Pigs))
	}
	log.Printf(
		"run_id=%s truck=%s stops=%s pigs=%d kg=%.1f hours=%.2f profit=%.2f",
		runID, r.Label(), strings.Join(stops, "+"), r.TotalPigs, r.TotalWeightKg, r.TimeHours, r.Profit(),
	)
}

func formatHours(hours []float64) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("T%d:%.1fh", i+1, h)
	}
	return strings.Join(parts, ",")
}
