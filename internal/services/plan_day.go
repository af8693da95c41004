package services

import (
	"context"
	"fmt"
	"log"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/domain"
	"pig-logistics-sim/internal/platform/metrics"
	"pig-logistics-sim/internal/platform/obs"
)

// Planner builds the collection routes of a single working day.
type Planner struct {
	params  config.Params
	pricing Pricing
}

func NewPlanner(params config.Params) *Planner {
	return &Planner{params: params, pricing: NewPricing(params.Prices)}
}

type routeEstimate struct {
	distanceKm float64
	hours      float64
	load       routeLoad
}

// PlanDay commits routes until the slaughterhouse is within its buffer of
// capacity, the candidates run out, or no truck can take another trip.
//
// Routes that do not fit any truck lose their last stop and are
// re-estimated; a single-stop route that still does not fit ends the day.
func (p *Planner) PlanDay(
	ctx context.Context,
	day int,
	sh *domain.Slaughterhouse,
	farms []*domain.Farm,
	fleet domain.Fleet,
) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, "services.PlanDay")(&err)

	runID, _ := ctx.Value(obs.RunIDKey).(string)
	fleet.Clear()

	candidates := SelectCandidates(farms, p.params.Prices.MarketWeightKg)
	if len(candidates) == 0 {
		p.logNoCandidates(runID, day, farms)
		return nil, nil
	}

	routes := []*domain.Route{}
	for len(candidates) > 0 && sh.RemainingCapacity() > p.params.Routing.SlaughterhouseBuffer {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan day %d: %w", day, err)
		}

		if fleet.Exhausted() {
			log.Printf("run_id=%s day=%d msg=%q", runID, day, "fleet exhausted")
			break
		}

		stops := BuildCandidateRoute(candidates, p.params.Routing.MaxStops, p.params.Routing.MaxLegKm)

		var (
			truck *domain.Truck
			est   routeEstimate
		)
		for len(stops) > 0 {
			est = p.estimate(sh, stops)
			if t, ok := fleet.FirstFit(est.hours); ok {
				truck = t
				break
			}
			if len(stops) == 1 {
				break
			}
			stops = stops[:len(stops)-1]
			metrics.RouteBackoffs.Inc()
		}

		if truck == nil {
			log.Printf("run_id=%s day=%d msg=%q hours=%.2f", runID, day, "fleet saturated", est.hours)
			break
		}

		route, err := p.commit(day, sh, truck, stops, est)
		if err != nil {
			return nil, fmt.Errorf("plan day %d: %w", day, err)
		}
		routes = append(routes, route)

		drop := make(map[string]struct{})
		for _, f := range candidates {
			if f.VisitedThisWeek {
				drop[f.ID] = struct{}{}
			}
		}
		// An empty route marks nothing visited; drop its first stop so the
		// next iteration does not propose the same route again.
		if route.TotalPigs == 0 {
			drop[stops[0].ID] = struct{}{}
		}
		candidates = removeFarms(candidates, drop)
	}

	return routes, nil
}

func (p *Planner) estimate(sh *domain.Slaughterhouse, stops []*domain.Farm) routeEstimate {
	fleet := p.params.Fleet

	dist := RouteDistanceKm(sh.Location, stops)
	load := collectLoad(stops, fleet.LargeCapacityKg, sh.RemainingCapacity(), false)
	hours := dist/fleet.AverageSpeedKmh + float64(load.pigs)*fleet.LoadingHoursPerPig

	return routeEstimate{distanceKm: dist, hours: hours, load: load}
}

func (p *Planner) commit(
	day int,
	sh *domain.Slaughterhouse,
	truck *domain.Truck,
	stops []*domain.Farm,
	est routeEstimate,
) (*domain.Route, error) {
	fleet := p.params.Fleet

	trip, err := truck.Assign(est.hours)
	if err != nil {
		return nil, fmt.Errorf("commit route: %w", err)
	}

	load := collectLoad(stops, fleet.LargeCapacityKg, sh.RemainingCapacity(), true)
	if load.pigs != est.load.pigs || load.weightKg != est.load.weightKg {
		return nil, fmt.Errorf(
			"commit route: truck %d collected %d pigs/%.1fkg, estimated %d pigs/%.1fkg: %w",
			truck.TruckID, load.pigs, load.weightKg, est.load.pigs, est.load.weightKg, domain.ErrInvariant,
		)
	}
	if load.weightKg > fleet.LargeCapacityKg {
		return nil, fmt.Errorf(
			"commit route: truck %d load %.1fkg exceeds %.1fkg: %w",
			truck.TruckID, load.weightKg, fleet.LargeCapacityKg, domain.ErrInvariant,
		)
	}

	route := &domain.Route{
		Day:           day,
		TruckID:       truck.TruckID,
		Trip:          trip,
		TotalPigs:     load.pigs,
		TotalWeightKg: load.weightKg,
		DistanceKm:    est.distanceKm,
		TimeHours:     est.hours,
	}

	var delivered []float64
	for _, s := range load.stops {
		route.Stops = append(route.Stops, s.farm.ID)
		route.Loads = append(route.Loads, domain.StopLoad{FarmID: s.farm.ID, Pigs: s.pigs, WeightKg: s.weightKg})
		if s.pigs > 0 {
			s.farm.VisitedThisWeek = true
		}
		delivered = append(delivered, s.weights...)
	}

	route.Revenue, route.Penalty = p.pricing.Value(delivered)
	route.TravelCost = TravelCost(
		est.distanceKm, fleet.LargeCostPerKm, load.weightKg, fleet.LargeCapacityKg, fleet.MinLoadFactor,
	)

	if err := sh.Receive(load.pigs); err != nil {
		return nil, fmt.Errorf("commit route: %w", err)
	}

	metrics.RoutesCommitted.Inc()
	metrics.PigsDelivered.Add(float64(load.pigs))

	return route, nil
}

// logNoCandidates explains why a working day has nothing to collect.
func (p *Planner) logNoCandidates(runID string, day int, farms []*domain.Farm) {
	market := p.params.Prices.MarketWeightKg

	visited, withStock, sellable := 0, 0, 0
	for _, f := range farms {
		if f.VisitedThisWeek {
			visited++
		}
		if f.TotalPigs() > 0 {
			withStock++
		}
		if f.HasSellablePigs(market) {
			sellable++
		}
	}

	log.Printf(
		"run_id=%s day=%d msg=%q farms=%d visited=%d with_stock=%d above_market=%d",
		runID, day, "no candidate farms", len(farms), visited, withStock, sellable,
	)
}
