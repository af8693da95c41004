package dto

import (
	"pig-logistics-sim/internal/services"
	"time"
)

// Omitted fields keep the server's configured values.
type SimulationRequest struct {
	Seed      *uint64 `json:"seed"`
	Days      *int    `json:"days" validate:"omitempty,gt=0,lte=365"`
	FleetSize *int    `json:"fleet_size" validate:"omitempty,gte=0,lte=50"`
	FarmCount *int    `json:"farm_count" validate:"omitempty,gt=0,lte=1000"`
}

type SimulationResponse struct {
	ID      string           `json:"id"`
	Summary services.Summary `json:"summary"`
}

type RunResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      uint64    `json:"seed"`
	Days      int       `json:"days"`
	FleetSize int       `json:"fleet_size"`
	TotalPigs int       `json:"total_pigs"`
	Revenue   float64   `json:"revenue"`
	Penalties float64   `json:"penalties"`
	NetProfit float64   `json:"net_profit"`
}

type ListRunsResponse struct {
	Simulations []RunResponse `json:"simulations"`
}
