package api

import (
	"net/http"
	"pig-logistics-sim/internal/api/handlers"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/platform/metrics"
	"pig-logistics-sim/internal/ports"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.RunRepository, base config.Params) http.Handler {
	metrics.Register()

	mux := http.NewServeMux()

	simHandler := &handlers.SimulationHandler{
		Base:     base,
		Repo:     repo,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/simulations", simHandler.Collection)
	mux.HandleFunc("GET /simulations/{id}", simHandler.Get)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
