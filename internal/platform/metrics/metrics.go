package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the simulator.
	Registry = prometheus.NewRegistry()

	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sim_runs_total", Help: "Simulation runs by outcome."},
		[]string{"status"},
	)
	RoutesCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "sim_routes_committed_total", Help: "Collection routes committed to a truck."},
	)
	PigsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "sim_pigs_delivered_total", Help: "Pigs delivered to the slaughterhouse."},
	)
	// RouteBackoffs counts stops dropped from a candidate route so it fits a truck.
	RouteBackoffs = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "sim_route_backoffs_total", Help: "Stops dropped to fit a route into a truck's day."},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
)

var regOnce sync.Once

// Register adds all collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(RunsTotal)
		Registry.MustRegister(RoutesCommitted)
		Registry.MustRegister(PigsDelivered)
		Registry.MustRegister(RouteBackoffs)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		RunsTotal.WithLabelValues("ok")
		RunsTotal.WithLabelValues("failed")
	})
}
