package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"pig-logistics-sim/internal/adapters/repositories"
	"pig-logistics-sim/internal/api/dto"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/platform/metrics"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testRouter() http.Handler {
	base := config.Default()
	base.Days = 3
	base.World.FarmCount = 8
	return NewRouter(repositories.NewMemoryRunRepository(), base)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestSimulationLifecycle(t *testing.T) {
	router := testRouter()

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodPost, "/simulations", "201"))

	// create
	body := strings.NewReader(`{"seed": 5, "days": 2, "fleet_size": 1}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulations", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}

	var created dto.SimulationResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.ID == "" || created.Summary.Days != 2 || created.Summary.FleetSize != 1 {
		t.Fatalf("created = %+v", created)
	}

	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodPost, "/simulations", "201"))
	if after-before != 1 {
		t.Fatalf("request counter delta = %v, want 1", after-before)
	}

	// list
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulations", nil))
	var list dto.ListRunsResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Simulations) != 1 || list.Simulations[0].ID != created.ID || list.Simulations[0].Seed != 5 {
		t.Fatalf("list = %+v", list)
	}

	// get
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulations/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var doc struct {
		Metadata struct {
			RunID string `json:"run_id"`
		} `json:"metadata"`
		DailyActivity []json.RawMessage `json:"daily_activity"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Metadata.RunID != created.ID || len(doc.DailyActivity) == 0 {
		t.Fatalf("document run_id=%q rows=%d", doc.Metadata.RunID, len(doc.DailyActivity))
	}
}

func TestCreateSimulationRejectsBadInput(t *testing.T) {
	router := testRouter()

	for _, body := range []string{`{"days": 0}`, `{"days": 400}`, `{"unknown": 1}`, `{"days": 2}{}`} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulations", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestGetUnknownSimulation(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulations/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sim_runs_total") {
		t.Fatalf("metrics output missing sim_runs_total")
	}
}

func TestSimulationsMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/simulations", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
