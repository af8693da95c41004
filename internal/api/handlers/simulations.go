package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"pig-logistics-sim/internal/api/dto"
	"pig-logistics-sim/internal/app"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/ports"

	"github.com/go-playground/validator/v10"
)

// SimulationHandler runs simulations on request and serves stored runs.
type SimulationHandler struct {
	Base     config.Params
	Repo     ports.RunRepository
	Validate *validator.Validate
}

// Collection serves POST (run a new simulation) and GET (list runs).
func (h *SimulationHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SimulationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	params := h.Base
	if req.Seed != nil {
		params.Seed = *req.Seed
	}
	if req.Days != nil {
		params.Days = *req.Days
	}
	if req.FleetSize != nil {
		params.Fleet.Size = *req.FleetSize
	}
	if req.FarmCount != nil {
		params.World.FarmCount = *req.FarmCount
	}

	runner := &app.Runner{Repo: h.Repo}
	out, err := runner.Run(r.Context(), params)
	if err != nil {
		log.Printf("run simulation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.SimulationResponse{ID: out.Result.RunID, Summary: out.Summary})
}

func (h *SimulationHandler) list(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Repo.ListRuns(r.Context())
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Simulations: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Simulations = append(res.Simulations, dto.RunResponse{
			ID:        run.ID,
			CreatedAt: run.CreatedAt,
			Seed:      run.Seed,
			Days:      run.Days,
			FleetSize: run.FleetSize,
			TotalPigs: run.TotalPigs,
			Revenue:   run.Revenue,
			Penalties: run.Penalties,
			NetProfit: run.NetProfit,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns the stored export document of one run.
func (h *SimulationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	run, err := h.Repo.GetRun(r.Context(), id)
	if errors.Is(err, ports.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "simulation not found")
		return
	}
	if err != nil {
		log.Printf("get run failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeRawJSON(w, r, http.StatusOK, run.Document)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field() + " failed " + fe.Tag() + " " + fe.Param()
	}
	return "invalid request"
}
