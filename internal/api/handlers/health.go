package handlers

import (
	"net/http"
)

// Health reports that the simulator API is up.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok", "service": "pig-logistics-sim"}
	writeJSON(w, r, http.StatusOK, res)
}
