// ABOUTME: HTTP handler for scenario comparison endpoint
// ABOUTME: Plans one input under both escalation policies side by side

package handlers

import (
	"net/http"

	"github.com/markalston/network-capacity-planner/models"
)

// CompareScenario compares router addition against indirect paths.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) CompareScenario(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if !h.decodeJSON(w, r, &in) {
		return
	}

	comparison, err := h.scenario.Compare(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, comparison)
}
