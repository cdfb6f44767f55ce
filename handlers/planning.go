// ABOUTME: HTTP handlers exposing each engine stage on its own
// ABOUTME: Requirements, sizing, topology, schedule and power endpoints

package handlers

import (
	"net/http"

	"github.com/markalston/network-capacity-planner/models"
)

// Requirements aggregates the bandwidth tuples of a plan input.
func (h *Handler) Requirements(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	result, err := h.planner.Requirements(in.Bandwidth)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Sizing returns every customer site with its optimal router mix.
func (h *Handler) Sizing(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	sites, err := h.planner.Size(in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sites)
}

// Topology sizes sites and connects them under the requested policy.
func (h *Handler) Topology(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	topo, err := h.planner.Topology(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, topo)
}

// Schedule splits time windows into the 48 half-hour slots.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	tz, err := h.planner.Schedule(in.TimeWindows)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tz)
}

// Power estimates consumption for caller-supplied nodes.
func (h *Handler) Power(w http.ResponseWriter, r *http.Request) {
	var in models.PowerInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	series, err := h.planner.Power(in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, series)
}
