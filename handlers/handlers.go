// ABOUTME: HTTP handlers for the network capacity planner API
// ABOUTME: Shares the planner, plan cache and metrics across endpoints

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/network-capacity-planner/cache"
	"github.com/markalston/network-capacity-planner/config"
	"github.com/markalston/network-capacity-planner/metrics"
	"github.com/markalston/network-capacity-planner/models"
	"github.com/markalston/network-capacity-planner/services"
)

// Version is reported by the health endpoint; overridden at build time.
var Version = "dev"

// MaxRequestBodySize bounds every JSON request body.
const MaxRequestBodySize = 1 << 20

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache
	metrics  *metrics.Recorder
	planner  *services.Planner
	scenario *services.ScenarioCalculator
	inflight singleflight.Group
	started  time.Time
}

// NewHandler wires the planner from cfg. cfg, cache and metrics may be nil
// (tests); a nil cache disables plan caching.
func NewHandler(cfg *config.Config, c *cache.Cache, rec *metrics.Recorder) *Handler {
	var policy models.EscalationPolicy
	var limit int
	if cfg != nil {
		policy = cfg.EscalationPolicy
		limit = cfg.MaxRouterAdditions
	}
	planner := services.NewPlanner(policy, limit)

	return &Handler{
		cfg:      cfg,
		cache:    c,
		metrics:  rec,
		planner:  planner,
		scenario: services.NewScenarioCalculator(planner),
		started:  time.Now(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:        "ok",
		Version:       Version,
		Policy:        string(h.planner.DefaultPolicy()),
		UptimeSeconds: time.Since(h.started).Seconds(),
	}
	if h.cache != nil {
		resp.CacheEntries = h.cache.Len()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// decodeJSON reads the request body into dst, writing the error response
// itself on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError maps planner errors onto status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		h.writeErrorWithDetails(w, "Invalid input", err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Planning aborted", "path", r.URL.Path, "error", err)
		h.writeError(w, "Request cancelled", http.StatusServiceUnavailable)
	default:
		slog.Error("Planning failed", "path", r.URL.Path, "error", err)
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorWithDetails(w, message, "", code)
}

func (h *Handler) writeErrorWithDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}
