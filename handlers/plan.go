// ABOUTME: HTTP handler for full planning runs
// ABOUTME: Caches deterministic results and collapses identical concurrent requests

package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/markalston/network-capacity-planner/models"
)

// Plan runs the whole pipeline. Identical requests are served from cache
// until the TTL expires.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if in.Policy == "" {
		in.Policy = h.planner.DefaultPolicy()
	}

	key, err := planCacheKey(in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if h.cache != nil {
		if cached, found := h.cache.Get(key); found {
			h.metrics.CacheHit()
			result := *cached.(*models.PlanResult)
			result.Metadata.Cached = true
			h.writeJSON(w, http.StatusOK, result)
			return
		}
		h.metrics.CacheMiss()
	}

	// The shared computation must outlive any single caller's cancellation
	ctx := context.WithoutCancel(r.Context())
	v, err, shared := h.inflight.Do(key, func() (any, error) {
		start := time.Now()
		result, err := h.planner.Plan(ctx, in)
		if err != nil {
			return nil, err
		}
		h.metrics.ObservePlan(result, time.Since(start))
		if h.cache != nil {
			h.cache.Set(key, result)
		}
		return result, nil
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if shared {
		slog.Debug("Plan shared with concurrent request", "key", key[:12])
	}
	h.writeJSON(w, http.StatusOK, v.(*models.PlanResult))
}

// planCacheKey hashes the canonical JSON form of the request
func planCacheKey(in models.PlanInput) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encoding plan input: %w", err)
	}
	sum := sha256.Sum256(data)
	return "plan:" + hex.EncodeToString(sum[:]), nil
}
