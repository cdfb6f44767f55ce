// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},

		// Engine stages
		{Method: http.MethodPost, Path: "/api/v1/requirements", Handler: h.Requirements},
		{Method: http.MethodPost, Path: "/api/v1/sizing", Handler: h.Sizing},
		{Method: http.MethodPost, Path: "/api/v1/topology", Handler: h.Topology},
		{Method: http.MethodPost, Path: "/api/v1/schedule", Handler: h.Schedule},
		{Method: http.MethodPost, Path: "/api/v1/power", Handler: h.Power},

		// Planning
		{Method: http.MethodPost, Path: "/api/v1/plan", Handler: h.Plan},
		{Method: http.MethodPost, Path: "/api/v1/scenario/compare", Handler: h.CompareScenario},
	}
}
