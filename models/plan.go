// ABOUTME: Full planning run result combining every engine stage
// ABOUTME: Also holds API error and health response shapes

package models

import "time"

// PlanResult is the output of one planning run
type PlanResult struct {
	Requirements RequirementsResult `json:"requirements"`
	Topology     Topology           `json:"topology"`
	Timezones    TimezoneMap        `json:"timezones"`
	Power        PowerSeries        `json:"power"`
	Outcome      Outcome            `json:"outcome"`
	Shortfalls   []Shortfall        `json:"shortfalls"`
	Policy       EscalationPolicy   `json:"policy"`
	Metadata     PlanMetadata       `json:"metadata"`
}

// PlanMetadata describes the run itself
type PlanMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Sites       int       `json:"sites"`
	Pairs       int       `json:"pairs"`
	DurationMS  float64   `json:"duration_ms"`
	Cached      bool      `json:"cached"`
}

// ErrorResponse is the JSON body for API errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Policy        string  `json:"policy"`
	CacheEntries  int     `json:"cache_entries"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
