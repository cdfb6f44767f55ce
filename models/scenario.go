// ABOUTME: Data models for comparing escalation policies on the same input
// ABOUTME: Reports both plans, the differences and tradeoff warnings

package models

import "fmt"

// Warning severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// ScenarioResult summarizes one plan for comparison
type ScenarioResult struct {
	Policy          EscalationPolicy `json:"policy"`
	Outcome         Outcome          `json:"outcome"`
	T1Routers       int              `json:"t1_routers"`
	T2Routers       int              `json:"t2_routers"`
	RoutersAdded    int              `json:"routers_added"`
	Shortfalls      int              `json:"shortfalls"`
	UnmetBandwidth  float64          `json:"unmet_bandwidth"`
	IndirectRoutes  int              `json:"indirect_routes"`
	AveragePowerW   float64          `json:"average_power_watts"`
	PeakPowerW      float64          `json:"peak_power_watts"`
	InstalledPowerW float64          `json:"installed_power_watts"`
}

// Routers returns formatted router count like "3×T1 + 1×T2"
func (r *ScenarioResult) Routers() string {
	return fmt.Sprintf("%d×T1 + %d×T2", r.T1Routers, r.T2Routers)
}

// ScenarioWarning represents a tradeoff warning
type ScenarioWarning struct {
	Severity string `json:"severity"` // "info", "warning", "critical"
	Message  string `json:"message"`
}

// ScenarioDelta is router-addition minus indirect-path
type ScenarioDelta struct {
	RoutersAdded       int     `json:"routers_added"`
	AveragePowerChange float64 `json:"average_power_change_watts"`
	AveragePowerPct    float64 `json:"average_power_change_pct"`
	ShortfallChange    int     `json:"shortfall_change"`
}

// ScenarioComparison is the full comparison response
type ScenarioComparison struct {
	RouterAddition ScenarioResult    `json:"router_addition"`
	IndirectPath   ScenarioResult    `json:"indirect_path"`
	Delta          ScenarioDelta     `json:"delta"`
	Warnings       []ScenarioWarning `json:"warnings"`
	Recommended    EscalationPolicy  `json:"recommended"`
}
