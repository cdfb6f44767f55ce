// ABOUTME: Power consumption series across the 48 daily slots
// ABOUTME: Records clamps where demand exceeded installed routers

package models

// PowerClamp records a slot where a site needed more routers than installed
type PowerClamp struct {
	Slot      int        `json:"slot"`
	Site      string     `json:"site"`
	Tier      RouterTier `json:"tier"`
	Required  int        `json:"required"`
	Installed int        `json:"installed"`
}

// SiteActivity is the active router count for one site in one slot
type SiteActivity struct {
	Site     string  `json:"site"`
	ActiveT1 int     `json:"active_t1"`
	ActiveT2 int     `json:"active_t2"`
	Watts    float64 `json:"watts"`
}

// PowerSeries is the estimator output
type PowerSeries struct {
	PerSlot  [SlotsPerDay]float64 `json:"per_slot"`
	Average  float64              `json:"average"`
	Peak     float64              `json:"peak"`
	PeakSlot int                  `json:"peak_slot"`
	Clamps   []PowerClamp         `json:"clamps"`
	// Activity is indexed by slot and lists only sites with active routers
	Activity [SlotsPerDay][]SiteActivity `json:"activity"`
}

// PowerInput is the request body for a standalone power estimate
type PowerInput struct {
	Nodes       []Site            `json:"nodes"`
	TimeWindows []TimeWindowEntry `json:"time_windows"`
}
