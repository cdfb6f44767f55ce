// ABOUTME: Power estimator that activates routers per slot from scheduled demand
// ABOUTME: Caps active routers at installed counts and records each clamp

package services

import (
	"log/slog"
	"math"

	"github.com/markalston/network-capacity-planner/models"
)

// PowerEstimator computes power draw across the day
type PowerEstimator struct{}

// NewPowerEstimator creates a new estimator
func NewPowerEstimator() *PowerEstimator {
	return &PowerEstimator{}
}

// Estimate walks each slot and node. A node needs ceil(bw/100) small-port units
// and ceil(bw/400) large-port units per outgoing requirement; every 8 units
// activate one router of the matching tier, capped at what is installed.
func (e *PowerEstimator) Estimate(nodes []models.Site, tz models.TimezoneMap) models.PowerSeries {
	var series models.PowerSeries
	total := 0.0

	for slot := 0; slot < models.SlotsPerDay; slot++ {
		reqs := tz.Slot(slot)
		slotPower := 0.0

		for _, node := range nodes {
			need100, need400 := 0, 0
			for _, peer := range reqs.Peers(node.ID) {
				bw := reqs.Get(node.ID, peer)
				need100 += int(math.Ceil(bw / models.Bandwidth100))
				need400 += int(math.Ceil(bw / models.Bandwidth400))
			}

			requiredT1 := ceilDiv(need100, models.PortsPerActiveRouter)
			requiredT2 := ceilDiv(need400, models.PortsPerActiveRouter)
			if requiredT1 > node.T1Routers {
				series.Clamps = append(series.Clamps, models.PowerClamp{
					Slot: slot, Site: node.ID, Tier: models.TierOne,
					Required: requiredT1, Installed: node.T1Routers,
				})
			}
			if requiredT2 > node.T2Routers {
				series.Clamps = append(series.Clamps, models.PowerClamp{
					Slot: slot, Site: node.ID, Tier: models.TierTwo,
					Required: requiredT2, Installed: node.T2Routers,
				})
			}

			activeT1 := min(requiredT1, node.T1Routers)
			activeT2 := min(requiredT2, node.T2Routers)
			watts := float64(models.T1PowerWatts*activeT1 + models.T2PowerWatts*activeT2)
			if activeT1 > 0 || activeT2 > 0 {
				series.Activity[slot] = append(series.Activity[slot], models.SiteActivity{
					Site: node.ID, ActiveT1: activeT1, ActiveT2: activeT2, Watts: watts,
				})
			}
			slotPower += watts
		}

		series.PerSlot[slot] = slotPower
		if slotPower > series.Peak {
			series.Peak = slotPower
			series.PeakSlot = slot
		}
		total += slotPower
	}

	series.Average = total / models.SlotsPerDay
	if len(series.Clamps) > 0 {
		slog.Debug("Power demand clamped to installed routers", "clamps", len(series.Clamps))
	}
	return series
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
