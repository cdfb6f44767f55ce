// ABOUTME: Router sizing optimizer that minimizes power under a capacity constraint
// ABOUTME: Searches tier-1/tier-2 counts and the internal port split per site

package services

import (
	"log/slog"
	"math"

	"github.com/markalston/network-capacity-planner/models"
)

// SizingCandidate is one (n, m, x) choice and its power cost
type SizingCandidate struct {
	T1       int     // n
	T2       int     // m
	Split    int     // x
	Cost     float64 // +Inf when nothing in range is feasible
	Feasible bool
}

// IsFeasible reports whether 16n + 32m + 3nx >= rhs
func IsFeasible(n, m, x int, rhs float64) bool {
	credit := models.T1CapacityCredit*n + models.T2CapacityCredit*m + models.InternalPortCredit*n*x
	return float64(credit) >= rhs
}

// SizingCost returns the power cost of n tier-1 and m tier-2 routers
func SizingCost(n, m int) float64 {
	return float64(models.T1PowerWatts*n + models.T2PowerWatts*m)
}

// SizingRHS is the capacity target for a site
func SizingRHS(demand float64, customers int) float64 {
	return demand/models.DemandScale + float64(models.CustomerCapacityAllowance*customers)
}

// MinCostForSplit finds the cheapest feasible (n, m) for a fixed x.
// m is scanned upward and the minimal n comes from binary search; only a
// strictly cheaper candidate replaces the best, so the first m wins ties.
func MinCostForSplit(x int, rhs float64) SizingCandidate {
	best := SizingCandidate{Split: x, Cost: math.Inf(1)}
	upper := int(math.Floor(rhs))
	if upper < 0 {
		return best
	}

	for m := 0; m <= upper; m++ {
		// Cost never drops below 350m, so no later m can be strictly cheaper
		if SizingCost(0, m) >= best.Cost {
			break
		}
		low, high := 0, upper
		for low <= high {
			n := (low + high) / 2
			if IsFeasible(n, m, x, rhs) {
				if cost := SizingCost(n, m); cost < best.Cost {
					best = SizingCandidate{T1: n, T2: m, Split: x, Cost: cost, Feasible: true}
				}
				high = n - 1
			} else {
				low = n + 1
			}
		}
	}
	return best
}

// OptimalSizing scans every split x in [0, min(8, customers)]. A per-x best
// replaces the overall best when its cost is <= the current best, so ties
// resolve to the largest x.
func OptimalSizing(customers int, rhs float64) SizingCandidate {
	best := SizingCandidate{Cost: math.Inf(1)}
	maxSplit := min(models.MaxInternalSplit, customers)
	for x := 0; x <= maxSplit; x++ {
		candidate := MinCostForSplit(x, rhs)
		if candidate.Cost <= best.Cost {
			best = candidate
		}
	}
	return best
}

// SizingOptimizer sizes routers for every customer site
type SizingOptimizer struct{}

// NewSizingOptimizer creates a new sizing optimizer
func NewSizingOptimizer() *SizingOptimizer {
	return &SizingOptimizer{}
}

// Size produces one Site per customer entry, in input order.
// Infeasible sizing is reported on the site, never as an error.
func (o *SizingOptimizer) Size(customers []models.CustomerEntry, reqs models.RequirementsResult) []models.Site {
	sites := make([]models.Site, 0, len(customers))
	for _, c := range customers {
		sites = append(sites, o.SizeSite(c.Site, c.Customers, reqs))
	}
	return sites
}

// SizeSite sizes a single site from its customer count and requirement rows
func (o *SizingOptimizer) SizeSite(id string, customers int, reqs models.RequirementsResult) models.Site {
	rhs := SizingRHS(reqs.Demand[id], customers)
	best := OptimalSizing(customers, rhs)

	site := models.Site{
		ID:                   id,
		Customers:            customers,
		ExternalRequirements: requirementsFor(reqs.Matrix, id),
		Sizing: models.SiteSizing{
			RHS:           rhs,
			InternalSplit: best.Split,
			Outcome:       models.OutcomeSatisfied,
		},
	}

	if !best.Feasible {
		site.Sizing.Outcome = models.OutcomeInfeasible
		slog.Warn("No feasible router sizing", "site", id, "rhs", rhs)
		return site
	}

	cost := best.Cost
	site.Sizing.PowerCostWatts = &cost
	site.T1Routers = best.T1
	site.T2Routers = best.T2

	internal100 := best.T1 * best.Split
	internal400 := max(customers-internal100, 0)
	external100 := best.T1 * (models.T1Ports100 - best.Split)
	external400 := models.T2Ports400*best.T2 + models.T1Ports400*best.T1 - internal400
	if external400 < 0 {
		site.Sizing.Outcome = models.OutcomePartial
		site.Sizing.PortDeficit = -external400
		slog.Warn("Customer 400-class ports exceed router supply",
			"site", id, "deficit", -external400)
		external400 = 0
	}

	site.Ports = models.SitePorts{
		External: models.PortInventory{G100: external100, G400: external400},
		Internal: models.PortInventory{G100: internal100, G400: internal400},
	}

	slog.Debug("Sized site", "site", id, "rhs", rhs, "t1", best.T1, "t2", best.T2,
		"split", best.Split, "cost_watts", cost)
	return site
}

func requirementsFor(matrix *models.RequirementMatrix, id string) []models.Requirement {
	peers := matrix.Peers(id)
	out := make([]models.Requirement, 0, len(peers))
	for _, peer := range peers {
		out = append(out, models.Requirement{Peer: peer, Bandwidth: matrix.Get(id, peer)})
	}
	return out
}
