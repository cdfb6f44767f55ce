// ABOUTME: Escalation strategies for requirements the direct pass could not place
// ABOUTME: Router addition grows hardware; indirect path borrows spare link capacity

package services

import (
	"log/slog"

	"github.com/markalston/network-capacity-planner/models"
)

// Resolution is the result of escalating one unmet pair
type Resolution struct {
	Satisfied bool
	Method    models.ResolutionMethod
	Reason    models.ShortfallReason // set when not satisfied
	Bandwidth float64                // bandwidth the resolution carried or left unmet
	Path      []string               // indirect routes only
}

// EscalationStrategy resolves a pair left unmet by direct allocation
type EscalationStrategy interface {
	Policy() models.EscalationPolicy
	Satisfy(state *BuildState, from, to string) Resolution
}

// RouterAdditionPolicy adds routers to a deficient endpoint until a direct link fits
type RouterAdditionPolicy struct {
	maxAdditions int
}

// NewRouterAdditionPolicy creates the policy with a per-pair addition ceiling
func NewRouterAdditionPolicy(maxAdditions int) *RouterAdditionPolicy {
	if maxAdditions <= 0 {
		maxAdditions = models.DefaultMaxRouterAdditions
	}
	return &RouterAdditionPolicy{maxAdditions: maxAdditions}
}

// Policy returns the policy name
func (p *RouterAdditionPolicy) Policy() models.EscalationPolicy {
	return models.PolicyRouterAddition
}

// Satisfy adds one router to the deficient endpoint, then retries the direct
// link, until the link fits or the per-pair ceiling is reached
func (p *RouterAdditionPolicy) Satisfy(state *BuildState, from, to string) Resolution {
	remaining := state.Unmet(from, to)
	for added := 0; added < p.maxAdditions; added++ {
		site, tier := p.deficient(state, from, to, remaining)
		state.AddRouter(site, tier)
		slog.Debug("Added router", "site", site, "tier", tier.String(), "pair_from", from, "pair_to", to)

		if ports, ok := state.TryDirectLink(from, to, remaining); ok {
			state.Connect(from, to, ports)
			return Resolution{
				Satisfied: true,
				Method:    models.ResolvedRouterAddition,
				Bandwidth: remaining,
			}
		}
	}
	slog.Warn("Router addition limit reached", "from", from, "to", to,
		"limit", p.maxAdditions, "remaining", remaining)
	return Resolution{Reason: models.ReasonRouterLimit, Bandwidth: remaining}
}

// deficient picks where the next router goes. The first endpoint whose capacity
// is below the remaining bandwidth gets a tier-2 above 400, else a tier-1. When
// both have raw capacity the port mix is the blocker, so the endpoint with fewer
// 100-class ports gets a tier-1.
func (p *RouterAdditionPolicy) deficient(state *BuildState, from, to string, remaining float64) (string, models.RouterTier) {
	tier := models.TierOne
	if remaining > models.Bandwidth400 {
		tier = models.TierTwo
	}
	a, _ := state.Site(from)
	b, _ := state.Site(to)
	if a.Ports.External.Capacity() < remaining {
		return from, tier
	}
	if b.Ports.External.Capacity() < remaining {
		return to, tier
	}
	if b.Ports.External.G100 < a.Ports.External.G100 {
		return to, models.TierOne
	}
	return from, models.TierOne
}

// IndirectPathPolicy carries an unmet pair over links with enough excess capacity
type IndirectPathPolicy struct{}

// NewIndirectPathPolicy creates the policy
func NewIndirectPathPolicy() *IndirectPathPolicy {
	return &IndirectPathPolicy{}
}

// Policy returns the policy name
func (p *IndirectPathPolicy) Policy() models.EscalationPolicy {
	return models.PolicyIndirectPath
}

// Satisfy searches for a path whose every link has excess >= the unmet
// bandwidth. Ports are untouched and borrowed excess is not reserved.
func (p *IndirectPathPolicy) Satisfy(state *BuildState, from, to string) Resolution {
	need := state.Unmet(from, to)
	path, ok := FindPath(from, to, state.Linked, func(curr, next string) bool {
		return state.Excess(curr, next) >= need
	})
	if !ok {
		return Resolution{Reason: models.ReasonNoPath, Bandwidth: need}
	}
	state.reduceUnmet(from, to, need)
	slog.Debug("Routed over spare capacity", "from", from, "to", to, "bandwidth", need, "hops", len(path)-1)
	return Resolution{
		Satisfied: true,
		Method:    models.ResolvedIndirect,
		Bandwidth: need,
		Path:      path,
	}
}
