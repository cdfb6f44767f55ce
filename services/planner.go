// ABOUTME: Planner orchestrating a full run from raw tuples to power series
// ABOUTME: Validates input and checks for cancellation between engine stages

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/markalston/network-capacity-planner/models"
)

// Planner runs the engine stages in order
type Planner struct {
	optimizer          *SizingOptimizer
	scheduler          *DemandScheduler
	estimator          *PowerEstimator
	defaultPolicy      models.EscalationPolicy
	maxRouterAdditions int
	now                func() time.Time
}

// NewPlanner creates a planner. Requests without a policy or router ceiling
// fall back to the values given here.
func NewPlanner(defaultPolicy models.EscalationPolicy, maxRouterAdditions int) *Planner {
	if defaultPolicy == "" {
		defaultPolicy = models.DefaultPolicy
	}
	if maxRouterAdditions <= 0 {
		maxRouterAdditions = models.DefaultMaxRouterAdditions
	}
	return &Planner{
		optimizer:          NewSizingOptimizer(),
		scheduler:          NewDemandScheduler(),
		estimator:          NewPowerEstimator(),
		defaultPolicy:      defaultPolicy,
		maxRouterAdditions: maxRouterAdditions,
		now:                time.Now,
	}
}

// DefaultPolicy returns the policy used when a request names none
func (p *Planner) DefaultPolicy() models.EscalationPolicy {
	return p.defaultPolicy
}

// resolve fills request defaults
func (p *Planner) resolve(in models.PlanInput) (models.EscalationPolicy, int, error) {
	policy := p.defaultPolicy
	if in.Policy != "" {
		resolved, err := ValidatePolicy(in.Policy)
		if err != nil {
			return "", 0, err
		}
		policy = resolved
	}
	limit := in.MaxRouterAdditions
	if limit <= 0 {
		limit = p.maxRouterAdditions
	}
	return policy, limit, nil
}

// Requirements validates bandwidth tuples and aggregates them
func (p *Planner) Requirements(entries []models.BandwidthEntry) (models.RequirementsResult, error) {
	if err := ValidateBandwidth(entries); err != nil {
		return models.RequirementsResult{}, err
	}
	return AggregateRequirements(entries), nil
}

// Size validates input and sizes every customer site
func (p *Planner) Size(in models.PlanInput) ([]models.Site, error) {
	reqs, err := p.Requirements(in.Bandwidth)
	if err != nil {
		return nil, err
	}
	if err := ValidateCustomers(in.Customers); err != nil {
		return nil, err
	}
	return p.optimizer.Size(in.Customers, reqs), nil
}

// Topology validates input, sizes sites and builds the topology
func (p *Planner) Topology(ctx context.Context, in models.PlanInput) (*models.Topology, error) {
	policy, limit, err := p.resolve(in)
	if err != nil {
		return nil, err
	}
	sites, err := p.Size(in)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	topo := NewTopologyBuilder(limit).Build(sites, policy)
	return &topo, nil
}

// Schedule validates time windows and splits them into slots
func (p *Planner) Schedule(windows []models.TimeWindowEntry) (models.TimezoneMap, error) {
	if err := ValidateTimeWindows(windows); err != nil {
		return models.TimezoneMap{}, err
	}
	return p.scheduler.Schedule(windows)
}

// Power estimates consumption for already-built nodes
func (p *Planner) Power(in models.PowerInput) (models.PowerSeries, error) {
	for i, n := range in.Nodes {
		if err := ValidateSiteID(n.ID); err != nil {
			return models.PowerSeries{}, fmt.Errorf("node %d: %w", i, err)
		}
		if n.T1Routers < 0 || n.T2Routers < 0 {
			return models.PowerSeries{}, fmt.Errorf("node %d: %w: router counts cannot be negative", i, ErrInvalidInput)
		}
	}
	tz, err := p.Schedule(in.TimeWindows)
	if err != nil {
		return models.PowerSeries{}, err
	}
	return p.estimator.Estimate(in.Nodes, tz), nil
}

// Plan runs validate, aggregate, size, build, schedule and power in order.
// Errors are returned only for invalid input or a cancelled context.
func (p *Planner) Plan(ctx context.Context, in models.PlanInput) (*models.PlanResult, error) {
	start := p.now()
	if err := ValidatePlanInput(in); err != nil {
		return nil, err
	}
	policy, limit, err := p.resolve(in)
	if err != nil {
		return nil, err
	}

	reqs := AggregateRequirements(in.Bandwidth)
	slog.Debug("Aggregated requirements", "sites", reqs.Matrix.Len())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sites := p.optimizer.Size(in.Customers, reqs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topo := NewTopologyBuilder(limit).Build(sites, policy)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tz, err := p.scheduler.Schedule(in.TimeWindows)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	power := p.estimator.Estimate(topo.Nodes, tz)

	outcome := topo.Outcome
	for _, node := range topo.Nodes {
		if node.Sizing.Outcome != models.OutcomeSatisfied {
			outcome = outcome.Worse(models.OutcomePartial)
		}
	}

	result := &models.PlanResult{
		Requirements: reqs,
		Topology:     topo,
		Timezones:    tz,
		Power:        power,
		Outcome:      outcome,
		Shortfalls:   topo.Shortfalls,
		Policy:       policy,
		Metadata: models.PlanMetadata{
			GeneratedAt: start.UTC(),
			Sites:       len(topo.Nodes),
			Pairs:       countPairs(reqs.Matrix),
			DurationMS:  float64(p.now().Sub(start).Microseconds()) / 1000,
		},
	}

	if len(topo.Shortfalls) > 0 {
		slog.Warn("Plan completed with shortfalls", "policy", policy, "shortfalls", len(topo.Shortfalls), "outcome", outcome)
	} else {
		slog.Debug("Plan completed", "policy", policy, "outcome", outcome, "average_power", power.Average)
	}
	return result, nil
}

// countPairs counts distinct unordered requirement pairs
func countPairs(m *models.RequirementMatrix) int {
	seen := make(map[models.PairKey]bool)
	for _, site := range m.Sites() {
		for _, peer := range m.Peers(site) {
			seen[models.NewPairKey(site, peer)] = true
		}
	}
	return len(seen)
}
