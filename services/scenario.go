// ABOUTME: Scenario calculator comparing both escalation policies on one input
// ABOUTME: Plans concurrently and reports deltas and tradeoff warnings

package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/network-capacity-planner/models"
)

// PowerIncreaseWarningPct triggers a warning when router addition raises average power by more
const PowerIncreaseWarningPct = 20.0

// ScenarioCalculator runs what-if comparisons
type ScenarioCalculator struct {
	planner *Planner
}

// NewScenarioCalculator creates a calculator backed by a planner
func NewScenarioCalculator(planner *Planner) *ScenarioCalculator {
	return &ScenarioCalculator{planner: planner}
}

// Compare plans the input under router-addition and indirect-path in parallel.
// Each plan builds its own working copies.
func (c *ScenarioCalculator) Compare(ctx context.Context, in models.PlanInput) (*models.ScenarioComparison, error) {
	if err := ValidatePlanInput(in); err != nil {
		return nil, err
	}

	var routerPlan, indirectPlan *models.PlanResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		variant := in
		variant.Policy = models.PolicyRouterAddition
		plan, err := c.planner.Plan(gctx, variant)
		if err != nil {
			return fmt.Errorf("router-addition plan: %w", err)
		}
		routerPlan = plan
		return nil
	})
	g.Go(func() error {
		variant := in
		variant.Policy = models.PolicyIndirectPath
		plan, err := c.planner.Plan(gctx, variant)
		if err != nil {
			return fmt.Errorf("indirect-path plan: %w", err)
		}
		indirectPlan = plan
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ra := Summarize(routerPlan)
	ip := Summarize(indirectPlan)
	delta := models.ScenarioDelta{
		RoutersAdded:       ra.RoutersAdded - ip.RoutersAdded,
		AveragePowerChange: ra.AveragePowerW - ip.AveragePowerW,
		ShortfallChange:    ra.Shortfalls - ip.Shortfalls,
	}
	if ip.AveragePowerW > 0 {
		delta.AveragePowerPct = delta.AveragePowerChange / ip.AveragePowerW * 100
	}

	return &models.ScenarioComparison{
		RouterAddition: ra,
		IndirectPath:   ip,
		Delta:          delta,
		Warnings:       c.GenerateWarnings(ra, ip, delta),
		Recommended:    recommend(ra, ip),
	}, nil
}

// Summarize condenses a plan into comparison metrics
func Summarize(plan *models.PlanResult) models.ScenarioResult {
	r := models.ScenarioResult{
		Policy:         plan.Policy,
		Outcome:        plan.Outcome,
		Shortfalls:     len(plan.Shortfalls),
		IndirectRoutes: len(plan.Topology.IndirectRoutes),
		AveragePowerW:  plan.Power.Average,
		PeakPowerW:     plan.Power.Peak,
	}
	r.T1Routers, r.T2Routers = plan.Topology.TotalRouters()
	for _, a := range plan.Topology.RoutersAdded {
		r.RoutersAdded += a.T1 + a.T2
	}
	for _, s := range plan.Shortfalls {
		r.UnmetBandwidth += s.Bandwidth
	}
	for _, n := range plan.Topology.Nodes {
		r.InstalledPowerW += n.Power()
	}
	return r
}

// GenerateWarnings describes the tradeoffs between the two plans
func (c *ScenarioCalculator) GenerateWarnings(ra, ip models.ScenarioResult, delta models.ScenarioDelta) []models.ScenarioWarning {
	warnings := []models.ScenarioWarning{}

	if ra.Shortfalls > 0 {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("Router addition leaves %d requirements unmet (router limit reached)", ra.Shortfalls),
		})
	}
	if ip.Shortfalls > 0 {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("Indirect paths leave %d requirements unmet (%.0f bandwidth)", ip.Shortfalls, ip.UnmetBandwidth),
		})
	}
	if ra.RoutersAdded > 0 {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("Router addition installs %d extra routers (%s total)", ra.RoutersAdded, ra.Routers()),
		})
	}
	if delta.AveragePowerPct > PowerIncreaseWarningPct {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("Router addition raises average power by %.1f%%", delta.AveragePowerPct),
		})
	}
	if ip.IndirectRoutes > 0 {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("%d requirements ride on spare capacity of other links", ip.IndirectRoutes),
		})
	}
	return warnings
}

// recommend prefers fewer shortfalls, then lower installed power
func recommend(ra, ip models.ScenarioResult) models.EscalationPolicy {
	if ra.Shortfalls != ip.Shortfalls {
		if ra.Shortfalls < ip.Shortfalls {
			return models.PolicyRouterAddition
		}
		return models.PolicyIndirectPath
	}
	if ra.InstalledPowerW < ip.InstalledPowerW {
		return models.PolicyRouterAddition
	}
	return models.PolicyIndirectPath
}
