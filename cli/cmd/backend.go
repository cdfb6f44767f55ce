// ABOUTME: Planning backends for CLI commands
// ABOUTME: Runs the engine in-process or forwards to the HTTP API

package cmd

import (
	"context"

	"github.com/markalston/network-capacity-planner/cli/internal/client"
	"github.com/markalston/network-capacity-planner/models"
	"github.com/markalston/network-capacity-planner/services"
)

// planBackend is what the commands need from a planner
type planBackend interface {
	Plan(ctx context.Context, in models.PlanInput) (*models.PlanResult, error)
	Schedule(ctx context.Context, windows []models.TimeWindowEntry) (models.TimezoneMap, error)
	CompareScenario(ctx context.Context, in models.PlanInput) (*models.ScenarioComparison, error)
}

type localBackend struct {
	planner  *services.Planner
	scenario *services.ScenarioCalculator
}

func newLocalBackend() *localBackend {
	planner := services.NewPlanner(models.DefaultPolicy, models.DefaultMaxRouterAdditions)
	return &localBackend{planner: planner, scenario: services.NewScenarioCalculator(planner)}
}

func (b *localBackend) Plan(ctx context.Context, in models.PlanInput) (*models.PlanResult, error) {
	return b.planner.Plan(ctx, in)
}

func (b *localBackend) Schedule(ctx context.Context, windows []models.TimeWindowEntry) (models.TimezoneMap, error) {
	if err := ctx.Err(); err != nil {
		return models.TimezoneMap{}, err
	}
	return b.planner.Schedule(windows)
}

func (b *localBackend) CompareScenario(ctx context.Context, in models.PlanInput) (*models.ScenarioComparison, error) {
	return b.scenario.Compare(ctx, in)
}

// newBackend picks the HTTP client when a backend URL is configured
func newBackend() planBackend {
	if IsRemote() {
		return client.New(GetAPIURL())
	}
	return newLocalBackend()
}
