// ABOUTME: Comparison view showing router addition against indirect paths
// ABOUTME: Displays deltas, warnings, and the recommended policy

package comparison

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/network-capacity-planner/cli/internal/render"
	"github.com/markalston/network-capacity-planner/cli/internal/tui/icons"
	"github.com/markalston/network-capacity-planner/models"
)

// Comparison displays scenario comparison results
type Comparison struct {
	result *models.ScenarioComparison
	width  int
}

// New creates a new comparison view
func New(result *models.ScenarioComparison, width int) *Comparison {
	return &Comparison{
		result: result,
		width:  width,
	}
}

// View renders the comparison
func (c *Comparison) View() string {
	if c.result == nil {
		return "No comparison data"
	}

	var sb strings.Builder

	sb.WriteString(render.Title.Render("Policy Comparison"))
	sb.WriteString("\n\n")

	colWidth := (c.width - 4) / 2
	left := c.renderScenario("Router addition", &c.result.RouterAddition, colWidth)
	right := c.renderScenario("Indirect paths", &c.result.IndirectPath, colWidth)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colWidth).Render(left), "  ", right))
	sb.WriteString("\n\n")

	sb.WriteString(render.Subtitle.Render("Router addition vs indirect paths"))
	sb.WriteString("\n")
	delta := c.result.Delta
	sb.WriteString(fmt.Sprintf("  Routers:    %s\n", deltaStyle(float64(delta.RoutersAdded)).
		Render(fmt.Sprintf("%+d", delta.RoutersAdded))))
	sb.WriteString(fmt.Sprintf("  Shortfalls: %s\n", deltaStyle(float64(delta.ShortfallChange)).
		Render(fmt.Sprintf("%+d", delta.ShortfallChange))))
	sb.WriteString(fmt.Sprintf("  Power:      %s\n", deltaStyle(delta.AveragePowerChange).
		Render(fmt.Sprintf("%+.1f W (%+.1f%%)", delta.AveragePowerChange, delta.AveragePowerPct))))

	if len(c.result.Warnings) > 0 {
		sb.WriteString("\n")
		sb.WriteString(render.Subtitle.Render("Warnings"))
		sb.WriteString("\n")
		for _, w := range c.result.Warnings {
			sb.WriteString(fmt.Sprintf("  %s %s\n",
				render.SeverityStyle(w.Severity).Render(icons.ForSeverity(w.Severity).String()), w.Message))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Recommended: %s\n", render.StatusOK.Render(string(c.result.Recommended))))

	return sb.String()
}

func (c *Comparison) renderScenario(title string, r *models.ScenarioResult, width int) string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	sb.WriteString("\n")
	sb.WriteString(render.OutcomeBadge(r.Outcome))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Routers:  %s\n", r.Routers()))
	sb.WriteString(fmt.Sprintf("Added:    %d\n", r.RoutersAdded))
	sb.WriteString(fmt.Sprintf("Unmet:    %d (%.0f)\n", r.Shortfalls, r.UnmetBandwidth))
	sb.WriteString(fmt.Sprintf("Indirect: %d\n", r.IndirectRoutes))
	sb.WriteString(fmt.Sprintf("Avg:      %.1f W\n", r.AveragePowerW))
	sb.WriteString(fmt.Sprintf("Peak:     %.0f W", r.PeakPowerW))
	return lipgloss.NewStyle().MaxWidth(max(width, 20)).Render(sb.String())
}

// deltaStyle colors a change; every compared metric is better when lower
func deltaStyle(v float64) lipgloss.Style {
	switch {
	case v == 0:
		return lipgloss.NewStyle().Foreground(render.Muted)
	case v < 0:
		return render.StatusOK
	default:
		return render.StatusWarning
	}
}
