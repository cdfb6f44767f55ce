// ABOUTME: Dashboard component summarizing the current plan
// ABOUTME: Shows routers, links, shortfalls and the daily power curve in the left pane

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/network-capacity-planner/cli/internal/render"
	"github.com/markalston/network-capacity-planner/cli/internal/tui/icons"
	"github.com/markalston/network-capacity-planner/models"
)

// Dashboard displays plan metrics
type Dashboard struct {
	plan   *models.PlanResult
	width  int
	height int
}

// New creates a new dashboard for a plan
func New(plan *models.PlanResult, width, height int) *Dashboard {
	return &Dashboard{
		plan:   plan,
		width:  width,
		height: height,
	}
}

// Update replaces the plan being shown
func (d *Dashboard) Update(plan *models.PlanResult) {
	d.plan = plan
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.plan == nil {
		return render.Panel.Width(d.width).Render("Planning...")
	}
	p := d.plan

	var sb strings.Builder

	sb.WriteString(render.Title.Render("Current Plan"))
	sb.WriteString("\n")
	sb.WriteString(render.Subtitle.Render(fmt.Sprintf("%s  %s", p.Policy, render.OutcomeBadge(p.Outcome))))
	sb.WriteString("\n")

	t1, t2 := p.Topology.TotalRouters()
	sb.WriteString(fmt.Sprintf("%s Sites: %d\n", icons.Site, len(p.Topology.Nodes)))
	sb.WriteString(fmt.Sprintf("%s Routers: %d×T1 + %d×T2\n", icons.Router, t1, t2))
	sb.WriteString(fmt.Sprintf("%s Links: %d\n", icons.Link, len(p.Topology.Connections)))
	if added := routersAdded(p); added > 0 {
		sb.WriteString(fmt.Sprintf("  %s\n", render.StatusWarning.Render(fmt.Sprintf("+%d routers added", added))))
	}
	if n := len(p.Topology.IndirectRoutes); n > 0 {
		sb.WriteString(fmt.Sprintf("%s Indirect routes: %d\n", icons.Route, n))
	}
	sb.WriteString("\n")

	sb.WriteString(d.renderShortfalls())
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s Power\n", icons.Power))
	sb.WriteString(fmt.Sprintf("  average %.1f W, peak %.0f W at %s\n",
		p.Power.Average, p.Power.Peak, models.SlotLabel(p.Power.PeakSlot)))
	sb.WriteString("  " + render.PowerCurve(p.Power) + "\n")
	if len(p.Power.Clamps) > 0 {
		sb.WriteString(fmt.Sprintf("  %s\n", render.StatusWarning.Render(
			fmt.Sprintf("%s %d slot(s) capped", icons.Warning, len(p.Power.Clamps)))))
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

func (d *Dashboard) renderShortfalls() string {
	if len(d.plan.Shortfalls) == 0 {
		return render.StatusOK.Render(icons.CheckOK.String()+" All requirements met") + "\n"
	}

	var unmet float64
	for _, s := range d.plan.Shortfalls {
		unmet += s.Bandwidth
	}
	var sb strings.Builder
	sb.WriteString(render.StatusCritical.Render(fmt.Sprintf("%s %d shortfall(s), %.0f unmet",
		icons.Critical, len(d.plan.Shortfalls), unmet)))
	sb.WriteString("\n")

	// Keep the pane from outgrowing small terminals
	shown := d.plan.Shortfalls
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, s := range shown {
		sb.WriteString(fmt.Sprintf("  %s → %s %.0f (%s)\n", s.From, s.To, s.Bandwidth, s.Reason))
	}
	if extra := len(d.plan.Shortfalls) - len(shown); extra > 0 {
		sb.WriteString(fmt.Sprintf("  … %d more\n", extra))
	}
	return sb.String()
}

func routersAdded(p *models.PlanResult) int {
	total := 0
	for _, a := range p.Topology.RoutersAdded {
		total += a.T1 + a.T2
	}
	return total
}
