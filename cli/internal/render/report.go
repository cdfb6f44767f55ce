// ABOUTME: Human-readable reports for plans, schedules and scenario comparisons
// ABOUTME: Pure string builders so commands can write them anywhere

package render

import (
	"fmt"
	"strings"

	"github.com/markalston/network-capacity-planner/models"
)

// Plan renders sites, links, escalations, shortfalls and the power curve
func Plan(plan *models.PlanResult) string {
	var b strings.Builder

	b.WriteString(Title.Render("Network capacity plan") + "\n")
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Policy: "), plan.Policy)
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Outcome:"), OutcomeBadge(plan.Outcome))
	fmt.Fprintf(&b, "%s %d sites, %d pairs\n", Label.Render("Scope:  "), plan.Metadata.Sites, plan.Metadata.Pairs)

	b.WriteString(Section.Render("Sites") + "\n")
	for _, n := range plan.Topology.Nodes {
		cost := "n/a"
		if n.Sizing.PowerCostWatts != nil {
			cost = fmt.Sprintf("%.0f W", *n.Sizing.PowerCostWatts)
		}
		fmt.Fprintf(&b, "  %-12s %d×T1 + %d×T2  spare 100G/400G %d/%d  %s  %s\n",
			n.ID, n.T1Routers, n.T2Routers, n.Ports.External.G100, n.Ports.External.G400,
			cost, OutcomeBadge(n.Sizing.Outcome))
	}

	if len(plan.Topology.Connections) > 0 {
		b.WriteString(Section.Render("Links") + "\n")
		for _, e := range plan.Topology.Connections {
			fmt.Fprintf(&b, "  %-12s ↔ %-12s %d×100 + %d×400  (%.0f)\n",
				e.From, e.To, e.G100PortsUsed, e.G400PortsUsed, e.Capacity())
		}
	}

	if len(plan.Topology.RoutersAdded) > 0 {
		b.WriteString(Section.Render("Routers added") + "\n")
		for _, a := range plan.Topology.RoutersAdded {
			fmt.Fprintf(&b, "  %-12s +%d×T1 +%d×T2\n", a.Site, a.T1, a.T2)
		}
	}

	if len(plan.Topology.IndirectRoutes) > 0 {
		b.WriteString(Section.Render("Indirect routes") + "\n")
		for _, r := range plan.Topology.IndirectRoutes {
			fmt.Fprintf(&b, "  %s → %s  %.0f via %s\n", r.From, r.To, r.Bandwidth, strings.Join(r.Path, " → "))
		}
	}

	if len(plan.Shortfalls) > 0 {
		b.WriteString(Section.Render("Shortfalls") + "\n")
		for _, s := range plan.Shortfalls {
			fmt.Fprintf(&b, "  %s %s → %s  %.0f unmet (%s)\n",
				StatusCritical.Render("✗"), s.From, s.To, s.Bandwidth, s.Reason)
		}
	}

	b.WriteString(Section.Render("Power") + "\n")
	fmt.Fprintf(&b, "  average %.1f W, peak %.0f W at %s\n",
		plan.Power.Average, plan.Power.Peak, models.SlotLabel(plan.Power.PeakSlot))
	if len(plan.Power.Clamps) > 0 {
		fmt.Fprintf(&b, "  %s\n", StatusWarning.Render(fmt.Sprintf("%d slot(s) capped at installed routers", len(plan.Power.Clamps))))
	}
	b.WriteString("  " + PowerCurve(plan.Power) + "\n")
	fmt.Fprintf(&b, "  %-24s%s\n", models.SlotLabel(0), models.SlotLabel(models.SlotsPerDay/2))

	return b.String()
}

// PowerCurve renders the 48 half-hour slots, highlighting those above average
func PowerCurve(p models.PowerSeries) string {
	threshold := p.Average
	if threshold == 0 {
		threshold = 1
	}
	return SparklineWithThreshold(p.PerSlot[:], models.SlotsPerDay, threshold, Secondary, Warning)
}

// Schedule lists every non-empty slot with its directed demands
func Schedule(tz models.TimezoneMap) string {
	var b strings.Builder
	b.WriteString(Title.Render("Demand schedule") + "\n")

	active := tz.ActiveSlots()
	if len(active) == 0 {
		b.WriteString(Label.Render("  no demand in any slot") + "\n")
		return b.String()
	}

	for _, slot := range active {
		m := tz[slot]
		var parts []string
		for _, from := range m.Sites() {
			for _, to := range m.Peers(from) {
				parts = append(parts, fmt.Sprintf("%s→%s %.0f", from, to, m.Get(from, to)))
			}
		}
		fmt.Fprintf(&b, "  %s  %s\n", Label.Render(models.SlotLabel(slot)), strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, "%d of %d slots active\n", len(active), models.SlotsPerDay)
	return b.String()
}

// Comparison renders both policies side by side with warnings
func Comparison(c *models.ScenarioComparison) string {
	var b strings.Builder
	b.WriteString(Title.Render("Escalation policy comparison") + "\n\n")

	row := func(label, ra, ip string) {
		fmt.Fprintf(&b, "  %-18s %-22s %-22s\n", label, ra, ip)
	}
	row("", string(models.PolicyRouterAddition), string(models.PolicyIndirectPath))
	row("Outcome", string(c.RouterAddition.Outcome), string(c.IndirectPath.Outcome))
	row("Routers", c.RouterAddition.Routers(), c.IndirectPath.Routers())
	row("Routers added", fmt.Sprint(c.RouterAddition.RoutersAdded), fmt.Sprint(c.IndirectPath.RoutersAdded))
	row("Shortfalls", fmt.Sprint(c.RouterAddition.Shortfalls), fmt.Sprint(c.IndirectPath.Shortfalls))
	row("Indirect routes", fmt.Sprint(c.RouterAddition.IndirectRoutes), fmt.Sprint(c.IndirectPath.IndirectRoutes))
	row("Average power", fmt.Sprintf("%.1f W", c.RouterAddition.AveragePowerW), fmt.Sprintf("%.1f W", c.IndirectPath.AveragePowerW))
	row("Installed power", fmt.Sprintf("%.0f W", c.RouterAddition.InstalledPowerW), fmt.Sprintf("%.0f W", c.IndirectPath.InstalledPowerW))

	if len(c.Warnings) > 0 {
		b.WriteString(Section.Render("Warnings") + "\n")
		for _, w := range c.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", SeverityStyle(w.Severity).Render("["+w.Severity+"]"), w.Message)
		}
	}

	fmt.Fprintf(&b, "\n%s %s\n", Label.Render("Recommended:"), StatusOK.Render(string(c.Recommended)))
	return b.String()
}
