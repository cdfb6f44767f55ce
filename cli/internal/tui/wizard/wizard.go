// ABOUTME: Escalation settings wizard as a bubbletea model
// ABOUTME: Uses huh forms with a visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/network-capacity-planner/cli/internal/render"
	"github.com/markalston/network-capacity-planner/cli/internal/tui/icons"
	"github.com/markalston/network-capacity-planner/models"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Policy             models.EscalationPolicy
	MaxRouterAdditions int
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard collects the escalation policy and router limit for a re-plan
type Wizard struct {
	form  *huh.Form
	step  int
	width int

	// Form field values (strings for huh)
	policy      string
	routerLimit string
}

// Step names for progress indicator
var stepNames = []string{"Escalation Policy", "Router Limit"}

var policyOptions = []huh.Option[string]{
	huh.NewOption("Indirect paths (borrow spare capacity)", string(models.PolicyIndirectPath)),
	huh.NewOption("Router addition (install routers)", string(models.PolicyRouterAddition)),
}

// createTheme returns a huh theme in the report palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(render.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(render.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(render.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(render.Primary).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(render.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(render.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(render.Danger)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(render.Primary).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(render.Secondary).
		Bold(true)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(render.Primary)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(render.Muted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(render.Muted).
		SetString("  ")

	return t
}

// New creates a wizard seeded from the current input
func New(in models.PlanInput) *Wizard {
	policy := in.Policy
	if policy == "" {
		policy = models.DefaultPolicy
	}
	limit := in.MaxRouterAdditions
	if limit <= 0 {
		limit = models.DefaultMaxRouterAdditions
	}

	w := &Wizard{
		step:        1,
		policy:      string(policy),
		routerLimit: strconv.Itoa(limit),
	}
	w.form = w.createPolicyForm()
	return w
}

func (w *Wizard) createPolicyForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("When a direct link cannot carry a requirement").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(policyOptions...).
				Value(&w.policy),
		).Title("Step 1: Escalation Policy").
			Description("Choose how unmet requirements are escalated"),
	).WithTheme(createTheme())
}

func (w *Wizard) createLimitForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Maximum routers added per site pair").
				Description("Type a number and press Enter to continue").
				Placeholder(strconv.Itoa(models.DefaultMaxRouterAdditions)).
				CharLimit(4).
				Value(&w.routerLimit).
				Validate(validatePositiveInt),
		).Title("Step 2: Router Limit").
			Description("Pairs still short after this many additions become shortfalls"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	// The router limit only matters when routers can be added
	if w.step == 1 && models.EscalationPolicy(w.policy) == models.PolicyRouterAddition {
		w.step = 2
		w.form = w.createLimitForm()
		return w, w.form.Init()
	}
	return w, func() tea.Msg { return w.Result() }
}

// Result returns the collected settings
func (w *Wizard) Result() WizardCompleteMsg {
	limit, _ := strconv.Atoi(strings.TrimSpace(w.routerLimit))
	return WizardCompleteMsg{
		Policy:             models.EscalationPolicy(w.policy),
		MaxRouterAdditions: limit,
	}
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress renders the step indicator box
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(render.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(render.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(render.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(render.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(render.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(render.Muted)
		}
		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// "│ " + content + padding + " │"
	padding := max(0, width-4-lipgloss.Width(stepsLine))
	return lipgloss.NewStyle().Foreground(render.Muted).Render(strings.Join([]string{
		"┌" + strings.Repeat("─", width-2) + "┐",
		"│ " + stepsLine + strings.Repeat(" ", padding) + " │",
		"└" + strings.Repeat("─", width-2) + "┘",
	}, "\n"))
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
