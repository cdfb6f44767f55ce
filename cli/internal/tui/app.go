// ABOUTME: Root bubbletea model for the interactive plan viewer
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/network-capacity-planner/cli/internal/render"
	"github.com/markalston/network-capacity-planner/cli/internal/tui/comparison"
	"github.com/markalston/network-capacity-planner/cli/internal/tui/dashboard"
	"github.com/markalston/network-capacity-planner/cli/internal/tui/icons"
	"github.com/markalston/network-capacity-planner/cli/internal/tui/wizard"
	"github.com/markalston/network-capacity-planner/models"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenComparison
	ScreenWizard
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// Planner runs plans for the viewer, locally or over HTTP
type Planner interface {
	Plan(ctx context.Context, in models.PlanInput) (*models.PlanResult, error)
	CompareScenario(ctx context.Context, in models.PlanInput) (*models.ScenarioComparison, error)
}

// planComputedMsg is sent when a plan finishes
type planComputedMsg struct {
	plan *models.PlanResult
	err  error
}

// scenarioComparedMsg is sent when scenario comparison completes
type scenarioComparedMsg struct {
	result *models.ScenarioComparison
	err    error
}

type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Compare key.Binding
	Wizard  key.Binding
	Back    key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Re-plan")),
	Compare: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Compare")),
	Wizard:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "Settings")),
	Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "Back")),
}

// App is the root model for the TUI
type App struct {
	planner    Planner
	input      models.PlanInput
	source     string
	screen     Screen
	width      int
	height     int
	err        error
	loading    bool
	spinner    spinner.Model
	plan       *models.PlanResult
	comparison *models.ScenarioComparison
	lastUpdate time.Time

	// Child models
	dashboard    *dashboard.Dashboard
	compView     *comparison.Comparison
	wizardScreen *wizard.Wizard
}

// New creates a viewer for one input; source names it in the header
func New(planner Planner, in models.PlanInput, source string) *App {
	return &App{
		planner: planner,
		input:   in,
		source:  source,
		screen:  ScreenDashboard,
		loading: true,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(render.Primary)),
		),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.runPlan())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.dashboardWidth(), a.contentHeight())
		}
		if a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenDashboard:
			return a.updateDashboard(msg)
		case ScreenComparison:
			return a.updateComparison(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		}

	case planComputedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.plan = msg.plan
		a.lastUpdate = time.Now()
		if a.dashboard == nil {
			a.dashboard = dashboard.New(a.plan, a.dashboardWidth(), a.contentHeight())
		} else {
			a.dashboard.Update(a.plan)
		}
		return a, nil

	case scenarioComparedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.comparison = msg.result
		a.compView = comparison.New(a.comparison, a.comparisonWidth())
		a.screen = ScreenComparison
		return a, nil

	case wizard.WizardCompleteMsg:
		a.input.Policy = msg.Policy
		a.input.MaxRouterAdditions = msg.MaxRouterAdditions
		a.wizardScreen = nil
		a.screen = ScreenDashboard
		return a, a.startLoading(a.runPlan())

	case wizard.WizardCancelledMsg:
		a.screen = ScreenDashboard
		a.wizardScreen = nil
		return a, nil

	default:
		// huh form internals need their own messages
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case a.loading:
		return a, nil
	case key.Matches(msg, keys.Refresh):
		return a, a.startLoading(a.runPlan())
	case key.Matches(msg, keys.Compare):
		return a, a.startLoading(a.compareScenario())
	case key.Matches(msg, keys.Wizard):
		return a, a.runWizard()
	}
	return a, nil
}

func (a *App) updateComparison(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Back):
		a.screen = ScreenDashboard
		a.comparison = nil
		a.compView = nil
		return a, nil
	case key.Matches(msg, keys.Wizard):
		return a, a.runWizard()
	}
	return a, nil
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenComparison:
		content = a.viewComparison()
	case ScreenWizard:
		content = a.viewWizard()
	default:
		content = a.viewDashboard()
	}

	return a.wrapWithFrame(content)
}

// viewDashboard renders the dashboard with actions pane
func (a *App) viewDashboard() string {
	if a.err != nil {
		return render.StatusCritical.Render("Error: " + a.err.Error())
	}

	var leftPane string
	switch {
	case a.dashboard != nil:
		leftPane = render.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	default:
		leftPane = render.Panel.Width(a.dashboardWidth()).Render(a.spinner.View() + " Planning...")
	}

	rightContent := render.Title.Render(icons.Settings.String()+" Actions") + "\n\n"
	rightContent += icons.Refresh.String() + " Re-plan from input\n"
	rightContent += icons.Compare.String() + " Compare policies\n"
	rightContent += icons.Wizard.String() + " Change escalation settings\n"
	rightContent += icons.Quit.String() + " Quit application\n"
	if a.loading && a.dashboard != nil {
		rightContent += "\n" + a.spinner.View() + " Working..."
	}
	rightPane := render.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// viewWizard renders the wizard screen
func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

// viewComparison renders the dashboard with comparison results
func (a *App) viewComparison() string {
	if a.err != nil {
		return render.StatusCritical.Render("Error: " + a.err.Error())
	}

	leftPane := ""
	if a.dashboard != nil {
		leftPane = render.Panel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	}

	rightPane := ""
	if a.compView != nil {
		rightPane = render.ActivePanel.Width(a.comparisonWidth()).Render(a.compView.View())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return a.width - panelPadding
	}
	return (a.width - panelPadding) / 2
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return a.width - a.dashboardWidth() - 4
}

// comparisonWidth calculates the width for the comparison pane
func (a *App) comparisonWidth() int {
	return a.width - a.dashboardWidth() - 4
}

// contentHeight is the terminal height minus header, footer and panel chrome
func (a *App) contentHeight() int {
	return a.height - 8
}

// frameWidth clamps the frame to the minimum usable width
func (a *App) frameWidth() int {
	return max(a.width, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(render.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(render.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(render.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.App, titleStyle.Render("Network Capacity Planner"))

	right := ""
	if a.source != "" {
		policy := a.input.Policy
		if policy == "" {
			policy = models.DefaultPolicy
		}
		right = " " + contextStyle.Render(fmt.Sprintf("%s · %s", a.source, policy)) + " "
	}

	// 4 for ╭─ and ─╮
	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right))
	return borderStyle.Render("╭─" + left + strings.Repeat("─", fill) + right + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(render.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(render.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(render.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(render.Secondary)

	var bindings []key.Binding
	switch a.screen {
	case ScreenDashboard:
		bindings = []key.Binding{keys.Refresh, keys.Compare, keys.Wizard, keys.Quit}
	case ScreenComparison:
		bindings = []key.Binding{keys.Wizard, keys.Back, keys.Quit}
	}

	var styled, plain []string
	for _, b := range bindings {
		h := b.Help()
		styled = append(styled, keyStyle.Render(h.Key)+" "+labelStyle.Render(h.Desc))
		plain = append(plain, h.Key+" "+h.Desc)
	}
	if a.screen == ScreenWizard {
		styled = []string{keyStyle.Render("↑↓") + " " + labelStyle.Render("Select"),
			keyStyle.Render("Enter") + " " + labelStyle.Render("Confirm"),
			keyStyle.Render("Esc") + " " + labelStyle.Render("Cancel")}
		plain = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	}

	leftText := " " + strings.Join(styled, "  ") + " "
	leftPlain := " " + strings.Join(plain, "  ") + " "

	rightText, rightPlain := "", ""
	if !a.lastUpdate.IsZero() && a.screen != ScreenWizard {
		elapsed := formatTimeSince(time.Since(a.lastUpdate))
		rightText = " " + statusStyle.Render("Planned "+elapsed) + " "
		rightPlain = " Planned " + elapsed + " "
	}

	// 4 for ╰─ and ─╯
	fill := max(0, width-4-lipgloss.Width(leftPlain)-lipgloss.Width(rightPlain))
	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fill) + rightText + "─╯")
}

// formatTimeSince formats an elapsed duration in human-readable form
func formatTimeSince(d time.Duration) string {
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// startLoading marks the app busy and keeps the spinner ticking alongside cmd
func (a *App) startLoading(cmd tea.Cmd) tea.Cmd {
	a.loading = true
	return tea.Batch(a.spinner.Tick, cmd)
}

// runPlan plans a copy of the current input
func (a *App) runPlan() tea.Cmd {
	in := a.input
	return func() tea.Msg {
		plan, err := a.planner.Plan(context.Background(), in)
		return planComputedMsg{plan: plan, err: err}
	}
}

// compareScenario plans the current input under both policies
func (a *App) compareScenario() tea.Cmd {
	in := a.input
	return func() tea.Msg {
		result, err := a.planner.CompareScenario(context.Background(), in)
		return scenarioComparedMsg{result: result, err: err}
	}
}

// runWizard transitions to the wizard screen
func (a *App) runWizard() tea.Cmd {
	a.wizardScreen = wizard.New(a.input)
	a.wizardScreen.SetWidth(a.width - 1)
	a.screen = ScreenWizard
	return a.wizardScreen.Init()
}

// Run starts the TUI
func Run(planner Planner, in models.PlanInput, source string) error {
	p := tea.NewProgram(
		New(planner, in, source),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
