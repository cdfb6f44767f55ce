// ABOUTME: Check command for the netplan CLI
// ABOUTME: Validates shortfall and power thresholds for CI/CD pipelines

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/network-capacity-planner/models"
)

var (
	maxAveragePower float64
	allowShortfalls bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a plan against thresholds",
	Long: `Run a plan and exit non-zero if it has shortfalls or exceeds the power budget.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Error (invalid input, connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addInputFlag(checkCmd)
	checkCmd.Flags().Float64Var(&maxAveragePower, "max-average-power", 0, "Maximum daily average power in watts (0 disables)")
	checkCmd.Flags().BoolVar(&allowShortfalls, "allow-shortfalls", false, "Do not fail on unmet requirements")
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	name      string
	value     float64
	threshold float64
	unit      string
	passed    bool
}

// runCheck executes the threshold checks and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	if err := validateThresholds(maxAveragePower); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	in, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	plan, err := newBackend().Plan(ctx, in)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(plan)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateThresholds ensures threshold values are valid
func validateThresholds(maxPower float64) error {
	if maxPower < 0 {
		return fmt.Errorf("--max-average-power cannot be negative")
	}
	return nil
}

// performChecks runs all threshold checks against the plan
func performChecks(plan *models.PlanResult) []checkResult {
	var results []checkResult

	var unmet float64
	for _, s := range plan.Shortfalls {
		unmet += s.Bandwidth
	}
	results = append(results, checkResult{
		name:      "Unmet requirements",
		value:     float64(len(plan.Shortfalls)),
		threshold: 0,
		passed:    allowShortfalls || len(plan.Shortfalls) == 0,
	}, checkResult{
		name:      "Unmet bandwidth",
		value:     unmet,
		threshold: 0,
		passed:    allowShortfalls || unmet == 0,
	})

	infeasible := 0
	for _, n := range plan.Topology.Nodes {
		if n.Sizing.Outcome == models.OutcomeInfeasible {
			infeasible++
		}
	}
	results = append(results, checkResult{
		name:      "Infeasible sites",
		value:     float64(infeasible),
		threshold: 0,
		passed:    infeasible == 0,
	})

	if maxAveragePower > 0 {
		results = append(results, checkResult{
			name:      "Average power",
			value:     plan.Power.Average,
			threshold: maxAveragePower,
			unit:      " W",
			passed:    plan.Power.Average <= maxAveragePower,
		})
	}

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %.0f%s (threshold: %.0f%s)\n",
			symbol, r.name, r.value, r.unit, r.threshold, r.unit)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) exceeded threshold", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) within thresholds", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]any, len(results))
	for i, r := range results {
		checks[i] = map[string]any{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"unit":      r.unit,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]any{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
