// ABOUTME: Plan command for the netplan CLI
// ABOUTME: Runs a full plan and prints sites, links, shortfalls and power

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

	"github.com/markalston/network-capacity-planner/cli/internal/chart"
	"github.com/markalston/network-capacity-planner/cli/internal/render"
)

var chartPath string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a full capacity plan",
	Long: `Size every site, connect sites under the escalation policy, schedule demand
and estimate daily power.

Exit codes:
  0 - Plan computed (check the outcome for shortfalls)
  2 - Error (invalid input, connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlan(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addInputFlag(planCmd)
	planCmd.Flags().StringVar(&chartPath, "chart", "", "Also write an HTML power chart to this file")
}

// runPlan executes the plan and returns exit code
func runPlan(ctx context.Context, w io.Writer) int {
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

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(plan, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprint(w, render.Plan(plan))
	}

	if chartPath != "" {
		if err := chart.WritePowerCurve(chartPath, plan); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}
	return 0
}
