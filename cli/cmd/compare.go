// ABOUTME: Compare command for the netplan CLI
// ABOUTME: Plans one input under both escalation policies

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

	"github.com/markalston/network-capacity-planner/cli/internal/render"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare router addition against indirect paths",
	Long: `Plan the input under both escalation policies and report routers, shortfalls,
power and tradeoff warnings. Each variant replaces --policy and the input policy.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCompare(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addInputFlag(compareCmd)
}

// runCompare executes the comparison and returns exit code
func runCompare(ctx context.Context, w io.Writer) int {
	in, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	comparison, err := newBackend().CompareScenario(ctx, in)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(comparison, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprint(w, render.Comparison(comparison))
	}
	return 0
}
