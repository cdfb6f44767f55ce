// ABOUTME: Schedule command for the netplan CLI
// ABOUTME: Prints the non-empty half-hour demand slots

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
	"github.com/markalston/network-capacity-planner/models"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show time-window demand per half-hour slot",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSchedule(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	addInputFlag(scheduleCmd)
}

// runSchedule executes the scheduler and returns exit code
func runSchedule(ctx context.Context, w io.Writer) int {
	in, err := loadInput()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	tz, err := newBackend().Schedule(ctx, in.TimeWindows)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatScheduleJSON(tz))
	} else {
		fmt.Fprint(w, render.Schedule(tz))
	}
	return 0
}

// formatScheduleJSON keeps only active slots, keyed by their start time
func formatScheduleJSON(tz models.TimezoneMap) string {
	slots := make([]map[string]any, 0)
	for _, slot := range tz.ActiveSlots() {
		slots = append(slots, map[string]any{
			"slot":   slot,
			"start":  models.SlotLabel(slot),
			"demand": tz[slot],
		})
	}
	data, _ := json.MarshalIndent(map[string]any{"slots": slots}, "", "  ")
	return string(data)
}
