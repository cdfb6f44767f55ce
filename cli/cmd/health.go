// ABOUTME: Health command for the netplan CLI
// ABOUTME: Checks backend connectivity and service status

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

	"github.com/markalston/network-capacity-planner/cli/internal/client"
	"github.com/markalston/network-capacity-planner/models"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the planner backend and report its default policy and cache size.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *models.HealthResponse) string {
	return fmt.Sprintf(`Backend:       %s
Status:        %s
Version:       %s
Policy:        %s
Cache Entries: %d
Uptime:        %.0fs`, url, resp.Status, resp.Version, resp.Policy, resp.CacheEntries, resp.UptimeSeconds)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *models.HealthResponse) string {
	output := map[string]any{
		"backend":        url,
		"status":         resp.Status,
		"version":        resp.Version,
		"policy":         resp.Policy,
		"cache_entries":  resp.CacheEntries,
		"uptime_seconds": resp.UptimeSeconds,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
