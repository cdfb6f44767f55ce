// ABOUTME: Root command for the netplan CLI
// ABOUTME: Handles global flags and backend selection

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/network-capacity-planner/input"
	"github.com/markalston/network-capacity-planner/models"
)

var (
	apiURL     string
	jsonOutput bool
	policyFlag string
	inputPath  string
)

const (
	defaultAPIURL = "http://localhost:8080"
	apiURLEnv     = "NETPLAN_API_URL"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "netplan",
	Short: "Plan inter-site router capacity and power",
	Long: `netplan sizes routers per site, connects sites, schedules demand into
half-hour slots and estimates daily power.

Plans run locally unless --api-url or NETPLAN_API_URL points at a planner
backend.

Environment Variables:
  NETPLAN_API_URL  Backend API URL (default for health: http://localhost:8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides NETPLAN_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", "", "Escalation policy: router-addition or indirect-path (overrides the input file)")
}

// addInputFlag registers the required --input flag on a command
func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Plan input file (.yaml, .yml, .json, or - for stdin)")
	cmd.MarkFlagRequired("input")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv(apiURLEnv); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsRemote reports whether a backend URL was given explicitly
func IsRemote() bool {
	return apiURL != "" || os.Getenv(apiURLEnv) != ""
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadInput reads --input and applies --policy
func loadInput() (models.PlanInput, error) {
	in, err := input.Load(inputPath)
	if err != nil {
		return models.PlanInput{}, err
	}
	if policyFlag != "" {
		in.Policy = models.EscalationPolicy(policyFlag)
	}
	return in, nil
}
