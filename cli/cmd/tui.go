// ABOUTME: TUI command for the netplan CLI
// ABOUTME: Opens the interactive plan viewer for one input file

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/markalston/network-capacity-planner/cli/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore a plan interactively",
	Long: `Open a terminal dashboard for the input. Re-plan, compare both escalation
policies, or change the policy and router limit without leaving the viewer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadInput()
		if err != nil {
			return err
		}
		if err := tui.Run(newBackend(), in, inputSource()); err != nil {
			return fmt.Errorf("running viewer: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	addInputFlag(tuiCmd)
}

// inputSource names the input in the viewer header
func inputSource() string {
	if inputPath == "-" {
		return "stdin"
	}
	return filepath.Base(inputPath)
}
