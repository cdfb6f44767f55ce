// ABOUTME: Entry point for the netplan CLI
// ABOUTME: Command-line planning, comparison and CI/CD threshold checks

package main

import (
	"fmt"
	"os"

	"github.com/markalston/network-capacity-planner/cli/cmd"
	"github.com/markalston/network-capacity-planner/logger"
)

func main() {
	logger.InitStderr()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
