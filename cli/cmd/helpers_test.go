// ABOUTME: Shared fixtures for command tests
// ABOUTME: Writes input files and resets global flag state

package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const twoCityYAML = `
bandwidth:
  - [A, B, 350, 200]
customers:
  - [A, 8]
  - [B, 8]
time_windows:
  - ["9AM-5PM", A, B, 350, 200]
`

// stranded leaves both sites without routers so indirect paths fail
const strandedYAML = `
bandwidth:
  - [A, B, 50, 50]
customers:
  - [A, 0]
  - [B, 0]
`

// useInput writes doc to a temp file, points --input at it and resets flags afterwards
func useInput(t *testing.T, doc string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	t.Setenv(apiURLEnv, "")
	inputPath = path
	t.Cleanup(func() {
		inputPath = ""
		apiURL = ""
		jsonOutput = false
		policyFlag = ""
		maxAveragePower = 0
		allowShortfalls = false
		chartPath = ""
	})
}
