// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"testing"

	"github.com/markalston/network-capacity-planner/models"
)

func TestGetAPIURL_Default(t *testing.T) {
	t.Setenv(apiURLEnv, "")
	apiURL = ""

	if url := GetAPIURL(); url != "http://localhost:8080" {
		t.Errorf("expected default URL http://localhost:8080, got %s", url)
	}
	if IsRemote() {
		t.Error("expected local mode without flag or env")
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	t.Setenv(apiURLEnv, "http://backend.example.com")
	apiURL = ""

	if url := GetAPIURL(); url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
	if !IsRemote() {
		t.Error("expected remote mode from env")
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	t.Setenv(apiURLEnv, "http://backend.example.com")
	apiURL = "http://flag-override.example.com"
	defer func() { apiURL = "" }()

	if url := GetAPIURL(); url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestLoadInput_PolicyFlagOverridesFile(t *testing.T) {
	useInput(t, "policy: indirect-path\ncustomers:\n  - [A, 1]\n")
	policyFlag = "router-addition"

	in, err := loadInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Policy != models.PolicyRouterAddition {
		t.Errorf("expected router-addition, got %s", in.Policy)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"plan": false, "schedule": false, "compare": false, "check": false, "health": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s command registered", name)
		}
	}
}
