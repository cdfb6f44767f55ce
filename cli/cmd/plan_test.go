// ABOUTME: Tests for the plan, schedule and compare commands
// ABOUTME: Runs the local engine and a mocked backend

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markalston/network-capacity-planner/models"
)

func TestRunPlan_Local(t *testing.T) {
	useInput(t, twoCityYAML)

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	for _, want := range []string{"satisfied", "1×T1 + 0×T2", "0×100 + 1×400"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q:\n%s", want, buf.String())
		}
	}
}

func TestRunPlan_JSON(t *testing.T) {
	useInput(t, twoCityYAML)
	jsonOutput = true

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	var plan models.PlanResult
	if err := json.Unmarshal(buf.Bytes(), &plan); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if plan.Metadata.Sites != 2 {
		t.Errorf("expected 2 sites, got %d", plan.Metadata.Sites)
	}
}

func TestRunPlan_WritesChart(t *testing.T) {
	useInput(t, twoCityYAML)
	chartPath = filepath.Join(t.TempDir(), "power.html")

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if _, err := os.Stat(chartPath); err != nil {
		t.Errorf("expected chart file: %v", err)
	}
}

func TestRunPlan_InvalidInput(t *testing.T) {
	useInput(t, "customers:\n  - [A, 1]\n  - [A, 2]\n")

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Error("expected error message in output")
	}
}

func TestRunPlan_MissingFile(t *testing.T) {
	useInput(t, "")
	inputPath = "does-not-exist.yaml"

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestRunPlan_Remote(t *testing.T) {
	var gotPolicy models.EscalationPolicy
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/plan" {
			t.Errorf("expected /api/v1/plan, got %s", r.URL.Path)
		}
		var in models.PlanInput
		json.NewDecoder(r.Body).Decode(&in)
		gotPolicy = in.Policy
		json.NewEncoder(w).Encode(models.PlanResult{Policy: in.Policy, Outcome: models.OutcomeSatisfied})
	}))
	defer server.Close()

	useInput(t, twoCityYAML)
	apiURL = server.URL
	policyFlag = "router-addition"

	var buf bytes.Buffer
	if code := runPlan(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if gotPolicy != models.PolicyRouterAddition {
		t.Errorf("expected policy forwarded, got %q", gotPolicy)
	}
}

func TestRunSchedule_Wraparound(t *testing.T) {
	useInput(t, "time_windows:\n  - [\"11PM-1AM\", A, B, 10, 20]\n")

	var buf bytes.Buffer
	if code := runSchedule(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	for _, want := range []string{"23:00", "23:30", "00:00", "00:30", "4 of 48 slots active"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q:\n%s", want, buf.String())
		}
	}
}

func TestRunSchedule_JSONListsActiveSlots(t *testing.T) {
	useInput(t, "time_windows:\n  - [\"9AM-10AM\", A, B, 10, 20]\n")
	jsonOutput = true

	var buf bytes.Buffer
	if code := runSchedule(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	var parsed struct {
		Slots []struct {
			Slot   int                           `json:"slot"`
			Start  string                        `json:"start"`
			Demand map[string]map[string]float64 `json:"demand"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed.Slots) != 2 || parsed.Slots[0].Start != "09:00" || parsed.Slots[1].Demand["B"]["A"] != 20 {
		t.Errorf("unexpected slots %+v", parsed.Slots)
	}
}

func TestRunCompare_Local(t *testing.T) {
	useInput(t, strandedYAML)

	var buf bytes.Buffer
	if code := runCompare(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Recommended:") || !strings.Contains(buf.String(), "router-addition") {
		t.Errorf("expected recommendation in output:\n%s", buf.String())
	}
}
