// ABOUTME: Tests for HTML power chart rendering
// ABOUTME: Checks slot labels and file output

package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markalston/network-capacity-planner/models"
)

func samplePlan() *models.PlanResult {
	plan := &models.PlanResult{Policy: models.PolicyIndirectPath}
	plan.Power.PerSlot[18] = 500
	plan.Power.Peak = 500
	plan.Power.Average = 500.0 / 48
	return plan
}

func TestPowerCurve(t *testing.T) {
	var buf bytes.Buffer
	if err := PowerCurve(&buf, samplePlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Daily power", "00:00", "09:00", "23:30"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected chart to contain %q", want)
		}
	}
}

func TestPowerCurve_NilPlan(t *testing.T) {
	if err := PowerCurve(&bytes.Buffer{}, nil); err == nil {
		t.Error("expected error for nil plan")
	}
}

func TestWritePowerCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "power.html")
	if err := WritePowerCurve(path, samplePlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading chart: %v", err)
	}
	if !strings.Contains(string(data), "<html") {
		t.Error("expected an HTML document")
	}
}

func TestWritePowerCurve_BadPath(t *testing.T) {
	err := WritePowerCurve(filepath.Join(t.TempDir(), "missing", "power.html"), samplePlan())
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
