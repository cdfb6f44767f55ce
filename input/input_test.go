// ABOUTME: Tests for YAML and JSON plan input loading
// ABOUTME: Covers positional and keyed rows, strict keys and format detection

package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/markalston/network-capacity-planner/models"
)

var wantTwoCity = models.PlanInput{
	Bandwidth:   []models.BandwidthEntry{{SiteA: "A", SiteB: "B", Upload: 350, Download: 200}},
	Customers:   []models.CustomerEntry{{Site: "A", Customers: 8}, {Site: "B", Customers: 8}},
	TimeWindows: []models.TimeWindowEntry{{Range: "9AM-5PM", SiteA: "A", SiteB: "B", PeakUpload: 350, PeakDownload: 200}},
	Policy:      models.PolicyRouterAddition,
}

func TestParse_YAMLPositionalRows(t *testing.T) {
	doc := `
bandwidth:
  - [A, B, 350, 200]
customers:
  - [A, 8]
  - [B, 8]
time_windows:
  - ["9AM-5PM", A, B, 350, 200]
policy: router-addition
`
	in, err := Parse(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	if diff := cmp.Diff(wantTwoCity, in); diff != "" {
		t.Errorf("Input mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAMLKeyedRows(t *testing.T) {
	doc := `
bandwidth:
  - {site_a: A, site_b: B, upload: 350, download: 200}
customers:
  - site: A
    customers: 8
  - [B, 8]
time_windows:
  - range: 9AM-5PM
    site_a: A
    site_b: B
    peak_upload: 350
    peak_download: 200
policy: router-addition
`
	in, err := Parse(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	if diff := cmp.Diff(wantTwoCity, in); diff != "" {
		t.Errorf("Input mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSON(t *testing.T) {
	doc := `{
		"bandwidth": [["A", "B", 350, 200]],
		"customers": [{"site": "A", "customers": 8}, ["B", 8]],
		"time_windows": [["9AM-5PM", "A", "B", 350, 200]],
		"policy": "router-addition"
	}`
	in, err := Parse(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	if diff := cmp.Diff(wantTwoCity, in); diff != "" {
		t.Errorf("Input mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
		want   string
	}{
		{"short yaml row", "bandwidth:\n  - [A, B, 1]\n", FormatYAML, "needs 4 fields, got 3"},
		{"non-numeric", "customers:\n  - [A, many]\n", FormatYAML, "customer field 1"},
		{"unknown yaml key", "bandwith: []\n", FormatYAML, "bandwith"},
		{"unknown json key", `{"bandwith": []}`, FormatJSON, "bandwith"},
		{"bad json", `{"bandwidth": [`, FormatJSON, "failed to parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc), tt.format)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParse_EmptyYAMLDocument(t *testing.T) {
	in, err := Parse(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	if len(in.Bandwidth) != 0 || len(in.Customers) != 0 {
		t.Errorf("Expected empty input, got %+v", in)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"plan.yaml": FormatYAML,
		"plan.YML":  FormatYAML,
		"plan.json": FormatJSON,
		"-":         FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		if got != want {
			t.Errorf("%s: expected %s, got %s", path, want, got)
		}
	}

	if _, err := FormatFromPath("plan.toml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yml")
	require.NoError(t, os.WriteFile(path, []byte("customers:\n  - [A, 3]\nmax_router_additions: 5\n"), 0o600))

	in, err := Load(path)
	require.NoError(t, err)
	if len(in.Customers) != 1 || in.Customers[0].Customers != 3 || in.MaxRouterAdditions != 5 {
		t.Errorf("Unexpected input %+v", in)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
