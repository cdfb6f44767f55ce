// ABOUTME: Tests for time-range parsing, slot scheduling and power estimation
// ABOUTME: Covers midnight wraparound, empty ranges and installed-router clamps

package services

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/markalston/network-capacity-planner/models"
)

func TestParseRangeLabel(t *testing.T) {
	tests := []struct {
		label      string
		start, end int
	}{
		{"9AM-5PM", 9, 17},
		{"12AM-1AM", 0, 1},
		{"12PM-1PM", 12, 13},
		{"11PM-1AM", 23, 1},
		{" 9am - 11Am ", 9, 11},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			start, end, err := ParseRangeLabel(tt.label)
			require.NoError(t, err)
			if start != tt.start || end != tt.end {
				t.Errorf("Expected %d-%d, got %d-%d", tt.start, tt.end, start, end)
			}
		})
	}
}

func TestParseRangeLabel_Malformed(t *testing.T) {
	labels := []string{"", "9-5", "9AM", "13PM-2AM", "0AM-1AM", "9AM-5XM", "9AM-5PM-7PM", "nine-five"}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			_, _, err := ParseRangeLabel(label)
			if err == nil {
				t.Fatalf("Expected error for %q", label)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRangeSlots_WrapsMidnight(t *testing.T) {
	slots, err := RangeSlots("11PM-1AM")
	require.NoError(t, err)
	if diff := cmp.Diff([]int{46, 47, 0, 1}, slots); diff != "" {
		t.Errorf("Slots mismatch (-want +got):\n%s", diff)
	}
}

func TestRangeSlots_EqualBoundsEmpty(t *testing.T) {
	slots, err := RangeSlots("5PM-5PM")
	require.NoError(t, err)
	if len(slots) != 0 {
		t.Errorf("Expected no slots, got %v", slots)
	}
}

func TestSchedule_KeepsMaxPerDirection(t *testing.T) {
	tz, err := NewDemandScheduler().Schedule([]models.TimeWindowEntry{
		{Range: "9AM-10AM", SiteA: "A", SiteB: "B", PeakUpload: 100, PeakDownload: 40},
		{Range: "9AM-11AM", SiteA: "A", SiteB: "B", PeakUpload: 60, PeakDownload: 90},
	})
	require.NoError(t, err)

	if diff := cmp.Diff([]int{18, 19, 20, 21}, tz.ActiveSlots()); diff != "" {
		t.Errorf("Active slots mismatch (-want +got):\n%s", diff)
	}
	if tz[18].Get("A", "B") != 100 || tz[18].Get("B", "A") != 90 {
		t.Errorf("Expected slot 18 A->B 100 and B->A 90, got %v and %v",
			tz[18].Get("A", "B"), tz[18].Get("B", "A"))
	}
	if tz[20].Get("A", "B") != 60 {
		t.Errorf("Expected slot 20 A->B 60, got %v", tz[20].Get("A", "B"))
	}
	if tz[17].Len() != 0 || tz[22].Len() != 0 {
		t.Error("Expected slots outside the windows to stay empty")
	}
}

func TestSchedule_MalformedLabelIsError(t *testing.T) {
	_, err := NewDemandScheduler().Schedule([]models.TimeWindowEntry{{Range: "noon-ish", SiteA: "A", SiteB: "B"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestEstimate_ClampsToInstalledRouters(t *testing.T) {
	// 2000 toward B needs 20 small-port units -> 3 tier-1, and 5 large units -> 1 tier-2
	nodes := []models.Site{{ID: "A", T1Routers: 2, T2Routers: 1}}
	tz, err := NewDemandScheduler().Schedule([]models.TimeWindowEntry{
		{Range: "12AM-1AM", SiteA: "A", SiteB: "B", PeakUpload: 2000, PeakDownload: 2000},
	})
	require.NoError(t, err)

	series := NewPowerEstimator().Estimate(nodes, tz)

	if series.PerSlot[0] != 850 || series.PerSlot[1] != 850 || series.PerSlot[2] != 0 {
		t.Errorf("Expected 850 W in slots 0-1 only, got %v %v %v", series.PerSlot[0], series.PerSlot[1], series.PerSlot[2])
	}
	if math.Abs(series.Average-1700.0/48) > 1e-9 {
		t.Errorf("Expected average %v, got %v", 1700.0/48, series.Average)
	}
	want := []models.PowerClamp{
		{Slot: 0, Site: "A", Tier: models.TierOne, Required: 3, Installed: 2},
		{Slot: 1, Site: "A", Tier: models.TierOne, Required: 3, Installed: 2},
	}
	if diff := cmp.Diff(want, series.Clamps); diff != "" {
		t.Errorf("Clamps mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, series.Activity[0], 1)
	if series.Activity[0][0].ActiveT1 != 2 || series.Activity[0][0].ActiveT2 != 1 {
		t.Errorf("Expected 2 tier-1 and 1 tier-2 active, got %+v", series.Activity[0][0])
	}
	if series.Peak != 850 || series.PeakSlot != 0 {
		t.Errorf("Expected peak 850 at slot 0, got %v at %d", series.Peak, series.PeakSlot)
	}
}

func TestEstimate_EmptyScheduleIsZero(t *testing.T) {
	series := NewPowerEstimator().Estimate([]models.Site{{ID: "A", T1Routers: 4}}, models.NewTimezoneMap())
	if series.Average != 0 || len(series.Clamps) != 0 {
		t.Errorf("Expected zero power and no clamps, got %v and %d clamps", series.Average, len(series.Clamps))
	}
}
