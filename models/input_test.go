package models

import (
	"encoding/json"
	"testing"
)

func TestBandwidthEntry_TupleForm(t *testing.T) {
	var e BandwidthEntry
	if err := json.Unmarshal([]byte(`["A", "B", 300, 450.5]`), &e); err != nil {
		t.Fatalf("Failed to parse tuple: %v", err)
	}
	if e.SiteA != "A" || e.SiteB != "B" {
		t.Errorf("Expected sites A/B, got %s/%s", e.SiteA, e.SiteB)
	}
	if e.Upload != 300 || e.Download != 450.5 {
		t.Errorf("Expected 300/450.5, got %v/%v", e.Upload, e.Download)
	}
}

func TestBandwidthEntry_ObjectForm(t *testing.T) {
	var e BandwidthEntry
	input := `{"site_a": "X", "site_b": "Y", "upload": 10, "download": 20}`
	if err := json.Unmarshal([]byte(input), &e); err != nil {
		t.Fatalf("Failed to parse object: %v", err)
	}
	if e.SiteA != "X" || e.Download != 20 {
		t.Errorf("Unexpected entry: %+v", e)
	}
}

func TestBandwidthEntry_WrongArity(t *testing.T) {
	var e BandwidthEntry
	if err := json.Unmarshal([]byte(`["A", "B", 300]`), &e); err == nil {
		t.Error("Expected error for three-field tuple")
	}
}

func TestBandwidthEntry_WrongFieldType(t *testing.T) {
	var e BandwidthEntry
	if err := json.Unmarshal([]byte(`["A", "B", "fast", 1]`), &e); err == nil {
		t.Error("Expected error for string bandwidth")
	}
}

func TestBandwidthEntry_MarshalsAsTuple(t *testing.T) {
	data, err := json.Marshal(BandwidthEntry{SiteA: "A", SiteB: "B", Upload: 1, Download: 2})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(data) != `["A","B",1,2]` {
		t.Errorf("Expected tuple form, got %s", data)
	}
}

func TestPlanInput_MixedForms(t *testing.T) {
	input := `{
		"bandwidth": [["A", "B", 350, 200], {"site_a": "B", "site_b": "C", "upload": 50, "download": 75}],
		"customers": [["A", 8], {"site": "B", "customers": 2}],
		"time_windows": [["9AM-5PM", "A", "B", 100, 80]],
		"policy": "router-addition"
	}`

	var in PlanInput
	if err := json.Unmarshal([]byte(input), &in); err != nil {
		t.Fatalf("Failed to parse PlanInput: %v", err)
	}
	if len(in.Bandwidth) != 2 {
		t.Fatalf("Expected 2 bandwidth entries, got %d", len(in.Bandwidth))
	}
	if in.Bandwidth[1].SiteB != "C" {
		t.Errorf("Expected second entry to C, got %s", in.Bandwidth[1].SiteB)
	}
	if in.Customers[0].Customers != 8 || in.Customers[1].Site != "B" {
		t.Errorf("Unexpected customers: %+v", in.Customers)
	}
	if in.TimeWindows[0].Range != "9AM-5PM" || in.TimeWindows[0].PeakDownload != 80 {
		t.Errorf("Unexpected time window: %+v", in.TimeWindows[0])
	}
	if in.Policy != PolicyRouterAddition {
		t.Errorf("Expected policy router-addition, got %s", in.Policy)
	}
}
