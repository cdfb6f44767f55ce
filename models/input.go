// ABOUTME: Engine input tuples for bandwidth, customers and time windows
// ABOUTME: Accepts both positional tuple and object forms in JSON

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BandwidthEntry is one (siteA, siteB, upload, download) requirement tuple
type BandwidthEntry struct {
	SiteA    string  `json:"site_a" yaml:"site_a"`
	SiteB    string  `json:"site_b" yaml:"site_b"`
	Upload   float64 `json:"upload" yaml:"upload"`
	Download float64 `json:"download" yaml:"download"`
}

// CustomerEntry is one (site, customerCount) tuple
type CustomerEntry struct {
	Site      string `json:"site" yaml:"site"`
	Customers int    `json:"customers" yaml:"customers"`
}

// TimeWindowEntry is one (rangeLabel, siteA, siteB, peakUpload, peakDownload) tuple
type TimeWindowEntry struct {
	Range        string  `json:"range" yaml:"range"`
	SiteA        string  `json:"site_a" yaml:"site_a"`
	SiteB        string  `json:"site_b" yaml:"site_b"`
	PeakUpload   float64 `json:"peak_upload" yaml:"peak_upload"`
	PeakDownload float64 `json:"peak_download" yaml:"peak_download"`
}

// PlanInput is the complete input snapshot for one planning run
type PlanInput struct {
	Bandwidth          []BandwidthEntry  `json:"bandwidth" yaml:"bandwidth"`
	Customers          []CustomerEntry   `json:"customers" yaml:"customers"`
	TimeWindows        []TimeWindowEntry `json:"time_windows,omitempty" yaml:"time_windows,omitempty"`
	Policy             EscalationPolicy  `json:"policy,omitempty" yaml:"policy,omitempty"`
	MaxRouterAdditions int               `json:"max_router_additions,omitempty" yaml:"max_router_additions,omitempty"`
}

// MarshalJSON emits the positional tuple form
func (e BandwidthEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.SiteA, e.SiteB, e.Upload, e.Download})
}

// UnmarshalJSON accepts ["A","B",up,down] or an object
func (e *BandwidthEntry) UnmarshalJSON(data []byte) error {
	if isJSONArray(data) {
		fields, err := splitTuple(data, 4)
		if err != nil {
			return fmt.Errorf("bandwidth entry: %w", err)
		}
		return decodeFields(fields, &e.SiteA, &e.SiteB, &e.Upload, &e.Download)
	}
	type plain BandwidthEntry
	return json.Unmarshal(data, (*plain)(e))
}

// MarshalJSON emits the positional tuple form
func (e CustomerEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Site, e.Customers})
}

// UnmarshalJSON accepts ["A",8] or an object
func (e *CustomerEntry) UnmarshalJSON(data []byte) error {
	if isJSONArray(data) {
		fields, err := splitTuple(data, 2)
		if err != nil {
			return fmt.Errorf("customer entry: %w", err)
		}
		return decodeFields(fields, &e.Site, &e.Customers)
	}
	type plain CustomerEntry
	return json.Unmarshal(data, (*plain)(e))
}

// MarshalJSON emits the positional tuple form
func (e TimeWindowEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Range, e.SiteA, e.SiteB, e.PeakUpload, e.PeakDownload})
}

// UnmarshalJSON accepts ["9AM-5PM","A","B",up,down] or an object
func (e *TimeWindowEntry) UnmarshalJSON(data []byte) error {
	if isJSONArray(data) {
		fields, err := splitTuple(data, 5)
		if err != nil {
			return fmt.Errorf("time window entry: %w", err)
		}
		return decodeFields(fields, &e.Range, &e.SiteA, &e.SiteB, &e.PeakUpload, &e.PeakDownload)
	}
	type plain TimeWindowEntry
	return json.Unmarshal(data, (*plain)(e))
}

func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func splitTuple(data []byte, want int) ([]json.RawMessage, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d fields, got %d", want, len(fields))
	}
	return fields, nil
}

func decodeFields(fields []json.RawMessage, targets ...any) error {
	for i, target := range targets {
		if err := json.Unmarshal(fields[i], target); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}
