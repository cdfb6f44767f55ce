// ABOUTME: Time-of-day demand model with 48 half-hour requirement slots
// ABOUTME: Slot 0 covers 00:00-00:30 and slot 47 covers 23:30-24:00

package models

import (
	"encoding/json"
	"fmt"
)

// TimezoneMap holds one requirement matrix per half-hour slot
type TimezoneMap [SlotsPerDay]*RequirementMatrix

// NewTimezoneMap returns a map with every slot initialized empty
func NewTimezoneMap() TimezoneMap {
	var tz TimezoneMap
	for i := range tz {
		tz[i] = NewRequirementMatrix()
	}
	return tz
}

// Slot returns the matrix for slot i, nil when out of range
func (tz TimezoneMap) Slot(i int) *RequirementMatrix {
	if i < 0 || i >= SlotsPerDay {
		return nil
	}
	return tz[i]
}

// ActiveSlots returns the indexes of slots holding at least one requirement
func (tz TimezoneMap) ActiveSlots() []int {
	var out []int
	for i, m := range tz {
		if m.Len() > 0 {
			out = append(out, i)
		}
	}
	return out
}

// MarshalJSON encodes the map as an array of 48 nested objects
func (tz TimezoneMap) MarshalJSON() ([]byte, error) {
	slots := make([]*RequirementMatrix, SlotsPerDay)
	for i, m := range tz {
		if m == nil {
			m = NewRequirementMatrix()
		}
		slots[i] = m
	}
	return json.Marshal(slots)
}

// UnmarshalJSON decodes an array of exactly 48 nested objects
func (tz *TimezoneMap) UnmarshalJSON(data []byte) error {
	var slots []*RequirementMatrix
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}
	if len(slots) != SlotsPerDay {
		return fmt.Errorf("timezone map: expected %d slots, got %d", SlotsPerDay, len(slots))
	}
	for i, m := range slots {
		if m == nil {
			m = NewRequirementMatrix()
		}
		tz[i] = m
	}
	return nil
}

// SlotLabel formats slot i as "HH:MM"
func SlotLabel(i int) string {
	minutes := i * SlotMinutes
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
