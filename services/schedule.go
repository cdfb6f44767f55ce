// ABOUTME: Demand scheduler that spreads time-window peaks over half-hour slots
// ABOUTME: Parses "9AM-5PM" style ranges and keeps the max peak per slot

package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/markalston/network-capacity-planner/models"
)

var rangeLabelPattern = regexp.MustCompile(`(?i)^(\d{1,2})\s*(AM|PM)\s*-\s*(\d{1,2})\s*(AM|PM)$`)

// ParseRangeLabel converts a label like "11PM-1AM" into 24-hour start and end hours
func ParseRangeLabel(label string) (start, end int, err error) {
	match := rangeLabelPattern.FindStringSubmatch(strings.TrimSpace(label))
	if match == nil {
		return 0, 0, fmt.Errorf("%w: malformed time range %q", ErrInvalidInput, sanitizeForLog(label))
	}
	start, err = to24Hour(match[1], match[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time range %q: %v", ErrInvalidInput, sanitizeForLog(label), err)
	}
	end, err = to24Hour(match[3], match[4])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time range %q: %v", ErrInvalidInput, sanitizeForLog(label), err)
	}
	return start, end, nil
}

// to24Hour maps 12 AM to 0, 12 PM to 12 and adds 12 to other PM hours
func to24Hour(digits, meridiem string) (int, error) {
	hour, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err
	}
	if hour < 1 || hour > 12 {
		return 0, fmt.Errorf("hour %d out of range 1-12", hour)
	}
	pm := strings.EqualFold(meridiem, "PM")
	switch {
	case pm && hour != 12:
		return hour + 12, nil
	case !pm && hour == 12:
		return 0, nil
	}
	return hour, nil
}

// RangeSlots lists the slots a label covers, starting at the start hour's :00
// and wrapping past midnight. Equal start and end cover nothing.
func RangeSlots(label string) ([]int, error) {
	start, end, err := ParseRangeLabel(label)
	if err != nil {
		return nil, err
	}
	slot, stop := start*2, end*2
	var slots []int
	for slot != stop {
		slots = append(slots, slot)
		slot = (slot + 1) % models.SlotsPerDay
	}
	return slots, nil
}

// DemandScheduler builds the 48-slot requirement map from time windows
type DemandScheduler struct{}

// NewDemandScheduler creates a new scheduler
func NewDemandScheduler() *DemandScheduler {
	return &DemandScheduler{}
}

// Schedule stores max(existing, upload) under A->B and max(existing, download)
// under B->A for every slot each window covers
func (s *DemandScheduler) Schedule(windows []models.TimeWindowEntry) (models.TimezoneMap, error) {
	tz := models.NewTimezoneMap()
	for i, w := range windows {
		slots, err := RangeSlots(w.Range)
		if err != nil {
			return tz, fmt.Errorf("time window %d: %w", i, err)
		}
		for _, slot := range slots {
			m := tz[slot]
			m.Set(w.SiteA, w.SiteB, math.Max(w.PeakUpload, m.Get(w.SiteA, w.SiteB)))
			m.Set(w.SiteB, w.SiteA, math.Max(w.PeakDownload, m.Get(w.SiteB, w.SiteA)))
		}
	}
	return tz, nil
}
