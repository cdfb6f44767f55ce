// ABOUTME: Input validation for planning requests
// ABOUTME: Rejects malformed sites, values and time ranges before any engine stage runs

package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/markalston/network-capacity-planner/models"
)

// ErrInvalidInput marks errors caused by the caller's input
var ErrInvalidInput = errors.New("invalid input")

const (
	// MaxSiteIDLength bounds site identifiers
	MaxSiteIDLength = 128
	// MaxBandwidth bounds a single bandwidth value
	MaxBandwidth = 1_000_000
	// MaxCustomers bounds a single site's customer count
	MaxCustomers = 100_000
	// MaxEntries bounds the number of tuples of each kind
	MaxEntries = 10_000
)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidateSiteID checks that a site identifier is usable
func ValidateSiteID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: site id cannot be empty", ErrInvalidInput)
	}
	if len(id) > MaxSiteIDLength {
		return fmt.Errorf("%w: site id exceeds %d characters", ErrInvalidInput, MaxSiteIDLength)
	}
	if sanitizeForLog(id) != id {
		return fmt.Errorf("%w: site id %q contains control characters", ErrInvalidInput, sanitizeForLog(id))
	}
	return nil
}

func validateValue(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, name)
	}
	if v > MaxBandwidth {
		return fmt.Errorf("%w: %s exceeds %d", ErrInvalidInput, name, MaxBandwidth)
	}
	return nil
}

func validatePair(a, b string) error {
	if err := ValidateSiteID(a); err != nil {
		return err
	}
	if err := ValidateSiteID(b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("%w: site %q cannot require bandwidth to itself", ErrInvalidInput, sanitizeForLog(a))
	}
	return nil
}

// ValidateBandwidth checks bandwidth tuples
func ValidateBandwidth(entries []models.BandwidthEntry) error {
	if len(entries) > MaxEntries {
		return fmt.Errorf("%w: too many bandwidth entries (%d > %d)", ErrInvalidInput, len(entries), MaxEntries)
	}
	for i, e := range entries {
		if err := validatePair(e.SiteA, e.SiteB); err != nil {
			return fmt.Errorf("bandwidth entry %d: %w", i, err)
		}
		if err := validateValue("upload", e.Upload); err != nil {
			return fmt.Errorf("bandwidth entry %d: %w", i, err)
		}
		if err := validateValue("download", e.Download); err != nil {
			return fmt.Errorf("bandwidth entry %d: %w", i, err)
		}
	}
	return nil
}

// ValidateCustomers checks customer tuples and rejects duplicate sites
func ValidateCustomers(entries []models.CustomerEntry) error {
	if len(entries) > MaxEntries {
		return fmt.Errorf("%w: too many customer entries (%d > %d)", ErrInvalidInput, len(entries), MaxEntries)
	}
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if err := ValidateSiteID(e.Site); err != nil {
			return fmt.Errorf("customer entry %d: %w", i, err)
		}
		if e.Customers < 0 {
			return fmt.Errorf("customer entry %d: %w: customers cannot be negative", i, ErrInvalidInput)
		}
		if e.Customers > MaxCustomers {
			return fmt.Errorf("customer entry %d: %w: customers exceeds %d", i, ErrInvalidInput, MaxCustomers)
		}
		if prev, dup := seen[e.Site]; dup {
			return fmt.Errorf("customer entry %d: %w: site %q already listed at entry %d",
				i, ErrInvalidInput, sanitizeForLog(e.Site), prev)
		}
		seen[e.Site] = i
	}
	return nil
}

// ValidateTimeWindows checks time-window tuples including their range labels
func ValidateTimeWindows(entries []models.TimeWindowEntry) error {
	if len(entries) > MaxEntries {
		return fmt.Errorf("%w: too many time window entries (%d > %d)", ErrInvalidInput, len(entries), MaxEntries)
	}
	for i, e := range entries {
		if _, _, err := ParseRangeLabel(e.Range); err != nil {
			return fmt.Errorf("time window %d: %w", i, err)
		}
		if err := validatePair(e.SiteA, e.SiteB); err != nil {
			return fmt.Errorf("time window %d: %w", i, err)
		}
		if err := validateValue("peak upload", e.PeakUpload); err != nil {
			return fmt.Errorf("time window %d: %w", i, err)
		}
		if err := validateValue("peak download", e.PeakDownload); err != nil {
			return fmt.Errorf("time window %d: %w", i, err)
		}
	}
	return nil
}

// ValidatePolicy resolves a policy name, wrapping unknown names as invalid input
func ValidatePolicy(policy models.EscalationPolicy) (models.EscalationPolicy, error) {
	resolved, err := models.ParseEscalationPolicy(string(policy))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, sanitizeForLog(err.Error()))
	}
	return resolved, nil
}

// ValidatePlanInput checks a full planning request
func ValidatePlanInput(in models.PlanInput) error {
	if err := ValidateBandwidth(in.Bandwidth); err != nil {
		return err
	}
	if err := ValidateCustomers(in.Customers); err != nil {
		return err
	}
	if err := ValidateTimeWindows(in.TimeWindows); err != nil {
		return err
	}
	if _, err := ValidatePolicy(in.Policy); err != nil {
		return err
	}
	if in.MaxRouterAdditions < 0 {
		return fmt.Errorf("%w: max_router_additions cannot be negative", ErrInvalidInput)
	}
	return nil
}
