// ABOUTME: Aggregates pairwise bandwidth tuples into a symmetric requirement matrix
// ABOUTME: Also totals each site's outgoing demand for router sizing

package services

import (
	"math"

	"github.com/markalston/network-capacity-planner/models"
)

// AggregateRequirements stores max(upload, download) symmetrically for every tuple.
// A repeated pair keeps the last value written.
func AggregateRequirements(entries []models.BandwidthEntry) models.RequirementsResult {
	matrix := models.NewRequirementMatrix()
	for _, e := range entries {
		matrix.SetSymmetric(e.SiteA, e.SiteB, math.Max(e.Upload, e.Download))
	}

	demand := make(map[string]float64, matrix.Len())
	for _, site := range matrix.Sites() {
		demand[site] = matrix.Total(site)
	}

	return models.RequirementsResult{Matrix: matrix, Demand: demand}
}
