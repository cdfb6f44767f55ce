// ABOUTME: Outcome kinds shared by sizing, topology and power results
// ABOUTME: Distinguishes fully satisfied, bounded shortfall and infeasible results

package models

// Outcome classifies how completely a site, requirement or run was satisfied
type Outcome string

const (
	OutcomeSatisfied  Outcome = "satisfied"
	OutcomePartial    Outcome = "partial"
	OutcomeInfeasible Outcome = "infeasible"
)

// Worse returns the more severe of two outcomes
func (o Outcome) Worse(other Outcome) Outcome {
	if o.rank() >= other.rank() {
		return o
	}
	return other
}

func (o Outcome) rank() int {
	switch o {
	case OutcomeInfeasible:
		return 2
	case OutcomePartial:
		return 1
	default:
		return 0
	}
}
