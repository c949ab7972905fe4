package pourcost

import "github.com/pourmetrics/pourcost/pkg/constants"

// Tier is a coarse classification of how close a pour-cost percentage sits to
// the configured goal.
type Tier string

// Performance tiers, best to worst.
const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierWarning   Tier = "warning"
	TierPoor      Tier = "poor"
)

// PerformanceTier classifies a pour-cost percentage against a goal using the
// shared deviation bands. Deviations are signed: running under goal is better
// than running over.
func PerformanceTier(pourCostPercentage, goalPercentage float64) Tier {
	deviation := pourCostPercentage - goalPercentage
	switch {
	case deviation < -constants.TierSweetBand:
		return TierExcellent
	case deviation <= constants.TierSweetBand:
		return TierGood
	case deviation <= constants.TierPoorBand:
		return TierWarning
	default:
		return TierPoor
	}
}
