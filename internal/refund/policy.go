// Package refund implements the cancellation fee schedule applied to refunded bookings.
package refund

import "math"

// Rule labels recorded on refunds.
const (
	RuleStandard24HPlus   = "STANDARD_24H_PLUS"
	RuleLate12To24H       = "LATE_12H_TO_24H"
	RuleLate6To12H        = "LATE_6H_TO_12H"
	RuleLastMinuteUnder6H = "LAST_MINUTE_UNDER_6H"
	RulePostDeparture     = "POST_DEPARTURE"
)

// Tier applies DeductionPercentage when hours before departure is >= MinHours.
type Tier struct {
	MinHours            float64
	DeductionPercentage float64
	Label               string
}

// tiers is ordered by descending MinHours. Deduction never decreases as departure nears
// and the last tier catches every remaining value, so the table has no gaps.
var tiers = [...]Tier{
	{MinHours: 24, DeductionPercentage: 5, Label: RuleStandard24HPlus},
	{MinHours: 12, DeductionPercentage: 10, Label: RuleLate12To24H},
	{MinHours: 6, DeductionPercentage: 25, Label: RuleLate6To12H},
	{MinHours: 0, DeductionPercentage: 50, Label: RuleLastMinuteUnder6H},
	{MinHours: math.Inf(-1), DeductionPercentage: 100, Label: RulePostDeparture},
}

// Quote is the outcome of applying the policy to a payment.
type Quote struct {
	DeductionPercentage float64 `json:"deduction_percentage"`
	CancellationFee     float64 `json:"cancellation_fee"`
	ProcessingFee       float64 `json:"processing_fee"`
	RefundAmount        float64 `json:"refund_amount"`
	RuleLabel           string  `json:"rule_label"`
}

// Tiers returns a copy of the fee schedule.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out[:], tiers[:])
	return out
}

// TierFor returns the tier that applies hoursBeforeDeparture hours ahead of departure.
func TierFor(hoursBeforeDeparture float64) Tier {
	for _, tier := range tiers {
		if hoursBeforeDeparture >= tier.MinHours {
			return tier
		}
	}
	// NaN compares false against every threshold.
	return tiers[len(tiers)-1]
}

// Compute prices a cancellation. The refund amount is never negative.
func Compute(originalAmount, hoursBeforeDeparture, processingFee float64) Quote {
	tier := TierFor(hoursBeforeDeparture)
	fee := roundCents(originalAmount * tier.DeductionPercentage / 100)
	refund := roundCents(originalAmount - processingFee - fee)
	if refund < 0 {
		refund = 0
	}
	return Quote{
		DeductionPercentage: tier.DeductionPercentage,
		CancellationFee:     fee,
		ProcessingFee:       processingFee,
		RefundAmount:        refund,
		RuleLabel:           tier.Label,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
