package refund

import (
	"math"
	"testing"
)

func TestComputeReferenceScenarios(t *testing.T) {
	tests := []struct {
		name          string
		amount, hours float64
		processingFee float64
		want          Quote
	}{
		{
			name: "two days ahead", amount: 1200, hours: 48, processingFee: 50,
			want: Quote{DeductionPercentage: 5, CancellationFee: 60, ProcessingFee: 50, RefundAmount: 1090, RuleLabel: RuleStandard24HPlus},
		},
		{
			name: "eight hours ahead", amount: 2750, hours: 8, processingFee: 75,
			want: Quote{DeductionPercentage: 25, CancellationFee: 687.5, ProcessingFee: 75, RefundAmount: 1987.5, RuleLabel: RuleLate6To12H},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.amount, tt.hours, tt.processingFee)
			if got != tt.want {
				t.Fatalf("Compute(%v, %v, %v) = %+v, want %+v", tt.amount, tt.hours, tt.processingFee, got, tt.want)
			}
		})
	}
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		hours float64
		label string
	}{
		{hours: 1000, label: RuleStandard24HPlus},
		{hours: 24, label: RuleStandard24HPlus},
		{hours: 23.99, label: RuleLate12To24H},
		{hours: 12, label: RuleLate12To24H},
		{hours: 11.5, label: RuleLate6To12H},
		{hours: 6, label: RuleLate6To12H},
		{hours: 5.99, label: RuleLastMinuteUnder6H},
		{hours: 0, label: RuleLastMinuteUnder6H},
		{hours: -0.5, label: RulePostDeparture},
		{hours: math.NaN(), label: RulePostDeparture},
	}

	for _, tt := range tests {
		if got := TierFor(tt.hours).Label; got != tt.label {
			t.Errorf("TierFor(%v) = %s, want %s", tt.hours, got, tt.label)
		}
	}
}

func TestTiersAreMonotone(t *testing.T) {
	table := Tiers()
	for i := 1; i < len(table); i++ {
		if table[i].MinHours >= table[i-1].MinHours {
			t.Fatalf("tier %d threshold %v not below %v", i, table[i].MinHours, table[i-1].MinHours)
		}
		if table[i].DeductionPercentage < table[i-1].DeductionPercentage {
			t.Fatalf("tier %s deducts less than earlier tier %s", table[i].Label, table[i-1].Label)
		}
	}
	if !math.IsInf(table[len(table)-1].MinHours, -1) {
		t.Fatal("last tier must catch all remaining hours")
	}
}

func TestComputeNeverNegative(t *testing.T) {
	for _, hours := range []float64{48, 18, 8, 2, -5} {
		got := Compute(100, hours, 500)
		if got.RefundAmount != 0 {
			t.Errorf("hours=%v: refund = %v, want 0", hours, got.RefundAmount)
		}
	}
	if got := Compute(100, -1, 0); got.RefundAmount != 0 || got.CancellationFee != 100 {
		t.Errorf("post departure quote = %+v", got)
	}
}

func TestTiersReturnsCopy(t *testing.T) {
	table := Tiers()
	table[0].DeductionPercentage = 99
	if TierFor(48).DeductionPercentage != 5 {
		t.Fatal("mutating Tiers() result changed the policy")
	}
}
