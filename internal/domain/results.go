package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PercentileBands holds one wealth sequence per requested percentile, each of
// length years+1. Bands are order statistics, not interpolated values, and
// are read-only once produced.
type PercentileBands struct {
	Percentiles []int             `json:"percentiles"`
	Values      map[int][]float64 `json:"values"`
}

// NoData reports whether the bands were extracted from an empty ensemble.
func (b PercentileBands) NoData() bool {
	return len(b.Percentiles) == 0 || len(b.Values) == 0
}

// Band returns the sequence for percentile p, or nil if it was not requested.
func (b PercentileBands) Band(p int) []float64 {
	return b.Values[p]
}

// Median returns the 50th percentile band.
func (b PercentileBands) Median() []float64 {
	return b.Values[50]
}

// RiskAssessment is the mortality-adjusted ruin score for one ensemble.
// SuccessRate and LongevityRiskScore are percentages in [0,100] and sum to
// exactly 100.
type RiskAssessment struct {
	SuccessRate        decimal.Decimal `json:"success_rate"`
	LongevityRiskScore decimal.Decimal `json:"longevity_risk_score"`
	ExpectedDeathAge   int             `json:"expected_death_age"`
	YearsReviewed      int             `json:"years_reviewed"`
}

// EstateTaxEvaluation compares the median trajectory against the exemption
// threshold. BreachYear is nil when the threshold is never exceeded within
// the simulated horizon.
type EstateTaxEvaluation struct {
	ExemptionThreshold       decimal.Decimal `json:"exemption_threshold"`
	TaxRate                  decimal.Decimal `json:"tax_rate"`
	BreachYear               *int            `json:"breach_year,omitempty"`
	WealthAtExpectedDeath    decimal.Decimal `json:"wealth_at_expected_death"`
	ExpectedTaxBurdenAtDeath decimal.Decimal `json:"expected_tax_burden_at_death"`
	SurvivingWealth          decimal.Decimal `json:"surviving_wealth"`
}

// ProjectionSummary is the final per-user result: parameters echoed back plus
// every derived aggregate. It is the only artifact that outlives a run; the
// individual trajectories are discarded after percentile extraction.
type ProjectionSummary struct {
	UserID       string               `json:"user_id,omitempty"`
	Parameters   SimulationParameters `json:"parameters"`
	EnsembleSize int                  `json:"ensemble_size"`
	Risk         RiskAssessment       `json:"risk"`
	Estate       EstateTaxEvaluation  `json:"estate"`
	Bands        PercentileBands      `json:"percentile_bands"`
	GeneratedAt  time.Time            `json:"generated_at"`
}
