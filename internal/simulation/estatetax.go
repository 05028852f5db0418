package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/finsim/wealth-projector/internal/domain"
	"github.com/finsim/wealth-projector/pkg/money"
)

// EvaluateBreach compares the median trajectory against the exemption
// threshold. It is a pure function: identical inputs always yield identical
// outputs. The breach scan and the wealth-at-death read are independent; the
// death-year offset is clamped into the band's range.
func EvaluateBreach(medianBand []float64, expectedDeathYearOffset int, tax domain.EstateTaxParameters) domain.EstateTaxEvaluation {
	eval := domain.EstateTaxEvaluation{
		ExemptionThreshold:       tax.ExemptionThreshold,
		TaxRate:                  tax.TaxRate,
		WealthAtExpectedDeath:    decimal.Zero,
		ExpectedTaxBurdenAtDeath: decimal.Zero,
		SurvivingWealth:          decimal.Zero,
	}
	if len(medianBand) == 0 {
		return eval
	}

	threshold := tax.ExemptionThreshold.InexactFloat64()
	for year, value := range medianBand {
		if value > threshold {
			y := year
			eval.BreachYear = &y
			break
		}
	}

	offset := expectedDeathYearOffset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(medianBand) {
		offset = len(medianBand) - 1
	}

	wealthAtDeath := decimal.NewFromFloat(medianBand[offset])
	eval.WealthAtExpectedDeath = wealthAtDeath

	if wealthAtDeath.GreaterThan(tax.ExemptionThreshold) {
		eval.ExpectedTaxBurdenAtDeath = wealthAtDeath.Sub(tax.ExemptionThreshold).Mul(tax.TaxRate)
	}
	eval.SurvivingWealth = money.NonNegative(wealthAtDeath.Sub(eval.ExpectedTaxBurdenAtDeath))
	return eval
}
