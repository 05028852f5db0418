package output

import (
	"bytes"
	"fmt"

	"github.com/finsim/wealth-projector/internal/domain"
	"github.com/finsim/wealth-projector/pkg/money"
)

// ConsoleFormatter renders a short human-readable summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(summary *domain.ProjectionSummary) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "Wealth Projection Summary\n")
	fmt.Fprintf(buf, "=========================\n")
	if summary.UserID != "" {
		fmt.Fprintf(buf, "User:                %s\n", summary.UserID)
	}
	fmt.Fprintf(buf, "Starting Wealth:     %s\n", money.FormatUSD(summary.Parameters.StartingWealth))
	fmt.Fprintf(buf, "Annual Withdrawal:   %s\n", money.FormatUSD(summary.Parameters.AnnualWithdrawal))
	fmt.Fprintf(buf, "Horizon:             %d years, %d paths\n", summary.Parameters.Years, summary.EnsembleSize)
	fmt.Fprintf(buf, "Growth Allocation:   %.0f%%\n", summary.Parameters.GrowthAssetRatio*100)
	fmt.Fprintf(buf, "\n")
	fmt.Fprintf(buf, "Success Rate:        %s\n", money.FormatPercent(summary.Risk.SuccessRate))
	fmt.Fprintf(buf, "Longevity Risk:      %s\n", money.FormatPercent(summary.Risk.LongevityRiskScore))
	fmt.Fprintf(buf, "Expected Death Age:  %d (reviewed %d years)\n", summary.Risk.ExpectedDeathAge, summary.Risk.YearsReviewed)
	fmt.Fprintf(buf, "\n")
	if summary.Estate.BreachYear != nil {
		fmt.Fprintf(buf, "Exemption Breach:    year %d (threshold %s)\n", *summary.Estate.BreachYear, money.FormatUSD(summary.Estate.ExemptionThreshold))
	} else {
		fmt.Fprintf(buf, "Exemption Breach:    never (threshold %s)\n", money.FormatUSD(summary.Estate.ExemptionThreshold))
	}
	fmt.Fprintf(buf, "Wealth at Death:     %s\n", money.FormatUSD(summary.Estate.WealthAtExpectedDeath))
	fmt.Fprintf(buf, "Estate Tax Burden:   %s\n", money.FormatUSD(summary.Estate.ExpectedTaxBurdenAtDeath))
	fmt.Fprintf(buf, "Surviving Wealth:    %s\n", money.FormatUSD(summary.Estate.SurvivingWealth))

	if !summary.Bands.NoData() {
		fmt.Fprintf(buf, "\nMedian wealth at horizon: %s\n", money.FormatUSD(money.FromFloat(lastValue(summary.Bands.Median()))))
	}
	return buf.Bytes(), nil
}

func lastValue(band []float64) float64 {
	if len(band) == 0 {
		return 0
	}
	return band[len(band)-1]
}
