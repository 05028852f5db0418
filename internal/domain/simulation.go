package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SimulationParameters describes one household's projection request. It is
// constructed fresh per run and never mutated by the pipeline.
type SimulationParameters struct {
	StartingWealth   decimal.Decimal `json:"starting_wealth" yaml:"starting_wealth"`
	Years            int             `json:"years" yaml:"years"`
	AnnualWithdrawal decimal.Decimal `json:"annual_withdrawal" yaml:"annual_withdrawal"`
	GrowthAssetRatio float64         `json:"growth_asset_ratio" yaml:"growth_asset_ratio"`
}

// IncomeAssetRatio is the complement of the growth allocation.
func (p SimulationParameters) IncomeAssetRatio() float64 {
	return 1 - p.GrowthAssetRatio
}

// Validate checks the parameters for programming errors. These are surfaced
// synchronously before any simulation work begins and are never retried.
func (p SimulationParameters) Validate() error {
	if p.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", p.Years)
	}
	if p.StartingWealth.IsNegative() {
		return fmt.Errorf("starting wealth cannot be negative, got %s", p.StartingWealth.StringFixed(2))
	}
	if p.AnnualWithdrawal.IsNegative() {
		return fmt.Errorf("annual withdrawal cannot be negative, got %s", p.AnnualWithdrawal.StringFixed(2))
	}
	if p.GrowthAssetRatio < 0 || p.GrowthAssetRatio > 1 {
		return fmt.Errorf("growth asset ratio must be between 0 and 1, got %v", p.GrowthAssetRatio)
	}
	return nil
}

// GrowthProcessConfig parameterizes the geometric Brownian motion used for
// the growth (equity) bucket.
type GrowthProcessConfig struct {
	ExpectedReturn float64 `json:"expected_return" yaml:"expected_return"`
	Volatility     float64 `json:"volatility" yaml:"volatility"`
}

// IncomeProcessConfig parameterizes the Vasicek mean-reverting rate process
// used for the income (fixed income) bucket.
type IncomeProcessConfig struct {
	InitialRate    float64 `json:"initial_rate" yaml:"initial_rate"`
	ReversionSpeed float64 `json:"reversion_speed" yaml:"reversion_speed"`
	LongRunMean    float64 `json:"long_run_mean" yaml:"long_run_mean"`
	RateVolatility float64 `json:"rate_volatility" yaml:"rate_volatility"`
}

// AssetProcessConfig holds the per-asset-class process parameters for one run.
// Defaults come from the market-assumption data; both processes within a path
// draw independent randomness (no cross-asset correlation is modeled).
type AssetProcessConfig struct {
	Growth GrowthProcessConfig `json:"growth" yaml:"growth"`
	Income IncomeProcessConfig `json:"income" yaml:"income"`
}

// Validate checks the process parameters.
func (c AssetProcessConfig) Validate() error {
	if c.Growth.Volatility < 0 {
		return fmt.Errorf("growth volatility cannot be negative, got %v", c.Growth.Volatility)
	}
	if c.Income.RateVolatility < 0 {
		return fmt.Errorf("rate volatility cannot be negative, got %v", c.Income.RateVolatility)
	}
	return nil
}

// MortalityProfile drives the mortality-adjusted survival horizon.
// A non-positive HealthMultiplier falls back to 1.0 rather than failing the
// run; the projection is always best-effort on incomplete settings.
type MortalityProfile struct {
	CurrentAge       int     `json:"current_age" yaml:"current_age"`
	HealthMultiplier float64 `json:"health_multiplier" yaml:"health_multiplier"`
}

// EstateTaxParameters carries the jurisdiction-specific exemption threshold
// and flat top-bracket rate supplied by the external tax-bracket lookup.
type EstateTaxParameters struct {
	ExemptionThreshold decimal.Decimal `json:"exemption_threshold" yaml:"exemption_threshold"`
	TaxRate            decimal.Decimal `json:"tax_rate" yaml:"tax_rate"`
}

// ProjectionInput bundles everything the projection engine needs for one
// household: simulation parameters, process configuration, mortality profile
// and jurisdiction tax parameters.
type ProjectionInput struct {
	Parameters SimulationParameters `json:"parameters" yaml:"parameters"`
	Assets     AssetProcessConfig   `json:"assets" yaml:"assets"`
	Mortality  MortalityProfile     `json:"mortality" yaml:"mortality"`
	Tax        EstateTaxParameters  `json:"tax" yaml:"tax"`
}
