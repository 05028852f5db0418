package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finsim/wealth-projector/internal/domain"
)

// Process-wide market assumption defaults, used whenever an override file is
// absent or incomplete. The run always proceeds on documented defaults rather
// than blocking on missing assumption data.
const (
	defaultGrowthReturn     = 0.07
	defaultGrowthVolatility = 0.15
	defaultInitialRate      = 0.03
	defaultReversionSpeed   = 0.25
	defaultLongRunMean      = 0.035
	defaultRateVolatility   = 0.01
)

// DefaultAssumptions returns the built-in two-asset process parameters.
func DefaultAssumptions() domain.AssetProcessConfig {
	return domain.AssetProcessConfig{
		Growth: domain.GrowthProcessConfig{
			ExpectedReturn: defaultGrowthReturn,
			Volatility:     defaultGrowthVolatility,
		},
		Income: domain.IncomeProcessConfig{
			InitialRate:    defaultInitialRate,
			ReversionSpeed: defaultReversionSpeed,
			LongRunMean:    defaultLongRunMean,
			RateVolatility: defaultRateVolatility,
		},
	}
}

// assumptionsFile mirrors the YAML override format. Pointer fields
// distinguish "absent" from an explicit zero.
type assumptionsFile struct {
	Growth struct {
		ExpectedReturn *float64 `yaml:"expected_return"`
		Volatility     *float64 `yaml:"volatility"`
	} `yaml:"growth"`
	Income struct {
		InitialRate    *float64 `yaml:"initial_rate"`
		ReversionSpeed *float64 `yaml:"reversion_speed"`
		LongRunMean    *float64 `yaml:"long_run_mean"`
		RateVolatility *float64 `yaml:"rate_volatility"`
	} `yaml:"income"`
}

// LoadAssumptions reads a market-assumptions YAML file and overlays it on the
// defaults. An empty path returns the defaults outright.
func LoadAssumptions(path string) (domain.AssetProcessConfig, error) {
	cfg := DefaultAssumptions()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read assumptions file %s: %w", path, err)
	}

	var file assumptionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse assumptions YAML: %w", err)
	}

	if file.Growth.ExpectedReturn != nil {
		cfg.Growth.ExpectedReturn = *file.Growth.ExpectedReturn
	}
	if file.Growth.Volatility != nil {
		cfg.Growth.Volatility = *file.Growth.Volatility
	}
	if file.Income.InitialRate != nil {
		cfg.Income.InitialRate = *file.Income.InitialRate
	}
	if file.Income.ReversionSpeed != nil {
		cfg.Income.ReversionSpeed = *file.Income.ReversionSpeed
	}
	if file.Income.LongRunMean != nil {
		cfg.Income.LongRunMean = *file.Income.LongRunMean
	}
	if file.Income.RateVolatility != nil {
		cfg.Income.RateVolatility = *file.Income.RateVolatility
	}

	if err := cfg.Validate(); err != nil {
		return DefaultAssumptions(), fmt.Errorf("assumptions file %s: %w", path, err)
	}
	return cfg, nil
}
