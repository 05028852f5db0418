package simulation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finsim/wealth-projector/internal/domain"
)

// Mortality assumptions shared by every assessment.
const (
	// BaseLifeExpectancy is the unadjusted life expectancy in years.
	BaseLifeExpectancy = 85
	// MaxAge caps the survival horizon.
	MaxAge = 100
	// DefaultHealthMultiplier is used when the profile carries none.
	DefaultHealthMultiplier = 1.0
)

var hundred = decimal.NewFromInt(100)

// LongevityAssessor scores ruin probability against a mortality-adjusted
// survival horizon.
type LongevityAssessor struct {
	Logger Logger
}

// NewLongevityAssessor creates an assessor with an optional logger.
func NewLongevityAssessor(logger Logger) *LongevityAssessor {
	if logger == nil {
		logger = NopLogger{}
	}
	return &LongevityAssessor{Logger: logger}
}

// ExpectedDeathAge derives the mortality-adjusted death age:
// floor(baseLifeExpectancy * healthMultiplier), never earlier than
// currentAge+2. A non-positive multiplier falls back to the default.
func ExpectedDeathAge(profile domain.MortalityProfile) int {
	multiplier := profile.HealthMultiplier
	if multiplier <= 0 {
		multiplier = DefaultHealthMultiplier
	}
	age := int(math.Floor(BaseLifeExpectancy * multiplier))
	if floor := profile.CurrentAge + 2; age < floor {
		age = floor
	}
	return age
}

// EvaluateRisk walks every path up to the mortality-adjusted horizon and
// counts first-touch ruin: a path fails the first year its wealth is at or
// below zero and is not checked further (insolvency is absorbing upstream, so
// a failed path stays at zero anyway). The result is a pass/fail ruin
// probability, not an expected-shortfall metric.
func (a *LongevityAssessor) EvaluateRisk(ensemble *Ensemble, profile domain.MortalityProfile) domain.RiskAssessment {
	deathAge := ExpectedDeathAge(profile)

	yearsToLive := deathAge - profile.CurrentAge
	if capped := MaxAge - profile.CurrentAge; yearsToLive > capped {
		yearsToLive = capped
	}
	if yearsToLive < 0 {
		yearsToLive = 0
	}

	if ensemble == nil || ensemble.Paths() == 0 {
		// Degenerate input: no data means no demonstrated solvency.
		return domain.RiskAssessment{
			SuccessRate:        decimal.Zero,
			LongevityRiskScore: hundred,
			ExpectedDeathAge:   deathAge,
			YearsReviewed:      0,
		}
	}

	horizon := yearsToLive
	if horizon > ensemble.Years() {
		horizon = ensemble.Years()
	}

	total := ensemble.Paths()
	failures := 0
	for i := 0; i < total; i++ {
		path := ensemble.Path(i)
		for year := 1; year <= horizon; year++ {
			if path[year] <= 0 {
				failures++
				break
			}
		}
	}

	successRate := decimal.NewFromInt(int64(total - failures)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred)

	a.Logger.Debugf("longevity: paths=%d failures=%d horizon=%d deathAge=%d", total, failures, horizon, deathAge)

	// The score is computed as the exact complement so the two always sum
	// to 100.
	return domain.RiskAssessment{
		SuccessRate:        successRate,
		LongevityRiskScore: hundred.Sub(successRate),
		ExpectedDeathAge:   deathAge,
		YearsReviewed:      horizon,
	}
}
