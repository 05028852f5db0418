package simulation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finsim/wealth-projector/internal/domain"
)

func TestExpectedDeathAge(t *testing.T) {
	cases := []struct {
		name       string
		age        int
		multiplier float64
		want       int
	}{
		{"baseline", 55, 1.0, 85},
		{"healthy", 55, 1.1, 93},
		{"poor health", 55, 0.9, 76},
		{"floor truncation", 55, 1.05, 89}, // floor(89.25)
		{"clamped near death age", 84, 1.0, 86},
		{"clamped above", 90, 1.0, 92},
		{"missing multiplier falls back", 55, 0, 85},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExpectedDeathAge(domain.MortalityProfile{CurrentAge: tc.age, HealthMultiplier: tc.multiplier})
			if got != tc.want {
				t.Errorf("expected death age %d, got %d", tc.want, got)
			}
		})
	}
}

func TestEvaluateRiskFirstTouchRuin(t *testing.T) {
	// Four paths over 40 years: two stay solvent, one fails at year 3, one
	// fails exactly at the horizon boundary.
	solvent := make([]float64, 41)
	for i := range solvent {
		solvent[i] = 500000
	}
	earlyFail := make([]float64, 41)
	for i := range earlyFail {
		if i < 3 {
			earlyFail[i] = 100000
		}
	}
	lateFail := make([]float64, 41)
	for i := range lateFail {
		if i < 35 {
			lateFail[i] = 200000
		}
	}

	e := buildEnsemble(t, [][]float64{solvent, earlyFail, solvent, lateFail})

	assessor := NewLongevityAssessor(nil)
	// Age 55, multiplier 1.0: death at 85, 30 years reviewed. The path that
	// fails at year 35 is outside the horizon and counts as solvent.
	risk := assessor.EvaluateRisk(e, domain.MortalityProfile{CurrentAge: 55, HealthMultiplier: 1.0})

	if risk.ExpectedDeathAge != 85 {
		t.Errorf("expected death age 85, got %d", risk.ExpectedDeathAge)
	}
	if risk.YearsReviewed != 30 {
		t.Errorf("expected 30 years reviewed, got %d", risk.YearsReviewed)
	}
	if !risk.SuccessRate.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected success rate 75, got %s", risk.SuccessRate)
	}
	if !risk.LongevityRiskScore.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected risk score 25, got %s", risk.LongevityRiskScore)
	}
}

func TestEvaluateRiskComplementIsExact(t *testing.T) {
	// 3 paths with one failure: 66.66...% does not terminate, but the score
	// must still be the exact complement.
	fail := []float64{100, 0, 0}
	ok := []float64{100, 100, 100}
	e := buildEnsemble(t, [][]float64{ok, fail, ok})

	assessor := NewLongevityAssessor(nil)
	risk := assessor.EvaluateRisk(e, domain.MortalityProfile{CurrentAge: 55, HealthMultiplier: 1.0})

	sum := risk.SuccessRate.Add(risk.LongevityRiskScore)
	if !sum.Equal(decimal.NewFromInt(100)) {
		t.Errorf("success rate + risk score must equal 100 exactly, got %s", sum)
	}
}

func TestEvaluateRiskHorizonCappedByMaxAge(t *testing.T) {
	path := make([]float64, 51)
	for i := range path {
		path[i] = 100000
	}
	e := buildEnsemble(t, [][]float64{path})

	assessor := NewLongevityAssessor(nil)
	// Multiplier 1.3 puts the death age at 110; the max-age cap limits the
	// review window to 100 - 75 = 25 years.
	risk := assessor.EvaluateRisk(e, domain.MortalityProfile{CurrentAge: 75, HealthMultiplier: 1.3})

	if risk.ExpectedDeathAge != 110 {
		t.Errorf("expected death age 110, got %d", risk.ExpectedDeathAge)
	}
	if risk.YearsReviewed != 25 {
		t.Errorf("expected 25 years reviewed, got %d", risk.YearsReviewed)
	}
}

func TestEvaluateRiskEmptyEnsemble(t *testing.T) {
	assessor := NewLongevityAssessor(nil)
	risk := assessor.EvaluateRisk(NewEnsemble(0, 10), domain.MortalityProfile{CurrentAge: 55, HealthMultiplier: 1.0})

	if !risk.SuccessRate.IsZero() {
		t.Errorf("expected zero success rate for empty ensemble, got %s", risk.SuccessRate)
	}
	sum := risk.SuccessRate.Add(risk.LongevityRiskScore)
	if !sum.Equal(decimal.NewFromInt(100)) {
		t.Errorf("complement property must hold even for empty ensembles, got %s", sum)
	}
	if risk.YearsReviewed != 0 {
		t.Errorf("expected 0 years reviewed, got %d", risk.YearsReviewed)
	}
}
