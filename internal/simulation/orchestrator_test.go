package simulation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finsim/wealth-projector/internal/domain"
)

func testParams(years int) domain.SimulationParameters {
	return domain.SimulationParameters{
		StartingWealth:   decimal.NewFromInt(1000000),
		Years:            years,
		AnnualWithdrawal: decimal.NewFromInt(40000),
		GrowthAssetRatio: 0.6,
	}
}

func testAssets() domain.AssetProcessConfig {
	return domain.AssetProcessConfig{
		Growth: domain.GrowthProcessConfig{ExpectedReturn: 0.07, Volatility: 0.15},
		Income: domain.IncomeProcessConfig{InitialRate: 0.03, ReversionSpeed: 0.25, LongRunMean: 0.035, RateVolatility: 0.01},
	}
}

func TestRunEnsembleShape(t *testing.T) {
	o := NewOrchestrator(OrchestratorConfig{EnsembleSize: 200, Seed: 42})

	params := testParams(30)
	ensemble, err := o.RunEnsemble(context.Background(), params, testAssets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ensemble.Paths() != 200 {
		t.Fatalf("expected 200 paths, got %d", ensemble.Paths())
	}
	if ensemble.Years() != 30 {
		t.Fatalf("expected 30 years, got %d", ensemble.Years())
	}
	start := params.StartingWealth.InexactFloat64()
	for i := 0; i < ensemble.Paths(); i++ {
		path := ensemble.Path(i)
		if len(path) != 31 {
			t.Fatalf("path %d: expected 31 values, got %d", i, len(path))
		}
		if path[0] != start {
			t.Errorf("path %d: expected element 0 = %v, got %v", i, start, path[0])
		}
	}
}

func TestInsolvencyIsAbsorbing(t *testing.T) {
	// A withdrawal far above any plausible return forces early ruin.
	o := NewOrchestrator(OrchestratorConfig{EnsembleSize: 100, Seed: 7})

	params := domain.SimulationParameters{
		StartingWealth:   decimal.NewFromInt(100000),
		Years:            20,
		AnnualWithdrawal: decimal.NewFromInt(60000),
		GrowthAssetRatio: 0.5,
	}
	ensemble, err := o.RunEnsemble(context.Background(), params, testAssets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sawRuin := false
	for i := 0; i < ensemble.Paths(); i++ {
		path := ensemble.Path(i)
		ruined := false
		for y := 1; y < len(path); y++ {
			if path[y] == 0 {
				ruined = true
				sawRuin = true
			} else if ruined {
				t.Fatalf("path %d recovered after insolvency at year %d: %v", i, y, path[y])
			}
			if path[y] < 0 {
				t.Fatalf("path %d has negative wealth at year %d: %v", i, y, path[y])
			}
		}
	}
	if !sawRuin {
		t.Error("expected at least one insolvent path under a 60% withdrawal rate")
	}
}

func TestExtremeAllocationRatios(t *testing.T) {
	for _, ratio := range []float64{0, 1} {
		o := NewOrchestrator(OrchestratorConfig{EnsembleSize: 50, Seed: 13})
		params := testParams(10)
		params.GrowthAssetRatio = ratio

		ensemble, err := o.RunEnsemble(context.Background(), params, testAssets())
		if err != nil {
			t.Fatalf("ratio %v: unexpected error: %v", ratio, err)
		}
		for i := 0; i < ensemble.Paths(); i++ {
			for y, v := range ensemble.Path(i) {
				if v < 0 {
					t.Fatalf("ratio %v: path %d year %d negative: %v", ratio, i, y, v)
				}
			}
		}
	}
}

func TestZeroVolatilityDeterministicEnsemble(t *testing.T) {
	o := NewOrchestrator(OrchestratorConfig{EnsembleSize: 10, Seed: 1})
	assets := domain.AssetProcessConfig{
		Growth: domain.GrowthProcessConfig{ExpectedReturn: 0.05, Volatility: 0},
		Income: domain.IncomeProcessConfig{InitialRate: 0.03, ReversionSpeed: 0.2, LongRunMean: 0.03, RateVolatility: 0},
	}

	ensemble, err := o.RunEnsemble(context.Background(), testParams(15), assets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := ensemble.Path(0)
	for i := 1; i < ensemble.Paths(); i++ {
		path := ensemble.Path(i)
		for y := range path {
			if path[y] != first[y] {
				t.Fatalf("path %d diverges at year %d with zero volatility: %v vs %v", i, y, path[y], first[y])
			}
		}
	}
}

func TestRunEnsembleValidationErrors(t *testing.T) {
	o := NewOrchestrator(OrchestratorConfig{EnsembleSize: 10, Seed: 1})

	bad := testParams(0)
	if _, err := o.RunEnsemble(context.Background(), bad, testAssets()); err == nil {
		t.Error("expected error for zero years")
	}

	bad = testParams(10)
	bad.GrowthAssetRatio = 1.5
	if _, err := o.RunEnsemble(context.Background(), bad, testAssets()); err == nil {
		t.Error("expected error for ratio above 1")
	}

	assets := testAssets()
	assets.Growth.Volatility = -0.1
	if _, err := o.RunEnsemble(context.Background(), testParams(10), assets); err == nil {
		t.Error("expected error for negative volatility")
	}
}

func TestRunEnsembleDegenerateInputs(t *testing.T) {
	// Zero ensemble size is valid-but-trivial: an empty ensemble, no error.
	o := NewOrchestrator(OrchestratorConfig{Seed: 1})
	o.EnsembleSize = 0
	ensemble, err := o.RunEnsemble(context.Background(), testParams(10), testAssets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ensemble.Paths() != 0 {
		t.Errorf("expected empty ensemble, got %d paths", ensemble.Paths())
	}

	// Zero starting wealth with a positive withdrawal collapses to zeros.
	o = NewOrchestrator(OrchestratorConfig{EnsembleSize: 5, Seed: 1})
	params := testParams(10)
	params.StartingWealth = decimal.Zero
	ensemble, err = o.RunEnsemble(context.Background(), params, testAssets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < ensemble.Paths(); i++ {
		for y, v := range ensemble.Path(i) {
			if v != 0 {
				t.Fatalf("path %d year %d: expected 0 wealth, got %v", i, y, v)
			}
		}
	}
}

func TestRunEnsembleHonorsCancellation(t *testing.T) {
	o := NewOrchestrator(OrchestratorConfig{EnsembleSize: 10000, Seed: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.RunEnsemble(ctx, testParams(40), testAssets()); err == nil {
		t.Error("expected error from cancelled context")
	}
}
