package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsim/wealth-projector/internal/batch"
	"github.com/finsim/wealth-projector/internal/config"
	"github.com/finsim/wealth-projector/internal/domain"
	"github.com/finsim/wealth-projector/internal/simulation"
)

// TestFullPipeline exercises the whole chain the way the nightly batch does:
// YAML input -> validation/defaults -> ensemble -> bands -> risk -> estate ->
// persisted summary.
func TestFullPipeline(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "user.yaml")
	require.NoError(t, os.WriteFile(inputPath, []byte(`
user_id: integration-user
starting_wealth: 1000000
years: 30
annual_withdrawal: 40000
growth_asset_ratio: 0.6
current_age: 55
ensemble_size: 2000
`), 0o644))

	parser := config.NewInputParser()
	user, err := parser.LoadUser(inputPath)
	require.NoError(t, err)

	engine := simulation.NewEngine(simulation.EngineConfig{
		EnsembleSize: user.EnsembleSize,
		Seed:         2718,
	})

	summary, err := engine.Project(context.Background(),
		user.ToProjectionInput(config.DefaultAssumptions(), config.DefaultJurisdictionTable()))
	require.NoError(t, err)

	// Shape and ordering properties over the bands.
	low, mid, high := summary.Bands.Band(10), summary.Bands.Band(50), summary.Bands.Band(90)
	require.Len(t, mid, 31)
	assert.Equal(t, 1000000.0, mid[0])
	assert.GreaterOrEqual(t, mid[30], 0.0)
	for year := range mid {
		assert.LessOrEqual(t, low[year], mid[year])
		assert.LessOrEqual(t, mid[year], high[year])
	}

	// Risk score invariants.
	hundred := decimal.NewFromInt(100)
	assert.True(t, summary.Risk.SuccessRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, summary.Risk.SuccessRate.LessThanOrEqual(hundred))
	assert.True(t, summary.Risk.SuccessRate.Add(summary.Risk.LongevityRiskScore).Equal(hundred))

	// Monetary outputs stay non-negative.
	assert.False(t, summary.Estate.SurvivingWealth.IsNegative())
	assert.False(t, summary.Estate.ExpectedTaxBurdenAtDeath.IsNegative())
}

func TestBatchPersistsSummaries(t *testing.T) {
	resultsDir := t.TempDir()

	users := []config.UserInput{
		{UserID: "u1", StartingWealth: 800000, Years: 20, AnnualWithdrawal: 30000, GrowthAssetRatio: 0.7, CurrentAge: 58, EnsembleSize: 500},
		{UserID: "u2", StartingWealth: 1200000, Years: 35, AnnualWithdrawal: 45000, GrowthAssetRatio: 0.4, CurrentAge: 50, EnsembleSize: 500},
	}

	runner := batch.NewRunner(config.DefaultAssumptions(), config.DefaultJurisdictionTable(), batch.NewFileStore(resultsDir), nil)
	runner.Seed = 99

	report, err := runner.Run(context.Background(), users)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 0, report.Failed)

	for _, id := range []string{"u1", "u2"} {
		entries, err := os.ReadDir(filepath.Join(resultsDir, id))
		require.NoError(t, err)
		require.Len(t, entries, 1)

		data, err := os.ReadFile(filepath.Join(resultsDir, id, entries[0].Name()))
		require.NoError(t, err)

		var summary domain.ProjectionSummary
		require.NoError(t, json.Unmarshal(data, &summary))
		assert.Equal(t, id, summary.UserID)
		assert.Equal(t, 500, summary.EnsembleSize)
		assert.False(t, summary.Bands.NoData())
	}
}
