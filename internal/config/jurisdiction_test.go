package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJurisdictionLookupFallsBackToDefaults(t *testing.T) {
	table := DefaultJurisdictionTable()

	params := table.Lookup("nowhere")
	assert.True(t, params.ExemptionThreshold.Equal(DefaultExemptionThreshold))
	assert.True(t, params.TaxRate.Equal(DefaultTopTaxRate))

	// A nil table behaves the same; missing upstream data never fails a run.
	var nilTable *JurisdictionTable
	params = nilTable.Lookup("anywhere")
	assert.True(t, params.ExemptionThreshold.Equal(DefaultExemptionThreshold))
}

func TestLoadJurisdictions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jurisdictions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
federal:
  exemption_threshold: 13610000
  top_rate: 0.40
oregon:
  exemption_threshold: 1000000
  top_rate: 0.16
`), 0o644))

	table, err := LoadJurisdictions(path)
	require.NoError(t, err)

	oregon := table.Lookup("Oregon")
	assert.True(t, oregon.ExemptionThreshold.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, oregon.TaxRate.Equal(decimal.NewFromFloat(0.16)))

	unknown := table.Lookup("mars")
	assert.True(t, unknown.ExemptionThreshold.Equal(DefaultExemptionThreshold))
}

func TestLoadJurisdictionsMissingFile(t *testing.T) {
	table, err := LoadJurisdictions(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.NotNil(t, table)
	params := table.Lookup("federal")
	assert.True(t, params.ExemptionThreshold.Equal(DefaultExemptionThreshold))
}
