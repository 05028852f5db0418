package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finsim/wealth-projector/internal/domain"
)

// Statutory fallbacks when no user-specific bracket exists: the federal
// estate exemption and the flat top-bracket rate.
var (
	DefaultExemptionThreshold = decimal.NewFromInt(13610000)
	DefaultTopTaxRate         = decimal.NewFromFloat(0.40)
)

// jurisdictionEntry is one row of the YAML tax table.
type jurisdictionEntry struct {
	ExemptionThreshold float64 `yaml:"exemption_threshold"`
	TopRate            float64 `yaml:"top_rate"`
}

// JurisdictionTable maps jurisdiction codes to estate-tax parameters.
// Lookups for unknown codes fall back to the statutory defaults; an
// incomplete table never fails a run.
type JurisdictionTable struct {
	entries map[string]domain.EstateTaxParameters
}

// NewJurisdictionTable builds a table from explicit entries.
func NewJurisdictionTable(entries map[string]domain.EstateTaxParameters) *JurisdictionTable {
	normalized := make(map[string]domain.EstateTaxParameters, len(entries))
	for code, params := range entries {
		normalized[strings.ToLower(code)] = params
	}
	return &JurisdictionTable{entries: normalized}
}

// DefaultJurisdictionTable returns a table with only the statutory defaults.
func DefaultJurisdictionTable() *JurisdictionTable {
	return NewJurisdictionTable(nil)
}

// LoadJurisdictions reads the per-jurisdiction tax table from YAML. An empty
// path returns the default table.
func LoadJurisdictions(path string) (*JurisdictionTable, error) {
	if path == "" {
		return DefaultJurisdictionTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultJurisdictionTable(), fmt.Errorf("failed to read jurisdictions file %s: %w", path, err)
	}

	var raw map[string]jurisdictionEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return DefaultJurisdictionTable(), fmt.Errorf("failed to parse jurisdictions YAML: %w", err)
	}

	entries := make(map[string]domain.EstateTaxParameters, len(raw))
	for code, entry := range raw {
		entries[code] = domain.EstateTaxParameters{
			ExemptionThreshold: decimal.NewFromFloat(entry.ExemptionThreshold),
			TaxRate:            decimal.NewFromFloat(entry.TopRate),
		}
	}
	return NewJurisdictionTable(entries), nil
}

// Lookup resolves the estate-tax parameters for a jurisdiction code, falling
// back to the statutory default exemption and flat top-bracket rate.
func (t *JurisdictionTable) Lookup(code string) domain.EstateTaxParameters {
	if t != nil {
		if params, ok := t.entries[strings.ToLower(code)]; ok {
			return params
		}
	}
	return domain.EstateTaxParameters{
		ExemptionThreshold: DefaultExemptionThreshold,
		TaxRate:            DefaultTopTaxRate,
	}
}
