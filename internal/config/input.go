package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finsim/wealth-projector/internal/domain"
)

var validate = validator.New()

// UserInput is one account holder's persisted settings as read by the batch
// driver. Declarative bounds live in the validate tags; defaults are applied
// before validation so an incomplete record still yields a best-effort run.
type UserInput struct {
	UserID           string  `yaml:"user_id" validate:"required"`
	StartingWealth   float64 `yaml:"starting_wealth" validate:"gte=0"`
	Years            int     `yaml:"years" default:"30" validate:"gt=0,lte=80"`
	AnnualWithdrawal float64 `yaml:"annual_withdrawal" validate:"gte=0"`
	GrowthAssetRatio float64 `yaml:"growth_asset_ratio" default:"0.6" validate:"gte=0,lte=1"`
	CurrentAge       int     `yaml:"current_age" validate:"gt=0,lt=100"`
	HealthMultiplier float64 `yaml:"health_multiplier" default:"1.0"`
	Jurisdiction     string  `yaml:"jurisdiction"`
	EnsembleSize     int     `yaml:"ensemble_size" default:"10000" validate:"gte=0"`
}

// BatchInput is the nightly batch file: every user to re-evaluate.
type BatchInput struct {
	Users []UserInput `yaml:"users"`
}

// InputParser loads and validates projection input files.
type InputParser struct{}

// NewInputParser creates an input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadUser loads a single-user YAML input file.
func (ip *InputParser) LoadUser(filename string) (*UserInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var user UserInput
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateUser(&user); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &user, nil
}

// LoadBatch loads a multi-user YAML batch file. Validation here covers the
// file shape only; per-user validation happens inside the batch runner so one
// bad record cannot abort the whole batch.
func (ip *InputParser) LoadBatch(filename string) (*BatchInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var batch BatchInput
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(batch.Users) == 0 {
		return nil, fmt.Errorf("batch file %s contains no users", filename)
	}
	return &batch, nil
}

// ValidateUser applies defaults and validates a single user record.
func (ip *InputParser) ValidateUser(user *UserInput) error {
	if err := defaults.Set(user); err != nil {
		return fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := validate.Struct(user); err != nil {
		return err
	}
	// Health multiplier has a documented fallback instead of a hard bound.
	if user.HealthMultiplier <= 0 {
		user.HealthMultiplier = 1.0
	}
	return nil
}

// ToProjectionInput assembles the engine input from a validated user record,
// market assumptions and the jurisdiction tax table.
func (user *UserInput) ToProjectionInput(assets domain.AssetProcessConfig, taxes *JurisdictionTable) domain.ProjectionInput {
	return domain.ProjectionInput{
		Parameters: domain.SimulationParameters{
			StartingWealth:   decimal.NewFromFloat(user.StartingWealth),
			Years:            user.Years,
			AnnualWithdrawal: decimal.NewFromFloat(user.AnnualWithdrawal),
			GrowthAssetRatio: user.GrowthAssetRatio,
		},
		Assets: assets,
		Mortality: domain.MortalityProfile{
			CurrentAge:       user.CurrentAge,
			HealthMultiplier: user.HealthMultiplier,
		},
		Tax: taxes.Lookup(user.Jurisdiction),
	}
}

// ExampleUser returns a starter single-user input.
func ExampleUser() *UserInput {
	return &UserInput{
		UserID:           "sample-user",
		StartingWealth:   1000000,
		Years:            30,
		AnnualWithdrawal: 40000,
		GrowthAssetRatio: 0.6,
		CurrentAge:       55,
		HealthMultiplier: 1.0,
		Jurisdiction:     "federal",
		EnsembleSize:     10000,
	}
}
