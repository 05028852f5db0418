package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/finsim/wealth-projector/internal/config"
	"github.com/finsim/wealth-projector/internal/domain"
	"github.com/finsim/wealth-projector/internal/simulation"
)

// DefaultUserTimeout bounds each user's projection so one pathological record
// cannot stall the nightly batch.
const DefaultUserTimeout = 2 * time.Minute

// Runner drives the nightly re-evaluation: it iterates users sequentially,
// projects each under its own deadline, isolates per-user failures and writes
// every completed summary to the result store.
type Runner struct {
	Assumptions   domain.AssetProcessConfig
	Jurisdictions *config.JurisdictionTable
	Store         ResultStore
	UserTimeout   time.Duration
	Workers       int
	Seed          int64
	Logger        simulation.Logger
}

// Report summarizes one batch run.
type Report struct {
	Processed int
	Failed    int
	Elapsed   time.Duration
}

// NewRunner creates a batch runner. A nil logger selects the no-op one; a
// zero timeout selects the default.
func NewRunner(assumptions domain.AssetProcessConfig, jurisdictions *config.JurisdictionTable, store ResultStore, logger simulation.Logger) *Runner {
	if logger == nil {
		logger = simulation.NopLogger{}
	}
	if jurisdictions == nil {
		jurisdictions = config.DefaultJurisdictionTable()
	}
	return &Runner{
		Assumptions:   assumptions,
		Jurisdictions: jurisdictions,
		Store:         store,
		UserTimeout:   DefaultUserTimeout,
		Logger:        logger,
	}
}

// Run processes every user in order. Per-user failures are logged and counted
// but never abort the batch; only a cancelled batch context stops the loop.
func (r *Runner) Run(ctx context.Context, users []config.UserInput) (Report, error) {
	start := time.Now()
	report := Report{}

	parser := config.NewInputParser()
	for i := range users {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(start)
			return report, fmt.Errorf("batch aborted after %d users: %w", report.Processed+report.Failed, err)
		}

		user := users[i]
		if err := r.runUser(ctx, parser, &user); err != nil {
			report.Failed++
			r.Logger.Errorf("user %s failed: %v", user.UserID, err)
			continue
		}
		report.Processed++
	}

	report.Elapsed = time.Since(start)
	r.Logger.Infof("batch complete: processed=%d failed=%d elapsed=%s", report.Processed, report.Failed, report.Elapsed)
	return report, nil
}

func (r *Runner) runUser(ctx context.Context, parser *config.InputParser, user *config.UserInput) error {
	if err := parser.ValidateUser(user); err != nil {
		return fmt.Errorf("validation: %w", err)
	}

	timeout := r.UserTimeout
	if timeout <= 0 {
		timeout = DefaultUserTimeout
	}
	userCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	engine := simulation.NewEngine(simulation.EngineConfig{
		EnsembleSize: user.EnsembleSize,
		Workers:      r.Workers,
		Seed:         r.Seed,
		Logger:       r.Logger,
	})

	runAt := time.Now().UTC()
	summary, err := engine.Project(userCtx, user.ToProjectionInput(r.Assumptions, r.Jurisdictions))
	if err != nil {
		return fmt.Errorf("projection: %w", err)
	}
	summary.UserID = user.UserID

	if r.Store != nil {
		if err := r.Store.Save(userCtx, user.UserID, runAt, summary); err != nil {
			return fmt.Errorf("persist: %w", err)
		}
	}

	r.Logger.Debugf("user %s: success=%s%% risk=%s deathAge=%d",
		user.UserID, summary.Risk.SuccessRate.StringFixed(1),
		summary.Risk.LongevityRiskScore.StringFixed(1), summary.Risk.ExpectedDeathAge)
	return nil
}
