package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/finsim/wealth-projector/internal/domain"
)

// Engine chains the full projection pipeline for one household: path
// generation, ensemble orchestration, percentile extraction, longevity risk
// assessment and estate tax evaluation. All configuration is explicit; there
// are no process-wide defaults hiding behind singletons.
type Engine struct {
	Orchestrator *Orchestrator
	Assessor     *LongevityAssessor
	Percentiles  []int
	Logger       Logger
}

// EngineConfig holds construction options for the projection engine.
type EngineConfig struct {
	EnsembleSize int
	Workers      int
	Seed         int64
	Percentiles  []int
	Logger       Logger
}

// NewEngine creates a projection engine. Zero-value config fields select the
// defaults: 10,000 paths, one worker per CPU, time-based seed and 10/50/90
// bands.
func NewEngine(cfg EngineConfig) *Engine {
	var logger Logger = cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	percentiles := cfg.Percentiles
	if len(percentiles) == 0 {
		percentiles = DefaultPercentiles
	}
	return &Engine{
		Orchestrator: NewOrchestrator(OrchestratorConfig{
			EnsembleSize: cfg.EnsembleSize,
			Workers:      cfg.Workers,
			Seed:         cfg.Seed,
			Logger:       logger,
		}),
		Assessor:    NewLongevityAssessor(logger),
		Percentiles: percentiles,
		Logger:      logger,
	}
}

// SetLogger replaces the engine logger. A nil logger selects the no-op one.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.Orchestrator.Logger = l
	e.Assessor.Logger = l
}

// Project runs the full pipeline and assembles the per-user summary. The
// individual trajectories are discarded once the aggregates are derived; only
// the summary outlives the call.
func (e *Engine) Project(ctx context.Context, input domain.ProjectionInput) (*domain.ProjectionSummary, error) {
	ensemble, err := e.Orchestrator.RunEnsemble(ctx, input.Parameters, input.Assets)
	if err != nil {
		return nil, fmt.Errorf("run ensemble: %w", err)
	}

	bands := ExtractPercentiles(ensemble, e.Percentiles...)
	risk := e.Assessor.EvaluateRisk(ensemble, input.Mortality)

	deathOffset := risk.ExpectedDeathAge - input.Mortality.CurrentAge
	estate := EvaluateBreach(bands.Median(), deathOffset, input.Tax)

	e.Logger.Infof("projection complete: paths=%d years=%d success=%s%%",
		ensemble.Paths(), input.Parameters.Years, risk.SuccessRate.StringFixed(1))

	return &domain.ProjectionSummary{
		Parameters:   input.Parameters,
		EnsembleSize: ensemble.Paths(),
		Risk:         risk,
		Estate:       estate,
		Bands:        bands,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
