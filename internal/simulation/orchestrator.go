package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finsim/wealth-projector/internal/domain"
)

// DefaultEnsembleSize is the conventional number of paths per run.
const DefaultEnsembleSize = 10000

// Orchestrator combines the two asset processes per path into a blended
// wealth trajectory under periodic withdrawal and rebalancing, and runs the
// full ensemble. Paths are embarrassingly parallel: work is fanned out across
// workers and gathered behind a barrier before any aggregation.
type Orchestrator struct {
	EnsembleSize int
	Workers      int
	Seed         int64
	Logger       Logger
}

// OrchestratorConfig holds construction options for the orchestrator.
// Zero values select the defaults: 10,000 paths, one worker per CPU and a
// time-based seed.
type OrchestratorConfig struct {
	EnsembleSize int
	Workers      int
	Seed         int64
	Logger       Logger
}

// NewOrchestrator creates an orchestrator from the given config.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	size := cfg.EnsembleSize
	if size == 0 {
		size = DefaultEnsembleSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var logger Logger = cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &Orchestrator{
		EnsembleSize: size,
		Workers:      workers,
		Seed:         cfg.Seed,
		Logger:       logger,
	}
}

// RunEnsemble simulates every path and returns the complete ensemble. It
// validates parameters up front (fail fast, no retries), honors context
// cancellation so one pathological user cannot stall a nightly batch, and
// treats a negative ensemble size request as empty rather than an error.
func (o *Orchestrator) RunEnsemble(ctx context.Context, params domain.SimulationParameters, assets domain.AssetProcessConfig) (*Ensemble, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("simulation parameters: %w", err)
	}
	if err := assets.Validate(); err != nil {
		return nil, fmt.Errorf("asset process config: %w", err)
	}

	size := o.EnsembleSize
	if size <= 0 {
		// Valid-but-trivial input: a well-defined empty ensemble.
		return NewEnsemble(0, params.Years), nil
	}

	ensemble := NewEnsemble(size, params.Years)

	workers := o.Workers
	if workers > size {
		workers = size
	}

	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seeder := rand.New(rand.NewSource(seed))
	workerSeeds := make([]int64, workers)
	for w := range workerSeeds {
		workerSeeds[w] = seeder.Int63()
	}

	start := time.Now()
	o.Logger.Debugf("running ensemble: paths=%d years=%d workers=%d", size, params.Years, workers)

	g, ctx := errgroup.WithContext(ctx)
	chunk := (size + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > size {
			hi = size
		}
		if lo >= hi {
			break
		}
		gen := NewPathGenerator(NewNormalSource(workerSeeds[w]))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := o.simulatePath(gen, params, assets, ensemble.Path(i)); err != nil {
					return fmt.Errorf("path %d: %w", i, err)
				}
			}
			return nil
		})
	}

	// Fan-in barrier: aggregation needs the complete ensemble.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.Logger.Debugf("ensemble complete in %s", time.Since(start))
	return ensemble, nil
}

// simulatePath walks one blended trajectory year by year. The walk is a small
// state machine: solvent until the post-withdrawal total drops to or below
// zero, then insolvent-terminal with every remaining year zero-filled.
// Insolvency is absorbing.
func (o *Orchestrator) simulatePath(gen *PathGenerator, params domain.SimulationParameters, assets domain.AssetProcessConfig, trajectory []float64) error {
	years := params.Years

	// The growth path enters the walk only through ratios of consecutive
	// values, so it is generated at unit scale.
	growth, err := gen.GrowthPath(1.0, assets.Growth.ExpectedReturn, assets.Growth.Volatility, years, 1)
	if err != nil {
		return err
	}
	rates, err := gen.RatePath(assets.Income.InitialRate, assets.Income.ReversionSpeed, assets.Income.LongRunMean, assets.Income.RateVolatility, years, 1)
	if err != nil {
		return err
	}

	startingWealth := params.StartingWealth.InexactFloat64()
	withdrawal := params.AnnualWithdrawal.InexactFloat64()

	growthBucket := startingWealth * params.GrowthAssetRatio
	incomeBucket := startingWealth - growthBucket
	trajectory[0] = startingWealth

	insolvent := false
	for year := 1; year <= years; year++ {
		if insolvent {
			trajectory[year] = 0
			continue
		}

		growthBucket *= growth[year] / growth[year-1]
		// Continuous compounding at the year's sampled rate level; the rate
		// path is not integrated within the year.
		incomeBucket *= math.Exp(rates[year])

		total := growthBucket + incomeBucket - withdrawal
		if total <= 0 {
			trajectory[year] = 0
			insolvent = true
			continue
		}

		// Rebalance the post-withdrawal total back to the target split.
		growthBucket = total * params.GrowthAssetRatio
		incomeBucket = total - growthBucket
		trajectory[year] = total
	}
	return nil
}
