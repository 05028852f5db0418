package simulation

import (
	"fmt"
	"math"
)

// PathGenerator produces individual stochastic trajectories for the two asset
// classes: an exact-solution geometric Brownian motion for the growth asset
// and an Euler-Maruyama discretized Vasicek process for the income rate.
type PathGenerator struct {
	normals NormalSource
}

// NewPathGenerator creates a generator drawing from the given normal source.
func NewPathGenerator(src NormalSource) *PathGenerator {
	return &PathGenerator{normals: src}
}

// StandardNormal returns one standard-normal draw from the injected source.
func (g *PathGenerator) StandardNormal() float64 {
	return g.normals.StandardNormal()
}

func validateSteps(years, stepsPerYear int, volatility float64) error {
	if years <= 0 {
		return fmt.Errorf("years must be positive, got %d", years)
	}
	if stepsPerYear <= 0 {
		return fmt.Errorf("steps per year must be positive, got %d", stepsPerYear)
	}
	if volatility < 0 {
		return fmt.Errorf("volatility cannot be negative, got %v", volatility)
	}
	return nil
}

// GrowthPath produces a geometric Brownian motion path of length
// years*stepsPerYear+1 starting at initialValue. Each step applies the exact
// GBM update exp((mu - sigma^2/2)*dt + sigma*sqrt(dt)*Z), so every value
// stays strictly positive for a positive initial value. With zero volatility
// the path degenerates to deterministic drift-only compounding.
func (g *PathGenerator) GrowthPath(initialValue, expectedReturn, volatility float64, years, stepsPerYear int) ([]float64, error) {
	if err := validateSteps(years, stepsPerYear, volatility); err != nil {
		return nil, fmt.Errorf("growth path: %w", err)
	}

	steps := years * stepsPerYear
	dt := 1.0 / float64(stepsPerYear)
	drift := (expectedReturn - 0.5*volatility*volatility) * dt
	diffusion := volatility * math.Sqrt(dt)

	path := make([]float64, steps+1)
	path[0] = initialValue
	for i := 1; i <= steps; i++ {
		z := g.normals.StandardNormal()
		path[i] = path[i-1] * math.Exp(drift+diffusion*z)
	}
	return path, nil
}

// RatePath produces a mean-reverting rate path of length years*stepsPerYear+1
// using the Euler-Maruyama discretization of the Vasicek SDE:
// r += speed*(mean - r)*dt + sigma*sqrt(dt)*Z. Rates may go negative; that is
// a property of the process and is deliberately not clamped.
func (g *PathGenerator) RatePath(initialRate, reversionSpeed, longRunMean, rateVolatility float64, years, stepsPerYear int) ([]float64, error) {
	if err := validateSteps(years, stepsPerYear, rateVolatility); err != nil {
		return nil, fmt.Errorf("rate path: %w", err)
	}

	steps := years * stepsPerYear
	dt := 1.0 / float64(stepsPerYear)
	diffusion := rateVolatility * math.Sqrt(dt)

	path := make([]float64, steps+1)
	path[0] = initialRate
	for i := 1; i <= steps; i++ {
		z := g.normals.StandardNormal()
		prev := path[i-1]
		path[i] = prev + reversionSpeed*(longRunMean-prev)*dt + diffusion*z
	}
	return path, nil
}
