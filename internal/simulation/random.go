package simulation

import (
	"math"
	"math/rand"
	"time"
)

// NormalSource produces standard-normal samples. It is injected as a
// capability rather than reached for globally so tests can fix a seed while
// production runs stay random. Implementations are not safe for concurrent
// use; the orchestrator gives each worker its own source.
type NormalSource interface {
	// StandardNormal returns one sample from N(0,1).
	StandardNormal() float64
}

type boxMullerSource struct {
	rng *rand.Rand
}

// NewNormalSource creates a seedable normal source backed by a Box-Muller
// transform. A zero seed selects a time-based seed.
func NewNormalSource(seed int64) NormalSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &boxMullerSource{rng: rand.New(rand.NewSource(seed))}
}

// StandardNormal converts two uniform draws into a normal sample via the
// Box-Muller transform. The first draw is resampled while exactly zero to
// avoid the logarithm singularity.
func (s *boxMullerSource) StandardNormal() float64 {
	u1 := s.rng.Float64()
	for u1 == 0 {
		u1 = s.rng.Float64()
	}
	u2 := s.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
