package simulation

// Ensemble is a fixed-size collection of wealth trajectories sharing one set
// of simulation parameters. Storage is columnar-friendly: one flat float64
// block of paths x (years+1) values, row-major, so percentile extraction can
// gather a year across paths without chasing nested slices.
type Ensemble struct {
	paths  int
	years  int
	values []float64
}

// NewEnsemble allocates an ensemble of the given shape. Every trajectory has
// length years+1, index 0 being the starting wealth.
func NewEnsemble(paths, years int) *Ensemble {
	if paths < 0 {
		paths = 0
	}
	if years < 0 {
		years = 0
	}
	return &Ensemble{
		paths:  paths,
		years:  years,
		values: make([]float64, paths*(years+1)),
	}
}

// Paths returns the number of trajectories.
func (e *Ensemble) Paths() int { return e.paths }

// Years returns the simulation horizon; trajectories have Years()+1 entries.
func (e *Ensemble) Years() int { return e.years }

// Path returns the mutable trajectory slice for path i. The slice aliases the
// ensemble's backing array; no two paths overlap, so concurrent writers on
// distinct paths never race.
func (e *Ensemble) Path(i int) []float64 {
	stride := e.years + 1
	return e.values[i*stride : (i+1)*stride]
}

// At returns the wealth of path i at year index y.
func (e *Ensemble) At(i, y int) float64 {
	return e.values[i*(e.years+1)+y]
}

// YearColumn gathers every path's value at year index y into dst, which is
// grown as needed, and returns it.
func (e *Ensemble) YearColumn(y int, dst []float64) []float64 {
	if cap(dst) < e.paths {
		dst = make([]float64, e.paths)
	}
	dst = dst[:e.paths]
	stride := e.years + 1
	for i := 0; i < e.paths; i++ {
		dst[i] = e.values[i*stride+y]
	}
	return dst
}
