package simulation

import (
	"sort"

	"github.com/finsim/wealth-projector/internal/domain"
)

// DefaultPercentiles are the conventional low/median/high bands.
var DefaultPercentiles = []int{10, 50, 90}

// ExtractPercentiles collapses the ensemble into per-year percentile bands.
// For each year index the path values are sorted ascending and the order
// statistic at floor(N*p/100) is taken; ties and discreteness are expected
// and no interpolation is applied. An empty ensemble yields a "no data"
// sentinel rather than an error, since callers may probe before data exists.
func ExtractPercentiles(ensemble *Ensemble, percentiles ...int) domain.PercentileBands {
	if len(percentiles) == 0 {
		percentiles = DefaultPercentiles
	}
	if ensemble == nil || ensemble.Paths() == 0 {
		return domain.PercentileBands{}
	}

	n := ensemble.Paths()
	years := ensemble.Years()

	bands := domain.PercentileBands{
		Percentiles: append([]int(nil), percentiles...),
		Values:      make(map[int][]float64, len(percentiles)),
	}
	for _, p := range percentiles {
		bands.Values[p] = make([]float64, years+1)
	}

	column := make([]float64, n)
	for year := 0; year <= years; year++ {
		column = ensemble.YearColumn(year, column)
		sort.Float64s(column)
		for _, p := range percentiles {
			idx := n * p / 100
			if idx >= n {
				idx = n - 1
			}
			if idx < 0 {
				idx = 0
			}
			bands.Values[p][year] = column[idx]
		}
	}
	return bands
}
