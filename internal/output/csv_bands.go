package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/finsim/wealth-projector/internal/domain"
)

// BandsCSVFormatter exports the percentile bands, one row per projection year.
type BandsCSVFormatter struct{}

func (c BandsCSVFormatter) Name() string { return "csv" }

func (c BandsCSVFormatter) Format(summary *domain.ProjectionSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	percentiles := append([]int(nil), summary.Bands.Percentiles...)
	sort.Ints(percentiles)

	header := []string{"Year"}
	for _, p := range percentiles {
		header = append(header, "P"+strconv.Itoa(p))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for year := 0; year <= summary.Parameters.Years; year++ {
		row := []string{strconv.Itoa(year)}
		for _, p := range percentiles {
			band := summary.Bands.Band(p)
			if year < len(band) {
				row = append(row, strconv.FormatFloat(band[year], 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
