// Package align joins independently sourced return series into one
// row-complete dataset. The policy is strict date-intersection followed by a
// finiteness filter; holiday mismatches are dropped, never forward-filled, so
// a run is reproducible from the raw bars alone.
package align

import (
	"fmt"
	"math"

	"betatrack/models"
)

// MinRows is the smallest dataset that leaves at least one residual degree of
// freedom for a slope+intercept fit.
const MinRows = 3

// InsufficientDataError reports an aligned row count too small to regress on
type InsufficientDataError struct {
	Rows int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("aligned dataset has %d rows, need at least %d", e.Rows, MinRows)
}

// Series is one named return series entering alignment
type Series struct {
	Name    string
	Returns models.ReturnSeries
}

// Build intersects the date sets of all input series in ascending order, then
// drops every row holding a NaN or infinite value in any column. The inputs
// are read only; the returned dataset guarantees one finite value per column
// per row, which the regression engine relies on without re-checking.
func Build(series []Series) (*models.AlignedDataset, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("alignment needs at least 2 series, got %d", len(series))
	}

	byDate := make([]map[string]float64, len(series))
	columns := make([]string, len(series))
	for i, s := range series {
		columns[i] = s.Name
		m := make(map[string]float64, len(s.Returns))
		for _, p := range s.Returns {
			m[p.Date] = p.Value
		}
		byDate[i] = m
	}

	dataset := &models.AlignedDataset{Columns: columns}

	// Walking the first series keeps dates strictly increasing; the other
	// series only gate membership.
	for _, p := range series[0].Returns {
		row := make([]float64, len(series))
		keep := true
		for i := range series {
			v, ok := byDate[i][p.Date]
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				keep = false
				break
			}
			row[i] = v
		}
		if !keep {
			continue
		}
		dataset.Dates = append(dataset.Dates, p.Date)
		dataset.Rows = append(dataset.Rows, row)
	}

	if len(dataset.Rows) < MinRows {
		return nil, &InsufficientDataError{Rows: len(dataset.Rows)}
	}

	return dataset, nil
}
