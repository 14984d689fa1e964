package models

// PriceBar represents a single daily price bar for one symbol
type PriceBar struct {
	Date  string  `json:"date"` // ISO format (YYYY-MM-DD), lexical order matches chronological
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Close float64 `json:"close"`
}

// TwelveResponse represents the API response from Twelve Data
type TwelveResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string  `json:"datetime"`
		Open     float64 `json:"open,string"`
		High     float64 `json:"high,string"`
		Low      float64 `json:"low,string"`
		Close    float64 `json:"close,string"`
	} `json:"values"`
	Status string `json:"status"`
}

// ReturnPoint is one dated discrete return
type ReturnPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ReturnSeries is an ordered sequence of dated returns, dates strictly increasing.
// A non-finite Value marks an undefined return (previous price was zero); it is
// carried through and filtered out during alignment, never raised as an error.
type ReturnSeries []ReturnPoint

// AlignedDataset holds row-complete return observations across channels.
// Every retained row has one finite value per column and dates are strictly
// increasing. Column count is fixed once built.
type AlignedDataset struct {
	Dates   []string    `json:"dates"`
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"` // len(Rows[i]) == len(Columns)
}

// NumRows returns the number of aligned observations
func (d *AlignedDataset) NumRows() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of a named column, or -1 if absent
func (d *AlignedDataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of one column's values in row order
func (d *AlignedDataset) Column(name string) []float64 {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values
}

// RegressionResult holds the fitted coefficients and interval for one channel
type RegressionResult struct {
	Channel         string  `json:"channel"`
	Beta            float64 `json:"beta"`
	Intercept       float64 `json:"intercept"`
	StdError        float64 `json:"standard_error"`
	CILower         float64 `json:"ci_lower"`
	CIUpper         float64 `json:"ci_upper"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NObs            int     `json:"n_obs"`
	DF              int     `json:"df"`
}

// ChannelRegression pairs a dependent channel with its regression outcome.
// Err is set when that channel's regression failed; the other channels are
// unaffected.
type ChannelRegression struct {
	Channel string            `json:"channel"`
	Result  *RegressionResult `json:"result,omitempty"`
	Err     error             `json:"-"`
}

// Analysis is the output of one full pipeline run
type Analysis struct {
	AssetSymbol string              `json:"asset_symbol"`
	IndexSymbol string              `json:"index_symbol"`
	Channels    []ChannelRegression `json:"channels"`
	Dataset     *AlignedDataset     `json:"dataset,omitempty"` // audit output, read-only
}
