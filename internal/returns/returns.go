package returns

import (
	"math"

	"betatrack/models"
)

// Channel selects one price field from a bar
type Channel func(models.PriceBar) float64

func Low(b models.PriceBar) float64   { return b.Low }
func High(b models.PriceBar) float64  { return b.High }
func Close(b models.PriceBar) float64 { return b.Close }

// Calculate converts an ordered price channel into discrete returns:
// r_i = (p_i - p_{i-1}) / p_{i-1}, dated at the later bar. The first bar
// yields no return, so the series is one shorter than the input. A zero
// previous price makes the return NaN rather than an error; the aligner
// filters those rows out. Fewer than two bars yields an empty series.
func Calculate(bars []models.PriceBar, channel Channel) models.ReturnSeries {
	if len(bars) < 2 {
		return models.ReturnSeries{}
	}

	series := make(models.ReturnSeries, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev := channel(bars[i-1])
		curr := channel(bars[i])

		value := math.NaN()
		if prev != 0 {
			value = (curr - prev) / prev
		}
		series = append(series, models.ReturnPoint{Date: bars[i].Date, Value: value})
	}

	return series
}
