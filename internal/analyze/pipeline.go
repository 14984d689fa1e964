package analyze

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"betatrack/internal/align"
	"betatrack/internal/regress"
	"betatrack/internal/returns"
	"betatrack/models"
)

// IndexColumn is the independent column every asset channel regresses against
const IndexColumn = "index"

// DependentChannels are the asset channels in output order
var DependentChannels = []string{"low", "high", "close"}

// Options configures one pipeline run
type Options struct {
	AssetSymbol     string
	IndexSymbol     string
	ConfidenceLevel float64 // 0 means regress.DefaultConfidence
}

// Run executes the full pipeline: asset low/high/close and index close bars
// become return series, the four series are aligned into one dataset, and the
// three asset channels are regressed against the index concurrently. A
// failed channel regression is recorded on its ChannelRegression and does not
// block the others; only an alignment failure aborts the run.
func Run(assetBars, indexBars []models.PriceBar, opts Options) (*models.Analysis, error) {
	logger := log.With().Str("component", "pipeline").Logger()

	series := []align.Series{
		{Name: "low", Returns: returns.Calculate(assetBars, returns.Low)},
		{Name: "high", Returns: returns.Calculate(assetBars, returns.High)},
		{Name: "close", Returns: returns.Calculate(assetBars, returns.Close)},
		{Name: IndexColumn, Returns: returns.Calculate(indexBars, returns.Close)},
	}

	dataset, err := align.Build(series)
	if err != nil {
		return nil, fmt.Errorf("aligning return series: %w", err)
	}
	logger.Debug().
		Int("rows", dataset.NumRows()).
		Int("asset_bars", len(assetBars)).
		Int("index_bars", len(indexBars)).
		Msg("Aligned dataset built")

	// Each regression reads the shared dataset and writes only its own slot
	channels := make([]models.ChannelRegression, len(DependentChannels))
	var wg sync.WaitGroup
	for i, name := range DependentChannels {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			result, err := regress.Fit(dataset, name, IndexColumn, opts.ConfidenceLevel)
			channels[i] = models.ChannelRegression{Channel: name, Result: result, Err: err}
		}(i, name)
	}
	wg.Wait()

	for _, ch := range channels {
		if ch.Err != nil {
			logger.Warn().Err(ch.Err).Str("channel", ch.Channel).Msg("Channel regression failed")
		}
	}

	return &models.Analysis{
		AssetSymbol: opts.AssetSymbol,
		IndexSymbol: opts.IndexSymbol,
		Channels:    channels,
		Dataset:     dataset,
	}, nil
}
