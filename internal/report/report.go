package report

import (
	"fmt"
	"strings"

	"betatrack/models"
)

// Format renders a full analysis as plain text, suitable for a terminal or a
// message body. Failed channels are reported inline so a degenerate fit on one
// channel never hides the other two.
func Format(analysis *models.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "===== BETA REGRESSION: %s vs %s =====\n", analysis.AssetSymbol, analysis.IndexSymbol)
	for _, ch := range analysis.Channels {
		if ch.Err != nil {
			fmt.Fprintf(&b, "%-6s regression failed: %v\n", ch.Channel+":", ch.Err)
			continue
		}
		r := ch.Result
		fmt.Fprintf(&b, "%-6s beta=%.4f  se=%.4f  intercept=%.6f\n", ch.Channel+":", r.Beta, r.StdError, r.Intercept)
		fmt.Fprintf(&b, "       %.0f%% CI [%.4f, %.4f]  n=%d  df=%d\n",
			r.ConfidenceLevel*100, r.CILower, r.CIUpper, r.NObs, r.DF)
	}

	return b.String()
}

// FormatResults renders stored regression results without audit data
func FormatResults(assetSymbol, indexSymbol string, results []models.RegressionResult) string {
	analysis := &models.Analysis{AssetSymbol: assetSymbol, IndexSymbol: indexSymbol}
	for i := range results {
		analysis.Channels = append(analysis.Channels, models.ChannelRegression{
			Channel: results[i].Channel,
			Result:  &results[i],
		})
	}
	return Format(analysis)
}

// FormatDataset dumps the aligned rows for inspection
func FormatDataset(dataset *models.AlignedDataset) string {
	var b strings.Builder

	fmt.Fprintf(&b, "date        %s\n", strings.Join(dataset.Columns, "       "))
	for i, date := range dataset.Dates {
		fmt.Fprintf(&b, "%s", date)
		for _, v := range dataset.Rows[i] {
			fmt.Fprintf(&b, "  %+.6f", v)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}
