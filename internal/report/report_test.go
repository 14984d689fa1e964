package report

import (
	"strings"
	"testing"

	"betatrack/internal/regress"
	"betatrack/models"
)

func TestFormat(t *testing.T) {
	analysis := &models.Analysis{
		AssetSymbol: "AAPL",
		IndexSymbol: "SPY",
		Channels: []models.ChannelRegression{
			{
				Channel: "low",
				Result: &models.RegressionResult{
					Channel: "low", Beta: 1.2345, Intercept: 0.0001, StdError: 0.11,
					CILower: 1.01, CIUpper: 1.45, ConfidenceLevel: 0.95, NObs: 250, DF: 248,
				},
			},
			{
				Channel: "high",
				Err:     &regress.DegenerateRegressionError{Channel: "high", Independent: "index"},
			},
		},
	}

	out := Format(analysis)

	for _, want := range []string{
		"AAPL vs SPY",
		"beta=1.2345",
		"95% CI [1.0100, 1.4500]",
		"n=250",
		"regression failed",
		"zero variance",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDataset(t *testing.T) {
	dataset := &models.AlignedDataset{
		Dates:   []string{"2024-01-02", "2024-01-03"},
		Columns: []string{"close", "index"},
		Rows:    [][]float64{{0.01, 0.005}, {-0.02, -0.01}},
	}

	out := FormatDataset(dataset)
	if !strings.Contains(out, "2024-01-03") || !strings.Contains(out, "-0.020000") {
		t.Errorf("FormatDataset() output missing rows:\n%s", out)
	}
	if len(strings.Split(strings.TrimSpace(out), "\n")) != 3 {
		t.Errorf("FormatDataset() should print header plus one line per row:\n%s", out)
	}
}
