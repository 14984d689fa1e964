package regress

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"betatrack/models"
)

func makeDataset(xs, ys []float64) *models.AlignedDataset {
	ds := &models.AlignedDataset{Columns: []string{"close", "index"}}
	for i := range xs {
		ds.Dates = append(ds.Dates, fmt.Sprintf("2024-01-%02d", i+1))
		ds.Rows = append(ds.Rows, []float64{ys[i], xs[i]})
	}
	return ds
}

// covOverVar computes Cov(x,y)/Var(x) independently of the engine
func covOverVar(xs, ys []float64) float64 {
	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX float64
	for i := range xs {
		cov += (xs[i] - meanX) * (ys[i] - meanY)
		varX += (xs[i] - meanX) * (xs[i] - meanX)
	}
	return cov / varX
}

func TestFitBetaClosedForm(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03, 0.00, 0.015}
	ys := []float64{0.005, -0.01, 0.02, 0.001, 0.008}

	result, err := Fit(makeDataset(xs, ys), "close", "index", 0.95)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	wantBeta := covOverVar(xs, ys)
	if math.Abs(result.Beta-wantBeta) > 1e-12 {
		t.Errorf("Fit() beta = %v, want %v", result.Beta, wantBeta)
	}
	if result.NObs != 5 || result.DF != 3 {
		t.Errorf("Fit() n=%d df=%d, want n=5 df=3", result.NObs, result.DF)
	}
	if !(result.CILower < result.Beta && result.Beta < result.CIUpper) {
		t.Errorf("confidence interval [%v, %v] does not bracket beta %v",
			result.CILower, result.CIUpper, result.Beta)
	}
	if result.StdError <= 0 {
		t.Errorf("Fit() standard error = %v, want > 0", result.StdError)
	}
}

func TestFitResidualsSumToZero(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03, 0.00, 0.015, -0.007, 0.022}
	ys := []float64{0.005, -0.01, 0.02, 0.001, 0.008, -0.004, 0.013}
	ds := makeDataset(xs, ys)

	result, err := Fit(ds, "close", "index", 0.95)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	var sum float64
	for i := range xs {
		sum += ys[i] - (result.Intercept + result.Beta*xs[i])
	}
	if math.Abs(sum) > 1e-12 {
		t.Errorf("residual sum = %v, want 0", sum)
	}
}

func TestFitPerfectLine(t *testing.T) {
	xs := []float64{-0.01, 0.0, 0.01, 0.02, 0.03}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 0.002 + 1.5*x
	}

	result, err := Fit(makeDataset(xs, ys), "close", "index", 0.95)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if math.Abs(result.Beta-1.5) > 1e-9 {
		t.Errorf("Fit() beta = %v, want 1.5", result.Beta)
	}
	if math.Abs(result.Intercept-0.002) > 1e-9 {
		t.Errorf("Fit() intercept = %v, want 0.002", result.Intercept)
	}
	if result.StdError > 1e-9 {
		t.Errorf("Fit() standard error = %v, want ~0 for exact fit", result.StdError)
	}
}

func TestFitConfidenceMonotonic(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03, 0.00, 0.015}
	ys := []float64{0.005, -0.01, 0.02, 0.001, 0.008}
	ds := makeDataset(xs, ys)

	narrow, err := Fit(ds, "close", "index", 0.95)
	if err != nil {
		t.Fatalf("Fit(0.95) error = %v", err)
	}
	wide, err := Fit(ds, "close", "index", 0.99)
	if err != nil {
		t.Fatalf("Fit(0.99) error = %v", err)
	}

	if wide.CILower > narrow.CILower || wide.CIUpper < narrow.CIUpper {
		t.Errorf("0.99 interval [%v, %v] narrower than 0.95 interval [%v, %v]",
			wide.CILower, wide.CIUpper, narrow.CILower, narrow.CIUpper)
	}
	if wide.Beta != narrow.Beta {
		t.Errorf("beta changed with confidence level: %v vs %v", wide.Beta, narrow.Beta)
	}
}

func TestFitDeterministic(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03, 0.00, 0.015}
	ys := []float64{0.005, -0.01, 0.02, 0.001, 0.008}
	ds := makeDataset(xs, ys)

	first, err := Fit(ds, "close", "index", 0.95)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	second, err := Fit(ds, "close", "index", 0.95)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if *first != *second {
		t.Errorf("identical inputs produced different results: %+v vs %+v", first, second)
	}
}

func TestFitDegenerate(t *testing.T) {
	xs := []float64{0.01, 0.01, 0.01, 0.01}
	ys := []float64{0.005, -0.01, 0.02, 0.001}

	result, err := Fit(makeDataset(xs, ys), "close", "index", 0.95)
	var degenerate *DegenerateRegressionError
	if !errors.As(err, &degenerate) {
		t.Fatalf("Fit() error = %v, want DegenerateRegressionError", err)
	}
	if degenerate.Channel != "close" || degenerate.Independent != "index" {
		t.Errorf("DegenerateRegressionError = %+v, want channel close vs index", degenerate)
	}
	if result != nil {
		t.Errorf("Fit() result = %+v, want nil on degenerate input", result)
	}
}

func TestFitNonFiniteInput(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03, 0.00}
	ys := []float64{0.005, math.NaN(), 0.02, 0.001}

	_, err := Fit(makeDataset(xs, ys), "close", "index", 0.95)
	var nonFinite *NonFiniteInputError
	if !errors.As(err, &nonFinite) {
		t.Fatalf("Fit() error = %v, want NonFiniteInputError", err)
	}
	if nonFinite.Column != "close" || nonFinite.Row != 1 {
		t.Errorf("NonFiniteInputError = %+v, want column close row 1", nonFinite)
	}
}

func TestFitDefaultConfidence(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03, 0.00, 0.015}
	ys := []float64{0.005, -0.01, 0.02, 0.001, 0.008}

	result, err := Fit(makeDataset(xs, ys), "close", "index", 0)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if result.ConfidenceLevel != DefaultConfidence {
		t.Errorf("ConfidenceLevel = %v, want %v", result.ConfidenceLevel, DefaultConfidence)
	}
}

func TestFitBadInputs(t *testing.T) {
	xs := []float64{0.01, -0.02, 0.03}
	ys := []float64{0.005, -0.01, 0.02}
	ds := makeDataset(xs, ys)

	tests := []struct {
		name        string
		dependent   string
		independent string
		confidence  float64
	}{
		{"Unknown dependent", "volume", "index", 0.95},
		{"Unknown independent", "close", "benchmark", 0.95},
		{"Confidence too high", "close", "index", 1.0},
		{"Negative confidence", "close", "index", -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Fit(ds, tt.dependent, tt.independent, tt.confidence); err == nil {
				t.Error("Fit() error = nil, want error")
			}
		})
	}
}
