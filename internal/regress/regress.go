package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"betatrack/models"
)

// DefaultConfidence is applied when the caller passes a zero confidence level
const DefaultConfidence = 0.95

// DegenerateRegressionError reports a zero-variance independent column: the
// slope is undefined. Raised per channel; other channels are unaffected.
type DegenerateRegressionError struct {
	Channel     string
	Independent string
}

func (e *DegenerateRegressionError) Error() string {
	return fmt.Sprintf("regression %q: independent column %q has zero variance", e.Channel, e.Independent)
}

// NonFiniteInputError reports a non-finite value inside an aligned dataset.
// The aligner guarantees finiteness, so this is an internal consistency fault
// rather than a user-facing condition.
type NonFiniteInputError struct {
	Channel string
	Column  string
	Row     int
}

func (e *NonFiniteInputError) Error() string {
	return fmt.Sprintf("regression %q: non-finite value in column %q at row %d (aligner invariant violated)", e.Channel, e.Column, e.Row)
}

// Fit regresses the dependent column on the independent column by closed-form
// OLS: b = Cov(x,y)/Var(x), a = mean(y) - b*mean(x). The confidence interval
// for b uses the Student's-t critical value at 1-alpha/2 with n-2 degrees of
// freedom. The dataset is read only, so parallel fits may share it.
func Fit(ds *models.AlignedDataset, dependent, independent string, confidence float64) (*models.RegressionResult, error) {
	if confidence == 0 {
		confidence = DefaultConfidence
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, fmt.Errorf("confidence level %v out of range (0, 1)", confidence)
	}

	yIdx := ds.ColumnIndex(dependent)
	if yIdx < 0 {
		return nil, fmt.Errorf("unknown dependent column %q", dependent)
	}
	xIdx := ds.ColumnIndex(independent)
	if xIdx < 0 {
		return nil, fmt.Errorf("unknown independent column %q", independent)
	}

	n := ds.NumRows()
	if n < 3 {
		return nil, fmt.Errorf("need at least 3 rows for a slope+intercept fit, got %d", n)
	}

	var sumX, sumY float64
	for i, row := range ds.Rows {
		x, y := row[xIdx], row[yIdx]
		if !isFinite(x) {
			return nil, &NonFiniteInputError{Channel: dependent, Column: independent, Row: i}
		}
		if !isFinite(y) {
			return nil, &NonFiniteInputError{Channel: dependent, Column: dependent, Row: i}
		}
		sumX += x
		sumY += y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy float64
	for _, row := range ds.Rows {
		dx := row[xIdx] - meanX
		sxx += dx * dx
		sxy += dx * (row[yIdx] - meanY)
	}

	if sxx == 0 {
		return nil, &DegenerateRegressionError{Channel: dependent, Independent: independent}
	}

	beta := sxy / sxx
	intercept := meanY - beta*meanX

	var rss float64
	for _, row := range ds.Rows {
		resid := row[yIdx] - intercept - beta*row[xIdx]
		rss += resid * resid
	}

	df := n - 2
	residVariance := rss / float64(df)
	stdError := math.Sqrt(residVariance / sxx)

	alpha := 1 - confidence
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	tCrit := tDist.Quantile(1 - alpha/2)

	return &models.RegressionResult{
		Channel:         dependent,
		Beta:            beta,
		Intercept:       intercept,
		StdError:        stdError,
		CILower:         beta - tCrit*stdError,
		CIUpper:         beta + tCrit*stdError,
		ConfidenceLevel: confidence,
		NObs:            n,
		DF:              df,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
