// Package report computes goodness-of-fit summaries from calibration
// residuals for presentation. The calibrator itself only exposes raw
// residuals; everything derived lives here.
package report

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FitMetrics summarizes how well fitted parameters reproduce the
// reference observations.
type FitMetrics struct {
	RMSE        float64 `json:"rmse"`
	RSquared    float64 `json:"r_squared"`
	MaxAbsError float64 `json:"max_abs_error"`
	Samples     int     `json:"samples"`
}

// Compute derives fit metrics from observed values and their residuals
// (observed - predicted, as returned by the calibrator).
func Compute(observed, residuals []float64) (FitMetrics, error) {
	if len(observed) == 0 {
		return FitMetrics{}, eris.New("report: no observations")
	}
	if len(observed) != len(residuals) {
		return FitMetrics{}, eris.Errorf("report: %d observations but %d residuals", len(observed), len(residuals))
	}

	predicted := make([]float64, len(observed))
	floats.SubTo(predicted, observed, residuals)

	rss := floats.Dot(residuals, residuals)
	rmse := math.Sqrt(rss / float64(len(residuals)))

	maxAbs := 0.0
	for _, r := range residuals {
		maxAbs = math.Max(maxAbs, math.Abs(r))
	}

	return FitMetrics{
		RMSE:        rmse,
		RSquared:    stat.RSquaredFrom(predicted, observed, nil),
		MaxAbsError: maxAbs,
		Samples:     len(observed),
	}, nil
}
