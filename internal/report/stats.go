// Package report renders the outputs of a curvature analysis run: the CSV
// and JSON exports, a PNG plot, an interactive HTML chart, and the console
// summary.
package report

import (
	"encoding/json"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/curvature.report/internal/egomotion"
)

// CompareStats summarises how the calculated curvature feature tracks the
// recorded ground-truth column.
type CompareStats struct {
	Count       int     `json:"count"`
	MAE         float64 `json:"mean_absolute_error"`
	RMSE        float64 `json:"root_mean_square_error"`
	Correlation float64 `json:"correlation"`

	CalculatedMin  float64 `json:"calculated_min"`
	CalculatedMax  float64 `json:"calculated_max"`
	CalculatedMean float64 `json:"calculated_mean"`
	TruthMin       float64 `json:"truth_min"`
	TruthMax       float64 `json:"truth_max"`
	TruthMean      float64 `json:"truth_mean"`
}

// Compare computes agreement statistics between the calculated curvature
// feature and the recorded curvature column. Correlation is NaN when either
// series is constant.
func Compare(samples []egomotion.Sample) (CompareStats, error) {
	if len(samples) == 0 {
		return CompareStats{}, errors.New("no samples to compare")
	}

	calc := make([]float64, len(samples))
	truth := make([]float64, len(samples))
	for i := range samples {
		calc[i] = samples[i].CurvatureFeature
		truth[i] = samples[i].Curvature
	}

	var absSum, sqSum float64
	for i := range calc {
		d := calc[i] - truth[i]
		absSum += math.Abs(d)
		sqSum += d * d
	}
	n := float64(len(calc))

	return CompareStats{
		Count:          len(samples),
		MAE:            absSum / n,
		RMSE:           math.Sqrt(sqSum / n),
		Correlation:    stat.Correlation(calc, truth, nil),
		CalculatedMin:  floats.Min(calc),
		CalculatedMax:  floats.Max(calc),
		CalculatedMean: stat.Mean(calc, nil),
		TruthMin:       floats.Min(truth),
		TruthMax:       floats.Max(truth),
		TruthMean:      stat.Mean(truth, nil),
	}, nil
}

// MarshalJSON implements json.Marshaler for CompareStats. Correlation is
// NaN for a constant series and a zero time step pushes the feature to
// ±Inf; encoding/json rejects both, so non-finite values are written as
// null.
func (s CompareStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count          int      `json:"count"`
		MAE            *float64 `json:"mean_absolute_error"`
		RMSE           *float64 `json:"root_mean_square_error"`
		Correlation    *float64 `json:"correlation"`
		CalculatedMin  *float64 `json:"calculated_min"`
		CalculatedMax  *float64 `json:"calculated_max"`
		CalculatedMean *float64 `json:"calculated_mean"`
		TruthMin       *float64 `json:"truth_min"`
		TruthMax       *float64 `json:"truth_max"`
		TruthMean      *float64 `json:"truth_mean"`
	}{
		Count:          s.Count,
		MAE:            finiteOrNull(s.MAE),
		RMSE:           finiteOrNull(s.RMSE),
		Correlation:    finiteOrNull(s.Correlation),
		CalculatedMin:  finiteOrNull(s.CalculatedMin),
		CalculatedMax:  finiteOrNull(s.CalculatedMax),
		CalculatedMean: finiteOrNull(s.CalculatedMean),
		TruthMin:       finiteOrNull(s.TruthMin),
		TruthMax:       finiteOrNull(s.TruthMax),
		TruthMean:      finiteOrNull(s.TruthMean),
	})
}

func finiteOrNull(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// MeanSpeed returns the mean speed magnitude across the table in m/s.
func MeanSpeed(samples []egomotion.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	speeds := make([]float64, len(samples))
	for i := range samples {
		speeds[i] = samples[i].Velocity
	}
	return stat.Mean(speeds, nil)
}
