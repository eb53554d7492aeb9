// Package delta turns spatially matched samples of two laps into a
// time difference over distance.
package delta

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// CumulativeTime returns the running sum of the per-sample time deltas of lap.
// Element i includes sample i.
func CumulativeTime(lap *model.Lap) ([]float64, error) {
	if err := lap.Fields.Require(model.FieldTimeDelta); err != nil {
		return nil, fmt.Errorf("%s: %w", lap, err)
	}
	deltas := model.Series(lap.Samples, func(s *model.Sample) float64 { return s.TimeDelta })
	return floats.CumSum(make([]float64, len(deltas)), deltas), nil
}

// Curve computes the time delta A-B at every matched pair.
// The result is ordered by distance; pairs at equal distance keep their order.
func Curve(lapA, lapB *model.Lap, pairs []model.Pair) (model.DeltaCurve, error) {
	cumA, err := CumulativeTime(lapA)
	if err != nil {
		return nil, err
	}
	cumB, err := CumulativeTime(lapB)
	if err != nil {
		return nil, err
	}
	return FromCumulative(cumA, cumB, pairs)
}

// FromCumulative is Curve for precomputed cumulative times.
func FromCumulative(cumA, cumB []float64, pairs []model.Pair) (model.DeltaCurve, error) {
	ret := make(model.DeltaCurve, 0, len(pairs))
	for _, p := range pairs {
		if p.IndexA < 0 || p.IndexA >= len(cumA) || p.IndexB < 0 || p.IndexB >= len(cumB) {
			return nil, fmt.Errorf("%w: pair (%d,%d) out of range (%d,%d)",
				model.ErrInvalidInput, p.IndexA, p.IndexB, len(cumA), len(cumB))
		}
		diff := cumA[p.IndexA] - cumB[p.IndexB]
		ret = append(ret, model.DeltaPoint{
			Distance:  p.Distance,
			TimeDelta: diff,
			Leader:    model.LeaderOf(diff),
		})
	}
	slices.SortStableFunc(ret, func(a, b model.DeltaPoint) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})
	return ret, nil
}
