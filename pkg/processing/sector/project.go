package sector

import (
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/curve"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/spatial"
)

// Project returns a copy of samples where every sample without a curve
// parameter gets the parameter of the nearest of resolution evaluations of c.
// resolution < 2 selects curve.DefaultPrecision.
func Project(samples []model.Sample, c curve.ReferenceCurve, resolution int) []model.Sample {
	ret := make([]model.Sample, len(samples))
	copy(ret, samples)
	if hasAllParams(samples) {
		return ret
	}
	if resolution < 2 {
		resolution = curve.DefaultPrecision
	}
	params, points := curve.Evaluate(c, resolution)
	idx := spatial.NewIndex(points, nil)
	for i := range ret {
		if ret[i].HasParam {
			continue
		}
		if id, _, ok := idx.Nearest(ret[i].Position.Planar()); ok {
			ret[i].Param = params[id]
			ret[i].HasParam = true
		}
	}
	return ret
}
