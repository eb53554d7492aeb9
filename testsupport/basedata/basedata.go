// Package basedata provides synthetic circuits and laps for tests.
package basedata

import (
	"math"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/curve"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// StraightCurve is a reference curve along the x axis from 0 to length.
func StraightCurve(length float64) *curve.Polyline {
	c, err := curve.NewPolyline([]model.Point{{X: 0, Y: 0}, {X: length, Y: 0}})
	if err != nil {
		panic(err)
	}
	return c
}

// OvalCurve approximates a circle of the given radius with n vertices.
// The curve starts and ends at (radius, 0).
func OvalCurve(radius float64, n int) *curve.Polyline {
	points := make([]model.Point, n+1)
	for i := 0; i <= n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		points[i] = model.Point{X: radius * math.Cos(phi), Y: radius * math.Sin(phi)}
	}
	c, err := curve.NewPolyline(points)
	if err != nil {
		panic(err)
	}
	return c
}

// StraightSamples returns n samples along the x axis, step apart, driven at
// constant speed. Param is set to the x coordinate so the samples fit
// StraightCurve without projection.
func StraightSamples(n int, step, speed float64) []model.Sample {
	ret := make([]model.Sample, n)
	dt := step / speed
	for i := range ret {
		x := float64(i) * step
		ret[i] = model.Sample{
			Timestamp:    float64(i) * dt,
			Position:     model.Position{X: x},
			Velocity:     speed,
			Throttle:     100,
			Distance:     x,
			StepDistance: step,
			TimeDelta:    dt,
			Param:        x,
			HasParam:     true,
		}
	}
	ret[0].StepDistance = 0
	ret[0].TimeDelta = 0
	return ret
}

// StraightLap wraps StraightSamples into a lap.
func StraightLap(number int, driver string, n int, step, speed float64) *model.Lap {
	lap, err := model.NewLap(number, StraightSamples(n, step, speed),
		model.WithDriver(driver), model.WithRun("run-"+driver),
		model.WithFields(model.AllFields|model.FieldParam))
	if err != nil {
		panic(err)
	}
	return lap
}

// BrakingSamples builds a window from parallel velocity, brake and step
// distance slices. Timestamps are the sample positions.
func BrakingSamples(velocity, brake, step []float64) []model.Sample {
	ret := make([]model.Sample, len(velocity))
	dist := 0.0
	for i := range ret {
		dist += step[i]
		ret[i] = model.Sample{
			Timestamp:    float64(i),
			Velocity:     velocity[i],
			Brake:        brake[i],
			StepDistance: step[i],
			Distance:     dist,
		}
	}
	return ret
}

// Constant returns n copies of v
func Constant(n int, v float64) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = v
	}
	return ret
}
