package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// DefaultPrecision is the number of evaluation points used to approximate a curve
const DefaultPrecision = 1000

// ReferenceCurve is a parametric 2D curve over [lo, hi].
// Implementations are read-only for the analytics engine.
type ReferenceCurve interface {
	Domain() (lo, hi float64)
	At(t float64) model.Point
}

// Polyline is a ReferenceCurve parametrized by arc length along its vertices.
type Polyline struct {
	points []model.Point
	s      []float64 // cumulative arc length per vertex
}

func NewPolyline(points []model.Point) (*Polyline, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: polyline needs at least 2 points, got %d",
			model.ErrInvalidInput, len(points))
	}
	ret := &Polyline{
		points: append([]model.Point(nil), points...),
		s:      make([]float64, len(points)),
	}
	for i := 1; i < len(points); i++ {
		ret.s[i] = ret.s[i-1] + math.Hypot(
			points[i].X-points[i-1].X,
			points[i].Y-points[i-1].Y)
	}
	if ret.s[len(ret.s)-1] <= 0 {
		return nil, fmt.Errorf("%w: polyline has zero length", model.ErrInvalidInput)
	}
	return ret, nil
}

func (p *Polyline) Domain() (lo, hi float64) {
	return 0, p.s[len(p.s)-1]
}

// At interpolates linearly between the vertices enclosing t.
// Values outside the domain are clamped.
func (p *Polyline) At(t float64) model.Point {
	lo, hi := p.Domain()
	t = math.Max(lo, math.Min(hi, t))
	j := sort.SearchFloat64s(p.s, t)
	if j == 0 {
		return p.points[0]
	}
	if j >= len(p.s) {
		return p.points[len(p.points)-1]
	}
	p1, p2 := p.points[j-1], p.points[j]
	denom := p.s[j] - p.s[j-1]
	f := 0.0
	if denom > 0 {
		f = (t - p.s[j-1]) / denom
	}
	return model.Point{
		X: p1.X + f*(p2.X-p1.X),
		Y: p1.Y + f*(p2.Y-p1.Y),
	}
}

// Linspace returns n equally spaced values in [start, end] (both included).
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	ret := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range ret {
		ret[i] = start + float64(i)*step
	}
	ret[n-1] = end
	return ret
}

// Evaluate returns the parameters and points of n equally spaced evaluations
func Evaluate(c ReferenceCurve, n int) (params []float64, points []model.Point) {
	lo, hi := c.Domain()
	params = Linspace(lo, hi, n)
	points = make([]model.Point, len(params))
	for i, t := range params {
		points[i] = c.At(t)
	}
	return params, points
}

// Length approximates the curve length by a polyline of precision points.
func Length(c ReferenceCurve, precision int) float64 {
	if precision < 2 {
		precision = DefaultPrecision
	}
	_, points := Evaluate(c, precision)
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
	}
	return length
}
