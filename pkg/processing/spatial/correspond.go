package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/PauMatas/DPA-visual-analytics-tool/log"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/curve"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

const (
	DefaultFullLapGates = 100
	DefaultMinGates     = 10
)

var ErrTooFewGates = errors.New("too few accepted gates")

// Window is a parameter range on the reference curve
type Window struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// FullWindow covers the whole domain of c
func FullWindow(c curve.ReferenceCurve) Window {
	lo, hi := c.Domain()
	return Window{Start: lo, End: hi}
}

func (w Window) Contains(t float64) bool {
	return w.Start <= t && t <= w.End
}

type (
	Option  func(m *Matcher)
	Matcher struct {
		curve         curve.ReferenceCurve
		circuitLength float64
		fullLapGates  int
		minGates      int
		minAcceptance float64
		l             *log.Logger
	}
)

// WithCircuitLength sets the measured circuit length used for gate distances.
// By default the polyline length of the reference curve is used.
func WithCircuitLength(length float64) Option {
	return func(m *Matcher) {
		m.circuitLength = length
	}
}

func WithFullLapGates(n int) Option {
	return func(m *Matcher) {
		m.fullLapGates = n
	}
}

func WithMinGates(n int) Option {
	return func(m *Matcher) {
		m.minGates = n
	}
}

// WithMinAcceptance makes Correspond fail with ErrTooFewGates when less than
// ratio of the gates survive the microsector check. 0 disables the check.
func WithMinAcceptance(ratio float64) Option {
	return func(m *Matcher) {
		m.minAcceptance = ratio
	}
}

func WithLogger(l *log.Logger) Option {
	return func(m *Matcher) {
		m.l = l
	}
}

func NewMatcher(c curve.ReferenceCurve, opts ...Option) *Matcher {
	ret := &Matcher{
		curve:        c,
		fullLapGates: DefaultFullLapGates,
		minGates:     DefaultMinGates,
		l:            log.Default().Named("processing.spatial"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.circuitLength <= 0 {
		ret.circuitLength = curve.Length(c, curve.DefaultPrecision)
	}
	return ret
}

func (m *Matcher) CircuitLength() float64 {
	return m.circuitLength
}

// DefaultGates scales the full lap gate count by the fraction of the domain
// covered by w, but never returns less than the configured minimum.
func (m *Matcher) DefaultGates(w Window) int {
	lo, hi := m.curve.Domain()
	fraction := (w.End - w.Start) / (hi - lo)
	n := int(math.Ceil(float64(m.fullLapGates) * fraction))
	return max(n, m.minGates)
}

// Correspond matches both laps at intervalCount gates inside w.
// Gates where the nearest samples of both laps are in different microsectors
// are dropped. intervalCount <= 0 selects DefaultGates.
//
//nolint:funlen // readability
func (m *Matcher) Correspond(
	lapA, lapB *model.Lap, w Window, intervalCount int,
) ([]model.Pair, error) {
	lo, hi := m.curve.Domain()
	if w.Start > w.End || w.Start < lo || w.End > hi {
		return nil, fmt.Errorf("%w: window [%g,%g] not within domain [%g,%g]",
			model.ErrInvalidInput, w.Start, w.End, lo, hi)
	}
	if intervalCount <= 0 {
		intervalCount = m.DefaultGates(w)
	}
	idxA, err := windowIndex(lapA, w)
	if err != nil {
		return nil, err
	}
	idxB, err := windowIndex(lapB, w)
	if err != nil {
		return nil, err
	}

	gates := curve.Linspace(w.Start, w.End, intervalCount)
	ret := make([]model.Pair, 0, len(gates))
	for _, t := range gates {
		gate := m.curve.At(t)
		ia, _, okA := idxA.Nearest(gate)
		ib, _, okB := idxB.Nearest(gate)
		if !okA || !okB {
			continue
		}
		msA := lapA.Samples[ia].MicrosectorID
		msB := lapB.Samples[ib].MicrosectorID
		if msA != msB {
			m.l.Debug("gate dropped",
				log.Float64("param", t),
				log.Int("microsectorA", msA),
				log.Int("microsectorB", msB))
			continue
		}
		ret = append(ret, model.Pair{
			IndexA:   ia,
			IndexB:   ib,
			Distance: (t - lo) / (hi - lo) * m.circuitLength,
		})
	}

	m.l.Debug("correspondence",
		log.String("lapA", lapA.String()),
		log.String("lapB", lapB.String()),
		log.Int("gates", len(gates)),
		log.Int("accepted", len(ret)))
	if m.minAcceptance > 0 &&
		float64(len(ret)) < m.minAcceptance*float64(len(gates)) {
		return ret, fmt.Errorf("%w: %d of %d gates accepted",
			ErrTooFewGates, len(ret), len(gates))
	}
	return ret, nil
}

// windowIndex builds a tree over the samples of lap located inside w.
// The ids reported by the index are positions in lap.Samples.
func windowIndex(lap *model.Lap, w Window) (*Index, error) {
	points := make([]model.Point, 0, len(lap.Samples))
	ids := make([]int, 0, len(lap.Samples))
	withParam := 0
	for i := range lap.Samples {
		s := &lap.Samples[i]
		if !s.HasParam {
			continue
		}
		withParam++
		if w.Contains(s.Param) {
			points = append(points, s.Position.Planar())
			ids = append(ids, i)
		}
	}
	if withParam == 0 {
		return nil, fmt.Errorf("%w: %s has no curve parameters: %s",
			model.ErrMissingField, lap, model.FieldParam)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s has no samples in window [%g,%g]",
			model.ErrInvalidInput, lap, w.Start, w.End)
	}
	return NewIndex(points, ids), nil
}
