// Package harshness rates how rough a control input is by integrating the
// deviation of the raw signal from its smoothed version over time.
package harshness

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/smooth"
)

const (
	ThrottleScale = 100 // percentage points to 0..1
	SteeringScale = 1
)

type (
	Option func(c *config)
	config struct {
		scale float64
	}
)

// WithScale divides the deviation by scale before integration
func WithScale(scale float64) Option {
	return func(c *config) {
		c.scale = scale
	}
}

// Result keeps the intermediate series next to the integrated value.
type Result struct {
	Smoothed  []float64 `json:"smoothed"`
	Deviation []float64 `json:"deviation"`
	Value     float64   `json:"value"`
}

// Compute returns the harshness of raw sampled at time.
func Compute(raw, time []float64, s smooth.Smoother, opts ...Option) (float64, error) {
	r, err := Analyze(raw, time, s, opts...)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}

func Analyze(raw, time []float64, s smooth.Smoother, opts ...Option) (*Result, error) {
	c := &config{scale: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.scale <= 0 {
		return nil, fmt.Errorf("%w: scale must be positive, got %g",
			model.ErrConfiguration, c.scale)
	}
	if len(raw) == 0 || len(raw) != len(time) {
		return nil, fmt.Errorf("%w: %d values for %d timestamps",
			model.ErrInvalidInput, len(raw), len(time))
	}
	if !sort.Float64sAreSorted(time) {
		return nil, fmt.Errorf("%w: timestamps not ascending", model.ErrInvalidInput)
	}
	if len(raw) == 1 {
		return &Result{
			Smoothed:  []float64{raw[0]},
			Deviation: []float64{0},
		}, nil
	}
	smoothed, err := s.Smooth(raw)
	if err != nil {
		return nil, err
	}
	deviation := make([]float64, len(raw))
	for i := range raw {
		deviation[i] = math.Abs(raw[i]-smoothed[i]) / c.scale
	}
	return &Result{
		Smoothed:  smoothed,
		Deviation: deviation,
		Value:     integrate.Trapezoidal(time, deviation),
	}, nil
}

// Throttle computes the throttle harshness of lap with a moving average of
// the given window. The window is reduced for laps shorter than window.
// Scale defaults to ThrottleScale.
func Throttle(lap *model.Lap, window int, opts ...Option) (float64, error) {
	return lapMetric(lap, model.FieldThrottle, window,
		func(s *model.Sample) float64 { return s.Throttle },
		append([]Option{WithScale(ThrottleScale)}, opts...))
}

// Steering computes the steering smoothness value of lap
func Steering(lap *model.Lap, window int, opts ...Option) (float64, error) {
	return lapMetric(lap, model.FieldSteering, window,
		func(s *model.Sample) float64 { return s.Steering },
		append([]Option{WithScale(SteeringScale)}, opts...))
}

//nolint:whitespace // can't make the linters happy
func lapMetric(
	lap *model.Lap, field model.FieldSet, window int,
	value func(s *model.Sample) float64, opts []Option,
) (float64, error) {
	if err := lap.Fields.Require(model.FieldTimestamp, field); err != nil {
		return 0, fmt.Errorf("%s: %w", lap, err)
	}
	raw := model.Series(lap.Samples, value)
	time := model.Series(lap.Samples, func(s *model.Sample) float64 { return s.Timestamp })
	return Compute(raw, time,
		smooth.NewMovingAverage(min(window, len(raw))), opts...)
}
