//nolint:thelper,funlen // ok for tests
package harshness

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/smooth"
	"github.com/PauMatas/DPA-visual-analytics-tool/testsupport/basedata"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		raw    []float64
		time   []float64
		window int
		opts   []Option
		want   float64
	}{
		{"spike throttle", []float64{0, 100, 0}, []float64{0, 1, 2}, 3,
			[]Option{WithScale(ThrottleScale)}, 7.0 / 6.0},
		{"spike steering", []float64{0, 3, 0}, []float64{0, 1, 2}, 3,
			nil, 3.5},
		{"constant signal", basedata.Constant(10, 42), []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 5,
			nil, 0},
		{"window 1 equals raw", []float64{1, 9, 3}, []float64{0, 1, 2}, 1, nil, 0},
		{"single point", []float64{5}, []float64{0}, 3, nil, 0},
		{"repeated timestamp", []float64{0, 100, 0}, []float64{0, 1, 1}, 3,
			[]Option{WithScale(ThrottleScale)}, 0.5 * (0.5 + 2.0/3.0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.raw, tt.time, smooth.NewMovingAverage(tt.window), tt.opts...)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCompute_NonNegative(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		n := 2 + rnd.IntN(200)
		raw := make([]float64, n)
		time := make([]float64, n)
		for i := range raw {
			raw[i] = rnd.Float64()*200 - 100
			if i > 0 {
				time[i] = time[i-1] + rnd.Float64()
			}
		}
		got, err := Compute(raw, time, smooth.NewMovingAverage(1+rnd.IntN(n)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     []float64
		time    []float64
		opts    []Option
		wantErr error
	}{
		{"empty", nil, nil, nil, model.ErrInvalidInput},
		{"length mismatch", []float64{1, 2}, []float64{0}, nil, model.ErrInvalidInput},
		{"time not ascending", []float64{1, 2, 3}, []float64{0, 2, 1}, nil, model.ErrInvalidInput},
		{"zero scale", []float64{1, 2}, []float64{0, 1}, []Option{WithScale(0)}, model.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.raw, tt.time, smooth.NewMovingAverage(1), tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAnalyze(t *testing.T) {
	r, err := Analyze([]float64{0, 100, 0}, []float64{0, 1, 2},
		smooth.NewMovingAverage(3), WithScale(ThrottleScale))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{50, 100.0 / 3, 50}, r.Smoothed, 1e-9)
	assert.InDeltaSlice(t, []float64{0.5, 2.0 / 3, 0.5}, r.Deviation, 1e-9)
}

func TestLapHelpers(t *testing.T) {
	lap := basedata.StraightLap(1, "A", 20, 1, 10)
	got, err := Throttle(lap, 5)
	require.NoError(t, err)
	assert.Zero(t, got)

	lap.Samples[10].Steering = 2
	got, err = Steering(lap, 100) // window reduced to lap length
	require.NoError(t, err)
	assert.Greater(t, got, 0.0)

	lap.Fields = model.FieldTimestamp | model.FieldSteering
	_, err = Throttle(lap, 5)
	assert.ErrorIs(t, err, model.ErrMissingField)
	_, err = Steering(lap, 5)
	assert.NoError(t, err)
}
