package smooth

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// Smoother produces a low-pass version of a series with the same length.
type Smoother interface {
	Smooth(series []float64) ([]float64, error)
}

// MovingAverage is a centered moving average.
// Near the edges the window is reduced to the samples available.
type MovingAverage struct {
	Window int
}

func NewMovingAverage(window int) MovingAverage {
	return MovingAverage{Window: window}
}

func (m MovingAverage) Smooth(series []float64) ([]float64, error) {
	n := len(series)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty series", model.ErrInvalidInput)
	}
	if m.Window <= 0 || m.Window > n {
		return nil, fmt.Errorf("%w: window %d not in [1,%d]",
			model.ErrInvalidInput, m.Window, n)
	}
	cs := floats.CumSum(make([]float64, n), series)
	left, right := (m.Window-1)/2, m.Window/2
	ret := make([]float64, n)
	for i := range ret {
		from, to := max(0, i-left), min(n-1, i+right)
		sum := cs[to]
		if from > 0 {
			sum -= cs[from-1]
		}
		ret[i] = sum / float64(to-from+1)
	}
	return ret, nil
}
