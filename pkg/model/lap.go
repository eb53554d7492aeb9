package model

import (
	"fmt"
	"math"
)

// Lap holds the samples of one driver's lap attempt.
// Samples are ordered by timestamp, timestamps and distances start at 0.
type Lap struct {
	Number  int       `json:"number"`
	Driver  string    `json:"driver"`
	Run     string    `json:"run"`
	Samples []Sample  `json:"samples"`
	Fields  FieldSet  `json:"fields"`
	LapTime float64   `json:"lapTime"`
	Metrics LapMetric `json:"metrics"`
}

// LapMetric holds the derived values assigned after construction
type LapMetric struct {
	ThrottleHarshness  float64        `json:"throttleHarshness"`
	SteeringSmoothness float64        `json:"steeringSmoothness"`
	BrakingEvents      []BrakingEvent `json:"brakingEvents,omitempty"`
}

type LapOption func(l *Lap)

func WithDriver(driver string) LapOption {
	return func(l *Lap) {
		l.Driver = driver
	}
}

func WithRun(run string) LapOption {
	return func(l *Lap) {
		l.Run = run
	}
}

// WithFields overrides the set of available fields (default: AllFields)
func WithFields(fields FieldSet) LapOption {
	return func(l *Lap) {
		l.Fields = fields
	}
}

// NewLap orders the samples by time and rebases timestamp and distance to 0.
// The given slice is not modified.
func NewLap(number int, samples []Sample, opts ...LapOption) (*Lap, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: lap %d has no samples", ErrInvalidInput, number)
	}
	ret := &Lap{Number: number, Driver: "Unknown", Fields: AllFields}
	for _, opt := range opts {
		opt(ret)
	}

	ret.Samples = SortByTime(samples)
	minTS, minDist := math.Inf(1), math.Inf(1)
	for i := range ret.Samples {
		minTS = math.Min(minTS, ret.Samples[i].Timestamp)
		minDist = math.Min(minDist, ret.Samples[i].Distance)
	}
	for i := range ret.Samples {
		ret.Samples[i].Timestamp -= minTS
		ret.Samples[i].Distance -= minDist
	}
	for i := 1; i < len(ret.Samples); i++ {
		ret.LapTime += ret.Samples[i].Timestamp - ret.Samples[i-1].Timestamp
	}
	return ret, nil
}

func (l *Lap) Len() int {
	return len(l.Samples)
}

func (l *Lap) String() string {
	return fmt.Sprintf("[Lap %d] -> %s", l.Number, l.Driver)
}
