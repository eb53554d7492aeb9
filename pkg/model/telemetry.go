package model

import (
	"fmt"
	"slices"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Position) Planar() Point {
	return Point{X: p.X, Y: p.Y}
}

// Sample is a single telemetry record of a lap.
// SectorID and MicrosectorID are 0 until assigned by the sector indexer.
type Sample struct {
	Timestamp     float64  `json:"timestamp"` // seconds, lap relative
	Position      Position `json:"position"`
	Velocity      float64  `json:"velocity"`
	Brake         float64  `json:"brake"`
	Throttle      float64  `json:"throttle"`
	Steering      float64  `json:"steering"`
	Distance      float64  `json:"distance"`     // cumulative arc length from lap start
	StepDistance  float64  `json:"stepDistance"` // forward distance since previous sample
	TimeDelta     float64  `json:"timeDelta"`    // signed per-sample time delta
	Param         float64  `json:"param"`        // parameter on the reference curve
	HasParam      bool     `json:"hasParam"`
	SectorID      int      `json:"sectorId"`
	MicrosectorID int      `json:"microsectorId"`
}

// FieldSet records which telemetry fields the source provided.
type FieldSet uint16

const (
	FieldTimestamp FieldSet = 1 << iota
	FieldPosition
	FieldVelocity
	FieldBrake
	FieldThrottle
	FieldSteering
	FieldDistance
	FieldStepDistance
	FieldTimeDelta
	FieldParam
	FieldSector
)

const AllFields = FieldTimestamp | FieldPosition | FieldVelocity | FieldBrake |
	FieldThrottle | FieldSteering | FieldDistance | FieldStepDistance |
	FieldTimeDelta

var fieldNames = map[FieldSet]string{
	FieldTimestamp:    "timestamp",
	FieldPosition:     "position",
	FieldVelocity:     "velocity",
	FieldBrake:        "brake",
	FieldThrottle:     "throttle",
	FieldSteering:     "steering",
	FieldDistance:     "distance",
	FieldStepDistance: "stepDistance",
	FieldTimeDelta:    "timeDelta",
	FieldParam:        "param",
	FieldSector:       "sector",
}

func (f FieldSet) Has(required FieldSet) bool {
	return f&required == required
}

// Require returns an ErrMissingField error naming the first absent field
func (f FieldSet) Require(required ...FieldSet) error {
	for _, r := range required {
		if !f.Has(r) {
			return fmt.Errorf("%w: %s", ErrMissingField, r)
		}
	}
	return nil
}

func (f FieldSet) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	names := make([]string, 0)
	for bit := FieldTimestamp; bit <= FieldSector; bit <<= 1 {
		if f.Has(bit) {
			names = append(names, fieldNames[bit])
		}
	}
	return fmt.Sprintf("%v", names)
}

// Series extracts one value per sample
func Series(samples []Sample, fn func(s *Sample) float64) []float64 {
	ret := make([]float64, len(samples))
	for i := range samples {
		ret[i] = fn(&samples[i])
	}
	return ret
}

// SortByTime returns a copy of samples ordered by timestamp.
// Samples sharing a timestamp keep their original order.
func SortByTime(samples []Sample) []Sample {
	ret := slices.Clone(samples)
	slices.SortStableFunc(ret, func(a, b Sample) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		default:
			return 0
		}
	})
	return ret
}
