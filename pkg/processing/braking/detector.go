// Package braking measures how drivers brake into the turns of a circuit.
package braking

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/sector"
)

// DefaultThreshold is the brake signal from which a driver counts as braking
const DefaultThreshold = 0.2

// Result describes the braking behaviour inside one window
type Result struct {
	HasBraked          bool    `json:"hasBraked"`
	PreBrakingDistance float64 `json:"preBrakingDistance"`
	MeanVelocity       float64 `json:"meanVelocity"`
	ExitVelocity       float64 `json:"exitVelocity"`
}

// Detect walks the window in timestamp order and sums the step distance
// covered before the first sample with brake >= threshold. Once braking is
// detected it stays latched for the rest of the window.
// ok is false for an empty window.
func Detect(samples []model.Sample, threshold float64) (res Result, ok bool) {
	if len(samples) == 0 {
		return res, false
	}
	ordered := model.SortByTime(samples)
	res.HasBraked = ordered[0].Brake >= threshold
	for i := range ordered {
		s := &ordered[i]
		if !res.HasBraked && s.Brake < threshold {
			res.PreBrakingDistance += s.StepDistance
		} else {
			res.HasBraked = true
		}
	}
	res.MeanVelocity = stat.Mean(
		model.Series(ordered, func(s *model.Sample) float64 { return s.Velocity }), nil)
	res.ExitVelocity = ordered[len(ordered)-1].Velocity
	return res, true
}

// DetectTurn runs Detect on the samples of a labelled lap inside turn.
//
//nolint:whitespace // can't make the linters happy
func DetectTurn(
	lap *model.Lap, turn model.TurnWindow, threshold float64,
) (Result, bool, error) {
	if err := lap.Fields.Require(
		model.FieldStepDistance, model.FieldBrake, model.FieldSector,
	); err != nil {
		return Result{}, false, fmt.Errorf("%s: %w", lap, err)
	}
	res, ok := Detect(sector.Window(lap.Samples, turn), threshold)
	return res, ok, nil
}
