package sector

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// SegmentTimes holds the time spent in every sector and microsector of a lap.
// The interval between two consecutive samples is booked on the segment of
// the later sample, so the sector times add up to the lap time.
type SegmentTimes struct {
	Sectors      []float64 `json:"sectors"`
	Microsectors []float64 `json:"microsectors"`
}

// Select returns the microsector times if microsectors is set, the sector
// times otherwise.
func (st SegmentTimes) Select(microsectors bool) []float64 {
	if microsectors {
		return st.Microsectors
	}
	return st.Sectors
}

// Times computes the segment times of a labelled lap
func (ix *Indexer) Times(lap *model.Lap) (SegmentTimes, error) {
	ret := SegmentTimes{
		Sectors:      make([]float64, ix.seg.Sectors),
		Microsectors: make([]float64, ix.seg.Microsectors),
	}
	if err := lap.Fields.Require(model.FieldTimestamp, model.FieldSector); err != nil {
		return ret, fmt.Errorf("%s: %w", lap, err)
	}
	for i := 1; i < len(lap.Samples); i++ {
		s := &lap.Samples[i]
		if s.MicrosectorID < 1 || s.MicrosectorID > ix.seg.Microsectors {
			return ret, fmt.Errorf("%w: %s sample %d has microsector %d",
				model.ErrInvalidInput, lap, i, s.MicrosectorID)
		}
		dt := s.Timestamp - lap.Samples[i-1].Timestamp
		ret.Microsectors[s.MicrosectorID-1] += dt
		ret.Sectors[ix.seg.SectorOf(s.MicrosectorID)-1] += dt
	}
	return ret, nil
}

// LapTimes binds segment times to their lap
type LapTimes struct {
	Lap   *model.Lap
	Times SegmentTimes
}

// Bests collects the fastest segment times overall and per driver
type Bests struct {
	Global  SegmentTimes            `json:"global"`
	Drivers map[string]SegmentTimes `json:"drivers"`
}

func ComputeBests(laps []LapTimes) Bests {
	ret := Bests{
		Global:  fastest(laps),
		Drivers: make(map[string]SegmentTimes),
	}
	byDriver := lo.GroupBy(laps, func(item LapTimes) string { return item.Lap.Driver })
	for driver, driverLaps := range byDriver {
		ret.Drivers[driver] = fastest(driverLaps)
	}
	return ret
}

func fastest(laps []LapTimes) SegmentTimes {
	if len(laps) == 0 {
		return SegmentTimes{}
	}
	minOf := func(sel func(st SegmentTimes) []float64) []float64 {
		ret := make([]float64, len(sel(laps[0].Times)))
		for i := range ret {
			ret[i] = math.Inf(1)
			for _, l := range laps {
				ret[i] = math.Min(ret[i], sel(l.Times)[i])
			}
		}
		return ret
	}
	return SegmentTimes{
		Sectors:      minOf(func(st SegmentTimes) []float64 { return st.Sectors }),
		Microsectors: minOf(func(st SegmentTimes) []float64 { return st.Microsectors }),
	}
}

// Status classifies every segment of lt: Best if it matches the overall best,
// PersonalBest if it matches the best of the lap's driver, Other otherwise.
func (b Bests) Status(lt LapTimes, microsectors bool) []model.SectorStatus {
	times := lt.Times.Select(microsectors)
	global := b.Global.Select(microsectors)
	personal := b.Drivers[lt.Lap.Driver].Select(microsectors)
	ret := make([]model.SectorStatus, len(times))
	for i, t := range times {
		switch {
		case i < len(global) && t == global[i]:
			ret[i] = model.SectorBest
		case i < len(personal) && t == personal[i]:
			ret[i] = model.SectorPersonalBest
		default:
			ret[i] = model.SectorOther
		}
	}
	return ret
}

// Compare returns the faster lap for every segment
func Compare(a, b SegmentTimes, microsectors bool) []model.Leader {
	ta, tb := a.Select(microsectors), b.Select(microsectors)
	ret := make([]model.Leader, min(len(ta), len(tb)))
	for i := range ret {
		ret[i] = model.LeaderOf(ta[i] - tb[i])
	}
	return ret
}
