package braking

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/PauMatas/DPA-visual-analytics-tool/log"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/sector"
)

// StatsConfig controls the braking aggregation.
type StatsConfig struct {
	// Threshold for the brake signal, DefaultThreshold if 0
	Threshold float64
	// LapSubset restricts the evaluation to these indexes of the laps argument
	LapSubset []int
	// LapOffsets is added to the lap number of laps from the given run.
	// Used when several runs are concatenated into one session.
	LapOffsets map[string]int
	// GroupByDriver averages the events of each driver per turn
	GroupByDriver bool
}

// Stats computes the braking events of laps for every turn of lookup.
// Events are ordered by turn, then by lap (or by driver name when grouped).
// Laps without samples inside a turn produce no event for that turn.
//
//nolint:whitespace // can't make the linters happy
func Stats(
	ctx context.Context,
	laps []*model.Lap,
	lookup *sector.TurnLookup,
	cfg StatsConfig,
) ([]model.BrakingEvent, error) {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	selected, err := selectLaps(laps, cfg.LapSubset)
	if err != nil {
		return nil, err
	}
	l := log.GetFromContext(ctx).Named("processing.braking")

	turns := lookup.Turns()
	perTurn := make([][]model.BrakingEvent, len(turns))
	g, gctx := errgroup.WithContext(ctx)
	for i, turn := range turns {
		i, turn := i, turn
		g.Go(func() error {
			events := make([]model.BrakingEvent, 0, len(selected))
			for _, lap := range selected {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, ok, err := DetectTurn(lap, turn, threshold)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				events = append(events, model.BrakingEvent{
					Turn:               turn.Name,
					TurnIndex:          i,
					LapNumber:          lap.Number + cfg.LapOffsets[lap.Run],
					Driver:             lap.Driver,
					HasBraked:          res.HasBraked,
					MeanVelocity:       res.MeanVelocity,
					ExitVelocity:       res.ExitVelocity,
					PreBrakingDistance: res.PreBrakingDistance,
					Laps:               1,
				})
			}
			if cfg.GroupByDriver {
				events = groupByDriver(events)
			}
			perTurn[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ret := lo.Flatten(perTurn)
	l.Debug("braking stats",
		log.Int("laps", len(selected)),
		log.Int("turns", len(turns)),
		log.Int("events", len(ret)),
		log.Bool("grouped", cfg.GroupByDriver))
	return ret, nil
}

func selectLaps(laps []*model.Lap, subset []int) ([]*model.Lap, error) {
	if len(subset) == 0 {
		return laps, nil
	}
	ret := make([]*model.Lap, 0, len(subset))
	for _, idx := range subset {
		if idx < 0 || idx >= len(laps) {
			return nil, fmt.Errorf("%w: lap index %d not in [0,%d)",
				model.ErrInvalidInput, idx, len(laps))
		}
		ret = append(ret, laps[idx])
	}
	return ret, nil
}

// groupByDriver averages the events of one turn per driver.
// LapNumber of a grouped event is the number of the driver's first lap.
func groupByDriver(events []model.BrakingEvent) []model.BrakingEvent {
	byDriver := lo.GroupBy(events, func(e model.BrakingEvent) string { return e.Driver })
	drivers := lo.Keys(byDriver)
	slices.Sort(drivers)
	ret := make([]model.BrakingEvent, 0, len(drivers))
	for _, driver := range drivers {
		group := byDriver[driver]
		ret = append(ret, model.BrakingEvent{
			Turn:      group[0].Turn,
			TurnIndex: group[0].TurnIndex,
			LapNumber: group[0].LapNumber,
			Driver:    driver,
			HasBraked: lo.SomeBy(group, func(e model.BrakingEvent) bool { return e.HasBraked }),
			MeanVelocity: lo.MeanBy(group,
				func(e model.BrakingEvent) float64 { return e.MeanVelocity }),
			ExitVelocity: lo.MeanBy(group,
				func(e model.BrakingEvent) float64 { return e.ExitVelocity }),
			PreBrakingDistance: lo.MeanBy(group,
				func(e model.BrakingEvent) float64 { return e.PreBrakingDistance }),
			Laps: len(group),
		})
	}
	return ret
}
