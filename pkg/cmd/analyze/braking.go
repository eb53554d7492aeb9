package analyze

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/braking"
)

type brakingOptions struct {
	group bool
	laps  []int
}

func NewBrakingCmd() *cobra.Command {
	opts := brakingOptions{}
	cmd := &cobra.Command{
		Use:   "braking telemetry.csv...",
		Short: "pre-braking distance and velocities per turn",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd.Context(), args)
			if err != nil {
				return err
			}
			r, err := s.braking(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().BoolVar(&opts.group, "group", false, "average the laps of each driver")
	cmd.Flags().IntSliceVar(&opts.laps, "laps", nil, "restrict to these laps (session numbering)")
	return cmd
}

type brakingRow struct {
	Turn               string          `json:"turn"`
	Lap                *int            `json:"lap,omitempty"` // nil when grouped
	Driver             string          `json:"driver"`
	Laps               int             `json:"laps"`
	HasBraked          bool            `json:"hasBraked"`
	PreBrakingDistance decimal.Decimal `json:"preBrakingDistance"`
	MeanVelocity       decimal.Decimal `json:"meanVelocity"`
	ExitVelocity       decimal.Decimal `json:"exitVelocity"`
}

type brakingReport []brakingRow

func (s *session) braking(ctx context.Context, opts brakingOptions) (brakingReport, error) {
	cfg := braking.StatsConfig{
		LapOffsets:    s.runs.Offsets,
		GroupByDriver: opts.group,
	}
	for _, number := range opts.laps {
		_, idx, err := s.lap(number)
		if err != nil {
			return nil, err
		}
		cfg.LapSubset = append(cfg.LapSubset, idx)
	}
	events, err := s.proc.BrakingStats(ctx, s.laps, cfg)
	if err != nil {
		return nil, err
	}
	ret := make(brakingReport, len(events))
	for i := range events {
		ret[i] = newBrakingRow(&events[i], opts.group)
	}
	return ret, nil
}

func newBrakingRow(e *model.BrakingEvent, grouped bool) brakingRow {
	ret := brakingRow{
		Turn:               e.Turn,
		Driver:             e.Driver,
		Laps:               e.Laps,
		HasBraked:          e.HasBraked,
		PreBrakingDistance: round(e.PreBrakingDistance),
		MeanVelocity:       round(e.MeanVelocity),
		ExitVelocity:       round(e.ExitVelocity),
	}
	if !grouped {
		lap := e.LapNumber
		ret.Lap = &lap
	}
	return ret
}

func (r brakingReport) header() []string {
	return []string{"TURN", "LAP", "DRIVER", "LAPS", "BRAKED", "PRE-BRAKING", "MEAN-V", "EXIT-V"}
}

func (r brakingReport) rows() [][]string {
	ret := make([][]string, len(r))
	for i, row := range r {
		lap := "-"
		if row.Lap != nil {
			lap = strconv.Itoa(*row.Lap)
		}
		ret[i] = []string{
			row.Turn, lap, row.Driver, strconv.Itoa(row.Laps),
			strconv.FormatBool(row.HasBraked),
			row.PreBrakingDistance.String(),
			row.MeanVelocity.String(),
			row.ExitVelocity.String(),
		}
	}
	return ret
}
