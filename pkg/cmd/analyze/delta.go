package analyze

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

type deltaOptions struct {
	lapA  int
	lapB  int
	turn  string
	gates int
}

func NewDeltaCmd() *cobra.Command {
	opts := deltaOptions{}
	cmd := &cobra.Command{
		Use:   "delta telemetry.csv...",
		Short: "time difference between two laps over distance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd.Context(), args)
			if err != nil {
				return err
			}
			r, err := s.delta(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().IntVar(&opts.lapA, "lap-a", 0, "first lap (session numbering)")
	cmd.Flags().IntVar(&opts.lapB, "lap-b", 0, "second lap (session numbering)")
	cmd.Flags().StringVar(&opts.turn, "turn", "", "restrict the comparison to a turn of the profile")
	cmd.Flags().IntVar(&opts.gates, "gates", 0, "number of gates, 0 selects a default")
	_ = cmd.MarkFlagRequired("lap-a")
	_ = cmd.MarkFlagRequired("lap-b")
	return cmd
}

type deltaRow struct {
	Distance  decimal.Decimal `json:"distance"`
	TimeDelta decimal.Decimal `json:"timeDelta"`
	Leader    model.Leader    `json:"leader"`
}

type deltaReport []deltaRow

func (s *session) delta(ctx context.Context, opts deltaOptions) (deltaReport, error) {
	lapA, _, err := s.lap(opts.lapA)
	if err != nil {
		return nil, err
	}
	lapB, _, err := s.lap(opts.lapB)
	if err != nil {
		return nil, err
	}
	w, err := s.proc.Window(opts.turn)
	if err != nil {
		return nil, err
	}
	curve, err := s.proc.Compare(ctx, lapA, lapB, w, opts.gates)
	if err != nil {
		return nil, err
	}
	ret := make(deltaReport, len(curve))
	for i, p := range curve {
		ret[i] = deltaRow{
			Distance:  round(p.Distance),
			TimeDelta: round(p.TimeDelta),
			Leader:    p.Leader,
		}
	}
	return ret, nil
}

func (r deltaReport) header() []string {
	return []string{"DISTANCE", "DELTA", "LEADER"}
}

func (r deltaReport) rows() [][]string {
	ret := make([][]string, len(r))
	for i, row := range r {
		ret[i] = []string{row.Distance.String(), row.TimeDelta.String(), row.Leader.String()}
	}
	return ret
}
