package analyze

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func NewSmoothnessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoothness telemetry.csv...",
		Short: "throttle harshness and steering smoothness per lap",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd.Context(), args)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), s.smoothness())
		},
	}
	return cmd
}

type smoothnessRow struct {
	Lap      int             `json:"lap"`
	Driver   string          `json:"driver"`
	Run      string          `json:"run"`
	LapTime  decimal.Decimal `json:"lapTime"`
	Throttle decimal.Decimal `json:"throttleHarshness"`
	Steering decimal.Decimal `json:"steeringSmoothness"`
}

type smoothnessReport []smoothnessRow

func (s *session) smoothness() smoothnessReport {
	ret := make(smoothnessReport, len(s.laps))
	for i, l := range s.laps {
		ret[i] = smoothnessRow{
			Lap:      s.number(l),
			Driver:   l.Driver,
			Run:      l.Run,
			LapTime:  round(l.LapTime),
			Throttle: round(l.Metrics.ThrottleHarshness),
			Steering: round(l.Metrics.SteeringSmoothness),
		}
	}
	return ret
}

func (r smoothnessReport) header() []string {
	return []string{"LAP", "DRIVER", "RUN", "LAPTIME", "THROTTLE", "STEERING"}
}

func (r smoothnessReport) rows() [][]string {
	ret := make([][]string, len(r))
	for i, row := range r {
		ret[i] = []string{
			strconv.Itoa(row.Lap), row.Driver, row.Run,
			row.LapTime.String(), row.Throttle.String(), row.Steering.String(),
		}
	}
	return ret
}
