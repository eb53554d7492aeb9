package analyze

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

type sectorsOptions struct {
	microsectors bool
	lapA         int
	lapB         int
}

func NewSectorsCmd() *cobra.Command {
	opts := sectorsOptions{}
	cmd := &cobra.Command{
		Use:   "sectors telemetry.csv...",
		Short: "sector times and their status per lap",
		Long: `Prints the sector times of every lap and whether they are the overall
best, the personal best of the driver or neither.
With --lap-a and --lap-b the faster lap per segment is printed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd.Context(), args)
			if err != nil {
				return err
			}
			var r report
			if cmd.Flags().Changed("lap-a") || cmd.Flags().Changed("lap-b") {
				r, err = s.sectorComparison(opts)
			} else {
				r, err = s.sectors(opts)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().BoolVar(&opts.microsectors, "microsectors", false, "report microsectors instead of sectors")
	cmd.Flags().IntVar(&opts.lapA, "lap-a", 0, "first lap to compare (session numbering)")
	cmd.Flags().IntVar(&opts.lapB, "lap-b", 0, "second lap to compare (session numbering)")
	cmd.MarkFlagsRequiredTogether("lap-a", "lap-b")
	return cmd
}

type sectorRow struct {
	Lap    int                  `json:"lap"`
	Driver string               `json:"driver"`
	Times  []decimal.Decimal    `json:"times"`
	Status []model.SectorStatus `json:"status"`
}

type sectorsReport []sectorRow

func (s *session) sectors(opts sectorsOptions) (sectorsReport, error) {
	summary, err := s.proc.SectorSummary(s.laps, s.runs.Offsets)
	if err != nil {
		return nil, err
	}
	ret := make(sectorsReport, len(summary))
	for i := range summary {
		row := &summary[i]
		status := row.SectorStatus
		if opts.microsectors {
			status = row.MicrosectorStatus
		}
		ret[i] = sectorRow{
			Lap:    row.Lap,
			Driver: row.Driver,
			Times:  roundAll(row.Times.Select(opts.microsectors)),
			Status: status,
		}
	}
	return ret, nil
}

func (r sectorsReport) header() []string {
	return []string{"LAP", "DRIVER", "TIMES", "STATUS"}
}

func (r sectorsReport) rows() [][]string {
	ret := make([][]string, len(r))
	for i, row := range r {
		ret[i] = []string{
			strconv.Itoa(row.Lap), row.Driver,
			joinStringers(row.Times), joinStringers(row.Status),
		}
	}
	return ret
}

type comparisonReport struct {
	LapA    int            `json:"lapA"`
	LapB    int            `json:"lapB"`
	Leaders []model.Leader `json:"leaders"`
}

func (s *session) sectorComparison(opts sectorsOptions) (*comparisonReport, error) {
	lapA, _, err := s.lap(opts.lapA)
	if err != nil {
		return nil, err
	}
	lapB, _, err := s.lap(opts.lapB)
	if err != nil {
		return nil, err
	}
	sectors, microsectors, err := s.proc.CompareSectors(lapA, lapB)
	if err != nil {
		return nil, err
	}
	ret := &comparisonReport{LapA: opts.lapA, LapB: opts.lapB, Leaders: sectors}
	if opts.microsectors {
		ret.Leaders = microsectors
	}
	return ret, nil
}

func (r *comparisonReport) header() []string {
	return []string{"SEGMENT", "FASTER"}
}

func (r *comparisonReport) rows() [][]string {
	ret := make([][]string, len(r.Leaders))
	for i, l := range r.Leaders {
		faster := "tie"
		switch l {
		case model.LeaderA:
			faster = strconv.Itoa(r.LapA)
		case model.LeaderB:
			faster = strconv.Itoa(r.LapB)
		case model.LeaderTie:
			// keep
		}
		ret[i] = []string{strconv.Itoa(i + 1), faster}
	}
	return ret
}
