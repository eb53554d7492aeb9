package analyze

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PauMatas/DPA-visual-analytics-tool/log"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/config"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/curve"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/telemetry"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "analyze telemetry runs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&config.Driver,
		"driver",
		"Unknown",
		"driver of runs not mapped in the profile")
	cmd.PersistentFlags().StringVarP(&config.Output,
		"output",
		"o",
		"text",
		"output format (text, json)")
	cmd.PersistentFlags().Int32Var(&config.Precision,
		"precision",
		3,
		"decimal places of reported values")
	cmd.PersistentFlags().Float64Var(&config.CircuitLength,
		"circuit-length",
		0,
		"measured circuit length in meters (overrides the profile)")

	cmd.AddCommand(NewSmoothnessCmd())
	cmd.AddCommand(NewBrakingCmd())
	cmd.AddCommand(NewDeltaCmd())
	cmd.AddCommand(NewSectorsCmd())
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	log.ResetDefault(logger)
}

// session holds the prepared laps of all runs given on the command line
type session struct {
	proc *processing.Processor
	runs *telemetry.Session
	laps []*model.Lap // prepared, same order as runs.Laps()
}

func loadSession(ctx context.Context, files []string) (*session, error) {
	logger := log.GetFromContext(ctx).Named("analyze")
	profile := config.DefaultProfile()
	if config.ProfileFile != "" {
		var err error
		if profile, err = config.LoadProfile(config.ProfileFile); err != nil {
			return nil, err
		}
	}
	if config.CircuitLength > 0 {
		profile.CircuitLength = config.CircuitLength
	}
	if config.CurveFile == "" {
		return nil, fmt.Errorf("%w: no reference curve given (--curve)", model.ErrConfiguration)
	}
	c, err := curve.ReadPolylineFile(config.CurveFile)
	if err != nil {
		return nil, err
	}
	proc, err := processing.NewProcessor(
		processing.WithCurve(c),
		processing.WithProfile(profile),
		processing.WithLogger(logger.Named("processing")))
	if err != nil {
		return nil, err
	}

	runs := telemetry.NewSession()
	for _, file := range files {
		run, err := telemetry.ReadFile(file, telemetry.WithLogger(logger.Named("telemetry")))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if driver := profile.DriverOf(run.ID, config.Driver); driver != run.Driver {
			run.Driver = driver
			for _, l := range run.Laps {
				l.Driver = driver
			}
		}
		offset, err := runs.Append(run)
		if err != nil {
			return nil, err
		}
		logger.Debug("run loaded",
			log.String("file", file),
			log.String("driver", run.Driver),
			log.Int("laps", len(run.Laps)),
			log.Int("offset", offset))
	}
	laps, err := proc.Prepare(runs.Laps())
	if err != nil {
		return nil, err
	}
	return &session{proc: proc, runs: runs, laps: laps}, nil
}

// number returns the session wide number of a lap
func (s *session) number(lap *model.Lap) int {
	return s.runs.Number(lap)
}

// lap returns the prepared lap with the session wide number
func (s *session) lap(number int) (*model.Lap, int, error) {
	for i, l := range s.laps {
		if s.number(l) == number {
			return l, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: no lap %d", model.ErrInvalidInput, number)
}
