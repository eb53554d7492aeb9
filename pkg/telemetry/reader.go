// Package telemetry reads recorded telemetry traces into laps.
package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PauMatas/DPA-visual-analytics-tool/log"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

type (
	ReadOption func(c *readConfig)
	readConfig struct {
		runID  string
		driver string
		l      *log.Logger
	}
)

// WithRunID sets the run identifier (default: file name without extension)
func WithRunID(id string) ReadOption {
	return func(c *readConfig) {
		c.runID = id
	}
}

func WithDriver(driver string) ReadOption {
	return func(c *readConfig) {
		c.driver = driver
	}
}

func WithLogger(l *log.Logger) ReadOption {
	return func(c *readConfig) {
		c.l = l
	}
}

// ReadFile reads a telemetry CSV file
func ReadFile(path string, opts ...ReadOption) (*Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(f, append([]ReadOption{WithRunID(id)}, opts...)...)
}

// Read parses telemetry rows and groups them into laps by the laps column.
// Only the timestamp and lap columns are required; fields missing from the
// header are recorded on every lap.
//
//nolint:funlen // readability
func Read(r io.Reader, opts ...ReadOption) (*Run, error) {
	c := &readConfig{
		runID:  "run",
		driver: "Unknown",
		l:      log.Default().Named("telemetry"),
	}
	for _, opt := range opts {
		opt(c)
	}

	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", model.ErrInvalidInput, err)
	}
	cols := NewColumns(header)
	if err := cols.Require(requiredColumns...); err != nil {
		return nil, err
	}
	fields := cols.Fields()

	byLap := make(map[int][]model.Sample)
	order := make([]int, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", model.ErrInvalidInput, line, err)
		}
		lapValue, err := cols.Float(row, ColLap)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		s, err := parseSample(cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		lapNo := int(lapValue)
		if _, ok := byLap[lapNo]; !ok {
			order = append(order, lapNo)
		}
		byLap[lapNo] = append(byLap[lapNo], s)
	}

	slices.Sort(order)
	ret := &Run{ID: c.runID, Driver: c.driver, Fields: fields}
	for _, lapNo := range order {
		samples := byLap[lapNo]
		accumulateDistance(samples)
		lap, err := model.NewLap(lapNo, samples,
			model.WithDriver(c.driver),
			model.WithRun(c.runID),
			model.WithFields(fields))
		if err != nil {
			return nil, err
		}
		ret.Laps = append(ret.Laps, lap)
	}
	c.l.Debug("telemetry read",
		log.String("run", c.runID),
		log.Int("laps", len(ret.Laps)),
		log.String("fields", fields.String()))
	return ret, nil
}

func parseSample(cols *Columns, row []string) (model.Sample, error) {
	var s model.Sample
	targets := []struct {
		key string
		dst *float64
	}{
		{ColTimestamp, &s.Timestamp},
		{ColX, &s.Position.X},
		{ColY, &s.Position.Y},
		{ColZ, &s.Position.Z},
		{ColVelocity, &s.Velocity},
		{ColBrake, &s.Brake},
		{ColThrottle, &s.Throttle},
		{ColSteering, &s.Steering},
		{ColStep, &s.StepDistance},
		{ColDelta, &s.TimeDelta},
		{ColParam, &s.Param},
	}
	for _, t := range targets {
		v, err := cols.Float(row, t.key)
		if err != nil {
			return s, err
		}
		*t.dst = v
	}
	if !cols.Has(ColVelocity) && cols.HasAll(ColVelocityX, ColVelocityY) {
		vx, err := cols.Float(row, ColVelocityX)
		if err != nil {
			return s, err
		}
		vy, err := cols.Float(row, ColVelocityY)
		if err != nil {
			return s, err
		}
		s.Velocity = math.Hypot(vx, vy)
	}
	s.HasParam = cols.Has(ColParam)
	if cols.HasAll(ColSector, ColMicrosector) {
		sec, err := cols.Float(row, ColSector)
		if err != nil {
			return s, err
		}
		ms, err := cols.Float(row, ColMicrosector)
		if err != nil {
			return s, err
		}
		s.SectorID, s.MicrosectorID = int(sec), int(ms)
	}
	return s, nil
}

// accumulateDistance fills Distance with the running sum of StepDistance
// in timestamp order.
func accumulateDistance(samples []model.Sample) {
	idx := make([]int, len(samples))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case samples[a].Timestamp < samples[b].Timestamp:
			return -1
		case samples[a].Timestamp > samples[b].Timestamp:
			return 1
		default:
			return 0
		}
	})
	dist := 0.0
	for _, i := range idx {
		dist += samples[i].StepDistance
		samples[i].Distance = dist
	}
}
