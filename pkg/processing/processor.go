package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/PauMatas/DPA-visual-analytics-tool/log"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/config"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/curve"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/braking"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/delta"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/harshness"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/sector"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/spatial"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/utils/cache"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/utils/cache/loadercache"
)

// Processor combines the analytics of a circuit for a set of laps.
type Processor struct {
	curve          curve.ReferenceCurve
	profile        *config.Profile
	indexer        *sector.Indexer
	turns          *sector.TurnLookup
	matcher        *spatial.Matcher
	matcherOptions []spatial.Option
	cumulative     cache.Cache[*model.Lap, []float64]
	l              *log.Logger
}
type ProcessorOption func(proc *Processor)

// WithCurve sets the reference curve. Required for labelling and comparison.
func WithCurve(c curve.ReferenceCurve) ProcessorOption {
	return func(proc *Processor) {
		proc.curve = c
	}
}

// WithProfile replaces the default analysis profile
func WithProfile(p *config.Profile) ProcessorOption {
	return func(proc *Processor) {
		proc.profile = p
	}
}

// WithMatcherOptions passes additional options to the spatial matcher.
// They are applied after the options derived from the profile.
func WithMatcherOptions(opts ...spatial.Option) ProcessorOption {
	return func(proc *Processor) {
		proc.matcherOptions = append(proc.matcherOptions, opts...)
	}
}

func WithLogger(l *log.Logger) ProcessorOption {
	return func(proc *Processor) {
		proc.l = l
	}
}

func NewProcessor(opts ...ProcessorOption) (*Processor, error) {
	ret := &Processor{
		profile: config.DefaultProfile(),
		l:       log.Default().Named("processing"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if err := ret.profile.Validate(); err != nil {
		return nil, err
	}
	var err error
	if ret.indexer, err = sector.NewIndexer(ret.profile.Segmentation()); err != nil {
		return nil, err
	}
	if ret.turns, err = sector.NewTurnLookup(
		ret.profile.Turns, ret.profile.Segmentation()); err != nil {
		return nil, err
	}
	if ret.curve != nil {
		matcherOpts := []spatial.Option{
			spatial.WithFullLapGates(ret.profile.FullLapGates),
			spatial.WithMinGates(ret.profile.MinGates),
			spatial.WithMinAcceptance(ret.profile.MinAcceptance),
			spatial.WithCircuitLength(ret.profile.CircuitLength),
			spatial.WithLogger(ret.l.Named("spatial")),
		}
		ret.matcher = spatial.NewMatcher(ret.curve, append(matcherOpts, ret.matcherOptions...)...)
	}
	ret.cumulative = loadercache.New(
		loadercache.WithLoader[*model.Lap, []float64](cumulativeTime),
		loadercache.WithLogger[*model.Lap, []float64](ret.l.Named("cache")),
	)
	return ret, nil
}

var ErrNoCurve = errors.New("no reference curve configured")

func cumulativeTime(ctx context.Context, lap *model.Lap) (*[]float64, error) {
	cum, err := delta.CumulativeTime(lap)
	if err != nil {
		return nil, err
	}
	return &cum, nil
}

func (p *Processor) Profile() *config.Profile {
	return p.profile
}

func (p *Processor) Turns() *sector.TurnLookup {
	return p.turns
}

// Prepare labels the laps with sectors and computes their smoothness metrics.
// The given laps are not modified.
func (p *Processor) Prepare(laps []*model.Lap) ([]*model.Lap, error) {
	if p.curve == nil {
		return nil, ErrNoCurve
	}
	ret := make([]*model.Lap, 0, len(laps))
	for _, lap := range laps {
		labelled, err := p.indexer.Label(lap, p.curve, p.profile.ProjectionResolution)
		if err != nil {
			return nil, err
		}
		labelled.Metrics, err = p.Smoothness(labelled)
		if err != nil {
			return nil, err
		}
		ret = append(ret, labelled)
	}
	p.l.Debug("laps prepared", log.Int("laps", len(ret)))
	return ret, nil
}

// Smoothness computes throttle harshness and steering smoothness of lap.
// A metric is left at 0 if the lap has no data for its control.
func (p *Processor) Smoothness(lap *model.Lap) (model.LapMetric, error) {
	ret := lap.Metrics
	var err error
	if lap.Fields.Has(model.FieldThrottle | model.FieldTimestamp) {
		ret.ThrottleHarshness, err = harshness.Throttle(lap, p.profile.SmoothingWindow,
			harshness.WithScale(p.profile.ThrottleScale))
		if err != nil {
			return ret, err
		}
	}
	if lap.Fields.Has(model.FieldSteering | model.FieldTimestamp) {
		ret.SteeringSmoothness, err = harshness.Steering(lap, p.profile.SmoothingWindow,
			harshness.WithScale(p.profile.SteeringScale))
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

// BrakingStats evaluates all configured turns for the prepared laps.
// A zero threshold in cfg selects the threshold of the profile.
//
//nolint:whitespace // can't make the linters happy
func (p *Processor) BrakingStats(
	ctx context.Context, laps []*model.Lap, cfg braking.StatsConfig,
) ([]model.BrakingEvent, error) {
	if cfg.Threshold == 0 {
		cfg.Threshold = p.profile.BrakeThreshold
	}
	return braking.Stats(log.AddToContext(ctx, p.l), laps, p.turns, cfg)
}

// Window returns the parameter range of a turn or the whole lap for an
// empty name.
func (p *Processor) Window(turn string) (spatial.Window, error) {
	if p.curve == nil {
		return spatial.Window{}, ErrNoCurve
	}
	if turn == "" {
		return spatial.FullWindow(p.curve), nil
	}
	t, _, ok := p.turns.ByName(turn)
	if !ok {
		return spatial.Window{}, fmt.Errorf("%w: unknown turn %q", model.ErrInvalidInput, turn)
	}
	b := p.indexer.MicrosectorBoundaries(p.curve)
	return spatial.Window{Start: b[t.FirstMicrosector-1], End: b[t.LastMicrosector]}, nil
}

// Compare computes the time delta curve of two prepared laps inside w.
// gates <= 0 selects the default gate count for w.
//
//nolint:whitespace // can't make the linters happy
func (p *Processor) Compare(
	ctx context.Context, lapA, lapB *model.Lap, w spatial.Window, gates int,
) (model.DeltaCurve, error) {
	if p.matcher == nil {
		return nil, ErrNoCurve
	}
	pairs, err := p.matcher.Correspond(lapA, lapB, w, gates)
	if err != nil {
		return nil, err
	}
	cumA, err := p.cumulative.Get(ctx, lapA)
	if err != nil {
		return nil, err
	}
	cumB, err := p.cumulative.Get(ctx, lapB)
	if err != nil {
		return nil, err
	}
	return delta.FromCumulative(*cumA, *cumB, pairs)
}

// LapSectors is the sector summary of one lap
type LapSectors struct {
	Lap                int                  `json:"lap"`
	Driver             string               `json:"driver"`
	Run                string               `json:"run"`
	LapTime            float64              `json:"lapTime"`
	Times              sector.SegmentTimes  `json:"times"`
	SectorStatus       []model.SectorStatus `json:"sectorStatus"`
	MicrosectorStatus  []model.SectorStatus `json:"microsectorStatus"`
	ThrottleHarshness  float64              `json:"throttleHarshness"`
	SteeringSmoothness float64              `json:"steeringSmoothness"`
}

// SectorSummary computes segment times and their status for prepared laps.
// offsets shifts lap numbers per run id (may be nil).
func (p *Processor) SectorSummary(laps []*model.Lap, offsets map[string]int) ([]LapSectors, error) {
	times := make([]sector.LapTimes, 0, len(laps))
	for _, lap := range laps {
		st, err := p.indexer.Times(lap)
		if err != nil {
			return nil, err
		}
		times = append(times, sector.LapTimes{Lap: lap, Times: st})
	}
	bests := sector.ComputeBests(times)
	ret := make([]LapSectors, len(times))
	for i, lt := range times {
		ret[i] = LapSectors{
			Lap:                lt.Lap.Number + offsets[lt.Lap.Run],
			Driver:             lt.Lap.Driver,
			Run:                lt.Lap.Run,
			LapTime:            lt.Lap.LapTime,
			Times:              lt.Times,
			SectorStatus:       bests.Status(lt, false),
			MicrosectorStatus:  bests.Status(lt, true),
			ThrottleHarshness:  lt.Lap.Metrics.ThrottleHarshness,
			SteeringSmoothness: lt.Lap.Metrics.SteeringSmoothness,
		}
	}
	return ret, nil
}

// CompareSectors returns the faster lap per sector and microsector
//
//nolint:whitespace // can't make the linters happy
func (p *Processor) CompareSectors(
	lapA, lapB *model.Lap,
) (sectors, microsectors []model.Leader, err error) {
	a, err := p.indexer.Times(lapA)
	if err != nil {
		return nil, nil, err
	}
	b, err := p.indexer.Times(lapB)
	if err != nil {
		return nil, nil, err
	}
	return sector.Compare(a, b, false), sector.Compare(a, b, true), nil
}
