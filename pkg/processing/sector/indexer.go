// Package sector splits the reference curve domain into equal sectors and
// microsectors and labels telemetry samples with the ids of both.
package sector

import (
	"fmt"
	"math"

	"github.com/PauMatas/DPA-visual-analytics-tool/log"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/curve"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// Segmentation defines the number of sectors and microsectors of a lap.
// Microsectors must be a multiple of Sectors.
type Segmentation struct {
	Sectors      int `json:"sectors"      yaml:"sectors"`
	Microsectors int `json:"microsectors" yaml:"microsectors"`
}

// DefaultSegmentation has 3 sectors with 10 microsectors each
var DefaultSegmentation = Segmentation{Sectors: 3, Microsectors: 30}

func (s Segmentation) Validate() error {
	if s.Sectors <= 0 || s.Microsectors <= 0 {
		return fmt.Errorf("%w: sectors (%d) and microsectors (%d) must be positive",
			model.ErrConfiguration, s.Sectors, s.Microsectors)
	}
	if s.Microsectors%s.Sectors != 0 {
		return fmt.Errorf("%w: microsectors (%d) not a multiple of sectors (%d)",
			model.ErrConfiguration, s.Microsectors, s.Sectors)
	}
	return nil
}

// PerSector is the number of microsectors in one sector
func (s Segmentation) PerSector() int {
	return s.Microsectors / s.Sectors
}

// SectorOf returns the sector containing the microsector
func (s Segmentation) SectorOf(microsectorID int) int {
	return (microsectorID-1)/s.PerSector() + 1
}

type Indexer struct {
	seg Segmentation
	l   *log.Logger
}

func NewIndexer(seg Segmentation) (*Indexer, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	return &Indexer{seg: seg, l: log.Default().Named("processing.sector")}, nil
}

func (ix *Indexer) Segmentation() Segmentation {
	return ix.seg
}

// Locate maps param in [lo, hi] to one of n equal intervals (ids 1..n).
// Values outside the domain are clamped to the first or last interval.
func Locate(param, lo, hi float64, n int) int {
	id := int(math.Floor((param-lo)/(hi-lo)*float64(n))) + 1
	return max(1, min(n, id))
}

// Boundaries returns the n+1 parameters separating n equal intervals of
// [lo, hi]. The i-th value is computed as lo + span*(i/n), so boundaries of
// a segmentation nest exactly into those of a finer multiple.
func Boundaries(lo, hi float64, n int) []float64 {
	ret := make([]float64, n+1)
	span := hi - lo
	for i := range ret {
		ret[i] = lo + span*(float64(i)/float64(n))
	}
	ret[n] = hi
	return ret
}

// SectorBoundaries returns the sector boundaries on the domain of c
func (ix *Indexer) SectorBoundaries(c curve.ReferenceCurve) []float64 {
	lo, hi := c.Domain()
	return Boundaries(lo, hi, ix.seg.Sectors)
}

func (ix *Indexer) MicrosectorBoundaries(c curve.ReferenceCurve) []float64 {
	lo, hi := c.Domain()
	return Boundaries(lo, hi, ix.seg.Microsectors)
}

// AssignSectors returns a copy of samples with SectorID and MicrosectorID set.
// Every sample must carry a curve parameter.
func (ix *Indexer) AssignSectors(
	samples []model.Sample, c curve.ReferenceCurve,
) ([]model.Sample, error) {
	lo, hi := c.Domain()
	ret := make([]model.Sample, len(samples))
	for i := range samples {
		s := samples[i]
		if !s.HasParam {
			return nil, fmt.Errorf("%w: sample %d: %s",
				model.ErrMissingField, i, model.FieldParam)
		}
		s.MicrosectorID = Locate(s.Param, lo, hi, ix.seg.Microsectors)
		s.SectorID = ix.seg.SectorOf(s.MicrosectorID)
		ret[i] = s
	}
	return ret, nil
}

// Label returns a copy of lap whose samples are projected onto c (where no
// parameter is present) and assigned to sectors.
//
//nolint:whitespace // can't make the linters happy
func (ix *Indexer) Label(
	lap *model.Lap, c curve.ReferenceCurve, resolution int,
) (*model.Lap, error) {
	if err := lap.Fields.Require(model.FieldPosition); err != nil && !hasAllParams(lap.Samples) {
		return nil, fmt.Errorf("%s: %w", lap, err)
	}
	projected := Project(lap.Samples, c, resolution)
	samples, err := ix.AssignSectors(projected, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lap, err)
	}
	ret := *lap
	ret.Samples = samples
	ret.Fields |= model.FieldParam | model.FieldSector
	ix.l.Debug("lap labelled",
		log.String("lap", lap.String()),
		log.Int("samples", len(samples)))
	return &ret, nil
}

func hasAllParams(samples []model.Sample) bool {
	for i := range samples {
		if !samples[i].HasParam {
			return false
		}
	}
	return true
}
