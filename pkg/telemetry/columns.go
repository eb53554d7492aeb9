package telemetry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// column names of the telemetry export
const (
	ColTimestamp   = "timestamp"
	ColX           = "xposition"
	ColY           = "yposition"
	ColZ           = "zposition"
	ColVelocity    = "velocity"
	ColVelocityX   = "xvelocity"
	ColVelocityY   = "yvelocity"
	ColBrake       = "bpe"
	ColThrottle    = "throttle"
	ColSteering    = "steering"
	ColStep        = "dist1"
	ColDelta       = "delta"
	ColLap         = "laps"
	ColParam       = "param"
	ColSector      = "sector"
	ColMicrosector = "microsector"
)

var requiredColumns = []string{ColTimestamp, ColLap}

// Columns maps the (case insensitive) header names to their position
type Columns struct {
	lookup map[string]int
}

func NewColumns(header []string) *Columns {
	ret := &Columns{lookup: make(map[string]int, len(header))}
	for i, h := range header {
		ret.lookup[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return ret
}

func (c *Columns) Has(key string) bool {
	_, ok := c.lookup[key]
	return ok
}

// HasAll reports whether all keys are present
func (c *Columns) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !c.Has(k) {
			return false
		}
	}
	return true
}

func (c *Columns) Require(keys ...string) error {
	for _, k := range keys {
		if !c.Has(k) {
			return fmt.Errorf("%w: missing required column %s", model.ErrMissingField, k)
		}
	}
	return nil
}

// Float parses the value of column key in row.
// Absent columns yield 0.
func (c *Columns) Float(row []string, key string) (float64, error) {
	idx, ok := c.lookup[key]
	if !ok || idx >= len(row) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s: %w", model.ErrInvalidInput, key, err)
	}
	return v, nil
}

// Fields derives the available sample fields from the header
func (c *Columns) Fields() model.FieldSet {
	var ret model.FieldSet
	add := func(f model.FieldSet, keys ...string) {
		if c.HasAll(keys...) {
			ret |= f
		}
	}
	add(model.FieldTimestamp, ColTimestamp)
	add(model.FieldPosition, ColX, ColY)
	add(model.FieldBrake, ColBrake)
	add(model.FieldThrottle, ColThrottle)
	add(model.FieldSteering, ColSteering)
	add(model.FieldStepDistance, ColStep)
	add(model.FieldDistance, ColStep)
	add(model.FieldTimeDelta, ColDelta)
	add(model.FieldParam, ColParam)
	add(model.FieldSector, ColSector, ColMicrosector)
	if c.Has(ColVelocity) || c.HasAll(ColVelocityX, ColVelocityY) {
		ret |= model.FieldVelocity
	}
	return ret
}
