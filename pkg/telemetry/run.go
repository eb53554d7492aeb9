package telemetry

import (
	"fmt"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// Run is one recorded telemetry trace of a driver
type Run struct {
	ID     string
	Driver string
	Fields model.FieldSet
	Laps   []*model.Lap
}

// Lap returns the lap with the given (run local) number
func (r *Run) Lap(number int) (*model.Lap, bool) {
	for _, l := range r.Laps {
		if l.Number == number {
			return l, true
		}
	}
	return nil, false
}

// Session concatenates runs. Lap numbers of later runs are shifted so that
// they follow the last lap of the previous runs.
type Session struct {
	Runs    []*Run
	Offsets map[string]int // run id -> lap number offset
	last    int
}

func NewSession() *Session {
	return &Session{Offsets: make(map[string]int)}
}

// Append adds a run and returns the offset applied to its lap numbers.
func (s *Session) Append(r *Run) (int, error) {
	if _, ok := s.Offsets[r.ID]; ok {
		return 0, fmt.Errorf("%w: duplicate run id %q", model.ErrInvalidInput, r.ID)
	}
	offset := s.last
	s.Offsets[r.ID] = offset
	s.Runs = append(s.Runs, r)
	for _, l := range r.Laps {
		s.last = max(s.last, l.Number+offset)
	}
	return offset, nil
}

// Laps returns the laps of all runs in order of appending
func (s *Session) Laps() []*model.Lap {
	ret := make([]*model.Lap, 0)
	for _, r := range s.Runs {
		ret = append(ret, r.Laps...)
	}
	return ret
}

// Lap finds a lap by its session wide number
func (s *Session) Lap(number int) (*model.Lap, bool) {
	for _, r := range s.Runs {
		if l, ok := r.Lap(number - s.Offsets[r.ID]); ok {
			return l, true
		}
	}
	return nil, false
}

// Number returns the session wide number of lap
func (s *Session) Number(lap *model.Lap) int {
	return lap.Number + s.Offsets[lap.Run]
}
