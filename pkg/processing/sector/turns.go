package sector

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// TurnLookup finds the turn enclosing a microsector.
// It is read-only after construction and safe for concurrent use.
type TurnLookup struct {
	turns []model.TurnWindow
	slots []int // per microsector id: turn index + 1, 0 if none
}

func NewTurnLookup(turns []model.TurnWindow, seg Segmentation) (*TurnLookup, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	ret := &TurnLookup{
		turns: append([]model.TurnWindow(nil), turns...),
		slots: make([]int, seg.Microsectors+1),
	}
	for i, t := range turns {
		if err := t.Validate(seg.Microsectors); err != nil {
			return nil, err
		}
		for ms := t.FirstMicrosector; ms <= t.LastMicrosector; ms++ {
			if other := ret.slots[ms]; other != 0 {
				return nil, fmt.Errorf("%w: turns %q and %q overlap at microsector %d",
					model.ErrConfiguration, turns[other-1].Name, t.Name, ms)
			}
			ret.slots[ms] = i + 1
		}
	}
	return ret, nil
}

func (tl *TurnLookup) Turns() []model.TurnWindow {
	return tl.turns
}

// Find returns the turn enclosing the microsector
func (tl *TurnLookup) Find(microsectorID int) (model.TurnWindow, bool) {
	idx := tl.Index(microsectorID)
	if idx < 0 {
		return model.TurnWindow{}, false
	}
	return tl.turns[idx], true
}

// Index returns the position of the enclosing turn in Turns() or -1
func (tl *TurnLookup) Index(microsectorID int) int {
	if microsectorID < 1 || microsectorID >= len(tl.slots) {
		return -1
	}
	return tl.slots[microsectorID] - 1
}

// ByName returns the turn with the given name
func (tl *TurnLookup) ByName(name string) (model.TurnWindow, int, bool) {
	t, idx, ok := lo.FindIndexOf(tl.turns, func(t model.TurnWindow) bool {
		return t.Name == name
	})
	return t, idx, ok
}

// Window returns the samples located in turn, keeping their order.
func Window(samples []model.Sample, turn model.TurnWindow) []model.Sample {
	return lo.Filter(samples, func(s model.Sample, _ int) bool {
		return turn.Contains(s.MicrosectorID)
	})
}
