package model

import "fmt"

// TurnWindow is an inclusive range of microsector ids describing a corner.
type TurnWindow struct {
	Name             string `json:"name"             yaml:"name"`
	FirstMicrosector int    `json:"firstMicrosector" yaml:"firstMicrosector"`
	LastMicrosector  int    `json:"lastMicrosector"  yaml:"lastMicrosector"`
}

func (t TurnWindow) Contains(microsectorID int) bool {
	return t.FirstMicrosector <= microsectorID && microsectorID <= t.LastMicrosector
}

// Validate checks the window against the number of microsectors.
func (t TurnWindow) Validate(microsectors int) error {
	if t.FirstMicrosector < 1 || t.LastMicrosector > microsectors {
		return fmt.Errorf("%w: turn %q range [%d,%d] outside [1,%d]",
			ErrConfiguration, t.Name, t.FirstMicrosector, t.LastMicrosector, microsectors)
	}
	if t.FirstMicrosector > t.LastMicrosector {
		return fmt.Errorf("%w: turn %q has inverted range [%d,%d]",
			ErrConfiguration, t.Name, t.FirstMicrosector, t.LastMicrosector)
	}
	return nil
}
