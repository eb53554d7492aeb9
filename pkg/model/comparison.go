package model

// BrakingEvent describes how a lap (or a driver, when grouped) brakes into a turn.
type BrakingEvent struct {
	Turn               string  `json:"turn"`
	TurnIndex          int     `json:"turnIndex"`
	LapNumber          int     `json:"lapNumber"`
	Driver             string  `json:"driver"`
	HasBraked          bool    `json:"hasBraked"`
	MeanVelocity       float64 `json:"meanVelocity"`
	ExitVelocity       float64 `json:"exitVelocity"`
	PreBrakingDistance float64 `json:"preBrakingDistance"`
	Laps               int     `json:"laps"` // number of laps aggregated into this event
}

type Leader int

const (
	LeaderTie Leader = iota
	LeaderA
	LeaderB
)

func (l Leader) String() string {
	switch l {
	case LeaderA:
		return "A"
	case LeaderB:
		return "B"
	default:
		return "Tie"
	}
}

func (l Leader) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// LeaderOf returns the lap ahead for a time difference A-B
func LeaderOf(diff float64) Leader {
	switch {
	case diff < 0:
		return LeaderA
	case diff > 0:
		return LeaderB
	default:
		return LeaderTie
	}
}

// Pair links a sample of lap A to a sample of lap B at a gate
type Pair struct {
	IndexA   int     `json:"indexA"`
	IndexB   int     `json:"indexB"`
	Distance float64 `json:"distance"`
}

type DeltaPoint struct {
	Distance  float64 `json:"distance"`
	TimeDelta float64 `json:"timeDelta"`
	Leader    Leader  `json:"leader"`
}

type DeltaCurve []DeltaPoint

type SectorStatus int

const (
	SectorOther SectorStatus = iota
	SectorPersonalBest
	SectorBest
)

func (s SectorStatus) String() string {
	switch s {
	case SectorBest:
		return "best"
	case SectorPersonalBest:
		return "personal_best"
	default:
		return "other"
	}
}

func (s SectorStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
