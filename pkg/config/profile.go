package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/processing/sector"
)

// Profile holds the analysis parameters of a circuit
//
//nolint:lll // readablity
type Profile struct {
	Sectors               int                `yaml:"sectors"`
	MicrosectorsPerSector int                `yaml:"microsectorsPerSector"`
	BrakeThreshold        float64            `yaml:"brakeThreshold"`
	SmoothingWindow       int                `yaml:"smoothingWindow"`
	ThrottleScale         float64            `yaml:"throttleScale"`
	SteeringScale         float64            `yaml:"steeringScale"`
	FullLapGates          int                `yaml:"fullLapGates"`
	MinGates              int                `yaml:"minGates"`
	MinAcceptance         float64            `yaml:"minAcceptance"` // ratio of gates that must survive, 0 disables the check
	ProjectionResolution  int                `yaml:"projectionResolution"`
	CircuitLength         float64            `yaml:"circuitLength"` // 0: length of the reference curve
	Drivers               map[string]string  `yaml:"drivers"`       // run id -> driver name
	Turns                 []model.TurnWindow `yaml:"turns"`
}

func DefaultProfile() *Profile {
	return &Profile{
		Sectors:               3,
		MicrosectorsPerSector: 10,
		BrakeThreshold:        0.2,
		SmoothingWindow:       5,
		ThrottleScale:         100,
		SteeringScale:         1,
		FullLapGates:          100,
		MinGates:              10,
		ProjectionResolution:  1000,
		Drivers:               map[string]string{},
	}
}

// ParseProfile decodes a profile. Keys absent in the document keep their
// default value.
func ParseProfile(r io.Reader) (*Profile, error) {
	ret := DefaultProfile()
	if err := yaml.NewDecoder(r).Decode(ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseProfile(f)
}

func (p *Profile) Segmentation() sector.Segmentation {
	return sector.Segmentation{
		Sectors:      p.Sectors,
		Microsectors: p.Sectors * p.MicrosectorsPerSector,
	}
}

// DriverOf returns the driver of a run, fallback if the run is not mapped
func (p *Profile) DriverOf(runID, fallback string) string {
	if d, ok := p.Drivers[runID]; ok {
		return d
	}
	return fallback
}

func (p *Profile) Validate() error {
	seg := p.Segmentation()
	if err := seg.Validate(); err != nil {
		return err
	}
	check := func(ok bool, format string, args ...any) error {
		if ok {
			return nil
		}
		return fmt.Errorf("%w: %s", model.ErrConfiguration, fmt.Sprintf(format, args...))
	}
	if err := errors.Join(
		check(p.MicrosectorsPerSector > 0, "microsectorsPerSector must be positive"),
		check(p.BrakeThreshold > 0, "brakeThreshold must be positive"),
		check(p.SmoothingWindow > 0, "smoothingWindow must be positive"),
		check(p.ThrottleScale > 0 && p.SteeringScale > 0, "scales must be positive"),
		check(p.FullLapGates > 0 && p.MinGates > 0, "gate counts must be positive"),
		check(p.MinAcceptance >= 0 && p.MinAcceptance <= 1,
			"minAcceptance %g not in [0,1]", p.MinAcceptance),
		check(p.CircuitLength >= 0, "circuitLength must not be negative"),
	); err != nil {
		return err
	}
	_, err := sector.NewTurnLookup(p.Turns, seg)
	return err
}
