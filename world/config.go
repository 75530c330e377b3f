package world

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Estimator selects the f0 estimator used by Analyze.
type Estimator string

const (
	EstimatorDio     Estimator = "dio"
	EstimatorHarvest Estimator = "harvest"
)

// AnalysisConfig selects the estimator and overrides option fields for
// Analyze. Nil fields keep the backend defaults. The zero value analyses
// with Dio, StoneMask refinement and default options.
type AnalysisConfig struct {
	Estimator      Estimator `yaml:"estimator"`
	SkipRefinement bool      `yaml:"skip_refinement"`

	Dio        DioOverrides        `yaml:"dio"`
	Harvest    HarvestOverrides    `yaml:"harvest"`
	CheapTrick CheapTrickOverrides `yaml:"cheaptrick"`
	D4C        D4COverrides        `yaml:"d4c"`
}

// DioOverrides replaces individual Dio defaults.
type DioOverrides struct {
	F0Floor          *float64 `yaml:"f0_floor"`
	F0Ceil           *float64 `yaml:"f0_ceil"`
	ChannelsInOctave *float64 `yaml:"channels_in_octave"`
	FramePeriod      *float64 `yaml:"frame_period"`
	Speed            *int32   `yaml:"speed"`
	AllowedRange     *float64 `yaml:"allowed_range"`
}

// HarvestOverrides replaces individual Harvest defaults.
type HarvestOverrides struct {
	F0Floor     *float64 `yaml:"f0_floor"`
	F0Ceil      *float64 `yaml:"f0_ceil"`
	FramePeriod *float64 `yaml:"frame_period"`
}

// CheapTrickOverrides replaces individual CheapTrick defaults. The FFT size
// always follows F0Floor.
type CheapTrickOverrides struct {
	Q1      *float64 `yaml:"q1"`
	F0Floor *float64 `yaml:"f0_floor"`
}

// D4COverrides replaces individual D4C defaults.
type D4COverrides struct {
	Threshold *float64 `yaml:"threshold"`
}

// LoadAnalysisConfig decodes a YAML analysis configuration. Unknown keys are
// rejected. An empty document yields the zero config.
func LoadAnalysisConfig(r io.Reader) (AnalysisConfig, error) {
	var cfg AnalysisConfig

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return AnalysisConfig{}, fmt.Errorf("world: decode analysis config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return AnalysisConfig{}, err
	}
	return cfg, nil
}

// Validate reports an unknown estimator. Option values are not checked.
func (c AnalysisConfig) Validate() error {
	switch c.Estimator {
	case "", EstimatorDio, EstimatorHarvest:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEstimator, c.Estimator)
	}
}

func (c AnalysisConfig) estimator() Estimator {
	if c.Estimator == "" {
		return EstimatorDio
	}
	return c.Estimator
}

func (o DioOverrides) apply(opt *DioOption) {
	set(&opt.F0Floor, o.F0Floor)
	set(&opt.F0Ceil, o.F0Ceil)
	set(&opt.ChannelsInOctave, o.ChannelsInOctave)
	set(&opt.FramePeriod, o.FramePeriod)
	set(&opt.Speed, o.Speed)
	set(&opt.AllowedRange, o.AllowedRange)
}

func (o HarvestOverrides) apply(opt *HarvestOption) {
	set(&opt.F0Floor, o.F0Floor)
	set(&opt.F0Ceil, o.F0Ceil)
	set(&opt.FramePeriod, o.FramePeriod)
}

func (o CheapTrickOverrides) apply(opt *CheapTrickOption) {
	set(&opt.Q1, o.Q1)
	set(&opt.F0Floor, o.F0Floor)
}

func (o D4COverrides) apply(opt *D4COption) {
	set(&opt.Threshold, o.Threshold)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
