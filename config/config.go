// Package config loads analysis settings from YAML.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/LdDl/mr-go/mr"
)

// Thresholds of mobility classification
type Thresholds struct {
	Diffusive  float64 `yaml:"diffusive" validate:"gt=0"`
	Localized  float64 `yaml:"localized" validate:"gte=0,ltefield=Diffusive"`
	Unphysical float64 `yaml:"unphysical" validate:"gt=0"`
}

// Linking configures the tracker
type Linking struct {
	MaxDisplacement float64 `yaml:"max_displacement" validate:"gt=0"`
	MinAppearances  int     `yaml:"min_appearances" validate:"gte=1"`
	Memory          int     `yaml:"memory" validate:"gte=0"`
	Algorithm       string  `yaml:"algorithm" validate:"oneof=greedy hungarian"`
	// Predict enables Kalman prediction of positions between frames
	Predict bool `yaml:"predict"`
}

// Params returns linking parameters for a tracker session
func (linking Linking) Params() mr.LinkParams {
	return mr.LinkParams{
		MaxDisplacement: linking.MaxDisplacement,
		MinAppearances:  linking.MinAppearances,
		Memory:          linking.Memory,
	}
}

// Analysis is the configuration of a single analysis run
type Analysis struct {
	MicronsPerPixel float64    `yaml:"microns_per_pixel" validate:"gt=0"`
	FramesPerSecond float64    `yaml:"frames_per_second" validate:"gt=0"`
	MaxInterval     int        `yaml:"max_interval" validate:"gte=1"`
	Thresholds      Thresholds `yaml:"thresholds"`
	Linking         Linking    `yaml:"linking"`
	// Layout is column order of input tables: "core" or "tracker"
	Layout string `yaml:"layout" validate:"oneof=core tracker"`
}

// Default returns configuration with every default applied
func Default() Analysis {
	return Analysis{
		MicronsPerPixel: 1,
		FramesPerSecond: 1,
		MaxInterval:     mr.DefaultMaxInterval,
		Thresholds: Thresholds{
			Diffusive:  mr.DefaultDiffusiveThreshold,
			Localized:  mr.DefaultLocalizedThreshold,
			Unphysical: mr.DefaultUnphysicalThreshold,
		},
		Linking: Linking{
			MaxDisplacement: 5,
			MinAppearances:  2,
			Memory:          mr.DefaultMemory,
			Algorithm:       "greedy",
		},
		Layout: "core",
	}
}

// Validate checks every field
func (cfg Analysis) Validate() error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(err, "Invalid analysis configuration")
	}
	return nil
}

// Parse reads YAML over the defaults and validates the result
func Parse(data []byte) (Analysis, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Analysis{}, errors.Wrap(err, "Can't parse analysis configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Analysis{}, err
	}
	return cfg, nil
}

// Load reads configuration file at path
func Load(path string) (Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Analysis{}, errors.Wrapf(err, "Can't read configuration %s", path)
	}
	return Parse(data)
}
