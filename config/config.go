// Package config loads planner tuning (vehicle kinematics, search sample
// counts, AIS MMSIs to ignore) from a YAML file via viper, the way the rest
// of this corpus loads configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/sternwake/covplan/planner"
)

// Vehicle describes the kinematic limits this planner instance plans for.
type Vehicle struct {
	MaxSpeed         float64 `mapstructure:"max_speed"`
	MaxTurningRadius float64 `mapstructure:"max_turning_radius"`
}

// Search holds search-core tuning.
type Search struct {
	SamplesPerVertex int   `mapstructure:"samples_per_vertex"`
	RandomSeed       int64 `mapstructure:"random_seed"`
}

// Obstacles lists AIS MMSIs the dynamic obstacle tracker should ignore (the
// vehicle's own transponder, typically).
type Obstacles struct {
	IgnoreMMSI []uint32 `mapstructure:"ignore_mmsi"`
}

// File is the top-level shape of a planner config file.
type File struct {
	Vehicle   Vehicle   `mapstructure:"vehicle"`
	Search    Search    `mapstructure:"search"`
	Obstacles Obstacles `mapstructure:"obstacles"`
}

// FromYAML reads and parses a planner config file at path.
func FromYAML(path string) (*File, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	f := &File{}
	if err := vp.Unmarshal(f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return f, nil
}

// PlannerConfig converts the file's tuning into a planner.Config, falling
// back to the planner package's default sample count and random seed when
// those are left zero-valued. The vehicle limits are used as given.
func (f *File) PlannerConfig() planner.Config {
	cfg := planner.DefaultConfig(f.Vehicle.MaxSpeed, f.Vehicle.MaxTurningRadius)
	if f.Search.SamplesPerVertex > 0 {
		cfg.SamplesPerVertex = f.Search.SamplesPerVertex
	}
	if f.Search.RandomSeed != 0 {
		cfg.RandomSeed = f.Search.RandomSeed
	}
	return cfg
}
