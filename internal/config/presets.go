package config

import (
	"fmt"
	"math"
	"sort"
)

// Presets build a fresh configuration each time they are requested.
var Presets = map[string]func() *Config{
	"break": func() *Config {
		cfg := DefaultConfig()
		cfg.Shots = []ShotConfig{{At: 0.1, Pitch: 0.1, Distance: DefaultDistance, Weapon: "rifle"}}
		return cfg
	},
	"soft_break": func() *Config {
		cfg := DefaultConfig()
		cfg.Shots = []ShotConfig{{At: 0.1, Pitch: 0.1, Distance: DefaultDistance, Weapon: "pistol"}}
		return cfg
	},
	"drop": func() *Config {
		cfg := DefaultConfig()
		cfg.Rack.Rows = 0
		cfg.Rack.Cue = [3]float64{0, 3, 0}
		cfg.Run.Duration = 5
		return cfg
	},
	"bank": func() *Config {
		cfg := DefaultConfig()
		cfg.Rack.Rows = 0
		cfg.Rack.Cue = [3]float64{0, 1.01, 0}
		cfg.Run.Duration = 6
		cfg.Shots = []ShotConfig{{At: 0.1, Yaw: math.Pi / 5, Pitch: 0.15, Distance: DefaultDistance, Weapon: "pistol"}}
		return cfg
	},
	"single": func() *Config {
		cfg := DefaultConfig()
		cfg.Rack.Rows = 1
		cfg.Rack.Apex = [3]float64{0.6, 1.01, 0.25}
		cfg.Rack.Cue = [3]float64{0.2, 1.01, 0.05}
		cfg.Run.Duration = 5
		yaw := math.Atan2(0.2, 0.4)
		cfg.Shots = []ShotConfig{{At: 0.1, Yaw: yaw, Pitch: 0.1, Distance: DefaultDistance, Weapon: "pistol"}}
		return cfg
	},
}

func GetPreset(name string) (*Config, error) {
	build, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPreset)
	}
	cfg := build()
	cfg.Preset = name
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
