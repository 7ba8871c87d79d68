package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

const (
	DefaultDt          = 0.005
	DefaultDuration    = 10.0
	DefaultSampleEvery = 4
	DefaultWeapon      = "rifle"
	DefaultDistance    = 0.5
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid configuration")
)

type Config struct {
	Preset  string       `yaml:"preset,omitempty"`
	Table   TableConfig  `yaml:"table"`
	Physics sim.Params   `yaml:"physics"`
	Rack    RackConfig   `yaml:"rack"`
	Weapons []sim.Weapon `yaml:"weapons"`
	Run     RunConfig    `yaml:"run"`
	Shots   []ShotConfig `yaml:"shots,omitempty"`
}

type TableConfig struct {
	Bounds       physics.Bounds `yaml:"bounds"`
	Floor        float64        `yaml:"floor"`
	PocketRadius float64        `yaml:"pocket_radius"`
	PocketDepth  float64        `yaml:"pocket_depth"`
}

type RackConfig struct {
	Rows   int        `yaml:"rows"`
	Radius float64    `yaml:"radius"`
	Mass   float64    `yaml:"mass"`
	Gap    float64    `yaml:"gap"`
	Apex   [3]float64 `yaml:"apex,flow"`
	Cue    [3]float64 `yaml:"cue,flow"`
	Jitter float64    `yaml:"jitter"`
}

type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
	Seed        int64   `yaml:"seed"`
	Validate    bool    `yaml:"validate"`
}

// ShotConfig fires from an orbit camera around the cue ball.
type ShotConfig struct {
	At       float64 `yaml:"at"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	Distance float64 `yaml:"distance"`
	Weapon   string  `yaml:"weapon"`
}

func DefaultConfig() *Config {
	rack := sim.DefaultRack()
	return &Config{
		Table: TableConfig{
			Bounds: physics.Bounds{
				XPlus:  physics.DefaultXPlus,
				XMinus: physics.DefaultXMinus,
				ZPlus:  physics.DefaultZPlus,
				ZMinus: physics.DefaultZMinus,
				YPlus:  physics.DefaultYPlus,
			},
			Floor:        physics.DefaultFloor,
			PocketRadius: physics.DefaultPocketRadius,
			PocketDepth:  physics.DefaultPocketDepth,
		},
		Physics: sim.DefaultParams(),
		Rack: RackConfig{
			Rows:   rack.Rows,
			Radius: rack.Radius,
			Mass:   rack.Mass,
			Gap:    rack.Gap,
			Apex:   rack.Apex,
			Cue:    rack.Cue,
		},
		Weapons: defaultWeaponList(),
		Run: RunConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			SampleEvery: DefaultSampleEvery,
			Validate:    true,
		},
	}
}

func defaultWeaponList() []sim.Weapon {
	w := sim.DefaultWeapons()
	out := make([]sim.Weapon, 0, len(w))
	for _, name := range sim.WeaponNames(w) {
		out = append(out, w[name])
	}
	return out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	b := c.Table.Bounds
	check(b.XPlus > b.XMinus, "table x bounds inverted (%g <= %g)", b.XPlus, b.XMinus)
	check(b.ZPlus > b.ZMinus, "table z bounds inverted (%g <= %g)", b.ZPlus, b.ZMinus)
	check(b.YPlus > c.Table.Floor, "ceiling %g must be above floor %g", b.YPlus, c.Table.Floor)
	check(c.Table.PocketRadius > 0, "pocket_radius must be positive, got %g", c.Table.PocketRadius)
	check(c.Table.PocketDepth > 0, "pocket_depth must be positive, got %g", c.Table.PocketDepth)

	check(c.Rack.Rows >= 0, "rack rows must be non-negative, got %d", c.Rack.Rows)
	check(c.Rack.Radius > 0, "rack radius must be positive, got %g", c.Rack.Radius)
	check(c.Rack.Mass > 0, "rack mass must be positive, got %g", c.Rack.Mass)
	check(c.Rack.Gap >= 0, "rack gap must be non-negative, got %g", c.Rack.Gap)
	// Two neighbours can close in by at most 2·√2·jitter.
	check(c.Rack.Jitter == 0 || c.Rack.Jitter > 0 && 3*c.Rack.Jitter < c.Rack.Gap,
		"rack jitter %g must be non-negative and below a third of the gap", c.Rack.Jitter)

	check(c.Run.Dt > 0, "dt must be positive, got %f", c.Run.Dt)
	check(c.Run.Duration > 0, "duration must be positive, got %f", c.Run.Duration)
	check(c.Run.SampleEvery >= 0, "sample_every must be non-negative, got %d", c.Run.SampleEvery)

	weapons := c.WeaponMap()
	for i, s := range c.Shots {
		check(s.At >= 0, "shot %d: at must be non-negative, got %g", i, s.At)
		check(s.Distance > 0, "shot %d: distance must be positive, got %g", i, s.Distance)
		if _, err := sim.LookupWeapon(weapons, s.Weapon); err != nil {
			errs = append(errs, fmt.Errorf("shot %d: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func (c *Config) TableGeometry() *physics.Table {
	return physics.NewTable(c.Table.Bounds, c.Table.Floor, c.Table.PocketRadius, c.Table.PocketDepth)
}

func (c *Config) RackConfig() sim.RackConfig {
	return sim.RackConfig{
		Rows:   c.Rack.Rows,
		Radius: c.Rack.Radius,
		Mass:   c.Rack.Mass,
		Gap:    c.Rack.Gap,
		Apex:   mgl64.Vec3(c.Rack.Apex),
		Cue:    mgl64.Vec3(c.Rack.Cue),
		Jitter: c.Rack.Jitter,
		Seed:   c.Run.Seed,
	}
}

// WeaponMap indexes the configured weapons by name, falling back to the
// built-in arsenal when none are configured.
func (c *Config) WeaponMap() map[string]sim.Weapon {
	if len(c.Weapons) == 0 {
		return sim.DefaultWeapons()
	}
	m := make(map[string]sim.Weapon, len(c.Weapons))
	for _, w := range c.Weapons {
		m[w.Name] = w
	}
	return m
}

func (c *Config) SimConfig() sim.Config {
	shots := make([]sim.ScheduledShot, len(c.Shots))
	for i, s := range c.Shots {
		shots[i] = sim.ScheduledShot{
			At: s.At,
			Aim: &sim.Aim{
				Yaw:      s.Yaw,
				Pitch:    s.Pitch,
				Distance: s.Distance,
				Weapon:   s.Weapon,
			},
		}
	}
	return sim.Config{
		Dt:            c.Run.Dt,
		Duration:      c.Run.Duration,
		SampleEvery:   c.Run.SampleEvery,
		Seed:          c.Run.Seed,
		ValidateState: c.Run.Validate,
		Shots:         shots,
	}
}

// Clone deep-copies the slices so presets can be handed out safely.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Weapons = append([]sim.Weapon(nil), c.Weapons...)
	cp.Shots = append([]ShotConfig(nil), c.Shots...)
	return &cp
}
