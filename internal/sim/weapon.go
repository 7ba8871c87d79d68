package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
)

// Weapon scales the view-direction push of a shot. The opening multiplier
// applies to the first shot that lands after a rack.
type Weapon struct {
	Name              string  `yaml:"name" json:"name"`
	Multiplier        float64 `yaml:"multiplier" json:"multiplier"`
	OpeningMultiplier float64 `yaml:"opening_multiplier" json:"opening_multiplier"`
}

var defaultWeapons = map[string]Weapon{
	"pistol": {Name: "pistol", Multiplier: 1.0, OpeningMultiplier: 4.0},
	"rifle":  {Name: "rifle", Multiplier: 1.6, OpeningMultiplier: 6.0},
}

// DefaultWeapons returns a fresh copy of the built-in arsenal.
func DefaultWeapons() map[string]Weapon {
	out := make(map[string]Weapon, len(defaultWeapons))
	for k, v := range defaultWeapons {
		out[k] = v
	}
	return out
}

func LookupWeapon(weapons map[string]Weapon, name string) (Weapon, error) {
	w, ok := weapons[name]
	if !ok {
		return Weapon{}, fmt.Errorf("%q: %w", name, ErrUnknownWeapon)
	}
	return w, nil
}

func WeaponNames(weapons map[string]Weapon) []string {
	names := make([]string, 0, len(weapons))
	for k := range weapons {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (w Weapon) multiplier(opening bool) float64 {
	if opening {
		return w.OpeningMultiplier
	}
	return w.Multiplier
}

// Shot is a hit-scan ray fired with a weapon.
type Shot struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Weapon    Weapon
}

// Aim describes an orbit camera around a target body: yaw around the
// vertical, pitch above the horizon (both radians), and the distance from
// the target.
type Aim struct {
	Yaw      float64 `yaml:"yaw" json:"yaw"`
	Pitch    float64 `yaml:"pitch" json:"pitch"`
	Distance float64 `yaml:"distance" json:"distance"`
	Weapon   string  `yaml:"weapon" json:"weapon"`
}

// ViewDirection is the unit vector the orbit camera looks along.
func (a Aim) ViewDirection() mgl64.Vec3 {
	cp := math.Cos(a.Pitch)
	return mgl64.Vec3{cp * math.Cos(a.Yaw), -math.Sin(a.Pitch), cp * math.Sin(a.Yaw)}
}

// Eye is the camera position for a target at p.
func (a Aim) Eye(p mgl64.Vec3) mgl64.Vec3 {
	return p.Sub(a.ViewDirection().Mul(a.Distance))
}

// ShotAt builds the shot an orbit camera fires at target.
func (a Aim) ShotAt(target *physics.Body, w Weapon) Shot {
	return Shot{
		Origin:    a.Eye(target.Position),
		Direction: a.ViewDirection(),
		Weapon:    w,
	}
}
