package optim

import (
	"fmt"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
)

// AimBuilder returns a Builder that adjusts the first shot of preset. It
// understands yaw, pitch, distance and multiplier; multiplier replaces the
// opening multiplier of the shot's weapon.
func AimBuilder(preset string) Builder {
	return func(params map[string]float64) (*config.Config, error) {
		cfg, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		if len(cfg.Shots) == 0 {
			return nil, fmt.Errorf("preset %s has no shot to aim", preset)
		}
		shot := &cfg.Shots[0]
		for name, v := range params {
			switch name {
			case "yaw":
				shot.Yaw = v
			case "pitch":
				shot.Pitch = v
			case "distance":
				shot.Distance = v
			case "multiplier":
				found := false
				for i := range cfg.Weapons {
					if cfg.Weapons[i].Name == shot.Weapon {
						cfg.Weapons[i].OpeningMultiplier = v
						found = true
					}
				}
				if !found {
					return nil, fmt.Errorf("weapon %s not configured", shot.Weapon)
				}
			default:
				return nil, fmt.Errorf("unknown aim parameter: %s", name)
			}
		}
		return cfg, nil
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
