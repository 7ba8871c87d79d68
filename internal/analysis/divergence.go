package analysis

import (
	"math"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// Divergence returns, per frame, the RMS distance between matching bodies
// of two runs of the same scene. Frames are paired by index and bodies by
// id; the shorter run bounds the result.
func Divergence(a, b []sim.Frame) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		pos := make(map[int]sim.BodyState, len(b[i].Bodies))
		for _, bs := range b[i].Bodies {
			pos[bs.ID] = bs
		}
		sum, count := 0.0, 0
		for _, as := range a[i].Bodies {
			bs, ok := pos[as.ID]
			if !ok {
				continue
			}
			d := physics.Dist(as.Position, bs.Position)
			sum += d * d
			count++
		}
		if count > 0 {
			out[i] = math.Sqrt(sum / float64(count))
		}
	}
	return out
}

// GrowthRate fits the average exponential rate at which a divergence trace
// grows from its initial size d0: the mean of ln(d/d0)/t over samples with
// t > 0 and d > 0.
func GrowthRate(div, times []float64, d0 float64) float64 {
	if d0 <= 0 {
		return 0
	}
	n := min(len(div), len(times))
	sumRate := 0.0
	count := 0
	for i := 0; i < n; i++ {
		if times[i] <= 0 || div[i] <= 0 {
			continue
		}
		sumRate += math.Log(div[i]/d0) / times[i]
		count++
	}
	if count == 0 {
		return 0
	}
	return sumRate / float64(count)
}
