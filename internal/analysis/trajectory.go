package analysis

import (
	"math"
	"strings"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// Trajectory is the top-down path of one body.
type Trajectory struct {
	BodyID int
	Points []struct{ X, Z float64 }
}

// ExtractTrajectory collects the XZ positions of a body across frames.
func ExtractTrajectory(frames []sim.Frame, id int) *Trajectory {
	tr := &Trajectory{BodyID: id, Points: make([]struct{ X, Z float64 }, 0, len(frames))}
	for _, f := range frames {
		for _, b := range f.Bodies {
			if b.ID == id {
				tr.Points = append(tr.Points, struct{ X, Z float64 }{b.Position.X(), b.Position.Z()})
				break
			}
		}
	}
	return tr
}

// PathLength sums the planar distance travelled.
func (t *Trajectory) PathLength() float64 {
	total := 0.0
	for i := 1; i < len(t.Points); i++ {
		dx := t.Points[i].X - t.Points[i-1].X
		dz := t.Points[i].Z - t.Points[i-1].Z
		total += math.Sqrt(dx*dx + dz*dz)
	}
	return total
}

// TrajectoryToASCII draws paths over the table outline, X to the right and
// Z downward. Pockets are 'O', the first path is '*', later ones '·'.
func TrajectoryToASCII(table *physics.Table, paths []*Trajectory, width, height int) string {
	if width < 3 || height < 3 {
		return ""
	}
	b := table.Bounds
	rangeX := b.XPlus - b.XMinus
	rangeZ := b.ZPlus - b.ZMinus

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	plot := func(x, z float64, r rune) {
		col := int((x - b.XMinus) / rangeX * float64(width-1))
		row := int((z - b.ZMinus) / rangeZ * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}

	for col := 0; col < width; col++ {
		canvas[0][col] = '─'
		canvas[height-1][col] = '─'
	}
	for row := 0; row < height; row++ {
		canvas[row][0] = '│'
		canvas[row][width-1] = '│'
	}

	for i := len(paths) - 1; i >= 0; i-- {
		mark := '·'
		if i == 0 {
			mark = '*'
		}
		for _, p := range paths[i].Points {
			plot(p.X, p.Z, mark)
		}
	}
	for _, p := range table.Pockets {
		plot(p.X(), p.Z(), 'O')
	}

	var sb strings.Builder
	for i, row := range canvas {
		sb.WriteString(string(row))
		if i < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
