package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

// SVG pixels per table unit.
const svgScale = 400.0

var trailColors = []string{"#ffffff", "#ffd700", "#ff4444", "#4488ff", "#ff88ff", "#00ff88", "#ff8800"}

type svgFrame struct {
	sb     strings.Builder
	table  *physics.Table
	width  float64
	height float64
}

func newSVG(table *physics.Table) *svgFrame {
	b := table.Bounds
	f := &svgFrame{
		table:  table,
		width:  (b.XPlus - b.XMinus) * svgScale,
		height: (b.ZPlus - b.ZMinus) * svgScale,
	}
	f.sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#1d6b3a" stroke="#5a3a1a" stroke-width="6"/>
`, f.width, f.height, f.width, f.height))
	for _, p := range table.Pockets {
		x, y := f.point(p.X(), p.Z())
		f.sb.WriteString(fmt.Sprintf(`<circle class="pocket" cx="%.1f" cy="%.1f" r="%.1f" fill="#000000"/>
`, x, y, table.PocketRadius*svgScale))
	}
	return f
}

func (f *svgFrame) point(x, z float64) (float64, float64) {
	return (x - f.table.Bounds.XMinus) * svgScale, (z - f.table.Bounds.ZMinus) * svgScale
}

func (f *svgFrame) String() string {
	f.sb.WriteString("</svg>")
	return f.sb.String()
}

// SnapshotSVG draws the table from above with every ball still on it.
// radius is the drawn ball radius in table units.
func SnapshotSVG(frame sim.Frame, table *physics.Table, radius float64) string {
	f := newSVG(table)
	for _, b := range frame.Bodies {
		if b.InPocket || b.Position.Y()+radius < table.Floor {
			continue
		}
		x, y := f.point(b.Position.X(), b.Position.Z())
		fill := trailColors[1+b.ID%(len(trailColors)-1)]
		if b.ID == 0 {
			fill = trailColors[0]
		}
		f.sb.WriteString(fmt.Sprintf(`<circle class="ball" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, radius*svgScale, fill))
	}
	f.sb.WriteString(fmt.Sprintf(`<text x="8" y="20" fill="#ffffff" font-family="monospace" font-size="14">t=%.2fs</text>
`, frame.Time))
	return f.String()
}

// TrajectorySVG draws one polyline per body through the recorded frames.
func TrajectorySVG(frames []sim.Frame, table *physics.Table) string {
	f := newSVG(table)
	paths := make(map[int][]string)
	for _, fr := range frames {
		for _, b := range fr.Bodies {
			x, y := f.point(b.Position.X(), b.Position.Z())
			paths[b.ID] = append(paths[b.ID], fmt.Sprintf("%.1f,%.1f", x, y))
		}
	}
	ids := make([]int, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		pts := paths[id]
		if len(pts) < 2 {
			continue
		}
		f.sb.WriteString(fmt.Sprintf(`<path class="trail" fill="none" stroke="%s" stroke-width="1.5" d="M%s"/>
`, trailColors[id%len(trailColors)], strings.Join(pts, " L")))
	}
	return f.String()
}
