// Package export serializes a cloth topology for consumption outside the
// terminal: an SVG drawing of the mesh and a JSON snapshot of its state.
package export

import (
	"fmt"
	"strings"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
)

// MeshSVG renders the current mesh as an SVG document of the given pixel
// size: one line per constraint, one dot per live point, anchors
// highlighted. Bounds are fitted to the mesh with a 10% margin.
func MeshSVG(topo *cloth.Topology, width, height int) string {
	points := topo.ActivePoints()
	if len(points) == 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return (y - minY) / rangeY * float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#00ff00" stroke-width="1">
`, width, height, width, height))

	for _, seg := range topo.Segments() {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, px(seg[0].X), py(seg[0].Y), px(seg[1].X), py(seg[1].Y)))
	}
	sb.WriteString("</g>\n<g fill=\"#00ff00\">\n")

	for _, i := range topo.PointIndices() {
		p := topo.Point(i)
		r, fill := 1.5, "#00ff00"
		if p.Fixed {
			r, fill = 2.5, "#ff5050"
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, px(p.Pos.X), py(p.Pos.Y), r, fill))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
