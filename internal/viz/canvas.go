package viz

import (
	"strings"

	"github.com/colinbarry/verlet-cloth/internal/geom"
)

// Braille cells pack a 2x4 dot grid per character, so a WxH character canvas
// addresses (W*2)x(H*4) sub-pixels. Dot bits per Unicode spec, offset 0x2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a braille-cell drawing surface addressed in sub-pixels.
type Canvas struct {
	Width, Height int // in characters
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		row := make([]rune, w)
		for j := range row {
			row[j] = brailleBase
		}
		c.cells[i] = row
	}
	return c
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = brailleBase
		}
	}
}

// Line draws a sub-pixel line with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Cloth-space world bounds shown by the viewport. The mesh is built inside
// the unit square and sways a little past it while settling.
const (
	worldMinX = -0.2
	worldMaxX = 1.2
	worldMinY = -0.05
	worldMaxY = 1.3
)

// Viewport maps cloth coordinates onto canvas sub-pixels and back. The
// inverse mapping is what turns terminal mouse positions into cut segments
// in the simulation's own coordinate space.
type Viewport struct {
	scale            float64 // sub-pixels per cloth unit
	offsetX, offsetY float64
}

func FitViewport(c *Canvas) Viewport {
	subW := float64(c.Width * 2)
	subH := float64(c.Height * 4)
	scale := (subW - 2) / (worldMaxX - worldMinX)
	if vert := (subH - 2) / (worldMaxY - worldMinY); vert < scale {
		scale = vert
	}
	return Viewport{
		scale:   scale,
		offsetX: 1 + (subW-2-scale*(worldMaxX-worldMinX))/2 - scale*worldMinX,
		offsetY: 1 - scale*worldMinY,
	}
}

func (v Viewport) ToCanvas(p geom.Vec2) (int, int) {
	return int(p.X*v.scale + v.offsetX), int(p.Y*v.scale + v.offsetY)
}

func (v Viewport) ToCloth(x, y float64) geom.Vec2 {
	return geom.V((x-v.offsetX)/v.scale, (y-v.offsetY)/v.scale)
}

// DrawMesh renders every constraint as a line and every live point as a dot.
func DrawMesh(c *Canvas, v Viewport, segments [][2]geom.Vec2, points []geom.Vec2) {
	for _, seg := range segments {
		x0, y0 := v.ToCanvas(seg[0])
		x1, y1 := v.ToCanvas(seg[1])
		c.Line(x0, y0, x1, y1)
	}
	for _, p := range points {
		x, y := v.ToCanvas(p)
		c.Set(x, y)
	}
}
