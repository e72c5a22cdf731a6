package viz

import (
	"math"
	"strings"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels; points outside are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

// Polyline scales the points (xs[i], ys[i]) to fill the canvas and joins
// consecutive finite points.
func (c *Canvas) Polyline(xs, ys []float64) {
	pixel := c.scaler(xs, ys)
	prevOK := false
	var px, py int
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			prevOK = false
			continue
		}
		x, y := pixel(xs[i], ys[i])
		if prevOK {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, prevOK = x, y, true
	}
}

// Scatter is Polyline without the joins.
func (c *Canvas) Scatter(xs, ys []float64) {
	pixel := c.scaler(xs, ys)
	for i := range xs {
		if finite(xs[i]) && finite(ys[i]) {
			c.Set(pixel(xs[i], ys[i]))
		}
	}
}

func (c *Canvas) scaler(xs, ys []float64) func(x, y float64) (int, int) {
	minX, maxX := finiteRange(xs)
	minY, maxY := finiteRange(ys)
	pw, ph := float64(c.Width*2-1), float64(c.Height*4-1)
	return func(x, y float64) (int, int) {
		return int(math.Round((x - minX) / (maxX - minX) * pw)),
			int(math.Round((maxY - y) / (maxY - minY) * ph))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// PhasePortrait draws state component yCol against xCol. A negative column
// selects time.
func PhasePortrait(traj *dynamo.Trajectory, xCol, yCol, width, height int) string {
	c := NewCanvas(width, height)
	c.Polyline(series(traj, xCol), series(traj, yCol))
	return c.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// finiteRange returns a non-empty interval covering the finite values.
func finiteRange(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if finite(x) {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}
