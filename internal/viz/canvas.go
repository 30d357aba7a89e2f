package viz

import (
	"strings"
)

// Braille patterns, 2x4 dots per cell:
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
// sub-pixels with y growing downwards.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// bayer is the 4x4 ordered-dither threshold matrix.
var bayer = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// DensityMap dithers a non-negative field onto a w×h character canvas.
// field[i][j] is drawn with i along x and j along y, largest j on top.
func DensityMap(field [][]float64, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if len(field) == 0 || len(field[0]) == 0 {
		return c
	}
	peak := 0.0
	for _, row := range field {
		for _, v := range row {
			peak = max(peak, v)
		}
	}
	if peak <= 0 {
		return c
	}

	rows, cols := len(field), len(field[0])
	pw, ph := w*2, h*4
	for x := 0; x < pw; x++ {
		i := x * rows / pw
		for y := 0; y < ph; y++ {
			j := (ph - 1 - y) * cols / ph
			if field[i][j]/peak > (bayer[y%4][x%4]+0.5)/16 {
				c.Set(x, y)
			}
		}
	}
	return c
}

// Lit counts the lit sub-pixels.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := int(r - 0x2800); bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}
