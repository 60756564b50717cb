package cli

import "strings"

// cullMargin is the overdraw allowance, in pixels, when deciding whether a
// primitive is worth rasterizing.
const cullMargin = 4

// brailleCanvas is the editor's rendering surface: a braille microgrid with
// 2x4 addressable pixels per character cell. Screen-pixel coordinates
// throughout the editor refer to this microgrid. Braille codepoints start
// at U+2800; each of the eight dots maps to one mask bit.
type brailleCanvas struct {
	cols, rows int // in character cells
	cells      []uint8
}

func newCanvas(cols, rows int) *brailleCanvas {
	return &brailleCanvas{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// PxWidth returns the canvas width in pixels.
func (c *brailleCanvas) PxWidth() int { return c.cols * 2 }

// PxHeight returns the canvas height in pixels.
func (c *brailleCanvas) PxHeight() int { return c.rows * 4 }

// Clear resets every pixel.
func (c *brailleCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0
	}
}

// Visible reports whether a point is on the canvas, give or take the cull
// margin.
func (c *brailleCanvas) Visible(x, y float64) bool {
	return x >= -cullMargin && x <= float64(c.PxWidth())+cullMargin &&
		y >= -cullMargin && y <= float64(c.PxHeight())+cullMargin
}

// SetPixel lights the pixel at microgrid coordinates (x, y).
func (c *brailleCanvas) SetPixel(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cx, rx := x/2, x%2
	cy, ry := y/4, y%4
	if cx >= c.cols || cy >= c.rows {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.cells[cy*c.cols+cx] |= bit
}

// Line draws a straight segment with Bresenham stepping.
func (c *brailleCanvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.SetPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle draws a filled circle. A radius below one pixel degenerates to
// a single pixel.
func (c *brailleCanvas) FillCircle(cx, cy, r int) {
	if r <= 0 {
		c.SetPixel(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.SetPixel(cx+dx, cy+dy)
			}
		}
	}
}

// Rows renders the canvas into terminal rows, one string per cell row.
func (c *brailleCanvas) Rows() []string {
	out := make([]string, c.rows)
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		b.Reset()
		for x := 0; x < c.cols; x++ {
			mask := c.cells[y*c.cols+x]
			if mask == 0 {
				b.WriteRune(' ')
			} else {
				b.WriteRune(rune(0x2800 + int(mask)))
			}
		}
		out[y] = b.String()
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
