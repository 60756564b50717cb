package cli

import (
	"strings"
	"testing"
)

func TestCanvasDimensions(t *testing.T) {
	c := newCanvas(10, 5)
	if c.PxWidth() != 20 || c.PxHeight() != 20 {
		t.Errorf("pixel size = %dx%d, want 20x20", c.PxWidth(), c.PxHeight())
	}
	rows := c.Rows()
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	for i, r := range rows {
		if r != strings.Repeat(" ", 10) {
			t.Errorf("row %d of empty canvas = %q", i, r)
		}
	}
}

func TestCanvasSetPixel(t *testing.T) {
	c := newCanvas(2, 1)

	// Top-left dot of the first cell is braille bit 1 (U+2801).
	c.SetPixel(0, 0)
	rows := c.Rows()
	if rows[0] != "⠁ " {
		t.Errorf("rows[0] = %q, want %q", rows[0], "⠁ ")
	}

	// Bottom-right dot of the second cell is bit 0x80.
	c.SetPixel(3, 3)
	rows = c.Rows()
	if rows[0] != "⠁⢀" {
		t.Errorf("rows[0] = %q, want %q", rows[0], "⠁⢀")
	}

	// Out-of-range pixels are dropped silently.
	c.SetPixel(-1, 0)
	c.SetPixel(0, -1)
	c.SetPixel(4, 0)
	c.SetPixel(0, 4)
	if got := c.Rows()[0]; got != rows[0] {
		t.Errorf("out-of-range pixel changed the canvas: %q", got)
	}
}

func TestCanvasClear(t *testing.T) {
	c := newCanvas(3, 2)
	c.Line(0, 0, 5, 7)
	c.Clear()
	for _, r := range c.Rows() {
		if strings.TrimSpace(r) != "" {
			t.Fatalf("canvas not empty after Clear: %q", r)
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := newCanvas(4, 1)

	// A horizontal line across the top row lights the top dot of every cell.
	c.Line(0, 0, 7, 0)
	for i, r := range c.Rows()[0] {
		if r&0x09 != 0x09 {
			t.Errorf("cell %d = %U, missing top dots", i, r)
		}
	}

	// Endpoints are always included, in either direction.
	c.Clear()
	c.Line(6, 3, 1, 1)
	if c.cells[3]&0x40 == 0 { // (6,3) is the left-bottom dot of cell 3
		t.Error("line endpoint (6,3) not set")
	}
	if c.cells[0]&0x10 == 0 { // (1,1) is the right dot, second row, of cell 0
		t.Error("line endpoint (1,1) not set")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := newCanvas(4, 2)

	// Zero radius degenerates to a single pixel.
	c.FillCircle(3, 3, 0)
	count := 0
	for _, cell := range c.cells {
		for b := 0; b < 8; b++ {
			if cell&(1<<b) != 0 {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("zero-radius circle lit %d pixels, want 1", count)
	}

	// Radius 2 lights the full diamond-ish disk around the center.
	c.Clear()
	c.FillCircle(4, 4, 2)
	for _, p := range [][2]int{{4, 4}, {2, 4}, {6, 4}, {4, 2}, {4, 6}} {
		x, y := p[0], p[1]
		cell := c.cells[(y/4)*c.cols+x/2]
		if cell == 0 {
			t.Errorf("pixel (%d,%d) of disk not set", x, y)
		}
	}
}

func TestCanvasVisible(t *testing.T) {
	c := newCanvas(10, 5) // 20x20 pixels

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{name: "Inside", x: 10, y: 10, want: true},
		{name: "JustOutsideWithinMargin", x: 22, y: 10, want: true},
		{name: "FarLeft", x: -30, y: 10, want: false},
		{name: "FarBelow", x: 10, y: 60, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Visible(tt.x, tt.y); got != tt.want {
				t.Errorf("Visible(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
