package view

import (
	"math"
	"testing"
)

func testLimits() Limits {
	return Limits{MinZoom: 0.6, MaxZoom: 8.0}
}

// testViewport builds a viewport over a 1179x1629 world (the default lattice
// extent) on a 320x200 pixel canvas.
func testViewport() *Viewport {
	v := New(1179, 1629, 3.2, testLimits())
	v.Resize(320, 200)
	return v
}

func TestNewClampsInitialZoom(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		want float64
	}{
		{name: "InRange", zoom: 3.2, want: 3.2},
		{name: "BelowMin", zoom: 0.1, want: 0.6},
		{name: "AboveMax", zoom: 50, want: 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(1179, 1629, tt.zoom, testLimits())
			if got := v.Zoom(); got != tt.want {
				t.Errorf("Zoom = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResizeDefaultsToTopLeft(t *testing.T) {
	v := New(1179, 1629, 3.2, testLimits())
	v.Resize(320, 200)

	// Center at half the visible extent puts world (0,0) at screen (0,0).
	cx, cy := v.Center()
	if math.Abs(cx-v.W()/2) > 1e-9 || math.Abs(cy-v.H()/2) > 1e-9 {
		t.Errorf("center = (%v, %v), want (%v, %v)", cx, cy, v.W()/2, v.H()/2)
	}
	sx, sy := v.WorldToScreen(0, 0)
	if math.Abs(sx) > 1e-9 || math.Abs(sy) > 1e-9 {
		t.Errorf("world origin at screen (%v, %v), want (0, 0)", sx, sy)
	}
}

func TestResizePreservesRestoredCenter(t *testing.T) {
	v := New(1179, 1629, 3.2, testLimits())
	v.SetCenter(600, 800)
	v.Resize(320, 200)

	cx, cy := v.Center()
	if cx != 600 || cy != 800 {
		t.Errorf("center = (%v, %v), want (600, 800)", cx, cy)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	v := testViewport()
	v.SetCenter(400, 500)

	points := [][2]float64{
		{0, 0}, {160, 100}, {320, 200}, {17, 153},
	}
	for _, p := range points {
		wx, wy := v.ScreenToWorld(p[0], p[1])
		sx, sy := v.WorldToScreen(wx, wy)
		if math.Abs(sx-p[0]) > 1e-9 || math.Abs(sy-p[1]) > 1e-9 {
			t.Errorf("round trip of (%v, %v) = (%v, %v)", p[0], p[1], sx, sy)
		}
	}

	// The center maps to the middle of the canvas.
	sx, sy := v.WorldToScreen(400, 500)
	if math.Abs(sx-160) > 1e-9 || math.Abs(sy-100) > 1e-9 {
		t.Errorf("center at screen (%v, %v), want (160, 100)", sx, sy)
	}
}

func TestClampAxis(t *testing.T) {
	tests := []struct {
		name            string
		c, extent, full float64
		want            float64
	}{
		{name: "BelowRange", c: -50, extent: 200, full: 1000, want: 100},
		{name: "AboveRange", c: 2000, extent: 200, full: 1000, want: 900},
		{name: "InRange", c: 420, extent: 200, full: 1000, want: 420},
		{name: "AtLowerEdge", c: 100, extent: 200, full: 1000, want: 100},
		{name: "ExtentLargerThanWorld", c: 50, extent: 1200, full: 1000, want: 500},
		{name: "ExtentEqualsWorld", c: 900, extent: 1000, full: 1000, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampAxis(tt.c, tt.extent, tt.full); got != tt.want {
				t.Errorf("clampAxis(%v, %v, %v) = %v, want %v", tt.c, tt.extent, tt.full, got, tt.want)
			}
		})
	}
}

func TestPanClampsAtWorldEdge(t *testing.T) {
	v := testViewport()

	// Pan far past the left edge; the center must stop at half the extent.
	v.Pan(-1e6, 0)
	cx, _ := v.Center()
	if math.Abs(cx-v.W()/2) > 1e-9 {
		t.Errorf("cx = %v, want %v", cx, v.W()/2)
	}

	v.Pan(1e6, 1e6)
	cx, cy := v.Center()
	if math.Abs(cx-(1179-v.W()/2)) > 1e-9 {
		t.Errorf("cx = %v, want %v", cx, 1179-v.W()/2)
	}
	if math.Abs(cy-(1629-v.H()/2)) > 1e-9 {
		t.Errorf("cy = %v, want %v", cy, 1629-v.H()/2)
	}
}

func TestZoomSteps(t *testing.T) {
	v := testViewport()

	v.ZoomIn()
	if got := v.Zoom(); math.Abs(got-3.84) > 1e-9 {
		t.Errorf("Zoom after in = %v, want 3.84", got)
	}
	v.ZoomOut()
	if got := v.Zoom(); math.Abs(got-3.2) > 1e-9 {
		t.Errorf("Zoom after out = %v, want 3.2", got)
	}

	// Repeated zooming saturates at the limits.
	for i := 0; i < 50; i++ {
		v.ZoomIn()
	}
	if got := v.Zoom(); got != 8.0 {
		t.Errorf("Zoom = %v, want max 8.0", got)
	}
	for i := 0; i < 50; i++ {
		v.ZoomOut()
	}
	if got := v.Zoom(); got != 0.6 {
		t.Errorf("Zoom = %v, want min 0.6", got)
	}
}

func TestZoomKeepsCenterInBounds(t *testing.T) {
	v := testViewport()
	v.SetCenter(0, 0) // clamps to the top-left corner

	// Zooming out grows the extent; the clamped center must track it so the
	// visible rectangle never leaves the world.
	v.ZoomOut()
	cx, cy := v.Center()
	if math.Abs(cx-v.W()/2) > 1e-9 || math.Abs(cy-v.H()/2) > 1e-9 {
		t.Errorf("center = (%v, %v), want (%v, %v)", cx, cy, v.W()/2, v.H()/2)
	}
}

func TestPanStep(t *testing.T) {
	v := testViewport()

	// Visible extent is 100x62.5 world units; 6% of 62.5 is 3.75, below the
	// 10-unit floor.
	if got := v.PanStep(); got != 10 {
		t.Errorf("PanStep = %v, want floor 10", got)
	}

	// Zoomed far out the extent grows and the proportional step wins.
	v.ZoomTo(0.6)
	want := 0.06 * math.Min(v.W(), v.H())
	if got := v.PanStep(); math.Abs(got-want) > 1e-9 {
		t.Errorf("PanStep = %v, want %v", got, want)
	}
}
