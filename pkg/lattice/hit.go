package lattice

import "math"

// hitWindow is the half-width, in cells, of the neighborhood scanned around
// the query point. A 5x5 window comfortably covers every edge a pointer
// could plausibly be aiming at.
const hitWindow = 2

// Hit is a candidate edge found by [Grid.NearestEdge] together with the
// squared world distance from the query point to the edge midpoint.
type Hit struct {
	Edge  Edge
	Dist2 float64
}

// ScreenDist converts the hit's world distance to an approximate screen-pixel
// distance given the current pixels-per-world-unit scale. Callers accept the
// hit only when this is within their pixel threshold, so hit sensitivity
// shrinks as the view zooms out.
func (h Hit) ScreenDist(pixelsPerWorld float64) float64 {
	return math.Sqrt(h.Dist2) * pixelsPerWorld
}

// NearestEdge finds the potential edge whose midpoint is closest to the
// world-space query point. Candidates are every in-bounds horizontal and
// vertical edge in the scan window, whether or not it is currently set in any
// graph; the editor toggles edges that do not yet exist.
//
// The scan iterates dx then dy in fixed ascending order, checking the
// horizontal candidate before the vertical one in each cell, and keeps the
// first candidate at minimal distance. The deterministic order makes
// tie-breaks reproducible.
func (g Grid) NearestEdge(wx, wy float64) (Hit, bool) {
	ix := int(math.Round((wx - g.Border) / g.Spacing))
	iy := int(math.Round((wy - g.Border) / g.Spacing))

	best := Hit{Dist2: math.Inf(1)}
	found := false

	consider := func(a, b Node) {
		ax, ay := g.NodeWorld(a)
		bx, by := g.NodeWorld(b)
		mx, my := (ax+bx)/2, (ay+by)/2
		d2 := (mx-wx)*(mx-wx) + (my-wy)*(my-wy)
		if d2 < best.Dist2 {
			best = Hit{Edge: NewEdge(a, b), Dist2: d2}
			found = true
		}
	}

	for dx := -hitWindow; dx <= hitWindow; dx++ {
		for dy := -hitWindow; dy <= hitWindow; dy++ {
			nx, ny := ix+dx, iy+dy
			if nx >= 0 && nx+1 < g.Cols && ny >= 0 && ny < g.Rows {
				consider(Node{Col: nx, Row: ny}, Node{Col: nx + 1, Row: ny})
			}
			if nx >= 0 && nx < g.Cols && ny >= 0 && ny+1 < g.Rows {
				consider(Node{Col: nx, Row: ny}, Node{Col: nx, Row: ny + 1})
			}
		}
	}
	return best, found
}
