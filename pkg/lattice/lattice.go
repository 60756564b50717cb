// Package lattice implements the lattice data model for the puzzled editor:
// a fixed grid of integer-coordinate nodes, the set of toggled edges between
// adjacent nodes, and the per-node degree bookkeeping that caps every node at
// two incident edges.
//
// Nodes are never stored explicitly. They are implicit grid positions
// addressed by (column, row) coordinates, packed into integer keys for map
// storage. Edges are unordered pairs of adjacent nodes stored under a single
// canonical key, so {A,B} and {B,A} are the same edge.
//
// The package is not safe for concurrent use without external
// synchronization; all mutation in the editor happens on a single event
// goroutine.
package lattice

import "errors"

var (
	// ErrOutOfBounds is returned by [Graph.AddEdge] and [Graph.RemoveEdge]
	// when an endpoint lies outside the grid.
	ErrOutOfBounds = errors.New("node out of grid bounds")

	// ErrNotAdjacent is returned when the two endpoints are not lattice
	// neighbors (they must differ by exactly 1 in one axis and 0 in the other).
	ErrNotAdjacent = errors.New("nodes are not adjacent")

	// ErrEdgeExists is returned by [Graph.AddEdge] when the edge is already set.
	ErrEdgeExists = errors.New("edge already present")

	// ErrEdgeAbsent is returned by [Graph.RemoveEdge] when the edge is not set.
	ErrEdgeAbsent = errors.New("edge not present")

	// ErrDegreeCap is returned by [Graph.AddEdge] when either endpoint already
	// has two incident edges.
	ErrDegreeCap = errors.New("endpoint already at degree 2")
)

// MaxDegree is the structural cap on edges incident to a single node.
// It approximates the closed-loop puzzle constraint; no cycle or
// connectivity check is ever performed.
const MaxDegree = 2

// Node identifies a lattice point by its integer grid coordinates.
type Node struct {
	Col int
	Row int
}

// Less orders nodes by (Col, Row), the total order used to canonicalize edges.
func (n Node) Less(o Node) bool {
	if n.Col != o.Col {
		return n.Col < o.Col
	}
	return n.Row < o.Row
}

// key packs the coordinates into a single map key.
// Coordinates are grid-bounded well below 16 bits.
func (n Node) key() uint32 {
	return uint32(uint16(n.Col))<<16 | uint32(uint16(n.Row))
}

// Edge is an unordered pair of adjacent nodes in canonical order: A is the
// (Col, Row)-lexicographically smaller endpoint. Construct edges with
// [NewEdge] to guarantee the ordering.
type Edge struct {
	A Node
	B Node
}

// NewEdge returns the canonical edge for the unordered pair {a, b}.
func NewEdge(a, b Node) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Key packs both canonical endpoints into a single comparable key.
func (e Edge) Key() uint64 {
	return uint64(e.A.key())<<32 | uint64(e.B.key())
}

// Tuple returns the edge as a (col1, row1, col2, row2) quadruple, the wire
// form used by the persisted state.
func (e Edge) Tuple() [4]int {
	return [4]int{e.A.Col, e.A.Row, e.B.Col, e.B.Row}
}

// Grid describes the lattice extent and its world-space geometry. World
// coordinates are pixel-scaled: node (c, r) sits at
// (Border + c*Spacing, Border + r*Spacing), and the full world is the grid
// extent plus the border margin on every side.
//
// The zero value is not usable; construct grids from configuration defaults.
type Grid struct {
	Cols    int     // number of columns (nodes per row)
	Rows    int     // number of rows
	Spacing float64 // world distance between neighboring nodes
	Border  float64 // world margin around the grid, so edges do not clip
}

// Contains reports whether the node lies on the grid.
func (g Grid) Contains(n Node) bool {
	return n.Col >= 0 && n.Col < g.Cols && n.Row >= 0 && n.Row < g.Rows
}

// Adjacent reports whether a and b are distinct lattice neighbors.
func (g Grid) Adjacent(a, b Node) bool {
	dc, dr := a.Col-b.Col, a.Row-b.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc+dr == 1
}

// NodeWorld returns the world-space position of a node.
func (g Grid) NodeWorld(n Node) (x, y float64) {
	return g.Border + float64(n.Col)*g.Spacing, g.Border + float64(n.Row)*g.Spacing
}

// GridWidth returns the world width spanned by the node columns alone.
func (g Grid) GridWidth() float64 { return float64(g.Cols-1) * g.Spacing }

// GridHeight returns the world height spanned by the node rows alone.
func (g Grid) GridHeight() float64 { return float64(g.Rows-1) * g.Spacing }

// FullWidth returns the total world width including both border margins.
func (g Grid) FullWidth() float64 { return g.GridWidth() + 2*g.Border }

// FullHeight returns the total world height including both border margins.
func (g Grid) FullHeight() float64 { return g.GridHeight() + 2*g.Border }
