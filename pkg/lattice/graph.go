package lattice

import (
	"maps"
	"slices"
)

// Graph holds the edge set and per-node degree map for one editing session.
// It is the sole owner of both; after every mutation the invariant holds that
// degree(n) equals the number of stored edges incident to n and never exceeds
// [MaxDegree].
//
// Interactive mutations (AddEdge, RemoveEdge, Toggle) enforce the degree cap
// and fire the change hook. Bulk loads (ReplaceAll) trust their source and
// skip enforcement; call Normalize afterwards when the source is untrusted.
type Graph struct {
	grid     Grid
	edges    map[uint64]Edge
	degree   map[uint32]int
	onChange func()
}

// NewGraph creates an empty graph over the given grid.
func NewGraph(grid Grid) *Graph {
	return &Graph{
		grid:   grid,
		edges:  make(map[uint64]Edge),
		degree: make(map[uint32]int),
	}
}

// Grid returns the grid the graph is defined over.
func (g *Graph) Grid() Grid { return g.grid }

// SetOnChange registers a hook invoked after every successful interactive
// mutation. The editor uses it to schedule persistence. Bulk loads do not
// fire the hook; restoring a token is not an edit.
func (g *Graph) SetOnChange(fn func()) { g.onChange = fn }

func (g *Graph) changed() {
	if g.onChange != nil {
		g.onChange()
	}
}

// AddEdge inserts the edge {a, b}. It returns ErrOutOfBounds or
// ErrNotAdjacent for invalid endpoints, ErrEdgeExists if the edge is already
// set, and ErrDegreeCap if either endpoint already has two incident edges.
// Failed adds leave the graph untouched.
func (g *Graph) AddEdge(a, b Node) error {
	if !g.grid.Contains(a) || !g.grid.Contains(b) {
		return ErrOutOfBounds
	}
	if !g.grid.Adjacent(a, b) {
		return ErrNotAdjacent
	}
	e := NewEdge(a, b)
	if _, ok := g.edges[e.Key()]; ok {
		return ErrEdgeExists
	}
	if g.degree[a.key()] >= MaxDegree || g.degree[b.key()] >= MaxDegree {
		return ErrDegreeCap
	}
	g.edges[e.Key()] = e
	g.degree[a.key()]++
	g.degree[b.key()]++
	g.changed()
	return nil
}

// RemoveEdge deletes the edge {a, b}, returning ErrEdgeAbsent if it is not
// set. Degrees are decremented and floored at zero defensively.
func (g *Graph) RemoveEdge(a, b Node) error {
	e := NewEdge(a, b)
	if _, ok := g.edges[e.Key()]; !ok {
		return ErrEdgeAbsent
	}
	delete(g.edges, e.Key())
	g.decDegree(a)
	g.decDegree(b)
	g.changed()
	return nil
}

func (g *Graph) decDegree(n Node) {
	k := n.key()
	if g.degree[k] <= 1 {
		delete(g.degree, k)
		return
	}
	g.degree[k]--
}

// Toggle removes the edge {a, b} if present, otherwise tries to add it.
// It reports whether the edge is present after the call; err carries the
// add-side rejection (e.g. ErrDegreeCap) when nothing changed.
func (g *Graph) Toggle(a, b Node) (present bool, err error) {
	if g.HasEdge(a, b) {
		return false, g.RemoveEdge(a, b)
	}
	if err := g.AddEdge(a, b); err != nil {
		return false, err
	}
	return true, nil
}

// HasEdge reports whether the edge {a, b} is set.
func (g *Graph) HasEdge(a, b Node) bool {
	_, ok := g.edges[NewEdge(a, b).Key()]
	return ok
}

// Degree returns the number of stored edges incident to n.
func (g *Graph) Degree(n Node) int { return g.degree[n.key()] }

// EdgeCount returns the number of stored edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns all edges sorted by canonical key. The order is deterministic
// so that encoded tokens and tests are reproducible.
func (g *Graph) Edges() []Edge {
	keys := slices.Sorted(maps.Keys(g.edges))
	out := make([]Edge, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.edges[k])
	}
	return out
}

// Tuples returns the edge set in wire form, sorted like Edges.
func (g *Graph) Tuples() [][4]int {
	edges := g.Edges()
	out := make([][4]int, len(edges))
	for i, e := range edges {
		out[i] = e.Tuple()
	}
	return out
}

// Clear removes every edge without firing the change hook.
func (g *Graph) Clear() {
	g.edges = make(map[uint64]Edge)
	g.degree = make(map[uint32]int)
}

// ReplaceAll clears the graph and re-adds every tuple verbatim, trusting the
// source: neither bounds, adjacency, nor the degree cap are re-checked, and
// the change hook does not fire. Use Normalize afterwards when loading
// tokens from outside the current session.
func (g *Graph) ReplaceAll(tuples [][4]int) {
	g.Clear()
	for _, t := range tuples {
		a := Node{Col: t[0], Row: t[1]}
		b := Node{Col: t[2], Row: t[3]}
		e := NewEdge(a, b)
		if _, ok := g.edges[e.Key()]; ok {
			continue
		}
		g.edges[e.Key()] = e
		g.degree[a.key()]++
		g.degree[b.key()]++
	}
}

// Normalize re-validates a bulk-loaded edge set against the structural
// rules: endpoints in bounds, endpoints adjacent, and no node above
// [MaxDegree]. Violating edges are dropped in canonical key order and the
// degree map is rebuilt. It returns the number of edges dropped.
func (g *Graph) Normalize() int {
	hook := g.onChange
	g.onChange = nil
	defer func() { g.onChange = hook }()

	loaded := g.Edges()
	g.Clear()
	dropped := 0
	for _, e := range loaded {
		if g.AddEdge(e.A, e.B) != nil {
			dropped++
		}
	}
	return dropped
}
