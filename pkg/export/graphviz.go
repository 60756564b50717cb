package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/dna-group/puzzled/pkg/lattice"
)

// DOT renders the edge set as graphviz source with every node pinned at its
// world position, so a neato pass reproduces the lattice geometry. Only
// nodes incident to an edge are emitted.
func DOT(g *lattice.Graph) []byte {
	grid := g.Grid()

	var buf bytes.Buffer
	buf.WriteString("graph lattice {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  node [shape=point, width=0.05];\n")
	buf.WriteString("  edge [color=\"#888888\", penwidth=2];\n")

	seen := make(map[lattice.Node]bool)
	emit := func(n lattice.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		x, y := grid.NodeWorld(n)
		// Flip y: world coordinates grow downward, graphviz points grow upward.
		fmt.Fprintf(&buf, "  %s [pos=\"%.1f,%.1f!\"];\n", nodeName(n), x, grid.FullHeight()-y)
	}

	for _, e := range g.Edges() {
		emit(e.A)
		emit(e.B)
		fmt.Fprintf(&buf, "  %s -- %s;\n", nodeName(e.A), nodeName(e.B))
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// WriteImage renders the edge set through graphviz into an image file.
// Supported formats are "png" and "svg".
func WriteImage(ctx context.Context, g *lattice.Graph, format, path string) error {
	var gvFormat graphviz.Format
	switch format {
	case "png":
		gvFormat = graphviz.PNG
	case "svg":
		gvFormat = graphviz.SVG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("create graph: %w", err)
	}
	defer graph.Close()

	nodes := make(map[lattice.Node]*graphviz.Node)
	node := func(n lattice.Node) (*graphviz.Node, error) {
		if gn, ok := nodes[n]; ok {
			return gn, nil
		}
		gn, err := graph.CreateNodeByName(nodeName(n))
		if err != nil {
			return nil, err
		}
		gn.SetLabel("")
		nodes[n] = gn
		return gn, nil
	}

	for _, e := range g.Edges() {
		a, err := node(e.A)
		if err != nil {
			return fmt.Errorf("add node: %w", err)
		}
		b, err := node(e.B)
		if err != nil {
			return fmt.Errorf("add node: %w", err)
		}
		if _, err := graph.CreateEdgeByName("", a, b); err != nil {
			return fmt.Errorf("add edge: %w", err)
		}
	}

	if err := gv.RenderFilename(ctx, graph, gvFormat, path); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

func nodeName(n lattice.Node) string {
	return fmt.Sprintf("n%d_%d", n.Col, n.Row)
}
