// Package export renders a lattice graph into durable artifacts: a
// standalone SVG drawing, a DOT description with pinned node positions, and
// raster images via graphviz.
package export

import (
	"bytes"
	"fmt"

	"github.com/dna-group/puzzled/pkg/lattice"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	dots    bool
	stroke  string
	dotFill string
}

// WithDots includes the full dot grid in the drawing. Without it only edge
// endpoints are drawn, which keeps files small on large lattices.
func WithDots() SVGOption { return func(r *svgRenderer) { r.dots = true } }

// WithStroke overrides the edge stroke color.
func WithStroke(color string) SVGOption { return func(r *svgRenderer) { r.stroke = color } }

// WithDotFill overrides the node dot fill color.
func WithDotFill(color string) SVGOption { return func(r *svgRenderer) { r.dotFill = color } }

// RenderSVG draws the whole lattice world (not the current viewport) as a
// standalone SVG document in world coordinates.
func RenderSVG(g *lattice.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{stroke: "#888", dotFill: "#000"}
	for _, opt := range opts {
		opt(&r)
	}

	grid := g.Grid()
	w, h := grid.FullWidth(), grid.FullHeight()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="#fff"/>`+"\n", w, h)

	if r.dots {
		for row := 0; row < grid.Rows; row++ {
			for col := 0; col < grid.Cols; col++ {
				x, y := grid.NodeWorld(lattice.Node{Col: col, Row: row})
				fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="1" fill="%s"/>`+"\n", x, y, r.dotFill)
			}
		}
	}

	for _, e := range g.Edges() {
		ax, ay := grid.NodeWorld(e.A)
		bx, by := grid.NodeWorld(e.B)
		fmt.Fprintf(&buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3" stroke-linecap="round"/>`+"\n",
			ax, ay, bx, by, r.stroke)
		if !r.dots {
			fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="1.5" fill="%s"/>`+"\n", ax, ay, r.dotFill)
			fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="1.5" fill="%s"/>`+"\n", bx, by, r.dotFill)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
