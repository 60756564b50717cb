package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout rows reserved around the canvas.
const (
	headerHeight = 1
	footerHeight = 1
)

// pointerState is the transient drag state between pointer press and
// release. It is owned by the editor model and never persisted.
type pointerState struct {
	startX, startY     int     // press position, screen pixels
	originCx, originCy float64 // viewport center at press time
	dragging           bool    // sticky: once a drag, always a drag
}

// editorModel is the bubbletea model driving the interactive editor. It is
// the top-level input state machine: pointer events either pan the viewport
// (drag) or toggle the nearest edge (tap), keyboard events pan and zoom, and
// every completed mutation redraws and schedules a debounced save.
type editorModel struct {
	sess   *editorSession
	canvas *brailleCanvas

	width, height int // terminal size, cells
	pointer       *pointerState

	status   string
	shareURL string // set while the bookmark URL overlay is visible
}

func newEditorModel(sess *editorSession) editorModel {
	return editorModel{sess: sess, status: "ready"}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *editorModel) resize(w, h int) {
	m.width, m.height = w, h
	rows := h - headerHeight - footerHeight
	if rows < 1 {
		rows = 1
	}
	m.canvas = newCanvas(w, rows)
	m.sess.vp.Resize(float64(m.canvas.PxWidth()), float64(m.canvas.PxHeight()))
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shareURL != "" {
		// Any key dismisses the bookmark overlay.
		m.shareURL = ""
		if msg.String() != "q" && msg.String() != "ctrl+c" {
			return m, nil
		}
	}

	vp := m.sess.vp
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up":
		vp.Pan(0, -vp.PanStep())
	case "down":
		vp.Pan(0, vp.PanStep())
	case "left":
		vp.Pan(-vp.PanStep(), 0)
	case "right":
		vp.Pan(vp.PanStep(), 0)
	case "+", "=":
		vp.ZoomIn()
	case "-", "_":
		vp.ZoomOut()
	case "b":
		m.bookmark()
		return m, nil
	default:
		return m, nil
	}

	m.sess.scheduleSave(m.sess.saveDelay())
	return m, nil
}

// bookmark builds the shareable URL, copies it to the system clipboard via
// OSC 52, and shows it in the overlay. Not every terminal honors OSC 52, so
// the visible overlay is the fallback path: the user copies the link by hand.
func (m *editorModel) bookmark() {
	u, err := m.sess.shareURL()
	if err != nil {
		m.status = "unable to build bookmark URL"
		m.sess.logger.Warn("bookmark failed", "err", err)
		return
	}
	m.shareURL = u
	m.status = "bookmark ready"
	if _, err := osc52.New(u).WriteTo(os.Stderr); err == nil {
		m.status = "bookmark copied"
	}
}

func (m *editorModel) handleMouse(msg tea.MouseMsg) {
	px, py, onCanvas := m.pixelAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !onCanvas {
				return
			}
			cx, cy := m.sess.vp.Center()
			m.pointer = &pointerState{startX: px, startY: py, originCx: cx, originCy: cy}
		case tea.MouseButtonWheelUp:
			m.sess.vp.ZoomIn()
			m.sess.scheduleSave(m.sess.saveDelay())
		case tea.MouseButtonWheelDown:
			m.sess.vp.ZoomOut()
			m.sess.scheduleSave(m.sess.saveDelay())
		}

	case tea.MouseActionMotion:
		if m.pointer == nil {
			return
		}
		dx := px - m.pointer.startX
		dy := py - m.pointer.startY
		if !m.pointer.dragging && math.Hypot(float64(dx), float64(dy)) > m.sess.cfg.Input.DragThreshold {
			m.pointer.dragging = true
		}
		if m.pointer.dragging {
			// Pan by the cumulative screen delta from the gesture origin,
			// converted to world units. Dragging right moves the world left.
			worldPerPixel := 1 / m.sess.vp.PixelsPerWorld()
			m.sess.vp.SetCenter(
				m.pointer.originCx-float64(dx)*worldPerPixel,
				m.pointer.originCy-float64(dy)*worldPerPixel,
			)
			m.sess.scheduleSave(m.sess.dragDelay())
		}

	case tea.MouseActionRelease:
		if m.pointer == nil {
			return
		}
		wasDrag := m.pointer.dragging
		m.pointer = nil
		if !wasDrag {
			m.tap(px, py)
		}
	}
}

// tap runs the hit test at the release point and toggles the nearest edge
// when it is within the pixel threshold. Constraint rejections (degree cap)
// are silent; the lattice simply does not change.
func (m *editorModel) tap(px, py int) {
	wx, wy := m.sess.vp.ScreenToWorld(float64(px), float64(py))
	hit, ok := m.sess.grid.NearestEdge(wx, wy)
	if !ok {
		return
	}
	if hit.ScreenDist(m.sess.vp.PixelsPerWorld()) > m.sess.cfg.Input.HitRadius {
		return
	}
	present, err := m.sess.graph.Toggle(hit.Edge.A, hit.Edge.B)
	if err != nil {
		return
	}
	if present {
		m.status = "edge added"
	} else {
		m.status = "edge removed"
	}
}

// pixelAt converts a terminal cell position to canvas pixel coordinates,
// reporting whether it falls on the canvas. Pixel coordinates address the
// center of the cell's microgrid block.
func (m editorModel) pixelAt(cellX, cellY int) (px, py int, ok bool) {
	if m.canvas == nil {
		return 0, 0, false
	}
	row := cellY - headerHeight
	px = cellX*2 + 1
	py = row*4 + 2
	ok = cellX >= 0 && cellX < m.canvas.cols && row >= 0 && row < m.canvas.rows
	return px, py, ok
}

func (m editorModel) View() string {
	if m.canvas == nil || m.width == 0 {
		return ""
	}

	m.draw()

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(strings.Join(m.canvas.Rows(), "\n"))
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

// draw rasterizes the visible slice of the lattice: dots for every node in
// view, lines for every set edge.
func (m editorModel) draw() {
	c := m.canvas
	c.Clear()

	grid := m.sess.grid
	vp := m.sess.vp

	cx, cy := vp.Center()
	left := cx - vp.W()/2
	top := cy - vp.H()/2
	right := left + vp.W()
	bottom := top + vp.H()

	minI := maxInt(0, int(math.Floor((left-grid.Border)/grid.Spacing))-1)
	maxI := minInt(grid.Cols-1, int(math.Ceil((right-grid.Border)/grid.Spacing))+1)
	minJ := maxInt(0, int(math.Floor((top-grid.Border)/grid.Spacing))-1)
	maxJ := minInt(grid.Rows-1, int(math.Ceil((bottom-grid.Border)/grid.Spacing))+1)

	dotR := int(math.Round(vp.Zoom() / 2))
	for j := minJ; j <= maxJ; j++ {
		for i := minI; i <= maxI; i++ {
			fx := grid.Border + float64(i)*grid.Spacing
			fy := grid.Border + float64(j)*grid.Spacing
			sx, sy := vp.WorldToScreen(fx, fy)
			if !c.Visible(sx, sy) {
				continue
			}
			c.FillCircle(int(sx), int(sy), dotR)
		}
	}

	for _, e := range m.sess.graph.Edges() {
		ax, ay := grid.NodeWorld(e.A)
		bx, by := grid.NodeWorld(e.B)
		x0, y0 := vp.WorldToScreen(ax, ay)
		x1, y1 := vp.WorldToScreen(bx, by)
		if !c.Visible(x0, y0) && !c.Visible(x1, y1) {
			continue
		}
		c.Line(int(x0), int(y0), int(x1), int(y1))
	}
}

func (m editorModel) headerView() string {
	pending := ""
	if m.sess.sched.Pending() {
		pending = " ·saving"
	}
	left := StyleTitle.Render(" puzzled ")
	stats := fmt.Sprintf(" %s edges  zoom %.2f  %s%s ",
		styleEdgeCount.Render(fmt.Sprintf("%d", m.sess.graph.EdgeCount())),
		m.sess.vp.Zoom(), m.status, pending)
	return left + styleStatusBar.Render(stats)
}

func (m editorModel) footerView() string {
	if m.shareURL != "" {
		return StyleDim.Render(" bookmark: ") + StyleLink.Render(m.shareURL) + StyleDim.Render("  (copy it, any key to dismiss)")
	}
	help := " click toggle edge  drag pan  ↑↓←→ pan  +/- zoom  wheel zoom  b bookmark  q quit "
	return StyleDim.Render(help)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
