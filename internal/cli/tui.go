package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snapboard/pkg/config"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/handles"
	"github.com/matzehuels/snapboard/pkg/interact"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// A terminal cell stands for cellW x cellH screen pixels, which keeps the
// 1:2 aspect of a typical monospace cell.
const (
	cellW = 8.0
	cellH = 16.0

	statusRows  = 2
	ellipseStep = 48
	zoomStep    = 1.25
)

// Canvas styles, indexed by cellStyle.
var canvasStyles = []lipgloss.Style{
	styleBlank:    lipgloss.NewStyle(),
	styleGridDot:  lipgloss.NewStyle().Foreground(colorDim),
	styleLink:     lipgloss.NewStyle().Foreground(colorGray),
	styleOutline:  lipgloss.NewStyle().Foreground(colorWhite),
	styleSelected: lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	styleLabel:    lipgloss.NewStyle().Foreground(colorWhite),
	styleGuide:    lipgloss.NewStyle().Foreground(colorYellow),
	styleHandle:   lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
}

type cellStyle uint8

const (
	styleBlank cellStyle = iota
	styleGridDot
	styleLink
	styleOutline
	styleSelected
	styleLabel
	styleGuide
	styleHandle
)

var toolKeys = map[string]shape.Kind{
	"r": shape.KindRectangle,
	"e": shape.KindEllipse,
	"i": shape.KindImage,
	"l": shape.KindPolyline,
	"c": shape.KindCurve,
}

// editCommand opens a document in the interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <document>",
		Short: "Edit a document interactively in the terminal",
		Long: `Edit opens a full-screen canvas. Drag shapes to move them, drag handles to
resize or rotate, and arm a tool to draw new shapes. Every gesture is
journaled, so u and U step through the same history the history command uses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runEdit(ctx context.Context, path string) error {
	opts := editorOptions(c.cfg.Interaction())
	s, err := c.openSession(ctx, path, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	m := NewEditorModel(ctx, c.cfg, s, opts)
	out, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if final, ok := out.(EditorModel); ok && final.Saved {
		printSuccess("Saved %s", path)
	}
	return nil
}

// =============================================================================
// EditorModel - Interactive canvas
// =============================================================================

// EditorModel is the bubbletea model of the edit command. Mouse events are
// converted to screen points and fed to the interaction controller; the
// canvas is rasterized from the scene on every View.
type EditorModel struct {
	ctx  context.Context
	cfg  config.Config
	sess *session
	opts interact.Options

	Width, Height int
	Status        string
	Dirty         bool
	Saved         bool
}

// NewEditorModel creates an editor over an open session. The initial view
// puts the scene's top-left corner one cell from the canvas origin.
func NewEditorModel(ctx context.Context, cfg config.Config, s *session, opts interact.Options) EditorModel {
	b := s.ctrl.Scene().Bounds()
	s.ctrl.SetView(geom.ViewTransform{Scale: 1, OffsetX: cellW - b.X, OffsetY: cellH - b.Y})
	return EditorModel{
		ctx:    ctx,
		cfg:    cfg,
		sess:   s,
		opts:   opts,
		Width:  100,
		Height: 30,
		Status: "ready",
	}
}

// editorOptions adapts controller hit radii to terminal cell sizes.
func editorOptions(opts interact.Options) interact.Options {
	opts.HandleRadius = cellH
	opts.HitTolerance = cellW / 2
	return opts
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.sess.ctrl
	if kind, ok := toolKeys[msg.String()]; ok {
		c.Arm(kind)
		m.Status = "tool: " + string(kind)
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.Dirty {
			if err := m.sess.save(""); err != nil {
				m.Status = "save failed: " + err.Error()
				return m, nil
			}
			m.Saved = true
		}
		return m, tea.Quit
	case "esc":
		c.Disarm()
		m.Status = "tool: select"
	case "s":
		m.save()
	case "u":
		m.step("undo")
	case "U", "ctrl+r":
		m.step("redo")
	case "x", "delete", "backspace":
		m.deleteSelection()
	case "g":
		m.opts.Snap.Grid = !m.opts.Snap.Grid
		m.rebuild(c.Scene())
		m.Status = "grid snap " + onOff(m.opts.Snap.Grid)
	case "n":
		m.opts.Snap.Shapes = !m.opts.Snap.Shapes
		m.rebuild(c.Scene())
		m.Status = "shape snap " + onOff(m.opts.Snap.Shapes)
	case "+", "=":
		m.zoom(zoomStep)
	case "-":
		m.zoom(1 / zoomStep)
	case "left":
		m.pan(-4*cellW, 0)
	case "right":
		m.pan(4*cellW, 0)
	case "up":
		m.pan(0, -2*cellH)
	case "down":
		m.pan(0, 2*cellH)
	}
	return m, nil
}

func (m *EditorModel) handleMouse(msg tea.MouseMsg) {
	c := m.sess.ctrl
	if msg.Y >= m.canvasRows() {
		return
	}
	p := cellPoint(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.zoomAt(zoomStep, p)
	case msg.Button == tea.MouseButtonWheelDown:
		m.zoomAt(1/zoomStep, p)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if g := c.PointerDown(m.ctx, p); g != interact.GestureNone {
			m.Status = g.String()
		}
	case msg.Action == tea.MouseActionMotion:
		if c.State() == interact.StateDragging {
			c.PointerMove(m.ctx, p)
		} else {
			c.Hover(m.ctx, p)
		}
	case msg.Action == tea.MouseActionRelease:
		if c.State() != interact.StateDragging {
			return
		}
		g, res := c.Gesture(), c.LastSnap()
		err := c.PointerUp(m.ctx, p)
		m.Dirty = true
		m.Status = gestureStatus(g, res)
		if err != nil {
			m.Status += " (history: " + err.Error() + ")"
		}
	}
}

func gestureStatus(g interact.Gesture, res snap.Result) string {
	if g != interact.GestureMove {
		return g.String() + " done"
	}
	if !res.Snapped() {
		return "moved"
	}
	return fmt.Sprintf("moved, snapped x:%s y:%s", res.X, res.Y)
}

func (m *EditorModel) save() {
	if err := m.sess.save(""); err != nil {
		m.Status = "save failed: " + err.Error()
		return
	}
	m.Dirty = false
	m.Saved = true
	m.Status = "saved " + m.sess.path
}

// step restores the previous or next revision and rebuilds the controller
// over the restored scene.
func (m *EditorModel) step(op string) {
	j := m.sess.journal
	undo := j.Undo
	if op == "redo" {
		undo = j.Redo
	}
	doc, err := undo(m.ctx)
	if err != nil {
		m.Status = op + ": " + err.Error()
		return
	}
	sc, err := scene.FromDocument(doc)
	if err != nil {
		m.Status = op + ": " + err.Error()
		return
	}
	m.cfg.ApplyScene(sc, doc)
	m.rebuild(sc)
	m.Dirty = true
	m.Status = op + " done"
}

func (m *EditorModel) deleteSelection() {
	c := m.sess.ctrl
	sel := c.Scene().Selected()
	if len(sel) == 0 {
		m.Status = "nothing selected"
		return
	}
	for _, s := range sel {
		c.Remove(s.ID())
	}
	m.Dirty = true
	m.Status = fmt.Sprintf("deleted %d shape(s)", len(sel))
	if err := handles.Commit(m.ctx, m.sess.journal, "delete", c.Scene().Document()); err != nil {
		m.Status += " (history: " + err.Error() + ")"
	}
}

func (m *EditorModel) rebuild(sc *scene.Scene) {
	view := m.sess.ctrl.View()
	m.sess.ctrl = interact.New(sc, m.sess.journal, m.opts)
	m.sess.ctrl.SetView(view)
}

func (m *EditorModel) zoom(factor float64) {
	rows := float64(m.canvasRows())
	m.zoomAt(factor, geom.Pt(float64(m.Width)*cellW/2, rows*cellH/2))
}

func (m *EditorModel) zoomAt(factor float64, anchor geom.Point) {
	c := m.sess.ctrl
	c.SetView(c.View().Zoom(factor, anchor))
	m.Status = fmt.Sprintf("zoom %.0f%%", c.View().Scale*100)
}

func (m *EditorModel) pan(dx, dy float64) {
	c := m.sess.ctrl
	c.SetView(c.View().Pan(-dx, -dy))
}

func (m EditorModel) canvasRows() int {
	return max(m.Height-statusRows, 1)
}

// cellPoint is the screen point at the center of a terminal cell.
func cellPoint(col, row int) geom.Point {
	return geom.Pt((float64(col)+0.5)*cellW, (float64(row)+0.5)*cellH)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// =============================================================================
// Canvas rasterization
// =============================================================================

type canvasCell struct {
	r     rune
	style cellStyle
}

type canvas struct {
	w, h  int
	cells []canvasCell
	view  geom.ViewTransform
}

func newCanvas(w, h int, view geom.ViewTransform) *canvas {
	cv := &canvas{w: w, h: h, cells: make([]canvasCell, w*h), view: view}
	for i := range cv.cells {
		cv.cells[i] = canvasCell{' ', styleBlank}
	}
	return cv
}

func (cv *canvas) cellOf(world geom.Point) (int, int) {
	p := cv.view.ToScreen(world)
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y / cellH))
}

func (cv *canvas) set(col, row int, r rune, st cellStyle) {
	if col < 0 || row < 0 || col >= cv.w || row >= cv.h {
		return
	}
	cv.cells[row*cv.w+col] = canvasCell{r, st}
}

func (cv *canvas) plot(world geom.Point, r rune, st cellStyle) {
	col, row := cv.cellOf(world)
	cv.set(col, row, r, st)
}

// segment draws a straight world-space segment cell by cell.
func (cv *canvas) segment(a, b geom.Point, r rune, st cellStyle) {
	c0, r0 := cv.cellOf(a)
	c1, r1 := cv.cellOf(b)
	n := max(abs(c1-c0), abs(r1-r0), 1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col := c0 + int(math.Round(t*float64(c1-c0)))
		row := r0 + int(math.Round(t*float64(r1-r0)))
		cv.set(col, row, r, st)
	}
}

func (cv *canvas) text(col, row int, s string, st cellStyle) {
	for i, r := range []rune(s) {
		cv.set(col+i, row, r, st)
	}
}

func (cv *canvas) grid(size float64) {
	if size <= 0 || size*cv.view.Scale < 2*cellW {
		return
	}
	vis := cv.view.Visible(float64(cv.w)*cellW, float64(cv.h)*cellH)
	for x := math.Floor(vis.MinX()/size) * size; x <= vis.MaxX(); x += size {
		for y := math.Floor(vis.MinY()/size) * size; y <= vis.MaxY(); y += size {
			cv.plot(geom.Pt(x, y), '·', styleGridDot)
		}
	}
}

func (cv *canvas) shape(s *shape.Shape, selected bool) {
	st := styleOutline
	if selected {
		st = styleSelected
	}
	glyph := '─'
	switch s.Kind() {
	case shape.KindEllipse:
		glyph = 'o'
	case shape.KindImage:
		glyph = '▒'
	case shape.KindPolyline, shape.KindCurve:
		glyph = '•'
	}

	var path []geom.Point
	if s.Kind() == shape.KindEllipse {
		w, h := s.Size()
		for i := 0; i <= ellipseStep; i++ {
			a := 2 * math.Pi * float64(i) / ellipseStep
			path = append(path, geom.Pt(w/2+w/2*math.Cos(a), h/2+h/2*math.Sin(a)))
		}
	} else {
		path = s.Path()
	}
	for i := 1; i < len(path); i++ {
		cv.segment(s.AbsolutePoint(path[i-1]), s.AbsolutePoint(path[i]), glyph, st)
	}

	if label := s.Label(); label != "" {
		col, row := cv.cellOf(s.Center())
		cv.text(col-len([]rune(label))/2, row, label, styleLabel)
	}
}

func (cv *canvas) handles(s *shape.Shape, selected bool) {
	for _, h := range s.Handles().All() {
		if !h.Visible && !selected {
			continue
		}
		r := '■'
		switch {
		case h.Role == shape.RoleRotate:
			r = '◎'
		case h.Role == shape.RoleManual && !h.Committed:
			r = '◇'
		case h.Role == shape.RoleManual:
			r = '◆'
		}
		cv.plot(s.AbsolutePoint(h.Pos), r, styleHandle)
	}
}

func (cv *canvas) render() string {
	var b strings.Builder
	for row := 0; row < cv.h; row++ {
		line := cv.cells[row*cv.w : (row+1)*cv.w]
		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) && line[i].style == line[start].style {
				continue
			}
			var run strings.Builder
			for _, c := range line[start:i] {
				run.WriteRune(c.r)
			}
			b.WriteString(canvasStyles[line[start].style].Render(run.String()))
			start = i
		}
		if row < cv.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// drawScene rasterizes sc at w x h cells: grid, links, shapes, handles, then
// the guide overlay on top.
func drawScene(sc *scene.Scene, view geom.ViewTransform, w, h int) *canvas {
	cv := newCanvas(w, h, view)
	cv.grid(sc.Grid)
	for _, l := range sc.Links() {
		if from, to, ok := sc.LinkEndpoints(l); ok {
			cv.segment(from, to, '·', styleLink)
		}
	}
	for _, s := range sc.Shapes() {
		cv.shape(s, sc.IsSelected(s.ID()))
	}
	for _, s := range sc.Shapes() {
		cv.handles(s, sc.IsSelected(s.ID()))
	}
	for _, g := range sc.Overlay().Guides() {
		cv.segment(g.From, g.To, '┆', styleGuide)
	}
	return cv
}

func (m EditorModel) View() string {
	c := m.sess.ctrl
	cv := drawScene(c.Scene(), c.View(), max(m.Width, 1), m.canvasRows())

	var b strings.Builder
	b.WriteString(cv.render())
	b.WriteByte('\n')

	tool := "select"
	if k, ok := c.Armed(); ok {
		tool = string(k)
	}
	dirty := ""
	if m.Dirty {
		dirty = StyleWarning.Render(" [modified]")
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s%s\n",
		StyleTitle.Render(m.sess.path),
		StyleDim.Render("tool:"), StyleHighlight.Render(tool),
		StyleDim.Render(fmt.Sprintf("zoom %.0f%%  snap shapes:%s grid:%s",
			c.View().Scale*100, onOff(m.opts.Snap.Shapes), onOff(m.opts.Snap.Grid))),
		StyleValue.Render(m.Status), dirty))
	b.WriteString(StyleDim.Render("drag move/resize  r e i l c tool  esc select  x delete  u/U undo/redo  +/- zoom  arrows pan  g/n snap  s save  q quit"))
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
