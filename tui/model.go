package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"curvelab/config"
	"curvelab/curve"
	"curvelab/debug"
	"curvelab/midi"
	"curvelab/script"
	"curvelab/theme"
	"curvelab/widgets"
)

// Two presses this close together, this close to each other, count as a
// double click.
const (
	doubleClickWindow = 400 * time.Millisecond
	doubleClickDist   = 2
)

const transportTick = 50 * time.Millisecond

// insertPatternMs is the length of motion the insert-pattern action drops
// at the playhead.
const insertPatternMs = 15000

type Model struct {
	Editor    *curve.Editor
	Theme     *theme.Theme
	Cfg       *config.Config
	Doc       *script.Script
	Path      string
	DeviceMgr *midi.DeviceManager // may be nil

	width     int
	height    int
	canvasTop int

	saving       bool
	saveInput    textinput.Model
	showHelp     bool
	showSmooth   bool
	showAnalysis bool
	status       string

	mouseX int
	mouseY int

	lastClick  time.Time
	lastClickX int
	lastClickY int

	panLastX int
	panning  bool

	nextInterp curve.Interp

	lastTick time.Time
	quitting bool
}

type UpdateMsg struct{}

type tickMsg time.Time

func NewModel(ed *curve.Editor, th *theme.Theme, cfg *config.Config, doc *script.Script, path string, dm *midi.DeviceManager) Model {
	ti := textinput.New()
	ti.Placeholder = "label (optional)"
	ti.CharLimit = 40

	return Model{
		Editor:    ed,
		Theme:     th,
		Cfg:       cfg,
		Doc:       doc,
		Path:      path,
		DeviceMgr: dm,
		saveInput: ti,
	}
}

func ListenForUpdates(ed *curve.Editor) tea.Cmd {
	return func() tea.Msg {
		<-ed.UpdateChan
		return UpdateMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(transportTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Editor),
		tick(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Editor)

	case tickMsg:
		m.advanceTransport(time.Time(msg))
		return m, tick()
	}

	return m, nil
}

// layout sizes the editor canvas to the terminal. Terminal cells are far
// coarser than pixels, so the pixel-tuned config radii are scaled down.
func (m *Model) layout() {
	canvasH := m.height - m.canvasChromeHeight()
	if canvasH < 4 {
		canvasH = 4
	}
	m.canvasTop = 2
	m.Editor.Canvas = curve.Canvas{
		Width:     float64(m.width),
		Height:    float64(canvasH),
		PadTop:    1,
		PadBottom: 1,
	}
	m.Editor.HitRadius = cellScale(m.Cfg.UI.HitRadiusPx, 1.5)
	m.Editor.DragThreshold = cellScale(m.Cfg.UI.DragThresholdPx, 1)
}

func cellScale(px, min float64) float64 {
	v := px / 4
	if v < min {
		return min
	}
	return v
}

func (m *Model) canvasChromeHeight() int {
	// header + blank + status + hints
	return 5
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		switch msg.String() {
		case "enter":
			m.doSave()
			m.saving = false
			m.saveInput.Blur()
			return m, nil
		case "esc":
			m.saving = false
			m.saveInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.saveInput, cmd = m.saveInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.persistConfig()
		return m, tea.Quit

	case "tab", "d":
		if m.Editor.Mode() == curve.ModeSelect {
			m.Editor.SetMode(curve.ModeDraw)
		} else {
			m.Editor.SetMode(curve.ModeSelect)
		}

	case "u":
		if !m.Editor.Undo() {
			m.status = "nothing to undo"
		}

	case "ctrl+r":
		if !m.Editor.Redo() {
			m.status = "nothing to redo"
		}

	case "x", "backspace", "delete":
		m.Editor.DeleteSelected()

	case " ":
		ms, playing := m.Editor.Playback()
		m.Editor.SetPlayback(ms, !playing)
		m.lastTick = time.Time{}

	case "+", "=":
		m.Editor.Zoom(0.5, true)

	case "-", "_":
		m.Editor.Zoom(0.5, false)

	case "h", "left":
		m.Editor.PanMove(-0.1)

	case "l", "right":
		m.Editor.PanMove(0.1)

	case "0":
		m.Editor.SetPlayback(0, false)

	case "s":
		if m.showSmooth {
			m.Editor.CancelSmooth()
			m.showSmooth = false
		} else {
			m.Editor.PreviewSmooth(m.Cfg.UI.LastSmoothPercent)
			m.showSmooth = true
		}

	case "[":
		if m.showSmooth {
			m.Editor.SetSmoothIntensity(m.Editor.SmoothIntensity() - 10)
		}

	case "]":
		if m.showSmooth {
			m.Editor.SetSmoothIntensity(m.Editor.SmoothIntensity() + 10)
		}

	case "enter":
		if m.showSmooth {
			if m.Editor.CommitSmooth() {
				m.Cfg.UI.LastSmoothPercent = m.Editor.SmoothIntensity()
				m.status = "smoothing applied"
			}
			m.showSmooth = false
		}

	case "esc":
		if m.showSmooth {
			m.Editor.CancelSmooth()
			m.showSmooth = false
		}

	case "a":
		m.showAnalysis = !m.showAnalysis

	case "p":
		ms, _ := m.Editor.Playback()
		g := curve.NewGenerator(time.Now().UnixNano())
		pat := g.Generate(insertPatternMs)
		for i := range pat {
			pat[i].At += ms
		}
		m.Editor.InsertPattern(pat)
		m.status = fmt.Sprintf("inserted %d samples at %s", len(pat), formatMs(ms))

	case "m":
		at, pos := m.pointUnderMouse()
		w := curve.Waypoint{At: at, Pos: pos, Interp: m.nextInterp}
		if err := m.Editor.AddWaypoint(w); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("waypoint %d/%d (%s)", len(m.Editor.Waypoints()), curve.MaxWaypoints, m.nextInterp)
		}

	case "i":
		m.nextInterp++
		if m.nextInterp > curve.InterpStep {
			m.nextInterp = curve.InterpLinear
		}
		m.status = "next waypoint: " + m.nextInterp.String()

	case "g":
		if err := m.Editor.GenerateFromWaypoints(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "curve generated from waypoints"
		}

	case "G":
		m.Editor.ClearWaypoints()

	case "ctrl+s":
		m.saving = true
		m.saveInput.SetValue("")
		m.saveInput.Focus()
		return m, textinput.Blink

	case "?":
		m.showHelp = !m.showHelp
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	cx := float64(msg.X)
	cy := float64(msg.Y - m.canvasTop)
	m.mouseX, m.mouseY = msg.X, msg.Y

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.Editor.Zoom(cx/float64(m.width), true)
		return
	case tea.MouseButtonWheelDown:
		m.Editor.Zoom(cx/float64(m.width), false)
		return
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.Editor.PointerMove(cx, cy)
		case tea.MouseButtonRight, tea.MouseButtonMiddle:
			if m.panning {
				m.Editor.PanMove(float64(m.panLastX-msg.X) / float64(m.width))
				m.panLastX = msg.X
			}
		default:
			debug.LogEvery(60, "mouse", "hover %d,%d", msg.X, msg.Y)
			m.Editor.Hover(cx, cy)
		}

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			now := time.Now()
			if now.Sub(m.lastClick) < doubleClickWindow &&
				absInt(msg.X-m.lastClickX) <= doubleClickDist &&
				absInt(msg.Y-m.lastClickY) <= doubleClickDist {
				m.Editor.DoubleClick(cx, cy)
				m.lastClick = time.Time{}
			} else {
				additive := msg.Shift
				if m.Cfg.UI.RectSelectUnion {
					additive = additive || msg.Ctrl
				}
				m.Editor.PointerDown(cx, cy, additive)
				m.lastClick = now
				m.lastClickX, m.lastClickY = msg.X, msg.Y
			}
		case tea.MouseButtonRight, tea.MouseButtonMiddle:
			m.panning = true
			m.panLastX = msg.X
			m.Editor.PanStart()
		}

	case tea.MouseActionRelease:
		if m.panning {
			m.panning = false
			m.Editor.PanEnd()
		} else {
			m.Editor.PointerUp(cx, cy)
		}
	}
}

// advanceTransport is the internal clock standing in for an external
// player: it advances the playhead by wall time while playing.
func (m *Model) advanceTransport(now time.Time) {
	ms, playing := m.Editor.Playback()
	if !playing {
		m.lastTick = now
		return
	}
	if m.lastTick.IsZero() {
		m.lastTick = now
		return
	}
	ms += int(now.Sub(m.lastTick).Milliseconds())
	m.lastTick = now

	total := m.Editor.Viewport().Total
	if total > 0 && ms >= total {
		ms = total
		playing = false
	}
	m.Editor.SetPlayback(ms, playing)
}

func (m *Model) pointUnderMouse() (at, pos int) {
	cv := m.Editor.Canvas
	at = cv.XToTime(float64(m.mouseX), m.Editor.Viewport())
	pos = curve.ClampPos(int(cv.YToPos(float64(m.mouseY - m.canvasTop))))
	return at, pos
}

func (m *Model) doSave() {
	m.Doc.Actions = m.Editor.Curve()

	name := "untitled"
	if m.Path != "" {
		name = strings.TrimSuffix(filepath.Base(m.Path), filepath.Ext(m.Path))
		if err := script.Save(m.Path, m.Doc); err != nil {
			m.status = "save failed: " + err.Error()
			return
		}
	}

	path, err := script.Snapshot(name, m.saveInput.Value(), m.Doc)
	if err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	debug.Log("save", "wrote %s", path)
	m.status = "saved " + filepath.Base(path)
}

func (m *Model) persistConfig() {
	m.Cfg.UI.LastFile = m.Path
	if err := m.Cfg.Save(); err != nil {
		debug.Log("config", "save failed: %v", err)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	ms, playing := m.Editor.Playback()
	playState := "STOP"
	if playing {
		playState = "PLAY"
	}

	name := "untitled"
	if m.Path != "" {
		name = filepath.Base(m.Path)
	}

	surfaces := ""
	if m.DeviceMgr != nil {
		if n := len(m.DeviceMgr.Surfaces()); n > 0 {
			surfaces = fmt.Sprintf("  midi:%d", n)
		}
	}

	v := m.Editor.Viewport()
	header := headerStyle.Render(fmt.Sprintf(
		"curvelab  %s  %s  %s  %s  [%s - %s]%s",
		name, m.Editor.Mode(), playState, formatMs(ms),
		formatMs(v.Start), formatMs(v.End()), surfaces,
	))

	canvas := m.renderCanvas()

	var status string
	switch {
	case m.saving:
		status = "snapshot label: " + m.saveInput.View()
	case m.showSmooth:
		st := m.Editor.SmoothStats()
		status = widgets.RenderGauge("smooth", m.Editor.SmoothIntensity(), 20, m.Theme.Palette.Lookup(theme.RolePreview)) +
			fmt.Sprintf("  %d -> %d points  [/]:adjust enter:apply esc:cancel", st.OriginalCount, st.SmoothedCount)
	case m.status != "":
		status = statusStyle.Render(m.status)
	}

	hints := dimStyle.Render("tab:mode space:play u:undo ctrl+r:redo x:delete s:smooth m:waypoint g:generate p:pattern a:analysis ctrl+s:save ?:help q:quit")

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(canvas)
	out.WriteString("\n")
	out.WriteString(status)
	out.WriteString("\n")
	out.WriteString(hints)

	if m.showAnalysis {
		out.WriteString("\n\n")
		out.WriteString(curve.Analyze(m.Editor.Curve()).String())
	}

	if m.showHelp {
		out.WriteString("\n\n")
		out.WriteString(widgets.RenderKeyHelp(keyHelp()))
		out.WriteString("\n\nLegend\n")
		out.WriteString(m.renderLegend())
	}

	return out.String()
}

func (m Model) renderLegend() string {
	th := m.Theme
	sym := func(r rune) string { return string(r) }
	items := []string{
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RoleFG), sym(th.Symbols.Point), "sample"),
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RoleSelected), sym(th.Symbols.Selected), "selected"),
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RolePreview), sym(th.Symbols.Preview), "preview"),
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RoleWarning), sym(th.Symbols.Waypoint), "waypoint"),
		widgets.RenderLegendItem(th.Palette.Lookup(theme.RoleCursor), sym(th.Symbols.Playhead), "playhead"),
	}
	return strings.Join(items, "\n")
}

func (m Model) renderCanvas() string {
	playheadMs, _ := m.Editor.Playback()
	f := Frame{
		Curve:      m.Editor.Curve(),
		View:       m.Editor.Viewport(),
		Canvas:     m.Editor.Canvas,
		Selected:   m.Editor.Selected,
		Hover:      m.Editor.HoverIndex(),
		Stroke:     m.Editor.DrawPoints(),
		Waypoints:  m.Editor.Waypoints(),
		PlayheadMs: playheadMs,
	}
	if p, ok := m.Editor.Preview(); ok {
		f.Preview = &p
	}
	if r, ok := m.Editor.SelectionRect(); ok {
		f.Rect = &r
	}
	if sp, ok := m.Editor.SmoothPreview(); ok {
		f.SmoothPreview = sp
	}
	return RenderCanvas(f, m.Theme)
}

func keyHelp() []widgets.KeySection {
	return []widgets.KeySection{
		{Title: "Editing", Keys: []widgets.KeyBinding{
			{Key: "tab / d", Desc: "toggle select/draw mode"},
			{Key: "click", Desc: "select point (shift adds)"},
			{Key: "drag", Desc: "move point / rubber-band select"},
			{Key: "dbl-click", Desc: "add point"},
			{Key: "x", Desc: "delete selected"},
			{Key: "u / ctrl+r", Desc: "undo / redo"},
		}},
		{Title: "View", Keys: []widgets.KeyBinding{
			{Key: "wheel / + -", Desc: "zoom at cursor"},
			{Key: "right-drag", Desc: "pan"},
			{Key: "h l", Desc: "pan left/right"},
			{Key: "space", Desc: "play/pause"},
			{Key: "0", Desc: "rewind"},
		}},
		{Title: "Tools", Keys: []widgets.KeyBinding{
			{Key: "s", Desc: "smoothing preview"},
			{Key: "[ ]", Desc: "smoothing intensity"},
			{Key: "m", Desc: "drop waypoint at cursor"},
			{Key: "i", Desc: "cycle waypoint easing"},
			{Key: "g / G", Desc: "generate / clear waypoints"},
			{Key: "p", Desc: "insert pattern at playhead"},
			{Key: "a", Desc: "analysis panel"},
			{Key: "ctrl+s", Desc: "save + snapshot"},
		}},
	}
}

func formatMs(ms int) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d.%03d", s/60, s%60, ms%1000)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
