package curve

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Mode selects how pointer gestures are interpreted.
type Mode int

const (
	ModeSelect Mode = iota
	ModeDraw
)

func (m Mode) String() string {
	if m == ModeDraw {
		return "draw"
	}
	return "select"
}

// DragPreview is the proposed, uncommitted location of a dragged sample.
type DragPreview struct {
	Index int
	At    int
	Pos   int
}

// DefaultDragThreshold is the movement in pixels that turns a press into a
// drag (or a rectangle select) instead of a click.
const DefaultDragThreshold = 5.0

// SmoothPreviewDelay is how long intensity changes settle before the
// smoothing preview regenerates.
const SmoothPreviewDelay = 300 * time.Millisecond

// MaxWaypoints bounds the generator input.
const MaxWaypoints = 10

type gesturePhase int

const (
	phaseIdle gesturePhase = iota
	phasePoint
	phaseRect
	phaseStroke
)

// Editor is the facade over the curve-editing engine. It owns the history
// (which owns the curve), the transient gesture state, the smoothing
// preview and the working waypoint list. All pointer coordinates are in
// canvas pixel space.
//
// Methods are safe to call from the event loop plus the debounce and
// controller goroutines; a single mutex guards all state.
type Editor struct {
	mu sync.Mutex

	hist *History
	view *ViewportController
	sel  Selection

	Canvas        Canvas
	HitRadius     float64
	DragThreshold float64

	mode  Mode
	hover int

	phase      gesturePhase
	downX      float64
	downY      float64
	dragIndex  int
	dragMoved  bool
	additive   bool
	rect       Rect
	rectActive bool
	preview    *DragPreview

	stroke StrokeCollector

	smoother       Smoother
	smoothDebounce *Debouncer
	smoothTarget   int // pending intensity; the preview lags behind it

	waypoints []Waypoint

	playheadMs int
	playing    bool

	onCommit []func(Curve)

	// UpdateChan receives a signal whenever state changed outside the
	// caller's own event (debounced previews, controller input).
	UpdateChan chan struct{}
}

// NewEditor creates an editor around an initial curve and media length.
func NewEditor(initial Curve, totalMs int) *Editor {
	return &Editor{
		hist:           NewHistory(Normalize(initial)),
		view:           NewViewportController(totalMs),
		sel:            NewSelection(),
		Canvas:         NewCanvas(800, 400),
		HitRadius:      DefaultHitRadius,
		DragThreshold:  DefaultDragThreshold,
		hover:          -1,
		smoothDebounce: NewDebouncer(SmoothPreviewDelay),
		UpdateChan:     make(chan struct{}, 1),
	}
}

// Curve returns the live curve. Treat as read-only.
func (e *Editor) Curve() Curve {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.Present()
}

// SetCurve replaces the live curve with a normalized copy as one undoable
// commit.
func (e *Editor) SetCurve(c Curve) {
	e.mu.Lock()
	e.sel.Clear()
	e.commit(Normalize(c))
	e.mu.Unlock()
}

// LoadCurve replaces the document at the load boundary: the curve must
// already be valid, history is cleared and the edit may not be undone into
// the previous document.
func (e *Editor) LoadCurve(c Curve) error {
	if err := Validate(c); err != nil {
		return fmt.Errorf("invalid curve: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hist.Reset(c.Clone())
	e.sel.Clear()
	e.hover = -1
	e.phase = phaseIdle
	e.preview = nil
	e.stroke.Cancel()
	e.smoother.Cancel()
	e.smoothDebounce.Cancel()
	return nil
}

// OnCommit registers a listener fired once per discrete edit with a copy
// of the new curve. Listener failures are the listener's problem; they
// cannot corrupt history.
func (e *Editor) OnCommit(fn func(Curve)) {
	e.mu.Lock()
	e.onCommit = append(e.onCommit, fn)
	e.mu.Unlock()
}

// Viewport returns the current visible window.
func (e *Editor) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.View
}

// Zoom zooms the viewport one step anchored at the cursor.
func (e *Editor) Zoom(cursorRatio float64, in bool) {
	e.mu.Lock()
	e.view.Zoom(cursorRatio, in)
	e.mu.Unlock()
}

// PanStart, PanMove and PanEnd forward to the viewport controller.
func (e *Editor) PanStart() {
	e.mu.Lock()
	e.view.PanStart()
	e.mu.Unlock()
}

func (e *Editor) PanMove(ratio float64) {
	e.mu.Lock()
	e.view.PanMove(ratio)
	e.mu.Unlock()
}

func (e *Editor) PanEnd() {
	e.mu.Lock()
	e.view.PanEnd()
	e.mu.Unlock()
}

// SetTotalDuration updates the media length; a change resets the viewport.
func (e *Editor) SetTotalDuration(ms int) {
	e.mu.Lock()
	e.view.SetTotal(ms)
	e.mu.Unlock()
}

// SetPlayback feeds the external playback position into the editor and
// lets the viewport follow the playhead.
func (e *Editor) SetPlayback(currentMs int, playing bool) {
	e.mu.Lock()
	e.playheadMs = currentMs
	e.playing = playing
	e.view.FollowPlayhead(currentMs, playing)
	e.mu.Unlock()
}

// Playback returns the last playback position pushed into the editor.
func (e *Editor) Playback() (currentMs int, playing bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playheadMs, e.playing
}

// Mode returns the current gesture mode.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetMode switches between select and draw. Any gesture in flight resolves
// to its no-op branch.
func (e *Editor) SetMode(m Mode) {
	e.mu.Lock()
	e.mode = m
	e.phase = phaseIdle
	e.preview = nil
	e.rectActive = false
	e.stroke.Cancel()
	e.mu.Unlock()
}

// Hover updates the hover index from the pointer location.
func (e *Editor) Hover(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if hit, ok := HitTestPoint(x, y, e.hist.Present(), e.view.View, e.Canvas, e.HitRadius); ok {
		e.hover = hit.Index
	} else {
		e.hover = -1
	}
}

// HoverIndex returns the hovered sample index, or -1.
func (e *Editor) HoverIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hover
}

// Selection returns the selected indices, ascending.
func (e *Editor) Selection() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Indices()
}

// Selected reports whether a sample index is selected.
func (e *Editor) Selected(i int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Has(i)
}

// SelectionRect returns the live rectangle while a rect-select is active.
func (e *Editor) SelectionRect() (Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rect, e.phase == phaseRect && e.rectActive
}

// Preview returns the live drag preview, if a drag is in progress.
func (e *Editor) Preview() (DragPreview, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.preview == nil {
		return DragPreview{}, false
	}
	return *e.preview, true
}

// DrawPoints returns the in-flight free-hand stroke for rendering.
func (e *Editor) DrawPoints() []Sample {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stroke.Points()
}

// PointerDown starts a gesture. In select mode a hit sample arms a
// click-or-drag tracker and empty space arms a rectangle select; in draw
// mode it begins a stroke. additive is the union modifier for rectangle
// and click selection.
func (e *Editor) PointerDown(x, y float64, additive bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.downX, e.downY = x, y
	e.additive = additive
	e.dragMoved = false

	if e.mode == ModeDraw {
		e.phase = phaseStroke
		e.stroke.Begin(e.pointAt(x, y))
		return
	}

	if hit, ok := HitTestPoint(x, y, e.hist.Present(), e.view.View, e.Canvas, e.HitRadius); ok {
		e.phase = phasePoint
		e.dragIndex = hit.Index
		e.preview = nil
		return
	}

	e.phase = phaseRect
	e.rect = Rect{X0: x, Y0: y, X1: x, Y1: y}
	e.rectActive = false
}

// PointerMove advances the gesture in flight.
func (e *Editor) PointerMove(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case phasePoint:
		if !e.dragMoved && e.distFromDown(x, y) > e.DragThreshold {
			e.dragMoved = true
		}
		if e.dragMoved {
			at, pos := e.pointAt(x, y)
			e.preview = &DragPreview{Index: e.dragIndex, At: at, Pos: pos}
		}

	case phaseRect:
		if !e.rectActive && e.distFromDown(x, y) > e.DragThreshold {
			e.rectActive = true
		}
		if e.rectActive {
			e.rect.X1, e.rect.Y1 = x, y
		}

	case phaseStroke:
		e.stroke.Extend(e.pointAt(x, y))
	}
}

// PointerUp resolves the gesture. Click and drag are mutually exclusive
// outcomes of the same press: only a drag past the threshold commits a
// position change.
func (e *Editor) PointerUp(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	phase := e.phase
	e.phase = phaseIdle

	switch phase {
	case phasePoint:
		if e.dragMoved && e.preview != nil {
			e.commitDrag(*e.preview)
		} else {
			e.clickSelect(e.dragIndex)
		}
		e.preview = nil

	case phaseRect:
		if e.rectActive {
			e.rect.X1, e.rect.Y1 = x, y
			indices := PointsInRect(e.rect, e.hist.Present(), e.view.View, e.Canvas)
			if !e.additive {
				e.sel.Clear()
			}
			for _, i := range indices {
				e.sel.Add(i)
			}
		} else if !e.additive {
			// A plain click on empty space deselects.
			e.sel.Clear()
		}
		e.rectActive = false

	case phaseStroke:
		pts := e.stroke.Finish()
		if len(pts) >= 2 {
			merged := append(e.hist.Present().Clone(), pts...)
			e.commit(Normalize(merged))
		}
	}
}

// DoubleClick inserts a new sample at the clicked location when it lands
// on empty space.
func (e *Editor) DoubleClick(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeSelect {
		return
	}
	if _, ok := HitTestPoint(x, y, e.hist.Present(), e.view.View, e.Canvas, e.HitRadius); ok {
		return
	}
	at, pos := e.pointAt(x, y)
	e.addPoint(at, pos)
}

// AddPointAt inserts a sample at an explicit time and position.
func (e *Editor) AddPointAt(at, pos int) {
	e.mu.Lock()
	e.addPoint(at, pos)
	e.mu.Unlock()
}

// DeleteSelected removes every selected sample in one commit.
func (e *Editor) DeleteSelected() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.sel) == 0 {
		return
	}
	cur := e.hist.Present()
	out := make(Curve, 0, len(cur))
	for i, s := range cur {
		if !e.sel.Has(i) {
			out = append(out, s)
		}
	}
	e.sel.Clear()
	e.hover = -1
	e.commit(out)
}

// Undo and Redo step through history. Underflow is a no-op. Selection is
// cleared because indices may no longer line up.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hist.Undo() {
		return false
	}
	e.sel.Clear()
	e.hover = -1
	return true
}

func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hist.Redo() {
		return false
	}
	e.sel.Clear()
	e.hover = -1
	return true
}

// CanUndo and CanRedo expose history stack state.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// PreviewSmooth generates a smoothing preview immediately.
func (e *Editor) PreviewSmooth(intensity int) {
	intensity = clampIntensity(intensity)
	e.mu.Lock()
	e.smoothTarget = intensity
	e.smoother.Regenerate(e.hist.Present(), intensity, e.sel)
	e.mu.Unlock()
}

// SetSmoothIntensity regenerates an active preview after the input settles
// (trailing debounce), rather than on every keystroke. The target updates
// synchronously so rapid repeated steps accumulate instead of re-reading
// the stale preview intensity.
func (e *Editor) SetSmoothIntensity(intensity int) {
	intensity = clampIntensity(intensity)
	e.mu.Lock()
	active := e.smoother.Active()
	e.smoothTarget = intensity
	e.mu.Unlock()
	if !active {
		e.PreviewSmooth(intensity)
		return
	}
	e.smoothDebounce.Trigger(func() {
		e.PreviewSmooth(intensity)
		e.signal()
	})
}

// SmoothPreview returns the preview curve, if one is active.
func (e *Editor) SmoothPreview() (Curve, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.smoother.Active() {
		return nil, false
	}
	return e.smoother.Preview(), true
}

// SmoothStats returns the before/after counts of the active preview.
func (e *Editor) SmoothStats() SmoothStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.smoother.Stats()
}

// SmoothIntensity returns the pending intensity. While a debounced
// regeneration is in flight this is ahead of the preview; they converge
// once the input settles.
func (e *Editor) SmoothIntensity() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.smoothTarget
}

// CommitSmooth replaces the live curve with the preview as one commit.
func (e *Editor) CommitSmooth() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.smoothDebounce.Cancel()
	p, ok := e.smoother.Take()
	if !ok {
		return false
	}
	e.sel.Clear()
	e.commit(p)
	return true
}

// CancelSmooth drops the preview with no history effect.
func (e *Editor) CancelSmooth() {
	e.mu.Lock()
	e.smoothDebounce.Cancel()
	e.smoother.Cancel()
	e.mu.Unlock()
}

// Waypoints returns the working waypoint list.
func (e *Editor) Waypoints() []Waypoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Waypoint, len(e.waypoints))
	copy(out, e.waypoints)
	return out
}

// AddWaypoint appends a control point, up to MaxWaypoints.
func (e *Editor) AddWaypoint(w Waypoint) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.waypoints) >= MaxWaypoints {
		return fmt.Errorf("at most %d waypoints", MaxWaypoints)
	}
	w.Pos = ClampPos(w.Pos)
	w.At = ClampTime(w.At)
	e.waypoints = append(e.waypoints, w)
	return nil
}

// RemoveWaypoint deletes a control point by index.
func (e *Editor) RemoveWaypoint(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.waypoints) {
		return
	}
	e.waypoints = append(e.waypoints[:i], e.waypoints[i+1:]...)
}

// ClearWaypoints drops the working list.
func (e *Editor) ClearWaypoints() {
	e.mu.Lock()
	e.waypoints = nil
	e.mu.Unlock()
}

// GenerateFromWaypoints expands the working waypoints into a dense curve
// and commits it, replacing the current curve.
func (e *Editor) GenerateFromWaypoints() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.waypoints) == 0 {
		return fmt.Errorf("no waypoints set")
	}
	e.sel.Clear()
	e.commit(GenerateWaypoints(e.waypoints))
	return nil
}

// InsertPattern merges pre-built samples into the curve as one commit.
// Timestamp collisions resolve in favor of the inserted samples.
func (e *Editor) InsertPattern(p Curve) {
	if len(p) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	merged := append(e.hist.Present().Clone(), p...)
	e.sel.Clear()
	e.commit(Normalize(merged))
}

// internal helpers; e.mu must be held

func (e *Editor) pointAt(x, y float64) (at, pos int) {
	at = e.Canvas.XToTime(x, e.view.View)
	pos = ClampPos(int(math.Round(e.Canvas.YToPos(y))))
	return
}

func (e *Editor) distFromDown(x, y float64) float64 {
	return math.Hypot(x-e.downX, y-e.downY)
}

func (e *Editor) clickSelect(i int) {
	if e.additive {
		e.sel.Toggle(i)
		return
	}
	if e.sel.Has(i) && len(e.sel) == 1 {
		e.sel.Clear()
		return
	}
	e.sel.Clear()
	e.sel.Add(i)
}

func (e *Editor) commitDrag(p DragPreview) {
	cur := e.hist.Present()
	if p.Index < 0 || p.Index >= len(cur) {
		return
	}
	out := cur.Clone()
	out[p.Index] = Sample{At: ClampTime(p.At), Pos: ClampPos(p.Pos)}
	out = Normalize(out)
	e.sel.Clear()
	// Keep the moved sample selected at its new index.
	for i, s := range out {
		if s.At == ClampTime(p.At) {
			e.sel.Add(i)
			break
		}
	}
	e.commit(out)
}

func (e *Editor) addPoint(at, pos int) {
	out := append(e.hist.Present().Clone(), Sample{At: ClampTime(at), Pos: ClampPos(pos)})
	out = Normalize(out)
	e.sel.Clear()
	for i, s := range out {
		if s.At == ClampTime(at) {
			e.sel.Add(i)
			break
		}
	}
	e.commit(out)
}

func (e *Editor) commit(c Curve) {
	e.hist.Commit(c)
	cp := c.Clone()
	for _, fn := range e.onCommit {
		fn(cp)
	}
}

// signal nudges the UI that state changed outside its own event.
func (e *Editor) signal() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}
