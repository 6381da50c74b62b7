package meridian

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	dragDeadZone   = 4.0  // pixels of travel before a press becomes a drag
	rotateDegPerPx = 0.25 // bearing degrees per horizontal drag pixel
	pitchDegPerPx  = 0.25 // pitch degrees per vertical drag pixel
	wheelZoomStep  = 0.25 // zoom levels per wheel notch
)

// --- Hit targets ---

type targetKind uint8

const (
	targetNone targetKind = iota // bare map background
	targetLayer
	targetMarker
	targetPopup
	targetPopupClose
	targetControl
)

// hitTarget identifies what sits under the pointer. The zero value is the
// bare map background.
type hitTarget struct {
	kind   targetKind
	marker *Marker
	popup  *Popup
	layer  *LineLayer
	button *Button
}

// clickable reports whether the target wants a pointer cursor.
func (t hitTarget) clickable() bool {
	switch t.kind {
	case targetControl, targetPopupClose, targetLayer:
		return true
	case targetMarker:
		return t.marker.draggable || t.marker.OnClick != nil || t.marker.popup != nil
	}
	return false
}

// --- Pointer state ---

type gestureKind uint8

const (
	gestureNone gestureKind = iota
	gesturePan
	gestureRotate
	gestureMarker
)

type pointerState struct {
	down     bool
	start    Point
	last     Point
	hit      hitTarget // target at press time
	hover    hitTarget // last hovered target, for enter/leave
	button   MouseButton
	gesture  gestureKind
	dragging bool
	grab     Point // cursor-to-marker offset captured at press
}

// input owns pointer and wheel processing for a map. Real mouse input and
// injected synthetic input feed the same state machine.
type input struct {
	m      *Map
	ptr    pointerState
	queue  []syntheticEvent
	cursor ebiten.CursorShapeType
}

func newInput(m *Map) *input {
	return &input{m: m, cursor: ebiten.CursorShapeDefault}
}

// cameraGesture reports whether a press is holding the camera (a pan or
// rotate in progress or still inside the dead zone). Keeps moveend from
// firing while the user has merely paused mid-drag.
func (in *input) cameraGesture() bool {
	return in.ptr.down && (in.ptr.gesture == gesturePan || in.ptr.gesture == gestureRotate)
}

// forget drops any pointer references to a marker being removed. An
// in-flight drag or hover on the marker is cancelled without firing
// further events.
func (in *input) forget(mk *Marker) {
	if in.ptr.hover.marker == mk {
		in.ptr.hover = hitTarget{}
	}
	if in.ptr.hit.marker == mk {
		in.ptr.hit = hitTarget{}
		in.ptr.gesture = gestureNone
		in.ptr.dragging = false
	}
}

// --- Processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// process is called once per Update tick. Injected events take priority
// over the real mouse so scripted input is deterministic.
func (in *input) process() {
	mods := readModifiers()
	if in.processInjected(mods) {
		return
	}

	mx, my := ebiten.CursorPosition()
	pos := Point{X: float64(mx), Y: float64(my)}

	if _, dy := ebiten.Wheel(); dy != 0 {
		in.wheel(pos, dy)
	}

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	in.pointer(pos, pressed, button, mods)
}

// wheel zooms about the cursor position.
func (in *input) wheel(pos Point, dy float64) {
	in.m.camera.zoomAbout(dy*wheelZoomStep, pos)
}

// --- Hit testing ---

// hitTest finds the topmost interactive thing under pos. Controls sit above
// popups, popups above markers, markers above layers.
func (in *input) hitTest(pos Point) hitTarget {
	m := in.m

	for i := len(m.controls) - 1; i >= 0; i-- {
		if m.controls[i].rect.Contains(pos) {
			return hitTarget{kind: targetControl, button: m.controls[i].button}
		}
	}

	for i := len(m.popups) - 1; i >= 0; i-- {
		p := m.popups[i]
		if p.closeRect(m.camera).Contains(pos) {
			return hitTarget{kind: targetPopupClose, popup: p}
		}
		if p.bounds(m.camera).Contains(pos) {
			return hitTarget{kind: targetPopup, popup: p}
		}
	}

	for i := len(m.markers) - 1; i >= 0; i-- {
		mk := m.markers[i]
		if mk.bounds(m.camera).Contains(pos) {
			return hitTarget{kind: targetMarker, marker: mk}
		}
	}

	for i := len(m.layers) - 1; i >= 0; i-- {
		l := m.layers[i]
		if !l.interactive {
			continue
		}
		src := l.source()
		if src == nil || len(src.data) < 2 {
			continue
		}
		pts := m.projectBuf[:0]
		for _, ll := range src.data {
			pts = append(pts, m.camera.Project(ll))
		}
		m.projectBuf = pts
		if pointNearPolyline(pos, pts, l.width/2+2) {
			return hitTarget{kind: targetLayer, layer: l}
		}
	}

	return hitTarget{}
}

// --- State machine ---

// pointer runs the pointer state machine for one position sample.
func (in *input) pointer(pos Point, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &in.ptr
	m := in.m

	var target hitTarget
	if ps.down && ps.dragging {
		// A drag keeps its press target captured until release.
		target = ps.hit
	} else {
		target = in.hitTest(pos)
	}

	in.updateHover(target, pos, mods)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.start = pos
		ps.last = pos
		ps.hit = target
		ps.dragging = false
		ps.gesture = in.gestureFor(target, button, mods)
		if ps.gesture == gestureMarker {
			mp := target.marker.screenPos(m.camera)
			ps.grab = Point{X: mp.X - pos.X, Y: mp.Y - pos.Y}
		}

	case !pressed && ps.down:
		if ps.dragging {
			in.endDrag(pos, mods)
		} else if sameTarget(ps.hit, target) {
			in.click(target, pos, ps.button, mods)
		}
		ps.down = false
		ps.hit = hitTarget{}
		ps.dragging = false
		ps.gesture = gestureNone

	case pressed && ps.down:
		if pos != ps.last {
			if !ps.dragging && ps.gesture != gestureNone {
				dx := pos.X - ps.start.X
				dy := pos.Y - ps.start.Y
				if math.Sqrt(dx*dx+dy*dy) > dragDeadZone {
					ps.dragging = true
					in.startDrag(pos, mods)
				}
			}
			if ps.dragging {
				in.drag(pos, mods)
			}
			ps.last = pos
		}

	default:
		if pos != ps.last {
			m.events.fire(in.moveEvent(EventPointerMove, target, pos, mods))
			ps.last = pos
		}
	}

	in.setCursor(target)
}

// gestureFor decides what a press will do once it travels past the dead
// zone. Presses on controls and popups never move the camera.
func (in *input) gestureFor(target hitTarget, button MouseButton, mods KeyModifiers) gestureKind {
	switch target.kind {
	case targetControl, targetPopupClose, targetPopup:
		return gestureNone
	case targetMarker:
		if target.marker.draggable {
			return gestureMarker
		}
		return gestureNone
	}
	// Background or layer: shift-drag and right-drag rotate, anything else
	// pans.
	if button == MouseButtonRight || mods&ModShift != 0 {
		return gestureRotate
	}
	return gesturePan
}

// updateHover fires enter/leave when the hovered marker or layer changes.
func (in *input) updateHover(target hitTarget, pos Point, mods KeyModifiers) {
	ps := &in.ptr
	if sameTarget(ps.hover, target) {
		return
	}

	if prev := ps.hover.marker; prev != nil && prev.m == in.m {
		prev.hovered = false
		ev := in.moveEvent(EventPointerLeave, ps.hover, pos, mods)
		if prev.OnLeave != nil {
			prev.OnLeave(ev)
		}
		in.m.events.fire(ev)
	}
	if prev := ps.hover.layer; prev != nil && prev.m == in.m {
		prev.hovered = false
		ev := in.moveEvent(EventPointerLeave, ps.hover, pos, mods)
		if prev.OnLeave != nil {
			prev.OnLeave(ev)
		}
		in.m.events.fire(ev)
	}

	if mk := target.marker; mk != nil && target.kind == targetMarker {
		mk.hovered = true
		ev := in.moveEvent(EventPointerEnter, target, pos, mods)
		if mk.OnEnter != nil {
			mk.OnEnter(ev)
		}
		in.m.events.fire(ev)
	}
	if l := target.layer; l != nil {
		l.hovered = true
		ev := in.moveEvent(EventPointerEnter, target, pos, mods)
		if l.OnEnter != nil {
			l.OnEnter(ev)
		}
		in.m.events.fire(ev)
	}

	ps.hover = target
}

// click dispatches a completed press/release pair on a single target.
func (in *input) click(target hitTarget, pos Point, button MouseButton, mods KeyModifiers) {
	m := in.m
	switch target.kind {
	case targetControl:
		if target.button.OnPress != nil {
			target.button.OnPress()
		}

	case targetPopupClose:
		target.popup.Remove()

	case targetPopup:
		// Clicks inside a popup never fall through to the map.

	case targetMarker:
		mk := target.marker
		mk.TogglePopup()
		ev := in.moveEvent(EventClick, target, pos, mods)
		ev.Button = button
		if mk.OnClick != nil {
			mk.OnClick(ev)
		}
		m.events.fire(ev)

	case targetLayer:
		l := target.layer
		ev := in.moveEvent(EventClick, target, pos, mods)
		ev.Button = button
		if l.OnClick != nil {
			l.OnClick(ev)
		}
		m.events.fire(ev)

	default:
		ev := in.moveEvent(EventClick, target, pos, mods)
		ev.Button = button
		m.events.fire(ev)
		in.dismissPopups()
	}
}

// dismissPopups closes open popups that opted into close-on-click.
// Iterates over a snapshot since Remove mutates the map's popup list.
func (in *input) dismissPopups() {
	m := in.m
	if len(m.popups) == 0 {
		return
	}
	open := make([]*Popup, len(m.popups))
	copy(open, m.popups)
	for _, p := range open {
		if p.closeOnClick {
			p.Remove()
		}
	}
}

// --- Drags ---

func (in *input) startDrag(pos Point, mods KeyModifiers) {
	ps := &in.ptr
	if ps.gesture == gestureMarker {
		mk := ps.hit.marker
		mk.dragging = true
		ev := in.dragEvent(EventDragStart, pos, mods)
		if mk.OnDragStart != nil {
			mk.OnDragStart(ev)
		}
		in.m.events.fire(ev)
	}
}

func (in *input) drag(pos Point, mods KeyModifiers) {
	ps := &in.ptr
	m := in.m
	dx := pos.X - ps.last.X
	dy := pos.Y - ps.last.Y

	switch ps.gesture {
	case gesturePan:
		m.camera.panBy(dx, dy)

	case gestureRotate:
		m.camera.rotateBy(dx * rotateDegPerPx)
		m.camera.pitchBy(-dy * pitchDegPerPx)

	case gestureMarker:
		mk := ps.hit.marker
		if mk == nil || !mk.dragging {
			return
		}
		// Keep the grab offset so the marker does not jump to the cursor.
		at := Point{X: pos.X + ps.grab.X - mk.offset.X, Y: pos.Y + ps.grab.Y - mk.offset.Y}
		mk.SetLngLat(m.camera.Unproject(at))
		ev := in.dragEvent(EventDrag, pos, mods)
		if mk.OnDrag != nil {
			mk.OnDrag(ev)
		}
		m.events.fire(ev)
	}
}

func (in *input) endDrag(pos Point, mods KeyModifiers) {
	ps := &in.ptr
	if ps.gesture == gestureMarker {
		if mk := ps.hit.marker; mk != nil && mk.dragging {
			mk.dragging = false
			ev := in.dragEvent(EventDragEnd, pos, mods)
			if mk.OnDragEnd != nil {
				mk.OnDragEnd(ev)
			}
			in.m.events.fire(ev)
		}
	}
}

// --- Event construction ---

func (in *input) moveEvent(t EventType, target hitTarget, pos Point, mods KeyModifiers) Event {
	ev := Event{
		Type:      t,
		Point:     pos,
		LngLat:    in.m.camera.Unproject(pos),
		Modifiers: mods,
		Marker:    target.marker,
		Popup:     target.popup,
	}
	if target.layer != nil {
		ev.Layer = target.layer.id
	}
	return ev
}

func (in *input) dragEvent(t EventType, pos Point, mods KeyModifiers) Event {
	ps := &in.ptr
	ev := in.moveEvent(t, ps.hit, pos, mods)
	ev.Button = ps.button
	ev.Start = ps.start
	ev.Delta = Point{X: pos.X - ps.last.X, Y: pos.Y - ps.last.Y}
	return ev
}

// --- Cursor ---

func (in *input) setCursor(target hitTarget) {
	shape := ebiten.CursorShapeDefault
	switch {
	case in.ptr.dragging:
		shape = ebiten.CursorShapeMove
	case target.clickable():
		shape = ebiten.CursorShapePointer
	}
	if shape != in.cursor {
		in.cursor = shape
		ebiten.SetCursorShape(shape)
	}
}

func sameTarget(a, b hitTarget) bool {
	return a.kind == b.kind && a.marker == b.marker && a.popup == b.popup &&
		a.layer == b.layer && a.button == b.button
}
