package wm

import (
	"log/slog"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
)

// Gesture is a tagged-variant interaction spanning one MouseDown to the
// matching MouseUp (spec.md §4.3, §9 "avoid open-ended inheritance"):
// exactly one implementation is active in the manager at a time.
type Gesture interface {
	OnMouseMove(m *Manager, p pixel.Point)
	OnMouseUp(m *Manager, p pixel.Point)
}

// NoOp is the idle state: no gesture is active, either because the last
// MouseDown hit no window or because the last gesture ended on MouseUp.
type NoOp struct{}

func (NoOp) OnMouseMove(*Manager, pixel.Point) {}
func (NoOp) OnMouseUp(*Manager, pixel.Point)   {}

// WindowDrag tracks a titlebar drag: the window follows the pointer
// offset from where the drag began.
type WindowDrag struct {
	Win        uid.ID
	MouseStart pixel.Point
	WinStart   pixel.Point
}

func (g *WindowDrag) OnMouseMove(m *Manager, p pixel.Point) {
	w, ok := m.state.Windows[g.Win]
	if !ok {
		m.gesture = NoOp{}
		return
	}
	delta := g.MouseStart.Sub(g.WinStart)
	w.Position = p.Sub(delta)
}

func (g *WindowDrag) OnMouseUp(m *Manager, p pixel.Point) {
	g.OnMouseMove(m, p)
	m.gesture = NoOp{}
}

// WindowResize tracks a resize grip drag: a preview rectangle follows
// the pointer; the content size is committed on release.
type WindowResize struct {
	Win        uid.ID
	MouseStart pixel.Point
}

func (g *WindowResize) OnMouseMove(m *Manager, p pixel.Point) {
	w, ok := m.state.Windows[g.Win]
	if !ok {
		m.gesture = NoOp{}
		return
	}
	eb := w.ExternalBounds()
	preview := pixel.NewRect(eb.X, eb.Y, p.X-eb.X, p.Y-eb.Y)
	m.state.ResizePreview = &preview
}

func (g *WindowResize) OnMouseUp(m *Manager, p pixel.Point) {
	w, ok := m.state.Windows[g.Win]
	m.state.ResizePreview = nil
	m.gesture = NoOp{}
	if !ok {
		return
	}
	eb := w.ExternalBounds()
	newExtW := p.X - eb.X
	newExtH := p.Y - eb.Y
	newContentW := newExtW - 2*BorderWidth
	newContentH := newExtH - TitlebarHeight - 2*BorderWidth
	if newContentW < 1 {
		newContentW = 1
	}
	if newContentH < 1 {
		newContentH = 1
	}
	w.ContentSize = pixel.Size{W: newContentW, H: newContentH}
}

// WindowClose tracks a close-button press: the window is removed on a
// matching release, wherever the release lands (spec.md §4.3 table).
type WindowClose struct {
	Win uid.ID
}

func (g *WindowClose) OnMouseMove(*Manager, pixel.Point) {}

func (g *WindowClose) OnMouseUp(m *Manager, p pixel.Point) {
	m.gesture = NoOp{}
	w, ok := m.state.Windows[g.Win]
	if !ok {
		return
	}
	owner := w.Owner
	if w.BackBuffer != nil {
		m.backend.UnregisterBuffer(w.BackBuffer.ID)
	}
	if w.TitleBuffer != nil {
		m.backend.UnregisterBuffer(w.TitleBuffer.ID)
	}
	m.state.removeWindow(g.Win)
	m.sendToApp(owner, wire.NewCloseWindowResponse(wire.CloseWindowResponse{
		AppID:    owner,
		WindowID: g.Win,
	}))
}

// AppDispatch forwards translated mouse motion/release to the window
// that owns the hit content area.
type AppDispatch struct {
	App uid.ID
	Win uid.ID
}

func (g *AppDispatch) OnMouseMove(m *Manager, p pixel.Point) {
	if local, ok := m.translate(g.Win, p); ok {
		m.sendToApp(g.App, wire.NewMouseMove(wire.MouseMove{AppID: g.App, WindowID: g.Win, X: local.X, Y: local.Y}))
	}
}

func (g *AppDispatch) OnMouseUp(m *Manager, p pixel.Point) {
	if local, ok := m.translate(g.Win, p); ok {
		m.sendToApp(g.App, wire.NewMouseUp(wire.MouseUp{AppID: g.App, WindowID: g.Win, X: local.X, Y: local.Y}))
	}
	m.gesture = NoOp{}
}

// handleMouseDown implements the spec.md §4.3 hit-testing order: close
// button, titlebar, resize grip, else dispatch to content.
func (m *Manager) handleMouseDown(p pixel.Point, button int32) {
	w := m.state.hitTest(p)
	if w == nil {
		m.gesture = NoOp{}
		m.broadcastDebug(wire.NewBackgroundReceivedMouseEvent(p.X, p.Y))
		return
	}

	m.state.raiseToFront(w.ID)
	m.state.Focused = w.ID

	switch {
	case w.CloseButtonBounds().Contains(p):
		m.gesture = &WindowClose{Win: w.ID}
	case w.TitlebarBounds().Contains(p):
		m.gesture = &WindowDrag{Win: w.ID, MouseStart: p, WinStart: w.Position}
	case w.ResizeBounds().Contains(p):
		m.gesture = &WindowResize{Win: w.ID, MouseStart: p}
	default:
		m.gesture = &AppDispatch{App: w.Owner, Win: w.ID}
		if local, ok := m.translate(w.ID, p); ok {
			m.sendToApp(w.Owner, wire.NewMouseDown(wire.MouseDown{AppID: w.Owner, WindowID: w.ID, X: local.X, Y: local.Y}))
		}
	}
}

// translate converts screen-space point p into coordinates local to
// winID's content area.
func (m *Manager) translate(winID uid.ID, p pixel.Point) (pixel.Point, bool) {
	w, ok := m.state.Windows[winID]
	if !ok {
		slog.Error("wm: gesture referenced unknown window", "window", winID)
		return pixel.Point{}, false
	}
	cb := w.ContentBounds()
	return p.Sub(pixel.Point{X: cb.X, Y: cb.Y}), true
}
