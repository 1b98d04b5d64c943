// Package wm implements the window-manager engine: the authoritative
// scene graph, the gesture state machine, the compositor, and the
// per-frame manager loop of spec.md §4.2-§4.6.
package wm

import (
	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
)

// Fixed decoration constants. The derived rectangles below are pure
// functions of a window's position and content size plus these.
const (
	BorderWidth      int32 = 2
	TitlebarHeight   int32 = 24
	CloseButtonSize  int32 = 18
	ResizeGripSize   int32 = 14
)

// WindowType distinguishes plain application windows from transient
// popups (menus, tooltips).
type WindowType int

const (
	WindowPlain WindowType = iota
	WindowPopup
)

// Window is the manager's record of one on-screen surface: identity,
// owner, geometry, and its back buffer. The manager is its sole owner;
// the backend only ever reads it between registration and
// unregistration (spec.md §5).
type Window struct {
	ID    uid.ID
	Owner uid.ID
	Title string
	Type  WindowType

	Position    pixel.Point
	ContentSize pixel.Size

	BackBuffer *pixel.Buffer

	// TitleBuffer holds the titlebar text pre-rendered at window-creation
	// time (the title never changes afterward, so there is no need to
	// re-render it every frame). Nil if the manager has no title font
	// installed.
	TitleBuffer *pixel.Buffer
}

// ExternalBounds is the full on-screen footprint including decorations.
func (w *Window) ExternalBounds() pixel.Rect {
	return pixel.Rect{
		X: w.Position.X - BorderWidth,
		Y: w.Position.Y - BorderWidth,
		W: w.ContentSize.W + 2*BorderWidth,
		H: w.ContentSize.H + TitlebarHeight + 2*BorderWidth,
	}
}

// ContentBounds is where the back buffer is blitted.
func (w *Window) ContentBounds() pixel.Rect {
	return pixel.Rect{
		X: w.Position.X,
		Y: w.Position.Y + TitlebarHeight,
		W: w.ContentSize.W,
		H: w.ContentSize.H,
	}
}

// TitlebarBounds spans the full external width, just above the content.
func (w *Window) TitlebarBounds() pixel.Rect {
	eb := w.ExternalBounds()
	return pixel.Rect{
		X: eb.X,
		Y: eb.Y,
		W: eb.W,
		H: TitlebarHeight,
	}
}

// CloseButtonBounds sits in the top-right corner of the titlebar.
func (w *Window) CloseButtonBounds() pixel.Rect {
	tb := w.TitlebarBounds()
	return pixel.Rect{
		X: tb.X + tb.W - CloseButtonSize - BorderWidth,
		Y: tb.Y + (TitlebarHeight-CloseButtonSize)/2,
		W: CloseButtonSize,
		H: CloseButtonSize,
	}
}

// ResizeBounds is a grip in the bottom-right corner of the external
// bounds.
func (w *Window) ResizeBounds() pixel.Rect {
	eb := w.ExternalBounds()
	return pixel.Rect{
		X: eb.X + eb.W - ResizeGripSize,
		Y: eb.Y + eb.H - ResizeGripSize,
		W: ResizeGripSize,
		H: ResizeGripSize,
	}
}

// App is the manager's record of one connected application.
type App struct {
	ID      uid.ID
	Windows []uid.ID
}

// RemoveWindow drops id from the app's owned-window list, if present.
func (a *App) RemoveWindow(id uid.ID) {
	for i, w := range a.Windows {
		if w == id {
			a.Windows = append(a.Windows[:i], a.Windows[i+1:]...)
			return
		}
	}
}

// State is the scene graph: every application, every window, the
// back-to-front z-sequence (front = tail), the focused window if any,
// and the resize-preview rectangle shown mid-drag.
type State struct {
	Apps    map[uid.ID]*App
	Windows map[uid.ID]*Window

	// ZOrder lists window ids back to front; the last element is drawn
	// last and hit-tested first.
	ZOrder []uid.ID

	Focused uid.ID // uid.Nil if nothing focused

	ResizePreview *pixel.Rect

	PreferredLayout pixel.Layout
}

func NewState(preferredLayout pixel.Layout) *State {
	return &State{
		Apps:            make(map[uid.ID]*App),
		Windows:         make(map[uid.ID]*Window),
		PreferredLayout: preferredLayout,
	}
}

func (s *State) addApp(id uid.ID) *App {
	a := &App{ID: id}
	s.Apps[id] = a
	return a
}

// removeApp drops the app and every window it owns from the scene
// graph, per spec.md §3's "an application is destroyed when its socket
// closes" lifecycle.
func (s *State) removeApp(id uid.ID) {
	app, ok := s.Apps[id]
	if !ok {
		return
	}
	for _, winID := range append([]uid.ID(nil), app.Windows...) {
		s.removeWindow(winID)
	}
	delete(s.Apps, id)
}

// addWindow registers a new window at the front of the z-sequence.
func (s *State) addWindow(w *Window) {
	s.Windows[w.ID] = w
	s.ZOrder = append(s.ZOrder, w.ID)
	if app, ok := s.Apps[w.Owner]; ok {
		app.Windows = append(app.Windows, w.ID)
	}
}

// removeWindow removes a window from the z-sequence and scene graph
// atomically, clearing focus if it pointed at the removed window
// (spec.md §3 invariants).
func (s *State) removeWindow(id uid.ID) {
	w, ok := s.Windows[id]
	if !ok {
		return
	}
	owner := w.Owner
	delete(s.Windows, id)
	for i, z := range s.ZOrder {
		if z == id {
			s.ZOrder = append(s.ZOrder[:i], s.ZOrder[i+1:]...)
			break
		}
	}
	if app, ok := s.Apps[owner]; ok {
		app.RemoveWindow(id)
	}
	if s.Focused == id {
		s.Focused = uid.Nil
	}
}

// raiseToFront moves id to the end (front) of the z-sequence.
func (s *State) raiseToFront(id uid.ID) {
	for i, w := range s.ZOrder {
		if w == id {
			s.ZOrder = append(s.ZOrder[:i], s.ZOrder[i+1:]...)
			break
		}
	}
	s.ZOrder = append(s.ZOrder, id)
}

// hitTest walks the z-sequence front to back (reverse of ZOrder) and
// returns the first window whose external bounds contain p.
func (s *State) hitTest(p pixel.Point) *Window {
	for i := len(s.ZOrder) - 1; i >= 0; i-- {
		w := s.Windows[s.ZOrder[i]]
		if w == nil {
			continue
		}
		if w.ExternalBounds().Contains(p) {
			return w
		}
	}
	return nil
}
