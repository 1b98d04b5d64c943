// Package platform defines the backend contract the window-manager engine
// drives each frame (spec.md §4.6): frame presentation and raw input
// capture, independent of whether the real surface is a framebuffer, a
// desktop window, or nothing at all.
package platform

import (
	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
)

// ButtonState is the instantaneous state of one pointer button.
type ButtonState struct {
	Button  int32
	Pressed bool
}

// KeyEvent is one raw keyboard transition read from the backend.
type KeyEvent struct {
	Code    int32
	Key     string
	Pressed bool
}

// Backend is the capability set the manager requires of whatever owns
// the real display and input devices. Implementations: platform/base
// (shared scaffold, not standalone), platform/headless (tests),
// platform/desktop (glfw), platform/fbdev (raw Linux framebuffer+evdev).
type Backend interface {
	// ScreenBounds reports the presentation surface's extent.
	ScreenBounds() pixel.Rect

	// PreferredLayout reports the pixel layout window buffers should be
	// allocated in; the manager never converts at composite time.
	PreferredLayout() pixel.Layout

	// CursorPosition reports the last known pointer location.
	CursorPosition() pixel.Point

	// ButtonStates reports which pointer buttons are currently held.
	ButtonStates() []ButtonState

	// PollKeys drains pending raw keyboard transitions since the last
	// call; it never blocks.
	PollKeys() []KeyEvent

	// Clear fills the entire presentation surface with color.
	Clear(color pixel.Color)

	// FillRect fills rect (already clipped by the caller) with color.
	FillRect(rect pixel.Rect, color pixel.Color)

	// DrawRect paints a rect's border, border_width pixels wide.
	DrawRect(rect pixel.Rect, color pixel.Color, borderWidth int32)

	// DrawImage blits src's registered buffer content at dstPt, clipped
	// to srcRect.
	DrawImage(dstPt pixel.Point, srcRect pixel.Rect, src *pixel.Buffer)

	// RegisterBuffer tells the backend a buffer now exists and may be
	// referenced by DrawImage; some backends upload it (e.g. to a GPU
	// texture or a mapped framebuffer page), others are no-ops.
	RegisterBuffer(buf *pixel.Buffer)

	// UnregisterBuffer releases any backend-side resources tied to id.
	// The manager calls this before reallocating or freeing a buffer.
	UnregisterBuffer(id uid.ID)

	// ServiceInput drains the OS input queue. Called once per frame
	// before CursorPosition/ButtonStates/PollKeys are read.
	ServiceInput()

	// ServiceLoop presents the accumulated draws (swap buffers / flush
	// the framebuffer / write out the in-memory composite, depending on
	// the implementation).
	ServiceLoop()

	// Shutdown releases backend resources and restores any prior
	// display mode (e.g. text mode on fbdev).
	Shutdown() error
}

// Composer is implemented by backends that can hand back their current
// composite as a plain CPU-side buffer, for Debug(ScreenCapture). Not
// every Backend needs to support it; the manager checks via a type
// assertion and reports an error if it can't.
type Composer interface {
	Composite() *pixel.Buffer
}
