package wire

import "github.com/clogwench/wincore/uid"

// WindowType distinguishes a normal application window from a transient
// popup, per spec.
type WindowType string

const (
	WindowPlain WindowType = "plain"
	WindowPopup WindowType = "popup"
)

// Bounds mirrors pixel.Rect at the wire level so the protocol package does
// not need to import the rendering engine.
type Bounds struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	W int32 `json:"w"`
	H int32 `json:"h"`
}

// WireColor mirrors pixel.Color at the wire level.
type WireColor struct {
	A, R, G, B byte
}

// WireBuffer is the serialized form of a pixel buffer sent in
// DrawImageCommand: an id, dimensions, a layout tag, and raw bytes.
type WireBuffer struct {
	ID     uid.ID `json:"id"`
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Layout string `json:"layout"` // "argb" | "rgb565"
	Data   []byte `json:"data"`
}

// AppConnect is sent by a newly connecting application.
type AppConnect struct{}

// AppConnectResponse assigns the sender a fresh application id.
type AppConnectResponse struct {
	AppID uid.ID `json:"app_id"`
}

// WMConnect is sent by the window manager to register itself as the sole
// privileged peer.
type WMConnect struct{}

// WMConnectResponse acknowledges a WMConnect.
type WMConnectResponse struct{}

// OpenWindowCommand asks central to create a new window for the sender.
type OpenWindowCommand struct {
	WindowType  WindowType `json:"window_type"`
	Bounds      Bounds     `json:"bounds"`
	WindowTitle string     `json:"window_title"`
}

// OpenWindowResponse is sent both back to the requesting app and onward to
// the window manager, carrying the window's full bounds. Central copies
// them from the request and the manager uses them unchanged (see
// DESIGN.md Open Question #2).
type OpenWindowResponse struct {
	AppID       uid.ID `json:"app_id"`
	WindowID    uid.ID `json:"window_id"`
	Bounds      Bounds `json:"bounds"`
	WindowTitle string `json:"window_title"`
}

// DrawRectCommand fills a rect of a window's back buffer with a color.
type DrawRectCommand struct {
	AppID    uid.ID    `json:"app_id"`
	WindowID uid.ID    `json:"window_id"`
	Rect     Bounds    `json:"rect"`
	Color    WireColor `json:"color"`
}

// DrawImageCommand blits an image into a window's back buffer at rect,
// tiling the image if it is smaller than rect.
type DrawImageCommand struct {
	AppID    uid.ID     `json:"app_id"`
	WindowID uid.ID     `json:"window_id"`
	Rect     Bounds     `json:"rect"`
	Buffer   WireBuffer `json:"buffer"`
}

// KeyDown/KeyUp are low-level key press/release events routed to the
// currently focused window's owner.
type KeyDown struct {
	AppID             uid.ID `json:"app_id"`
	WindowID          uid.ID `json:"window_id"`
	Code              int32  `json:"code"`
	Key               string `json:"key"`
	OriginalTimestamp uint64 `json:"original_timestamp"`
}

type KeyUp struct {
	AppID             uid.ID `json:"app_id"`
	WindowID          uid.ID `json:"window_id"`
	Code              int32  `json:"code"`
	Key               string `json:"key"`
	OriginalTimestamp uint64 `json:"original_timestamp"`
}

// MouseDown/MouseMove/MouseUp are pointer events, addressed either to the
// window manager (raw, from the backend) or to an app (translated to
// window-local coordinates by the gesture machine).
type MouseDown struct {
	AppID             uid.ID `json:"app_id"`
	WindowID          uid.ID `json:"window_id"`
	Button            int32  `json:"button"`
	X                 int32  `json:"x"`
	Y                 int32  `json:"y"`
	OriginalTimestamp uint64 `json:"original_timestamp"`
}

type MouseMove struct {
	AppID             uid.ID `json:"app_id"`
	WindowID          uid.ID `json:"window_id"`
	Button            int32  `json:"button"`
	X                 int32  `json:"x"`
	Y                 int32  `json:"y"`
	OriginalTimestamp uint64 `json:"original_timestamp"`
}

type MouseUp struct {
	AppID             uid.ID `json:"app_id"`
	WindowID          uid.ID `json:"window_id"`
	Button            int32  `json:"button"`
	X                 int32  `json:"x"`
	Y                 int32  `json:"y"`
	OriginalTimestamp uint64 `json:"original_timestamp"`
}

// CloseWindowResponse notifies an app that one of its windows was closed
// via the close-button gesture.
type CloseWindowResponse struct {
	AppID    uid.ID `json:"app_id"`
	WindowID uid.ID `json:"window_id"`
}

// AppDisconnected notifies the window manager and debuggers that an app's
// socket closed or it sent a shutdown.
type AppDisconnected struct {
	AppID uid.ID `json:"app_id"`
}

// WindowManagerDisconnected notifies debuggers that the sole window
// manager peer disconnected.
type WindowManagerDisconnected struct{}

// WindowResized notifies an app that its window's back buffer was
// reallocated to a new content size during reconciliation.
type WindowResized struct {
	AppID    uid.ID `json:"app_id"`
	WindowID uid.ID `json:"window_id"`
	Size     Bounds `json:"size"`
}

// SystemShutdown tells the window manager to exit its loop cleanly.
type SystemShutdown struct{}

// Debug wraps the in-band debugging sub-protocol; DebugPayload carries one
// of the tagged debug sub-variants.
type Debug struct {
	Payload DebugPayload `json:"payload"`
}

// RequestServerShutdown asks central (and, by side effect, the window
// manager) to shut down.
type RequestServerShutdown struct{}

// ScreenCapture asks the window manager to render the current composite
// to a PNG file at Path.
type ScreenCapture struct {
	Path string `json:"path"`
}

// ScreenCaptureResponse reports where the capture was written.
type ScreenCaptureResponse struct {
	Path string `json:"path"`
}

// BackgroundReceivedMouseEvent is emitted when a MouseDown hits no window.
type BackgroundReceivedMouseEvent struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// AppConnectedDebug/AppDisconnectedDebug announce app presence/departure
// to attached debuggers.
type AppConnectedDebug struct {
	AppID uid.ID `json:"app_id"`
}

type AppDisconnectedDebug struct {
	AppID uid.ID `json:"app_id"`
}

// Log carries a free-form trace line, emitted by central when an
// envelope's Trace bit is set.
type Log struct {
	Message string `json:"message"`
}
