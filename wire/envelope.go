package wire

import (
	"fmt"

	"github.com/clogwench/wincore/uid"
)

// Envelope is the one JSON value exchanged per logical message. Source is
// always overwritten by the router to the verified sender identity, never
// trusted from the wire (spec.md §9 "Cross-component message identity").
type Envelope struct {
	Source        uid.ID  `json:"source"`
	Trace         bool    `json:"trace"`
	TimestampUsec uint64  `json:"timestamp_usec"`
	Command       Command `json:"command"`
}

// Command is a tagged union of every message variant the protocol carries.
// Exactly one of its fields is non-nil; Kind names which one.
type Command struct {
	Kind string `json:"type"`

	AppConnect         *AppConnect         `json:"app_connect,omitempty"`
	AppConnectResponse *AppConnectResponse `json:"app_connect_response,omitempty"`
	WMConnect          *WMConnect          `json:"wm_connect,omitempty"`
	WMConnectResponse  *WMConnectResponse  `json:"wm_connect_response,omitempty"`

	OpenWindowCommand  *OpenWindowCommand  `json:"open_window_command,omitempty"`
	OpenWindowResponse *OpenWindowResponse `json:"open_window_response,omitempty"`

	DrawRectCommand  *DrawRectCommand  `json:"draw_rect_command,omitempty"`
	DrawImageCommand *DrawImageCommand `json:"draw_image_command,omitempty"`

	KeyDown   *KeyDown   `json:"key_down,omitempty"`
	KeyUp     *KeyUp     `json:"key_up,omitempty"`
	MouseDown *MouseDown `json:"mouse_down,omitempty"`
	MouseMove *MouseMove `json:"mouse_move,omitempty"`
	MouseUp   *MouseUp   `json:"mouse_up,omitempty"`

	CloseWindowResponse       *CloseWindowResponse       `json:"close_window_response,omitempty"`
	AppDisconnected           *AppDisconnected           `json:"app_disconnected,omitempty"`
	WindowManagerDisconnected *WindowManagerDisconnected `json:"window_manager_disconnected,omitempty"`
	WindowResized             *WindowResized             `json:"window_resized,omitempty"`
	SystemShutdown            *SystemShutdown            `json:"system_shutdown,omitempty"`

	Debug *Debug `json:"debug,omitempty"`
}

// Debug kind tags, nested one level inside a Debug envelope.
const (
	KindRequestServerShutdown   = "request_server_shutdown"
	KindScreenCapture           = "screen_capture"
	KindScreenCaptureResponse   = "screen_capture_response"
	KindBackgroundReceivedMouse = "background_received_mouse_event"
	KindAppConnectedDebug       = "app_connected_debug"
	KindAppDisconnectedDebug    = "app_disconnected_debug"
	KindLog                     = "log"
)

// DebugPayload is a tagged union of the debug sub-protocol's variants.
type DebugPayload struct {
	Kind string `json:"type"`

	RequestServerShutdown        *RequestServerShutdown        `json:"request_server_shutdown,omitempty"`
	ScreenCapture                *ScreenCapture                `json:"screen_capture,omitempty"`
	ScreenCaptureResponse        *ScreenCaptureResponse        `json:"screen_capture_response,omitempty"`
	BackgroundReceivedMouseEvent *BackgroundReceivedMouseEvent `json:"background_received_mouse_event,omitempty"`
	AppConnectedDebug            *AppConnectedDebug            `json:"app_connected_debug,omitempty"`
	AppDisconnectedDebug         *AppDisconnectedDebug         `json:"app_disconnected_debug,omitempty"`
	Log                          *Log                          `json:"log,omitempty"`
}

// Top-level command kind tags.
const (
	KindAppConnect         = "app_connect"
	KindAppConnectResponse = "app_connect_response"
	KindWMConnect          = "wm_connect"
	KindWMConnectResponse  = "wm_connect_response"

	KindOpenWindowCommand  = "open_window_command"
	KindOpenWindowResponse = "open_window_response"

	KindDrawRectCommand  = "draw_rect_command"
	KindDrawImageCommand = "draw_image_command"

	KindKeyDown   = "key_down"
	KindKeyUp     = "key_up"
	KindMouseDown = "mouse_down"
	KindMouseMove = "mouse_move"
	KindMouseUp   = "mouse_up"

	KindCloseWindowResponse       = "close_window_response"
	KindAppDisconnected           = "app_disconnected"
	KindWindowManagerDisconnected = "window_manager_disconnected"
	KindWindowResized             = "window_resized"
	KindSystemShutdown            = "system_shutdown"

	KindDebug = "debug"
)

// Validate reports an error if Kind does not match the one populated
// field, catching malformed envelopes before they reach routing logic.
func (c Command) Validate() error {
	set := 0
	check := func(v bool) {
		if v {
			set++
		}
	}
	check(c.AppConnect != nil)
	check(c.AppConnectResponse != nil)
	check(c.WMConnect != nil)
	check(c.WMConnectResponse != nil)
	check(c.OpenWindowCommand != nil)
	check(c.OpenWindowResponse != nil)
	check(c.DrawRectCommand != nil)
	check(c.DrawImageCommand != nil)
	check(c.KeyDown != nil)
	check(c.KeyUp != nil)
	check(c.MouseDown != nil)
	check(c.MouseMove != nil)
	check(c.MouseUp != nil)
	check(c.CloseWindowResponse != nil)
	check(c.AppDisconnected != nil)
	check(c.WindowManagerDisconnected != nil)
	check(c.WindowResized != nil)
	check(c.SystemShutdown != nil)
	check(c.Debug != nil)
	if set != 1 {
		return fmt.Errorf("wire: command %q: expected exactly one populated variant, found %d", c.Kind, set)
	}
	return nil
}
