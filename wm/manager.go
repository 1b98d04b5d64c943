package wm

import (
	"fmt"
	"log/slog"

	"github.com/clogwench/wincore/font"
	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/platform"
	"github.com/clogwench/wincore/runctl"
	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
	"github.com/clogwench/wincore/xerrors"
)

// maxInboundPerFrame bounds the work done draining the inbound queue each
// tick, so the frame loop never stalls on a burst of draw commands
// (spec.md §4.2 "bounded work per tick to preserve frame pacing").
const maxInboundPerFrame = 256

// Manager owns the scene graph, the active gesture, and the platform
// backend for the lifetime of the process. Every field is touched only
// from the goroutine running Run (spec.md §5: "all state mutations
// happen on the main thread").
type Manager struct {
	state   *State
	gesture Gesture
	backend platform.Backend

	send func(wire.Envelope)

	cursor    *pixel.Buffer
	titleFont *font.Font

	prevButtons []platform.ButtonState

	stop *runctl.Flag
}

// NewManager constructs a manager bound to backend, sending outbound
// envelopes via send (wired by cmd/wm to the central connection).
func NewManager(backend platform.Backend, stop *runctl.Flag, send func(wire.Envelope)) *Manager {
	return &Manager{
		state:   NewState(backend.PreferredLayout()),
		gesture: NoOp{},
		backend: backend,
		send:    send,
		stop:    stop,
	}
}

// SetCursor installs the cursor image the compositor blits at the
// pointer position. A nil cursor disables the cursor blit step.
func (m *Manager) SetCursor(buf *pixel.Buffer) { m.cursor = buf }

func (m *Manager) cursorBuffer() *pixel.Buffer { return m.cursor }

// SetTitleFont installs the font used to pre-render titlebar text for
// windows opened from this point on. A nil font (the default) leaves
// titlebars bare.
func (m *Manager) SetTitleFont(f *font.Font) { m.titleFont = f }

// Run drives the per-frame loop of spec.md §4.2 until the stop flag is
// set or a SystemShutdown command arrives.
func (m *Manager) Run(inbound <-chan wire.Envelope) {
	for !m.stop.IsSet() {
		m.backend.ServiceInput()
		m.pollRawInput()

		if !m.drainInbound(inbound) {
			break
		}

		m.reconcileBuffers()
		m.compose()
	}
	m.teardown()
}

// pollRawInput feeds the backend's raw cursor/button/key state into the
// gesture machine. Button-down/up edges are derived by diffing against
// the previously seen state.
func (m *Manager) pollRawInput() {
	pos := m.backend.CursorPosition()
	for _, bs := range m.backend.ButtonStates() {
		if bs.Pressed && !m.lastButtonPressed(bs.Button) {
			m.handleMouseDown(pos, bs.Button)
		}
	}
	m.gesture.OnMouseMove(m, pos)
	for _, bs := range m.backend.ButtonStates() {
		if !bs.Pressed && m.lastButtonPressed(bs.Button) {
			m.gesture.OnMouseUp(m, pos)
		}
	}
	m.recordButtonStates(m.backend.ButtonStates())

	for _, k := range m.backend.PollKeys() {
		m.routeKeyEvent(k)
	}
}

func (m *Manager) lastButtonPressed(button int32) bool {
	for _, b := range m.prevButtons {
		if b.Button == button {
			return b.Pressed
		}
	}
	return false
}

func (m *Manager) recordButtonStates(bs []platform.ButtonState) {
	m.prevButtons = append(m.prevButtons[:0], bs...)
}

func (m *Manager) routeKeyEvent(k platform.KeyEvent) {
	if m.state.Focused.IsNil() {
		return
	}
	w := m.state.Windows[m.state.Focused]
	if w == nil {
		return
	}
	if k.Pressed {
		m.sendToApp(w.Owner, wire.NewKeyDown(wire.KeyDown{
			AppID: w.Owner, WindowID: w.ID, Code: k.Code, Key: k.Key,
		}))
	} else {
		m.sendToApp(w.Owner, wire.NewKeyUp(wire.KeyUp{
			AppID: w.Owner, WindowID: w.ID, Code: k.Code, Key: k.Key,
		}))
	}
}

// drainInbound processes up to maxInboundPerFrame queued messages. It
// returns false if a SystemShutdown was seen, telling Run to exit.
func (m *Manager) drainInbound(inbound <-chan wire.Envelope) bool {
	for i := 0; i < maxInboundPerFrame; i++ {
		select {
		case env := <-inbound:
			if !m.handle(env) {
				return false
			}
		default:
			return true
		}
	}
	return true
}

// handle dispatches one inbound envelope per the spec.md §4.2 message
// table. It returns false on SystemShutdown.
func (m *Manager) handle(env wire.Envelope) bool {
	cmd := env.Command
	switch {
	case cmd.AppConnectResponse != nil:
		m.state.addApp(cmd.AppConnectResponse.AppID)

	case cmd.AppDisconnected != nil:
		m.releaseAppBuffers(cmd.AppDisconnected.AppID)
		m.state.removeApp(cmd.AppDisconnected.AppID)

	case cmd.OpenWindowResponse != nil:
		m.handleOpenWindowResponse(cmd.OpenWindowResponse)

	case cmd.DrawRectCommand != nil:
		m.handleDrawRect(cmd.DrawRectCommand)

	case cmd.DrawImageCommand != nil:
		m.handleDrawImage(cmd.DrawImageCommand)

	case cmd.MouseDown != nil:
		v := cmd.MouseDown
		m.handleMouseDown(pixel.Point{X: v.X, Y: v.Y}, v.Button)

	case cmd.MouseMove != nil:
		m.gesture.OnMouseMove(m, pixel.Point{X: cmd.MouseMove.X, Y: cmd.MouseMove.Y})

	case cmd.MouseUp != nil:
		m.gesture.OnMouseUp(m, pixel.Point{X: cmd.MouseUp.X, Y: cmd.MouseUp.Y})

	case cmd.KeyDown != nil, cmd.KeyUp != nil:
		// Raw key transitions from central are only expected via the
		// backend's own PollKeys path in this process; ignore any that
		// arrive over the wire to avoid double-delivery.

	case cmd.Debug != nil && cmd.Debug.Payload.ScreenCapture != nil:
		m.handleScreenCapture(cmd.Debug.Payload.ScreenCapture)

	case cmd.SystemShutdown != nil:
		return false

	default:
		slog.Warn("wm: unhandled inbound message", "kind", cmd.Kind)
	}
	return true
}

// releaseAppBuffers unregisters every buffer owned by appID's windows
// before the scene graph drops them, so the backend never holds a
// dangling reference to a buffer the manager considers freed.
func (m *Manager) releaseAppBuffers(appID uid.ID) {
	app, ok := m.state.Apps[appID]
	if !ok {
		return
	}
	for _, winID := range app.Windows {
		w, ok := m.state.Windows[winID]
		if !ok {
			continue
		}
		m.backend.UnregisterBuffer(w.BackBuffer.ID)
		if w.TitleBuffer != nil {
			m.backend.UnregisterBuffer(w.TitleBuffer.ID)
		}
	}
}

func (m *Manager) handleOpenWindowResponse(v *wire.OpenWindowResponse) {
	// OpenWindowResponse carries no window_type field (spec.md §6); every
	// window the manager allocates is Plain until a later protocol
	// revision threads popup hints through the response too.
	w := &Window{
		ID:          v.WindowID,
		Owner:       v.AppID,
		Title:       v.WindowTitle,
		Type:        WindowPlain,
		Position:    pixel.Point{X: v.Bounds.X, Y: v.Bounds.Y},
		ContentSize: pixel.Size{W: v.Bounds.W, H: v.Bounds.H},
	}
	w.BackBuffer = pixel.New(uid.New(), w.ContentSize.W, w.ContentSize.H, m.state.PreferredLayout)
	w.BackBuffer.Clear(pixel.White)
	m.backend.RegisterBuffer(w.BackBuffer)

	if m.titleFont != nil && w.Title != "" {
		tb := w.TitlebarBounds()
		titleBuf := pixel.New(uid.New(), tb.W, TitlebarHeight, m.state.PreferredLayout)
		font.DrawString(titleBuf, m.titleFont, BorderWidth*2, BorderWidth, w.Title, pixel.White)
		w.TitleBuffer = titleBuf
		m.backend.RegisterBuffer(titleBuf)
	}

	m.state.addWindow(w)
}

// handleDrawRect enforces draw-command authority (spec.md §4.2) before
// clipping and filling.
func (m *Manager) handleDrawRect(v *wire.DrawRectCommand) {
	w, ok := m.authorizedWindow(v.AppID, v.WindowID)
	if !ok {
		return
	}
	rect := pixel.Rect{X: v.Rect.X, Y: v.Rect.Y, W: v.Rect.W, H: v.Rect.H}
	color := pixel.Color{A: v.Color.A, R: v.Color.R, G: v.Color.G, B: v.Color.B}
	w.BackBuffer.FillRect(rect, color)
}

func (m *Manager) handleDrawImage(v *wire.DrawImageCommand) {
	w, ok := m.authorizedWindow(v.AppID, v.WindowID)
	if !ok {
		return
	}
	layout := pixel.ARGB
	if v.Buffer.Layout == "rgb565" {
		layout = pixel.RGB565
	}
	src := pixel.New(v.Buffer.ID, v.Buffer.Width, v.Buffer.Height, layout)
	copy(src.Data, v.Buffer.Data)

	dst := pixel.Rect{X: v.Rect.X, Y: v.Rect.Y, W: v.Rect.W, H: v.Rect.H}
	if dst.W == src.Width && dst.H == src.Height {
		w.BackBuffer.DrawImage(dst.Min(), src.Bounds(), src)
	} else {
		w.BackBuffer.FillRectWithImage(dst, src)
	}
}

// authorizedWindow looks up winID and verifies claimedOwner matches the
// window's actual owner (spec.md §9 Open Question #3, §4.2 draw-command
// authority: reject draws to unknown or mismatched windows rather than
// silently dropping-and-succeeding).
func (m *Manager) authorizedWindow(claimedOwner, winID uid.ID) (*Window, bool) {
	w, ok := m.state.Windows[winID]
	if !ok {
		slog.Error("wm: draw command targets unknown window", "window", winID, "app", claimedOwner)
		return nil, false
	}
	if w.Owner != claimedOwner {
		slog.Error("wm: draw command authority mismatch", "window", winID, "owner", w.Owner, "claimed", claimedOwner)
		return nil, false
	}
	return w, true
}

func (m *Manager) handleScreenCapture(v *wire.ScreenCapture) {
	// Rendering to PNG is handled by the imgio package; the manager only
	// needs to trigger the capture and relay the response.
	path, err := m.captureToPNG(v.Path)
	if err != nil {
		xerrors.Log(fmt.Errorf("wm: screen capture to %s failed: %w", v.Path, err))
		return
	}
	m.broadcastDebug(wire.NewScreenCaptureResponse(path))
}

// reconcileBuffers implements spec.md §3's reconciliation invariant:
// any window whose back buffer dimensions diverge from its content size
// is reallocated and its owner notified.
func (m *Manager) reconcileBuffers() {
	for _, w := range m.state.Windows {
		if w.BackBuffer.Width == w.ContentSize.W && w.BackBuffer.Height == w.ContentSize.H {
			continue
		}
		m.backend.UnregisterBuffer(w.BackBuffer.ID)
		w.BackBuffer = pixel.New(uid.New(), w.ContentSize.W, w.ContentSize.H, m.state.PreferredLayout)
		w.BackBuffer.Clear(pixel.White)
		m.backend.RegisterBuffer(w.BackBuffer)
		m.sendToApp(w.Owner, wire.NewWindowResized(wire.WindowResized{
			AppID:    w.Owner,
			WindowID: w.ID,
			Size:     wire.Bounds{W: w.ContentSize.W, H: w.ContentSize.H},
		}))
	}
}

func (m *Manager) teardown() {
	for id := range m.state.Windows {
		w := m.state.Windows[id]
		m.backend.UnregisterBuffer(w.BackBuffer.ID)
		if w.TitleBuffer != nil {
			m.backend.UnregisterBuffer(w.TitleBuffer.ID)
		}
	}
	if err := m.backend.Shutdown(); err != nil {
		xerrors.Log(fmt.Errorf("wm: backend shutdown failed: %w", err))
	}
}

// sendToApp queues cmd on the manager's single connection to central,
// which routes it using the app_id already embedded in cmd.
func (m *Manager) sendToApp(appID uid.ID, cmd wire.Command) {
	_ = appID
	m.send(wire.Envelope{Command: cmd})
}

func (m *Manager) broadcastDebug(payload wire.DebugPayload) {
	m.send(wire.Envelope{Command: wire.NewDebug(payload)})
}
