package central

import (
	"log/slog"
	"time"

	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
)

// inbound is one decoded envelope tagged with the peer it arrived from,
// fed onto the router's single shared channel by every peer's reader
// goroutine.
type inbound struct {
	from *peer
	env  wire.Envelope
}

// router owns the connection table and is the only goroutine that mutates
// it beyond the table's own locked accessors; it applies the routing
// rules of spec.md §4.1 in order, one inbound message at a time.
type router struct {
	table *table
	in    chan inbound
}

func newRouter(t *table) *router {
	return &router{table: t, in: make(chan inbound, 256)}
}

// run drains r.in until it is closed.
func (r *router) run() {
	for msg := range r.in {
		r.route(msg)
	}
}

func (r *router) route(msg inbound) {
	from, env := msg.from, msg.env
	cmd := env.Command

	// The router, not the sender, stamps Source (spec.md §9).
	env.Source = from.id

	if env.Trace {
		r.broadcastDebug(wire.NewLog("central: routing " + cmd.Kind))
	}

	switch {
	case cmd.AppConnect != nil:
		r.handleAppConnect(from, env)
	case cmd.WMConnect != nil:
		r.handleWMConnect(from, env)
	case cmd.OpenWindowCommand != nil:
		r.handleOpenWindowCommand(from, env)
	case cmd.DrawRectCommand != nil:
		r.handleDrawRect(from, env)
	case cmd.DrawImageCommand != nil:
		r.handleDrawImage(from, env)
	case cmd.MouseDown != nil, cmd.MouseMove != nil, cmd.MouseUp != nil,
		cmd.KeyDown != nil, cmd.KeyUp != nil:
		r.handleInputEvent(from, env)
	case cmd.CloseWindowResponse != nil, cmd.WindowResized != nil:
		r.handleWMToAppNotification(from, env)
	case cmd.Debug != nil && cmd.Debug.Payload.ScreenCaptureResponse != nil:
		r.handleScreenCaptureResponse(from, env)
	case cmd.Debug != nil:
		r.handleDebug(from, env)
	default:
		slog.Error("central: unknown or out-of-context message, dropping", "from", from.id, "class", from.class, "kind", cmd.Kind)
	}
}

// rule 1: AppConnect -> assign a fresh app id, reply, announce to debuggers.
func (r *router) handleAppConnect(from *peer, env wire.Envelope) {
	if from.class != classApp {
		slog.Error("central: AppConnect from non-app peer, dropping")
		return
	}
	from.id = uid.New()
	r.table.addApp(from)
	from.send(envelopeFor(wire.NewAppConnectResponse(from.id)))
	r.broadcastDebug(wire.NewAppConnectedDebug(wire.AppConnectedDebug{AppID: from.id}))
}

// rule 2: WMConnect -> register the sole window-manager peer, reject
// duplicates.
func (r *router) handleWMConnect(from *peer, env wire.Envelope) {
	if from.class != classWM {
		slog.Error("central: WMConnect from non-wm peer, dropping")
		return
	}
	if !r.table.setWM(from) {
		slog.Error("central: duplicate WMConnect, rejecting")
		from.send(envelopeFor(wire.NewWindowManagerDisconnected()))
		from.conn.Close()
		return
	}
	from.send(envelopeFor(wire.NewWMConnectResponse()))
}

// rule 3: OpenWindowCommand from an app -> assign a fresh window id,
// attach it to the sender, reply to the app, and forward the same
// response to the window manager.
func (r *router) handleOpenWindowCommand(from *peer, env wire.Envelope) {
	if from.class != classApp || from.id.IsNil() {
		slog.Error("central: OpenWindowCommand from unregistered peer, dropping")
		return
	}
	cmd := env.Command.OpenWindowCommand
	winID := uid.New()
	r.table.registerWindow(winID, from.id)

	resp := wire.OpenWindowResponse{
		AppID:       from.id,
		WindowID:    winID,
		Bounds:      cmd.Bounds,
		WindowTitle: cmd.WindowTitle,
	}
	from.send(envelopeFor(wire.NewOpenWindowResponse(resp)))
	if wm := r.table.getWM(); wm != nil {
		wm.send(envelopeFor(wire.NewOpenWindowResponse(resp)))
	}
}

// rule 4: draw commands from an app -> forward to the window manager,
// rewriting app_id to the verified sender (apps cannot forge identity).
func (r *router) handleDrawRect(from *peer, env wire.Envelope) {
	if from.class != classApp || from.id.IsNil() {
		slog.Error("central: DrawRectCommand from unregistered peer, dropping")
		return
	}
	env.Command.DrawRectCommand.AppID = from.id
	r.forwardToWM(env)
}

func (r *router) handleDrawImage(from *peer, env wire.Envelope) {
	if from.class != classApp || from.id.IsNil() {
		slog.Error("central: DrawImageCommand from unregistered peer, dropping")
		return
	}
	env.Command.DrawImageCommand.AppID = from.id
	r.forwardToWM(env)
}

// rule 5: input events from the window manager, addressed by recipient
// app id -> forward to that app; drop silently if unknown.
func (r *router) handleInputEvent(from *peer, env wire.Envelope) {
	if from.class != classWM {
		slog.Error("central: input event from non-wm peer, dropping")
		return
	}
	appID := recipientOf(env.Command)
	if appID.IsNil() {
		return
	}
	target, ok := r.table.lookupApp(appID)
	if !ok {
		return // unknown app: drop silently, per spec.
	}
	target.send(env)
}

// rule 6: Debug(_) -> broadcast to all debuggers; RequestServerShutdown
// and ScreenCapture also carry side effects.
func (r *router) handleDebug(from *peer, env wire.Envelope) {
	if from.class == classDebugger {
		r.table.addDebugger(from)
	}
	payload := env.Command.Debug.Payload
	switch {
	case payload.RequestServerShutdown != nil:
		r.broadcastDebug(payload)
		if wm := r.table.getWM(); wm != nil {
			wm.send(envelopeFor(wire.NewSystemShutdown()))
		}
	case payload.ScreenCapture != nil:
		r.broadcastDebug(payload)
		if wm := r.table.getWM(); wm != nil {
			wm.send(env)
		}
	default:
		r.broadcastDebug(payload)
	}
}

// handleWMToAppNotification forwards window-lifecycle notifications the
// window manager addresses to a specific app (CloseWindowResponse,
// WindowResized), by the same "drop if unknown" rule as input events.
func (r *router) handleWMToAppNotification(from *peer, env wire.Envelope) {
	if from.class != classWM {
		slog.Error("central: window notification from non-wm peer, dropping")
		return
	}
	var appID uid.ID
	switch {
	case env.Command.CloseWindowResponse != nil:
		appID = env.Command.CloseWindowResponse.AppID
	case env.Command.WindowResized != nil:
		appID = env.Command.WindowResized.AppID
	}
	if target, ok := r.table.lookupApp(appID); ok {
		target.send(env)
	}
}

// handleScreenCaptureResponse relays a capture result from the window
// manager back to every attached debugger, mirroring how the request
// arrived as a Debug broadcast.
func (r *router) handleScreenCaptureResponse(from *peer, env wire.Envelope) {
	if from.class != classWM {
		slog.Error("central: screen capture response from non-wm peer, dropping")
		return
	}
	r.broadcastDebug(env.Command.Debug.Payload)
}

func (r *router) forwardToWM(env wire.Envelope) {
	wm := r.table.getWM()
	if wm == nil {
		slog.Warn("central: no window manager connected, dropping draw command")
		return
	}
	wm.send(env)
}

func (r *router) broadcastDebug(payload wire.DebugPayload) {
	env := envelopeFor(wire.NewDebug(payload))
	for _, d := range r.table.allDebuggers() {
		d.send(env)
	}
}

// onAppDisconnected runs the cleanup for rule described in spec.md §4.1
// failure semantics: remove the app's windows from central's table,
// notify the window manager and debuggers.
func (r *router) onAppDisconnected(appID uid.ID) {
	r.table.removeApp(appID)
	for _, w := range r.table.windowsOwnedBy(appID) {
		r.table.forgetWindow(w)
	}
	env := envelopeFor(wire.NewAppDisconnected(wire.AppDisconnected{AppID: appID}))
	if wm := r.table.getWM(); wm != nil {
		wm.send(env)
	}
	r.broadcastDebug(wire.NewAppDisconnectedDebug(wire.AppDisconnectedDebug{AppID: appID}))
}

// onWMDisconnected notifies debuggers; clients must reconnect (spec.md
// §4.1 "a router crash is not recoverable by clients").
func (r *router) onWMDisconnected(p *peer) {
	r.table.clearWM(p)
	env := envelopeFor(wire.NewWindowManagerDisconnected())
	for _, d := range r.table.allDebuggers() {
		d.send(env)
	}
}

func recipientOf(cmd wire.Command) uid.ID {
	switch {
	case cmd.MouseDown != nil:
		return cmd.MouseDown.AppID
	case cmd.MouseMove != nil:
		return cmd.MouseMove.AppID
	case cmd.MouseUp != nil:
		return cmd.MouseUp.AppID
	case cmd.KeyDown != nil:
		return cmd.KeyDown.AppID
	case cmd.KeyUp != nil:
		return cmd.KeyUp.AppID
	default:
		return uid.Nil
	}
}

func envelopeFor(cmd wire.Command) wire.Envelope {
	return wire.Envelope{
		TimestampUsec: uint64(time.Now().UnixMicro()),
		Command:       cmd,
	}
}
