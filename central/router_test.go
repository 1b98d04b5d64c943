package central

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
)

// newTestPeer gives a peer a real (but unused) net.Conn so code paths that
// call conn.Close() (e.g. rejecting a duplicate WMConnect) don't panic on a
// nil pointer.
func newTestPeer(t *testing.T, class peerClass) *peer {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	return newPeer(class, wire.NewConn(server))
}

func recvOne(t *testing.T, p *peer) wire.Envelope {
	t.Helper()
	select {
	case env := <-p.outbound:
		return env
	default:
		t.Fatal("expected a queued outbound envelope, found none")
		return wire.Envelope{}
	}
}

func TestHandleAppConnectAssignsIDAndReplies(t *testing.T) {
	r := newRouter(newTable())
	app := newTestPeer(t, classApp)

	r.route(inbound{from: app, env: wire.Envelope{Command: wire.NewAppConnect()}})

	assert.False(t, app.id.IsNil())
	env := recvOne(t, app)
	require.NotNil(t, env.Command.AppConnectResponse)
	assert.Equal(t, app.id, env.Command.AppConnectResponse.AppID)

	_, ok := r.table.lookupApp(app.id)
	assert.True(t, ok)
}

func TestHandleWMConnectRejectsSecondWM(t *testing.T) {
	r := newRouter(newTable())
	first := newTestPeer(t, classWM)
	second := newTestPeer(t, classWM)

	r.route(inbound{from: first, env: wire.Envelope{Command: wire.NewWMConnect()}})
	ack := recvOne(t, first)
	assert.Equal(t, wire.KindWMConnectResponse, ack.Command.Kind)

	r.route(inbound{from: second, env: wire.Envelope{Command: wire.NewWMConnect()}})
	rejection := recvOne(t, second)
	assert.Equal(t, wire.KindWindowManagerDisconnected, rejection.Command.Kind)
}

func TestHandleOpenWindowCommandNotifiesAppAndWM(t *testing.T) {
	r := newRouter(newTable())
	app := newTestPeer(t, classApp)
	app.id = uid.New()
	r.table.addApp(app)
	wm := newTestPeer(t, classWM)
	r.table.setWM(wm)

	cmd := wire.NewOpenWindowCommand(wire.WindowPlain, wire.Bounds{X: 1, Y: 2, W: 3, H: 4}, "hello")
	r.route(inbound{from: app, env: wire.Envelope{Command: cmd}})

	appResp := recvOne(t, app)
	require.NotNil(t, appResp.Command.OpenWindowResponse)
	wmResp := recvOne(t, wm)
	require.NotNil(t, wmResp.Command.OpenWindowResponse)
	assert.Equal(t, appResp.Command.OpenWindowResponse.WindowID, wmResp.Command.OpenWindowResponse.WindowID)

	owned := r.table.windowsOwnedBy(app.id)
	assert.Contains(t, owned, appResp.Command.OpenWindowResponse.WindowID)
}

func TestHandleDrawRectRewritesSenderIdentity(t *testing.T) {
	r := newRouter(newTable())
	app := newTestPeer(t, classApp)
	app.id = uid.New()
	wm := newTestPeer(t, classWM)
	r.table.setWM(wm)

	forged := uid.New() // an app must not be able to draw as someone else
	cmd := wire.NewDrawRectCommand(wire.DrawRectCommand{AppID: forged, WindowID: uid.New()})
	r.route(inbound{from: app, env: wire.Envelope{Command: cmd}})

	got := recvOne(t, wm)
	require.NotNil(t, got.Command.DrawRectCommand)
	assert.Equal(t, app.id, got.Command.DrawRectCommand.AppID)
	assert.NotEqual(t, forged, got.Command.DrawRectCommand.AppID)
}

func TestHandleInputEventDropsUnknownRecipient(t *testing.T) {
	r := newRouter(newTable())
	wm := newTestPeer(t, classWM)

	cmd := wire.NewMouseDown(wire.MouseDown{AppID: uid.New()})
	r.route(inbound{from: wm, env: wire.Envelope{Command: cmd}})

	select {
	case <-wm.outbound:
		t.Fatal("unknown recipient must be dropped silently, not echoed back")
	default:
	}
}

func TestHandleInputEventForwardsToKnownApp(t *testing.T) {
	r := newRouter(newTable())
	wm := newTestPeer(t, classWM)
	app := newTestPeer(t, classApp)
	app.id = uid.New()
	r.table.addApp(app)

	cmd := wire.NewMouseDown(wire.MouseDown{AppID: app.id, X: 9})
	r.route(inbound{from: wm, env: wire.Envelope{Command: cmd}})

	got := recvOne(t, app)
	require.NotNil(t, got.Command.MouseDown)
	assert.Equal(t, int32(9), got.Command.MouseDown.X)
}

func TestOnAppDisconnectedForgetsWindowsAndNotifiesWM(t *testing.T) {
	r := newRouter(newTable())
	app := uid.New()
	win := uid.New()
	r.table.registerWindow(win, app)
	wm := newTestPeer(t, classWM)
	r.table.setWM(wm)

	r.onAppDisconnected(app)

	assert.Empty(t, r.table.windowsOwnedBy(app))
	got := recvOne(t, wm)
	require.NotNil(t, got.Command.AppDisconnected)
	assert.Equal(t, app, got.Command.AppDisconnected.AppID)
}
