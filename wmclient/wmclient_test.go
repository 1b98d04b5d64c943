package wmclient

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
)

// serverPeer accepts one connection on a loopback listener and hands
// back a wire.Conn so tests can script central's side of the handshake
// without a real central process.
func serverPeer(t *testing.T) (addr string, accept func() *wire.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().String(), func() *wire.Conn {
		nc, err := ln.Accept()
		require.NoError(t, err)
		return wire.NewConn(nc)
	}
}

func TestConnectCompletesHandshakeAndStoresAppID(t *testing.T) {
	addr, accept := serverPeer(t)

	serverDone := make(chan uid.ID, 1)
	go func() {
		conn := accept()
		env, err := conn.Recv()
		require.NoError(t, err)
		require.Equal(t, wire.KindAppConnect, env.Command.Kind)

		appID := uid.New()
		require.NoError(t, conn.Send(wire.Envelope{Command: wire.NewAppConnectResponse(appID)}))
		serverDone <- appID
	}()

	client, err := Connect(addr)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, <-serverDone, client.AppID())
}

func TestConnectFailsOnUnexpectedFirstReply(t *testing.T) {
	addr, accept := serverPeer(t)

	go func() {
		conn := accept()
		conn.Recv()
		conn.Send(wire.Envelope{Command: wire.NewSystemShutdown()})
	}()

	_, err := Connect(addr)
	assert.Error(t, err)
}

func TestOpenWindowSkipsUnrelatedRepliesUntilMatch(t *testing.T) {
	addr, accept := serverPeer(t)
	appID := uid.New()
	winID := uid.New()

	go func() {
		conn := accept()
		conn.Recv() // AppConnect
		conn.Send(wire.Envelope{Command: wire.NewAppConnectResponse(appID)})

		conn.Recv() // OpenWindowCommand
		// a stray input event races the open response
		conn.Send(wire.Envelope{Command: wire.NewMouseMove(wire.MouseMove{AppID: appID})})
		conn.Send(wire.Envelope{Command: wire.NewOpenWindowResponse(wire.OpenWindowResponse{
			AppID:    appID,
			WindowID: winID,
			Bounds:   wire.Bounds{W: 10, H: 10},
		})})
	}()

	client, err := Connect(addr)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.OpenWindow(wire.WindowPlain, pixel.Rect{W: 10, H: 10}, "t")
	require.NoError(t, err)
	assert.Equal(t, winID, resp.WindowID)
}

func TestDrawRectSendsAppIDAndColor(t *testing.T) {
	addr, accept := serverPeer(t)
	appID := uid.New()
	winID := uid.New()
	got := make(chan wire.Envelope, 1)

	go func() {
		conn := accept()
		conn.Recv()
		conn.Send(wire.Envelope{Command: wire.NewAppConnectResponse(appID)})
		env, _ := conn.Recv()
		got <- env
	}()

	client, err := Connect(addr)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.DrawRect(winID, pixel.Rect{X: 1, Y: 2, W: 3, H: 4}, pixel.Color{A: 0xff, R: 9}))

	env := <-got
	require.NotNil(t, env.Command.DrawRectCommand)
	assert.Equal(t, appID, env.Command.DrawRectCommand.AppID)
	assert.Equal(t, winID, env.Command.DrawRectCommand.WindowID)
	assert.Equal(t, uint8(9), env.Command.DrawRectCommand.Color.R)
}
