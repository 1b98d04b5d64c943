package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/wire"
)

func TestHandleAppConnectResponseRegistersApp(t *testing.T) {
	m, _, _ := newTestManager(t)
	app := uid.New()

	cont := m.handle(wire.Envelope{Command: wire.NewAppConnectResponse(app)})
	assert.True(t, cont)
	_, ok := m.state.Apps[app]
	assert.True(t, ok)
}

func TestHandleOpenWindowResponseRegistersBuffer(t *testing.T) {
	m, backend, _ := newTestManager(t)
	app := uid.New()
	m.state.addApp(app)
	winID := uid.New()

	m.handle(wire.Envelope{Command: wire.NewOpenWindowResponse(wire.OpenWindowResponse{
		AppID:       app,
		WindowID:    winID,
		Bounds:      wire.Bounds{X: 10, Y: 10, W: 30, H: 20},
		WindowTitle: "demo",
	})})

	w, ok := m.state.Windows[winID]
	require.True(t, ok)
	require.NotNil(t, w.BackBuffer)
	assert.Equal(t, int32(30), w.BackBuffer.Width)
	assert.Equal(t, int32(20), w.BackBuffer.Height)
	assert.Len(t, backend.RegisteredBuffers(), 1)
}

func TestAppDisconnectedReleasesBuffersAndRemovesWindows(t *testing.T) {
	m, backend, _ := newTestManager(t)
	app := uid.New()
	m.state.addApp(app)
	w := openTestWindow(m, app, pixel.Point{X: 0, Y: 0}, pixel.Size{W: 10, H: 10})
	require.Len(t, backend.RegisteredBuffers(), 1)

	cont := m.handle(wire.Envelope{Command: wire.NewAppDisconnected(wire.AppDisconnected{AppID: app})})
	assert.True(t, cont)

	_, stillThere := m.state.Windows[w.ID]
	assert.False(t, stillThere)
	_, appStillThere := m.state.Apps[app]
	assert.False(t, appStillThere)
	assert.Empty(t, backend.RegisteredBuffers())
}

func TestDrawRectRejectsUnauthorizedSender(t *testing.T) {
	m, _, _ := newTestManager(t)
	app := uid.New()
	m.state.addApp(app)
	w := openTestWindow(m, app, pixel.Point{X: 0, Y: 0}, pixel.Size{W: 10, H: 10})
	before := make([]byte, len(w.BackBuffer.Data))
	copy(before, w.BackBuffer.Data)

	forged := uid.New()
	m.handle(wire.Envelope{Command: wire.NewDrawRectCommand(wire.DrawRectCommand{
		AppID:    forged,
		WindowID: w.ID,
		Rect:     wire.Bounds{X: 0, Y: 0, W: 10, H: 10},
		Color:    wire.WireColor{A: 0xff, R: 1, G: 2, B: 3},
	})})

	assert.Equal(t, before, w.BackBuffer.Data, "unauthorized draw must not mutate the back buffer")
}

func TestDrawRectFillsAuthorizedWindow(t *testing.T) {
	m, _, _ := newTestManager(t)
	app := uid.New()
	m.state.addApp(app)
	w := openTestWindow(m, app, pixel.Point{X: 0, Y: 0}, pixel.Size{W: 10, H: 10})

	m.handle(wire.Envelope{Command: wire.NewDrawRectCommand(wire.DrawRectCommand{
		AppID:    app,
		WindowID: w.ID,
		Rect:     wire.Bounds{X: 0, Y: 0, W: 10, H: 10},
		Color:    wire.WireColor{A: 0xff, R: 10, G: 20, B: 30},
	})})

	got := w.BackBuffer.GetPixel(0, 0)
	assert.Equal(t, pixel.Color{A: 0xff, R: 10, G: 20, B: 30}, got)
}

func TestReconcileBuffersReallocatesAndNotifiesOwner(t *testing.T) {
	m, backend, sent := newTestManager(t)
	app := uid.New()
	m.state.addApp(app)
	w := openTestWindow(m, app, pixel.Point{X: 0, Y: 0}, pixel.Size{W: 10, H: 10})
	oldID := w.BackBuffer.ID

	w.ContentSize = pixel.Size{W: 40, H: 25}
	m.reconcileBuffers()

	assert.NotEqual(t, oldID, w.BackBuffer.ID)
	assert.Equal(t, int32(40), w.BackBuffer.Width)
	assert.Equal(t, int32(25), w.BackBuffer.Height)
	assert.Len(t, backend.RegisteredBuffers(), 1, "old buffer must be unregistered, not leaked")

	env := <-sent
	require.NotNil(t, env.Command.WindowResized)
	assert.Equal(t, int32(40), env.Command.WindowResized.Size.W)
}

func TestReconcileBuffersIsNoopWhenSizeMatches(t *testing.T) {
	m, backend, sent := newTestManager(t)
	app := uid.New()
	m.state.addApp(app)
	w := openTestWindow(m, app, pixel.Point{X: 0, Y: 0}, pixel.Size{W: 10, H: 10})
	id := w.BackBuffer.ID

	m.reconcileBuffers()

	assert.Equal(t, id, w.BackBuffer.ID)
	assert.Len(t, backend.RegisteredBuffers(), 1)
	select {
	case <-sent:
		t.Fatal("must not notify the owner when nothing changed")
	default:
	}
}

func TestSystemShutdownStopsTheHandleLoop(t *testing.T) {
	m, _, _ := newTestManager(t)
	cont := m.handle(wire.Envelope{Command: wire.NewSystemShutdown()})
	assert.False(t, cont)
}

func TestDrainInboundStopsOnShutdown(t *testing.T) {
	m, _, _ := newTestManager(t)
	ch := make(chan wire.Envelope, 2)
	ch <- wire.Envelope{Command: wire.NewAppConnectResponse(uid.New())}
	ch <- wire.Envelope{Command: wire.NewSystemShutdown()}

	assert.False(t, m.drainInbound(ch))
}
