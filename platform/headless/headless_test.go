package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/platform"
	"github.com/clogwench/wincore/uid"
)

func TestScreenBoundsMatchesConstructedSize(t *testing.T) {
	b := New(320, 240, pixel.ARGB)
	assert.Equal(t, pixel.Rect{X: 0, Y: 0, W: 320, H: 240}, b.ScreenBounds())
	assert.Equal(t, pixel.ARGB, b.PreferredLayout())
}

func TestInjectedInputIsObservedImmediately(t *testing.T) {
	b := New(100, 100, pixel.ARGB)
	b.InjectCursorMove(pixel.Point{X: 12, Y: 34})
	b.ServiceInput()
	assert.Equal(t, pixel.Point{X: 12, Y: 34}, b.CursorPosition())

	b.InjectButton(1, true)
	states := b.ButtonStates()
	require.Len(t, states, 1)
	assert.Equal(t, platform.ButtonState{Button: 1, Pressed: true}, states[0])

	b.InjectButton(1, false)
	states = b.ButtonStates()
	require.Len(t, states, 1, "re-injecting the same button must replace, not append")
	assert.False(t, states[0].Pressed)
}

func TestPollKeysDrainsQueue(t *testing.T) {
	b := New(10, 10, pixel.ARGB)
	b.InjectKey(1, "a", true)
	b.InjectKey(1, "a", false)

	got := b.PollKeys()
	assert.Len(t, got, 2)
	assert.Empty(t, b.PollKeys(), "a second call must see nothing left queued")
}

func TestRegisterUnregisterBufferTracksLiveSet(t *testing.T) {
	b := New(10, 10, pixel.ARGB)
	buf := pixel.New(uid.New(), 4, 4, pixel.ARGB)
	b.RegisterBuffer(buf)
	assert.Equal(t, []uid.ID{buf.ID}, b.RegisteredBuffers())

	b.UnregisterBuffer(buf.ID)
	assert.Empty(t, b.RegisteredBuffers())
}

func TestCompositeReturnsIsolatedCopy(t *testing.T) {
	b := New(4, 4, pixel.ARGB)
	b.Clear(pixel.White)

	snapshot := b.Composite()
	b.Clear(pixel.Color{A: 0xff})

	assert.Equal(t, pixel.White, snapshot.GetPixel(0, 0), "mutating the backend after Composite must not affect the snapshot")
	assert.Equal(t, pixel.Color{A: 0xff}, b.screen.GetPixel(0, 0))
}

func TestShutdownSucceeds(t *testing.T) {
	b := New(1, 1, pixel.ARGB)
	assert.NoError(t, b.Shutdown())
}
