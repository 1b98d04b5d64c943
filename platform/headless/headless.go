// Package headless implements platform.Backend entirely in memory: no
// window, no device files, just a pixel.Buffer standing in for the
// screen and a synthetic input queue a test (or a --wmtype headless
// client harness) drives directly. Adapted from
// cogentcore.org/core/driver/offscreen, which plays the same role for
// GUI tests there.
package headless

import (
	"sync"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/platform"
	"github.com/clogwench/wincore/uid"
)

// Backend is a platform.Backend and platform.Composer backed entirely by
// an in-process pixel.Buffer. Zero value is not usable; construct with
// New.
type Backend struct {
	mu sync.Mutex

	screen *pixel.Buffer
	layout pixel.Layout

	buffers map[uid.ID]*pixel.Buffer

	cursorPos pixel.Point
	buttons   []platform.ButtonState
	keys      []platform.KeyEvent // pending, drained by PollKeys

	shutdown bool
}

// New creates a headless backend presenting a width x height surface in
// layout. layout is also what PreferredLayout reports, so window back
// buffers round-trip through DrawImage without conversion.
func New(width, height int32, layout pixel.Layout) *Backend {
	return &Backend{
		screen:  pixel.New(uid.New(), width, height, layout),
		layout:  layout,
		buffers: make(map[uid.ID]*pixel.Buffer),
	}
}

// --- synthetic input injection, called by test harnesses ---

// InjectCursorMove sets the position the next ServiceInput/CursorPosition
// call will report.
func (b *Backend) InjectCursorMove(p pixel.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorPos = p
}

// InjectButton records button's pressed state, replacing any prior entry
// for the same button.
func (b *Backend) InjectButton(button int32, pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, bs := range b.buttons {
		if bs.Button == button {
			b.buttons[i].Pressed = pressed
			return
		}
	}
	b.buttons = append(b.buttons, platform.ButtonState{Button: button, Pressed: pressed})
}

// InjectKey queues a raw key transition for the next PollKeys call.
func (b *Backend) InjectKey(code int32, key string, pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keys = append(b.keys, platform.KeyEvent{Code: code, Key: key, Pressed: pressed})
}

// --- platform.Backend ---

func (b *Backend) ScreenBounds() pixel.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen.Bounds()
}

func (b *Backend) PreferredLayout() pixel.Layout { return b.layout }

func (b *Backend) CursorPosition() pixel.Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorPos
}

func (b *Backend) ButtonStates() []platform.ButtonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]platform.ButtonState, len(b.buttons))
	copy(out, b.buttons)
	return out
}

// PollKeys returns and clears the queued synthetic key events.
func (b *Backend) PollKeys() []platform.KeyEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.keys
	b.keys = nil
	return out
}

func (b *Backend) Clear(color pixel.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.Clear(color)
}

func (b *Backend) FillRect(rect pixel.Rect, color pixel.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.FillRect(rect, color)
}

// DrawRect paints an outline by filling its four edges; headless has no
// stroke primitive of its own.
func (b *Backend) DrawRect(rect pixel.Rect, color pixel.Color, borderWidth int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if borderWidth <= 0 {
		return
	}
	top := pixel.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: borderWidth}
	bottom := pixel.Rect{X: rect.X, Y: rect.Y + rect.H - borderWidth, W: rect.W, H: borderWidth}
	left := pixel.Rect{X: rect.X, Y: rect.Y, W: borderWidth, H: rect.H}
	right := pixel.Rect{X: rect.X + rect.W - borderWidth, Y: rect.Y, W: borderWidth, H: rect.H}
	b.screen.FillRect(top, color)
	b.screen.FillRect(bottom, color)
	b.screen.FillRect(left, color)
	b.screen.FillRect(right, color)
}

func (b *Backend) DrawImage(dstPt pixel.Point, srcRect pixel.Rect, src *pixel.Buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.DrawImage(dstPt, srcRect, src)
}

// RegisterBuffer and UnregisterBuffer track buffers only so tests can
// enumerate what's live via RegisteredBuffers; headless never uploads
// anything.
func (b *Backend) RegisterBuffer(buf *pixel.Buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffers[buf.ID] = buf
}

func (b *Backend) UnregisterBuffer(id uid.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buffers, id)
}

// RegisteredBuffers returns the ids currently registered, for tests that
// need to assert a buffer was released rather than leaked.
func (b *Backend) RegisteredBuffers() []uid.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]uid.ID, 0, len(b.buffers))
	for id := range b.buffers {
		out = append(out, id)
	}
	return out
}

// ServiceInput is a no-op: injected input is already visible the moment
// it's set.
func (b *Backend) ServiceInput() {}

// ServiceLoop is a no-op: Composite reads the live screen buffer
// directly, so there is nothing to flush or swap.
func (b *Backend) ServiceLoop() {}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdown = true
	return nil
}

// Composite implements platform.Composer by handing back a copy of the
// current screen buffer, so a caller can't mutate state out from under
// later frames.
func (b *Backend) Composite() *pixel.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen.SubRect(uid.New(), b.screen.Bounds())
}
