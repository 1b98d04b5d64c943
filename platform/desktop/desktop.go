// Package desktop implements platform.Backend on top of a real OS window
// via glfw, adapted from cogentcore.org/core/driver/desktop. Compositing
// itself stays entirely on the CPU (spec.md's no-hardware-acceleration
// non-goal): the manager draws into pixel.Buffer the usual way, and this
// package's only job each frame is to upload the composited bytes into a
// single textured quad and swap buffers, and to turn glfw's input
// callbacks into the flat poll-based shape platform.Backend expects.
package desktop

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/platform"
	"github.com/clogwench/wincore/platform/base"
	"github.com/clogwench/wincore/uid"
)

func init() {
	// glfw and GL context calls must come from the thread that created
	// the window; lock this goroutine to the OS thread the way every
	// glfw program has to.
	runtime.LockOSThread()
}

// Backend presents a CPU-composited screen through a single glfw window.
type Backend struct {
	base.Threading

	win    *glfw.Window
	screen *pixel.Buffer
	layout pixel.Layout
	tex    uint32

	mu      sync.Mutex
	cursor  pixel.Point
	buttons []platform.ButtonState
	keys    []platform.KeyEvent
}

// New opens a width x height window titled title and returns a ready
// Backend. It must be called from the process's main goroutine, since
// glfw window/context creation is main-thread-only on most platforms.
func New(title string, width, height int32) (*Backend, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("desktop: glfw init: %w", err)
	}
	// The compositor only needs a textured quad, so the fixed-function
	// pipeline (gl.Begin/gl.End) is enough; that means a compatibility
	// profile context, not the core profile a forward-compatible 3.2+
	// context would force.
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(int(width), int(height), title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("desktop: create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("desktop: gl init: %w", err)
	}
	glfw.SwapInterval(1)

	b := &Backend{
		win:    win,
		screen: pixel.New(uid.New(), width, height, pixel.ARGB),
		layout: pixel.ARGB,
	}
	b.Threading.Init()
	b.initTexture()
	b.installCallbacks()
	return b, nil
}

func (b *Backend) initTexture() {
	gl.GenTextures(1, &b.tex)
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
}

func (b *Backend) installCallbacks() {
	b.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		b.mu.Lock()
		b.cursor = pixel.Point{X: int32(x), Y: int32(y)}
		b.mu.Unlock()
	})
	b.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b.mu.Lock()
		b.setButtonLocked(int32(button), action != glfw.Release)
		b.mu.Unlock()
	})
	b.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		b.mu.Lock()
		b.keys = append(b.keys, platform.KeyEvent{
			Code:    int32(scancode),
			Key:     glfw.GetKeyName(key, scancode),
			Pressed: action == glfw.Press,
		})
		b.mu.Unlock()
	})
}

func (b *Backend) setButtonLocked(button int32, pressed bool) {
	for i, bs := range b.buttons {
		if bs.Button == button {
			b.buttons[i].Pressed = pressed
			return
		}
	}
	b.buttons = append(b.buttons, platform.ButtonState{Button: button, Pressed: pressed})
}

func (b *Backend) ScreenBounds() pixel.Rect      { return b.screen.Bounds() }
func (b *Backend) PreferredLayout() pixel.Layout { return b.layout }

func (b *Backend) CursorPosition() pixel.Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

func (b *Backend) ButtonStates() []platform.ButtonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]platform.ButtonState, len(b.buttons))
	copy(out, b.buttons)
	return out
}

func (b *Backend) PollKeys() []platform.KeyEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.keys
	b.keys = nil
	return out
}

func (b *Backend) Clear(color pixel.Color)                    { b.screen.Clear(color) }
func (b *Backend) FillRect(rect pixel.Rect, color pixel.Color) { b.screen.FillRect(rect, color) }

func (b *Backend) DrawRect(rect pixel.Rect, color pixel.Color, borderWidth int32) {
	if borderWidth <= 0 {
		return
	}
	b.screen.FillRect(pixel.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: borderWidth}, color)
	b.screen.FillRect(pixel.Rect{X: rect.X, Y: rect.Y + rect.H - borderWidth, W: rect.W, H: borderWidth}, color)
	b.screen.FillRect(pixel.Rect{X: rect.X, Y: rect.Y, W: borderWidth, H: rect.H}, color)
	b.screen.FillRect(pixel.Rect{X: rect.X + rect.W - borderWidth, Y: rect.Y, W: borderWidth, H: rect.H}, color)
}

func (b *Backend) DrawImage(dstPt pixel.Point, srcRect pixel.Rect, src *pixel.Buffer) {
	b.screen.DrawImage(dstPt, srcRect, src)
}

// RegisterBuffer and UnregisterBuffer are no-ops: window buffers live in
// plain memory and are only ever read during compose, never uploaded to
// the GPU individually. Only the final composite goes to a texture.
func (b *Backend) RegisterBuffer(buf *pixel.Buffer) {}
func (b *Backend) UnregisterBuffer(id uid.ID)       {}

// ServiceInput pumps the glfw event queue, driving the callbacks above.
// glfw.PollEvents must run on the main thread, so it is submitted through
// RunOnMain.
func (b *Backend) ServiceInput() {
	b.RunOnMain(glfw.PollEvents)
}

// ServiceLoop uploads the composited screen buffer as a texture and
// presents it with a full-viewport textured quad, then swaps buffers.
func (b *Backend) ServiceLoop() {
	b.RunOnMain(func() {
		w, h := b.win.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.BindTexture(gl.TEXTURE_2D, b.tex)
		rgba := b.screen.ToLayout(b.screen.ID, pixel.ARGB)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, b.screen.Width, b.screen.Height, 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Data))
		drawFullscreenQuad()
		b.win.SwapBuffers()
	})
}

func (b *Backend) Shutdown() error {
	b.RunOnMain(func() {
		gl.DeleteTextures(1, &b.tex)
		b.win.Destroy()
	})
	b.Threading.Stop()
	glfw.Terminate()
	return nil
}

// Composite hands back the last buffer composed into, for
// Debug(ScreenCapture).
func (b *Backend) Composite() *pixel.Buffer {
	return b.screen.SubRect(uid.New(), b.screen.Bounds())
}

// ShouldClose reports whether the OS asked the window to close (the
// user clicked the titlebar close button, distinct from spec.md's
// in-scene close-button gesture).
func (b *Backend) ShouldClose() bool {
	var closing bool
	b.RunOnMain(func() { closing = b.win.ShouldClose() })
	return closing
}

func drawFullscreenQuad() {
	gl.Enable(gl.TEXTURE_2D)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(-1, -1)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(1, -1)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(-1, 1)
	gl.End()
}
