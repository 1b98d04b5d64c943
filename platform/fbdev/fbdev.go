// Package fbdev implements platform.Backend directly against a Linux
// framebuffer device and evdev input devices, with no X11, Wayland, or
// GPU driver in the path — the deployment target spec.md's fbdev
// backend is meant for. Grounded on
// _examples/original_source/plat/native-linux/src/{surf.rs,input.rs}:
// mmap /dev/fb0 and write composited bytes straight into it, and read
// raw input_event records off /dev/input/eventN to synthesize cursor
// position and button/key edges.
package fbdev

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/platform"
	"github.com/clogwench/wincore/uid"
)

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// fbVarScreeninfo mirrors the leading, stable-layout fields of Linux's
// struct fb_var_screeninfo (linux/fb.h); fields after bits_per_pixel
// that this backend never reads are not named, only padded, so the value
// spans the kernel struct's full 160 bytes.
type fbVarScreeninfo struct {
	XRes, YRes             uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset       uint32
	BitsPerPixel           uint32
	_                      [132]byte // remainder of the kernel struct, unread
}

// fbFixScreeninfo mirrors struct fb_fix_screeninfo's leading fields.
type fbFixScreeninfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	_            [32]byte
}

// Backend composites into a pixel.Buffer matching the framebuffer's
// native depth and writes it straight into the mapped device memory
// each frame; input comes from a separate evdev reader goroutine.
type Backend struct {
	fb       *os.File
	mem      []byte
	lineLen  int
	screen   *pixel.Buffer
	layout   pixel.Layout

	mu      sync.Mutex
	cursor  pixel.Point
	buttons []platform.ButtonState
	keys    []platform.KeyEvent

	evdevs []*evdevReader
}

// Open maps fbPath (typically "/dev/fb0") and starts a reader on each
// input device path in evdevPaths for keyboard/mouse/touch events.
func Open(fbPath string, evdevPaths []string) (*Backend, error) {
	fb, err := os.OpenFile(fbPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("fbdev: open %s: %w", fbPath, err)
	}

	var vinfo fbVarScreeninfo
	if err := ioctl(fb.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		fb.Close()
		return nil, fmt.Errorf("fbdev: FBIOGET_VSCREENINFO: %w", err)
	}
	var finfo fbFixScreeninfo
	if err := ioctl(fb.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		fb.Close()
		return nil, fmt.Errorf("fbdev: FBIOGET_FSCREENINFO: %w", err)
	}

	var layout pixel.Layout
	switch vinfo.BitsPerPixel {
	case 32:
		layout = pixel.ARGB
	case 16:
		layout = pixel.RGB565
	default:
		fb.Close()
		return nil, fmt.Errorf("fbdev: unsupported bits_per_pixel %d", vinfo.BitsPerPixel)
	}

	size := int(finfo.LineLength) * int(vinfo.YRes)
	mem, err := unix.Mmap(int(fb.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		fb.Close()
		return nil, fmt.Errorf("fbdev: mmap: %w", err)
	}

	b := &Backend{
		fb:      fb,
		mem:     mem,
		lineLen: int(finfo.LineLength),
		screen:  pixel.New(uid.New(), int32(vinfo.XRes), int32(vinfo.YRes), layout),
		layout:  layout,
	}

	for _, p := range evdevPaths {
		r, err := openEvdev(p, b)
		if err != nil {
			b.Shutdown()
			return nil, fmt.Errorf("fbdev: %s: %w", p, err)
		}
		b.evdevs = append(b.evdevs, r)
	}

	return b, nil
}

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
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

func (b *Backend) RegisterBuffer(buf *pixel.Buffer) {}
func (b *Backend) UnregisterBuffer(id uid.ID)       {}

// ServiceInput is a no-op; evdev devices are read continuously by their
// own goroutines rather than polled here.
func (b *Backend) ServiceInput() {}

// ServiceLoop copies the composited screen row by row into the mapped
// framebuffer, respecting the device's line stride (which may exceed
// width*bytesPerPixel due to panel padding).
func (b *Backend) ServiceLoop() {
	bpp := b.layout.BytesPerPixel()
	rowBytes := int(b.screen.Width) * bpp
	for y := int32(0); y < b.screen.Height; y++ {
		srcOff := int(y) * b.screen.Stride()
		dstOff := int(y) * b.lineLen
		copy(b.mem[dstOff:dstOff+rowBytes], b.screen.Data[srcOff:srcOff+rowBytes])
	}
}

func (b *Backend) Composite() *pixel.Buffer {
	return b.screen.SubRect(uid.New(), b.screen.Bounds())
}

func (b *Backend) Shutdown() error {
	for _, r := range b.evdevs {
		r.close()
	}
	if b.mem != nil {
		unix.Munmap(b.mem)
	}
	return b.fb.Close()
}

func (b *Backend) injectMouseMove(p pixel.Point) {
	b.mu.Lock()
	b.cursor = p
	b.mu.Unlock()
}

func (b *Backend) injectButton(button int32, pressed bool) {
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

func (b *Backend) injectKey(code int32, key string, pressed bool) {
	b.mu.Lock()
	b.keys = append(b.keys, platform.KeyEvent{Code: code, Key: key, Pressed: pressed})
	b.mu.Unlock()
}
