// Package cursor is a small registry of named cursor bitmaps with
// hotspot offsets, adapted from cogentcore.org/core/cursorimg's
// Cursor{Image, HotSpot}/Get/cache shape and core/cursors' named-cursor
// enumeration, retargeted from SVG-rendered-to-image.Image to this
// engine's own pixel.Buffer.
package cursor

import (
	"fmt"
	"sync"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
)

// Name identifies one of the registry's built-in cursors.
type Name string

const (
	Arrow  Name = "arrow"
	Resize Name = "resize"
	Hand   Name = "hand"
)

// Cursor is a cached cursor bitmap and the point within it that
// represents the actual pointer location, mirroring cursorimg.Cursor.
type Cursor struct {
	Image   *pixel.Buffer
	HotSpot pixel.Point
}

var (
	mu    sync.Mutex
	cache = map[Name]*Cursor{}
)

// Get returns the cursor for name, building and caching it on first use.
// No PNG cursor assets ship in this repository, so bitmaps are generated
// procedurally in the engine's own ARGB layout rather than decoded via
// imgio — see DESIGN.md.
func Get(name Name) (*Cursor, error) {
	mu.Lock()
	defer mu.Unlock()
	if c, ok := cache[name]; ok {
		return c, nil
	}
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("cursor: unknown cursor %q", name)
	}
	c := build()
	cache[name] = c
	return c, nil
}

var builders = map[Name]func() *Cursor{
	Arrow:  buildArrow,
	Resize: buildResize,
	Hand:   buildHand,
}

var (
	ink  = pixel.Color{A: 0xff, R: 0, G: 0, B: 0}
	fill = pixel.Color{A: 0xff, R: 0xff, G: 0xff, B: 0xff}
)

// buildArrow draws a simple 12x16 diagonal arrow pointer, hot-spotted at
// its tip (top-left).
func buildArrow() *Cursor {
	const w, h = 12, 16
	buf := pixel.New(uid.New(), w, h, pixel.ARGB)
	buf.Clear(pixel.Transparent)
	for y := int32(0); y < h; y++ {
		width := y + 1
		if width > w {
			width = w
		}
		for x := int32(0); x < width; x++ {
			c := fill
			if x == 0 || x == width-1 || y == h-1 {
				c = ink
			}
			buf.SetPixel(x, y, c)
		}
	}
	return &Cursor{Image: buf, HotSpot: pixel.Point{X: 0, Y: 0}}
}

// buildResize draws a diagonal double-headed arrow, hot-spotted at its
// center, used over a window's resize grip.
func buildResize() *Cursor {
	const size = 16
	buf := pixel.New(uid.New(), size, size, pixel.ARGB)
	buf.Clear(pixel.Transparent)
	for i := int32(0); i < size; i++ {
		buf.SetPixel(i, i, ink)
		if i > 0 {
			buf.SetPixel(i-1, i, ink)
		}
		if i < size-1 {
			buf.SetPixel(i+1, i, ink)
		}
	}
	return &Cursor{Image: buf, HotSpot: pixel.Point{X: size / 2, Y: size / 2}}
}

// buildHand draws a small filled circle standing in for a pointing hand,
// hot-spotted at its center, used over interactive content.
func buildHand() *Cursor {
	const size = 16
	r := int32(size / 2)
	buf := pixel.New(uid.New(), size, size, pixel.ARGB)
	buf.Clear(pixel.Transparent)
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			dx, dy := x-r, y-r
			if dx*dx+dy*dy <= r*r {
				buf.SetPixel(x, y, fill)
			}
		}
	}
	return &Cursor{Image: buf, HotSpot: pixel.Point{X: r, Y: r}}
}
