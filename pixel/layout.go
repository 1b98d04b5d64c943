// Package pixel provides a format-agnostic raster buffer: a closed set of
// pixel layouts, a 4-channel color, integer geometry, and the blit/fill/
// convert operations the window manager uses to back every window and the
// final composited screen.
package pixel

import "fmt"

// Layout is one of the closed set of in-memory pixel layouts a Buffer can
// hold. Adding a variant requires adding conversion code in both directions
// in color.go (AsLayout and ColorFromLayout).
type Layout int

const (
	// ARGB stores each pixel as four bytes, in (A, R, G, B) order.
	ARGB Layout = iota
	// RGB565 stores each pixel as two bytes: the high byte holds
	// RRRRRGGG, the low byte holds GGGBBBBB.
	RGB565
)

// BytesPerPixel returns the stride contribution of one pixel in l.
func (l Layout) BytesPerPixel() int {
	switch l {
	case ARGB:
		return 4
	case RGB565:
		return 2
	default:
		panic(fmt.Sprintf("pixel: unknown layout %d", l))
	}
}

func (l Layout) String() string {
	switch l {
	case ARGB:
		return "ARGB"
	case RGB565:
		return "RGB565"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}
