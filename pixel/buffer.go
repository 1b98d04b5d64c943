package pixel

import (
	"fmt"
	"log/slog"

	"github.com/clogwench/wincore/uid"
	"github.com/clogwench/wincore/xerrors"
)

// Buffer is a contiguous, row-packed pixel buffer in a single layout. A
// Buffer owns its bytes exclusively; producing a sub-rect or a converted
// copy always allocates a fresh Buffer.
type Buffer struct {
	ID     uid.ID
	Width  int32
	Height int32
	Layout Layout
	Data   []byte
}

// New allocates a zero-filled buffer. It panics if w or h is non-positive:
// this is a precondition violation (spec's pixel-engine error class 5),
// not a recoverable error — callers must not pass garbage dimensions.
func New(id uid.ID, w, h int32, layout Layout) *Buffer {
	if w <= 0 || h <= 0 {
		xerrors.Must(fmt.Errorf("pixel: New: non-positive dimensions %dx%d", w, h))
	}
	return &Buffer{
		ID:     id,
		Width:  w,
		Height: h,
		Layout: layout,
		Data:   make([]byte, int(w)*int(h)*layout.BytesPerPixel()),
	}
}

// Stride is the byte length of one row.
func (b *Buffer) Stride() int { return int(b.Width) * b.Layout.BytesPerPixel() }

// Bounds returns the buffer's own rect, rooted at (0,0).
func (b *Buffer) Bounds() Rect { return Rect{0, 0, b.Width, b.Height} }

func (b *Buffer) offset(x, y int32) int {
	return int(y)*b.Stride() + int(x)*b.Layout.BytesPerPixel()
}

func (b *Buffer) inBounds(x, y int32) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Clear writes color across every pixel of the buffer.
func (b *Buffer) Clear(color Color) {
	b.FillRect(b.Bounds(), color)
}

// FillRect intersects rect with the buffer bounds and fills that region
// with color. An empty rect, or one that does not intersect the buffer,
// is a no-op.
func (b *Buffer) FillRect(rect Rect, color Color) {
	r := Intersect(rect, b.Bounds())
	if r.Empty() {
		return
	}
	enc := color.AsLayout(b.Layout)
	bpp := b.Layout.BytesPerPixel()
	for y := r.Y; y < r.Y+r.H; y++ {
		row := b.offset(r.X, y)
		for x := int32(0); x < r.W; x++ {
			copy(b.Data[row:row+bpp], enc)
			row += bpp
		}
	}
}

// GetPixel returns the ARGB value at (x, y). Out-of-bounds coordinates
// return transparent black and log, per spec.
func (b *Buffer) GetPixel(x, y int32) Color {
	if !b.inBounds(x, y) {
		slog.Warn("pixel: GetPixel out of bounds", "x", x, "y", y, "width", b.Width, "height", b.Height)
		return Transparent
	}
	off := b.offset(x, y)
	bpp := b.Layout.BytesPerPixel()
	return ColorFromLayout(b.Layout, b.Data[off:off+bpp])
}

// SetPixel writes an ARGB value at (x, y). Out-of-bounds coordinates are a
// no-op and log, per spec.
func (b *Buffer) SetPixel(x, y int32, c Color) {
	if !b.inBounds(x, y) {
		slog.Warn("pixel: SetPixel out of bounds", "x", x, "y", y, "width", b.Width, "height", b.Height)
		return
	}
	off := b.offset(x, y)
	bpp := b.Layout.BytesPerPixel()
	copy(b.Data[off:off+bpp], c.AsLayout(b.Layout))
}

// SubRect allocates a new buffer holding a copy of rect intersected with
// b's bounds, in the same layout.
func (b *Buffer) SubRect(id uid.ID, rect Rect) *Buffer {
	r := Intersect(rect, b.Bounds())
	if r.Empty() {
		return New(id, 1, 1, b.Layout)
	}
	out := New(id, r.W, r.H, b.Layout)
	bpp := b.Layout.BytesPerPixel()
	for y := int32(0); y < r.H; y++ {
		srcOff := b.offset(r.X, r.Y+y)
		dstOff := out.offset(0, y)
		copy(out.Data[dstOff:dstOff+int(r.W)*bpp], b.Data[srcOff:srcOff+int(r.W)*bpp])
	}
	return out
}

// ToLayout returns a new buffer with the same dimensions, converted to
// layout. ARGB-to-ARGB is bit-exact; any conversion touching RGB565 is
// lossy via truncation but deterministic.
func (b *Buffer) ToLayout(id uid.ID, layout Layout) *Buffer {
	if layout == b.Layout {
		out := New(id, b.Width, b.Height, layout)
		copy(out.Data, b.Data)
		return out
	}
	out := New(id, b.Width, b.Height, layout)
	bpp := b.Layout.BytesPerPixel()
	for y := int32(0); y < b.Height; y++ {
		for x := int32(0); x < b.Width; x++ {
			off := b.offset(x, y)
			c := ColorFromLayout(b.Layout, b.Data[off:off+bpp])
			out.SetPixel(x, y, c)
		}
	}
	return out
}

// DrawImage blits srcRect of src into b at dstPosition, clipping srcRect
// plus dstPosition to b's bounds so that a partially off-edge blit still
// draws the portion that is visible. If src and b share a layout, rows
// are copied directly; otherwise each pixel is converted.
func (b *Buffer) DrawImage(dstPosition Point, srcRect Rect, src *Buffer) {
	sr := Intersect(srcRect, src.Bounds())
	if sr.Empty() {
		return
	}
	// Clip the destination-space footprint of the blit to b's bounds,
	// then pull the source rect in by the same amount.
	dstFootprint := Rect{dstPosition.X, dstPosition.Y, sr.W, sr.H}
	clippedDst := Intersect(dstFootprint, b.Bounds())
	if clippedDst.Empty() {
		return
	}
	leftTrim := clippedDst.X - dstFootprint.X
	topTrim := clippedDst.Y - dstFootprint.Y
	sr = Rect{sr.X + leftTrim, sr.Y + topTrim, clippedDst.W, clippedDst.H}

	sameLayout := src.Layout == b.Layout
	sbpp := src.Layout.BytesPerPixel()
	dbpp := b.Layout.BytesPerPixel()
	for row := int32(0); row < clippedDst.H; row++ {
		srcY := sr.Y + row
		dstY := clippedDst.Y + row
		if sameLayout {
			srcOff := src.offset(sr.X, srcY)
			dstOff := b.offset(clippedDst.X, dstY)
			n := int(clippedDst.W) * dbpp
			copy(b.Data[dstOff:dstOff+n], src.Data[srcOff:srcOff+n])
			continue
		}
		for col := int32(0); col < clippedDst.W; col++ {
			srcOff := src.offset(sr.X+col, srcY)
			c := ColorFromLayout(src.Layout, src.Data[srcOff:srcOff+sbpp])
			b.SetPixel(clippedDst.X+col, dstY, c)
		}
	}
}

// FillRectWithImage tiles src across dstRect using modular indexing, used
// to paint a window's content with a repeating pattern image smaller than
// the target rect.
func (b *Buffer) FillRectWithImage(dstRect Rect, src *Buffer) {
	r := Intersect(dstRect, b.Bounds())
	if r.Empty() || src.Width <= 0 || src.Height <= 0 {
		return
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		sy := mod32(y-r.Y, src.Height)
		for x := r.X; x < r.X+r.W; x++ {
			sx := mod32(x-r.X, src.Width)
			b.SetPixel(x, y, src.GetPixel(sx, sy))
		}
	}
}

func mod32(a, m int32) int32 {
	v := a % m
	if v < 0 {
		v += m
	}
	return v
}
