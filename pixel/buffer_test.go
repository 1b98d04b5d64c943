package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clogwench/wincore/uid"
)

func TestNewPanicsOnNonPositiveDimensions(t *testing.T) {
	assert.Panics(t, func() { New(uid.New(), 0, 10, ARGB) })
	assert.Panics(t, func() { New(uid.New(), 10, -1, ARGB) })
}

func TestClearAndGetSetPixel(t *testing.T) {
	buf := New(uid.New(), 4, 4, ARGB)
	buf.Clear(White)
	assert.Equal(t, White, buf.GetPixel(2, 2))

	red := Color{A: 0xff, R: 0xff}
	buf.SetPixel(1, 1, red)
	assert.Equal(t, red, buf.GetPixel(1, 1))
	assert.Equal(t, White, buf.GetPixel(2, 2))
}

func TestGetSetPixelOutOfBoundsIsNoop(t *testing.T) {
	buf := New(uid.New(), 2, 2, ARGB)
	buf.Clear(Transparent)
	assert.Equal(t, Transparent, buf.GetPixel(5, 5))
	buf.SetPixel(-1, 0, White) // must not panic or corrupt in-bounds data
	assert.Equal(t, Transparent, buf.GetPixel(0, 0))
}

func TestFillRectClipsToBounds(t *testing.T) {
	buf := New(uid.New(), 4, 4, ARGB)
	buf.Clear(Transparent)
	buf.FillRect(NewRect(2, 2, 10, 10), White)
	assert.Equal(t, White, buf.GetPixel(3, 3))
	assert.Equal(t, Transparent, buf.GetPixel(0, 0))
}

func TestSubRect(t *testing.T) {
	buf := New(uid.New(), 4, 4, ARGB)
	buf.Clear(Transparent)
	buf.SetPixel(2, 2, White)
	sub := buf.SubRect(uid.New(), NewRect(1, 1, 2, 2))
	assert.Equal(t, int32(2), sub.Width)
	assert.Equal(t, White, sub.GetPixel(1, 1))
	assert.Equal(t, Transparent, sub.GetPixel(0, 0))
}

func TestToLayoutSameLayoutIsByteExact(t *testing.T) {
	buf := New(uid.New(), 3, 3, ARGB)
	buf.Clear(Color{A: 1, R: 2, G: 3, B: 4})
	copy2 := buf.ToLayout(uid.New(), ARGB)
	assert.Equal(t, buf.Data, copy2.Data)
}

func TestDrawImageClipsPartiallyOffEdge(t *testing.T) {
	dst := New(uid.New(), 4, 4, ARGB)
	dst.Clear(Transparent)
	src := New(uid.New(), 4, 4, ARGB)
	src.Clear(White)

	// Blit src at (2,2): only the top-left 2x2 of src lands inside dst.
	dst.DrawImage(Point{X: 2, Y: 2}, src.Bounds(), src)
	assert.Equal(t, White, dst.GetPixel(2, 2))
	assert.Equal(t, White, dst.GetPixel(3, 3))
	assert.Equal(t, Transparent, dst.GetPixel(0, 0))
}

func TestDrawImageCrossLayoutConverts(t *testing.T) {
	dst := New(uid.New(), 2, 2, RGB565)
	dst.Clear(Transparent)
	src := New(uid.New(), 2, 2, ARGB)
	src.Clear(White)

	dst.DrawImage(Point{}, src.Bounds(), src)
	assert.Equal(t, White, dst.GetPixel(0, 0))
}

func TestFillRectWithImageTiles(t *testing.T) {
	pattern := New(uid.New(), 2, 2, ARGB)
	pattern.SetPixel(0, 0, White)
	pattern.SetPixel(1, 0, Transparent)
	pattern.SetPixel(0, 1, Transparent)
	pattern.SetPixel(1, 1, White)

	dst := New(uid.New(), 4, 4, ARGB)
	dst.FillRectWithImage(dst.Bounds(), pattern)
	assert.Equal(t, White, dst.GetPixel(0, 0))
	assert.Equal(t, White, dst.GetPixel(2, 0))
	assert.Equal(t, Transparent, dst.GetPixel(1, 0))
}
