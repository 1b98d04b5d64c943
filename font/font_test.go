package font

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
)

const twoByTwoFont = `{
  "name": "test",
  "glyphs": [
    {"id": 65, "width": 2, "height": 2, "baseline": 2, "ascent": 2, "descent": 0, "left": 0, "right": 1, "data": [1,0,0,1]}
  ]
}`

func TestDecodeBuildsGlyphMap(t *testing.T) {
	f, err := Decode(strings.NewReader(twoByTwoFont))
	require.NoError(t, err)
	assert.Equal(t, "test", f.Name)

	g := f.Glyph('A')
	require.NotNil(t, g)
	assert.Equal(t, int32(2), g.Width)
	assert.True(t, g.At(0, 0))
	assert.False(t, g.At(1, 0))
	assert.False(t, g.At(5, 5), "out of range must report false, not panic")

	assert.Nil(t, f.Glyph('B'))
}

func TestDecodeRejectsMismatchedGlyphData(t *testing.T) {
	bad := `{"name":"x","glyphs":[{"id":65,"width":2,"height":2,"data":[1,0,0]}]}`
	_, err := Decode(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestDrawStringPaintsInkPixelsAndAdvancesCursor(t *testing.T) {
	f, err := Decode(strings.NewReader(twoByTwoFont))
	require.NoError(t, err)

	buf := pixel.New(uid.New(), 10, 10, pixel.ARGB)
	buf.Clear(pixel.Color{})
	DrawString(buf, f, 0, 0, "AA", pixel.White)

	assert.Equal(t, pixel.White, buf.GetPixel(0, 0))
	assert.Equal(t, pixel.Color{}, buf.GetPixel(1, 0))

	secondGlyphX := int32(0 + 0 + 2 + 1) // cursor advance: left + width + right
	assert.Equal(t, pixel.White, buf.GetPixel(secondGlyphX, 0))
}

func TestDrawStringSkipsMissingGlyphsButAdvances(t *testing.T) {
	f, err := Decode(strings.NewReader(twoByTwoFont))
	require.NoError(t, err)

	buf := pixel.New(uid.New(), 20, 10, pixel.ARGB)
	buf.Clear(pixel.Color{})
	assert.NotPanics(t, func() { DrawString(buf, f, 0, 0, "A?A", pixel.White) })
}
