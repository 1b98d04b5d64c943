package imgio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clogwench/wincore/pixel"
	"github.com/clogwench/wincore/uid"
)

func TestEncodeThenDecodeRoundTripsPixels(t *testing.T) {
	src := pixel.New(uid.New(), 3, 2, pixel.ARGB)
	src.SetPixel(0, 0, pixel.White)
	src.SetPixel(1, 0, pixel.Color{A: 0xff, R: 10, G: 20, B: 30})
	src.SetPixel(2, 1, pixel.Color{A: 0xff, R: 255})

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, src))

	got, err := DecodePNG(uid.New(), &buf, pixel.ARGB)
	require.NoError(t, err)
	assert.Equal(t, src.Width, got.Width)
	assert.Equal(t, src.Height, got.Height)
	for y := int32(0); y < src.Height; y++ {
		for x := int32(0); x < src.Width; x++ {
			assert.Equal(t, src.GetPixel(x, y), got.GetPixel(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestDecodePNGConvertsToRequestedLayout(t *testing.T) {
	src := pixel.New(uid.New(), 2, 2, pixel.ARGB)
	src.Clear(pixel.White)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, src))

	got, err := DecodePNG(uid.New(), &buf, pixel.RGB565)
	require.NoError(t, err)
	assert.Equal(t, pixel.RGB565, got.Layout)
}

func TestDecodePNGRejectsGarbageInput(t *testing.T) {
	_, err := DecodePNG(uid.New(), bytes.NewReader([]byte("not a png")), pixel.ARGB)
	assert.Error(t, err)
}
