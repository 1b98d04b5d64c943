package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsKnownCursors(t *testing.T) {
	for _, name := range []Name{Arrow, Resize, Hand} {
		c, err := Get(name)
		require.NoError(t, err)
		require.NotNil(t, c.Image)
		assert.Greater(t, c.Image.Width, int32(0))
		assert.Greater(t, c.Image.Height, int32(0))
	}
}

func TestGetRejectsUnknownName(t *testing.T) {
	_, err := Get(Name("bogus"))
	assert.Error(t, err)
}

func TestGetCachesSameInstance(t *testing.T) {
	a, err := Get(Hand)
	require.NoError(t, err)
	b, err := Get(Hand)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestArrowHotSpotIsAtTip(t *testing.T) {
	c, err := Get(Arrow)
	require.NoError(t, err)
	assert.Equal(t, 0, int(c.HotSpot.X))
	assert.Equal(t, 0, int(c.HotSpot.Y))
}

func TestResizeHotSpotIsCentered(t *testing.T) {
	c, err := Get(Resize)
	require.NoError(t, err)
	assert.Equal(t, c.Image.Width/2, c.HotSpot.X)
	assert.Equal(t, c.Image.Height/2, c.HotSpot.Y)
}
