package fbdev

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeInputEventParsesLittleEndianFields(t *testing.T) {
	buf := make([]byte, inputEventSize)
	binary.LittleEndian.PutUint64(buf[0:8], 11)
	binary.LittleEndian.PutUint64(buf[8:16], 22)
	binary.LittleEndian.PutUint16(buf[16:18], evAbs)
	binary.LittleEndian.PutUint16(buf[18:20], absY)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(int32(-5)))

	ev := decodeInputEvent(buf)
	assert.Equal(t, int64(11), ev.Sec)
	assert.Equal(t, int64(22), ev.Usec)
	assert.Equal(t, uint16(evAbs), ev.Type)
	assert.Equal(t, uint16(absY), ev.Code)
	assert.Equal(t, int32(-5), ev.Value)
}

func TestClampBoundsValue(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-10, 0, 100))
	assert.Equal(t, 100.0, clamp(500, 0, 100))
	assert.Equal(t, 42.0, clamp(42, 0, 100))
}

func TestKeyNameIsStableForSameCode(t *testing.T) {
	assert.Equal(t, keyName(30), keyName(30))
	assert.NotEqual(t, keyName(30), keyName(31))
}
