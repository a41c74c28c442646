package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	orig := []float32{0.1, -2.5, 3.75, 0, 1e-8, -1e8}

	data := Encode(orig)
	assert.Len(t, data, len(orig)*4)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestEncodeEmpty(t *testing.T) {
	assert.Nil(t, Encode(nil))
	assert.Nil(t, Encode([]float32{}))
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeInvalidLength(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7} {
		_, err := Decode(make([]byte, n))
		assert.Error(t, err, "length %d should not decode", n)
	}
}

func TestDecodeKnownBytes(t *testing.T) {
	// 1.0 as little-endian IEEE-754 float32
	data := []byte{0x00, 0x00, 0x80, 0x3f}
	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, float32(1.0), got[0])
}
