package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	assert := assert.New(t)

	data := bytes.Repeat([]byte("the hidden message repeats. "), 50)
	compressed, ok, err := Compress(data)
	require.NoError(t, err)

	assert.True(ok)
	assert.Less(len(compressed), len(data))
	assert.True(IsCompressed(compressed))

	out, inflated := Decompress(compressed)
	assert.True(inflated)
	assert.Equal(data, out)
}

func TestCompressNotBeneficial(t *testing.T) {
	data := []byte("hi")
	out, ok, err := Compress(data)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, data, out)

	out, ok, err = Compress(nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestDecompressPlainData(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("plain"), {0x1f, 0x8b, 0x00}} {
		out, ok := Decompress(data)
		assert.False(t, ok)
		assert.Equal(t, data, out)
	}
}
