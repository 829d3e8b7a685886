package stego

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/faanross/stegokit/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBuffer(n int, seed int64) []byte {
	buf := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(buf)
	return buf
}

func TestPixelPlaneEmbedHI(t *testing.T) {
	assert := assert.New(t)

	buffer := make([]byte, 1000)
	e, err := PixelPlane{}.Embed(buffer, []byte("HI"))
	require.NoError(t, err)

	assert.Equal(6, e.FrameBytes)
	assert.Equal(125, e.Capacity)
	assert.InDelta(48.0/1000.0, e.Utilization, 1e-9)

	want := frame.Bits([]byte{0, 0, 0, 2, 'H', 'I'})
	assert.Equal(want, LSBs(e.Carrier, 48))
	assert.Equal(make([]byte, 1000-48), e.Carrier[48:])

	msg, err := PixelPlane{}.Extract(e.Carrier)
	require.NoError(t, err)
	assert.Equal([]byte("HI"), msg.Payload)
}

func TestPixelPlaneRoundTrip(t *testing.T) {
	buffer := randomBuffer(64*64*3, 1)
	capacity := PixelPlane{}.Capacity(buffer)

	messages := [][]byte{
		nil,
		{},
		[]byte("Hello world!"),
		bytes.Repeat([]byte("a"), 1000),
		randomBuffer(capacity-4, 2),
	}

	for _, message := range messages {
		e, err := PixelPlane{}.Embed(buffer, message)
		require.NoError(t, err)

		msg, err := PixelPlane{}.Extract(e.Carrier)
		require.NoError(t, err)
		assert.Equal(t, len(message), msg.Len())
		assert.True(t, bytes.Equal(message, msg.Payload))
	}
}

func TestPixelPlaneEmbedIsNonDestructive(t *testing.T) {
	buffer := randomBuffer(4096, 3)
	original := append([]byte(nil), buffer...)

	e, err := PixelPlane{}.Embed(buffer, []byte("covert"))
	require.NoError(t, err)

	assert.Equal(t, original, buffer, "input buffer must not be modified")

	written := e.FrameBytes * 8
	for i := range buffer {
		if i < written {
			assert.Equal(t, buffer[i]&0xFE, e.Carrier[i]&0xFE, "element %d high bits", i)
		} else {
			assert.Equal(t, buffer[i], e.Carrier[i], "element %d untouched", i)
		}
	}
}

func TestPixelPlaneCapacityBoundary(t *testing.T) {
	buffer := make([]byte, 80) // capacity 10 bytes
	assert.Equal(t, 10, PixelPlane{}.Capacity(buffer))

	e, err := PixelPlane{}.Embed(buffer, []byte("123456"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, e.Utilization, 1e-9)

	msg, err := PixelPlane{}.Extract(e.Carrier)
	require.NoError(t, err)
	assert.Equal(t, []byte("123456"), msg.Payload)

	_, err = PixelPlane{}.Embed(buffer, []byte("1234567"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))

	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 11, capErr.Needed)
	assert.Equal(t, 10, capErr.Available)
}

func TestPixelPlaneCapacityIsPure(t *testing.T) {
	for _, n := range []int{0, 7, 8, 9, 1000, 1001} {
		a := PixelPlane{}.Capacity(make([]byte, n))
		b := PixelPlane{}.Capacity(randomBuffer(n, int64(n)))
		assert.Equal(t, n/8, a)
		assert.Equal(t, a, b)
	}
}

func TestPixelPlaneTinyCarrier(t *testing.T) {
	_, err := PixelPlane{}.Embed(make([]byte, 31), nil)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))

	msg, err := PixelPlane{}.Extract(make([]byte, 31))
	assert.Nil(t, msg)
	assert.True(t, errors.Is(err, ErrInvalidOrUnencoded))
}

func TestPixelPlaneExtractUnencoded(t *testing.T) {
	// All LSBs set declares a length of 2^32-1.
	buffer := bytes.Repeat([]byte{0xFF}, 1000)
	msg, err := PixelPlane{}.Extract(buffer)
	assert.Nil(t, msg)
	assert.True(t, errors.Is(err, ErrInvalidOrUnencoded))
}

func TestPixelPlaneExtractLengthPastBits(t *testing.T) {
	// Declared length 10 equals capacity but 32+80 bits do not fit in 80.
	buffer := make([]byte, 80)
	for i, bit := range frame.Bits([]byte{0, 0, 0, 10}) {
		buffer[i] = EmbedBit(buffer[i], bit)
	}

	msg, err := PixelPlane{}.Extract(buffer)
	assert.Nil(t, msg)
	assert.True(t, errors.Is(err, ErrInvalidOrUnencoded))
}

func TestPixelPlaneInvalidUTF8IsWarning(t *testing.T) {
	e, err := PixelPlane{}.Embed(make([]byte, 200), []byte{0xC3, 0x28})
	require.NoError(t, err)

	msg, err := PixelPlane{}.Extract(e.Carrier)
	require.NoError(t, err)
	assert.False(t, msg.ValidUTF8)
	assert.Equal(t, []byte{0xC3, 0x28}, msg.Payload)

	_, err = msg.Text()
	assert.True(t, errors.Is(err, ErrInvalidUTF8))
}

func TestEmbedBit(t *testing.T) {
	assert.Equal(t, uint8(0xFF), EmbedBit(0xFE, true))
	assert.Equal(t, uint8(0xFE), EmbedBit(0xFF, false))
	assert.Equal(t, uint8(0x01), EmbedBit(0x01, true))
	assert.Equal(t, uint8(0x00), EmbedBit(0x00, false))
}
