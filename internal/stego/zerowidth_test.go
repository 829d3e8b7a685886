package stego

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	zero = string(format.ZERO_MARKER)
	one  = string(format.ONE_MARKER)
)

func markers(data []byte) string {
	var b strings.Builder
	for _, bit := range frame.Bits(data) {
		if bit {
			b.WriteString(one)
		} else {
			b.WriteString(zero)
		}
	}
	return b.String()
}

func TestZeroWidthEmbedExample(t *testing.T) {
	assert := assert.New(t)

	text, err := ZeroWidth{}.Embed("ab", []byte("x"))
	require.NoError(t, err)

	assert.Equal("a"+markers([]byte{0, 0, 0, 1, 0x78})+"b", text)
	assert.Equal(2+40, utf8.RuneCountInString(text))

	msg, err := ZeroWidth{}.Extract(text)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal([]byte("x"), msg.Payload)
}

func TestZeroWidthRoundTrip(t *testing.T) {
	hosts := []string{
		"",
		"a",
		"The quick brown fox jumps over the lazy dog.",
		"héllo wörld, こんにちは",
		"line one\nline two\n",
	}
	messages := []string{"", "x", "meet at dawn", "ünïcödé ✓", strings.Repeat("z", 300)}

	for _, host := range hosts {
		for _, message := range messages {
			text, err := ZeroWidth{}.Embed(host, []byte(message))
			require.NoError(t, err)

			assert.Equal(t, host, ZeroWidth{}.Strip(text))

			msg, err := ZeroWidth{}.Extract(text)
			require.NoError(t, err)
			require.NotNil(t, msg)
			assert.Equal(t, message, string(msg.Payload))
		}
	}
}

func TestZeroWidthSplicesAtCodePointMidpoint(t *testing.T) {
	text, err := ZeroWidth{}.Embed("ééé", []byte("q"))
	require.NoError(t, err)

	runes := []rune(text)
	assert.Equal(t, 'é', runes[0])
	assert.Equal(t, format.ZERO_MARKER, runes[1])
	assert.Equal(t, 'é', runes[len(runes)-2])
	assert.Equal(t, 'é', runes[len(runes)-1])
}

func TestZeroWidthEmptyHostIsMarkerRun(t *testing.T) {
	text, err := ZeroWidth{}.Embed("", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, markers([]byte{0, 0, 0, 1, 0x78}), text)
}

func TestZeroWidthAbsentVersusEmpty(t *testing.T) {
	for _, text := range []string{"", "no markers here", "ab"} {
		msg, err := ZeroWidth{}.Extract(text)
		assert.NoError(t, err)
		assert.Nil(t, msg, "%q should yield no message", text)
	}

	text, err := ZeroWidth{}.Embed("cover", nil)
	require.NoError(t, err)

	msg, err := ZeroWidth{}.Extract(text)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, 0, msg.Len())
}

func TestZeroWidthDropsTrailingBits(t *testing.T) {
	text, err := ZeroWidth{}.Embed("cover text", []byte("ok"))
	require.NoError(t, err)

	text += zero + one + one

	msg, err := ZeroWidth{}.Extract(text)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), msg.Payload)
}

func TestZeroWidthInvalidMarkers(t *testing.T) {
	tests := map[string]string{
		"fewer than a header": "a" + strings.Repeat(one, 20) + "b",
		"length too long":     markers([]byte{0, 0, 0, 9, 'a', 'b'}),
		"all ones":            strings.Repeat(one, 64),
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			msg, err := ZeroWidth{}.Extract(text)
			assert.Nil(t, msg)
			assert.True(t, errors.Is(err, ErrInvalidOrUnencoded), "got %v", err)
		})
	}
}

func TestZeroWidthLengths(t *testing.T) {
	text, err := ZeroWidth{}.Embed("hello", []byte("x"))
	require.NoError(t, err)

	visible, actual := ZeroWidth{}.Lengths(text)
	assert.Equal(t, 5, visible)
	assert.Equal(t, 5+40, actual)
}

func TestZeroWidthKeepsInvalidHostBytes(t *testing.T) {
	assert := assert.New(t)
	z := ZeroWidth{}

	for _, host := range []string{"ab\xffcd", "\xff", "\xe2\x82", "caf\xe9 au lait"} {
		carrier, err := z.Hide([]byte(host), []byte("x"))
		require.NoError(t, err)
		assert.Equal(host, z.Strip(string(carrier)), "host %q", host)

		msg, err := z.Reveal(carrier)
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal([]byte("x"), msg.Payload)
	}

	// Each invalid byte counts as one code point when picking the midpoint.
	text, err := z.Embed("ab\xffcd", []byte("x"))
	require.NoError(t, err)
	assert.True(strings.HasPrefix(text, "ab"+zero))
	assert.True(strings.HasSuffix(text, "\xffcd"))
}
