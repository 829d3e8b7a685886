package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"pixel":      KindPixelPlane,
		"Image":      KindPixelPlane,
		" lsb ":      KindPixelPlane,
		"zero-width": KindZeroWidth,
		"unicode":    KindZeroWidth,
		"text":       KindZeroWidth,
	}
	for name, want := range tests {
		got, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKind("exif")
	assert.Error(t, err)
}

func TestNewChannel(t *testing.T) {
	for _, kind := range []Kind{KindPixelPlane, KindZeroWidth} {
		ch, err := New(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, ch.Kind())
	}

	_, err := New(Kind(42))
	assert.Error(t, err)
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestChannelHideReveal(t *testing.T) {
	carriers := map[Kind][]byte{
		KindPixelPlane: make([]byte, 512),
		KindZeroWidth:  []byte("a perfectly ordinary sentence"),
	}

	for kind, carrier := range carriers {
		t.Run(kind.String(), func(t *testing.T) {
			ch, err := New(kind)
			require.NoError(t, err)

			out, err := ch.Hide(carrier, []byte("payload"))
			require.NoError(t, err)

			msg, err := ch.Reveal(out)
			require.NoError(t, err)
			require.NotNil(t, msg)
			assert.Equal(t, "payload", string(msg.Payload))
		})
	}
}

func TestChannelCapacity(t *testing.T) {
	assert.Equal(t, 64, PixelPlane{}.Capacity(make([]byte, 512)))
	assert.Equal(t, Unbounded, ZeroWidth{}.Capacity([]byte("anything")))
}
