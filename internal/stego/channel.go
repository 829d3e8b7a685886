// Package stego provides the embedding channels: the pixel plane of a
// flattened raster and zero-width markers in plain text. Both carry the
// length-prefixed frames of package frame.
package stego

import (
	"strings"

	"github.com/faanross/stegokit/internal/frame"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
)

var log = logger.GetStegoLogger()

// Unbounded is the Capacity of a carrier with no size limit.
const Unbounded = -1

// Kind selects an embedding channel.
type Kind int

const (
	KindPixelPlane Kind = iota + 1
	KindZeroWidth
)

func (k Kind) String() string {
	switch k {
	case KindPixelPlane:
		return "pixel"
	case KindZeroWidth:
		return "zero-width"
	default:
		return "unknown"
	}
}

// ParseKind maps a user supplied channel name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pixel", "image", "lsb":
		return KindPixelPlane, nil
	case "zero-width", "zerowidth", "text", "unicode":
		return KindZeroWidth, nil
	default:
		return 0, oops.
			With("name", name).
			Errorf("unknown channel %q", name)
	}
}

// Channel is an embedding channel over a byte carrier. For the zero-width
// channel the carrier is UTF-8 text.
type Channel interface {
	Kind() Kind
	// Capacity is the largest frame, in bytes, carrier can hold, or
	// Unbounded.
	Capacity(carrier []byte) int
	Hide(carrier, message []byte) ([]byte, error)
	// Reveal returns nil, nil when the carrier holds no message at all.
	Reveal(carrier []byte) (*frame.Message, error)
}

// New returns the channel for kind.
func New(kind Kind) (Channel, error) {
	switch kind {
	case KindPixelPlane:
		return PixelPlane{}, nil
	case KindZeroWidth:
		return ZeroWidth{}, nil
	default:
		return nil, oops.
			With("kind", int(kind)).
			Errorf("unknown channel kind %d", int(kind))
	}
}
