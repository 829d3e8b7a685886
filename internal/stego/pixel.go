package stego

import (
	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/frame"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
)

// PixelPlane hides frames in the least significant bit of each element of a
// flattened pixel buffer, one bit per element.
type PixelPlane struct{}

// Embedding is the result of a pixel-plane embed.
type Embedding struct {
	Carrier     []byte  // Copy of the input buffer carrying the frame
	FrameBytes  int     // Header plus message
	Capacity    int     // Carrier capacity in bytes
	Utilization float64 // Frame bits over carrier bits, 0..1
}

// EmbedBit modifies the LSB of a color value to store a bit
func EmbedBit(colorValue uint8, bit bool) uint8 {
	if bit {
		return colorValue | 1
	}
	return colorValue & format.LSB_MASK
}

// Capacity is the number of frame bytes buffer can carry.
func (PixelPlane) Capacity(buffer []byte) int {
	return len(buffer) / format.BITS_PER_BYTE
}

// Embed writes the frame for message into a copy of buffer. The buffer is
// left untouched; on failure nothing is written.
func (p PixelPlane) Embed(buffer, message []byte) (*Embedding, error) {
	bits, err := frame.Encode(message)
	if err != nil {
		return nil, err
	}

	frameBytes := len(bits) / format.BITS_PER_BYTE
	capacity := p.Capacity(buffer)
	if frameBytes > capacity {
		log.WithFields(logger.Fields{
			"needed":    frameBytes,
			"available": capacity,
		}).Debug("Carrier too small")
		return nil, oops.
			With("needed", frameBytes).
			With("available", capacity).
			Wrap(&CapacityError{Needed: frameBytes, Available: capacity})
	}

	carrier := make([]byte, len(buffer))
	copy(carrier, buffer)
	for i, bit := range bits {
		carrier[i] = EmbedBit(carrier[i], bit)
	}

	utilization := float64(len(bits)) / float64(capacity*format.BITS_PER_BYTE)
	log.WithFields(logger.Fields{
		"frame_bytes": frameBytes,
		"capacity":    capacity,
		"utilization": utilization,
	}).Debug("Embedded frame in pixel plane")

	return &Embedding{
		Carrier:     carrier,
		FrameBytes:  frameBytes,
		Capacity:    capacity,
		Utilization: utilization,
	}, nil
}

// Extract reads a frame back out of buffer's least significant bits.
func (p PixelPlane) Extract(buffer []byte) (*frame.Message, error) {
	header := LSBs(buffer, format.HEADER_BITS)
	length, err := frame.Length(header)
	if err != nil {
		return nil, err
	}

	// Only read as many elements as the declared length needs, bounded by the
	// buffer; Decode rejects anything that does not fit.
	want := len(buffer)
	if need := uint64(format.HEADER_BITS) + uint64(length)*format.BITS_PER_BYTE; need < uint64(want) {
		want = int(need)
	}
	return frame.Decode(LSBs(buffer, want), p.Capacity(buffer))
}

// LSBs returns the least significant bits of the first n elements of buffer,
// or of all of it when it is shorter.
func LSBs(buffer []byte, n int) []bool {
	if n > len(buffer) {
		n = len(buffer)
	}
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = buffer[i]&1 == 1
	}
	return bits
}

// Hide implements Channel.
func (p PixelPlane) Hide(carrier, message []byte) ([]byte, error) {
	e, err := p.Embed(carrier, message)
	if err != nil {
		return nil, err
	}
	return e.Carrier, nil
}

// Reveal implements Channel.
func (p PixelPlane) Reveal(carrier []byte) (*frame.Message, error) {
	return p.Extract(carrier)
}

// Kind implements Channel.
func (PixelPlane) Kind() Kind {
	return KindPixelPlane
}
