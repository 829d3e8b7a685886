// Package frame implements the length-prefixed framing shared by every
// embedding channel: a 4-byte big-endian payload length followed by the
// payload, expanded into bits most-significant-bit first.
package frame

import (
	"encoding/binary"

	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
)

var log = logger.GetStegoLogger()

// Frame returns the byte form of a frame: length prefix plus message.
func Frame(message []byte) ([]byte, error) {
	if err := checkLength(uint64(len(message))); err != nil {
		return nil, err
	}

	frame := make([]byte, format.HEADER_SIZE+len(message))
	binary.BigEndian.PutUint32(frame[:format.HEADER_SIZE], uint32(len(message)))
	copy(frame[format.HEADER_SIZE:], message)

	log.WithFields(logger.Fields{
		"message_length": len(message),
		"frame_length":   len(frame),
	}).Debug("Built frame")
	return frame, nil
}

// Encode frames message and expands it into a bit stream of
// 8*(4+len(message)) bits.
func Encode(message []byte) ([]bool, error) {
	frame, err := Frame(message)
	if err != nil {
		return nil, err
	}
	return Bits(frame), nil
}

// Bits expands every byte into 8 bits, most significant bit first.
func Bits(data []byte) []bool {
	bits := make([]bool, len(data)*format.BITS_PER_BYTE)
	for i, b := range data {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = (b & (1 << (7 - j))) != 0
		}
	}
	return bits
}

// Pack regroups bits into bytes, most significant bit first. A trailing run
// of fewer than 8 bits is dropped.
func Pack(bits []bool) []byte {
	out := make([]byte, len(bits)/format.BITS_PER_BYTE)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			if bits[i*8+j] {
				b |= 1 << (7 - j)
			}
		}
		out[i] = b
	}
	return out
}

func checkLength(n uint64) error {
	if n > format.MAX_PAYLOAD {
		return oops.
			With("message_length", n).
			Errorf("%w: %d bytes exceeds %d", ErrMessageTooLarge, n, uint64(format.MAX_PAYLOAD))
	}
	return nil
}
