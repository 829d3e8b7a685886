package frame

import (
	"encoding/binary"

	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/samber/oops"
)

// Length reads the declared payload length from the first 32 bits.
func Length(bits []bool) (uint32, error) {
	if len(bits) < format.HEADER_BITS {
		return 0, oops.
			With("available_bits", len(bits)).
			Errorf("%w: insufficient bits for header", ErrInvalidOrUnencoded)
	}
	return binary.BigEndian.Uint32(Pack(bits[:format.HEADER_BITS])), nil
}

// Decode recovers the payload of a frame. capacity is the largest payload,
// in bytes, the carrier that produced bits could have held; a declared length
// beyond it, or beyond the bits actually present, means the carrier was never
// encoded or is corrupted. Both cases yield ErrInvalidOrUnencoded.
func Decode(bits []bool, capacity int) (*Message, error) {
	length, err := Length(bits)
	if err != nil {
		return nil, err
	}

	log.WithFields(logger.Fields{
		"declared_length": length,
		"capacity":        capacity,
		"available_bits":  len(bits),
	}).Debug("Decoding frame")

	if capacity < 0 || uint64(length) > uint64(capacity) {
		log.WithField("declared_length", length).Debug("Declared length exceeds carrier capacity")
		return nil, oops.
			With("declared_length", length).
			With("capacity", capacity).
			Errorf("%w: payload length %d exceeds capacity %d bytes", ErrInvalidOrUnencoded, length, capacity)
	}

	end := uint64(format.HEADER_BITS) + uint64(length)*format.BITS_PER_BYTE
	if end > uint64(len(bits)) {
		log.WithField("declared_length", length).Debug("Declared length runs past available bits")
		return nil, oops.
			With("declared_length", length).
			With("available_bits", len(bits)).
			Errorf("%w: payload length %d exceeds available bits", ErrInvalidOrUnencoded, length)
	}

	return NewMessage(Pack(bits[format.HEADER_BITS:end])), nil
}
