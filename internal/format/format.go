package format

import "math"

// Frame layout constants
const (
	HEADER_SIZE   = 4               // Bytes in the big-endian length prefix
	HEADER_BITS   = HEADER_SIZE * 8 // Bits occupied by the length prefix
	BITS_PER_BYTE = 8               // Standard byte size
	MAX_PAYLOAD   = math.MaxUint32  // Largest length the prefix can declare
	LSB_MASK      = 0xFE            // Clears the least significant bit
	CHANNELS      = 3               // RGB channels in a flattened pixel buffer
)

// Zero-width text markers. Both are reserved: host text containing them
// cannot be extracted unambiguously.
const (
	ZERO_MARKER = '\u200B' // ZERO WIDTH SPACE, bit 0
	ONE_MARKER  = '\u200C' // ZERO WIDTH NON-JOINER, bit 1
)

// Analysis constants
const (
	DEFAULT_SAMPLE = 10000 // Pixels sampled for LSB distribution
	HIGH_ENTROPY   = 7.9   // LSB entropy indistinguishable from random
	GOOD_ENTROPY   = 7.5   // LSB entropy that is difficult to detect
	MEANS_EDGE     = 100   // Width/height of the corner used for channel means
)
