package stego

import (
	"errors"
	"fmt"

	"github.com/faanross/stegokit/internal/frame"
)

// Re-exported so callers of the channels need only this package.
var (
	ErrMessageTooLarge    = frame.ErrMessageTooLarge
	ErrInvalidOrUnencoded = frame.ErrInvalidOrUnencoded
	ErrInvalidUTF8        = frame.ErrInvalidUTF8
)

var ErrCapacityExceeded = errors.New("message too large for carrier")

// CapacityError reports a frame that does not fit its carrier. Needed and
// Available are in bytes.
type CapacityError struct {
	Needed    int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message too large: max %d bytes, got %d", e.Available, e.Needed)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
