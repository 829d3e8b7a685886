package frame

import "errors"

var (
	ErrMessageTooLarge    = errors.New("message does not fit the 32-bit length field")
	ErrInvalidOrUnencoded = errors.New("no valid message found or carrier not encoded")
	ErrInvalidUTF8        = errors.New("payload is not valid UTF-8")
)
