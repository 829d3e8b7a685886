package carrier

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrLossyFormat       = errors.New("output format would destroy least significant bits; use png or bmp")
	ErrNoText            = errors.New("no text supplied")
)
