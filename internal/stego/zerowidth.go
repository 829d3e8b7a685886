package stego

import (
	"strings"
	"unicode/utf8"

	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/frame"
	"github.com/faanross/stegokit/internal/logger"
)

// ZeroWidth hides frames in host text as a run of invisible code points
// spliced in at the middle of the text.
type ZeroWidth struct{}

// Embed returns host with the marker run for message inserted at code-point
// index floor(n/2). There is no capacity limit.
func (ZeroWidth) Embed(host string, message []byte) (string, error) {
	bits, err := frame.Encode(message)
	if err != nil {
		return "", err
	}

	var hidden strings.Builder
	hidden.Grow(len(bits) * utf8.RuneLen(format.ZERO_MARKER))
	for _, bit := range bits {
		if bit {
			hidden.WriteRune(format.ONE_MARKER)
		} else {
			hidden.WriteRune(format.ZERO_MARKER)
		}
	}

	count := utf8.RuneCountInString(host)
	mid := count / 2
	offset := byteOffset(host, mid)

	log.WithFields(logger.Fields{
		"host_length": count,
		"markers":     len(bits),
		"offset":      mid,
	}).Debug("Splicing zero-width markers")

	return host[:offset] + hidden.String() + host[offset:], nil
}

// byteOffset returns the byte index of code point n in s. Invalid bytes count
// as one code point each, as utf8.RuneCountInString counts them.
func byteOffset(s string, n int) int {
	offset := 0
	for ; n > 0 && offset < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}

// Extract collects every marker in text and decodes the frame they form.
// A nil message with a nil error means text holds no markers at all, which
// is distinct from an empty hidden message.
func (ZeroWidth) Extract(text string) (*frame.Message, error) {
	var bits []bool
	for _, r := range text {
		switch r {
		case format.ZERO_MARKER:
			bits = append(bits, false)
		case format.ONE_MARKER:
			bits = append(bits, true)
		}
	}

	if len(bits) == 0 {
		log.Debug("No zero-width markers found")
		return nil, nil
	}

	// Trailing bits that do not complete a byte are dropped.
	whole := len(bits) / format.BITS_PER_BYTE * format.BITS_PER_BYTE
	log.WithFields(logger.Fields{
		"markers": len(bits),
		"dropped": len(bits) - whole,
	}).Debug("Collected zero-width markers")

	return frame.Decode(bits[:whole], whole/format.BITS_PER_BYTE-format.HEADER_SIZE)
}

// Strip removes every marker code point, recovering the host text byte for
// byte, invalid UTF-8 included.
func (ZeroWidth) Strip(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		if r != format.ZERO_MARKER && r != format.ONE_MARKER {
			b.WriteString(text[:size])
		}
		text = text[size:]
	}
	return b.String()
}

// Lengths reports the visible and actual length of text in code points.
func (z ZeroWidth) Lengths(text string) (visible, actual int) {
	return utf8.RuneCountInString(z.Strip(text)), utf8.RuneCountInString(text)
}

// Capacity implements Channel; text carriers are unbounded.
func (ZeroWidth) Capacity([]byte) int {
	return Unbounded
}

// Hide implements Channel on UTF-8 encoded text.
func (z ZeroWidth) Hide(carrier, message []byte) ([]byte, error) {
	text, err := z.Embed(string(carrier), message)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// Reveal implements Channel on UTF-8 encoded text.
func (z ZeroWidth) Reveal(carrier []byte) (*frame.Message, error) {
	return z.Extract(string(carrier))
}

// Kind implements Channel.
func (ZeroWidth) Kind() Kind {
	return KindZeroWidth
}
