package frame

import (
	"fmt"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Message is a recovered payload. Invalid UTF-8 is recorded rather than
// rejected so the raw bytes are always available.
type Message struct {
	Payload   []byte
	ValidUTF8 bool
}

// NewMessage wraps payload, recording whether it is valid UTF-8.
func NewMessage(payload []byte) *Message {
	return &Message{
		Payload:   payload,
		ValidUTF8: utf8.Valid(payload),
	}
}

// Text returns the payload as a string. When the payload is not valid UTF-8
// the escaped byte form is returned together with ErrInvalidUTF8.
func (m *Message) Text() (string, error) {
	if m.ValidUTF8 {
		return string(m.Payload), nil
	}
	return fmt.Sprintf("%q", m.Payload), oops.
		With("payload_length", len(m.Payload)).
		Wrap(ErrInvalidUTF8)
}

// Len returns the payload length in bytes.
func (m *Message) Len() int {
	return len(m.Payload)
}
