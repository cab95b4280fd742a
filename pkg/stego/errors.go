package stego

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is returned for malformed envelopes, pixel buffers and bit sequences.
	ErrFormat = errors.New("malformed data")

	// ErrDecryption is returned when padding removal fails after decryption. Without a MAC this is
	// the main signal that the key material is wrong.
	ErrDecryption = errors.New("failed to decrypt, incorrect key?")

	// ErrDecompression is returned when the extracted payload is not a valid compressed stream.
	ErrDecompression = errors.New("failed to decompress payload")

	// ErrNotFound is returned when no sentinel marker exists in the scanned pixels.
	ErrNotFound = errors.New("no hidden message found")

	// ErrInvalidKey is returned for empty key material or an unusable KDF configuration.
	ErrInvalidKey = errors.New("invalid key material")
)

// CapacityError reports a payload that does not fit in the carrier image.
type CapacityError struct {
	Required  int // bits needed, sentinel included
	Available int // bits the carrier can hold
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message too long to fit in the image: need %d bits, max %d bytes", e.Required, e.MaxBytes())
}

// MaxBytes is the largest bit sequence, in bytes, the carrier accepts.
func (e *CapacityError) MaxBytes() int {
	return e.Available / 8
}

// IsWrongKey reports whether err means "message not found or incorrect key". The codec cannot tell
// a wrong key from a corrupted carrier, so both decryption and decompression failures count.
func IsWrongKey(err error) bool {
	return errors.Is(err, ErrDecryption) || errors.Is(err, ErrDecompression)
}
