package stego

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the per-message PBKDF2 salt.
	SaltSize = 16
	// KeySize is the AES-256 key length produced by DeriveKey.
	KeySize = 32
	// DefaultIterations is the PBKDF2 work factor used when none is configured.
	DefaultIterations = 100000
)

// DeriveKey stretches keyMaterial with PBKDF2-HMAC-SHA256 into a 32-byte key. A nil salt is replaced
// with SaltSize fresh random bytes; the salt actually used is always returned.
func DeriveKey(keyMaterial, salt []byte, iterations int) ([]byte, []byte, error) {
	if len(keyMaterial) == 0 {
		return nil, nil, fmt.Errorf("%w: key material cannot be empty", ErrInvalidKey)
	}
	if iterations < 1 {
		return nil, nil, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidKey, iterations)
	}

	if salt == nil {
		salt = make([]byte, SaltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
		}
	} else if len(salt) != SaltSize {
		return nil, nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrFormat, SaltSize, len(salt))
	}

	return pbkdf2.Key(keyMaterial, salt, iterations, KeySize, sha256.New), salt, nil
}
