package stego

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// envelopeHeaderSize is the salt plus IV prefix of every envelope.
const envelopeHeaderSize = SaltSize + aes.BlockSize

// Cipher encrypts payloads into Salt ‖ IV ‖ Ciphertext envelopes using AES-256-CBC with PKCS#7
// padding and a PBKDF2-derived key.
//
// There is no authentication tag. A wrong key usually shows up as invalid padding, but it can
// occasionally decrypt to garbage with valid padding; ciphertext integrity is not guaranteed.
type Cipher struct {
	Iterations int
}

// NewCipher returns a Cipher using the given PBKDF2 iteration count, or DefaultIterations if zero.
func NewCipher(iterations int) *Cipher {
	if iterations == 0 {
		iterations = DefaultIterations
	}
	return &Cipher{Iterations: iterations}
}

// Encrypt derives a fresh salt and key, draws a fresh IV and returns the envelope.
func (c *Cipher) Encrypt(plaintext, keyMaterial []byte) ([]byte, error) {
	key, salt, err := DeriveKey(keyMaterial, nil, c.Iterations)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	envelope := make([]byte, envelopeHeaderSize+len(padded))
	copy(envelope, salt)

	iv := envelope[SaltSize:envelopeHeaderSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(envelope[envelopeHeaderSize:], padded)
	return envelope, nil
}

// Decrypt splits the envelope, re-derives the key from its salt and removes the padding.
func (c *Cipher) Decrypt(envelope, keyMaterial []byte) ([]byte, error) {
	if len(envelope) < envelopeHeaderSize {
		return nil, fmt.Errorf("%w: envelope is %d bytes, need at least %d", ErrFormat, len(envelope), envelopeHeaderSize)
	}

	salt := envelope[:SaltSize]
	iv := envelope[SaltSize:envelopeHeaderSize]
	ciphertext := envelope[envelopeHeaderSize:]

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", ErrFormat, len(ciphertext))
	}

	key, _, err := DeriveKey(keyMaterial, salt, c.Iterations)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+n)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length %d", ErrDecryption, len(data))
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecryption)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", ErrDecryption)
		}
	}
	return data[:len(data)-n], nil
}
