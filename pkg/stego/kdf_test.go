package stego

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := []byte("randomsalt123456")

	key1, salt1, err := DeriveKey([]byte("12345"), salt, testIterations)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key2, _, err := DeriveKey([]byte("12345"), salt, testIterations)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}

	if len(key1) != KeySize {
		t.Errorf("Key length = %d, want %d", len(key1), KeySize)
	}
	if !bytes.Equal(key1, key2) {
		t.Error("Same key material and salt produced different keys")
	}
	if !bytes.Equal(salt1, salt) {
		t.Errorf("Returned salt %x, want the supplied %x", salt1, salt)
	}

	other, _, err := DeriveKey([]byte("54321"), salt, testIterations)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(key1, other) {
		t.Error("Different key material produced the same key")
	}
}

func TestDeriveKeyGeneratesSalt(t *testing.T) {
	_, salt1, err := DeriveKey([]byte("pass"), nil, testIterations)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	_, salt2, err := DeriveKey([]byte("pass"), nil, testIterations)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}

	if len(salt1) != SaltSize {
		t.Errorf("Generated salt length = %d, want %d", len(salt1), SaltSize)
	}
	if bytes.Equal(salt1, salt2) {
		t.Error("Two generated salts are identical")
	}
}

func TestDeriveKeyErrors(t *testing.T) {
	tests := []struct {
		name       string
		key        []byte
		salt       []byte
		iterations int
		want       error
	}{
		{"empty key", nil, nil, testIterations, ErrInvalidKey},
		{"zero iterations", []byte("k"), nil, 0, ErrInvalidKey},
		{"short salt", []byte("k"), []byte("short"), testIterations, ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DeriveKey(tt.key, tt.salt, tt.iterations)
			if !errors.Is(err, tt.want) {
				t.Errorf("DeriveKey() error = %v, want %v", err, tt.want)
			}
		})
	}
}
