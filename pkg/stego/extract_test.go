package stego

import (
	"errors"
	"testing"
)

func TestExtractBitsRoundTrip(t *testing.T) {
	data := []byte{0x00, 0x42, 0x7F}
	bits := ToBits(data)

	embedded, err := Embed(randomBuffer(t, 8, 8), bits, nil)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	got, err := ExtractBits(embedded, 0, nil)
	if err != nil {
		t.Fatalf("ExtractBits failed: %v", err)
	}
	want := bits[:len(bits)-len(Sentinel)]
	if got.String() != want.String() {
		t.Errorf("ExtractBits() = %s, want %s", got, want)
	}
}

func TestExtractBitsNoMessage(t *testing.T) {
	tests := []struct {
		name  string
		value uint8
	}{
		{"all zero", 0x00},
		{"low bits clear", 0x80},
		{"all ones", 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractBits(filledBuffer(10, 10, tt.value), 0, nil)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("ExtractBits() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestExtractBitsSentinelSpansRows(t *testing.T) {
	// One pixel per row holds 6 bits, so the 16-bit sentinel after one byte spans rows 1 to 3.
	carrier := filledBuffer(1, 10, 0x00)
	embedded, err := Embed(carrier, ToBits([]byte{0x00}), nil)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	got, err := ExtractBits(embedded, 0, nil)
	if err != nil {
		t.Fatalf("ExtractBits failed: %v", err)
	}
	if got.String() != "00000000" {
		t.Errorf("ExtractBits() = %s, want 00000000", got)
	}
}

func TestExtractBitsBoundedScan(t *testing.T) {
	// 4 bytes + sentinel = 48 bits = 24 channels = 8 pixels.
	embedded, err := Embed(filledBuffer(10, 10, 0x00), ToBits([]byte("abcd")), nil)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if _, err := ExtractBits(embedded, 7, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("ExtractBits(max 7 pixels) error = %v, want ErrNotFound", err)
	}
	if _, err := ExtractBits(embedded, 8, nil); err != nil {
		t.Errorf("ExtractBits(max 8 pixels) failed: %v", err)
	}
}

func TestExtractBitsProgress(t *testing.T) {
	progress := &countingProgress{}
	if _, err := ExtractBits(filledBuffer(50, 50, 0), 0, progress); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ExtractBits() error = %v, want ErrNotFound", err)
	}
	if progress.total != 50*50*Channels {
		t.Errorf("Progress total = %d, want %d", progress.total, 50*50*Channels)
	}
}
