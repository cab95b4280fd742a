package stego

import (
	"errors"
	"testing"
)

func TestInspect(t *testing.T) {
	codec := testCodec(t, Options{})
	carrier := NewPixelBuffer(64, 64, BGR)

	bits, err := codec.Prepare([]byte("Test Metadata Analysis"), []byte("secret"))
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	stego, err := Embed(carrier, bits, nil)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	info, err := Inspect(stego, 0)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if !info.HasMessage {
		t.Fatal("Inspect did not find the embedded message")
	}
	if info.Width != 64 || info.Height != 64 {
		t.Errorf("Dimensions = %dx%d, want 64x64", info.Width, info.Height)
	}
	if info.CapacityBits != Capacity(64, 64) {
		t.Errorf("CapacityBits = %d, want %d", info.CapacityBits, Capacity(64, 64))
	}
	if info.UsedBits != len(bits) {
		t.Errorf("UsedBits = %d, want %d", info.UsedBits, len(bits))
	}
	if info.PayloadBits != len(bits)-len(Sentinel) || info.PayloadBytes != info.PayloadBits/8 {
		t.Errorf("Payload = %d bits / %d bytes, want %d bits", info.PayloadBits, info.PayloadBytes, len(bits)-len(Sentinel))
	}
	// Salt and IV alone take 32 bytes.
	if info.PayloadBytes <= envelopeHeaderSize {
		t.Errorf("PayloadBytes = %d, want more than %d", info.PayloadBytes, envelopeHeaderSize)
	}

	wantRatio := float64(len(bits)) / float64(Capacity(64, 64))
	if info.FillRatio() != wantRatio {
		t.Errorf("FillRatio() = %f, want %f", info.FillRatio(), wantRatio)
	}
}

func TestInspectEmptyCarrier(t *testing.T) {
	info, err := Inspect(filledBuffer(16, 16, 0), 0)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.HasMessage {
		t.Error("Inspect reported a message in an untouched carrier")
	}
	if info.UsedBits != 0 || info.FillRatio() != 0 {
		t.Errorf("UsedBits = %d, FillRatio = %f, want 0", info.UsedBits, info.FillRatio())
	}
}

func TestInspectMalformed(t *testing.T) {
	if _, err := Inspect(&PixelBuffer{Width: 3, Height: 3}, 0); !errors.Is(err, ErrFormat) {
		t.Errorf("Inspect(malformed) error = %v, want ErrFormat", err)
	}
}
