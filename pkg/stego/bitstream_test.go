package stego

import (
	"bytes"
	"errors"
	"testing"
)

func TestToBits(t *testing.T) {
	got := ToBits([]byte{0xA5, 0x01})
	want := "10100101" + "00000001" + Sentinel
	if got.String() != want {
		t.Errorf("ToBits() = %s, want %s", got, want)
	}

	if empty := ToBits(nil); empty.String() != Sentinel {
		t.Errorf("ToBits(nil) = %s, want only the sentinel", empty)
	}
}

func TestBitstreamRoundTrip(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	for _, data := range [][]byte{{}, {0x00}, {0xFF, 0xFE}, []byte("hi"), all} {
		bits := ToBits(data)
		got, err := FromBits(bits[:len(bits)-len(Sentinel)])
		if err != nil {
			t.Fatalf("FromBits failed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("Round trip mismatch. Got %x, want %x", got, data)
		}
	}
}

func TestFromBitsDropsPartialByte(t *testing.T) {
	got, err := FromBits(BitSequence("01000001" + "101"))
	if err != nil {
		t.Fatalf("FromBits failed: %v", err)
	}
	if !bytes.Equal(got, []byte("A")) {
		t.Errorf("FromBits() = %q, want %q", got, "A")
	}
}

func TestFromBitsRejectsInvalidSymbols(t *testing.T) {
	_, err := FromBits(BitSequence("0100x001"))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("FromBits() error = %v, want ErrFormat", err)
	}
}

func TestFindSentinel(t *testing.T) {
	tests := []struct {
		name string
		bits string
		from int
		want int
	}{
		{"absent", "0000000000000000000", 0, -1},
		{"at start", Sentinel + "00", 0, 0},
		{"unaligned", "0" + Sentinel, 0, 1},
		{"first occurrence", "00" + Sentinel + Sentinel, 0, 2},
		{"sixteen ones then zero", "1" + Sentinel, 0, 1},
		{"search from offset", Sentinel + "0" + Sentinel, 1, 17},
		{"from past end", Sentinel, 20, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindSentinel(BitSequence(tt.bits), tt.from); got != tt.want {
				t.Errorf("FindSentinel() = %d, want %d", got, tt.want)
			}
		})
	}
}
