package stego

import "testing"

func TestUint8BitManipulation(t *testing.T) {
	// 0000 0000 | (1<<2) = 0000 0100 (4)
	if got := setBitUint8(0, 2); got != 4 {
		t.Errorf("setBitUint8(0, 2) = %d; want 4", got)
	}

	if got := getBitUint8(4, 2); got != 1 {
		t.Errorf("getBitUint8(4, 2) = %d; want 1", got)
	}
	if got := getBitUint8(4, 0); got != 0 {
		t.Errorf("getBitUint8(4, 0) = %d; want 0", got)
	}
}

func TestLowBits(t *testing.T) {
	tests := []struct {
		num    uint8
		group  uint8
		want   uint8
		hi, lo byte
	}{
		{0x00, 0b11, 0x03, '1', '1'},
		{0xFF, 0b00, 0xFC, '0', '0'},
		{0xA5, 0b10, 0xA6, '1', '0'},
		{0x80, 0b01, 0x81, '0', '1'},
	}

	for _, tt := range tests {
		got := writeLowBits(tt.num, tt.group)
		if got != tt.want {
			t.Errorf("writeLowBits(%#x, %02b) = %#x; want %#x", tt.num, tt.group, got, tt.want)
		}
		hi, lo := readLowBits(got)
		if hi != tt.hi || lo != tt.lo {
			t.Errorf("readLowBits(%#x) = %c%c; want %c%c", got, hi, lo, tt.hi, tt.lo)
		}
	}
}
