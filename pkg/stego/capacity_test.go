package stego

import "testing"

func TestCapacity(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   int
	}{
		{"Standard", 100, 100, 60000}, // 100 * 100 * 3 * 2
		{"Small", 10, 10, 600},
		{"Single Row", 7, 1, 42},
		{"Single Pixel", 1, 1, 6},
		{"Empty", 0, 0, 0},
		{"Zero Height", 100, 0, 0},
		{"Negative", -4, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Capacity(tt.width, tt.height); got != tt.want {
				t.Errorf("Capacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCapacityErrorMessage(t *testing.T) {
	err := &CapacityError{Required: 1000, Available: 600}
	want := "message too long to fit in the image: need 1000 bits, max 75 bytes"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCodecCapacity(t *testing.T) {
	tests := []struct {
		name          string
		maxScanPixels int
		width         int
		height        int
		want          int
	}{
		{"Unbounded", 0, 100, 100, 60000},
		{"Bound Above Image", 20000, 100, 100, 60000},
		{"Bound Below Image", 100, 40, 40, 600},
		{"Bound Equals Image", 1600, 40, 40, 9600},
		{"Empty Image", 100, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := testCodec(t, Options{MaxScanPixels: tt.maxScanPixels})
			if got := codec.Capacity(tt.width, tt.height); got != tt.want {
				t.Errorf("Capacity() = %d, want %d", got, tt.want)
			}
		})
	}
}
