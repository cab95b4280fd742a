package stego

import "errors"

// Info describes what a keyless scan of a carrier can tell.
type Info struct {
	Width        int
	Height       int
	CapacityBits int
	HasMessage   bool
	PayloadBits  int // bits before the sentinel
	PayloadBytes int // whole bytes before the sentinel
	UsedBits     int // payload plus sentinel
}

// FillRatio is the share of the carrier capacity occupied by the embedded bits.
func (i *Info) FillRatio() float64 {
	if i.CapacityBits == 0 {
		return 0
	}
	return float64(i.UsedBits) / float64(i.CapacityBits)
}

// Inspect looks for a sentinel without decrypting anything. A carrier that was never embedded
// into reports HasMessage false with a nil error; random pixel data can still produce a false
// positive, which only Reveal with the right key can rule out.
func Inspect(pixels *PixelBuffer, maxScanPixels int) (*Info, error) {
	if err := pixels.validate(); err != nil {
		return nil, err
	}

	info := &Info{
		Width:        pixels.Width,
		Height:       pixels.Height,
		CapacityBits: Capacity(pixels.Width, pixels.Height),
	}

	bits, err := ExtractBits(pixels, maxScanPixels, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return info, nil
		}
		return nil, err
	}

	info.HasMessage = true
	info.PayloadBits = len(bits)
	info.PayloadBytes = len(bits) / 8
	info.UsedBits = len(bits) + len(Sentinel)
	return info, nil
}
