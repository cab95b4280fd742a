package stego

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Progress receives the number of units (channels) processed since the last call. It is satisfied
// by *progressbar.ProgressBar.
type Progress interface {
	Add(num int) error
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }

// progressChunk is how many channels are processed between Progress updates.
const progressChunk = 4096

// Capacity is the number of bits a width x height carrier can hold at two bits per channel.
func Capacity(width, height int) int {
	return numBitsAvailable(width, height, Channels, bitsPerChannel)
}

// Embed writes bits into the two low-order bits of each channel of a copy of pixels and returns the
// copy. pixels itself is never modified. Pixels after the last bit group are left untouched.
func Embed(pixels *PixelBuffer, bits BitSequence, progress Progress) (*PixelBuffer, error) {
	if err := pixels.validate(); err != nil {
		return nil, err
	}
	for i, s := range bits {
		if s != '0' && s != '1' {
			return nil, fmt.Errorf("%w: invalid bit symbol %q at %d", ErrFormat, s, i)
		}
	}

	capacity := Capacity(pixels.Width, pixels.Height)
	log.Debug().Int("width", pixels.Width).Int("height", pixels.Height).Msg("Image dimensions")
	log.Debug().Int("available", capacity).Int("required", len(bits)).Msg("Embedding capacity")

	if len(bits) > capacity {
		return nil, &CapacityError{Required: len(bits), Available: capacity}
	}

	if progress == nil {
		progress = noProgress{}
	}

	out := pixels.Clone()
	stepper := makeImageStepper(out.Width, out.Height, 0)
	pending := 0

	for i := 0; i < len(bits); i += bitsPerChannel {
		group := bits[i] - '0'
		if i+1 < len(bits) {
			group = group<<1 | (bits[i+1] - '0')
		} else {
			// Odd tail: pad the final group with a zero bit.
			group <<= 1
		}

		idx := stepper.offset()
		out.Pix[idx] = writeLowBits(out.Pix[idx], group)
		stepper.step()

		if pending++; pending == progressChunk {
			progress.Add(pending)
			pending = 0
		}
	}
	if pending > 0 {
		progress.Add(pending)
	}

	log.Debug().Int("channels", (len(bits)+1)/bitsPerChannel).Msg("Encoded bit sequence into the image")
	return out, nil
}
