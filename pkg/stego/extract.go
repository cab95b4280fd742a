package stego

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ExtractBits reads two bits per channel in embedding order and returns the symbols before the
// first Sentinel. The sentinel is searched after every row. maxScanPixels > 0 stops the scan after
// that many pixels; 0 scans the whole image. ErrNotFound is returned when no sentinel is seen.
func ExtractBits(pixels *PixelBuffer, maxScanPixels int, progress Progress) (BitSequence, error) {
	if err := pixels.validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = noProgress{}
	}

	stepper := makeImageStepper(pixels.Width, pixels.Height, maxScanPixels)
	bits := make(BitSequence, 0, pixels.Width*Channels*bitsPerChannel)
	searchFrom := 0
	pending := 0

	search := func() int {
		idx := FindSentinel(bits, searchFrom)
		// A marker may straddle the previous search boundary.
		searchFrom = len(bits) - (len(Sentinel) - 1)
		return idx
	}

	for !stepper.done() {
		hi, lo := readLowBits(pixels.Pix[stepper.offset()])
		bits = append(bits, hi, lo)
		rowEnd := stepper.step()

		if pending++; pending == progressChunk {
			progress.Add(pending)
			pending = 0
		}

		if rowEnd || stepper.done() {
			if idx := search(); idx >= 0 {
				progress.Add(pending)
				log.Debug().Int("row", stepper.y).Int("bits", idx).Msg("Found sentinel marker")
				return bits[:idx], nil
			}
		}
	}

	progress.Add(pending)
	return nil, fmt.Errorf("%w after scanning %d channels", ErrNotFound, stepper.numStepsTaken)
}
