package stego

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// AnalysisResult holds metrics about the comparison between two images.
type AnalysisResult struct {
	MSE              float64 // Mean Squared Error
	PSNR             float64 // Peak Signal-to-Noise Ratio (dB)
	ModifiedChannels int
	ModifiedPixels   int
}

// Analyze compares an original buffer with a stego buffer.
// It returns metrics and a difference "heatmap" image.
func Analyze(original, stego *PixelBuffer, progress Progress) (*AnalysisResult, *image.NRGBA, error) {
	if err := original.validate(); err != nil {
		return nil, nil, err
	}
	if err := stego.validate(); err != nil {
		return nil, nil, err
	}
	if original.Width != stego.Width || original.Height != stego.Height {
		return nil, nil, fmt.Errorf("image dimensions do not match: %dx%d vs %dx%d",
			original.Width, original.Height, stego.Width, stego.Height)
	}
	if progress == nil {
		progress = noProgress{}
	}

	width, height := original.Width, original.Height
	heatmap := image.NewNRGBA(image.Rect(0, 0, width, height))
	result := &AnalysisResult{}
	var sumSquaredError float64

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := (y*width + x) * Channels

			var diffSum float64
			isModified := false

			for i := 0; i < Channels; i++ {
				diff := float64(original.Pix[p+i]) - float64(stego.Pix[p+i])
				sumSquaredError += diff * diff
				diffSum += math.Abs(diff)

				if original.Pix[p+i] != stego.Pix[p+i] {
					isModified = true
					result.ModifiedChannels++
				}
			}

			// Black = no change, green = slight change, red = major change.
			if isModified {
				result.ModifiedPixels++
				intensity := uint8(math.Min(255, diffSum*50))
				heatmap.SetNRGBA(x, y, color.NRGBA{R: intensity, G: 255 - intensity, B: 0, A: 255})
			} else {
				heatmap.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
		progress.Add(width)
	}

	if width*height > 0 {
		result.MSE = sumSquaredError / (float64(width*height) * Channels)
	}
	result.PSNR = 10 * math.Log10((255*255)/result.MSE)

	return result, heatmap, nil
}
