package stego

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// lossyFormats destroy low-order bits when re-encoded. webp is listed because the decoder cannot
// tell lossless from lossy files apart.
var lossyFormats = map[string]bool{
	"jpeg": true,
	"webp": true,
}

// IsLossyFormat reports whether format, as returned by image.Decode, is lossy.
func IsLossyFormat(format string) bool {
	return lossyFormats[strings.ToLower(format)]
}

// DecodeImage decodes any registered format into a PixelBuffer.
func DecodeImage(r io.Reader, order ChannelOrder) (*PixelBuffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img, order), format, nil
}

// DecodeConfig reads only the header of an image.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return cfg, "", fmt.Errorf("failed to read image header: %w", err)
	}
	return cfg, format, nil
}

func LoadImage(path string, order ChannelOrder) (*PixelBuffer, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	return DecodeImage(bufio.NewReader(file), order)
}

// EncodePNG writes the buffer as PNG. The output is always PNG, whatever the carrier format was,
// because the embedded bits only survive lossless encoding.
func EncodePNG(w io.Writer, pixels *PixelBuffer) error {
	if err := pixels.validate(); err != nil {
		return err
	}
	return png.Encode(w, pixels.ToImage())
}

func SavePNG(path string, pixels *PixelBuffer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := EncodePNG(file, pixels); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
