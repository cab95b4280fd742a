package stego

import (
	"fmt"
	"image"
	"image/draw"
	"strings"
)

// Channels is the number of color channels per pixel in a PixelBuffer.
const Channels = 3

// ChannelOrder fixes which color lands in channel 0, 1 and 2 of a PixelBuffer.
type ChannelOrder int

const (
	// BGR matches carriers written by OpenCV based tools and is the default.
	BGR ChannelOrder = iota
	RGB
)

func (o ChannelOrder) String() string {
	if o == RGB {
		return "rgb"
	}
	return "bgr"
}

// ParseChannelOrder accepts "bgr" or "rgb" (case-insensitive). Empty means BGR.
func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch strings.ToLower(s) {
	case "", "bgr":
		return BGR, nil
	case "rgb":
		return RGB, nil
	default:
		return BGR, fmt.Errorf("unknown channel order %q (must be bgr or rgb)", s)
	}
}

// PixelBuffer is an 8-bit, 3-channel raster stored row-major: Pix[(y*Width+x)*Channels+c].
type PixelBuffer struct {
	Width  int
	Height int
	Order  ChannelOrder
	Pix    []uint8

	// Alpha is the optional per-pixel alpha plane. It is never used for embedding and is nil for
	// opaque images.
	Alpha []uint8
}

// NewPixelBuffer allocates a zeroed width x height buffer.
func NewPixelBuffer(width, height int, order ChannelOrder) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Order:  order,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	out := *p
	out.Pix = append([]uint8(nil), p.Pix...)
	if p.Alpha != nil {
		out.Alpha = append([]uint8(nil), p.Alpha...)
	}
	return &out
}

// Equal reports whether both buffers hold the same dimensions and channel values.
func (p *PixelBuffer) Equal(other *PixelBuffer) bool {
	if p.Width != other.Width || p.Height != other.Height || len(p.Pix) != len(other.Pix) {
		return false
	}
	for i := range p.Pix {
		if p.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

func (p *PixelBuffer) validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil pixel buffer", ErrFormat)
	}
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrFormat, p.Width, p.Height)
	}
	if len(p.Pix) != p.Width*p.Height*Channels {
		return fmt.Errorf("%w: pixel data is %d bytes, want %d for %dx%d", ErrFormat, len(p.Pix), p.Width*p.Height*Channels, p.Width, p.Height)
	}
	if p.Alpha != nil && len(p.Alpha) != p.Width*p.Height {
		return fmt.Errorf("%w: alpha plane is %d bytes, want %d", ErrFormat, len(p.Alpha), p.Width*p.Height)
	}
	return nil
}

// FromImage copies img into a PixelBuffer in the requested channel order. The alpha plane is kept
// only when some pixel is not fully opaque.
func FromImage(img image.Image, order ChannelOrder) *PixelBuffer {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = copyImage(img)
	}

	width, height := bounds.Dx(), bounds.Dy()
	pb := NewPixelBuffer(width, height, order)
	alpha := make([]uint8, width*height)
	opaque := true

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := nrgba.Pix[nrgba.PixOffset(x, y):]
			dst := pb.Pix[(y*width+x)*Channels:]
			if order == RGB {
				dst[0], dst[1], dst[2] = src[0], src[1], src[2]
			} else {
				dst[0], dst[1], dst[2] = src[2], src[1], src[0]
			}
			alpha[y*width+x] = src[3]
			if src[3] != 0xFF {
				opaque = false
			}
		}
	}

	if !opaque {
		pb.Alpha = alpha
	}
	return pb
}

// ToImage converts the buffer back into an NRGBA image suitable for lossless encoding.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for i := 0; i < p.Width*p.Height; i++ {
		src := p.Pix[i*Channels:]
		dst := img.Pix[i*4:]
		if p.Order == RGB {
			dst[0], dst[1], dst[2] = src[0], src[1], src[2]
		} else {
			dst[0], dst[1], dst[2] = src[2], src[1], src[0]
		}
		dst[3] = 0xFF
		if p.Alpha != nil {
			dst[3] = p.Alpha[i]
		}
	}
	return img
}

// copyImage normalises any image to a zero-origin NRGBA.
func copyImage(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	outputImage := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(outputImage, outputImage.Bounds(), img, bounds.Min, draw.Src)
	return outputImage
}
