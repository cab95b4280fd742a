package stego

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

const (
	CompressionZlib = "zlib"
	CompressionZstd = "zstd"
)

// Compressor is a lossless general purpose compressor applied to the encrypted envelope.
type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// NewCompressor returns the compressor registered under name. An empty name selects zlib, which is
// what existing carriers use.
func NewCompressor(name string) (Compressor, error) {
	switch name {
	case "", CompressionZlib:
		return zlibCompressor{}, nil
	case CompressionZstd:
		return zstdCompressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q (must be %s or %s)", name, CompressionZlib, CompressionZstd)
	}
}

type zlibCompressor struct{}

func (zlibCompressor) Name() string { return CompressionZlib }

func (zlibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (zlibCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}

type zstdCompressor struct{}

func (zstdCompressor) Name() string { return CompressionZstd }

func (zstdCompressor) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithZeroFrames(true))
	if err != nil {
		return nil, fmt.Errorf("zstd compression failed: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func (zstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecompression)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}
