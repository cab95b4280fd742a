package stego

import (
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// Options configures a Codec. Embedding and extraction must agree on Iterations, Compression and
// Redundancy.
type Options struct {
	// Iterations is the PBKDF2 work factor; 0 means DefaultIterations.
	Iterations int
	// Compression names the compressor ("zlib" or "zstd"); empty means zlib.
	Compression string
	// Redundancy wraps the compressed payload in Reed-Solomon shards.
	Redundancy bool
	// MaxScanPixels bounds extraction; 0 scans the whole image.
	MaxScanPixels int
	// Progress, if set, is told about processed channels.
	Progress Progress
}

// Codec chains the cipher, compression, bitstream and pixel layers. It only holds configuration,
// so one Codec may be used from several goroutines on independent buffers.
type Codec struct {
	cipher        *Cipher
	compressor    Compressor
	redundancy    bool
	maxScanPixels int
	progress      Progress
}

func New(opts Options) (*Codec, error) {
	if opts.Iterations < 0 {
		return nil, fmt.Errorf("%w: iterations cannot be negative", ErrInvalidKey)
	}
	if opts.MaxScanPixels < 0 {
		return nil, fmt.Errorf("max scan pixels cannot be negative")
	}

	compressor, err := NewCompressor(opts.Compression)
	if err != nil {
		return nil, err
	}

	return &Codec{
		cipher:        NewCipher(opts.Iterations),
		compressor:    compressor,
		redundancy:    opts.Redundancy,
		maxScanPixels: opts.MaxScanPixels,
		progress:      opts.Progress,
	}, nil
}

// maxSentinelRetries bounds how often Prepare re-encrypts a payload whose bits contain the
// Sentinel before its real end.
const maxSentinelRetries = 8

// Prepare encrypts, compresses and serialises message into the bit sequence that Conceal embeds.
// Extraction stops at the first Sentinel, so a payload that contains the pattern is re-encrypted
// with a fresh salt and IV; the wire format is unchanged.
func (c *Codec) Prepare(message, key []byte) (BitSequence, error) {
	for attempt := 1; attempt <= maxSentinelRetries; attempt++ {
		bits, err := c.prepare(message, key)
		if err != nil {
			return nil, err
		}
		if FindSentinel(bits, 0) == len(bits)-len(Sentinel) {
			return bits, nil
		}
		log.Debug().Int("attempt", attempt).Msg("Payload contains the sentinel marker, re-encrypting")
	}
	return nil, fmt.Errorf("%w: payload keeps containing the sentinel marker after %d attempts", ErrFormat, maxSentinelRetries)
}

func (c *Codec) prepare(message, key []byte) (BitSequence, error) {
	envelope, err := c.cipher.Encrypt(message, key)
	if err != nil {
		return nil, err
	}

	payload, err := c.compressor.Compress(envelope)
	if err != nil {
		return nil, err
	}

	if c.redundancy {
		payload, err = AddRedundancy(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to apply Reed-Solomon encoding: %w", err)
		}
	}

	log.Debug().
		Int("message", len(message)).
		Int("envelope", len(envelope)).
		Int("payload", len(payload)).
		Str("compression", c.compressor.Name()).
		Msg("Prepared payload")

	return ToBits(payload), nil
}

// Capacity is the number of bits this codec can hide in a width x height carrier and still find
// again. With MaxScanPixels set, only that many leading pixels are usable.
func (c *Codec) Capacity(width, height int) int {
	bits := Capacity(width, height)
	if c.maxScanPixels > 0 {
		if scanned := c.maxScanPixels * Channels * bitsPerChannel; scanned < bits {
			return scanned
		}
	}
	return bits
}

// Conceal hides message in a copy of pixels. The input buffer is left unchanged, also on error.
func (c *Codec) Conceal(pixels *PixelBuffer, message, key []byte) (*PixelBuffer, error) {
	if err := pixels.validate(); err != nil {
		return nil, err
	}

	bits, err := c.Prepare(message, key)
	if err != nil {
		return nil, err
	}

	if available := c.Capacity(pixels.Width, pixels.Height); len(bits) > available {
		return nil, &CapacityError{Required: len(bits), Available: available}
	}

	return Embed(pixels, bits, c.progress)
}

// Reveal recovers the message hidden in pixels. A wrong key surfaces as ErrDecryption or, rarely,
// as garbage output; use RevealText for text messages to catch the latter.
func (c *Codec) Reveal(pixels *PixelBuffer, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key material cannot be empty", ErrInvalidKey)
	}

	bits, err := ExtractBits(pixels, c.maxScanPixels, c.progress)
	if err != nil {
		return nil, err
	}

	payload, err := FromBits(bits)
	if err != nil {
		return nil, err
	}

	if c.redundancy {
		payload, err = RemoveRedundancy(payload)
		if err != nil {
			return nil, err
		}
	}

	envelope, err := c.compressor.Decompress(payload)
	if err != nil {
		return nil, err
	}

	message, err := c.cipher.Decrypt(envelope, key)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("bytes", len(message)).Msg("Revealed message")
	return message, nil
}

// RevealText is Reveal for UTF-8 messages. Output that is not valid UTF-8 is treated as a
// decryption failure.
func (c *Codec) RevealText(pixels *PixelBuffer, key []byte) (string, error) {
	message, err := c.Reveal(pixels, key)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(message) {
		return "", fmt.Errorf("%w: recovered message is not valid UTF-8", ErrDecryption)
	}
	return string(message), nil
}
