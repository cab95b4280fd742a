package stego

import (
	"bytes"
	"fmt"
)

// Sentinel terminates every embedded bit sequence. There is no length prefix: extraction stops at
// the first occurrence of this pattern, so a payload whose bits happen to contain it is truncated
// early. With encrypted, compressed payloads that is very unlikely but not impossible.
const Sentinel = "1111111111111110"

// BitSequence is a sequence of '0'/'1' symbols, most significant bit first per byte.
type BitSequence []byte

func (b BitSequence) String() string { return string(b) }

// ToBits expands data to 8 symbols per byte and appends the Sentinel.
func ToBits(data []byte) BitSequence {
	bits := make(BitSequence, 0, len(data)*8+len(Sentinel))
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, symbol(getBitUint8(b, i)))
		}
	}
	return append(bits, Sentinel...)
}

// FromBits packs symbols into bytes, 8 at a time. A trailing group shorter than 8 is dropped.
// The input must not include the Sentinel.
func FromBits(bits BitSequence) ([]byte, error) {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b uint8
		for j, s := range bits[i*8 : i*8+8] {
			switch s {
			case '1':
				b = setBitUint8(b, 7-j)
			case '0':
			default:
				return nil, fmt.Errorf("%w: invalid bit symbol %q at %d", ErrFormat, s, i*8+j)
			}
		}
		out[i] = b
	}
	return out, nil
}

// FindSentinel returns the index of the first Sentinel at or after from, or -1.
func FindSentinel(bits BitSequence, from int) int {
	if from < 0 {
		from = 0
	}
	if from >= len(bits) {
		return -1
	}
	idx := bytes.Index(bits[from:], []byte(Sentinel))
	if idx < 0 {
		return -1
	}
	return from + idx
}
