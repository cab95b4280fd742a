package stego

// bitsPerChannel is the fixed embedding rate: the two low-order bits of every channel.
const bitsPerChannel = 2

// lowBitsMask clears the bits used for embedding.
const lowBitsMask uint8 = 0xFC

func getBitUint8(num uint8, index int) int {
	mask := uint8(1 << index)
	if num&mask == 0 {
		return 0
	}
	return 1
}

func setBitUint8(num uint8, index int) uint8 {
	mask := uint8(1 << index)
	return num | mask
}

// writeLowBits replaces the two low-order bits of num with group (0-3).
func writeLowBits(num uint8, group uint8) uint8 {
	return num&lowBitsMask | group&^lowBitsMask
}

// readLowBits returns the two low-order bits of num as the symbols '0'/'1', high bit first.
func readLowBits(num uint8) (byte, byte) {
	return symbol(getBitUint8(num, 1)), symbol(getBitUint8(num, 0))
}

func symbol(bit int) byte {
	if bit == 0 {
		return '0'
	}
	return '1'
}

// numBitsAvailable is the number of payload bits a width x height carrier can hold.
func numBitsAvailable(width int, height int, channelSize int, numBitsToUsePerChannel int) int {
	if width <= 0 || height <= 0 || numBitsToUsePerChannel < 1 {
		return 0
	}
	return width * height * channelSize * numBitsToUsePerChannel
}
