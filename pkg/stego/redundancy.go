package stego

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Reed-Solomon Configuration
const (
	rsDataShards   = 4
	rsParityShards = 2
)

// AddRedundancy spreads data over Reed-Solomon data and parity shards. A 4-byte length header is
// stored inside the data shards so the shard padding can be removed again.
func AddRedundancy(data []byte) ([]byte, error) {
	enc, err := reedsolomon.New(rsDataShards, rsParityShards)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(payload, uint32(len(data)))
	copy(payload[4:], data)

	shards, err := enc.Split(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to split shards: %w", err)
	}

	if err := enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("failed to encode parity: %w", err)
	}

	var output []byte
	for _, shard := range shards {
		output = append(output, shard...)
	}
	return output, nil
}

// RemoveRedundancy verifies the shards, reconstructs them if needed and returns the original data.
func RemoveRedundancy(data []byte) ([]byte, error) {
	total := rsDataShards + rsParityShards
	if len(data) == 0 || len(data)%total != 0 {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d equal shards", ErrFormat, len(data), total)
	}

	enc, err := reedsolomon.New(rsDataShards, rsParityShards)
	if err != nil {
		return nil, err
	}

	shardSize := len(data) / total
	shards := make([][]byte, total)
	for i := range shards {
		shards[i] = data[i*shardSize : (i+1)*shardSize]
	}

	if ok, _ := enc.Verify(shards); !ok {
		// Verify cannot say which shard is bad, so try dropping each one in turn.
		if !reconstructAny(enc, shards) {
			return nil, fmt.Errorf("%w: Reed-Solomon reconstruction failed", ErrFormat)
		}
	}

	var joined []byte
	for i := 0; i < rsDataShards; i++ {
		joined = append(joined, shards[i]...)
	}

	if len(joined) < 4 {
		return nil, fmt.Errorf("%w: recovered data too short", ErrFormat)
	}
	length := binary.BigEndian.Uint32(joined[:4])
	if uint64(len(joined)) < 4+uint64(length) {
		return nil, fmt.Errorf("%w: recovered data length mismatch", ErrFormat)
	}

	return joined[4 : 4+length], nil
}

func reconstructAny(enc reedsolomon.Encoder, shards [][]byte) bool {
	for skip := range shards {
		trial := make([][]byte, len(shards))
		for i, s := range shards {
			if i != skip {
				trial[i] = append([]byte(nil), s...)
			}
		}
		if err := enc.Reconstruct(trial); err != nil {
			continue
		}
		if ok, _ := enc.Verify(trial); ok {
			copy(shards, trial)
			return true
		}
	}
	return false
}
