// Package vector handles embedding serialization and similarity math.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes a float32 vector into little-endian bytes,
// 4 bytes per element. An empty vector encodes to nil.
func Encode(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	buf := make([]byte, len(vec)*4)
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Decode deserializes little-endian bytes back into a float32 vector.
// The blob length must be a multiple of 4.
func Decode(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob length %d: not a multiple of 4", len(data))
	}
	if len(data) == 0 {
		return nil, nil
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
