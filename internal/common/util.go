package common

import (
	"crypto/rand"
	"encoding/binary"
)

// GenerateRandByteArray returns size bytes read from crypto/rand.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	// crypto/rand.Read does not fail on supported platforms
	_, _ = rand.Read(b)
	return b
}

// RandFraction returns a uniformly distributed float64 in [0,1) drawn from
// crypto/rand. Only the top 53 bits are used so every value is exact.
func RandFraction() float64 {
	n := binary.BigEndian.Uint64(GenerateRandByteArray(8))
	return float64(n>>11) / (1 << 53)
}

// WipeByteArray zeroes b in place. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
