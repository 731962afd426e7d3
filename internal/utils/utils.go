package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"math"
	"math/big"
)

// RoundToCents rounds a monetary amount to 2 decimal places using
// round-half-away-from-zero semantics.
func RoundToCents(v float64) float64 {
	if v >= 0 {
		return math.Floor(v*100+0.5) / 100
	}
	return math.Ceil(v*100-0.5) / 100
}

// SecureUnitFloat draws a uniform value in [0, 1) from the operating system's
// cryptographically secure random source: a 32-bit draw normalized by 2^32.
func SecureUnitFloat() (float64, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	u := binary.BigEndian.Uint32(b[:])
	return float64(u) / (1 << 32), nil
}

// SecureIntn draws a uniform integer in [0, n) from the same secure source.
// crypto/rand.Int handles the rejection sampling needed to avoid modulo bias.
func SecureIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// GenerateRandomString generates a URL-safe random string of the specified length
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b)[:length], nil
}
