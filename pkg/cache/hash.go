package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashLen is the length of a hex-encoded SHA-256 sum.
const hashLen = 2 * sha256.Size

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
