package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ChecksumHex returns the hex-encoded SHA-256 of data.
func ChecksumHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
