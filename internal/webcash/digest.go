// Package webcash implements the wire value types of a webcash token: the
// 256-bit digest, the signed amount, and the secret/public webcash string
// encodings.
package webcash

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Digest is a 256-bit value: a secret preimage or the SHA-256 hash of one.
type Digest [32]byte

// String renders the digest as 64 lowercase hex characters.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest decodes exactly 64 lowercase hex characters into a Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != 64 {
		return d, fmt.Errorf("webcash: digest must be 64 hex characters, got %d", len(s))
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return d, fmt.Errorf("webcash: digest must be lowercase hex")
		}
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("webcash: invalid hex digest: %w", err)
	}
	copy(d[:], raw)
	return d, nil
}

// Equal compares two digests in constant time.
func (d Digest) Equal(other Digest) bool {
	return subtle.ConstantTimeCompare(d[:], other[:]) == 1
}

// Zeroize overwrites the digest in place. Call this on any buffer holding a
// secret once it is no longer needed.
func (d *Digest) Zeroize() {
	for i := range d {
		d[i] = 0
	}
}
