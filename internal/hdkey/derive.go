package hdkey

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// RootSize is the working width of the in-memory HD root buffer. Stored
// roots may be 16-32 bytes (spec.md §3) and are right-padded with zeros
// when loaded into this buffer.
const RootSize = 32

// derivationTag is SHA256("webcashwalletv1"), the fixed domain-separation
// tag mixed into every derivation (spec.md §4.D step 1).
var derivationTag = sha256.Sum256([]byte("webcashwalletv1"))

// Root is the 32-byte HD master secret, held in memory only for the
// lifetime of the wallet and zeroised on Close. It must never be logged,
// serialized, or compared other than through Zeroize/Bytes.
type Root struct {
	buf [RootSize]byte
}

// NewRoot right-pads raw (16-32 bytes) with zeros into a RootSize buffer,
// per spec.md §4.D's load path.
func NewRoot(raw []byte) Root {
	var r Root
	copy(r.buf[:], raw)
	return r
}

// Bytes returns the root's raw bytes. Callers must not retain or mutate
// the returned slice past the Root's lifetime.
func (r *Root) Bytes() []byte {
	return r.buf[:]
}

// Zeroize overwrites the root buffer in place. Call this before the Root
// goes out of scope.
func (r *Root) Zeroize() {
	for i := range r.buf {
		r.buf[i] = 0
	}
}

// EncodeChaincode packs a 62-bit chaincode index and a 2-bit category into
// the 64-bit big-endian chaincode word spec.md §4.D step 2 describes: the
// user-supplied chaincode is left-shifted by 2, and the category bits are
// OR-ed into the bottom 2 bits.
func EncodeChaincode(chaincode uint64, cat Category) [8]byte {
	word := (chaincode << 2) | uint64(cat.Bits())
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], word)
	return out
}

// Derive computes the secret at (root, chaincode, category, depth) per the
// exact algorithm of spec.md §4.D:
//
//	secret := SHA256(tag || tag || root || chaincode_bytes || depth_bytes)
//
// returned as 64 lowercase hex characters. Derive is pure and deterministic:
// identical inputs yield byte-identical output across runs and platforms
// (spec.md §8).
func Derive(root Root, chaincode uint64, cat Category, depth uint64) string {
	chaincodeBytes := EncodeChaincode(chaincode, cat)

	var depthBytes [8]byte
	binary.BigEndian.PutUint64(depthBytes[:], depth)

	h := sha256.New()
	h.Write(derivationTag[:])
	h.Write(derivationTag[:])
	h.Write(root.buf[:])
	h.Write(chaincodeBytes[:])
	h.Write(depthBytes[:])

	var sum [sha256.Size]byte
	h.Sum(sum[:0])

	hexSecret := hex.EncodeToString(sum[:])
	for i := range sum {
		sum[i] = 0
	}
	return hexSecret
}
