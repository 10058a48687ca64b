package hdkey

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDeriveFixedVector ships the exact vector spec.md §8 scenario 2
// mandates: root = 32 zero bytes, chaincode = 0, category (false, true),
// depth = 0.
func TestDeriveFixedVector(t *testing.T) {
	t.Parallel()

	var root Root // zero value: 32 zero bytes

	tag := sha256.Sum256([]byte("webcashwalletv1"))
	h := sha256.New()
	h.Write(tag[:])
	h.Write(tag[:])
	h.Write(root.buf[:])
	h.Write(make([]byte, 8)) // chaincode_bytes
	h.Write(make([]byte, 8)) // depth_bytes
	want := hex.EncodeToString(h.Sum(nil))

	got := Derive(root, 0, Category{Mine: false, Sweep: true}, 0)
	require.Equal(t, want, got)
}

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	root := NewRoot([]byte("some root material, 32 bytes xx"))
	a := Derive(root, 7, Change, 3)
	b := Derive(root, 7, Change, 3)
	require.Equal(t, a, b)
}

func TestDeriveVariesByInput(t *testing.T) {
	t.Parallel()

	root := NewRoot([]byte("some root material, 32 bytes xx"))
	base := Derive(root, 0, Receive, 0)

	require.NotEqual(t, base, Derive(root, 1, Receive, 0))
	require.NotEqual(t, base, Derive(root, 0, Payment, 0))
	require.NotEqual(t, base, Derive(root, 0, Receive, 1))
}

func TestEncodeChaincodePacksCategoryIntoLowBits(t *testing.T) {
	t.Parallel()

	out := EncodeChaincode(1, Receive)
	require.Equal(t, [8]byte{0, 0, 0, 0, 0, 0, 0, 4}, out) // 1<<2 | 0
}

func TestNewRootRightPads(t *testing.T) {
	t.Parallel()

	r := NewRoot([]byte{1, 2, 3})
	want := [RootSize]byte{1, 2, 3}
	require.Equal(t, want[:], r.Bytes())
}

func TestRootZeroize(t *testing.T) {
	t.Parallel()

	r := NewRoot([]byte{1, 2, 3})
	r.Zeroize()
	require.Equal(t, make([]byte, RootSize), r.Bytes())
}
