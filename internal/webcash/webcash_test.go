package webcash

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSecret(t *testing.T) SecretWebcash {
	t.Helper()
	d, err := ParseDigest(strings.Repeat("ab", 32))
	require.NoError(t, err)
	return SecretWebcash{Amount: 3000000, Secret: d}
}

func TestSecretWebcashStringRoundTrip(t *testing.T) {
	t.Parallel()

	sk := testSecret(t)
	s := sk.String()
	require.Equal(t, "e0.03:secret:"+strings.Repeat("ab", 32), s)

	parsed, err := ParseSecretWebcash(s)
	require.NoError(t, err)
	require.Equal(t, sk, parsed)
}

func TestPublicWebcashStringRoundTrip(t *testing.T) {
	t.Parallel()

	sk := testSecret(t)
	pk := DerivePublic(sk)
	s := pk.String()

	parsed, err := ParsePublicWebcash(s)
	require.NoError(t, err)
	require.Equal(t, pk, parsed)
}

// TestDerivePublicHashesHexString locks in the detail that DerivePublic
// hashes the secret's hex-encoded string, not its raw 32 bytes.
func TestDerivePublicHashesHexString(t *testing.T) {
	t.Parallel()

	sk := testSecret(t)
	pk := DerivePublic(sk)

	want := sha256.Sum256([]byte(sk.Secret.String()))
	require.Equal(t, want, [32]byte(pk.Hash))

	notWant := sha256.Sum256(sk.Secret[:])
	require.NotEqual(t, notWant, want, "test fixture must distinguish hex-string hashing from raw-byte hashing")
}

func TestWebcashStringNegativeAmountClamped(t *testing.T) {
	t.Parallel()

	sk := testSecret(t)
	sk.Amount = -5
	require.True(t, strings.HasPrefix(sk.String(), "e0:secret:"))
}

func TestParseWebcashStringRejectsWrongKind(t *testing.T) {
	t.Parallel()

	sk := testSecret(t)
	_, err := ParsePublicWebcash(sk.String())
	require.Error(t, err)
}

func TestParseWebcashStringRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"0.03:secret:" + strings.Repeat("ab", 32),
		"e0.03:secret:" + strings.Repeat("ab", 32) + ":extra",
		"e0.03:secret:short",
		"enotanumber:secret:" + strings.Repeat("ab", 32),
	}
	for _, s := range tests {
		_, err := ParseSecretWebcash(s)
		require.Error(t, err, s)
	}
}
