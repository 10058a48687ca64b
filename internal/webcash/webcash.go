package webcash

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// SecretWebcash is a bearer token: an amount plus the 32-byte secret
// preimage. Anyone holding sk can claim amount.
type SecretWebcash struct {
	Amount Amount
	Secret Digest
}

// PublicWebcash is the amount plus the SHA-256 hash of the secret's hex
// encoding — the form that can be safely shared, since it reveals nothing
// about the preimage.
type PublicWebcash struct {
	Amount Amount
	Hash   Digest
}

// DerivePublic hashes the hex string of sk.Secret, matching the original
// wallet's PublicWebcash(const SecretWebcash&) constructor, which hashes the
// secret's *hex-encoded string*, not its raw 32 bytes. This detail is part
// of the durable hash contract and must not be "simplified" to hashing raw
// bytes.
func DerivePublic(sk SecretWebcash) PublicWebcash {
	hexSecret := sk.Secret.String()
	sum := sha256.Sum256([]byte(hexSecret))
	return PublicWebcash{Amount: sk.Amount, Hash: Digest(sum)}
}

// String renders "eN:secret:HEX". A negative amount is clamped to zero for
// display, matching the original webcash_string's clamp; the Amount value
// itself is left untouched so conservation arithmetic elsewhere still sees
// the true signed value.
func (sk SecretWebcash) String() string {
	return webcashString(sk.Amount, "secret", sk.Secret)
}

// String renders "eN:public:HEX".
func (pk PublicWebcash) String() string {
	return webcashString(pk.Amount, "public", pk.Hash)
}

func webcashString(amount Amount, kind string, d Digest) string {
	if amount < 0 {
		amount = 0
	}
	return fmt.Sprintf("e%s:%s:%s", amount.String(), kind, d.String())
}

// ParseSecretWebcash parses "eN:secret:HEX", failing on any deviation in
// case, length, or prefix.
func ParseSecretWebcash(s string) (SecretWebcash, error) {
	amount, d, err := parseWebcashString(s, "secret")
	if err != nil {
		return SecretWebcash{}, err
	}
	return SecretWebcash{Amount: amount, Secret: d}, nil
}

// ParsePublicWebcash parses "eN:public:HEX".
func ParsePublicWebcash(s string) (PublicWebcash, error) {
	amount, d, err := parseWebcashString(s, "public")
	if err != nil {
		return PublicWebcash{}, err
	}
	return PublicWebcash{Amount: amount, Hash: d}, nil
}

func parseWebcashString(s, wantKind string) (Amount, Digest, error) {
	var zero Digest
	if !strings.HasPrefix(s, "e") {
		return 0, zero, fmt.Errorf("webcash: missing leading 'e' in %q", s)
	}
	rest := s[1:]

	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return 0, zero, fmt.Errorf("webcash: expected 3 colon-separated fields in %q", s)
	}
	amountStr, kind, hexStr := parts[0], parts[1], parts[2]

	if kind != wantKind {
		return 0, zero, fmt.Errorf("webcash: expected type %q, got %q", wantKind, kind)
	}
	amount, err := ParseDecimalAmount(amountStr)
	if err != nil {
		return 0, zero, fmt.Errorf("webcash: invalid amount %q: %w", amountStr, err)
	}
	d, err := ParseDigest(hexStr)
	if err != nil {
		return 0, zero, err
	}
	return amount, d, nil
}
