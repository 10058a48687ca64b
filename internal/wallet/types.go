package wallet

import "github.com/webcash/walletcore/internal/hdkey"

// WalletSecret is what ReserveSecret hands back to its caller: the row id
// of the freshly-inserted secret and the derived hex secret itself. The
// caller is responsible for writing it to the recovery log before any
// externally observable use (spec.md §4.D).
type WalletSecret struct {
	ID       int64
	Secret   string
	Category hdkey.Category
	Depth    uint64
}

// CategoryBalance is one row of a balance enumeration: the total amount of
// outputs in a given category, taken from the (mine, sweep) flags of each
// output's bound secret row.
type CategoryBalance struct {
	Category string
	Amount   int64
	Count    int
}

// OutputRow mirrors the Output entity of spec.md §3. HasSecretID is false
// when the wallet only knows the output's public hash, with no bound
// secret row (spec.md §4.E's secretID-may-be-nil case).
type OutputRow struct {
	ID          int64
	Hash        [32]byte
	SecretID    int64
	HasSecretID bool
	Amount      int64
	Spent       bool
}
