// Package hdkey implements the HD key engine of spec.md §4.D: root
// handling and deterministic derivation of per-(chaincode, category, depth)
// secrets, including the exact category bit encoding of spec.md §3.
package hdkey

// Category is the (mine, sweep) pair that names a derivation chain.
type Category struct {
	Mine  bool
	Sweep bool
}

// Category bucket names, per spec.md §3.
var (
	Receive = Category{Mine: false, Sweep: true}  // bits 0
	Payment = Category{Mine: false, Sweep: false} // bits 1
	Change  = Category{Mine: true, Sweep: false}  // bits 2
	Mining  = Category{Mine: true, Sweep: true}   // bits 3
)

// Bits returns the 2-bit category encoding spec.md §3 mandates:
// (F,T)->0, (F,F)->1, (T,F)->2, (T,T)->3. This exact mapping is part of the
// wallet's durable derivation contract and must never be "cleaned up" into
// a different bit order.
func (c Category) Bits() uint8 {
	switch {
	case !c.Mine && c.Sweep:
		return 0
	case !c.Mine && !c.Sweep:
		return 1
	case c.Mine && !c.Sweep:
		return 2
	default: // c.Mine && c.Sweep
		return 3
	}
}

// Name returns the human-readable category name.
func (c Category) Name() string {
	switch c.Bits() {
	case 0:
		return "receive"
	case 1:
		return "payment"
	case 2:
		return "change"
	default:
		return "mining"
	}
}

// Unused is the pseudo-category for a secret not yet bound to any chain.
const Unused = "unused"

// AllCategories lists the four (mine, sweep) buckets created for a fresh
// HD root (spec.md §3): the Cartesian product of mine,sweep in {false,true}.
var AllCategories = []Category{
	{Mine: false, Sweep: false},
	{Mine: false, Sweep: true},
	{Mine: true, Sweep: false},
	{Mine: true, Sweep: true},
}
