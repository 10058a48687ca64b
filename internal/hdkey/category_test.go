package hdkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cat  Category
		bits uint8
		name string
	}{
		{Category{Mine: false, Sweep: true}, 0, "receive"},
		{Category{Mine: false, Sweep: false}, 1, "payment"},
		{Category{Mine: true, Sweep: false}, 2, "change"},
		{Category{Mine: true, Sweep: true}, 3, "mining"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.bits, tc.cat.Bits(), tc.name)
		require.Equal(t, tc.name, tc.cat.Name())
	}
}

func TestNamedCategoryConstants(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint8(0), Receive.Bits())
	require.Equal(t, uint8(1), Payment.Bits())
	require.Equal(t, uint8(2), Change.Bits())
	require.Equal(t, uint8(3), Mining.Bits())
}

func TestAllCategoriesCoversCartesianProduct(t *testing.T) {
	t.Parallel()

	require.Len(t, AllCategories, 4)
	seen := map[uint8]bool{}
	for _, c := range AllCategories {
		seen[c.Bits()] = true
	}
	require.Len(t, seen, 4)
}
