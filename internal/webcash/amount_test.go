package webcash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountAddOverflow(t *testing.T) {
	t.Parallel()

	_, err := Amount(1 << 62).Add(Amount(1 << 62))
	require.Error(t, err)

	_, err = Amount(-(1 << 62)).Add(Amount(-(1 << 62) - 1))
	require.Error(t, err)

	sum, err := Amount(100).Add(Amount(-30))
	require.NoError(t, err)
	require.Equal(t, Amount(70), sum)
}

func TestAmountSign(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, Amount(5).Sign())
	require.Equal(t, -1, Amount(-5).Sign())
	require.Equal(t, 0, Amount(0).Sign())
}

func TestAmountString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount Amount
		want   string
	}{
		{0, "0"},
		{100000000, "1"},
		{3000000, "0.03"},
		{150000000, "1.5"},
		{1, "0.00000001"},
		{-3000000, "-0.03"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tc.amount.String())
	}
}

func TestParseDecimalAmountRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{"0", "1", "0.03", "1.5", "0.00000001", "-0.03", "123.456"}
	for _, s := range tests {
		a, err := ParseDecimalAmount(s)
		require.NoError(t, err, s)
		require.Equal(t, s, a.String(), s)
	}
}

func TestParseDecimalAmountRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []string{"", "-", "01", "1.", ".5", "1.123456789", "abc", "1.2.3"}
	for _, s := range tests {
		_, err := ParseDecimalAmount(s)
		require.Error(t, err, s)
	}
}
