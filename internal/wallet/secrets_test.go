package wallet

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webcash/walletcore/internal/hdkey"
	"github.com/webcash/walletcore/internal/webcash"
)

// TestReserveSecretThenAdvance is spec.md §8 scenario 3.
func TestReserveSecretThenAdvance(t *testing.T) {
	t.Parallel()

	w := openTestWallet(t)

	first, err := w.ReserveSecret(false, true)
	require.NoError(t, err)
	second, err := w.ReserveSecret(false, true)
	require.NoError(t, err)

	require.NotEqual(t, first.Secret, second.Secret)
	require.Equal(t, uint64(0), first.Depth)
	require.Equal(t, uint64(1), second.Depth)

	_, maxdepth, err := w.chainRow(hdkey.Receive)
	require.NoError(t, err)
	require.Equal(t, uint64(2), maxdepth)
}

func TestCategoryLogEventNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, "recieve", categoryLogEvent(hdkey.Receive))
	require.Equal(t, "pay", categoryLogEvent(hdkey.Payment))
	require.Equal(t, "change", categoryLogEvent(hdkey.Change))
	require.Equal(t, "mining", categoryLogEvent(hdkey.Mining))
}

// TestAddSecretToWalletMergeRule is spec.md §8's idempotence law: calling
// AddSecretToWallet twice with the same sk returns the same row id, with
// mine/sweep merged per the AND/OR rule.
func TestAddSecretToWalletMergeRule(t *testing.T) {
	t.Parallel()

	w := openTestWallet(t)
	d, err := webcash.ParseDigest("ab" + strings.Repeat("00", 30) + "cd")
	require.NoError(t, err)
	sk := webcash.SecretWebcash{Amount: 10, Secret: d}

	id1 := w.AddSecretToWallet(sk, true, false)
	require.NotZero(t, id1)
	id2 := w.AddSecretToWallet(sk, false, true)
	require.Equal(t, id1, id2)

	var mine, sweep bool
	row, err := w.store.DB.Query("SELECT mine, sweep FROM secret WHERE id = ?", id1)
	require.NoError(t, err)
	require.True(t, row.Next())
	require.NoError(t, row.Scan(&mine, &sweep))
	require.NoError(t, row.Close())

	require.False(t, mine) // true AND false -> false
	require.True(t, sweep) // false OR true -> true
}

func TestAddSecretToWalletSurvivesRecoveryLogFailure(t *testing.T) {
	t.Parallel()

	w := openTestWallet(t)
	w.store.Log = &failingLog{}

	d, err := webcash.ParseDigest(strings.Repeat("11", 31) + "22")
	require.NoError(t, err)
	sk := webcash.SecretWebcash{Amount: 1, Secret: d}

	id := w.AddSecretToWallet(sk, true, true)
	require.NotZero(t, id, "database write must proceed even when the recovery log write fails")
}

type failingLog struct{}

func (*failingLog) AppendLine(string) error { return errors.New("recovery log unavailable") }
