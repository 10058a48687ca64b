package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcceptTermsIdempotent(t *testing.T) {
	t.Parallel()

	w := openTestWallet(t)

	have, err := w.HaveAcceptedTerms()
	require.NoError(t, err)
	require.False(t, have)

	require.NoError(t, w.AcceptTerms("terms body v1"))
	require.NoError(t, w.AcceptTerms("terms body v1"))

	accepted, err := w.AreTermsAccepted("terms body v1")
	require.NoError(t, err)
	require.True(t, accepted)

	have, err = w.HaveAcceptedTerms()
	require.NoError(t, err)
	require.True(t, have)

	var count int
	row, err := w.store.DB.Query("SELECT COUNT(*) FROM terms WHERE body = ?", "terms body v1")
	require.NoError(t, err)
	require.True(t, row.Next())
	require.NoError(t, row.Scan(&count))
	require.NoError(t, row.Close())
	require.Equal(t, 1, count)
}

func TestAreTermsAcceptedIsExactBodyMatch(t *testing.T) {
	t.Parallel()

	w := openTestWallet(t)
	require.NoError(t, w.AcceptTerms("terms v1"))

	accepted, err := w.AreTermsAccepted("terms v2")
	require.NoError(t, err)
	require.False(t, accepted)
}
