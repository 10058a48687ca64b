package walletdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDBAndBakFiles(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "P")
	store, err := Open(base)
	require.NoError(t, err)
	defer store.Close()

	require.FileExists(t, base+".db")
	require.FileExists(t, base+".bak")
}

func TestOpenIsIdempotentOnSchema(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "P")
	store, err := Open(base)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Re-opening an existing database must not fail the CREATE TABLE IF
	// NOT EXISTS migration.
	store2, err := Open(base)
	require.NoError(t, err)
	require.NoError(t, store2.Close())
}

func TestOpenFailsWhenAlreadyLocked(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "P")
	store, err := Open(base)
	require.NoError(t, err)
	defer store.Close()

	_, err = Open(base)
	require.Error(t, err)
}

func TestRecoveryLogAppendLine(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "P")
	store, err := Open(base)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Log.AppendLine("1 hdroot abcd version=1"))
}
