package walletdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRecoveryLogAppendsAndFlushes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "P.bak")
	log, err := OpenFileRecoveryLog(path)
	require.NoError(t, err)

	require.NoError(t, log.AppendLine("line one"))
	require.NoError(t, log.AppendLine("line two"))
	require.NoError(t, log.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "line one\nline two\n", string(contents))
}

func TestMemoryRecoveryLog(t *testing.T) {
	t.Parallel()

	log := &MemoryRecoveryLog{}
	require.NoError(t, log.AppendLine("a"))
	require.NoError(t, log.AppendLine("b"))
	require.Equal(t, []string{"a", "b"}, log.Lines)
}

func TestFailingRecoveryLog(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("disk full")
	log := &FailingRecoveryLog{Err: sentinel}
	require.ErrorIs(t, log.AppendLine("x"), sentinel)

	log2 := &FailingRecoveryLog{}
	require.Error(t, log2.AppendLine("x"))
}
