package walletdb

import (
	"fmt"
	"os"
)

// RecoveryLog is the narrow append-line-and-flush collaborator spec.md §9
// calls for, so the Wallet can be tested against an in-memory log instead
// of the filesystem.
type RecoveryLog interface {
	AppendLine(line string) error
}

// FileRecoveryLog is the durable, append-only plaintext log at P.bak. Every
// line is flushed (fsync'd) before AppendLine returns, since the recovery
// log line for a secret must be durable before the corresponding database
// row is inserted (spec.md §4.H, §5).
type FileRecoveryLog struct {
	f *os.File
}

// OpenFileRecoveryLog opens (creating if absent) the recovery log at path.
func OpenFileRecoveryLog(path string) (*FileRecoveryLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("walletdb: unable to open/create wallet recovery file: %w", err)
	}
	return &FileRecoveryLog{f: f}, nil
}

// AppendLine writes line followed by a newline and fsyncs before returning.
func (l *FileRecoveryLog) AppendLine(line string) error {
	if _, err := l.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("walletdb: recovery log write failed: %w", err)
	}
	return l.f.Sync()
}

// Close releases the underlying file handle.
func (l *FileRecoveryLog) Close() error {
	return l.f.Close()
}

// MemoryRecoveryLog is an in-memory RecoveryLog for tests.
type MemoryRecoveryLog struct {
	Lines []string
}

// AppendLine appends line to the in-memory log. Never fails.
func (l *MemoryRecoveryLog) AppendLine(line string) error {
	l.Lines = append(l.Lines, line)
	return nil
}

// FailingRecoveryLog always fails AppendLine, for exercising spec.md §7
// kind 2 (recovery-log write failure at secret creation).
type FailingRecoveryLog struct {
	Err error
}

// AppendLine always returns the configured error.
func (l *FailingRecoveryLog) AppendLine(string) error {
	if l.Err != nil {
		return l.Err
	}
	return fmt.Errorf("walletdb: recovery log unavailable")
}
