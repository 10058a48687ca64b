// Package walletdb implements the Store lifecycle (spec.md §4.C) and the
// recovery log (spec.md §4.H): opening the sibling P.db/P.bak files that
// back a wallet, taking the inter-process file lock, and running the
// idempotent schema migration.
package walletdb

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/webcash/walletcore/internal/sqlbind"
)

// Store owns the open database handle, the process-exclusive file lock on
// it, and the recovery log writer. It has no wallet-domain knowledge; that
// lives in the internal/wallet package, which embeds a *Store.
type Store struct {
	DB  *sql.DB
	Log RecoveryLog

	dbPath string
	lock   *flock.Flock
}

// Open opens (creating if absent) the database at basePath+".db" and the
// recovery log at basePath+".bak", takes an exclusive non-blocking lock on
// the database file, and runs the schema migration. Failure to acquire the
// lock, open the database, or migrate the schema is fatal (spec.md §7
// kind 1): "wallet is in use" or the underlying error is returned.
func Open(basePath string) (*Store, error) {
	dbPath := basePath + ".db"
	bakPath := basePath + ".bak"

	// Create the database file if absent, so the file-locking primitive has
	// something to lock even before sqlite3 has opened it.
	if f, err := os.OpenFile(dbPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); err != nil {
		return nil, fmt.Errorf("walletdb: unable to create wallet database file: %w", err)
	} else {
		f.Close()
	}

	lock := flock.New(dbPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("walletdb: unable to lock wallet database: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("walletdb: wallet is in use")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("walletdb: unable to open/create wallet database file: %w", err)
	}
	// The wallet mutex in internal/wallet already serializes every public
	// entry point, so a single connection is sufficient and keeps
	// transaction semantics simple.
	db.SetMaxOpenConns(1)

	if err := sqlbind.Exec(db, schemaSQL, nil); err != nil {
		db.Close()
		lock.Unlock()
		return nil, fmt.Errorf("walletdb: schema migration failed: %w", err)
	}

	log, err := OpenFileRecoveryLog(bakPath)
	if err != nil {
		db.Close()
		lock.Unlock()
		return nil, err
	}

	return &Store{DB: db, Log: log, dbPath: dbPath, lock: lock}, nil
}

// Close releases the recovery log handle, the database handle, and the
// file lock, in that order. Zeroising the in-memory HD root is the
// caller's (internal/wallet.Wallet's) responsibility since Store does not
// hold it.
func (s *Store) Close() error {
	var firstErr error
	if fl, ok := s.Log.(*FileRecoveryLog); ok {
		if err := fl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.DB.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("walletdb: error closing database, possible data loss: %w", err)
	}
	if err := s.lock.Unlock(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
