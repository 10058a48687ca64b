package wallet

import (
	"crypto/rand"
	"database/sql"
	"fmt"

	"github.com/webcash/walletcore/internal/hdkey"
	"github.com/webcash/walletcore/internal/sqlbind"
)

// getOrCreateHDRoot implements spec.md §4.D's root bootstrap: zero rows
// means a fresh wallet (create root + four chains), one row means load (and
// validate), more than one row is fatal corruption.
func getOrCreateHDRoot(w *Wallet) (hdkey.Root, error) {
	row, err := sqlbind.QueryRow(w.store.DB, "SELECT COUNT(*) FROM hdroot", nil)
	if err != nil {
		return hdkey.Root{}, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return hdkey.Root{}, fmt.Errorf("wallet: unable to count hdroot rows: %w", err)
	}

	switch {
	case count == 0:
		return createHDRoot(w)
	case count == 1:
		return loadHDRoot(w)
	default:
		return hdkey.Root{}, fmt.Errorf("wallet: fatal: more than one hdroot row (%d)", count)
	}
}

func createHDRoot(w *Wallet) (hdkey.Root, error) {
	raw := make([]byte, hdkey.RootSize)
	if _, err := rand.Read(raw); err != nil {
		return hdkey.Root{}, fmt.Errorf("wallet: unable to generate HD root randomness: %w", err)
	}
	defer func() {
		for i := range raw {
			raw[i] = 0
		}
	}()

	ts := w.nowUnix()
	line := fmt.Sprintf("%d hdroot %x version=1", ts, raw)
	// The recovery log line for the root must be durable before the root is
	// ever inserted into the database: there is no way to recover a root
	// that was never logged, so unlike the ordinary secret-creation path
	// (spec.md §7 kind 2), a failure here is fatal.
	if err := w.store.Log.AppendLine(line); err != nil {
		return hdkey.Root{}, fmt.Errorf("wallet: unable to write HD root to recovery log: %w", err)
	}

	tx, err := w.store.DB.Begin()
	if err != nil {
		return hdkey.Root{}, fmt.Errorf("wallet: unable to begin root creation transaction: %w", err)
	}

	rootID, err := insertHDRoot(tx, ts, raw)
	if err != nil {
		tx.Rollback()
		return hdkey.Root{}, err
	}
	for _, cat := range hdkey.AllCategories {
		if err := insertHDChain(tx, rootID, 0, cat); err != nil {
			tx.Rollback()
			return hdkey.Root{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return hdkey.Root{}, fmt.Errorf("wallet: unable to commit root creation: %w", err)
	}

	return hdkey.NewRoot(raw), nil
}

func insertHDRoot(tx *sql.Tx, timestamp int64, secret []byte) (int64, error) {
	res, err := sqlbind.ExecStmt(tx,
		"INSERT INTO hdroot (timestamp, version, secret) VALUES (:timestamp, :version, :secret)",
		map[string]sqlbind.Value{
			"timestamp": sqlbind.IntegerValue(timestamp),
			"version":   sqlbind.IntegerValue(1),
			"secret":    sqlbind.BlobValue(secret),
		})
	if err != nil {
		return 0, fmt.Errorf("wallet: unable to insert hdroot: %w", err)
	}
	return res.LastInsertId()
}

func insertHDChain(tx *sql.Tx, rootID, chaincode int64, cat hdkey.Category) error {
	_, err := sqlbind.ExecStmt(tx,
		`INSERT INTO hdchain (hdroot_id, chaincode, mine, sweep, mindepth, maxdepth)
		 VALUES (:hdroot_id, :chaincode, :mine, :sweep, :mindepth, :maxdepth)`,
		map[string]sqlbind.Value{
			"hdroot_id": sqlbind.IntegerValue(rootID),
			"chaincode": sqlbind.IntegerValue(chaincode),
			"mine":      sqlbind.BoolValue(cat.Mine),
			"sweep":     sqlbind.BoolValue(cat.Sweep),
			"mindepth":  sqlbind.IntegerValue(0),
			"maxdepth":  sqlbind.IntegerValue(0),
		})
	if err != nil {
		return fmt.Errorf("wallet: unable to insert hdchain (mine=%v sweep=%v): %w", cat.Mine, cat.Sweep, err)
	}
	return nil
}

func loadHDRoot(w *Wallet) (hdkey.Root, error) {
	row, err := sqlbind.QueryRow(w.store.DB, "SELECT version, secret FROM hdroot LIMIT 1", nil)
	if err != nil {
		return hdkey.Root{}, err
	}
	var version int64
	var secret []byte
	if err := row.Scan(&version, &secret); err != nil {
		return hdkey.Root{}, fmt.Errorf("wallet: unable to load hdroot: %w", err)
	}

	if version != 1 {
		return hdkey.Root{}, fmt.Errorf("wallet: fatal: unknown hdroot version %d", version)
	}
	if len(secret) < 16 || len(secret) > 32 {
		return hdkey.Root{}, fmt.Errorf("wallet: fatal: hdroot secret length %d out of range [16,32]", len(secret))
	}

	return hdkey.NewRoot(secret), nil
}
