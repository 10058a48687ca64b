package wallet

import (
	"database/sql"
	"fmt"

	"github.com/webcash/walletcore/internal/hdkey"
	"github.com/webcash/walletcore/internal/logger"
	"github.com/webcash/walletcore/internal/sqlbind"
	"github.com/webcash/walletcore/internal/webcash"
)

// categoryLogEvent maps a category to the recovery log event name of
// spec.md §4.H. The misspelling "recieve" is part of the on-disk format
// and must be preserved exactly for backward-compatible recovery.
func categoryLogEvent(cat hdkey.Category) string {
	switch cat.Bits() {
	case 0:
		return "recieve"
	case 1:
		return "pay"
	case 2:
		return "change"
	default:
		return "mining"
	}
}

// ReserveSecret derives the next secret on the (chaincode=0, mine, sweep)
// chain, inserts it (idempotent-merge per spec.md §3) and its HDKey
// binding in one transaction, and advances the chain's maxdepth. The
// caller is responsible for writing the returned secret to the recovery
// log before any externally-observable use (spec.md §4.D) — ReserveSecret
// itself does not touch the log, unlike AddSecretToWallet.
func (w *Wallet) ReserveSecret(mine, sweep bool) (WalletSecret, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reserveSecretLocked(hdkey.Category{Mine: mine, Sweep: sweep})
}

// reserveSecretLocked is ReserveSecret's body, callable by other wallet
// operations (namely Replace) that already hold w.mu.
func (w *Wallet) reserveSecretLocked(cat hdkey.Category) (WalletSecret, error) {
	chainID, maxdepth, err := w.chainRow(cat)
	if err != nil {
		return WalletSecret{}, err
	}

	secretHex := hdkey.Derive(w.root, 0, cat, maxdepth)
	ts := w.nowUnix()

	tx, err := w.store.DB.Begin()
	if err != nil {
		return WalletSecret{}, fmt.Errorf("wallet: unable to begin reserve-secret transaction: %w", err)
	}

	secretID, err := upsertSecret(tx, ts, secretHex, cat.Mine, cat.Sweep)
	if err != nil {
		tx.Rollback()
		return WalletSecret{}, err
	}
	if _, err := sqlbind.ExecStmt(tx,
		"INSERT INTO hdkey (hdchain_id, depth, secret_id) VALUES (:hdchain_id, :depth, :secret_id)",
		map[string]sqlbind.Value{
			"hdchain_id": sqlbind.IntegerValue(chainID),
			"depth":      sqlbind.IntegerValue(int64(maxdepth)),
			"secret_id":  sqlbind.IntegerValue(secretID),
		}); err != nil {
		tx.Rollback()
		return WalletSecret{}, fmt.Errorf("wallet: unable to insert hdkey row: %w", err)
	}
	if _, err := sqlbind.ExecStmt(tx,
		"UPDATE hdchain SET maxdepth = :maxdepth WHERE id = :id",
		map[string]sqlbind.Value{
			"maxdepth": sqlbind.IntegerValue(int64(maxdepth + 1)),
			"id":       sqlbind.IntegerValue(chainID),
		}); err != nil {
		tx.Rollback()
		return WalletSecret{}, fmt.Errorf("wallet: unable to advance chain maxdepth: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return WalletSecret{}, fmt.Errorf("wallet: unable to commit reserve-secret: %w", err)
	}

	return WalletSecret{ID: secretID, Secret: secretHex, Category: cat, Depth: maxdepth}, nil
}

// chainRow returns the id and current maxdepth of the (chaincode=0, mine,
// sweep) chain created at root-creation time.
func (w *Wallet) chainRow(cat hdkey.Category) (id int64, maxdepth uint64, err error) {
	row, err := sqlbind.QueryRow(w.store.DB,
		"SELECT id, maxdepth FROM hdchain WHERE chaincode = 0 AND mine = :mine AND sweep = :sweep",
		map[string]sqlbind.Value{
			"mine":  sqlbind.BoolValue(cat.Mine),
			"sweep": sqlbind.BoolValue(cat.Sweep),
		})
	if err != nil {
		return 0, 0, err
	}
	var depth int64
	if err := row.Scan(&id, &depth); err != nil {
		return 0, 0, fmt.Errorf("wallet: unable to load hdchain (mine=%v sweep=%v): %w", cat.Mine, cat.Sweep, err)
	}
	return id, uint64(depth), nil
}

// upsertSecret implements the secret merge rule of spec.md §3:
// mine_new := mine_old AND mine_incoming, sweep_new := sweep_old OR
// sweep_incoming. Returns the row id of the inserted or pre-existing row.
func upsertSecret(tx *sql.Tx, timestamp int64, secretHex string, mine, sweep bool) (int64, error) {
	row, err := sqlbind.QueryRow(tx, "SELECT id, mine, sweep FROM secret WHERE secret = :secret",
		map[string]sqlbind.Value{"secret": sqlbind.TextValue(secretHex)})
	if err != nil {
		return 0, err
	}

	var id int64
	var oldMine, oldSweep bool
	switch err := row.Scan(&id, &oldMine, &oldSweep); err {
	case nil:
		newMine := oldMine && mine
		newSweep := oldSweep || sweep
		if _, err := sqlbind.ExecStmt(tx, "UPDATE secret SET mine = :mine, sweep = :sweep WHERE id = :id",
			map[string]sqlbind.Value{
				"mine":  sqlbind.BoolValue(newMine),
				"sweep": sqlbind.BoolValue(newSweep),
				"id":    sqlbind.IntegerValue(id),
			}); err != nil {
			return 0, fmt.Errorf("wallet: unable to merge secret flags: %w", err)
		}
		return id, nil
	case sql.ErrNoRows:
		res, err := sqlbind.ExecStmt(tx,
			"INSERT INTO secret (timestamp, secret, mine, sweep) VALUES (:timestamp, :secret, :mine, :sweep)",
			map[string]sqlbind.Value{
				"timestamp": sqlbind.IntegerValue(timestamp),
				"secret":    sqlbind.TextValue(secretHex),
				"mine":      sqlbind.BoolValue(mine),
				"sweep":     sqlbind.BoolValue(sweep),
			})
		if err != nil {
			return 0, fmt.Errorf("wallet: unable to insert secret: %w", err)
		}
		return res.LastInsertId()
	default:
		return 0, fmt.Errorf("wallet: unable to look up secret: %w", err)
	}
}

// AddSecretToWallet implements spec.md §4.E: the recovery log line is
// appended and flushed first; a failure there is logged loudly but does
// NOT abort the operation, because the database remains the operational
// source of truth for current state (spec.md §7 kind 2, §9 Open Question).
// Returns the row id of the freshly-inserted (or pre-existing) secret, or
// zero on database failure.
func (w *Wallet) AddSecretToWallet(sk webcash.SecretWebcash, mine, sweep bool) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	cat := hdkey.Category{Mine: mine, Sweep: sweep}
	ts := w.nowUnix()
	line := fmt.Sprintf("%d %s %s", ts, categoryLogEvent(cat), sk.String())

	if err := w.store.Log.AppendLine(line); err != nil {
		logger.Warn("BACKUP THIS KEY NOW:", sk.String(), "recovery log write failed:", err)
	}

	tx, err := w.store.DB.Begin()
	if err != nil {
		logger.Error("wallet: unable to begin add-secret transaction:", err)
		return 0
	}
	id, err := upsertSecret(tx, ts, sk.Secret.String(), mine, sweep)
	if err != nil {
		tx.Rollback()
		logger.Error(err)
		return 0
	}
	if err := tx.Commit(); err != nil {
		logger.Error("wallet: unable to commit add-secret:", err)
		return 0
	}
	return id
}
