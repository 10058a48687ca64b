package wallet

import (
	"database/sql"
	"fmt"

	"github.com/webcash/walletcore/internal/hdkey"
	"github.com/webcash/walletcore/internal/logger"
	"github.com/webcash/walletcore/internal/sqlbind"
	"github.com/webcash/walletcore/internal/webcash"
)

// AddOutputToWallet inserts one output row (spec.md §4.E) and returns its
// id, or zero on failure. secretID carries nil for SQL NULL when the
// wallet is tracking a hash without holding its preimage.
func (w *Wallet) AddOutputToWallet(pk webcash.PublicWebcash, secretID *int64, spent bool) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addOutputLocked(pk, secretID, spent)
}

func (w *Wallet) addOutputLocked(pk webcash.PublicWebcash, secretID *int64, spent bool) int64 {
	args := map[string]sqlbind.Value{
		"timestamp": sqlbind.IntegerValue(w.nowUnix()),
		"hash":      sqlbind.BlobValue(pk.Hash[:]),
		"amount":    sqlbind.IntegerValue(int64(pk.Amount)),
		"spent":     sqlbind.BoolValue(spent),
	}
	var secretIDVal int64
	if secretID != nil {
		secretIDVal = *secretID
	}
	args["secret_id"] = sqlbind.NullInteger(secretIDVal, secretID != nil)

	res, err := sqlbind.ExecStmt(w.store.DB,
		`INSERT INTO output (timestamp, hash, secret_id, amount, spent)
		 VALUES (:timestamp, :hash, :secret_id, :amount, :spent)`, args)
	if err != nil {
		logger.Error("wallet: unable to insert output:", err)
		return 0
	}
	id, err := res.LastInsertId()
	if err != nil {
		logger.Error("wallet: unable to read output row id:", err)
		return 0
	}
	return id
}

// markOutputSpent sets spent=true for a single output row by id. spec.md
// §4.F: a failure to mark one input spent is logged and processing
// continues — the wallet becomes worse-informed, not wrong-valued.
func (w *Wallet) markOutputSpent(id int64) error {
	_, err := sqlbind.ExecStmt(w.store.DB,
		"UPDATE output SET spent = :spent WHERE id = :id",
		map[string]sqlbind.Value{
			"spent": sqlbind.BoolValue(true),
			"id":    sqlbind.IntegerValue(id),
		})
	return err
}

// ListOutputs enumerates every output row with the given spent status, for
// callers (such as a future coin-selection step, or diagnostics) that need
// the raw rows rather than Balances' per-category totals.
func (w *Wallet) ListOutputs(spent bool) ([]OutputRow, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := sqlbind.Query(w.store.DB,
		"SELECT id, hash, secret_id, amount, spent FROM output WHERE spent = :spent",
		map[string]sqlbind.Value{"spent": sqlbind.BoolValue(spent)})
	if err != nil {
		return nil, fmt.Errorf("wallet: unable to enumerate outputs: %w", err)
	}
	defer rows.Close()

	var out []OutputRow
	for rows.Next() {
		var or OutputRow
		var hash []byte
		var secretID sql.NullInt64
		if err := rows.Scan(&or.ID, &hash, &secretID, &or.Amount, &or.Spent); err != nil {
			return nil, fmt.Errorf("wallet: unable to scan output row: %w", err)
		}
		copy(or.Hash[:], hash)
		or.HasSecretID = secretID.Valid
		or.SecretID = secretID.Int64
		out = append(out, or)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Balances enumerates output totals grouped by category, filtered by
// spent. Outputs without a bound secret are reported under the "unused"
// pseudo-category.
func (w *Wallet) Balances(spent bool) ([]CategoryBalance, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := sqlbind.Query(w.store.DB,
		`SELECT s.mine, s.sweep, SUM(o.amount), COUNT(*)
		 FROM output o JOIN secret s ON o.secret_id = s.id
		 WHERE o.spent = :spent
		 GROUP BY s.mine, s.sweep`,
		map[string]sqlbind.Value{"spent": sqlbind.BoolValue(spent)})
	if err != nil {
		return nil, fmt.Errorf("wallet: unable to enumerate balances: %w", err)
	}
	defer rows.Close()

	var out []CategoryBalance
	for rows.Next() {
		var mine, sweep bool
		var amount int64
		var count int
		if err := rows.Scan(&mine, &sweep, &amount, &count); err != nil {
			return nil, fmt.Errorf("wallet: unable to scan balance row: %w", err)
		}
		cat := hdkey.Category{Mine: mine, Sweep: sweep}
		out = append(out, CategoryBalance{Category: cat.Name(), Amount: amount, Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	unusedRow, err := sqlbind.QueryRow(w.store.DB,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM output WHERE spent = :spent AND secret_id IS NULL`,
		map[string]sqlbind.Value{"spent": sqlbind.BoolValue(spent)})
	if err != nil {
		return nil, err
	}
	var unusedAmount int64
	var unusedCount int
	if err := unusedRow.Scan(&unusedAmount, &unusedCount); err != nil {
		return nil, fmt.Errorf("wallet: unable to scan unused balance row: %w", err)
	}
	if unusedCount > 0 {
		out = append(out, CategoryBalance{Category: hdkey.Unused, Amount: unusedAmount, Count: unusedCount})
	}

	return out, nil
}
