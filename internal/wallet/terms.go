package wallet

import (
	"fmt"

	"github.com/webcash/walletcore/internal/sqlbind"
)

// HaveAcceptedTerms reports whether *any* terms of service have been
// accepted, grounded on original_source/wallet.cc's
// "SELECT EXISTS(SELECT 1 FROM 'terms')".
func (w *Wallet) HaveAcceptedTerms() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	row, err := sqlbind.QueryRow(w.store.DB, "SELECT EXISTS(SELECT 1 FROM terms)", nil)
	if err != nil {
		return false, err
	}
	var any bool
	if err := row.Scan(&any); err != nil {
		return false, fmt.Errorf("wallet: fatal: unable to query terms: %w", err)
	}
	return any, nil
}

// AreTermsAccepted reports whether the exact body has been accepted.
// Matching is byte-exact.
func (w *Wallet) AreTermsAccepted(body string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.areTermsAcceptedLocked(body)
}

func (w *Wallet) areTermsAcceptedLocked(body string) (bool, error) {
	row, err := sqlbind.QueryRow(w.store.DB,
		"SELECT EXISTS(SELECT 1 FROM terms WHERE body = :body)",
		map[string]sqlbind.Value{"body": sqlbind.TextValue(body)})
	if err != nil {
		return false, err
	}
	var have bool
	if err := row.Scan(&have); err != nil {
		return false, fmt.Errorf("wallet: fatal: unable to query terms: %w", err)
	}
	return have, nil
}

// AcceptTerms records body as accepted, idempotently: a second call with
// the same body is a no-op.
func (w *Wallet) AcceptTerms(body string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	accepted, err := w.areTermsAcceptedLocked(body)
	if err != nil {
		return err
	}
	if accepted {
		return nil
	}

	_, err = sqlbind.ExecStmt(w.store.DB,
		"INSERT INTO terms (body, timestamp) VALUES (:body, :timestamp)",
		map[string]sqlbind.Value{
			"body":      sqlbind.TextValue(body),
			"timestamp": sqlbind.IntegerValue(w.nowUnix()),
		})
	if err != nil {
		return fmt.Errorf("wallet: unable to accept terms: %w", err)
	}
	return nil
}
