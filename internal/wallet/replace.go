package wallet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/webcash/walletcore/internal/logger"
	"github.com/webcash/walletcore/internal/sqlbind"
	"github.com/webcash/walletcore/internal/webcash"
)

const replacePath = "/api/v1/replace"

// ReplaceResult pairs a newly reserved secret with the database row id of
// the output the commit phase created for it.
type ReplaceResult struct {
	Secret   WalletSecret
	OutputID int64
}

type replaceWireRequest struct {
	Webcashes    []string      `json:"webcashes"`
	NewWebcashes []string      `json:"new_webcashes"`
	Legalese     legaleseField `json:"legalese"`
}

type legaleseField struct {
	Terms bool `json:"terms"`
}

type inputRow struct {
	outputID  int64
	secretID  int64
	secretHex string
	amount    int64
	spent     bool
}

// Replace implements spec.md §4.F: it swaps the unspent outputs named by
// inputOutputIDs for freshly-derived outputs totalling outputAmounts,
// atomically from the wallet's point of view. On any precondition
// violation or transport/HTTP failure, it returns an error and makes no
// durable state change beyond the deliberately-early secret reservation
// described in the non-atomicity note below.
func (w *Wallet) Replace(ctx context.Context, inputOutputIDs []int64, outputAmounts []webcash.Amount) ([]ReplaceResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// IDLE -> VALIDATED
	inputs, err := w.loadInputRows(inputOutputIDs)
	if err != nil {
		return nil, err
	}
	if err := validateReplacePreconditions(inputs, outputAmounts); err != nil {
		return nil, err
	}

	// Reserve the new secrets now, under the configured change category
	// (spec.md §9 Open Question), and write each to the recovery log
	// before the server is ever contacted: the log must see every newly
	// derived secret before it could become economically significant,
	// regardless of how the network call turns out (spec.md §4.F
	// non-atomicity note).
	reserved := make([]WalletSecret, 0, len(outputAmounts))
	for _, amount := range outputAmounts {
		ws, err := w.reserveSecretLocked(w.changeCategory)
		if err != nil {
			return nil, fmt.Errorf("wallet: unable to reserve change secret: %w", err)
		}
		line := fmt.Sprintf("%d %s %s", w.nowUnix(), categoryLogEvent(w.changeCategory),
			(webcash.SecretWebcash{Amount: amount, Secret: mustParseDigest(ws.Secret)}).String())
		if err := w.store.Log.AppendLine(line); err != nil {
			logger.Warn("BACKUP THIS KEY NOW:", ws.Secret, "recovery log write failed:", err)
		}
		reserved = append(reserved, ws)
	}

	req := replaceWireRequest{Legalese: legaleseField{Terms: true}}
	for _, in := range inputs {
		sk := webcash.SecretWebcash{Amount: webcash.Amount(in.amount), Secret: mustParseDigest(in.secretHex)}
		req.Webcashes = append(req.Webcashes, sk.String())
	}
	for i, ws := range reserved {
		sk := webcash.SecretWebcash{Amount: outputAmounts[i], Secret: mustParseDigest(ws.Secret)}
		req.NewWebcashes = append(req.NewWebcashes, sk.String())
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("wallet: unable to encode replace request: %w", err)
	}

	// VALIDATED -> SUBMITTED
	status, respBody, err := w.transport.Do(ctx, "POST", replacePath, body, "application/json")
	if err != nil {
		// SUBMITTED -> NETWORK_ERR -> IDLE: no durable state change.
		return nil, fmt.Errorf("wallet: replace request failed: %w", err)
	}
	if status != 200 {
		// SUBMITTED -> HTTP_ERR -> IDLE: no durable state change.
		return nil, fmt.Errorf("wallet: replace rejected with status %d: %s", status, respBody)
	}

	// SUBMITTED -> COMMITTED: the only path that mutates the ledger.
	return w.commitReplace(inputs, reserved, outputAmounts), nil
}

func (w *Wallet) loadInputRows(outputIDs []int64) ([]inputRow, error) {
	rows := make([]inputRow, 0, len(outputIDs))
	for _, id := range outputIDs {
		row, err := sqlbind.QueryRow(w.store.DB,
			`SELECT o.id, o.secret_id, s.secret, o.amount, o.spent
			 FROM output o LEFT JOIN secret s ON o.secret_id = s.id
			 WHERE o.id = :id`,
			map[string]sqlbind.Value{"id": sqlbind.IntegerValue(id)})
		if err != nil {
			return nil, err
		}
		var ir inputRow
		var secretID sql.NullInt64
		var secretHex sql.NullString
		if err := row.Scan(&ir.outputID, &secretID, &secretHex, &ir.amount, &ir.spent); err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("wallet: replace input %d: no such output", id)
			}
			return nil, fmt.Errorf("wallet: unable to load replace input %d: %w", id, err)
		}
		if !secretID.Valid || !secretHex.Valid {
			return nil, fmt.Errorf("wallet: replace input %d: no known secret", id)
		}
		ir.secretID = secretID.Int64
		ir.secretHex = secretHex.String
		rows = append(rows, ir)
	}
	return rows, nil
}

// validateReplacePreconditions implements spec.md §4.F's precondition
// checks: every check here must pass before the server is ever contacted.
func validateReplacePreconditions(inputs []inputRow, outputs []webcash.Amount) error {
	if len(inputs) == 0 {
		return fmt.Errorf("wallet: replace requires at least one input")
	}
	if len(outputs) == 0 {
		return fmt.Errorf("wallet: replace requires at least one output")
	}

	var inSum webcash.Amount
	for _, in := range inputs {
		if in.spent {
			return fmt.Errorf("wallet: replace input %d is already spent", in.outputID)
		}
		if in.amount < 1 {
			return fmt.Errorf("wallet: replace input %d has non-positive amount %d", in.outputID, in.amount)
		}
		var err error
		inSum, err = inSum.Add(webcash.Amount(in.amount))
		if err != nil {
			return fmt.Errorf("wallet: replace input sum overflow: %w", err)
		}
	}

	var outSum webcash.Amount
	for _, amount := range outputs {
		if amount < 1 {
			return fmt.Errorf("wallet: replace output has non-positive amount %d", amount)
		}
		var err error
		outSum, err = outSum.Add(amount)
		if err != nil {
			return fmt.Errorf("wallet: replace output sum overflow: %w", err)
		}
	}

	if inSum != outSum {
		return fmt.Errorf("wallet: replace conservation violated: inputs sum to %s, outputs to %s", inSum, outSum)
	}
	return nil
}

// commitReplace is the commit phase of spec.md §4.F: the server has
// already confirmed the exchange, so every row change here is best-effort
// — a failure to mark one input spent, or to insert one output, is
// logged and processing continues.
func (w *Wallet) commitReplace(inputs []inputRow, reserved []WalletSecret, outputAmounts []webcash.Amount) []ReplaceResult {
	for _, in := range inputs {
		if err := w.markOutputSpent(in.outputID); err != nil {
			logger.Error("wallet: unable to mark replace input", in.outputID, "spent:", err)
		}
	}

	results := make([]ReplaceResult, 0, len(reserved))
	for i, ws := range reserved {
		sk := webcash.SecretWebcash{Amount: outputAmounts[i], Secret: mustParseDigest(ws.Secret)}
		pk := webcash.DerivePublic(sk)
		secretID := ws.ID
		outputID := w.addOutputLocked(pk, &secretID, false)
		if outputID == 0 {
			logger.Error("wallet: unable to insert replace output for secret id", ws.ID)
			continue
		}
		results = append(results, ReplaceResult{Secret: ws, OutputID: outputID})
	}
	return results
}

func mustParseDigest(hexSecret string) webcash.Digest {
	d, err := webcash.ParseDigest(hexSecret)
	if err != nil {
		// hexSecret always comes from hdkey.Derive or the secret table, both
		// of which only ever produce 64-character lowercase hex.
		panic(fmt.Sprintf("wallet: invariant violated: malformed secret hex %q: %v", hexSecret, err))
	}
	return d
}
