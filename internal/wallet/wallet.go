// Package wallet is the Wallet core of spec.md: it wires the HD key engine
// (internal/hdkey), the Store (internal/walletdb), and the replace
// protocol together behind a single process-wide mutex so every public
// operation serializes (spec.md §5).
package wallet

import (
	"sync"
	"time"

	"github.com/webcash/walletcore/internal/hdkey"
	"github.com/webcash/walletcore/internal/logger"
	"github.com/webcash/walletcore/internal/walletdb"
)

// Wallet is the process-local handle described in spec.md §2: the CLI (or
// any other caller) asks a Store for a Wallet, then drives every
// HD-derivation, ledger, and replace operation through it.
type Wallet struct {
	mu    sync.Mutex
	store *walletdb.Store
	root  hdkey.Root

	server         string
	transport      Transport
	changeCategory hdkey.Category

	// now is overridable in tests; defaults to time.Now().
	now func() time.Time
}

// Option configures a Wallet at Open time.
type Option func(*Wallet)

// WithTransport overrides the HTTP transport used by Replace, for tests.
func WithTransport(t Transport) Option {
	return func(w *Wallet) { w.transport = t }
}

// WithChangeCategory overrides the bucket change outputs are derived under
// (the Open Question of spec.md §9); defaults to Change (T,F).
func WithChangeCategory(c hdkey.Category) Option {
	return func(w *Wallet) { w.changeCategory = c }
}

// withClock overrides the wallet's clock, for deterministic tests.
func withClock(now func() time.Time) Option {
	return func(w *Wallet) { w.now = now }
}

// Open opens (or creates) the wallet database and recovery log at
// basePath, bootstraps the HD root if this is a fresh wallet, and returns
// a ready-to-use Wallet. server is the mint base URL Replace will POST to
// (spec.md §6); it is passed explicitly rather than read from global
// state, per the design note in spec.md §9.
func Open(basePath, server string, opts ...Option) (*Wallet, error) {
	store, err := walletdb.Open(basePath)
	if err != nil {
		return nil, err
	}

	w := &Wallet{
		store:          store,
		server:         server,
		transport:      NewHTTPTransport(server),
		changeCategory: hdkey.Change,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}

	root, err := getOrCreateHDRoot(w)
	if err != nil {
		store.Close()
		return nil, err
	}
	w.root = root

	return w, nil
}

// Close zeroises the in-memory HD root and releases the database and the
// file lock, in that order (spec.md §4.C).
func (w *Wallet) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.root.Zeroize()
	if err := w.store.Close(); err != nil {
		logger.Error("wallet: error during close:", err)
		return err
	}
	return nil
}

func (w *Wallet) nowUnix() int64 {
	return w.now().Unix()
}
