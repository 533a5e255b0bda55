package app

import (
	"context"
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/keys"
	"github.com/iov-one/vault/x/utils"
	"github.com/iov-one/vault/x/wallet"
	"github.com/tendermint/tendermint/libs/log"
)

// App runs calls against the vault state machine. It is safe for concurrent
// use, every method is serialized with a single lock.
type App struct {
	mu sync.Mutex

	logger      log.Logger
	store       *CommitStore
	handler     vault.Handler
	initializer vault.Initializer
	wallet      wallet.Wallet

	// height is the sequence number of the last delivered call.
	height int64
	// debug disables error redaction.
	debug bool
}

// New returns an App operating on the latest version of the given store.
func New(db vault.CommitKVStore, logger log.Logger, debug bool) (*App, error) {
	store, err := NewCommitStore(db)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &App{
		logger:      logger.With("module", "app"),
		store:       store,
		handler:     Stack(),
		initializer: vault.ChainInitializers(&keys.Initializer{}, &wallet.Initializer{}),
		wallet:      wallet.NewWallet(),
		height:      store.CommitInfo().Version,
		debug:       debug,
	}, nil
}

// Stack returns the handler with all decorators applied, in the order the
// runtime executes them.
func Stack() vault.Handler {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(wallet.NewHandler())
}

// InitGenesis applies the genesis options to the delivery state. It is
// atomic and can succeed only once for a store. Changes are persisted by
// the next Commit.
func (a *App) InitGenesis(opts vault.Options) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := a.store.DeliverStore().CacheWrap()
	if err := markGenesis(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := a.initializer.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		a.logger.Error("genesis failed", "err", err)
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	a.logger.Info("genesis loaded")
	return nil
}

// GenesisLoaded returns true if the committed state was initialized from
// a genesis.
func (a *App) GenesisLoaded() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return genesisLoaded(a.store.CommittedStore())
}

// Check validates a call issued by the caller against a throwaway view of
// the state. Nothing is persisted.
func (a *App) Check(caller vault.Address, msg vault.Msg) (*vault.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := a.context(a.height+1, caller)
	res, err := a.handler.Check(ctx, a.store.CheckStore(), msg)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	return res, nil
}

// Deliver applies a call issued by the caller. A failed call leaves the
// state untouched.
func (a *App) Deliver(caller vault.Address, msg vault.Msg) (*vault.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.height++
	ctx := a.context(a.height, caller)
	res, err := a.handler.Deliver(ctx, a.store.DeliverStore(), msg)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	return res, nil
}

// Query answers a read only request from the last committed state.
func (a *App) Query(q wallet.Query) (interface{}, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := a.wallet.Query(a.store.CommittedStore(), q)
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	return res, nil
}

// Commit persists all delivered calls and returns the new version.
func (a *App) Commit() (vault.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	a.logger.Debug("commit", "version", id.Version, "hash", vault.Address(id.Hash))
	return id, nil
}

// LatestVersion returns the id of the last committed version.
func (a *App) LatestVersion() vault.CommitID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.CommitInfo()
}

func (a *App) context(height int64, caller vault.Address) vault.Context {
	ctx := vault.WithLogger(context.Background(), a.logger)
	ctx = vault.WithHeight(ctx, height)
	if len(caller) != 0 {
		ctx = vault.WithCaller(ctx, caller)
	}
	return ctx
}
