package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"walletgo/internal/bus"
	"walletgo/internal/connect"
	"walletgo/internal/providers"
)

const defaultRequestTimeout = 120 * time.Second

// Engine drives the wallet handshake. Activate is asynchronous: it returns
// immediately and the outcome arrives later as a WalletSignal bus event,
// which is the reactive active/error pair the view observes. Deactivate is
// synchronous. An in-flight activation cannot be aborted; a late signal
// after the user cancelled still fires and still drives a transition.
type Engine struct {
	logger         *slog.Logger
	bus            bus.MessageBus
	bridge         Bridge
	sessions       SessionStore
	requestTimeout time.Duration

	mu      sync.Mutex
	active  bool
	current *providers.Handle
	account common.Address
	chainID uint64
}

func NewEngine(logger *slog.Logger, messageBus bus.MessageBus, bridge Bridge, sessions SessionStore) *Engine {
	if logger == nil {
		logger = slog.Default().With("component", "wallet")
	}

	return &Engine{
		logger:         logger,
		bus:            messageBus,
		bridge:         bridge,
		sessions:       sessions,
		requestTimeout: defaultRequestTimeout,
	}
}

// Activate starts the interactive handshake for handle. The wallet extension
// may keep the prompt open for a long time, so the request timeout is
// generous; there is no retry here, every retry is user-initiated.
func (e *Engine) Activate(ctx context.Context, handle *providers.Handle) {
	go e.runActivation(ctx, handle)
}

func (e *Engine) runActivation(ctx context.Context, handle *providers.Handle) {
	reqCtx, cancel := context.WithTimeout(ctx, e.requestTimeout)
	defer cancel()

	accounts, err := e.bridge.RequestAccounts(reqCtx, handle.Strategy())
	if err != nil {
		e.logger.Info("activation failed", "strategy", handle.Strategy(), "error", err)
		e.publishError(handle, err)

		return
	}
	if len(accounts) == 0 {
		e.publishError(handle, errors.New("wallet returned no accounts"))

		return
	}

	chainID, err := e.bridge.ChainID(reqCtx)
	if err != nil {
		e.publishError(handle, fmt.Errorf("read chain id: %w", err))

		return
	}
	if !handle.Supports(chainID) {
		e.publishError(handle, fmt.Errorf("unsupported chain id %d for %s", chainID, handle.Strategy()))

		return
	}

	e.finishActivation(ctx, handle, accounts[0], chainID)
}

func (e *Engine) finishActivation(ctx context.Context, handle *providers.Handle, account common.Address, chainID uint64) {
	e.mu.Lock()
	e.active = true
	e.current = handle
	e.account = account
	e.chainID = chainID
	e.mu.Unlock()

	if e.sessions != nil {
		session := Session{
			Strategy:    handle.Strategy(),
			Account:     account,
			ChainID:     chainID,
			ConnectedAt: time.Now(),
		}
		if err := e.sessions.Save(ctx, session); err != nil {
			e.logger.Warn("save session", "error", err)
		}
	}

	e.logger.Info("wallet active", "strategy", handle.Strategy(), "account", account.Hex(), "chain_id", chainID)
	e.publish(connect.WalletSignal{
		Active:    true,
		Connector: handle,
		Account:   account.Hex(),
		ChainID:   chainID,
		At:        time.Now(),
	})
}

// Deactivate drops the active connection and forgets the remembered session.
// It is a no-op while no connection is active.
func (e *Engine) Deactivate() {
	e.mu.Lock()
	wasActive := e.active
	handle := e.current
	e.active = false
	e.current = nil
	e.account = common.Address{}
	e.chainID = 0
	e.mu.Unlock()

	// A deactivate after a failed attempt must not forget the remembered
	// session; only ending a live connection does.
	if !wasActive {
		return
	}

	if e.sessions != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.sessions.Clear(ctx); err != nil {
			e.logger.Warn("clear session", "error", err)
		}
	}

	e.logger.Info("wallet deactivated", "strategy", handle.Strategy())
	e.publish(connect.WalletSignal{
		Active:    false,
		Connector: handle,
		At:        time.Now(),
	})
}

// EagerConnect runs the authorized-connection probe: if a session is
// remembered and the bridge still reports accounts silently, the connection
// comes back without prompting. The EagerResult event always fires, even on
// failure, because the UI gates its first render on it.
func (e *Engine) EagerConnect(ctx context.Context) {
	connected := false
	defer func() {
		e.publishEager(connected)
	}()

	if e.sessions == nil {
		return
	}
	session, ok, err := e.sessions.Last(ctx)
	if err != nil {
		e.logger.Warn("load session", "error", err)

		return
	}
	if !ok {
		return
	}
	handle, ok := providers.ByStrategy(session.Strategy)
	if !ok {
		e.logger.Warn("remembered session has unknown strategy", "strategy", session.Strategy)
		if err := e.sessions.Clear(ctx); err != nil {
			e.logger.Warn("clear stale session", "error", err)
		}

		return
	}

	accounts, err := e.bridge.Accounts(ctx)
	if err != nil {
		e.logger.Debug("eager accounts query failed", "error", err)

		return
	}
	if len(accounts) == 0 {
		return
	}
	chainID, err := e.bridge.ChainID(ctx)
	if err != nil {
		e.logger.Debug("eager chain id query failed", "error", err)

		return
	}
	if !handle.Supports(chainID) {
		e.logger.Info("eager connect skipped: chain not allowed", "chain_id", chainID, "strategy", handle.Strategy())

		return
	}

	e.finishActivation(ctx, handle, accounts[0], chainID)
	connected = true
}

// Detect reads the injected-provider flags. Any bridge failure degrades to
// "nothing detected"; missing wallet extensions are never an error.
func (e *Engine) Detect(ctx context.Context) connect.Detection {
	flags, err := e.bridge.Flags(ctx)
	if err != nil {
		e.logger.Debug("wallet detection unavailable", "error", err)
		flags = ProviderFlags{}
	}

	detection := connect.Detection{
		MetaMask:     flags.IsMetaMask,
		BinanceChain: flags.IsBinanceChain,
		At:           time.Now(),
	}
	if e.bus != nil {
		e.bus.Publish(connect.TopicDetection, detection)
	}

	return detection
}

// Active reports the engine's current connection snapshot.
func (e *Engine) Active() (bool, *providers.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active, e.current
}

// AccountSummary returns the negotiated account and chain, valid only while
// active.
func (e *Engine) AccountSummary() (common.Address, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.account, e.chainID
}

func (e *Engine) publishError(handle *providers.Handle, err error) {
	e.publish(connect.WalletSignal{
		Active:    false,
		Err:       err.Error(),
		Connector: handle,
		At:        time.Now(),
	})
}

func (e *Engine) publish(signal connect.WalletSignal) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(connect.TopicWalletSignal, signal)
}

func (e *Engine) publishEager(connected bool) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(connect.TopicEagerResult, connect.EagerResult{
		Connected: connected,
		At:        time.Now(),
	})
}
