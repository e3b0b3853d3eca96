package app

import (
	"context"
	"errors"
	"log/slog"

	"walletgo/internal/bus"
	"walletgo/internal/connect"
	"walletgo/internal/wallet"
)

// StartSignalRouter bridges the wallet engine's reactive signals to reducer
// actions. An error signal dispatches Fail and explicitly deactivates the
// engine; active=true dispatches FinishActivating; active=false dispatches
// Deactivate. Signals are routed as they arrive, even after a user cancel:
// a late activation result still drives a transition.
func StartSignalRouter(
	ctx context.Context,
	messageBus bus.MessageBus,
	machine *connect.Machine,
	engine *wallet.Engine,
	logger *slog.Logger,
) func() {
	if logger == nil {
		logger = slog.Default().With("component", "app.router")
	}

	sub := messageBus.Subscribe(connect.TopicWalletSignal)
	routerCtx, stop := context.WithCancel(ctx)

	go func() {
		defer messageBus.Unsubscribe(sub, connect.TopicWalletSignal)

		for {
			select {
			case <-routerCtx.Done():
				return
			case raw, ok := <-sub:
				if !ok {
					return
				}
				signal, ok := raw.(connect.WalletSignal)
				if !ok {
					logger.Debug("ignoring unexpected wallet signal payload")

					continue
				}
				routeSignal(machine, engine, signal)
			}
		}
	}()

	return stop
}

func routeSignal(machine *connect.Machine, engine *wallet.Engine, signal connect.WalletSignal) {
	switch {
	case signal.Err != "":
		machine.Dispatch(connect.Fail(errors.New(signal.Err)))
		engine.Deactivate()
	case signal.Active:
		machine.Dispatch(connect.FinishActivating())
	default:
		machine.Dispatch(connect.Deactivate())
	}
}
