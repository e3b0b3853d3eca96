package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"walletgo/internal/bus"
	"walletgo/internal/connect"
	"walletgo/internal/providers"
	"walletgo/internal/wallet"
)

type stubBridge struct{}

func (stubBridge) RequestAccounts(context.Context, providers.Strategy) ([]common.Address, error) {
	return nil, context.Canceled
}

func (stubBridge) Accounts(context.Context) ([]common.Address, error) { return nil, nil }

func (stubBridge) ChainID(context.Context) (uint64, error) { return 0, nil }

func (stubBridge) Flags(context.Context) (wallet.ProviderFlags, error) {
	return wallet.ProviderFlags{}, nil
}

func (stubBridge) Close() {}

func newRouterFixture(t *testing.T) (bus.MessageBus, *connect.Machine, *wallet.Engine) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	messageBus := bus.New(logger)
	t.Cleanup(messageBus.Close)
	machine := connect.NewMachine(logger, messageBus)
	engine := wallet.NewEngine(logger, messageBus, stubBridge{}, nil)

	stop := StartSignalRouter(context.Background(), messageBus, machine, engine, logger)
	t.Cleanup(stop)

	return messageBus, machine, engine
}

func waitForPhase(t *testing.T, machine *connect.Machine, want connect.Phase) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if machine.Current().Phase == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for phase %s, current %s", want, machine.Current())
}

func TestSignalRouterActiveSignalFinishesActivation(t *testing.T) {
	messageBus, machine, _ := newRouterFixture(t)

	machine.Dispatch(connect.StartActivating(providers.BinanceChain))
	messageBus.Publish(connect.TopicWalletSignal, connect.WalletSignal{
		Active:    true,
		Connector: providers.BinanceChain,
		At:        time.Now(),
	})

	waitForPhase(t, machine, connect.PhaseActive)
	if got := machine.Current().Connector; got != providers.BinanceChain {
		t.Fatalf("expected binance connector to survive activation, got %v", got)
	}
}

func TestSignalRouterErrorSignalDispatchesClassifiedFailure(t *testing.T) {
	messageBus, machine, _ := newRouterFixture(t)

	machine.Dispatch(connect.StartActivating(providers.Injected))
	messageBus.Publish(connect.TopicWalletSignal, connect.WalletSignal{
		Err: "User rejected the request",
		At:  time.Now(),
	})

	waitForPhase(t, machine, connect.PhaseRejectedByUser)
}

func TestSignalRouterInactiveSignalDeactivates(t *testing.T) {
	messageBus, machine, _ := newRouterFixture(t)

	machine.Dispatch(connect.StartActivating(providers.Injected))
	machine.Dispatch(connect.FinishActivating())

	messageBus.Publish(connect.TopicWalletSignal, connect.WalletSignal{
		Active: false,
		At:     time.Now(),
	})

	waitForPhase(t, machine, connect.PhaseInactive)
}

func TestSignalRouterLateSignalAfterCancelStillApplies(t *testing.T) {
	messageBus, machine, _ := newRouterFixture(t)

	machine.Dispatch(connect.StartActivating(providers.Injected))
	machine.Dispatch(connect.Cancel())

	// The wallet prompt resolved after the user dismissed the modal.
	messageBus.Publish(connect.TopicWalletSignal, connect.WalletSignal{
		Active:    true,
		Connector: providers.Injected,
		At:        time.Now(),
	})

	waitForPhase(t, machine, connect.PhaseActive)
}

func TestSignalRouterStopEndsRouting(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	messageBus := bus.New(logger)
	t.Cleanup(messageBus.Close)
	machine := connect.NewMachine(logger, messageBus)
	engine := wallet.NewEngine(logger, messageBus, stubBridge{}, nil)

	stop := StartSignalRouter(context.Background(), messageBus, machine, engine, logger)
	stop()
	time.Sleep(50 * time.Millisecond)

	machine.Dispatch(connect.StartActivating(providers.Injected))
	messageBus.Publish(connect.TopicWalletSignal, connect.WalletSignal{
		Active: true,
		At:     time.Now(),
	})

	time.Sleep(100 * time.Millisecond)
	if got := machine.Current().Phase; got != connect.PhaseActivating {
		t.Fatalf("expected stopped router to ignore signals, got phase %s", got)
	}
}
