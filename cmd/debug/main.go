package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"walletgo/internal/app"
	"walletgo/internal/bus"
	"walletgo/internal/config"
	"walletgo/internal/connect"
	"walletgo/internal/logging"
	"walletgo/internal/notifications"
	"walletgo/internal/persistence"
	"walletgo/internal/providers"
	"walletgo/internal/wallet"
)

const handshakeWaitTimeout = 150 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("run debug tool", "error", err)
		os.Exit(1)
	}
}

func run() error {
	endpoint := flag.String("endpoint", "", "wallet bridge endpoint (overrides config)")
	strategy := flag.String("strategy", "", "connection strategy to activate (injected, binance_chain)")
	eagerOnly := flag.Bool("eager-only", false, "exit after the authorized-connection probe finishes")
	notify := flag.Bool("notify", false, "send a desktop notification on connection changes")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := app.ResolvePaths()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(*endpoint) != "" {
		cfg.Bridge.Endpoint = strings.TrimSpace(*endpoint)
	}

	logMgr := logging.NewManager()
	cfg.Logging.LogToFile = false
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer func() {
		if closeErr := logMgr.Close(); closeErr != nil {
			slog.Warn("close log manager", "error", closeErr)
		}
	}()
	logger := logMgr.Logger("cli")
	logger.Info("starting walletgo debug", "version", app.BuildVersion(), "endpoint", cfg.Bridge.Endpoint)

	db, err := persistence.Open(ctx, paths.DBFile)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("close sqlite", "error", closeErr)
		}
	}()
	sessionRepo := persistence.NewSessionRepo(db)

	b := bus.New(logMgr.Logger("bus"))
	defer b.Close()

	machine := connect.NewMachine(logMgr.Logger("connect"), b)

	bridge, err := wallet.DialBridge(ctx, cfg.Bridge.Endpoint)
	if err != nil {
		return fmt.Errorf("dial wallet bridge: %w", err)
	}
	defer bridge.Close()

	engine := wallet.NewEngine(logMgr.Logger("wallet"), b, bridge, sessionRepo)
	stopRouter := app.StartSignalRouter(ctx, b, machine, engine, logMgr.Logger("app.router"))
	defer stopRouter()

	if *notify {
		service := app.NewNotificationService(
			b,
			func() config.AppConfig { return cfg },
			func() bool { return false },
			notifications.NewBeeepSender(logMgr.Logger("notifications")),
			logMgr.Logger("app.notifications"),
		)
		service.Start(ctx)
	}

	stateSub := b.Subscribe(connect.TopicStateChanged)
	eagerSub := b.Subscribe(connect.TopicEagerResult)
	defer b.Unsubscribe(stateSub, connect.TopicStateChanged)
	defer b.Unsubscribe(eagerSub, connect.TopicEagerResult)

	detection := engine.Detect(ctx)
	logger.Info("wallet detection", "metamask", detection.MetaMask, "binance_chain", detection.BinanceChain)

	go engine.EagerConnect(ctx)
	if err := waitForEagerResult(ctx, logger, eagerSub); err != nil {
		return err
	}
	if *eagerOnly {
		logger.Info("eager-only mode completed", "state", machine.Current().Phase)

		return nil
	}

	handle, err := resolveHandle(*strategy)
	if err != nil {
		return err
	}
	if handle == nil {
		logger.Info("no strategy requested, listening until interrupt")
		watchStates(ctx, logger, stateSub)

		return nil
	}

	logger.Info("activating", "strategy", handle.Strategy(), "chains", handle.ChainIDs())
	machine.Dispatch(connect.StartActivating(handle))
	engine.Activate(ctx, handle)

	return waitForTerminalState(ctx, logger, stateSub, handshakeWaitTimeout)
}

func resolveHandle(raw string) (*providers.Handle, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil, nil
	}
	handle, ok := providers.ByStrategy(providers.Strategy(name))
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}

	return handle, nil
}

func waitForEagerResult(ctx context.Context, logger *slog.Logger, eagerSub bus.Subscription) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-eagerSub:
			if !ok {
				return fmt.Errorf("eager subscription closed")
			}
			result, ok := raw.(connect.EagerResult)
			if !ok {
				continue
			}
			logger.Info("authorized-connection probe finished", "connected", result.Connected)

			return nil
		}
	}
}

func waitForTerminalState(ctx context.Context, logger *slog.Logger, stateSub bus.Subscription, timeout time.Duration) error {
	timeoutCh := time.After(timeout)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeoutCh:
			return fmt.Errorf("timeout waiting for handshake result after %s", timeout)
		case raw, ok := <-stateSub:
			if !ok {
				return fmt.Errorf("state stream closed while waiting for handshake result")
			}
			event, ok := raw.(connect.StateChanged)
			if !ok {
				continue
			}
			logger.Info("state", "from", event.Previous, "to", event.State.Phase)

			switch event.State.Phase {
			case connect.PhaseActive:
				logger.Info("wallet connected", "connector", event.State.Connector.String())

				return nil
			case connect.PhaseRejectedByUser, connect.PhaseAlreadyPending, connect.PhaseFailed:
				return fmt.Errorf("handshake ended in %s", event.State.Phase)
			}
		}
	}
}

func watchStates(ctx context.Context, logger *slog.Logger, stateSub bus.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-stateSub:
			if !ok {
				return
			}
			event, ok := raw.(connect.StateChanged)
			if !ok {
				continue
			}
			logger.Info("state", "from", event.Previous, "to", event.State.Phase)
		}
	}
}
