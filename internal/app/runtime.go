package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"walletgo/internal/bus"
	"walletgo/internal/config"
	"walletgo/internal/connect"
	"walletgo/internal/logging"
	"walletgo/internal/persistence"
	"walletgo/internal/wallet"
)

// Runtime owns every long-lived component: config, logging, bus, session
// store, wallet bridge/engine and the connection state machine.
type Runtime struct {
	mu sync.RWMutex

	Ctx    context.Context
	cancel context.CancelFunc

	Paths  Paths
	Config config.AppConfig

	LogManager *logging.Manager
	Bus        *bus.PubSubBus
	DB         *sql.DB

	SessionRepo *persistence.SessionRepo
	Bridge      *wallet.SwitchableBridge
	Engine      *wallet.Engine
	Machine     *connect.Machine

	stopRouter func()
}

func Initialize(parent context.Context) (*Runtime, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	rt := &Runtime{
		Ctx:    ctx,
		cancel: cancel,
		Paths:  paths,
		Config: cfg,
	}

	logMgr := logging.NewManager()
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		_ = logMgr.Close()
		cancel()

		return nil, fmt.Errorf("configure logging: %w", err)
	}
	rt.LogManager = logMgr
	slog.Info("starting walletgo runtime", "version", BuildVersion(), "build_date", BuildDateYMD())

	db, err := persistence.Open(ctx, paths.DBFile)
	if err != nil {
		_ = rt.Close()

		return nil, err
	}
	rt.DB = db
	rt.SessionRepo = persistence.NewSessionRepo(db)

	b := bus.New(logMgr.Logger("bus"))
	rt.Bus = b
	rt.Machine = connect.NewMachine(logMgr.Logger("connect"), b)

	bridge, err := wallet.NewSwitchableBridge(ctx, cfg.Bridge.Endpoint)
	if err != nil {
		_ = rt.Close()

		return nil, fmt.Errorf("initialize wallet bridge: %w", err)
	}
	rt.Bridge = bridge
	rt.Engine = wallet.NewEngine(logMgr.Logger("wallet"), b, bridge, rt.SessionRepo)

	rt.stopRouter = StartSignalRouter(ctx, b, rt.Machine, rt.Engine, logMgr.Logger("app.router"))

	// The authorized-connection probe runs in the background; UI blocks its
	// first render on the EagerResult event it always emits.
	go rt.Engine.EagerConnect(ctx)

	return rt, nil
}

// CurrentConfig returns a config snapshot for UI consumers.
func (r *Runtime) CurrentConfig() config.AppConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.Config
}

func (r *Runtime) SaveAndApplyConfig(cfg config.AppConfig) error {
	cfg.FillMissingDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if err := config.Save(r.Paths.ConfigFile, cfg); err != nil {
		r.mu.Unlock()

		return err
	}
	r.Config = cfg
	r.mu.Unlock()

	if err := r.LogManager.Configure(cfg.Logging, r.Paths.LogFile); err != nil {
		return err
	}

	if r.Bridge != nil {
		if err := r.Bridge.Apply(r.Ctx, cfg.Bridge.Endpoint); err != nil {
			return fmt.Errorf("apply bridge endpoint: %w", err)
		}
	}

	return nil
}

func (r *Runtime) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	if r.stopRouter != nil {
		r.stopRouter()
	}
	if r.Bus != nil {
		r.Bus.Close()
	}
	if r.Bridge != nil {
		r.Bridge.Close()
	}
	if r.DB != nil {
		_ = r.DB.Close()
	}
	if r.LogManager != nil {
		_ = r.LogManager.Close()
	}

	return nil
}
