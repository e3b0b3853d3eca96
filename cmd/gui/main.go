package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"walletgo/internal/app"
	"walletgo/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Initialize(ctx)
	if err != nil {
		slog.Error("initialize app runtime", "error", err)
		os.Exit(1)
	}

	var closeOnce sync.Once
	closeRuntime := func() {
		closeOnce.Do(func() {
			_ = rt.Close()
		})
	}
	defer closeRuntime()

	err = ui.Run(ui.Dependencies{
		Bus:           rt.Bus,
		Logger:        rt.LogManager.Logger("ui"),
		Machine:       rt.Machine,
		Wallet:        rt.Engine,
		CurrentConfig: rt.CurrentConfig,
		OnSave:        rt.SaveAndApplyConfig,
		StartHidden:   rt.CurrentConfig().UI.StartHidden,
		OnQuit: func() {
			stop()
			closeRuntime()
		},
	})
	if err != nil {
		slog.Error("run ui", "error", err)
		os.Exit(1)
	}
}
