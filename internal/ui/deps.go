package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"

	"walletgo/internal/bus"
	"walletgo/internal/config"
)

// Dependencies carries everything the view layer needs from the runtime.
type Dependencies struct {
	Bus     bus.MessageBus
	Machine Dispatcher
	Wallet  WalletController

	// Logger is the component logger handed out by the runtime's logging
	// manager. When nil a default-backed logger is used.
	Logger *slog.Logger

	CurrentConfig func() config.AppConfig
	OnSave        func(cfg config.AppConfig) error
	OnQuit        func()

	// Child is the dApp content unlocked by an active connection. When nil
	// the built-in account summary view is used.
	Child fyne.CanvasObject
	// LoadingPlaceholder is shown until the authorized-connection probe
	// finishes. When nil a stock spinner is used.
	LoadingPlaceholder fyne.CanvasObject

	StartHidden bool
}

func (d Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}

	return slog.Default().With("component", "ui")
}
