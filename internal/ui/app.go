package ui

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	walletapp "walletgo/internal/app"
	"walletgo/internal/connect"
)

// Run builds and runs the Fyne UI. It blocks until the app quits.
func Run(dep Dependencies) error {
	fyApp := fyneapp.NewWithID("walletgo")
	logger := dep.logger()
	window := fyApp.NewWindow("walletgo")
	window.Resize(fyne.NewSize(480, 380))

	initial := dep.Machine.Current()
	statusLabel := widget.NewLabel(formatConnState(initial))
	presenter := newStatusPresenter(window, statusLabel, initial)
	view := newConnectView(window, dep)

	toolbar := widget.NewToolbar(
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			showSettingsDialog(window, dep)
		}),
	)

	content := container.NewBorder(toolbar, statusLabel, nil, nil, view.Content())
	window.SetContent(content)

	stopListeners := startUIEventListeners(
		dep.Bus,
		logger,
		func(event connect.StateChanged) {
			fyne.Do(func() {
				presenter.Set(event.State)
				view.Apply(event.State)
			})
		},
		func(connect.EagerResult) {
			fyne.Do(view.Unlock)
		},
	)

	// Surface detection runs off the UI thread; the generic connect button
	// stays up until flags arrive.
	go func() {
		detection := dep.Wallet.Detect(context.Background())
		fyne.Do(func() {
			view.SetDetection(detection)
		})
	}()

	stopNotifications := startNotificationService(dep, fyApp, logger, dep.StartHidden)

	var shutdownOnce sync.Once
	quit := func() {
		shutdownOnce.Do(func() {
			logger.Info("quitting UI runtime")
			stopListeners()
			stopNotifications()
			if dep.OnQuit != nil {
				dep.OnQuit()
			}
			fyApp.Quit()
		})
	}

	window.SetCloseIntercept(func() {
		logger.Debug("main window close intercepted: hiding to tray")
		window.Hide()
	})
	configureSystemTray(fyApp, window, logger, quit)

	window.Show()
	if dep.StartHidden {
		logger.Info("start_hidden is enabled: hiding main window")
		window.Hide()
	}
	fyApp.Run()
	logger.Info("UI runtime stopped")
	shutdownOnce.Do(func() {
		stopListeners()
		stopNotifications()
		if dep.OnQuit != nil {
			dep.OnQuit()
		}
	})

	return nil
}

func startNotificationService(dep Dependencies, fyApp fyne.App, logger *slog.Logger, startHidden bool) func() {
	var appForeground atomic.Bool
	appForeground.Store(!startHidden)
	fyApp.Lifecycle().SetOnEnteredForeground(func() {
		appForeground.Store(true)
	})
	fyApp.Lifecycle().SetOnExitedForeground(func() {
		appForeground.Store(false)
	})

	ctx, stop := context.WithCancel(context.Background())
	service := walletapp.NewNotificationService(
		dep.Bus,
		dep.CurrentConfig,
		appForeground.Load,
		NewFyneNotificationSender(fyApp),
		logger.With("scope", "notifications"),
	)
	service.Start(ctx)

	return stop
}
