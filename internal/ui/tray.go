package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func configureSystemTray(fyApp fyne.App, window fyne.Window, logger *slog.Logger, quit func()) {
	desk, ok := fyApp.(desktop.App)
	if !ok {
		return
	}

	desk.SetSystemTrayIcon(theme.AccountIcon())
	desk.SetSystemTrayMenu(fyne.NewMenu("walletgo",
		fyne.NewMenuItem("Show", func() {
			logger.Debug("system tray show action invoked")
			window.Show()
			window.RequestFocus()
		}),
		fyne.NewMenuItem("Quit", func() {
			logger.Debug("system tray quit action invoked")
			quit()
		}),
	))
}
