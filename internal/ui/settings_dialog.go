package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showSettingsDialog edits the bridge endpoint, logging and notification
// preferences. Saving goes through the runtime so the new endpoint applies
// without a restart.
func showSettingsDialog(window fyne.Window, dep Dependencies) {
	if dep.CurrentConfig == nil || dep.OnSave == nil {
		return
	}
	cfg := dep.CurrentConfig()

	endpoint := widget.NewEntry()
	endpoint.SetText(cfg.Bridge.Endpoint)

	level := widget.NewSelect([]string{"debug", "info", "warn", "error"}, nil)
	level.SetSelected(cfg.Logging.Level)

	logToFile := widget.NewCheck("Write log file", nil)
	logToFile.SetChecked(cfg.Logging.LogToFile)

	notifyStatus := widget.NewCheck("Notify on connection changes", nil)
	notifyStatus.SetChecked(cfg.UI.Notifications.ConnectionStatus)

	startHidden := widget.NewCheck("Start hidden in tray", nil)
	startHidden.SetChecked(cfg.UI.StartHidden)

	items := []*widget.FormItem{
		widget.NewFormItem("Bridge endpoint", endpoint),
		widget.NewFormItem("Log level", level),
		widget.NewFormItem("", logToFile),
		widget.NewFormItem("", notifyStatus),
		widget.NewFormItem("", startHidden),
	}

	dialog.ShowForm("Settings", "Save", "Cancel", items, func(save bool) {
		if !save {
			return
		}
		next := cfg
		next.Bridge.Endpoint = endpoint.Text
		next.Logging.Level = level.Selected
		next.Logging.LogToFile = logToFile.Checked
		next.UI.Notifications.ConnectionStatus = notifyStatus.Checked
		next.UI.StartHidden = startHidden.Checked

		if err := dep.OnSave(next); err != nil {
			dep.logger().Warn("save settings", "error", err)
			dialog.ShowError(err, window)
		}
	}, window)
}
