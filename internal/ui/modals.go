package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"walletgo/internal/connect"
)

// applyModal shows the single dialog belonging to state, hiding whatever was
// up before. Inactive and Active render no modal. Call on the UI thread.
func (v *connectView) applyModal(state connect.State) {
	v.hideModal()

	var content fyne.CanvasObject
	switch state.Phase {
	case connect.PhaseActivating:
		content = v.buildPendingModal()
	case connect.PhaseRejectedByUser:
		content = v.buildRetryModal(
			"Connection rejected",
			"You declined the request in your wallet. Retry to open it again.",
		)
	case connect.PhaseAlreadyPending:
		content = v.buildRetryModal(
			"Request already pending",
			"Your wallet already shows a connection request. Confirm it there, or retry.",
		)
	case connect.PhaseFailed:
		content = v.buildRetryModal(
			"Connection failed",
			"The wallet connection could not be established.",
		)
	default:
		return
	}

	modal := widget.NewModalPopUp(content, v.window.Canvas())
	v.mu.Lock()
	v.modal = modal
	v.mu.Unlock()
	modal.Show()
}

func (v *connectView) hideModal() {
	v.mu.Lock()
	modal := v.modal
	v.modal = nil
	v.mu.Unlock()

	if modal != nil {
		modal.Hide()
	}
}

// buildPendingModal is the confirmation-pending dialog: the wallet extension
// owns the prompt, so the only action here is Cancel. There is no timeout; a
// stuck attempt persists until the wallet resolves or the user cancels.
func (v *connectView) buildPendingModal() fyne.CanvasObject {
	cancel := widget.NewButton("Cancel", func() {
		v.hideModal()
		v.cancel()
	})

	return container.NewVBox(
		widget.NewLabelWithStyle("Waiting for confirmation", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Confirm the connection request in your wallet."),
		widget.NewProgressBarInfinite(),
		cancel,
	)
}

func (v *connectView) buildRetryModal(title, message string) fyne.CanvasObject {
	retry := widget.NewButton("Retry", func() {
		v.hideModal()
		v.retry()
	})
	retry.Importance = widget.HighImportance
	cancel := widget.NewButton("Cancel", func() {
		v.hideModal()
		v.cancel()
	})

	body := widget.NewLabel(message)
	body.Wrapping = fyne.TextWrapWord

	return container.NewVBox(
		widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		body,
		container.NewGridWithColumns(2, cancel, retry),
	)
}
