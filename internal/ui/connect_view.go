package ui

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"walletgo/internal/connect"
	"walletgo/internal/providers"
)

// connectView renders the wallet-connection widget: a loading gate until the
// authorized-connection probe finishes, then either the connect surface or
// the unlocked child content, plus at most one state-dependent modal.
type connectView struct {
	window fyne.Window
	dep    Dependencies

	loading fyne.CanvasObject
	surface *fyne.Container
	child   fyne.CanvasObject
	stack   *fyne.Container

	accountLabel *widget.Label
	chainLabel   *widget.Label

	mu       sync.Mutex
	modal    *widget.PopUp
	unlocked bool
}

func newConnectView(window fyne.Window, dep Dependencies) *connectView {
	v := &connectView{
		window: window,
		dep:    dep,
	}

	v.loading = dep.LoadingPlaceholder
	if v.loading == nil {
		spinner := widget.NewProgressBarInfinite()
		v.loading = container.NewCenter(container.NewVBox(
			widget.NewLabel("Checking for an authorized connection..."),
			spinner,
		))
	}

	v.surface = container.NewCenter(buildGenericSurface(v.startConnect))

	v.child = dep.Child
	if v.child == nil {
		v.accountLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
		v.chainLabel = widget.NewLabel("")
		disconnect := widget.NewButton("Disconnect", func() {
			v.dep.logger().Debug("disconnect clicked")
			v.dep.Wallet.Deactivate()
		})
		v.child = container.NewCenter(container.NewVBox(
			widget.NewLabelWithStyle("Connected", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			v.accountLabel,
			v.chainLabel,
			disconnect,
		))
	}

	v.stack = container.NewStack(v.loading, v.surface, v.child)
	v.surface.Hide()
	v.child.Hide()

	return v
}

func (v *connectView) Content() fyne.CanvasObject {
	return v.stack
}

// Unlock ends the loading gate. Call on the UI thread.
func (v *connectView) Unlock() {
	v.mu.Lock()
	if v.unlocked {
		v.mu.Unlock()

		return
	}
	v.unlocked = true
	v.mu.Unlock()

	v.loading.Hide()
	v.Apply(v.dep.Machine.Current())
}

// SetDetection rebuilds the connect surface for the detected wallet
// extensions. Call on the UI thread.
func (v *connectView) SetDetection(detection connect.Detection) {
	v.surface.RemoveAll()
	if detection.MetaMask && detection.BinanceChain {
		v.surface.Add(buildPickerSurface(v.startConnect))
	} else {
		v.surface.Add(buildGenericSurface(v.startConnect))
	}
	v.surface.Refresh()
}

// Apply renders the given state: child content when active, the connect
// surface otherwise, and the state's modal. Call on the UI thread.
func (v *connectView) Apply(state connect.State) {
	v.mu.Lock()
	unlocked := v.unlocked
	v.mu.Unlock()
	if !unlocked {
		return
	}

	if state.Phase == connect.PhaseActive {
		v.refreshAccountSummary()
		v.surface.Hide()
		v.child.Show()
	} else {
		v.child.Hide()
		v.surface.Show()
	}
	v.stack.Refresh()

	v.applyModal(state)
}

func (v *connectView) refreshAccountSummary() {
	if v.accountLabel == nil {
		return
	}
	account, chainID := v.dep.Wallet.AccountSummary()
	v.accountLabel.SetText(account.Hex())
	v.chainLabel.SetText(fmt.Sprintf("Chain ID: %d", chainID))
}

// startConnect dispatches StartActivating and invokes the wallet activation
// in the same handler invocation; no state in between is observable.
func (v *connectView) startConnect(handle *providers.Handle) {
	v.dep.logger().Debug("connect clicked", "strategy", handle.Strategy())
	v.dep.Machine.Dispatch(connect.StartActivating(handle))
	v.dep.Wallet.Activate(context.Background(), handle)
}

func (v *connectView) retry() {
	state := v.dep.Machine.Dispatch(connect.Retry())
	if state.Phase != connect.PhaseActivating || state.Connector == nil {
		return
	}
	v.dep.Wallet.Activate(context.Background(), state.Connector)
}

func (v *connectView) cancel() {
	v.dep.Machine.Dispatch(connect.Cancel())
}

func buildGenericSurface(onConnect func(*providers.Handle)) fyne.CanvasObject {
	button := widget.NewButton("Connect Wallet", func() {
		onConnect(providers.Injected)
	})
	button.Importance = widget.HighImportance

	return container.NewVBox(
		widget.NewLabelWithStyle("Connect a wallet to continue", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		button,
	)
}

func buildPickerSurface(onConnect func(*providers.Handle)) fyne.CanvasObject {
	metamask := widget.NewButton("MetaMask", func() {
		onConnect(providers.Injected)
	})
	binance := widget.NewButton("Binance Wallet", func() {
		onConnect(providers.BinanceChain)
	})

	return container.NewVBox(
		widget.NewLabelWithStyle("Choose your wallet", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		metamask,
		binance,
	)
}
