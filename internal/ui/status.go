package ui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	walletapp "walletgo/internal/app"
	"walletgo/internal/connect"
)

// statusPresenter keeps the window title and status label in sync with the
// connection state.
type statusPresenter struct {
	window      fyne.Window
	statusLabel *widget.Label

	mu      sync.RWMutex
	current connect.State
}

func newStatusPresenter(window fyne.Window, statusLabel *widget.Label, initial connect.State) *statusPresenter {
	p := &statusPresenter{
		window:      window,
		statusLabel: statusLabel,
		current:     initial,
	}
	p.applyUI(initial)

	return p
}

// Set updates the presented state. Call on the UI thread.
func (p *statusPresenter) Set(state connect.State) {
	p.mu.Lock()
	p.current = state
	p.mu.Unlock()
	p.applyUI(state)
}

func (p *statusPresenter) CurrentState() connect.State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.current
}

func (p *statusPresenter) applyUI(state connect.State) {
	if p.window != nil {
		p.window.SetTitle(formatWindowTitle(state))
	}
	if p.statusLabel != nil {
		p.statusLabel.SetText(formatConnState(state))
	}
}

func formatConnState(state connect.State) string {
	text := fmt.Sprintf("Connection: %s", state.Phase)
	if state.Connector != nil {
		text += " via " + string(state.Connector.Strategy())
	}

	return text
}

func formatWindowTitle(state connect.State) string {
	return fmt.Sprintf("walletgo %s - %s", walletapp.BuildVersion(), state.Phase)
}
