package connect

import (
	"time"

	"walletgo/internal/providers"
)

// StateChanged is published on TopicStateChanged after every accepted
// transition.
type StateChanged struct {
	Previous Phase
	State    State
	At       time.Time
}

// WalletSignal mirrors the wallet engine's reactive active/error pair. At
// most one of Active/Err is meaningful per event: an error event carries
// Active=false plus the wallet's message, an activation event carries the
// negotiated account and chain.
type WalletSignal struct {
	Active    bool
	Err       string
	Connector *providers.Handle
	Account   string
	ChainID   uint64
	At        time.Time
}

// EagerResult signals that the authorized-connection probe finished. UI
// holds back the main content until this arrives.
type EagerResult struct {
	Connected bool
	At        time.Time
}

// Detection is the injected-wallet presence snapshot used to choose between
// the dual picker and the generic connect action. Absent flags mean "not
// detected", never an error.
type Detection struct {
	MetaMask     bool
	BinanceChain bool
	At           time.Time
}
