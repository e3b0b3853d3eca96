package ui

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"walletgo/internal/connect"
	"walletgo/internal/providers"
)

// WalletController is the slice of the wallet engine the view drives.
type WalletController interface {
	Activate(ctx context.Context, handle *providers.Handle)
	Deactivate()
	Detect(ctx context.Context) connect.Detection
	AccountSummary() (common.Address, uint64)
}

// Dispatcher is the reducer entry point the view feeds actions into.
type Dispatcher interface {
	Dispatch(action connect.Action) connect.State
	Current() connect.State
}
