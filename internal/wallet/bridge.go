package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"walletgo/internal/providers"
)

// ProviderFlags is the injected-provider descriptor reported by the wallet
// bridge. Each flag marks a recognized wallet extension behind the bridge.
type ProviderFlags struct {
	IsMetaMask     bool `json:"isMetaMask"`
	IsBinanceChain bool `json:"isBinanceChain"`
}

// Bridge is the transport to the local wallet bridge. RequestAccounts is the
// interactive handshake and may reject with the wallet's human-readable
// error; Accounts is the silent variant used by the authorized-connection
// probe and never prompts.
type Bridge interface {
	RequestAccounts(ctx context.Context, strategy providers.Strategy) ([]common.Address, error)
	Accounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (uint64, error)
	Flags(ctx context.Context) (ProviderFlags, error)
	Close()
}
