package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"walletgo/internal/providers"
)

// RPCBridge talks JSON-RPC to a local wallet bridge endpoint (http, ws or
// ipc). Standard eth_* methods cover accounts and chain discovery; the
// bridge's own namespace selects the wallet extension for the interactive
// handshake and exposes the injected-provider flags.
type RPCBridge struct {
	client *rpc.Client
}

func DialBridge(ctx context.Context, endpoint string) (*RPCBridge, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial wallet bridge: %w", err)
	}

	return &RPCBridge{client: client}, nil
}

func (b *RPCBridge) RequestAccounts(ctx context.Context, strategy providers.Strategy) ([]common.Address, error) {
	var accounts []common.Address
	if err := b.client.CallContext(ctx, &accounts, "bridge_requestAccounts", string(strategy)); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (b *RPCBridge) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := b.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (b *RPCBridge) ChainID(ctx context.Context) (uint64, error) {
	var raw hexutil.Big
	if err := b.client.CallContext(ctx, &raw, "eth_chainId"); err != nil {
		return 0, err
	}

	return raw.ToInt().Uint64(), nil
}

func (b *RPCBridge) Flags(ctx context.Context) (ProviderFlags, error) {
	var flags ProviderFlags
	if err := b.client.CallContext(ctx, &flags, "bridge_clientFlags"); err != nil {
		return ProviderFlags{}, err
	}

	return flags, nil
}

func (b *RPCBridge) Close() {
	b.client.Close()
}
