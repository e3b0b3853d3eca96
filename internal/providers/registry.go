package providers

import (
	"fmt"
	"strings"
)

// Strategy identifies which wallet-connection backend a handle drives.
type Strategy string

const (
	// StrategyInjected talks to the general injected wallet family
	// (MetaMask, Trust and compatible extensions).
	StrategyInjected Strategy = "injected"
	// StrategyBinanceChain talks to the Binance Chain wallet extension.
	StrategyBinanceChain Strategy = "binance_chain"
)

// EVM chain IDs accepted by the pre-configured handles.
const (
	ChainMainnet uint64 = 1
	ChainRopsten uint64 = 3
	ChainRinkeby uint64 = 4
	ChainGoerli  uint64 = 5
	ChainKovan   uint64 = 42
	ChainBSC     uint64 = 56
)

// Handle is an opaque wallet-provider handle: a connection strategy plus the
// allow-list of chain IDs it may connect to. Handles are built once at
// startup and never mutated; the state machine holds them by reference and
// does not own their lifecycle.
type Handle struct {
	strategy Strategy
	chainIDs []uint64
}

// The two process-wide handles. Injected covers the five networks the dApp
// ships on; BinanceChain is pinned to BSC.
var (
	Injected = NewHandle(StrategyInjected,
		ChainMainnet, ChainRopsten, ChainRinkeby, ChainGoerli, ChainKovan)
	BinanceChain = NewHandle(StrategyBinanceChain, ChainBSC)
)

// NewHandle builds a provider handle for the given strategy restricted to the
// given chain IDs.
func NewHandle(strategy Strategy, chainIDs ...uint64) *Handle {
	ids := make([]uint64, len(chainIDs))
	copy(ids, chainIDs)

	return &Handle{
		strategy: strategy,
		chainIDs: ids,
	}
}

func (h *Handle) Strategy() Strategy {
	return h.strategy
}

// Supports reports whether chainID is on the handle's allow-list.
func (h *Handle) Supports(chainID uint64) bool {
	for _, id := range h.chainIDs {
		if id == chainID {
			return true
		}
	}

	return false
}

// ChainIDs returns a copy of the allow-list.
func (h *Handle) ChainIDs() []uint64 {
	ids := make([]uint64, len(h.chainIDs))
	copy(ids, h.chainIDs)

	return ids
}

func (h *Handle) String() string {
	if h == nil {
		return "<nil>"
	}
	ids := make([]string, 0, len(h.chainIDs))
	for _, id := range h.chainIDs {
		ids = append(ids, fmt.Sprintf("%d", id))
	}

	return string(h.strategy) + "[" + strings.Join(ids, ",") + "]"
}

// ByStrategy resolves one of the two registry handles by strategy name.
func ByStrategy(strategy Strategy) (*Handle, bool) {
	switch strategy {
	case StrategyInjected:
		return Injected, true
	case StrategyBinanceChain:
		return BinanceChain, true
	default:
		return nil, false
	}
}
