package wallet

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"walletgo/internal/providers"
)

// SwitchableBridge wraps the active bridge and lets the runtime swap it when
// the user saves a new endpoint, without rebuilding the engine.
type SwitchableBridge struct {
	mu sync.RWMutex

	endpoint string
	bridge   Bridge
}

func NewSwitchableBridge(ctx context.Context, endpoint string) (*SwitchableBridge, error) {
	bridge, err := DialBridge(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return &SwitchableBridge{
		endpoint: endpoint,
		bridge:   bridge,
	}, nil
}

// Apply dials the new endpoint and swaps it in. The previous bridge is
// closed after the swap so in-flight calls fail fast instead of hanging on a
// dead endpoint.
func (s *SwitchableBridge) Apply(ctx context.Context, endpoint string) error {
	if s.Endpoint() == endpoint {
		return nil
	}

	next, err := DialBridge(ctx, endpoint)
	if err != nil {
		return err
	}

	s.mu.Lock()
	current := s.bridge
	s.bridge = next
	s.endpoint = endpoint
	s.mu.Unlock()

	if current != nil {
		current.Close()
	}

	return nil
}

func (s *SwitchableBridge) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.endpoint
}

func (s *SwitchableBridge) RequestAccounts(ctx context.Context, strategy providers.Strategy) ([]common.Address, error) {
	return s.current().RequestAccounts(ctx, strategy)
}

func (s *SwitchableBridge) Accounts(ctx context.Context) ([]common.Address, error) {
	return s.current().Accounts(ctx)
}

func (s *SwitchableBridge) ChainID(ctx context.Context) (uint64, error) {
	return s.current().ChainID(ctx)
}

func (s *SwitchableBridge) Flags(ctx context.Context) (ProviderFlags, error) {
	return s.current().Flags(ctx)
}

func (s *SwitchableBridge) Close() {
	bridge := s.current()
	if bridge != nil {
		bridge.Close()
	}
}

func (s *SwitchableBridge) current() Bridge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bridge
}
