package wallet

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"walletgo/internal/providers"
)

// Session is the authorized-connection memory: the last strategy the user
// approved plus the account and chain it resolved to. The eager probe only
// ever reconnects through a remembered session, so a fresh install never
// prompts.
type Session struct {
	Strategy    providers.Strategy
	Account     common.Address
	ChainID     uint64
	ConnectedAt time.Time
}

// SessionStore persists at most one session.
type SessionStore interface {
	Last(ctx context.Context) (Session, bool, error)
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}
