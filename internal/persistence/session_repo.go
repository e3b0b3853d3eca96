package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"walletgo/internal/providers"
	"walletgo/internal/wallet"
)

// SessionRepo stores the single remembered wallet session. It implements
// wallet.SessionStore.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Last(ctx context.Context) (wallet.Session, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT strategy, account, chain_id, connected_at
		FROM wallet_sessions
		WHERE id = 1
	`)

	var (
		session     wallet.Session
		strategy    string
		account     string
		connectedAt int64
	)
	err := row.Scan(&strategy, &account, &session.ChainID, &connectedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return wallet.Session{}, false, nil
	}
	if err != nil {
		return wallet.Session{}, false, fmt.Errorf("scan session: %w", err)
	}

	session.Strategy = providers.Strategy(strategy)
	session.Account = common.HexToAddress(account)
	session.ConnectedAt = fromUnixMillis(connectedAt)

	return session, true, nil
}

func (r *SessionRepo) Save(ctx context.Context, session wallet.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallet_sessions(id, strategy, account, chain_id, connected_at)
		VALUES(1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			strategy = excluded.strategy,
			account = excluded.account,
			chain_id = excluded.chain_id,
			connected_at = excluded.connected_at
	`, string(session.Strategy), session.Account.Hex(), session.ChainID, toUnixMillis(session.ConnectedAt))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wallet_sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
