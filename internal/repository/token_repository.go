package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guilhermereis1k/oscar-cinema/internal/domain"
)

// TokenRepo persists refresh tokens. Only the SHA-256 hash of a token is
// stored; the raw value goes back to the client once and is never kept.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo constructs a TokenRepo with the given DB handle.
func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

const refreshTokenColumns = `user_id, expires_at, revoked_at`

// StoreRefresh records a refresh token hash for a user. Expiry is stored
// in UTC like every other timestamp in the schema.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, tokenHash, exp.UTC())
	return err
}

// refreshUsable reports whether a stored refresh token may still be
// exchanged: not revoked and not past its expiry at the given instant.
func refreshUsable(expiresAt time.Time, revokedAt sql.NullTime, now time.Time) bool {
	if revokedAt.Valid {
		return false
	}
	return !now.UTC().After(expiresAt)
}

// ValidateRefresh resolves a token hash to its owning user. Unknown,
// revoked and expired tokens all come back as domain.ErrNotFound so the
// handler cannot leak which of the three it was.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	const q = `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE token_hash = ? LIMIT 1`
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: refresh token", domain.ErrNotFound)
		}
		return 0, err
	}
	if !refreshUsable(expiresAt, revokedAt, time.Now()) {
		return 0, fmt.Errorf("%w: refresh token", domain.ErrNotFound)
	}
	return userID, nil
}

// RevokeByHash marks one token revoked. Revoking an already revoked token
// is a no-op; an unknown hash is domain.ErrNotFound.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = CURRENT_TIMESTAMP WHERE token_hash = ? AND revoked_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, tokenHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM refresh_tokens WHERE token_hash = ?`, tokenHash).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: refresh token", domain.ErrNotFound)
			}
			return err
		}
	}
	return nil
}

// RevokeAllForUser revokes every active token of a user. A user with no
// active tokens is not an error; logout must be idempotent.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	const q = `UPDATE refresh_tokens SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}
