package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/hamkke-hr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked server-side. Tokens are stored hashed.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID string, token string, expiresAt int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error

	// Rotate revokes the presented token and stores its replacement as
	// one unit, so a failure cannot leave the user with neither.
	Rotate(ctx context.Context, oldToken string, userID string, newToken string, expiresAt int64) error
}

type refreshTokenRepository struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) hashToken(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Store implements RefreshTokenRepository.
func (r *refreshTokenRepository) Store(ctx context.Context, userID string, token string, expiresAt int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, revoked)
		VALUES ($1, $2, to_timestamp($3), false)
	`
	if _, err := q.Exec(ctx, query, userID, r.hashToken(token), expiresAt); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// IsRevoked implements RefreshTokenRepository. Unknown tokens count as
// revoked: only tokens this server issued and still trusts may refresh.
func (r *refreshTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var revoked bool
	query := `SELECT revoked FROM refresh_tokens WHERE token_hash = $1`
	err := q.QueryRow(ctx, query, r.hashToken(token)).Scan(&revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}
	return revoked, nil
}

// Rotate implements RefreshTokenRepository.
func (r *refreshTokenRepository) Rotate(ctx context.Context, oldToken string, userID string, newToken string, expiresAt int64) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		if err := r.Revoke(txCtx, oldToken); err != nil {
			return err
		}
		return r.Store(txCtx, userID, newToken, expiresAt)
	})
}

// Revoke implements RefreshTokenRepository.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE refresh_tokens SET revoked = true WHERE token_hash = $1`
	if _, err := q.Exec(ctx, query, r.hashToken(token)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
