package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/models"
)

// SaveRevokedToken добавляет запись в журнал отзыва. Повторная запись того же
// jti — no-op: первая запись побеждает.
func (s *Storage) SaveRevokedToken(ctx context.Context, token *models.RevokedToken) error {
	const op = "storage.postgres.SaveRevokedToken"

	query := `
        INSERT INTO revoked_tokens(jti, user_id, chain_id, revoked_at, expiry_at, reason)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (jti) DO NOTHING
    `

	_, err := s.db.Exec(ctx, query,
		token.JTI,
		token.UserID,
		token.ChainID,
		token.RevokedAt,
		token.ExpiryAt,
		token.Reason,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsTokenRevoked — проверка наличия jti в журнале.
func (s *Storage) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	const op = "storage.postgres.IsTokenRevoked"

	query := `
        SELECT EXISTS(
            SELECT 1 FROM revoked_tokens WHERE jti = $1
        )
    `

	var revoked bool
	if err := s.db.QueryRow(ctx, query, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return revoked, nil
}

// DeleteExpiredRevocations удаляет записи с истекшим expiry_at.
func (s *Storage) DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.postgres.DeleteExpiredRevocations"

	query := `
        DELETE FROM revoked_tokens
        WHERE expiry_at <= $1
    `

	cmdTag, err := s.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}
