package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/storage"
)

// SaveRefreshToken сохраняет новый refresh-токен в БД.
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	const op = "storage.postgres.SaveRefreshToken"

	query := `
        INSERT INTO refresh_tokens(user_id, session_id, token, chain_id, issued_at, expiry_at, revoked, replaced_by, ip_address, user_agent)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `

	err := s.db.QueryRow(ctx, query,
		token.UserID,
		token.SessionID,
		token.Token,
		token.ChainID,
		token.IssuedAt,
		token.ExpiryAt,
		token.Revoked,
		token.ReplacedBy,
		token.IPAddress,
		token.UserAgent,
	).Scan(&token.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RefreshTokenByToken находит запись по непрозрачному идентификатору.
func (s *Storage) RefreshTokenByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	const op = "storage.postgres.RefreshTokenByToken"

	query := `
        SELECT id, user_id, session_id, token, chain_id, issued_at, expiry_at, revoked, replaced_by, ip_address, user_agent
        FROM refresh_tokens
        WHERE token = $1
    `

	var rec models.RefreshToken
	err := s.db.QueryRow(ctx, query, token).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.SessionID,
		&rec.Token,
		&rec.ChainID,
		&rec.IssuedAt,
		&rec.ExpiryAt,
		&rec.Revoked,
		&rec.ReplacedBy,
		&rec.IPAddress,
		&rec.UserAgent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &rec, nil
}

// ClaimRefreshToken атомарно помечает токен отозванным, если он ещё не был
// отозван. Возвращает:
//
//	(true, nil)  — токен был активен и отозван сейчас (голова захвачена);
//	(false, nil) — токен существует, но уже отозван;
//	(false, ErrNotFound) — токен не найден.
func (s *Storage) ClaimRefreshToken(ctx context.Context, token string) (bool, error) {
	const op = "storage.postgres.ClaimRefreshToken"

	const upd = `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE token = $1 AND revoked = FALSE
		RETURNING user_id
	`

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, upd, token).Scan(&userID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	const sel = `
		SELECT revoked
		FROM refresh_tokens
		WHERE token = $1
	`

	var revoked bool
	err = s.db.QueryRow(ctx, sel, token).Scan(&revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return false, nil
}

// SetReplacedBy проставляет ссылку на следующий токен цепочки.
func (s *Storage) SetReplacedBy(ctx context.Context, token, replacedBy string) error {
	const op = "storage.postgres.SetReplacedBy"

	query := `
        UPDATE refresh_tokens
        SET replaced_by = $2
        WHERE token = $1
    `

	cmdTag, err := s.db.Exec(ctx, query, token, replacedBy)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RevokeChain отзывает все активные токены цепочки.
func (s *Storage) RevokeChain(ctx context.Context, chainID string) (int64, error) {
	const op = "storage.postgres.RevokeChain"

	query := `
        UPDATE refresh_tokens
        SET revoked = TRUE
        WHERE chain_id = $1 AND revoked = FALSE
    `

	cmdTag, err := s.db.Exec(ctx, query, chainID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}

// RevokeAllUserTokens отзывает все активные токены пользователя.
func (s *Storage) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "storage.postgres.RevokeAllUserTokens"

	query := `
        UPDATE refresh_tokens
        SET revoked = TRUE
        WHERE user_id = $1 AND revoked = FALSE
    `

	cmdTag, err := s.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}

// ActiveTokensByUser возвращает неотозванные токены пользователя,
// свежие сначала.
func (s *Storage) ActiveTokensByUser(ctx context.Context, userID uuid.UUID) ([]models.RefreshToken, error) {
	const op = "storage.postgres.ActiveTokensByUser"

	query := `
        SELECT id, user_id, session_id, token, chain_id, issued_at, expiry_at, revoked, replaced_by, ip_address, user_agent
        FROM refresh_tokens
        WHERE user_id = $1 AND revoked = FALSE
        ORDER BY issued_at DESC
    `

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tokens []models.RefreshToken
	for rows.Next() {
		var rec models.RefreshToken
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.SessionID,
			&rec.Token,
			&rec.ChainID,
			&rec.IssuedAt,
			&rec.ExpiryAt,
			&rec.Revoked,
			&rec.ReplacedBy,
			&rec.IPAddress,
			&rec.UserAgent,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		tokens = append(tokens, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tokens, nil
}

// CountActiveTokens — число неотозванных токенов пользователя.
func (s *Storage) CountActiveTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "storage.postgres.CountActiveTokens"

	query := `
        SELECT COUNT(*)
        FROM refresh_tokens
        WHERE user_id = $1 AND revoked = FALSE
    `

	var count int64
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// RevokeExcessTokens одним оператором отзывает самые старые активные токены
// так, чтобы активных осталось не больше keep.
func (s *Storage) RevokeExcessTokens(ctx context.Context, userID uuid.UUID, keep int) (int64, error) {
	const op = "storage.postgres.RevokeExcessTokens"

	query := `
        UPDATE refresh_tokens
        SET revoked = TRUE
        WHERE id IN (
            SELECT id
            FROM refresh_tokens
            WHERE user_id = $1 AND revoked = FALSE
            ORDER BY issued_at DESC
            OFFSET $2
        )
    `

	cmdTag, err := s.db.Exec(ctx, query, userID, keep)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}

// DeleteExpiredTokens удаляет все просроченные токены.
func (s *Storage) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.postgres.DeleteExpiredTokens"

	query := `
        DELETE FROM refresh_tokens
        WHERE expiry_at <= $1
    `

	cmdTag, err := s.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}
