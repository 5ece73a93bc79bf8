package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/storage"
)

// SaveSession сохраняет новую сессию.
func (s *Storage) SaveSession(ctx context.Context, session *models.UserSession) error {
	const op = "storage.postgres.SaveSession"

	query := `
        INSERT INTO user_sessions(id, user_id, device_info, ip_address, user_agent, created_at, last_active, revoked)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := s.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.DeviceInfo,
		session.IPAddress,
		session.UserAgent,
		session.CreatedAt,
		session.LastActive,
		session.Revoked,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SessionByID находит сессию по ID.
func (s *Storage) SessionByID(ctx context.Context, id uuid.UUID) (*models.UserSession, error) {
	const op = "storage.postgres.SessionByID"

	query := `
        SELECT id, user_id, device_info, ip_address, user_agent, created_at, last_active, revoked
        FROM user_sessions
        WHERE id = $1
    `

	var session models.UserSession
	err := s.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.DeviceInfo,
		&session.IPAddress,
		&session.UserAgent,
		&session.CreatedAt,
		&session.LastActive,
		&session.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &session, nil
}

// TouchSession обновляет last_active у неотозванной сессии.
func (s *Storage) TouchSession(ctx context.Context, id uuid.UUID, now time.Time) error {
	const op = "storage.postgres.TouchSession"

	query := `
        UPDATE user_sessions
        SET last_active = $2
        WHERE id = $1 AND revoked = FALSE
    `

	cmdTag, err := s.db.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RevokeSession помечает сессию отозванной.
func (s *Storage) RevokeSession(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.RevokeSession"

	query := `
        UPDATE user_sessions
        SET revoked = TRUE
        WHERE id = $1
    `

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RevokeAllUserSessions отзывает все активные сессии пользователя.
func (s *Storage) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "storage.postgres.RevokeAllUserSessions"

	query := `
        UPDATE user_sessions
        SET revoked = TRUE
        WHERE user_id = $1 AND revoked = FALSE
    `

	cmdTag, err := s.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}

// ActiveSessionsByUser возвращает неотозванные сессии пользователя,
// свежие по last_active сначала.
func (s *Storage) ActiveSessionsByUser(ctx context.Context, userID uuid.UUID) ([]models.UserSession, error) {
	const op = "storage.postgres.ActiveSessionsByUser"

	query := `
        SELECT id, user_id, device_info, ip_address, user_agent, created_at, last_active, revoked
        FROM user_sessions
        WHERE user_id = $1 AND revoked = FALSE
        ORDER BY last_active DESC
    `

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var sessions []models.UserSession
	for rows.Next() {
		var session models.UserSession
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.DeviceInfo,
			&session.IPAddress,
			&session.UserAgent,
			&session.CreatedAt,
			&session.LastActive,
			&session.Revoked,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

// CountActiveSessions — число неотозванных сессий пользователя.
func (s *Storage) CountActiveSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "storage.postgres.CountActiveSessions"

	query := `
        SELECT COUNT(*)
        FROM user_sessions
        WHERE user_id = $1 AND revoked = FALSE
    `

	var count int64
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// RevokeExcessSessions одним оператором отзывает наименее активные сессии
// так, чтобы активных осталось не больше keep.
func (s *Storage) RevokeExcessSessions(ctx context.Context, userID uuid.UUID, keep int) (int64, error) {
	const op = "storage.postgres.RevokeExcessSessions"

	query := `
        UPDATE user_sessions
        SET revoked = TRUE
        WHERE id IN (
            SELECT id
            FROM user_sessions
            WHERE user_id = $1 AND revoked = FALSE
            ORDER BY last_active DESC
            OFFSET $2
        )
    `

	cmdTag, err := s.db.Exec(ctx, query, userID, keep)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}

// RevokeInactiveSessions отзывает сессии с last_active раньше threshold.
func (s *Storage) RevokeInactiveSessions(ctx context.Context, threshold time.Time) (int64, error) {
	const op = "storage.postgres.RevokeInactiveSessions"

	query := `
        UPDATE user_sessions
        SET revoked = TRUE
        WHERE revoked = FALSE AND last_active < $1
    `

	cmdTag, err := s.db.Exec(ctx, query, threshold)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}
