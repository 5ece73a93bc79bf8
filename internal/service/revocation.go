package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/storage"

	"github.com/google/uuid"
)

// RecordRevocation добавляет jti в журнал отзыва.
//
// Повторная запись того же jti — no-op (первая запись побеждает): один и
// тот же токен не может быть отозван дважды с конфликтующими причинами.
func (s *Service) RecordRevocation(ctx context.Context, jti string, userID *uuid.UUID, chainID string, expiry time.Time, reason models.RevocationReason) error {
	const op = "service.revocation.RecordRevocation"

	record := &models.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ChainID:   chainID,
		RevokedAt: time.Now().UTC(),
		ExpiryAt:  expiry,
		Reason:    reason,
	}

	if err := s.storage.SaveRevokedToken(ctx, record); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsRevoked — проверка jti по журналу отзыва.
func (s *Service) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const op = "service.revocation.IsRevoked"

	revoked, err := s.storage.IsTokenRevoked(ctx, jti)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return revoked, nil
}

// SweepRevokedTokens удаляет записи журнала с истекшим expiry_at:
// просроченный токен бесполезен и без журнальной записи, а журнал
// перестаёт расти бесконтрольно.
func (s *Service) SweepRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	const op = "service.revocation.SweepRevokedTokens"

	n, err := s.storage.DeleteExpiredRevocations(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}
