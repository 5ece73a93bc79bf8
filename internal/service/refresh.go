package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/pkg/log"
	"github.com/nguyenkhoi/auth-service/internal/storage"

	"github.com/google/uuid"
)

// IssueRefreshToken выпускает новый refresh-токен в цепочке chainID.
//
// Перед вставкой применяется потолок на пользователя: самые старые по
// issued_at активные токены отзываются одним условным оператором хранилища
// так, чтобы после вставки активных осталось не больше
// MaxRefreshTokensPerUser.
func (s *Service) IssueRefreshToken(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, chainID, ip, userAgent string) (*models.RefreshToken, error) {
	const (
		op          = "service.refresh.IssueRefreshToken"
		maxAttempts = 5
	)

	lg := log.From(ctx)

	if s.cfg.MaxRefreshTokensPerUser > 0 {
		evicted, err := s.storage.RevokeExcessTokens(ctx, userID, s.cfg.MaxRefreshTokensPerUser-1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if evicted > 0 {
			lg.Info("refresh_cap_evicted",
				slog.String("op", op),
				slog.String("user_id", userID.String()),
				slog.Int64("evicted", evicted),
			)
		}
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		identifier, err := generateTokenIdentifier()
		if err != nil {
			lg.Error("refresh_rand_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		now := time.Now().UTC()
		token := &models.RefreshToken{
			UserID:    userID,
			SessionID: sessionID,
			Token:     identifier,
			ChainID:   chainID,
			IssuedAt:  now,
			ExpiryAt:  now.Add(s.cfg.RefreshTokenTTL),
			Revoked:   false,
			IPAddress: ip,
			UserAgent: userAgent,
		}

		if err := s.storage.SaveRefreshToken(ctx, token); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия идентификатора — пробуем сгенерировать заново.
				continue
			}

			lg.Error("save_refresh_token_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return token, nil
	}

	lg.Error("refresh_collision_exceeded", slog.String("op", op))

	return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenCollision)
}

// RotateRefreshToken валидирует предъявленный refresh-токен и выпускает
// следующий токен той же цепочки; старый отзывается и получает ссылку
// replaced_by на нового.
//
// Ядро детекции повторного использования: ротация строго однонаправленная.
// Предъявление уже отозванного токена трактуется как кража — вся цепочка
// немедленно отзывается ДО возврата ошибки, независимо от того, обработает
// ли её вызывающий. Гонку двух конкурентных ротаций одной головы решает
// атомарный захват (ClaimRefreshToken): проигравший тоже считается reuse.
func (s *Service) RotateRefreshToken(ctx context.Context, oldToken, ip, userAgent string) (*models.RefreshToken, error) {
	const op = "service.refresh.RotateRefreshToken"

	lg := log.From(ctx)

	old, err := s.storage.RefreshTokenByToken(ctx, oldToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_lookup_not_found", slog.String("op", op))
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if old.Revoked {
		s.poisonChain(ctx, old)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenReused)
	}

	if old.ExpiredAt(time.Now().UTC()) {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	claimed, err := s.storage.ClaimRefreshToken(ctx, old.Token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !claimed {
		// Голову успела захватить конкурентная ротация — трактуем как reuse.
		s.poisonChain(ctx, old)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenReused)
	}

	next, err := s.IssueRefreshToken(ctx, old.UserID, old.SessionID, old.ChainID, ip, userAgent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.SetReplacedBy(ctx, old.Token, next.Token); err != nil {
		lg.Error("refresh_set_replaced_by_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	s.recordLedger(ctx, old, models.ReasonTokenRotation)

	return next, nil
}

// RevokeChain отзывает все активные токены цепочки.
func (s *Service) RevokeChain(ctx context.Context, chainID string) error {
	const op = "service.refresh.RevokeChain"

	if _, err := s.storage.RevokeChain(ctx, chainID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RevokeAllUserTokens отзывает все активные refresh-токены пользователя.
func (s *Service) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	const op = "service.refresh.RevokeAllUserTokens"

	if _, err := s.storage.RevokeAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CountActiveTokens — число неотозванных refresh-токенов пользователя.
func (s *Service) CountActiveTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "service.refresh.CountActiveTokens"

	n, err := s.storage.CountActiveTokens(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ActiveTokensForUser возвращает активные refresh-токены пользователя.
func (s *Service) ActiveTokensForUser(ctx context.Context, userID uuid.UUID) ([]models.RefreshToken, error) {
	const op = "service.refresh.ActiveTokensForUser"

	tokens, err := s.storage.ActiveTokensByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tokens, nil
}

// SweepExpiredTokens удаляет просроченные refresh-токены.
// Обслуживающая операция для джанитора: идемпотентна и безопасна
// параллельно живому трафику.
func (s *Service) SweepExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	const op = "service.refresh.SweepExpiredTokens"

	n, err := s.storage.DeleteExpiredTokens(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// poisonChain отзывает цепочку скомпрометированного токена и фиксирует
// инцидент в журнале отзыва. Ошибки не прерывают основной поток —
// поход завершится ErrTokenReused в любом случае.
func (s *Service) poisonChain(ctx context.Context, token *models.RefreshToken) {
	const op = "service.refresh.poisonChain"

	lg := log.From(ctx)
	lg.Warn("refresh_reuse_detected",
		slog.String("op", op),
		slog.String("user_id", token.UserID.String()),
		slog.String("chain_id", token.ChainID),
	)

	if _, err := s.storage.RevokeChain(ctx, token.ChainID); err != nil {
		lg.Error("revoke_chain_failed",
			slog.String("op", op),
			slog.String("chain_id", token.ChainID),
			slog.String("err", err.Error()),
		)
	}

	s.recordLedger(ctx, token, models.ReasonSecurityBreach)
}

// recordLedger добавляет refresh-токен в журнал отзыва (best-effort).
func (s *Service) recordLedger(ctx context.Context, token *models.RefreshToken, reason models.RevocationReason) {
	const op = "service.refresh.recordLedger"

	userID := token.UserID
	if err := s.RecordRevocation(ctx, token.Token, &userID, token.ChainID, token.ExpiryAt, reason); err != nil {
		log.From(ctx).Error("ledger_record_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}

// generateTokenIdentifier выдаёт непрозрачный идентификатор refresh-токена:
// 32 случайных байта в base64url без паддинга.
func generateTokenIdentifier() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
