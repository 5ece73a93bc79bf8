package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/pkg/log"
	"github.com/nguyenkhoi/auth-service/internal/storage"

	"github.com/google/uuid"
)

// CreateSession создаёт логическую сессию пользователя.
//
// Потолок сессий применяется до вставки: наименее активные по last_active
// сессии отзываются так, чтобы после вставки активных осталось не больше
// MaxSessionsPerUser. Политика выселения намеренно отличается от
// refresh-токенов (там — самые старые по issued_at).
func (s *Service) CreateSession(ctx context.Context, userID uuid.UUID, ip, userAgent string) (*models.UserSession, error) {
	const op = "service.session.CreateSession"

	lg := log.From(ctx)

	if s.cfg.MaxSessionsPerUser > 0 {
		active, err := s.storage.CountActiveSessions(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		// Выселение нужно только на границе потолка; обычный путь
		// обходится счётчиком без UPDATE.
		if active >= int64(s.cfg.MaxSessionsPerUser) {
			evicted, err := s.storage.RevokeExcessSessions(ctx, userID, s.cfg.MaxSessionsPerUser-1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if evicted > 0 {
				lg.Info("session_cap_evicted",
					slog.String("op", op),
					slog.String("user_id", userID.String()),
					slog.Int64("evicted", evicted),
				)
			}
		}
	}

	now := time.Now().UTC()
	session := &models.UserSession{
		ID:         uuid.New(),
		UserID:     userID,
		DeviceInfo: extractDeviceInfo(userAgent),
		IPAddress:  ip,
		UserAgent:  userAgent,
		CreatedAt:  now,
		LastActive: now,
		Revoked:    false,
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

// TouchSession обновляет last_active сессии; вызывается на каждом
// аутентифицированном пути, использующем сессию.
func (s *Service) TouchSession(ctx context.Context, sessionID uuid.UUID) error {
	const op = "service.session.TouchSession"

	if err := s.storage.TouchSession(ctx, sessionID, time.Now().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsSessionValid сообщает, действительна ли сессия: не отозвана и
// last_active внутри скользящего окна неактивности (не фиксированный TTL).
func (s *Service) IsSessionValid(session *models.UserSession) bool {
	if session == nil || session.Revoked {
		return false
	}

	threshold := time.Now().UTC().Add(-s.cfg.SessionInactivity)
	return session.LastActive.After(threshold)
}

// SessionByID возвращает сессию по идентификатору.
func (s *Service) SessionByID(ctx context.Context, sessionID uuid.UUID) (*models.UserSession, error) {
	const op = "service.session.SessionByID"

	session, err := s.storage.SessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

// RevokeSession отзывает сессию.
func (s *Service) RevokeSession(ctx context.Context, sessionID uuid.UUID) error {
	const op = "service.session.RevokeSession"

	if err := s.storage.RevokeSession(ctx, sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RevokeAllUserSessions отзывает все активные сессии пользователя.
func (s *Service) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	const op = "service.session.RevokeAllUserSessions"

	if _, err := s.storage.RevokeAllUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ActiveSessionsForUser возвращает активные сессии пользователя.
func (s *Service) ActiveSessionsForUser(ctx context.Context, userID uuid.UUID) ([]models.UserSession, error) {
	const op = "service.session.ActiveSessionsForUser"

	sessions, err := s.storage.ActiveSessionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

// DetectSuspiciousActivity — эвристика аномалии: больше трёх различных IP
// среди активных сессий пользователя. Сигнал, а не блокировка: решение
// (например, форс повторной аутентификации) остаётся за вызывающим.
func (s *Service) DetectSuspiciousActivity(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "service.session.DetectSuspiciousActivity"

	sessions, err := s.storage.ActiveSessionsByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	ips := make(map[string]struct{}, len(sessions))
	for _, session := range sessions {
		ips[session.IPAddress] = struct{}{}
	}

	return len(ips) > 3, nil
}

// SweepInactiveSessions отзывает (не удаляет) сессии, простоявшие дольше
// окна неактивности.
func (s *Service) SweepInactiveSessions(ctx context.Context, now time.Time) (int64, error) {
	const op = "service.session.SweepInactiveSessions"

	threshold := now.Add(-s.cfg.SessionInactivity)
	n, err := s.storage.RevokeInactiveSessions(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// extractDeviceInfo — грубая классификация устройства по user-agent.
func extractDeviceInfo(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return "Unknown Device"
	}

	switch {
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return "Mobile Device"
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		return "Tablet"
	case strings.Contains(ua, "windows"):
		return "Windows Desktop"
	case strings.Contains(ua, "mac"):
		return "Mac Desktop"
	case strings.Contains(ua, "linux"):
		return "Linux Desktop"
	default:
		return "Desktop Browser"
	}
}
