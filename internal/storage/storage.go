package storage

import (
	"context"
	"errors"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound — запись не найдена (пользователь/токен/сессия/привязка).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/token/jti/привязка).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionStorage выполняет операции над пользовательскими сессиями.
type SessionStorage interface {
	// SaveSession сохраняет новую сессию.
	SaveSession(ctx context.Context, session *models.UserSession) error
	// SessionByID находит сессию по ID.
	SessionByID(ctx context.Context, id uuid.UUID) (*models.UserSession, error)
	// TouchSession обновляет last_active у неотозванной сессии.
	TouchSession(ctx context.Context, id uuid.UUID, now time.Time) error
	// RevokeSession помечает сессию отозванной.
	RevokeSession(ctx context.Context, id uuid.UUID) error
	// RevokeAllUserSessions отзывает все активные сессии пользователя.
	RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	// ActiveSessionsByUser возвращает неотозванные сессии пользователя.
	ActiveSessionsByUser(ctx context.Context, userID uuid.UUID) ([]models.UserSession, error)
	// CountActiveSessions — число неотозванных сессий пользователя.
	CountActiveSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	// RevokeExcessSessions одним оператором отзывает наименее активные
	// (last_active по возрастанию) сессии так, чтобы активных осталось
	// не больше keep. Возвращает число отозванных.
	RevokeExcessSessions(ctx context.Context, userID uuid.UUID, keep int) (int64, error)
	// RevokeInactiveSessions отзывает сессии с last_active раньше threshold.
	RevokeInactiveSessions(ctx context.Context, threshold time.Time) (int64, error)
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// RefreshTokenByToken находит запись по непрозрачному идентификатору.
	RefreshTokenByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	// ClaimRefreshToken атомарно помечает токен отозванным, если он ещё
	// не был отозван. Возвращает:
	//	(true, nil)  — токен был активен и отозван сейчас (голова захвачена);
	//	(false, nil) — токен существует, но уже отозван;
	//	(false, ErrNotFound) — токен не найден.
	ClaimRefreshToken(ctx context.Context, token string) (bool, error)
	// SetReplacedBy проставляет ссылку на следующий токен цепочки.
	SetReplacedBy(ctx context.Context, token, replacedBy string) error
	// RevokeChain отзывает все активные токены цепочки.
	RevokeChain(ctx context.Context, chainID string) (int64, error)
	// RevokeAllUserTokens отзывает все активные токены пользователя.
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) (int64, error)
	// ActiveTokensByUser возвращает неотозванные токены пользователя.
	ActiveTokensByUser(ctx context.Context, userID uuid.UUID) ([]models.RefreshToken, error)
	// CountActiveTokens — число неотозванных токенов пользователя.
	CountActiveTokens(ctx context.Context, userID uuid.UUID) (int64, error)
	// RevokeExcessTokens одним оператором отзывает самые старые
	// (issued_at по возрастанию) активные токены так, чтобы активных
	// осталось не больше keep. Возвращает число отозванных.
	RevokeExcessTokens(ctx context.Context, userID uuid.UUID, keep int) (int64, error)
	// DeleteExpiredTokens удаляет все просроченные токены.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// RevokedTokenStorage выполняет операции над журналом отзыва (по jti).
type RevokedTokenStorage interface {
	// SaveRevokedToken добавляет запись в журнал. Повторная запись того же
	// jti — no-op (первая запись побеждает), а не ошибка.
	SaveRevokedToken(ctx context.Context, token *models.RevokedToken) error
	// IsTokenRevoked — проверка наличия jti в журнале.
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	// DeleteExpiredRevocations удаляет записи с истекшим expiry_at.
	DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}

// ExternalAccountStorage выполняет операции над привязками внешних аккаунтов.
type ExternalAccountStorage interface {
	// SaveExternalAccount сохраняет привязку провайдер→пользователь.
	SaveExternalAccount(ctx context.Context, account *models.ExternalAccount) error
	// ExternalAccountByProviderID находит привязку по паре (provider, provider_user_id).
	ExternalAccountByProviderID(ctx context.Context, provider models.OAuthProvider, providerUserID string) (*models.ExternalAccount, error)
	// ExternalAccountByUser находит привязку пользователя к провайдеру.
	ExternalAccountByUser(ctx context.Context, userID uuid.UUID, provider models.OAuthProvider) (*models.ExternalAccount, error)
	// UpdateExternalAccountTokens обновляет сохранённые (зашифрованные)
	// токены провайдера на существующей привязке.
	UpdateExternalAccountTokens(ctx context.Context, provider models.OAuthProvider, providerUserID, accessToken, refreshToken string) error
	// DeleteExternalAccount удаляет привязку пользователя к провайдеру.
	DeleteExternalAccount(ctx context.Context, userID uuid.UUID, provider models.OAuthProvider) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	SessionStorage
	RefreshTokenStorage
	RevokedTokenStorage
	ExternalAccountStorage
	Close()
}
