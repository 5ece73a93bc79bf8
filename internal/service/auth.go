package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/pkg/log"
	"github.com/nguyenkhoi/auth-service/internal/pkg/redact"
	"github.com/nguyenkhoi/auth-service/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser регистрирует нового пользователя и выпускает первую пару токенов.
func (s *Service) RegisterUser(ctx context.Context, email, password, ip, userAgent string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(password); err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		Username:     usernameFromEmail(normEmail),
		PasswordHash: hashedPassword,
		Roles:        []string{"user"},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.issueTokenPair(ctx, user, ip, userAgent)
}

// LoginUser выполняет вход по email+пароль.
func (s *Service) LoginUser(ctx context.Context, email, password, ip, userAgent string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.LoginUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !user.Active || !checkPassword(user.PasswordHash, password) {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.issueTokenPair(ctx, user, ip, userAgent)
}

// RefreshTokenPair обновляет пару токенов по refresh-токену:
// ротация цепочки, касание сессии, свежий access-токен.
func (s *Service) RefreshTokenPair(ctx context.Context, refreshToken, ip, userAgent string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RefreshTokenPair"

	next, err := s.RotateRefreshToken(ctx, refreshToken, ip, userAgent)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, next.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	sessionID := uuid.Nil
	if next.SessionID != nil {
		sessionID = *next.SessionID
		if err := s.TouchSession(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	accessToken, expiresAt, err := s.MintAccessToken(ctx, user, sessionID, next.ChainID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    next.Token,
		AccessExpiresAt: expiresAt,
	}, user.ID, nil
}

// Logout отзывает цепочку предъявленного refresh-токена и её сессию.
// Access-токен (если передан) попадает в журнал отзыва по jti с причиной
// LOGOUT — защита от доиспользования до истечения exp.
func (s *Service) Logout(ctx context.Context, refreshToken, accessToken string) error {
	const op = "service.auth.Logout"

	lg := log.From(ctx)

	token, err := s.storage.RefreshTokenByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.storage.RevokeChain(ctx, token.ChainID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if token.SessionID != nil {
		if err := s.RevokeSession(ctx, *token.SessionID); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if accessToken != "" {
		// Только бухучёт: подпись здесь не проверяется, решение о доступе
		// по этим claims не принимается.
		claims, err := s.ParseUnverifiedClaims(accessToken)
		if err == nil && claims.ID != "" && claims.ExpiresAt != nil {
			userID := token.UserID
			if err := s.RecordRevocation(ctx, claims.ID, &userID, token.ChainID, claims.ExpiresAt.Time, models.ReasonLogout); err != nil {
				lg.Warn("logout_ledger_failed",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
			}
		}
	}

	return nil
}

// ValidateAccessToken проверяет access-токен и действительность его сессии;
// живую сессию касается (last_active=now). Возвращает claims.
func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (*AccessClaims, error) {
	const op = "service.auth.ValidateAccessToken"

	claims, err := s.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if claims.SessionID != "" {
		sessionID, err := uuid.Parse(claims.SessionID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		session, err := s.SessionByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if !s.IsSessionValid(session) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
		}

		if err := s.TouchSession(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return claims, nil
}

// issueTokenPair — общий хвост логина/регистрации/внешнего логина:
// новая сессия, новая цепочка с одним refresh-токеном, подписанный
// access-токен с ссылками на обе.
func (s *Service) issueTokenPair(ctx context.Context, user *models.User, ip, userAgent string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.issueTokenPair"

	lg := log.From(ctx)

	session, err := s.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	chainID := generateChainID()
	sessionID := session.ID
	refresh, err := s.IssueRefreshToken(ctx, user.ID, &sessionID, chainID, ip, userAgent)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	accessToken, expiresAt, err := s.MintAccessToken(ctx, user, session.ID, chainID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if suspicious, err := s.DetectSuspiciousActivity(ctx, user.ID); err == nil && suspicious {
		lg.Warn("suspicious_activity_detected",
			slog.String("op", op),
			slog.String("user_id", user.ID.String()),
			slog.String("email", redact.Email(user.Email)),
		)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refresh.Token,
		AccessExpiresAt: expiresAt,
	}, user.ID, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}

// usernameFromEmail — username по умолчанию: локальная часть адреса.
func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}

	return email
}
