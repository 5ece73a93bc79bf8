package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/keys"
	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/pkg/log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTypeAccess — значение claim token_type у access-токенов.
const tokenTypeAccess = "access"

// AccessClaims — типизированные claims access-токена.
// Заполняется один раз при выпуске/проверке; никакой рефлексии по claims
// дальше по стеку.
type AccessClaims struct {
	Email     string   `json:"email,omitempty"`
	Username  string   `json:"username,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
	ChainID   string   `json:"chain_id,omitempty"`
	TokenType string   `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID возвращает subject как UUID пользователя.
func (c *AccessClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// MintAccessToken выпускает подписанный access-токен для пользователя
// в рамках сессии и цепочки ротации.
//
// Claims: sub/iss/aud/iat/exp/jti + email, username, roles, session_id,
// chain_id, token_type="access". Подпись RS256 приватным ключом,
// kid конфигурированного ключа в заголовке. exp = iat + AccessTokenTTL,
// все метки времени в UTC.
func (s *Service) MintAccessToken(ctx context.Context, user *models.User, sessionID uuid.UUID, chainID string) (string, time.Time, error) {
	const op = "service.token.MintAccessToken"

	lg := log.From(ctx)
	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.AccessTokenTTL)

	claims := AccessClaims{
		Email:     user.Email,
		Username:  user.Username,
		Roles:     user.Roles,
		SessionID: sessionID.String(),
		ChainID:   chainID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings(s.cfg.Audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.keys.KeyID

	signed, err := token.SignedString(s.keys.Private)
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return signed, expiresAt, nil
}

// VerifyAccessToken проверяет access-токен: подпись публичным ключом,
// точное совпадение issuer/audience, срок действия, тип токена и журнал
// отзыва по jti (defense-in-depth поверх exp).
//
// Ошибки: ErrTokenExpired строго для истекших токенов (и только для них),
// ErrTokenRevoked для отозванных по журналу, ErrInvalidToken для всего
// остального.
func (s *Service) VerifyAccessToken(ctx context.Context, tokenStr string) (*AccessClaims, error) {
	const op = "service.token.VerifyAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodRS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			if kid, ok := t.Header["kid"].(string); ok && kid != s.keys.KeyID {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return s.keys.Public, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience...),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	revoked, err := s.storage.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	return claims, nil
}

// PublicJWKSet — публичный ключ подписи access-токенов в формате JWK Set.
func (s *Service) PublicJWKSet() keys.JWKSet {
	if s.keys == nil {
		return keys.JWKSet{Keys: []keys.JWK{}}
	}

	return s.keys.PublicJWKSet()
}

// ParseUnverifiedClaims разбирает токен без проверки подписи и издателя.
// Только для внутреннего бухучёта (например, достать jti при logout);
// никогда не использовать для решений о доступе.
func (s *Service) ParseUnverifiedClaims(tokenStr string) (*AccessClaims, error) {
	const op = "service.token.ParseUnverifiedClaims"

	var claims AccessClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return &claims, nil
}

// generateChainID выдаёт идентификатор новой цепочки ротации.
func generateChainID() string {
	return uuid.NewString()
}
