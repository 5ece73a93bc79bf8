package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/oauth"
	"github.com/nguyenkhoi/auth-service/internal/pkg/log"
	"github.com/nguyenkhoi/auth-service/internal/pkg/redact"
	"github.com/nguyenkhoi/auth-service/internal/storage"
)

// Ключи эфемерного состояния внешнего логина в StateStore.
// Записи живут не дольше StateTTL; удаляются только на успешном завершении,
// повторное завершение с тем же state гарантированно отклоняется.
const (
	stateKeyPrefix = "oauth2:state:"
	pkceKeyPrefix  = "oauth2:pkce:"

	stateValueValid = "valid"
)

// Provider — контракт внешнего identity-провайдера. Боевая реализация —
// oauth.GoogleClient; тесты подменяют на httptest-обёртку.
type Provider interface {
	// AuthCodeURL строит authorization URL с PKCE-челленджем.
	AuthCodeURL(state, codeChallenge, redirectURI string) string
	// Exchange меняет authorization-код на токены провайдера.
	Exchange(ctx context.Context, code, codeVerifier, redirectURI string) (*oauth.Tokens, error)
	// UserInfo запрашивает профиль пользователя по access-токену провайдера.
	UserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error)
}

// BeginExternalLogin начинает внешний логин: генерирует state и
// PKCE-верификатор, кладёт их в StateStore с TTL и возвращает
// authorization URL провайдера.
func (s *Service) BeginExternalLogin(ctx context.Context) (string, error) {
	const op = "service.oauth.BeginExternalLogin"

	if s.provider == nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidRequest)
	}

	state, err := generateURLToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	verifier, err := generateURLToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.states.Set(ctx, stateKeyPrefix+state, stateValueValid, s.oauthCfg.StateTTL); err != nil {
		return "", fmt.Errorf("%s: save state: %w", op, ErrInternal)
	}

	if err := s.states.Set(ctx, pkceKeyPrefix+state, verifier, s.oauthCfg.StateTTL); err != nil {
		return "", fmt.Errorf("%s: save verifier: %w", op, ErrInternal)
	}

	challenge := codeChallengeS256(verifier)

	log.From(ctx).Info("external_login_started", slog.String("op", op))

	return s.provider.AuthCodeURL(state, challenge, s.oauthCfg.GoogleRedirectURI), nil
}

// CompleteExternalLogin завершает внешний логин: проверяет state, достаёт
// PKCE-верификатор, меняет код на токены провайдера, запрашивает профиль,
// находит или создаёт локального пользователя и выпускает пару токенов.
// Записи state/verifier удаляются только на успешном пути, поэтому повторное
// завершение с тем же state отклоняется.
func (s *Service) CompleteExternalLogin(ctx context.Context, state, code, ip, userAgent string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.oauth.CompleteExternalLogin"

	lg := log.From(ctx)

	if s.provider == nil || state == "" || code == "" {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidRequest)
	}

	value, ok, err := s.states.Get(ctx, stateKeyPrefix+state)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: state lookup: %w", op, ErrInternal)
	}
	if !ok || value != stateValueValid {
		lg.Warn("external_login_bad_state", slog.String("op", op))
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidRequest)
	}

	verifier, ok, err := s.states.Get(ctx, pkceKeyPrefix+state)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: verifier lookup: %w", op, ErrInternal)
	}
	if !ok || verifier == "" {
		lg.Warn("external_login_missing_verifier", slog.String("op", op))
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidRequest)
	}

	tokens, err := s.provider.Exchange(ctx, code, verifier, s.oauthCfg.GoogleRedirectURI)
	if err != nil {
		if errors.Is(err, oauth.ErrRejected) {
			lg.Warn("external_login_exchange_rejected", slog.String("op", op))
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidRequest)
		}

		lg.Error("external_login_exchange_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	info, err := s.provider.UserInfo(ctx, tokens.AccessToken)
	if err != nil {
		if errors.Is(err, oauth.ErrRejected) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidRequest)
		}

		lg.Error("external_login_userinfo_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if info.ID == "" || info.Email == "" {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidRequest)
	}

	user, err := s.resolveExternalUser(ctx, models.ProviderGoogle, info, tokens)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, userID, err := s.issueTokenPair(ctx, user, ip, userAgent)
	if err != nil {
		return nil, uuid.Nil, err
	}

	// Одноразовость обеспечена только на успешном пути; на ошибках записи
	// доживают до истечения TTL.
	if err := s.states.Delete(ctx, stateKeyPrefix+state, pkceKeyPrefix+state); err != nil {
		lg.Warn("external_login_state_cleanup_failed", slog.String("op", op), slog.String("err", err.Error()))
	}

	lg.Info("external_login_completed",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return pair, userID, nil
}

// LinkExternalAccount привязывает внешний аккаунт к существующему пользователю.
// Привязка того же аккаунта к другому пользователю — конфликт (ErrAccountLinked).
func (s *Service) LinkExternalAccount(ctx context.Context, userID uuid.UUID, provider models.OAuthProvider, providerUserID, email string) error {
	const op = "service.oauth.LinkExternalAccount"

	if providerUserID == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidRequest)
	}

	existing, err := s.storage.ExternalAccountByProviderID(ctx, provider, providerUserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		if existing.UserID == userID {
			return nil
		}

		return fmt.Errorf("%s: %w", op, ErrAccountLinked)
	}

	account := &models.ExternalAccount{
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
		Email:          strings.ToLower(strings.TrimSpace(email)),
	}

	if err := s.storage.SaveExternalAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", op, ErrAccountLinked)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("external_account_linked",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("provider", string(provider)),
	)

	return nil
}

// UnlinkExternalAccount удаляет привязку пользователя к провайдеру.
// Отсутствующая привязка — ErrNotFound.
func (s *Service) UnlinkExternalAccount(ctx context.Context, userID uuid.UUID, provider models.OAuthProvider) error {
	const op = "service.oauth.UnlinkExternalAccount"

	if err := s.storage.DeleteExternalAccount(ctx, userID, provider); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("external_account_unlinked",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("provider", string(provider)),
	)

	return nil
}

// resolveExternalUser находит локального пользователя по привязке внешнего
// аккаунта; при отсутствии привязки ищет по e-mail и дозаписывает привязку,
// иначе создаёт нового пользователя без локального пароля. Токены провайдера
// (зашифрованные) кладутся на привязку при каждом успешном логине.
func (s *Service) resolveExternalUser(ctx context.Context, provider models.OAuthProvider, info *oauth.UserInfo, tokens *oauth.Tokens) (*models.User, error) {
	const op = "service.oauth.resolveExternalUser"

	lg := log.From(ctx)

	encAccess, encRefresh, err := s.sealProviderTokens(tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	account, err := s.storage.ExternalAccountByProviderID(ctx, provider, info.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if account != nil {
		if encAccess != "" || encRefresh != "" {
			err := s.storage.UpdateExternalAccountTokens(ctx, provider, info.ID, encAccess, encRefresh)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		user, err := s.storage.UserByID(ctx, account.UserID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return user, nil
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user == nil {
		user = &models.User{
			ID:       uuid.New(),
			Email:    email,
			Username: usernameFromEmail(email),
			Roles:    []string{"user"},
			Active:   true,
		}

		if err := s.storage.SaveUser(ctx, user); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Гонка с параллельной регистрацией: перечитываем.
				user, err = s.storage.UserByEmail(ctx, email)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", op, err)
				}
			} else {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		} else {
			lg.Info("external_user_created",
				slog.String("op", op),
				slog.String("user_id", user.ID.String()),
				slog.String("email", redact.Email(email)),
			)
		}
	}

	link := &models.ExternalAccount{
		UserID:         user.ID,
		Provider:       provider,
		ProviderUserID: info.ID,
		Email:          email,
		AccessToken:    encAccess,
		RefreshToken:   encRefresh,
	}

	if err := s.storage.SaveExternalAccount(ctx, link); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ProviderTokens возвращает расшифрованные токены провайдера с привязки
// пользователя, например для последующих вызовов API провайдера. Пустые
// значения означают, что токены не сохранялись.
func (s *Service) ProviderTokens(ctx context.Context, userID uuid.UUID, provider models.OAuthProvider) (access, refresh string, err error) {
	const op = "service.oauth.ProviderTokens"

	account, err := s.storage.ExternalAccountByUser(ctx, userID, provider)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	if account.AccessToken == "" && account.RefreshToken == "" {
		return "", "", nil
	}

	if s.cipher == nil {
		return "", "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if account.AccessToken != "" {
		if access, err = s.cipher.DecryptString(account.AccessToken); err != nil {
			return "", "", fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if account.RefreshToken != "" {
		if refresh, err = s.cipher.DecryptString(account.RefreshToken); err != nil {
			return "", "", fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return access, refresh, nil
}

// sealProviderTokens шифрует токены провайдера для хранения на привязке.
// Без сконфигурированного ключа (cipher == nil) токены не сохраняются.
func (s *Service) sealProviderTokens(tokens *oauth.Tokens) (access, refresh string, err error) {
	if s.cipher == nil || tokens == nil {
		return "", "", nil
	}

	if tokens.AccessToken != "" {
		if access, err = s.cipher.EncryptString(tokens.AccessToken); err != nil {
			return "", "", err
		}
	}

	if tokens.RefreshToken != "" {
		if refresh, err = s.cipher.EncryptString(tokens.RefreshToken); err != nil {
			return "", "", err
		}
	}

	return access, refresh, nil
}

// generateURLToken возвращает 32 случайных байта в base64url без паддинга.
func generateURLToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// codeChallengeS256 — PKCE-челлендж: base64url(SHA-256(verifier)).
func codeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))

	return base64.RawURLEncoding.EncodeToString(sum[:])
}
