// oauth — клиентская сторона контракта с внешним identity-провайдером:
// построение authorization URL, обмен кода на токены (server-to-server POST
// с PKCE-верификатором) и запрос userinfo по bearer-токену.
//
// Протокольные внутренности провайдера пакет не определяет; все вызовы
// ограничены таймаутом из конфигурации и не зависают на недоступном
// провайдере.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/nguyenkhoi/auth-service/internal/config"
	"github.com/nguyenkhoi/auth-service/internal/pkg/log"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	googleScopes = "openid profile email"
)

var (
	// ErrRejected — провайдер ответил не-2xx на обмен кода или userinfo
	// (битый код/верификатор/токен). Тело ответа логируется, наружу не утекает.
	ErrRejected = errors.New("provider rejected request")
)

// Tokens — ответ провайдера на обмен authorization-кода.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
}

// UserInfo — профиль пользователя у провайдера.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// Endpoints — адреса провайдера; подменяются в тестах на httptest-сервер.
type Endpoints struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// GoogleEndpoints — боевые адреса Google OAuth2.
func GoogleEndpoints() Endpoints {
	return Endpoints{
		AuthURL:     googleAuthURL,
		TokenURL:    googleTokenURL,
		UserInfoURL: googleUserInfoURL,
	}
}

// GoogleClient — клиент обмена с Google.
type GoogleClient struct {
	cfg       config.OAuthConfig
	endpoints Endpoints
	client    *http.Client
}

// NewGoogleClient создаёт клиент с боевыми адресами провайдера.
func NewGoogleClient(cfg config.OAuthConfig) *GoogleClient {
	return NewGoogleClientWithEndpoints(cfg, GoogleEndpoints())
}

// NewGoogleClientWithEndpoints создаёт клиент с явными адресами (тесты).
func NewGoogleClientWithEndpoints(cfg config.OAuthConfig, endpoints Endpoints) *GoogleClient {
	return &GoogleClient{
		cfg:       cfg,
		endpoints: endpoints,
		client:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// AuthCodeURL строит authorization URL провайдера с state и PKCE-челленджем (S256).
func (c *GoogleClient) AuthCodeURL(state, codeChallenge, redirectURI string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.GoogleClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", googleScopes)
	q.Set("response_type", "code")
	q.Set("state", state)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "S256")
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")

	return c.endpoints.AuthURL + "?" + q.Encode()
}

// Exchange меняет authorization-код на токены провайдера:
// form-encoded POST c client credentials и PKCE-верификатором.
func (c *GoogleClient) Exchange(ctx context.Context, code, codeVerifier, redirectURI string) (*Tokens, error) {
	const op = "oauth.google.Exchange"

	form := url.Values{}
	form.Set("client_id", c.cfg.GoogleClientID)
	form.Set("client_secret", c.cfg.GoogleClientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", redirectURI)
	form.Set("code_verifier", codeVerifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.From(ctx).Warn("token_exchange_rejected",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrRejected)
	}

	var tokens Tokens
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tokens, nil
}

// UserInfo запрашивает профиль пользователя по bearer-токену провайдера.
func (c *GoogleClient) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	const op = "oauth.google.UserInfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.From(ctx).Warn("userinfo_rejected",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrRejected)
	}

	var info UserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &info, nil
}
