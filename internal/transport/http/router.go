// Package http собирает REST-поверхность auth-сервиса: chi-роутер, цепочку
// middleware и регистрацию маршрутов.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nguyenkhoi/auth-service/internal/service"
	"github.com/nguyenkhoi/auth-service/internal/transport/http/handlers"
	"github.com/nguyenkhoi/auth-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler: chi-маршруты, обёрнутые цепочкой middleware.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	h := handlers.New(svc)
	registerRoutes(root, h)

	// Middleware (внешний -> внутренний).
	mws := []middleware.Middleware{
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.AuthBearer(),         // вынимаем Bearer токен в контекст для хендлеров
	}
	if opts.Timeout > 0 {
		mws = append(mws, middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	return middleware.Chain(root, mws...)
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// discovery: публичный ключ подписи для смежных сервисов
	r.Get("/.well-known/jwks.json", h.JWKS)

	// auth
	r.Post("/auth/register", h.RegisterUser)
	r.Post("/auth/login", h.LoginUser)
	r.Post("/auth/refresh", h.RefreshToken)
	r.Post("/auth/logout", h.Logout)
	r.Post("/auth/validate", h.ValidateToken)

	// sessions
	r.Get("/auth/sessions", h.ListSessions)
	r.Delete("/auth/sessions", h.RevokeAllSessions)
	r.Delete("/auth/sessions/{id}", h.RevokeSession)

	// external login
	r.Get("/oauth/google/url", h.GoogleAuthURL)
	r.Get("/oauth/google/callback", h.GoogleCallback)
	r.Post("/oauth/google/link", h.LinkGoogle)
	r.Delete("/oauth/google/link", h.UnlinkGoogle)
}
