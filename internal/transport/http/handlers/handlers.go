// handlers — REST-поверхность auth-сервиса поверх бизнес-логики service.
package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/nguyenkhoi/auth-service/internal/service"
	"github.com/nguyenkhoi/auth-service/internal/transport/http/middleware"
)

// Handlers агрегирует зависимости (доменный сервис).
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// bearerToken достаёт "сырой" Bearer-токен, положенный мидлваром AuthBearer.
func bearerToken(r *http.Request) string {
	if v := r.Context().Value(middleware.CtxAuthToken); v != nil {
		if token, ok := v.(string); ok {
			return token
		}
	}

	return ""
}

// clientIP — IP клиента: первый адрес X-Forwarded-For, иначе RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}

		return strings.TrimSpace(xff)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
