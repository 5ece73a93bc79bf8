package handlers

import (
	"net/http"
)

// JWKS отдаёт публичный ключ подписи в формате JWK Set: смежные сервисы
// проверяют RS256-подпись access-токенов локально, без /auth/validate.
func (h *Handlers) JWKS(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.PublicJWKSet())
}
