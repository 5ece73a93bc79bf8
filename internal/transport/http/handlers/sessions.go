package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nguyenkhoi/auth-service/internal/service"
	"github.com/nguyenkhoi/auth-service/internal/transport/http/apierrors"
)

type sessionResponse struct {
	ID         string    `json:"id"`
	DeviceInfo string    `json:"device_info"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

type sessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

// authedUserID валидирует Bearer-токен запроса и возвращает ID владельца.
func (h *Handlers) authedUserID(r *http.Request) (uuid.UUID, error) {
	token := bearerToken(r)
	if token == "" {
		return uuid.Nil, service.ErrInvalidToken
	}

	claims, err := h.svc.ValidateAccessToken(r.Context(), token)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, service.ErrInvalidToken
	}

	return userID, nil
}

func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := h.authedUserID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	sessions, err := h.svc.ActiveSessionsForUser(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := sessionsResponse{Sessions: make([]sessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, sessionResponse{
			ID:         s.ID.String(),
			DeviceInfo: s.DeviceInfo,
			IPAddress:  s.IPAddress,
			UserAgent:  s.UserAgent,
			CreatedAt:  s.CreatedAt,
			LastActive: s.LastActive,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) RevokeSession(w http.ResponseWriter, r *http.Request) {
	userID, err := h.authedUserID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidRequest)
		return
	}

	// Чужая сессия неотличима от несуществующей.
	session, err := h.svc.SessionByID(r.Context(), sessionID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if session.UserID != userID {
		apierrors.WriteError(w, r, service.ErrNotFound)
		return
	}

	if err := h.svc.RevokeSession(r.Context(), sessionID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) RevokeAllSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := h.authedUserID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.RevokeAllUserSessions(r.Context(), userID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.RevokeAllUserTokens(r.Context(), userID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
