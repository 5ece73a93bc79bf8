package handlers

import (
	"net/http"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/service"
	"github.com/nguyenkhoi/auth-service/internal/transport/http/apierrors"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token,omitempty"`
}

type tokenPairResponse struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	UserID          string    `json:"user_id"`
}

type validateResponse struct {
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	SessionID string   `json:"session_id,omitempty"`
	ExpiresAt int64    `json:"expires_at"`
}

func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidRequest)
		return
	}

	pair, userID, err := h.svc.RegisterUser(r.Context(), in.Email, in.Password, clientIP(r), r.UserAgent())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenPairResponse{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt,
		UserID:          userID.String(),
	})
}

func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidRequest)
		return
	}

	pair, userID, err := h.svc.LoginUser(r.Context(), in.Email, in.Password, clientIP(r), r.UserAgent())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt,
		UserID:          userID.String(),
	})
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil || in.RefreshToken == "" {
		apierrors.WriteError(w, r, service.ErrInvalidRequest)
		return
	}

	pair, userID, err := h.svc.RefreshTokenPair(r.Context(), in.RefreshToken, clientIP(r), r.UserAgent())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt,
		UserID:          userID.String(),
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var in logoutRequest
	if err := decodeStrict(r, &in); err != nil || in.RefreshToken == "" {
		apierrors.WriteError(w, r, service.ErrInvalidRequest)
		return
	}

	// access-токен для занесения jti в журнал отзыва берём из тела или из Bearer.
	accessToken := in.AccessToken
	if accessToken == "" {
		accessToken = bearerToken(r)
	}

	if err := h.svc.Logout(r.Context(), in.RefreshToken, accessToken); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ValidateToken(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	claims, err := h.svc.ValidateAccessToken(r.Context(), token)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	// exp — не обязательный claim; чужой издатель с тем же ключом мог его не положить.
	var expiresAt int64
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Unix()
	}

	writeJSON(w, http.StatusOK, validateResponse{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Username:  claims.Username,
		Roles:     claims.Roles,
		SessionID: claims.SessionID,
		ExpiresAt: expiresAt,
	})
}
