package handlers

import (
	"net/http"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/service"
	"github.com/nguyenkhoi/auth-service/internal/transport/http/apierrors"
)

type authURLResponse struct {
	URL string `json:"url"`
}

type linkRequest struct {
	ProviderUserID string `json:"provider_user_id"`
	Email          string `json:"email,omitempty"`
}

func (h *Handlers) GoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.BeginExternalLogin(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authURLResponse{URL: url})
}

func (h *Handlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	state := q.Get("state")
	code := q.Get("code")

	pair, userID, err := h.svc.CompleteExternalLogin(r.Context(), state, code, clientIP(r), r.UserAgent())
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

func (h *Handlers) LinkGoogle(w http.ResponseWriter, r *http.Request) {
	userID, err := h.authedUserID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in linkRequest
	if err := decodeStrict(r, &in); err != nil || in.ProviderUserID == "" {
		apierrors.WriteError(w, r, service.ErrInvalidRequest)
		return
	}

	if err := h.svc.LinkExternalAccount(r.Context(), userID, models.ProviderGoogle, in.ProviderUserID, in.Email); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UnlinkGoogle(w http.ResponseWriter, r *http.Request) {
	userID, err := h.authedUserID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.UnlinkExternalAccount(r.Context(), userID, models.ProviderGoogle); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
