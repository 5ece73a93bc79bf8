package apierrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nguyenkhoi/auth-service/internal/service"
)

// TestToHTTP_Table — таблица маппинга доменных ошибок на статус/код.
// Все отказы аутентификации должны давать одинаковый ответ 401.
func TestToHTTP_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil_is_internal", nil, http.StatusInternalServerError, "internal"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "unauthenticated"},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"token_expired", service.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated"},
		{"token_reused", service.ErrTokenReused, http.StatusUnauthorized, "unauthenticated"},
		{"token_revoked", service.ErrTokenRevoked, http.StatusUnauthorized, "unauthenticated"},
		{"invalid_request", service.ErrInvalidRequest, http.StatusBadRequest, "invalid_argument"},
		{"invalid_email", service.ErrInvalidEmail, http.StatusBadRequest, "invalid_argument"},
		{"weak_password", service.ErrWeakPassword, http.StatusBadRequest, "invalid_argument"},
		{"empty_password", service.ErrEmptyPassword, http.StatusBadRequest, "invalid_argument"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"email_taken", service.ErrEmailTaken, http.StatusConflict, "already_exists"},
		{"account_linked", service.ErrAccountLinked, http.StatusConflict, "already_exists"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, resp := ToHTTP(tt.err)
			require.Equal(t, tt.wantStatus, status)
			require.Equal(t, tt.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// TestToHTTP_WrappedErrors — маппинг работает через errors.Is и для обёрнутых ошибок.
func TestToHTTP_WrappedErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("service.auth.LoginUser: %w", service.ErrInvalidCredentials)

	status, resp := ToHTTP(wrapped)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthenticated", resp.Error.Code)
}

// TestAuthFailures_Indistinguishable — тела всех 401-ответов идентичны,
// ответ не различает причину отказа.
func TestAuthFailures_Indistinguishable(t *testing.T) {
	t.Parallel()

	authErrs := []error{
		service.ErrInvalidCredentials,
		service.ErrInvalidToken,
		service.ErrTokenExpired,
		service.ErrTokenReused,
		service.ErrTokenRevoked,
	}

	_, first := ToHTTP(authErrs[0])
	for _, err := range authErrs[1:] {
		_, resp := ToHTTP(err)
		require.Equal(t, first, resp)
	}
}

func TestWriteError_JSONAndRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rr := httptest.NewRecorder()

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "not_found", resp.Error.Code)
	require.Equal(t, "rid-123", resp.Error.RequestID)
}

func TestWriteError_NoRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rr := httptest.NewRecorder()

	WriteError(rr, req, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Empty(t, resp.Error.RequestID)
}
