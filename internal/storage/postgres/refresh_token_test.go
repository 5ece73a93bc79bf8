package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/storage"
)

// TestIntegration_SaveRefreshToken_And_GetByToken_OK — happy-path токенов.
func TestIntegration_SaveRefreshToken_And_GetByToken_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "rt1@example.com")
	s := mustSaveSession(t, st, u.ID, time.Now().UTC())
	now := time.Now().UTC()

	saved := mustSaveRefreshToken(t, st, u.ID, &s.ID, "token-1", "chain-1", now, now.Add(time.Hour))
	require.NotZero(t, saved.ID)

	got, err := st.RefreshTokenByToken(context.Background(), "token-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)
	require.NotNil(t, got.SessionID)
	require.Equal(t, s.ID, *got.SessionID)
	require.Equal(t, "chain-1", got.ChainID)
	require.False(t, got.Revoked)
	require.Nil(t, got.ReplacedBy)
}

// TestIntegration_SaveRefreshToken_DuplicateToken — конфликт уникальности token.
func TestIntegration_SaveRefreshToken_DuplicateToken(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "rt2@example.com")
	now := time.Now().UTC()

	mustSaveRefreshToken(t, st, u.ID, nil, "dup-token", "chain-1", now, now.Add(time.Hour))

	dup := &models.RefreshToken{
		UserID:   u.ID,
		Token:    "dup-token",
		ChainID:  "chain-2",
		IssuedAt: now,
		ExpiryAt: now.Add(time.Hour),
	}

	err := st.SaveRefreshToken(context.Background(), dup)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_ClaimRefreshToken — первый Claim выигрывает, второй видит
// уже отозванный токен.
func TestIntegration_ClaimRefreshToken(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "rt3@example.com")
	now := time.Now().UTC()
	mustSaveRefreshToken(t, st, u.ID, nil, "claim-token", "chain-1", now, now.Add(time.Hour))

	claimed, err := st.ClaimRefreshToken(context.Background(), "claim-token")
	require.NoError(t, err)
	require.True(t, claimed)

	claimed, err = st.ClaimRefreshToken(context.Background(), "claim-token")
	require.NoError(t, err)
	require.False(t, claimed)

	_, err = st.ClaimRefreshToken(context.Background(), "absent-token")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_SetReplacedBy — связывание токенов цепочки.
func TestIntegration_SetReplacedBy(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "rt4@example.com")
	now := time.Now().UTC()
	mustSaveRefreshToken(t, st, u.ID, nil, "old-token", "chain-1", now, now.Add(time.Hour))
	mustSaveRefreshToken(t, st, u.ID, nil, "new-token", "chain-1", now, now.Add(time.Hour))

	require.NoError(t, st.SetReplacedBy(context.Background(), "old-token", "new-token"))

	got, err := st.RefreshTokenByToken(context.Background(), "old-token")
	require.NoError(t, err)
	require.NotNil(t, got.ReplacedBy)
	require.Equal(t, "new-token", *got.ReplacedBy)

	err = st.SetReplacedBy(context.Background(), "absent", "new-token")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_RevokeChain — отзыв всех токенов цепочки, чужая цепочка не тронута.
func TestIntegration_RevokeChain(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "rt5@example.com")
	now := time.Now().UTC()
	mustSaveRefreshToken(t, st, u.ID, nil, "c1-t1", "chain-1", now, now.Add(time.Hour))
	mustSaveRefreshToken(t, st, u.ID, nil, "c1-t2", "chain-1", now, now.Add(time.Hour))
	mustSaveRefreshToken(t, st, u.ID, nil, "c2-t1", "chain-2", now, now.Add(time.Hour))

	revoked, err := st.RevokeChain(context.Background(), "chain-1")
	require.NoError(t, err)
	require.EqualValues(t, 2, revoked)

	got, err := st.RefreshTokenByToken(context.Background(), "c2-t1")
	require.NoError(t, err)
	require.False(t, got.Revoked)
}

// TestIntegration_ActiveTokens_OrderAndCap — выборка активных токенов по issued_at
// по убыванию; RevokeExcessTokens оставляет самые свежие.
func TestIntegration_ActiveTokens_OrderAndCap(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "rt6@example.com")
	now := time.Now().UTC()

	mustSaveRefreshToken(t, st, u.ID, nil, "t-old", "c1", now.Add(-2*time.Hour), now.Add(time.Hour))
	mustSaveRefreshToken(t, st, u.ID, nil, "t-mid", "c2", now.Add(-time.Hour), now.Add(time.Hour))
	mustSaveRefreshToken(t, st, u.ID, nil, "t-new", "c3", now, now.Add(time.Hour))

	tokens, err := st.ActiveTokensByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	require.Equal(t, "t-new", tokens[0].Token)
	require.Equal(t, "t-old", tokens[2].Token)

	revoked, err := st.RevokeExcessTokens(context.Background(), u.ID, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, revoked)

	count, err := st.CountActiveTokens(context.Background(), u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	tokens, err = st.ActiveTokensByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "t-new", tokens[0].Token)
}

// TestIntegration_DeleteExpiredTokens — джанитор удаляет только истёкшие записи.
func TestIntegration_DeleteExpiredTokens(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "rt7@example.com")
	now := time.Now().UTC()

	mustSaveRefreshToken(t, st, u.ID, nil, "expired", "c1", now.Add(-2*time.Hour), now.Add(-time.Hour))
	mustSaveRefreshToken(t, st, u.ID, nil, "alive", "c2", now, now.Add(time.Hour))

	deleted, err := st.DeleteExpiredTokens(context.Background(), now)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	_, err = st.RefreshTokenByToken(context.Background(), "expired")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.RefreshTokenByToken(context.Background(), "alive")
	require.NoError(t, err)
}

// TestIntegration_RefreshTokenByToken_NotFound — отсутствующий токен.
func TestIntegration_RefreshTokenByToken_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.RefreshTokenByToken(context.Background(), "absent")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
