package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/storage"
	"github.com/nguyenkhoi/auth-service/mocks"
)

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hashPassword(pw)
	require.NoError(t, err)
	return h
}

// expectIssuePair — общий набор ожиданий хвоста логина/регистрации:
// проверка потолка сессий, вставка сессии, потолок токенов, вставка
// refresh-токена, проверка аномалий. Счётчик сессий ниже потолка,
// поэтому выселения нет.
func expectIssuePair(st *mocks.MockStorage, uid interface{}) {
	st.EXPECT().CountActiveSessions(gomock.Any(), uid).Return(int64(0), nil)
	st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().RevokeExcessTokens(gomock.Any(), uid, gomock.Any()).Return(int64(0), nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().ActiveSessionsByUser(gomock.Any(), uid).Return(nil, nil)
}

func TestRegisterUser_OK(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "User@Example.com"
	norm := "user@example.com"
	pw := "Abcdef1!"

	st.EXPECT().UserByEmail(gomock.Any(), norm).Return(nil, storage.ErrNotFound)

	var uid uuid.UUID
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.User) error {
			require.Equal(t, norm, user.Email)
			require.Equal(t, "user", user.Username)
			require.Equal(t, []string{"user"}, user.Roles)
			require.True(t, user.Active)
			require.NotEmpty(t, user.PasswordHash)
			require.NotEqual(t, pw, user.PasswordHash)
			uid = user.ID
			return nil
		})
	expectIssuePair(st, gomock.Any())

	tp, gotUID, err := svc.RegisterUser(ctx, email, pw, "10.0.0.1", "go-test")
	require.NoError(t, err)
	require.Equal(t, uid, gotUID)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), tp.AccessExpiresAt, 2*time.Second)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	_, _, err := svc.RegisterUser(context.Background(), "not-an-email", "Abcdef1!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_WeakPassword(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	cases := []struct {
		name string
		pw   string
		want error
	}{
		{"empty", "", ErrEmptyPassword},
		{"too short", "Ab1!", ErrWeakPassword},
		{"no upper", "abcdef1!", ErrWeakPassword},
		{"no digit", "Abcdefg!", ErrWeakPassword},
		{"no special", "Abcdefg1", ErrWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.RegisterUser(context.Background(), "a@b.cd", tc.pw, "", "")
			require.Error(t, err)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	existing := testUser()
	st.EXPECT().UserByEmail(gomock.Any(), existing.Email).Return(existing, nil)

	_, _, err := svc.RegisterUser(context.Background(), existing.Email, "Abcdef1!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_EmailTaken_RaceOnInsert(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "a@b.cd").Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, _, err := svc.RegisterUser(context.Background(), "a@b.cd", "Abcdef1!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUser_OK(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pw := "Abcdef1!"
	user := testUser()
	user.PasswordHash = mustHashPW(t, pw)

	st.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)
	expectIssuePair(st, user.ID)

	tp, uid, err := svc.LoginUser(context.Background(), user.Email, pw, "10.0.0.1", "go-test")
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	user.PasswordHash = mustHashPW(t, "Correct1!")

	st.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, _, err := svc.LoginUser(context.Background(), user.Email, "Wrong1!!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "absent@example.com").Return(nil, storage.ErrNotFound)

	_, _, err := svc.LoginUser(context.Background(), "absent@example.com", "Abcdef1!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_InactiveUser(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pw := "Abcdef1!"
	user := testUser()
	user.Active = false
	user.PasswordHash = mustHashPW(t, pw)

	st.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, _, err := svc.LoginUser(context.Background(), user.Email, pw, "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenPair_OK(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	sid := uuid.New()
	chainID := generateChainID()

	old := &models.RefreshToken{
		UserID:    user.ID,
		SessionID: &sid,
		Token:     "old-token",
		ChainID:   chainID,
		ExpiryAt:  time.Now().UTC().Add(time.Hour),
	}

	st.EXPECT().RefreshTokenByToken(gomock.Any(), "old-token").Return(old, nil)
	st.EXPECT().ClaimRefreshToken(gomock.Any(), "old-token").Return(true, nil)
	st.EXPECT().RevokeExcessTokens(gomock.Any(), user.ID, gomock.Any()).Return(int64(0), nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().SetReplacedBy(gomock.Any(), "old-token", gomock.Any()).Return(nil)
	st.EXPECT().SaveRevokedToken(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	st.EXPECT().TouchSession(gomock.Any(), sid, gomock.Any()).Return(nil)

	tp, uid, err := svc.RefreshTokenPair(context.Background(), "old-token", "10.0.0.1", "go-test")
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEqual(t, "old-token", tp.RefreshToken)
}

func TestLogout_OK_RevokesChainSessionAndLedger(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	sid := uuid.New()
	chainID := generateChainID()

	access, _, err := svc.MintAccessToken(context.Background(), user, sid, chainID)
	require.NoError(t, err)

	token := &models.RefreshToken{
		UserID:    user.ID,
		SessionID: &sid,
		Token:     "refresh-token",
		ChainID:   chainID,
		ExpiryAt:  time.Now().UTC().Add(time.Hour),
	}

	st.EXPECT().RefreshTokenByToken(gomock.Any(), "refresh-token").Return(token, nil)
	st.EXPECT().RevokeChain(gomock.Any(), chainID).Return(int64(1), nil)
	st.EXPECT().RevokeSession(gomock.Any(), sid).Return(nil)
	st.EXPECT().SaveRevokedToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *models.RevokedToken) error {
			require.Equal(t, models.ReasonLogout, rec.Reason)
			require.NotEmpty(t, rec.JTI)
			return nil
		})

	require.NoError(t, svc.Logout(context.Background(), "refresh-token", access))
}

func TestLogout_UnknownRefreshToken(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().RefreshTokenByToken(gomock.Any(), "absent").Return(nil, storage.ErrNotFound)

	err := svc.Logout(context.Background(), "absent", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_OK_TouchesSession(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	sid := uuid.New()

	access, _, err := svc.MintAccessToken(context.Background(), user, sid, generateChainID())
	require.NoError(t, err)

	session := &models.UserSession{
		ID:         sid,
		UserID:     user.ID,
		LastActive: time.Now().UTC(),
	}

	st.EXPECT().IsTokenRevoked(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SessionByID(gomock.Any(), sid).Return(session, nil)
	st.EXPECT().TouchSession(gomock.Any(), sid, gomock.Any()).Return(nil)

	claims, err := svc.ValidateAccessToken(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.Subject)
}

func TestValidateAccessToken_RevokedSession(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	sid := uuid.New()

	access, _, err := svc.MintAccessToken(context.Background(), user, sid, generateChainID())
	require.NoError(t, err)

	session := &models.UserSession{
		ID:         sid,
		UserID:     user.ID,
		LastActive: time.Now().UTC(),
		Revoked:    true,
	}

	st.EXPECT().IsTokenRevoked(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SessionByID(gomock.Any(), sid).Return(session, nil)

	_, err = svc.ValidateAccessToken(context.Background(), access)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestValidateAccessToken_MissingSession(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	access, _, err := svc.MintAccessToken(context.Background(), testUser(), uuid.New(), generateChainID())
	require.NoError(t, err)

	st.EXPECT().IsTokenRevoked(gomock.Any(), gomock.Any()).Return(false, nil)
	st.EXPECT().SessionByID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err = svc.ValidateAccessToken(context.Background(), access)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateEmail_Normalization(t *testing.T) {
	norm, err := validateEmail("  USER@Example.COM  ")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", norm)

	_, err = validateEmail("broken")
	require.Error(t, err)
}

func TestUsernameFromEmail(t *testing.T) {
	require.Equal(t, "user", usernameFromEmail("user@example.com"))
	require.Equal(t, "weird", usernameFromEmail("weird"))
}
