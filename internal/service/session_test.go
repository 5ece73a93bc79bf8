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
)

func TestCreateSession_OK_AppliesCap(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	uid := uuid.New()
	limit := testAuthCfg().MaxSessionsPerUser

	// Пользователь на потолке: перед вставкой выселяется наименее активная сессия.
	st.EXPECT().CountActiveSessions(gomock.Any(), uid).Return(int64(limit), nil)
	st.EXPECT().RevokeExcessSessions(gomock.Any(), uid, limit-1).Return(int64(1), nil)
	st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, session *models.UserSession) error {
			require.Equal(t, uid, session.UserID)
			require.NotEqual(t, uuid.Nil, session.ID)
			require.False(t, session.Revoked)
			require.Equal(t, session.CreatedAt, session.LastActive)
			return nil
		})

	session, err := svc.CreateSession(context.Background(), uid, "10.0.0.1", "Mozilla/5.0 (Windows NT 10.0)")
	require.NoError(t, err)
	require.Equal(t, "Windows Desktop", session.DeviceInfo)
	require.Equal(t, "10.0.0.1", session.IPAddress)
}

func TestCreateSession_UnderCap_NoEviction(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	uid := uuid.New()

	// Ниже потолка: выселение не вызывается, только счётчик и вставка.
	st.EXPECT().CountActiveSessions(gomock.Any(), uid).Return(int64(1), nil)
	st.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.CreateSession(context.Background(), uid, "10.0.0.1", "curl/8.5.0")
	require.NoError(t, err)
}

func TestIsSessionValid(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	now := time.Now().UTC()

	t.Run("nil", func(t *testing.T) {
		require.False(t, svc.IsSessionValid(nil))
	})

	t.Run("revoked", func(t *testing.T) {
		require.False(t, svc.IsSessionValid(&models.UserSession{LastActive: now, Revoked: true}))
	})

	t.Run("inactive beyond window", func(t *testing.T) {
		stale := now.Add(-testAuthCfg().SessionInactivity - time.Minute)
		require.False(t, svc.IsSessionValid(&models.UserSession{LastActive: stale}))
	})

	t.Run("active", func(t *testing.T) {
		require.True(t, svc.IsSessionValid(&models.UserSession{LastActive: now}))
	})
}

func TestTouchSession_NotFound(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	sid := uuid.New()
	st.EXPECT().TouchSession(gomock.Any(), sid, gomock.Any()).Return(storage.ErrNotFound)

	err := svc.TouchSession(context.Background(), sid)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDetectSuspiciousActivity(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	uid := uuid.New()

	mkSessions := func(ips ...string) []models.UserSession {
		out := make([]models.UserSession, 0, len(ips))
		for _, ip := range ips {
			out = append(out, models.UserSession{UserID: uid, IPAddress: ip})
		}
		return out
	}

	// Три различных IP — ещё не аномалия; порог строго больше трёх.
	st.EXPECT().ActiveSessionsByUser(gomock.Any(), uid).Return(mkSessions("1.1.1.1", "2.2.2.2", "3.3.3.3"), nil)
	suspicious, err := svc.DetectSuspiciousActivity(context.Background(), uid)
	require.NoError(t, err)
	require.False(t, suspicious)

	st.EXPECT().ActiveSessionsByUser(gomock.Any(), uid).Return(mkSessions("1.1.1.1", "2.2.2.2", "3.3.3.3", "4.4.4.4"), nil)
	suspicious, err = svc.DetectSuspiciousActivity(context.Background(), uid)
	require.NoError(t, err)
	require.True(t, suspicious)

	// Повторы одного IP не увеличивают счётчик.
	st.EXPECT().ActiveSessionsByUser(gomock.Any(), uid).Return(mkSessions("1.1.1.1", "1.1.1.1", "1.1.1.1", "1.1.1.1", "1.1.1.1"), nil)
	suspicious, err = svc.DetectSuspiciousActivity(context.Background(), uid)
	require.NoError(t, err)
	require.False(t, suspicious)
}

func TestSweepInactiveSessions_UsesWindow(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	expected := now.Add(-testAuthCfg().SessionInactivity)

	st.EXPECT().RevokeInactiveSessions(gomock.Any(), expected).Return(int64(2), nil)

	n, err := svc.SweepInactiveSessions(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestExtractDeviceInfo(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"", "Unknown Device"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", "Mobile Device"},
		{"Mozilla/5.0 (Linux; Android 14)", "Mobile Device"},
		{"Mozilla/5.0 (iPad; CPU OS 17_0)", "Tablet"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "Windows Desktop"},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", "Mac Desktop"},
		{"Mozilla/5.0 (X11; Linux x86_64)", "Linux Desktop"},
		{"curl/8.5.0", "Desktop Browser"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, extractDeviceInfo(tc.ua), "ua=%q", tc.ua)
	}
}
