package postgres

// Интеграционные тесты пакета postgres:
//   - поднимают реальный PostgreSQL через testcontainers-go (postgres:16-alpine);
//   - применяют миграции из ./migrations;
//   - гоняют репозитории по happy-path, конфликтам уникальности,
//     ErrNotFound и ошибкам контекста.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nguyenkhoi/auth-service/internal/models"
)

// migrationFiles — порядок применения важен (внешние ключи).
var migrationFiles = []string{
	"1_init_users.up.sql",
	"2_init_user_sessions.up.sql",
	"3_init_refresh_tokens.up.sql",
	"4_init_revoked_tokens.up.sql",
	"5_init_external_accounts.up.sql",
}

// repoRootFromThisFile — определяет корень репозитория относительно текущего файла тестов.
// Используется для поиска SQL-миграций в каталоге ./migrations независимо от текущего рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает временный экземпляр PostgreSQL через testcontainers-go,
// применяет все миграции и возвращает инициализированное хранилище и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// применяем миграции.
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	for _, name := range migrationFiles {
		_, err = pool.Exec(ctx, readMigration(t, name))
		require.NoError(t, err, "apply migration %s", name)
	}

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

// mustSaveUser — вставляет пользователя-владельца для FK-зависимых записей.
func mustSaveUser(t *testing.T, st *Storage, email string) *models.User {
	t.Helper()

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     "u",
		PasswordHash: "hash",
		Roles:        []string{"user"},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.SaveUser(context.Background(), u))

	return u
}

// mustSaveSession — вставляет активную сессию пользователя.
func mustSaveSession(t *testing.T, st *Storage, userID uuid.UUID, lastActive time.Time) *models.UserSession {
	t.Helper()

	s := &models.UserSession{
		ID:         uuid.New(),
		UserID:     userID,
		DeviceInfo: "Windows Desktop",
		IPAddress:  "10.0.0.1",
		UserAgent:  "go-test",
		CreatedAt:  lastActive,
		LastActive: lastActive,
	}
	require.NoError(t, st.SaveSession(context.Background(), s))

	return s
}

// mustSaveRefreshToken — вставляет refresh-токен цепочки.
func mustSaveRefreshToken(t *testing.T, st *Storage, userID uuid.UUID, sessionID *uuid.UUID, token, chainID string, issued, expiry time.Time) *models.RefreshToken {
	t.Helper()

	rt := &models.RefreshToken{
		UserID:    userID,
		SessionID: sessionID,
		Token:     token,
		ChainID:   chainID,
		IssuedAt:  issued,
		ExpiryAt:  expiry,
		IPAddress: "10.0.0.1",
		UserAgent: "go-test",
	}
	require.NoError(t, st.SaveRefreshToken(context.Background(), rt))

	return rt
}
