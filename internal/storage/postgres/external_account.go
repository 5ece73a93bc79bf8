package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nguyenkhoi/auth-service/internal/models"
	"github.com/nguyenkhoi/auth-service/internal/storage"
)

// SaveExternalAccount сохраняет привязку провайдер→пользователь.
func (s *Storage) SaveExternalAccount(ctx context.Context, account *models.ExternalAccount) error {
	const op = "storage.postgres.SaveExternalAccount"

	query := `
        INSERT INTO external_accounts(user_id, provider, provider_user_id, email, access_token, refresh_token)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, linked_at
    `

	err := s.db.QueryRow(ctx, query,
		account.UserID,
		account.Provider,
		account.ProviderUserID,
		account.Email,
		account.AccessToken,
		account.RefreshToken,
	).Scan(&account.ID, &account.LinkedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ExternalAccountByProviderID находит привязку по паре (provider, provider_user_id).
func (s *Storage) ExternalAccountByProviderID(ctx context.Context, provider models.OAuthProvider, providerUserID string) (*models.ExternalAccount, error) {
	const op = "storage.postgres.ExternalAccountByProviderID"

	query := `
        SELECT id, user_id, provider, provider_user_id, email, access_token, refresh_token, linked_at
        FROM external_accounts
        WHERE provider = $1 AND provider_user_id = $2
    `

	account, err := s.scanExternalAccount(s.db.QueryRow(ctx, query, provider, providerUserID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return account, nil
}

// ExternalAccountByUser находит привязку пользователя к провайдеру.
func (s *Storage) ExternalAccountByUser(ctx context.Context, userID uuid.UUID, provider models.OAuthProvider) (*models.ExternalAccount, error) {
	const op = "storage.postgres.ExternalAccountByUser"

	query := `
        SELECT id, user_id, provider, provider_user_id, email, access_token, refresh_token, linked_at
        FROM external_accounts
        WHERE user_id = $1 AND provider = $2
    `

	account, err := s.scanExternalAccount(s.db.QueryRow(ctx, query, userID, provider))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return account, nil
}

// UpdateExternalAccountTokens обновляет сохранённые токены провайдера
// на существующей привязке.
func (s *Storage) UpdateExternalAccountTokens(ctx context.Context, provider models.OAuthProvider, providerUserID, accessToken, refreshToken string) error {
	const op = "storage.postgres.UpdateExternalAccountTokens"

	query := `
        UPDATE external_accounts
        SET access_token = $3, refresh_token = $4
        WHERE provider = $1 AND provider_user_id = $2
    `

	cmdTag, err := s.db.Exec(ctx, query, provider, providerUserID, accessToken, refreshToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteExternalAccount удаляет привязку пользователя к провайдеру.
func (s *Storage) DeleteExternalAccount(ctx context.Context, userID uuid.UUID, provider models.OAuthProvider) error {
	const op = "storage.postgres.DeleteExternalAccount"

	query := `
        DELETE FROM external_accounts
        WHERE user_id = $1 AND provider = $2
    `

	cmdTag, err := s.db.Exec(ctx, query, userID, provider)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) scanExternalAccount(row pgx.Row) (*models.ExternalAccount, error) {
	var account models.ExternalAccount
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Provider,
		&account.ProviderUserID,
		&account.Email,
		&account.AccessToken,
		&account.RefreshToken,
		&account.LinkedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}

	return &account, nil
}
