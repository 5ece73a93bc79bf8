package models

import (
	"time"

	"github.com/google/uuid"
)

// OAuthProvider — внешний identity-провайдер.
type OAuthProvider string

const (
	ProviderGoogle OAuthProvider = "GOOGLE"
)

// ExternalAccount — привязка аккаунта внешнего провайдера к пользователю.
//
// AccessToken/RefreshToken — токены провайдера, зашифрованные перед записью
// (AES-GCM, см. pkg/crypt); пустая строка означает "не сохранялись".
type ExternalAccount struct {
	ID             int64
	UserID         uuid.UUID
	Provider       OAuthProvider
	ProviderUserID string
	Email          string
	AccessToken    string
	RefreshToken   string
	LinkedAt       time.Time
}
