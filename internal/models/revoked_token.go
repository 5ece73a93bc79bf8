package models

import (
	"time"

	"github.com/google/uuid"
)

// RevocationReason — причина попадания токена в журнал отзыва.
type RevocationReason string

const (
	ReasonLogout             RevocationReason = "LOGOUT"
	ReasonSecurityBreach     RevocationReason = "SECURITY_BREACH"
	ReasonExpired            RevocationReason = "EXPIRED"
	ReasonAdminRevoked       RevocationReason = "ADMIN_REVOKED"
	ReasonTokenRotation      RevocationReason = "TOKEN_ROTATION"
	ReasonSuspiciousActivity RevocationReason = "SUSPICIOUS_ACTIVITY"
)

// RevokedToken — запись журнала отзыва, ключ — jti токена.
// Журнал append-only; удаление только по истечении ExpiryAt
// (ExpiryAt — исходный срок жизни токена, ограничивает рост журнала).
type RevokedToken struct {
	JTI    string
	// UserID — владелец токена; nil, если пользователь удалён.
	UserID    *uuid.UUID
	ChainID   string
	RevokedAt time.Time
	ExpiryAt  time.Time
	Reason    RevocationReason
}
