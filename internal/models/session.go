package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSession — логическая сессия пользователя (устройство/IP/user-agent).
//
// Lifecycle: создаётся при успешной аутентификации; LastActive обновляется
// при каждом использовании; Revoked выставляется при logout, явном отзыве
// или джанитором по неактивности. Записи не удаляются — история нужна
// для аудита.
type UserSession struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	DeviceInfo string
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
	LastActive time.Time
	Revoked    bool
}
