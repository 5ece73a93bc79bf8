package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя в системе.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	// Roles — имена ролей пользователя; попадают в claims access-токена.
	Roles     []string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
