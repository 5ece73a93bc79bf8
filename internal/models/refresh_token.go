package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken — персистентная запись refresh-токена.
//
// Токены одной цепочки (ChainID) связаны через ReplacedBy в однонаправленную
// линию ротации: в каждый момент времени в цепочке не больше одного
// неотозванного токена ("головы"). Запись никогда не удаляется кроме как
// джанитором по истечении ExpiryAt; при ротации мутируются только
// Revoked и ReplacedBy.
type RefreshToken struct {
	ID     int64
	UserID uuid.UUID
	// SessionID — сессия, к которой привязан токен; nil, если сессия
	// была удалена независимо от токена.
	SessionID *uuid.UUID
	// Token — непрозрачный уникальный идентификатор, который предъявляет клиент.
	Token string
	// ChainID группирует линию ротации, восходящую к одному логину.
	ChainID   string
	IssuedAt  time.Time
	ExpiryAt  time.Time
	Revoked   bool
	// ReplacedBy — идентификатор следующего токена цепочки; nil у головы.
	ReplacedBy *string
	IPAddress  string
	UserAgent  string
}

// ExpiredAt сообщает, истёк ли токен к моменту now.
func (t *RefreshToken) ExpiredAt(now time.Time) bool {
	return t.ExpiryAt.Before(now)
}
