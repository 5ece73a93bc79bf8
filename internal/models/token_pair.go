package models

import "time"

// TokenPair — пара токенов, выдаваемая при аутентификации.
//
// Описание:
//   - AccessToken — короткоживущий подписанный JWT для доступа к API;
//   - RefreshToken — непрозрачный идентификатор головы цепочки ротации;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	// AccessToken — JWT (RS256) для авторизации запросов.
	AccessToken string
	// RefreshToken — идентификатор refresh-токена для обновления пары.
	RefreshToken string
	// AccessExpiresAt — время истечения действия access-токена (UTC).
	AccessExpiresAt time.Time
}
